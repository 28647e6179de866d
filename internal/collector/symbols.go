package collector

import "strings"

// exchangeSuffix maps an exchange prefix to the provider ticker suffix.
var exchangeSuffix = map[string]string{
	"NSE":    ".NS",
	"BSE":    ".BO",
	"NYSE":   "",
	"NASDAQ": "",
	"LSE":    ".L",
	"TSE":    ".T",
	"ASX":    ".AX",
}

const defaultSuffix = ".NS"

// MapSymbol converts user input into a provider ticker. "EXCHANGE:TICKER"
// becomes TICKER plus the exchange suffix, unknown exchanges fall back to NSE.
// Anything else is trimmed and upper-cased.
func MapSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	exchange, ticker, ok := strings.Cut(s, ":")
	if !ok {
		return s
	}
	exchange = strings.TrimSpace(exchange)
	ticker = strings.TrimSpace(ticker)
	suffix, known := exchangeSuffix[exchange]
	if !known {
		suffix = defaultSuffix
	}
	return ticker + suffix
}

// PopularStock is a quick-select entry in the UI.
type PopularStock struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

var popular = []PopularStock{
	{"RELIANCE.NS", "Reliance Industries", "NSE"},
	{"TCS.NS", "Tata Consultancy Services", "NSE"},
	{"INFY.NS", "Infosys", "NSE"},
	{"HDFCBANK.NS", "HDFC Bank", "NSE"},
	{"ICICIBANK.NS", "ICICI Bank", "NSE"},
	{"HINDUNILVR.NS", "Hindustan Unilever", "NSE"},
	{"ITC.NS", "ITC", "NSE"},
	{"SBIN.NS", "State Bank of India", "NSE"},
	{"BHARTIARTL.NS", "Bharti Airtel", "NSE"},
	{"KOTAKBANK.NS", "Kotak Mahindra Bank", "NSE"},
	{"AAPL", "Apple Inc.", "NASDAQ"},
	{"MSFT", "Microsoft Corporation", "NASDAQ"},
	{"GOOGL", "Alphabet Inc.", "NASDAQ"},
	{"AMZN", "Amazon.com Inc.", "NASDAQ"},
	{"TSLA", "Tesla Inc.", "NASDAQ"},
}

// PopularStocks returns a copy of the quick-select list.
func PopularStocks() []PopularStock {
	out := make([]PopularStock, len(popular))
	copy(out, popular)
	return out
}
