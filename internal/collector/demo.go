package collector

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	"StockAnalyzer/internal/model"
)

// DemoFetcher returns a deterministic random walk per symbol. It needs no
// network and is used for offline runs and tests.
type DemoFetcher struct {
	Seed uint64
	// Now anchors the generated window; nil means time.Now.
	Now func() time.Time
}

// NewDemoFetcher creates a demo data source.
func NewDemoFetcher(seed uint64) *DemoFetcher {
	return &DemoFetcher{Seed: seed}
}

func (d *DemoFetcher) Name() string { return "demo" }

func (d *DemoFetcher) FetchHistory(ctx context.Context, symbol string, days int) (*model.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, networkError(symbol, 0, err)
	}
	ticker := MapSymbol(symbol)
	if ticker == "" || days <= 0 {
		return nil, notFound(ticker, 0, "empty request")
	}

	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	end := now().UTC().Truncate(24 * time.Hour)

	h := fnv.New64a()
	h.Write([]byte(ticker))
	key := h.Sum64()
	basePrice := 100 + float64(key%2900)

	bars := generateDemoBars(rand.New(rand.NewPCG(d.Seed, key)), basePrice, end, days)
	if len(bars) == 0 {
		return nil, notFound(ticker, 0, "no trading days in window")
	}

	return &model.PriceSeries{
		Symbol:         symbol,
		ProviderSymbol: ticker,
		Source:         d.Name(),
		Info: model.StockInfo{
			Symbol:         symbol,
			ProviderSymbol: ticker,
			Name:           ticker + " (demo)",
			Exchange:       "DEMO",
			Currency:       "INR",
			InstrumentType: "EQUITY",
			Timezone:       "UTC",
		},
		Bars:      bars,
		FetchedAt: now(),
	}, nil
}

// generateDemoBars walks the close with 2% daily noise and a slight upward
// drift, emitting one bar per weekday in (end-days, end].
func generateDemoBars(r *rand.Rand, basePrice float64, end time.Time, days int) []model.OHLCV {
	bars := make([]model.OHLCV, 0, days)
	price := basePrice
	for i := days - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		open := price
		price = math.Max(1, price*(1+0.0005+r.NormFloat64()*0.02))
		spread := math.Abs(r.NormFloat64()) * 0.01
		bars = append(bars, model.OHLCV{
			Time:   day,
			Open:   round4(open),
			High:   round4(math.Max(open, price) * (1 + spread)),
			Low:    round4(math.Min(open, price) * (1 - spread)),
			Close:  round4(price),
			Volume: math.Round(1e5 + r.Float64()*9e5),
		})
	}
	return bars
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
