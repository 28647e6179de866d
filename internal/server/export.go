package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/validator"
)

type ExportInput struct {
	Symbol string `query:"symbol" maxLength:"32" example:"RELIANCE.NS" doc:"Ticker, optionally as EXCHANGE:TICKER"`
	Days   int    `query:"days" minimum:"0" maximum:"3650" doc:"Lookback window in calendar days, 0 for the configured default"`
}

type ExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func registerExport(api huma.API, s *Server) {
	huma.Register(api, huma.Operation{
		OperationID: "export-analysis-csv",
		Method:      http.MethodGet,
		Path:        "/api/analysis/csv",
		Summary:     "Download bars and indicators as CSV",
		Tags:        []string{"Analysis"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusBadGateway},
	}, func(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
		req := &validator.AnalysisRequest{Symbol: input.Symbol, Days: input.Days}
		a, err := s.compute(ctx, req)
		if err != nil {
			return nil, apiError(err, req.Symbol)
		}
		data, err := encodeCSV(a)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to encode CSV", err)
		}
		return &ExportOutput{
			ContentType:        "text/csv; charset=utf-8",
			ContentDisposition: fmt.Sprintf(`attachment; filename="%s"`, exportFilename(a)),
			Body:               data,
		}, nil
	})
}

// encodeCSV writes one row per bar: OHLCV followed by every indicator.
// Undefined indicator values are left empty.
func encodeCSV(a *model.Analysis) ([]byte, error) {
	p := a.Params
	ind := a.Indicators
	header := []string{
		"Date", "Open", "High", "Low", "Close", "Volume",
		fmt.Sprintf("SMA_%d", p.SMAFast), fmt.Sprintf("SMA_%d", p.SMASlow),
		fmt.Sprintf("EMA_%d", p.MACDFast), fmt.Sprintf("EMA_%d", p.MACDSlow),
		"RSI", "MACD", "MACD_Signal", "MACD_Histogram",
		"BB_Upper", "BB_Middle", "BB_Lower",
		"Volume_SMA", "Volume_Ratio", "ATR", "Stoch_K", "Williams_R",
	}
	cols := []model.Series{
		ind.SMAFast, ind.SMASlow, ind.EMAFast, ind.EMASlow,
		ind.RSI, ind.MACD.Line, ind.MACD.Signal, ind.MACD.Histogram,
		ind.Bollinger.Upper, ind.Bollinger.Middle, ind.Bollinger.Lower,
		ind.VolumeSMA, ind.VolumeRatio, ind.ATR, ind.StochasticK, ind.WilliamsR,
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	row := make([]string, len(header))
	for i, b := range a.Bars {
		row[0] = b.Time.Format("2006-01-02")
		row[1] = formatFloat(b.Open)
		row[2] = formatFloat(b.High)
		row[3] = formatFloat(b.Low)
		row[4] = formatFloat(b.Close)
		row[5] = strconv.FormatFloat(b.Volume, 'f', 0, 64)
		for j, col := range cols {
			row[6+j] = ""
			if i < len(col) {
				row[6+j] = formatFloat(col[i])
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func exportFilename(a *model.Analysis) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		}
		return '_'
	}, a.Symbol)
	return fmt.Sprintf("%s_%s.csv", clean, a.FetchedAt.Format("20060102"))
}
