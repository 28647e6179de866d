package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/chart"
	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/validator"
)

// AnalysisInput is the query of GET /api/analysis.
type AnalysisInput struct {
	Symbol  string `query:"symbol" maxLength:"32" example:"RELIANCE.NS" doc:"Ticker, optionally as EXCHANGE:TICKER"`
	Days    int    `query:"days" minimum:"0" maximum:"3650" doc:"Lookback window in calendar days, 0 for the configured default"`
	Refresh bool   `query:"refresh" doc:"Drop cached history before fetching"`
}

// AnalysisBody is one analysis together with its rendered charts.
type AnalysisBody struct {
	Analysis *model.Analysis `json:"analysis"`
	Charts   chart.Charts    `json:"charts"`
}

type AnalysisOutput struct {
	Body AnalysisBody
}

func registerAnalysis(api huma.API, s *Server) {
	huma.Register(api, huma.Operation{
		OperationID: "get-analysis",
		Method:      http.MethodGet,
		Path:        "/api/analysis",
		Summary:     "Analyze a symbol",
		Description: "Fetches daily history and returns indicators, summary statistics, the outlook and chart figures.",
		Tags:        []string{"Analysis"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusBadGateway},
	}, func(ctx context.Context, input *AnalysisInput) (*AnalysisOutput, error) {
		req := &validator.AnalysisRequest{Symbol: input.Symbol, Days: input.Days, Refresh: input.Refresh}
		body, err := s.analyze(ctx, req)
		if err != nil {
			return nil, apiError(err, req.Symbol)
		}
		return &AnalysisOutput{Body: *body}, nil
	})
}

// analyze validates req, applies defaults and runs one bounded
// fetch-compute-render cycle.
func (s *Server) analyze(ctx context.Context, req *validator.AnalysisRequest) (*AnalysisBody, error) {
	a, err := s.compute(ctx, req)
	if err != nil {
		return nil, err
	}
	return &AnalysisBody{Analysis: a, Charts: chart.Build(a)}, nil
}

func (s *Server) compute(ctx context.Context, req *validator.AnalysisRequest) (*model.Analysis, error) {
	if err := validator.ValidateAnalysis(req); err != nil {
		return nil, err
	}
	if req.Days == 0 {
		req.Days = s.cfg.Stock.HistoricalDays
	}

	if s.sem != nil {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("wait for analysis slot: %w", err)
		}
		defer s.sem.Release(1)
	}

	return s.col.Analyze(ctx, req.Symbol, req.Days, req.Refresh)
}

// classify maps an analysis error onto an HTTP status and a user-facing
// message.
func classify(err error, symbol string) (int, string) {
	var verr *validator.Error
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, verr.Error()
	case errors.Is(err, collector.ErrNotFound):
		return http.StatusNotFound, fmt.Sprintf("No data found for symbol %s", symbol)
	case errors.Is(err, collector.ErrNetwork):
		return http.StatusBadGateway, fmt.Sprintf("Could not reach the market data provider for %s. Please try again.", symbol)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "Request cancelled before the analysis completed"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func apiError(err error, symbol string) error {
	status, msg := classify(err, symbol)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		log.Error().Err(err).Str("symbol", symbol).Msg("analysis failed")
	} else {
		log.Warn().Err(err).Str("symbol", symbol).Int("status", status).Msg("analysis rejected")
	}

	var verr *validator.Error
	if errors.As(err, &verr) {
		details := make([]error, len(verr.Issues))
		for i, is := range verr.Issues {
			details[i] = &huma.ErrorDetail{Location: "query." + is.Field, Message: is.Message}
		}
		return huma.NewError(status, "Validation failed", details...)
	}
	return huma.NewError(status, msg)
}
