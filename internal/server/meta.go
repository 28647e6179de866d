package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/config"
	"StockAnalyzer/internal/market"
	"StockAnalyzer/internal/model"
)

type PopularOutput struct {
	Body struct {
		Stocks []collector.PopularStock `json:"stocks"`
	}
}

type MarketStatusOutput struct {
	Body market.Status
}

// Settings is the public subset of the configuration the dashboard needs.
type Settings struct {
	DefaultSymbol     string                `json:"default_symbol"`
	HistoricalDays    int                   `json:"historical_days"`
	MaxHistoricalDays int                   `json:"max_historical_days"`
	DataSource        string                `json:"data_source"`
	CacheTTLSeconds   int                   `json:"cache_ttl_seconds"`
	XSRFProtection    bool                  `json:"xsrf_protection"`
	GatherUsageStats  bool                  `json:"gather_usage_stats"`
	Indicators        model.IndicatorParams `json:"indicators"`
}

type SettingsOutput struct {
	Body Settings
}

type PurgeOutput struct {
	Body struct {
		Purged bool `json:"purged"`
	}
}

func registerMeta(api huma.API, s *Server) {
	huma.Register(api, huma.Operation{
		OperationID: "list-popular-stocks",
		Method:      http.MethodGet,
		Path:        "/api/stocks/popular",
		Summary:     "Quick-select symbols",
		Tags:        []string{"Stocks"},
	}, func(ctx context.Context, _ *struct{}) (*PopularOutput, error) {
		out := &PopularOutput{}
		out.Body.Stocks = collector.PopularStocks()
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-market-status",
		Method:      http.MethodGet,
		Path:        "/api/market/status",
		Summary:     "Exchange session status",
		Tags:        []string{"Market"},
	}, func(ctx context.Context, _ *struct{}) (*MarketStatusOutput, error) {
		return &MarketStatusOutput{Body: s.session.Status(s.now())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-settings",
		Method:      http.MethodGet,
		Path:        "/api/settings",
		Summary:     "Dashboard settings",
		Tags:        []string{"Settings"},
	}, func(ctx context.Context, _ *struct{}) (*SettingsOutput, error) {
		return &SettingsOutput{Body: s.settings()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "purge-cache",
		Method:        http.MethodPost,
		Path:          "/api/cache/purge",
		Summary:       "Drop cached price history",
		Tags:          []string{"Cache"},
		DefaultStatus: http.StatusOK,
	}, func(ctx context.Context, _ *struct{}) (*PurgeOutput, error) {
		purged, err := s.col.Purge(ctx)
		if err != nil {
			log.Error().Err(err).Msg("cache purge failed")
			return nil, huma.Error500InternalServerError("Failed to purge cache")
		}
		log.Info().Bool("purged", purged).Msg("cache purged")
		out := &PurgeOutput{}
		out.Body.Purged = purged
		return out, nil
	})
}

func (s *Server) settings() Settings {
	return Settings{
		DefaultSymbol:     s.cfg.Stock.DefaultSymbol,
		HistoricalDays:    s.cfg.Stock.HistoricalDays,
		MaxHistoricalDays: config.MaxHistoricalDays,
		DataSource:        s.col.Fetcher.Name(),
		CacheTTLSeconds:   s.cfg.Cache.TTLSeconds,
		XSRFProtection:    s.cfg.Server.EnableXSRFProtection,
		GatherUsageStats:  s.cfg.Browser.GatherUsageStats,
		Indicators:        s.col.Params,
	}
}
