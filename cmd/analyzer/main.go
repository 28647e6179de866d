package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/cache"
	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/config"
	"StockAnalyzer/internal/market"
	"StockAnalyzer/internal/recorder"
	"StockAnalyzer/internal/server"
)

var version = "dev"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("load .env")
	}
	flags, err := config.ParseFlags(os.Args[0], os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfgPath := config.ResolvePath(flags.ConfigPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfgPath).Msg("load config")
	}
	cfg.ApplyFlags(flags)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	setupLogger(cfg)
	log.Info().Str("version", version).Str("config", cfgPath).Msg("StockAnalyzer starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Data source
	var fetcher collector.Fetcher
	switch cfg.DataSource.Kind {
	case "demo":
		fetcher = collector.NewDemoFetcher(cfg.DataSource.DemoSeed)
	default:
		fetcher = collector.NewYahooFetcher(collector.YahooOptions{
			BaseURL: cfg.DataSource.BaseURL,
			Timeout: cfg.Timeout(),
			Proxy:   cfg.Proxy,
		})
	}

	// History cache
	if ttl := cfg.CacheTTL(); ttl > 0 {
		store := newStore(ctx, cfg)
		defer store.Close()
		fetcher = collector.NewCachedFetcher(fetcher, store, ttl)
		log.Info().Str("store", store.Name()).Dur("ttl", ttl).Msg("history cache enabled")
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	// Analysis recorder
	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Database.SQLitePath).Msg("init sqlite recorder")
		}
		rec = sr
	}
	defer rec.Close()

	col := collector.NewCollector(fetcher, cfg.Indicators, rec)
	srv := server.New(server.Options{
		Config:    cfg,
		Collector: col,
		Session:   market.NSE(),
		Version:   version,
	})

	ln, err := srv.Listen()
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Addr()).Msg("bind http listener")
	}

	if !cfg.Server.Headless {
		host := cfg.Server.Address
		if host == "" || host == "0.0.0.0" || host == "::" {
			host = "localhost"
		}
		url := fmt.Sprintf("http://%s/", net.JoinHostPort(host, strconv.Itoa(cfg.Server.Port)))
		go func() {
			if err := browser.OpenURL(url); err != nil {
				log.Warn().Err(err).Str("url", url).Msg("open browser")
			}
		}()
	}

	log.Info().Str("addr", cfg.Addr()).Msg("StockAnalyzer is running. Press Ctrl+C to stop.")
	if err := srv.Serve(ctx, ln); err != nil {
		log.Fatal().Err(err).Msg("http server")
	}
	log.Info().Msg("StockAnalyzer stopped")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.Log.Debug {
		level = zerolog.DebugLevel
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	zerolog.SetGlobalLevel(level)
}

// newStore prefers Redis when configured and falls back to memory.
func newStore(ctx context.Context, cfg *config.Config) cache.Store {
	if cfg.Cache.RedisURL != "" {
		rctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		r, err := cache.NewRedis(rctx, cfg.Cache.RedisURL)
		if err == nil {
			return r
		}
		log.Warn().Err(err).Msg("redis unavailable, using in-memory cache")
	}
	return cache.NewMemory(cfg.CacheTTL(), 10*time.Minute)
}
