package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"StockAnalyzer/internal/model"
)

// DefaultPath is used when neither -config nor CONFIG_PATH is given.
const DefaultPath = "configs/config.yaml"

// MaxHistoricalDays bounds the lookback window a request may ask for.
const MaxHistoricalDays = 3650

// Config holds all application configuration.
type Config struct {
	Server struct {
		Address              string   `yaml:"address" env:"SERVER_ADDRESS"`
		Port                 int      `yaml:"port" env:"SERVER_PORT"`
		Headless             bool     `yaml:"headless" env:"SERVER_HEADLESS"`
		EnableCORS           bool     `yaml:"enable_cors" env:"SERVER_ENABLE_CORS"`
		EnableXSRFProtection bool     `yaml:"enable_xsrf_protection" env:"SERVER_ENABLE_XSRF_PROTECTION"`
		AllowedOrigins       []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	} `yaml:"server"`
	Browser struct {
		GatherUsageStats bool `yaml:"gather_usage_stats" env:"BROWSER_GATHER_USAGE_STATS"`
	} `yaml:"browser"`
	Stock struct {
		DefaultSymbol  string `yaml:"default_symbol" env:"DEFAULT_STOCK_SYMBOL"`
		HistoricalDays int    `yaml:"historical_days" env:"HISTORICAL_DAYS"`
	} `yaml:"stock"`
	DataSource struct {
		Kind           string `yaml:"kind" env:"DATA_SOURCE"`
		BaseURL        string `yaml:"base_url" env:"YAHOO_BASE_URL"`
		TimeoutSeconds int    `yaml:"timeout_seconds" env:"YAHOO_FINANCE_TIMEOUT"`
		DemoSeed       uint64 `yaml:"demo_seed" env:"DEMO_SEED"`
	} `yaml:"data_source"`
	Cache struct {
		TTLSeconds int    `yaml:"ttl_seconds" env:"CACHE_TTL"`
		RedisURL   string `yaml:"redis_url" env:"REDIS_URL"`
	} `yaml:"cache"`
	Limits struct {
		MaxConcurrentRequests int     `yaml:"max_concurrent_requests" env:"MAX_CONCURRENT_REQUESTS"`
		RateLimitEnabled      bool    `yaml:"rate_limit_enabled" env:"RATE_LIMIT_ENABLED"`
		RateLimitRPS          float64 `yaml:"rate_limit_rps" env:"RATE_LIMIT_RPS"`
		RateLimitBurst        int     `yaml:"rate_limit_burst" env:"RATE_LIMIT_BURST"`
	} `yaml:"limits"`
	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL"`
		Debug bool   `yaml:"debug" env:"ENABLE_DEBUG"`
	} `yaml:"log"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
	} `yaml:"database"`
	Indicators model.IndicatorParams `yaml:"indicators"`
	Proxy      string                `yaml:"proxy" env:"HTTPS_PROXY"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Address = "0.0.0.0"
	cfg.Server.Port = 8501
	cfg.Server.Headless = true
	cfg.Server.EnableCORS = true
	cfg.Server.EnableXSRFProtection = true
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Stock.DefaultSymbol = "RELIANCE.NS"
	cfg.Stock.HistoricalDays = 60
	cfg.DataSource.Kind = "yahoo"
	cfg.DataSource.BaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	cfg.DataSource.TimeoutSeconds = 30
	cfg.DataSource.DemoSeed = 42
	cfg.Cache.TTLSeconds = 300
	cfg.Limits.MaxConcurrentRequests = 10
	cfg.Limits.RateLimitRPS = 5
	cfg.Limits.RateLimitBurst = 10
	cfg.Log.Level = "info"
	cfg.Indicators = model.DefaultIndicatorParams()
	return cfg
}

// LoadDotEnv loads variables from .env style files. Variables already present
// in the environment win; missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ResolvePath picks the config file path: the -config flag, then CONFIG_PATH,
// then DefaultPath.
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// Load starts from Default, applies the YAML file at path (a missing file is
// fine) and then environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Unset variables keep the value from defaults or the file.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.DataSource.Kind = strings.ToLower(cfg.DataSource.Kind)
	return cfg, nil
}

// Flags holds command line overrides. Only flags present on the command line
// are applied.
type Flags struct {
	ConfigPath string
	Host       string
	Port       int
	Headless   bool
	CORS       bool
	XSRF       bool
	Symbol     string
	Demo       bool

	set map[string]bool
}

// ParseFlags parses args into Flags.
func ParseFlags(name string, args []string) (*Flags, error) {
	f := &Flags{set: map[string]bool{}}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&f.ConfigPath, "config", "", "path to the YAML config file")
	fs.StringVar(&f.Host, "host", "", "listen address")
	fs.IntVar(&f.Port, "port", 0, "listen port")
	fs.BoolVar(&f.Headless, "headless", false, "do not open a browser")
	fs.BoolVar(&f.CORS, "cors", false, "enable CORS")
	fs.BoolVar(&f.XSRF, "xsrf", false, "enable XSRF protection")
	fs.StringVar(&f.Symbol, "symbol", "", "default stock symbol")
	fs.BoolVar(&f.Demo, "demo", false, "serve deterministic demo data instead of Yahoo Finance")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// IsSet reports whether the named flag was given.
func (f *Flags) IsSet(name string) bool { return f != nil && f.set[name] }

// ApplyFlags overrides cfg with the flags given on the command line.
func (c *Config) ApplyFlags(f *Flags) {
	if f.IsSet("host") {
		c.Server.Address = f.Host
	}
	if f.IsSet("port") {
		c.Server.Port = f.Port
	}
	if f.IsSet("headless") {
		c.Server.Headless = f.Headless
	}
	if f.IsSet("cors") {
		c.Server.EnableCORS = f.CORS
	}
	if f.IsSet("xsrf") {
		c.Server.EnableXSRFProtection = f.XSRF
	}
	if f.IsSet("symbol") {
		c.Stock.DefaultSymbol = f.Symbol
	}
	if f.IsSet("demo") && f.Demo {
		c.DataSource.Kind = "demo"
	}
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// Timeout is the upstream HTTP client timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.DataSource.TimeoutSeconds) * time.Second
}

// CacheTTL is zero when caching is disabled.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Stock.DefaultSymbol) == "" {
		return fmt.Errorf("stock.default_symbol is required")
	}
	if c.Stock.HistoricalDays < 1 || c.Stock.HistoricalDays > MaxHistoricalDays {
		return fmt.Errorf("stock.historical_days must be in 1..%d, got %d", MaxHistoricalDays, c.Stock.HistoricalDays)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch c.DataSource.Kind {
	case "yahoo", "demo":
	default:
		return fmt.Errorf("data_source.kind %q is not one of yahoo, demo", c.DataSource.Kind)
	}
	if c.DataSource.TimeoutSeconds <= 0 {
		return fmt.Errorf("data_source.timeout_seconds must be positive")
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must not be negative")
	}
	if c.Limits.MaxConcurrentRequests < 0 {
		return fmt.Errorf("limits.max_concurrent_requests must not be negative")
	}
	if c.Limits.RateLimitEnabled && (c.Limits.RateLimitRPS <= 0 || c.Limits.RateLimitBurst < 1) {
		return fmt.Errorf("limits.rate_limit_rps and rate_limit_burst must be positive when rate limiting is enabled")
	}
	return c.validateIndicators()
}

func (c *Config) validateIndicators() error {
	p := c.Indicators
	periods := map[string]int{
		"sma_fast":      p.SMAFast,
		"sma_slow":      p.SMASlow,
		"rsi_period":    p.RSIPeriod,
		"macd_fast":     p.MACDFast,
		"macd_slow":     p.MACDSlow,
		"macd_signal":   p.MACDSignal,
		"bb_period":     p.BBPeriod,
		"volume_period": p.VolumePeriod,
		"atr_period":    p.ATRPeriod,
		"stoch_period":  p.StochPeriod,
	}
	for name, v := range periods {
		if v < 1 {
			return fmt.Errorf("indicators.%s must be positive, got %d", name, v)
		}
	}
	if p.SMAFast >= p.SMASlow {
		return fmt.Errorf("indicators.sma_fast (%d) must be less than sma_slow (%d)", p.SMAFast, p.SMASlow)
	}
	if p.MACDFast >= p.MACDSlow {
		return fmt.Errorf("indicators.macd_fast (%d) must be less than macd_slow (%d)", p.MACDFast, p.MACDSlow)
	}
	if p.BBStdDev <= 0 {
		return fmt.Errorf("indicators.bb_std_dev must be positive")
	}
	return nil
}
