package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"SERVER_ADDRESS", "SERVER_PORT", "SERVER_HEADLESS", "SERVER_ENABLE_CORS",
	"SERVER_ENABLE_XSRF_PROTECTION", "CORS_ALLOWED_ORIGINS", "BROWSER_GATHER_USAGE_STATS",
	"DEFAULT_STOCK_SYMBOL", "HISTORICAL_DAYS", "DATA_SOURCE", "YAHOO_BASE_URL",
	"YAHOO_FINANCE_TIMEOUT", "CACHE_TTL", "REDIS_URL", "MAX_CONCURRENT_REQUESTS",
	"RATE_LIMIT_ENABLED", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOG_LEVEL",
	"ENABLE_DEBUG", "SQLITE_PATH", "HTTPS_PROXY", "CONFIG_PATH",
}

// clearEnv blanks every variable Load reads; empty values count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8501, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8501", cfg.Addr())
	assert.True(t, cfg.Server.Headless)
	assert.True(t, cfg.Server.EnableCORS)
	assert.True(t, cfg.Server.EnableXSRFProtection)
	assert.False(t, cfg.Browser.GatherUsageStats)
	assert.Equal(t, "RELIANCE.NS", cfg.Stock.DefaultSymbol)
	assert.Equal(t, 60, cfg.Stock.HistoricalDays)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.Equal(t, 10, cfg.Limits.MaxConcurrentRequests)
	assert.Equal(t, 20, cfg.Indicators.SMAFast)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
server:
  port: 9000
  headless: false
stock:
  default_symbol: TCS.NS
  historical_days: 90
indicators:
  sma_fast: 10
  sma_slow: 30
`)
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "env beats file")
	assert.False(t, cfg.Server.Headless, "file beats default")
	assert.Equal(t, "TCS.NS", cfg.Stock.DefaultSymbol)
	assert.Equal(t, 90, cfg.Stock.HistoricalDays)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10, cfg.Indicators.SMAFast)
	assert.Equal(t, 14, cfg.Indicators.RSIPeriod, "unset indicator keeps default")

	flags, err := ParseFlags("analyzer", []string{"-port", "9200", "-demo", "-symbol", "INFY.NS"})
	require.NoError(t, err)
	cfg.ApplyFlags(flags)

	assert.Equal(t, 9200, cfg.Server.Port, "flag beats env")
	assert.Equal(t, "demo", cfg.DataSource.Kind)
	assert.Equal(t, "INFY.NS", cfg.Stock.DefaultSymbol)
	assert.False(t, cfg.Server.Headless, "unset flag leaves value alone")
	require.NoError(t, cfg.Validate())
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "server: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "eighty")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse environment")
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv("DEMO_SEED"))
	t.Cleanup(func() { os.Unsetenv("DEMO_SEED") })
	t.Setenv("HISTORICAL_DAYS", "120")

	path := writeFile(t, ".env", "DEMO_SEED=7\nHISTORICAL_DAYS=30\n")
	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "absent.env")))

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.DataSource.DemoSeed)
	assert.Equal(t, 120, cfg.Stock.HistoricalDays, "real environment beats .env")
}

func TestResolvePath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, DefaultPath, ResolvePath(""))

	t.Setenv("CONFIG_PATH", "/etc/analyzer.yaml")
	assert.Equal(t, "/etc/analyzer.yaml", ResolvePath(""))
	assert.Equal(t, "local.yaml", ResolvePath("local.yaml"))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"symbol", func(c *Config) { c.Stock.DefaultSymbol = "  " }, "default_symbol"},
		{"days", func(c *Config) { c.Stock.HistoricalDays = 0 }, "historical_days"},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"source", func(c *Config) { c.DataSource.Kind = "kite" }, "data_source.kind"},
		{"timeout", func(c *Config) { c.DataSource.TimeoutSeconds = 0 }, "timeout_seconds"},
		{"cache ttl", func(c *Config) { c.Cache.TTLSeconds = -1 }, "ttl_seconds"},
		{"rate limit", func(c *Config) { c.Limits.RateLimitEnabled = true; c.Limits.RateLimitRPS = 0 }, "rate_limit"},
		{"sma order", func(c *Config) { c.Indicators.SMAFast = 60 }, "sma_fast"},
		{"macd order", func(c *Config) { c.Indicators.MACDFast = 30 }, "macd_fast"},
		{"period", func(c *Config) { c.Indicators.RSIPeriod = 0 }, "rsi_period"},
		{"bands", func(c *Config) { c.Indicators.BBStdDev = 0 }, "bb_std_dev"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	assert.NoError(t, Default().Validate())
}
