package config

import "time"

// Config holds runtime settings for the washstore CLI.
//
// Fields:
//   - APIBaseURL: root URL of the storefront REST API, paths are appended to it.
//   - RequestTimeout: default per-attempt timeout of API calls.
//   - DatabasePath: SQLite file holding the session and the cart.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string        `env:"WASHSTORE_API_URL"`
	RequestTimeout time.Duration `env:"WASHSTORE_REQUEST_TIMEOUT"`
	DatabasePath   string        `env:"WASHSTORE_DB"`
	LogLevel       string        `env:"WASHSTORE_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "washstore.db"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
