package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files, environment
// variables, and command-line flags.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	RaindropBaseURL     string        `mapstructure:"raindrop_base_url"`
	RaindropToken       string        `mapstructure:"raindrop_token"`
	FetchTimeoutSeconds int64         `mapstructure:"fetch_timeout_seconds"`
	FetchTimeout        time.Duration `mapstructure:"-"`

	// DateFrom/DateTo bound the digest (YYYY-MM-DD); both empty means the
	// current week is computed at run time.
	DateFrom string `mapstructure:"date_from"`
	DateTo   string `mapstructure:"date_to"`
	ThisWeek bool   `mapstructure:"-"`

	PublishersFile string `mapstructure:"publishers_file"`

	StorageType string `mapstructure:"storage_type"`
	BBoltPath   string `mapstructure:"bbolt_path"`

	EnrichCovers  bool          `mapstructure:"enrich_covers"`
	ScrapeDelayMs int64         `mapstructure:"scrape_delay_ms"`
	ScrapeDelay   time.Duration `mapstructure:"-"`

	Watch                bool          `mapstructure:"-"`
	WatchIntervalSeconds int64         `mapstructure:"watch_interval_seconds"`
	WatchInterval        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "semanario")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("raindrop_base_url", "https://api.raindrop.io/rest/v1")
	v.SetDefault("raindrop_token", "")
	v.SetDefault("fetch_timeout_seconds", 15)
	v.SetDefault("date_from", "")
	v.SetDefault("date_to", "")
	v.SetDefault("publishers_file", "")
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/credentials.db")
	v.SetDefault("enrich_covers", false)
	v.SetDefault("scrape_delay_ms", 500)
	v.SetDefault("watch_interval_seconds", 900)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize validates raw values and derives the duration fields.
func (cfg *Config) normalize() error {
	if cfg.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid fetch_timeout_seconds (must be positive seconds)")
	}
	if cfg.WatchIntervalSeconds <= 0 {
		return fmt.Errorf("invalid watch_interval_seconds (must be positive seconds)")
	}
	if cfg.ScrapeDelayMs < 0 {
		return fmt.Errorf("invalid scrape_delay_ms (must not be negative)")
	}

	cfg.FetchTimeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second
	cfg.WatchInterval = time.Duration(cfg.WatchIntervalSeconds) * time.Second
	cfg.ScrapeDelay = time.Duration(cfg.ScrapeDelayMs) * time.Millisecond
	return nil
}

// ParseFlags overlays command-line flags onto cfg. Flags win over environment
// and defaults. args is os.Args[1:] in production.
func ParseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("digest", flag.ContinueOnError)

	fs.StringVar(&cfg.RaindropToken, "token", cfg.RaindropToken, "Raindrop.io API token (persisted for later runs)")
	fs.StringVar(&cfg.DateFrom, "from", cfg.DateFrom, "range start, YYYY-MM-DD (empty with -to empty: current week)")
	fs.StringVar(&cfg.DateTo, "to", cfg.DateTo, "range end, YYYY-MM-DD")
	fs.BoolVar(&cfg.ThisWeek, "this-week", false, "ignore configured dates and use the current week")
	fs.StringVar(&cfg.PublishersFile, "publishers", cfg.PublishersFile, "publishers config file (YAML/JSON)")
	fs.BoolVar(&cfg.EnrichCovers, "enrich", cfg.EnrichCovers, "scrape og:image covers for bookmarks missing one")
	fs.BoolVar(&cfg.Watch, "watch", false, "keep running, refreshing the digest on an interval")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.ThisWeek {
		cfg.DateFrom = ""
		cfg.DateTo = ""
	}
	return nil
}
