package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Sports data provider (ESPN scoreboard API)
	ProviderBaseURL string        `envconfig:"PROVIDER_BASE_URL" default:"https://site.api.espn.com/apis/site/v2/sports/football/nfl"`
	ProviderTimeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"20s"`
	ProviderRetries int           `envconfig:"PROVIDER_RETRIES" default:"3"`
	ProviderBackoff time.Duration `envconfig:"PROVIDER_BACKOFF" default:"1500ms"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"nfl_picks"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"picks_user"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" required:"true"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis (provider snapshot cache; optional at runtime)
	RedisHost     string        `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int           `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"60s"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// AppTimezone drives the Tuesday odds-import guard; LegacyTimezone
	// reinterprets naive timestamps carried over from the old dataset.
	AppTimezone    string `envconfig:"APP_TIMEZONE" default:"America/Los_Angeles"`
	LegacyTimezone string `envconfig:"LEGACY_TIMEZONE" default:"UTC"`

	// Operational flags
	Offseason             bool `envconfig:"OFFSEASON" default:"false"`
	AllowAnyDayOddsImport bool `envconfig:"ALLOW_ANYDAY_ODDS_IMPORT" default:"false"`

	// Anomaly notifier (Telegram admin alerts)
	TelegramBotToken string  `envconfig:"TELEGRAM_BOT_TOKEN" default:""`
	AdminChatIDs     []int64 `envconfig:"ADMIN_CHAT_IDS" default:""`

	// Scheduler
	EnableScheduler bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	ImportWeekCron  string `envconfig:"IMPORT_WEEK_CRON" default:"0 6 * * *"`
	SyncScoresCron  string `envconfig:"SYNC_SCORES_CRON" default:"*/5 * * * *"`
	ImportOddsCron  string `envconfig:"IMPORT_ODDS_CRON" default:"30 6 * * *"`
	GradeWeekCron   string `envconfig:"GRADE_WEEK_CRON" default:"15 * * * *"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables.
// It first attempts to load from a .env file if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if c.ProviderRetries < 1 {
		return fmt.Errorf("PROVIDER_RETRIES must be at least 1")
	}

	if c.ProviderBackoff <= 0 {
		return fmt.Errorf("PROVIDER_BACKOFF must be positive")
	}

	if _, err := time.LoadLocation(c.AppTimezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.AppTimezone, err)
	}

	if _, err := time.LoadLocation(c.LegacyTimezone); err != nil {
		return fmt.Errorf("invalid LEGACY_TIMEZONE %q: %w", c.LegacyTimezone, err)
	}

	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// MustLoad loads configuration or exits on error.
// Use this in main() where we want to fail fast.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
