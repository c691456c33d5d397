package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	QuickBooks  QuickBooks  `mapstructure:",squash"`
	Pipedrive   Pipedrive   `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	ArchiveSync ArchiveSync `mapstructure:",squash"`
	CacheSweep  CacheSweep  `mapstructure:",squash"`
	Forecast    Forecast    `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type QuickBooks struct {
	BaseURL           string `mapstructure:"qb_base_url"`
	TokenURL          string `mapstructure:"qb_token_url"`
	ClientID          string `mapstructure:"qb_client_id"`
	ClientSecret      string `mapstructure:"qb_client_secret"`
	MinorVersion      string `mapstructure:"qb_minor_version"`
	RequestIntervalMS int    `mapstructure:"qb_request_interval_ms"`
	TimeoutSeconds    int    `mapstructure:"qb_timeout_seconds"`
}

type Pipedrive struct {
	BaseURL                string `mapstructure:"pipedrive_base_url"`
	DurationFieldKey       string `mapstructure:"pipedrive_duration_field_key"`
	InvoicesScheduledField string `mapstructure:"pipedrive_invoices_scheduled_field_key"`
	ProjectStartFieldKey   string `mapstructure:"pipedrive_project_start_field_key"`
	TimeoutSeconds         int    `mapstructure:"pipedrive_timeout_seconds"`
}

type Auth struct {
	Secret           string `mapstructure:"auth_secret"`
	TokenTTLMinutes  int    `mapstructure:"auth_token_ttl_minutes"`
	PasswordMinChars int    `mapstructure:"auth_password_min_chars"`
}

type ArchiveSync struct {
	CronSchedule      string `mapstructure:"archive_sync_cron"`
	MaxConcurrentJobs int    `mapstructure:"archive_sync_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"archive_sync_enabled"`
}

type CacheSweep struct {
	CronSchedule string `mapstructure:"cache_sweep_cron"`
	MaxAgeDays   int    `mapstructure:"cache_sweep_max_age_days"`
	Enabled      bool   `mapstructure:"cache_sweep_enabled"`
}

type Forecast struct {
	MonthsBack      int `mapstructure:"forecast_months_back"`
	MonthsForward   int `mapstructure:"forecast_months_forward"`
	RangeCacheHours int `mapstructure:"forecast_range_cache_hours"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/forecast")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("QB_BASE_URL", "https://quickbooks.api.intuit.com/v3")
	viper.SetDefault("QB_TOKEN_URL", "https://oauth.platform.intuit.com/oauth2/v1/tokens/bearer")
	viper.SetDefault("QB_CLIENT_ID", "your_client_id")
	viper.SetDefault("QB_CLIENT_SECRET", "your_client_secret")
	viper.SetDefault("QB_MINOR_VERSION", "65")
	viper.SetDefault("QB_REQUEST_INTERVAL_MS", 150) // minimum spacing between QuickBooks calls
	viper.SetDefault("QB_TIMEOUT_SECONDS", 30)

	viper.SetDefault("PIPEDRIVE_BASE_URL", "https://api.pipedrive.com/v1")
	viper.SetDefault("PIPEDRIVE_DURATION_FIELD_KEY", "")
	viper.SetDefault("PIPEDRIVE_INVOICES_SCHEDULED_FIELD_KEY", "")
	viper.SetDefault("PIPEDRIVE_TIMEOUT_SECONDS", 30)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL_MINUTES", 24*60)
	viper.SetDefault("AUTH_PASSWORD_MIN_CHARS", 8)

	viper.SetDefault("ARCHIVE_SYNC_CRON", "0 5 * * *") // every day at 5am
	viper.SetDefault("ARCHIVE_SYNC_MAX_CONCURRENT_JOBS", 3)
	viper.SetDefault("ARCHIVE_SYNC_ENABLED", false)

	viper.SetDefault("CACHE_SWEEP_CRON", "0 6 * * *")
	viper.SetDefault("CACHE_SWEEP_MAX_AGE_DAYS", 30)
	viper.SetDefault("CACHE_SWEEP_ENABLED", false)

	viper.SetDefault("FORECAST_MONTHS_BACK", 2)
	viper.SetDefault("FORECAST_MONTHS_FORWARD", 3)
	viper.SetDefault("FORECAST_RANGE_CACHE_HOURS", 24)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Using variables loaded by godotenv (viper could not read .env):", err)
	} else {
		logrus.Info(".env file read by viper successfully")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile loads the .env file via godotenv, trying a few known locations
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Could not determine current directory:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info(".env file loaded from:", location)
			return
		}
	}

	logrus.Warn("No .env file found in any known location")
}
