package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database    DatabaseConfig
	Redis       RedisConfig
	CORS        CORSConfig
	Log         LogConfig
	Calendar    CalendarConfig
	Schedule    ScheduleConfig
	Suggestions SuggestionsConfig
	Forecast    ForecastConfig
	Reports     ReportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CalendarConfig lists the ICS feeds the service ingests events from.
type CalendarConfig struct {
	FeedURLs     []string
	FetchTimeout time.Duration
	CacheDir     string
	Timezone     string
}

// ScheduleConfig tunes the composed schedule view.
type ScheduleConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	MaxRangeDays int
}

// SuggestionsConfig declares the recurring activities the slot finder places.
// Activities entries use the form "RangeTitle:DurationMinutes".
type SuggestionsConfig struct {
	Enabled    bool
	Activities []string
}

// ForecastConfig configures the remote text-generation API.
type ForecastConfig struct {
	Enabled bool
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// ReportsConfig toggles workload report exports.
type ReportsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Calendar = CalendarConfig{
		FeedURLs:     splitAndTrim(v.GetString("CALENDAR_FEED_URLS")),
		FetchTimeout: parseDuration(v.GetString("CALENDAR_FETCH_TIMEOUT"), 15*time.Second),
		CacheDir:     v.GetString("CALENDAR_CACHE_DIR"),
		Timezone:     v.GetString("CALENDAR_TIMEZONE"),
	}

	cfg.Schedule = ScheduleConfig{
		CacheEnabled: v.GetBool("SCHEDULE_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("SCHEDULE_CACHE_TTL"), 5*time.Minute),
		MaxRangeDays: v.GetInt("SCHEDULE_MAX_RANGE_DAYS"),
	}

	cfg.Suggestions = SuggestionsConfig{
		Enabled:    v.GetBool("ENABLE_SUGGESTIONS"),
		Activities: splitAndTrim(v.GetString("SUGGESTION_ACTIVITIES")),
	}

	cfg.Forecast = ForecastConfig{
		Enabled: v.GetBool("ENABLE_FORECAST"),
		BaseURL: v.GetString("FORECAST_API_URL"),
		APIKey:  v.GetString("FORECAST_API_KEY"),
		Model:   v.GetString("FORECAST_MODEL"),
		Timeout: parseDuration(v.GetString("FORECAST_TIMEOUT"), 20*time.Second),
	}

	cfg.Reports = ReportsConfig{
		Enabled: v.GetBool("ENABLE_REPORTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "dayflow")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CALENDAR_FEED_URLS", "")
	v.SetDefault("CALENDAR_FETCH_TIMEOUT", "15s")
	v.SetDefault("CALENDAR_CACHE_DIR", "./var/ics-cache")
	v.SetDefault("CALENDAR_TIMEZONE", "")

	v.SetDefault("SCHEDULE_CACHE_ENABLED", true)
	v.SetDefault("SCHEDULE_CACHE_TTL", "5m")
	v.SetDefault("SCHEDULE_MAX_RANGE_DAYS", 31)

	v.SetDefault("ENABLE_SUGGESTIONS", true)
	v.SetDefault("SUGGESTION_ACTIVITIES", "Lunch:60,Walk:30")

	v.SetDefault("ENABLE_FORECAST", false)
	v.SetDefault("FORECAST_API_URL", "")
	v.SetDefault("FORECAST_API_KEY", "")
	v.SetDefault("FORECAST_MODEL", "")
	v.SetDefault("FORECAST_TIMEOUT", "20s")

	v.SetDefault("ENABLE_REPORTS", false)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
