package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Data sources understood by the data package
const (
	SourceYahoo    = "yahoo"
	SourcePostgres = "postgres"
	SourceParquet  = "parquet"
	SourceMock     = "mock"
)

// Config holds all configuration for the application
type Config struct {
	// Common
	Environment string
	LogLevel    string

	Data     DataConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Scanner  ScannerConfig
	History  HistoryConfig
	API      APIConfig
	Watch    WatchConfig
}

// DataConfig selects and tunes the series source
type DataConfig struct {
	Source        string // "yahoo", "postgres", "parquet" or "mock"
	Lookback      int    // bars requested per symbol
	YahooBaseURL  string
	YahooProxyURL string
	HTTPTimeout   time.Duration
	ParquetDir    string
	CacheEnabled  bool
	CacheTTL      time.Duration
}

// DatabaseConfig holds PostgreSQL configuration for the bars table
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	BarsTable       string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	KeyPrefix    string
}

// ScannerConfig holds universe scan configuration
type ScannerConfig struct {
	WorkerCount     int
	SymbolTimeout   time.Duration
	UniverseFile    string
	DefaultUniverse string
}

// HistoryConfig holds alert history configuration
type HistoryConfig struct {
	Enabled bool
	Path    string
}

// APIConfig holds REST API configuration
type APIConfig struct {
	Port            int
	JWTSecret       string
	RateLimitRPS    int // per client IP, 0 disables
	MaxScanSymbols  int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// WatchConfig holds the scheduled scan configuration
type WatchConfig struct {
	Schedule   string // cron spec with seconds field
	Expression string
	Universe   string
	Limit      int
	RunOnStart bool
	Cooldown   time.Duration // suppress repeat alerts for the same symbol
}

// Load loads configuration from environment variables
// It automatically loads .env file if it exists in the current directory
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Data: DataConfig{
			Source:        strings.ToLower(getEnv("DATA_SOURCE", SourceYahoo)),
			Lookback:      getEnvAsInt("DATA_LOOKBACK", 300),
			YahooBaseURL:  getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			YahooProxyURL: getEnv("YAHOO_PROXY_URL", ""),
			HTTPTimeout:   getEnvAsDuration("DATA_HTTP_TIMEOUT", 30*time.Second),
			ParquetDir:    getEnv("DATA_PARQUET_DIR", "data"),
			CacheEnabled:  getEnvAsBool("DATA_CACHE_ENABLED", false),
			CacheTTL:      getEnvAsDuration("DATA_CACHE_TTL", 15*time.Minute),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Database:        getEnv("DB_NAME", "stock_alerts"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			BarsTable:       getEnv("DB_BARS_TABLE", "daily_bars"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvAsInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
			KeyPrefix:    getEnv("REDIS_KEY_PREFIX", "alerts:series:"),
		},
		Scanner: ScannerConfig{
			WorkerCount:     getEnvAsInt("SCAN_WORKERS", 8),
			SymbolTimeout:   getEnvAsDuration("SCAN_SYMBOL_TIMEOUT", 30*time.Second),
			UniverseFile:    getEnv("SCAN_UNIVERSE_FILE", ""),
			DefaultUniverse: getEnv("SCAN_DEFAULT_UNIVERSE", "dow30"),
		},
		History: HistoryConfig{
			Enabled: getEnvAsBool("HISTORY_ENABLED", true),
			Path:    getEnv("HISTORY_PATH", "alerts.db"),
		},
		API: APIConfig{
			Port:            getEnvAsInt("API_PORT", 8090),
			JWTSecret:       getEnv("API_JWT_SECRET", ""),
			RateLimitRPS:    getEnvAsInt("API_RATE_LIMIT_RPS", 0),
			MaxScanSymbols:  getEnvAsInt("API_MAX_SCAN_SYMBOLS", 500),
			ReadTimeout:     getEnvAsDuration("API_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("API_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvAsDuration("API_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Watch: WatchConfig{
			Schedule:   getEnv("WATCH_SCHEDULE", "0 30 16 * * 1-5"),
			Expression: getEnv("WATCH_EXPRESSION", ""),
			Universe:   getEnv("WATCH_UNIVERSE", ""),
			Limit:      getEnvAsInt("WATCH_LIMIT", 0),
			RunOnStart: getEnvAsBool("WATCH_RUN_ON_START", false),
			Cooldown:   getEnvAsDuration("WATCH_COOLDOWN", 20*time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Data.Source {
	case SourceYahoo:
		if c.Data.YahooBaseURL == "" {
			return fmt.Errorf("YAHOO_BASE_URL is required for the yahoo source")
		}
	case SourcePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required for the postgres source")
		}
		if c.Database.BarsTable == "" {
			return fmt.Errorf("DB_BARS_TABLE is required for the postgres source")
		}
	case SourceParquet:
		if c.Data.ParquetDir == "" {
			return fmt.Errorf("DATA_PARQUET_DIR is required for the parquet source")
		}
	case SourceMock:
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q (supported: yahoo, postgres, parquet, mock)", c.Data.Source)
	}

	if c.Data.Lookback < 2 {
		return fmt.Errorf("DATA_LOOKBACK must be at least 2, got %d", c.Data.Lookback)
	}
	if c.Data.CacheEnabled && c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required when DATA_CACHE_ENABLED is set")
	}
	if c.Scanner.WorkerCount < 1 {
		return fmt.Errorf("SCAN_WORKERS must be at least 1, got %d", c.Scanner.WorkerCount)
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("HISTORY_PATH is required when history is enabled")
	}
	if c.Watch.Cooldown < 0 {
		return fmt.Errorf("WATCH_COOLDOWN must not be negative")
	}
	if c.Watch.Limit < 0 {
		return fmt.Errorf("WATCH_LIMIT must not be negative")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
