package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// APIConfig holds settings for the remote catalog API the engine talks to.
type APIConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// SyncConfig holds settings for the query synchronization engine.
type SyncConfig struct {
	DebounceInterval time.Duration
}

// ServerConfig holds server configuration for catalogd.
type ServerConfig struct {
	Port string
	Env  string
}

// DBConfig holds database configuration for catalogd.
type DBConfig struct {
	Driver          string // "sqlite" or "postgres"
	SQLitePath      string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// GetDSN returns the PostgreSQL connection string.
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// JWTConfig holds JWT configuration for catalogd's optional auth.
type JWTConfig struct {
	Enabled         bool
	SigningKey      string
	ExpirationHours int
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Prefix string
}

// UploadConfig holds settings for catalogd's image upload store.
type UploadConfig struct {
	Dir string
}

// Config holds all configuration.
type Config struct {
	ServiceName string
	API         APIConfig
	Sync        SyncConfig
	Server      ServerConfig
	DB          DBConfig
	JWT         JWTConfig
	Log         LogConfig
	Metrics     MetricsConfig
	Upload      UploadConfig
}

// Load loads configuration from environment variables.
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not returning error as .env file is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := &Config{
		ServiceName: serviceName,
		API: APIConfig{
			BaseURL: getEnv("CATALOG_API_URL", "http://localhost:8080"),
			Token:   getEnv("CATALOG_API_TOKEN", ""),
			Timeout: getEnvAsDuration("CATALOG_API_TIMEOUT", 10*time.Second),
		},
		Sync: SyncConfig{
			DebounceInterval: getEnvAsDuration("SYNC_DEBOUNCE_INTERVAL", 300*time.Millisecond),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		DB: DBConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			SQLitePath:      getEnv("DB_SQLITE_PATH", "catalogd.db"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "password"),
			DBName:          getEnv("DB_NAME", serviceName),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
		},
		JWT: JWTConfig{
			Enabled:         getEnvAsBool("AUTH_ENABLED", false),
			SigningKey:      getEnv("JWT_SIGNING_KEY", "defaultsecretkey"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", serviceName),
		},
		Upload: UploadConfig{
			Dir: getEnv("UPLOAD_DIR", "uploads"),
		},
	}

	return config, nil
}

// LogConfig returns the configuration as a zap logger-friendly format.
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("api_base_url", c.API.BaseURL),
		zap.Duration("debounce_interval", c.Sync.DebounceInterval),
		zap.String("server_port", c.Server.Port),
		zap.String("db_driver", c.DB.Driver),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as booleans
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
