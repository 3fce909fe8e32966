package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Portal     PortalConfig
	Processor  ProcessorConfig
	Accounting AccountingConfig
	Logging    LoggingConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// AuthConfig contains contractor authentication configuration
type AuthConfig struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
}

// PortalConfig contains client portal authentication configuration.
// The portal is a separate token domain with its own secret and a
// fixed seven-day expiry.
type PortalConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

// ProcessorConfig contains payment processor configuration
type ProcessorConfig struct {
	APIKey         string
	APIURL         string
	WebhookSecret  string
	CorePriceID    string
	ProPriceID     string
	SetupPriceID   string
	OnboardPriceID string
}

// AccountingConfig contains accounting platform OAuth configuration
type AccountingConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	APIURL       string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "jobsite"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./data.db"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", "supersecretkey"),
			AccessTokenExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshTokenExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
			BCryptCost:         getEnvAsInt("BCRYPT_COST", 12),
		},
		Portal: PortalConfig{
			JWTSecret:   getEnv("PORTAL_JWT_SECRET", ""),
			TokenExpiry: getEnvAsDuration("PORTAL_TOKEN_EXPIRY", 7*24*time.Hour),
		},
		Processor: ProcessorConfig{
			APIKey:         getEnv("PROCESSOR_API_KEY", ""),
			APIURL:         getEnv("PROCESSOR_API_URL", "https://api.stripe.com/v1"),
			WebhookSecret:  getEnv("PROCESSOR_WEBHOOK_SECRET", ""),
			CorePriceID:    getEnv("PROCESSOR_CORE_PRICE_ID", ""),
			ProPriceID:     getEnv("PROCESSOR_PRO_PRICE_ID", ""),
			SetupPriceID:   getEnv("PROCESSOR_SETUP_PRICE_ID", ""),
			OnboardPriceID: getEnv("PROCESSOR_ONBOARD_PRICE_ID", ""),
		},
		Accounting: AccountingConfig{
			ClientID:     getEnv("ACCOUNTING_CLIENT_ID", ""),
			ClientSecret: getEnv("ACCOUNTING_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("ACCOUNTING_REDIRECT_URL", "http://localhost:8080/api/v1/accounting/callback"),
			AuthURL:      getEnv("ACCOUNTING_AUTH_URL", "https://appcenter.intuit.com/connect/oauth2"),
			TokenURL:     getEnv("ACCOUNTING_TOKEN_URL", "https://oauth.platform.intuit.com/oauth2/v1/tokens/bearer"),
			APIURL:       getEnv("ACCOUNTING_API_URL", "https://quickbooks.api.intuit.com/v3"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == "supersecretkey" {
		return fmt.Errorf("JWT_SECRET must be set and should not use default value in production")
	}

	if c.Portal.JWTSecret == "" {
		return fmt.Errorf("PORTAL_JWT_SECRET must be set; the portal token domain needs its own secret")
	}

	if c.Portal.JWTSecret == c.Auth.JWTSecret {
		return fmt.Errorf("PORTAL_JWT_SECRET must differ from JWT_SECRET")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
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
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
