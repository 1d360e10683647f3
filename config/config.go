package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	AuthProviderFirebase = "firebase"
	AuthProviderJWT      = "jwt"
	AuthProviderHeader   = "header"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	SOS      SOSConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Driver   string
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	URL string
}

type AuthConfig struct {
	Provider string
	Firebase FirebaseConfig
	JWT      JWTConfig
}

type FirebaseConfig struct {
	CredentialsPath string
}

type JWTConfig struct {
	Secret        string
	PublicKeyPath string
	Issuer        string
	Audience      string
}

type SOSConfig struct {
	RatePerMinute    float64
	RateBurst        int
	BacklogSchedule  string
	BacklogThreshold time.Duration
}

type AppConfig struct {
	Name        string
	Environment string
	LogMode     string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "5000"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "alertwise"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Auth: AuthConfig{
			Provider: strings.ToLower(getEnv("AUTH_PROVIDER", AuthProviderFirebase)),
			Firebase: FirebaseConfig{
				CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			},
			JWT: JWTConfig{
				Secret:        getEnv("JWT_SECRET", ""),
				PublicKeyPath: getEnv("JWT_PUBLIC_KEY_PATH", ""),
				Issuer:        getEnv("JWT_ISSUER", ""),
				Audience:      getEnv("JWT_AUDIENCE", ""),
			},
		},
		SOS: SOSConfig{
			RatePerMinute:    getEnvAsFloat("SOS_RATE_PER_MINUTE", 6),
			RateBurst:        getEnvAsInt("SOS_RATE_BURST", 3),
			BacklogSchedule:  getEnv("SOS_BACKLOG_SCHEDULE", "@every 5m"),
			BacklogThreshold: getEnvAsDuration("SOS_BACKLOG_THRESHOLD", 15*time.Minute),
		},
		App: AppConfig{
			Name:        getEnv("APP_NAME", "alertwise-api"),
			Environment: getEnv("APP_ENV", "development"),
			LogMode:     getEnv("LOG_MODE", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Database.Driver {
	case StoreDriverPostgres:
		if c.Database.DSN == "" && c.Database.Host == "" {
			return fmt.Errorf("DB_DSN or DB_HOST is required")
		}
	case StoreDriverMemory:
		if c.IsProduction() {
			return fmt.Errorf("STORE_DRIVER=memory is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Database.Driver)
	}

	switch c.Auth.Provider {
	case AuthProviderFirebase:
		if c.Auth.Firebase.CredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
		}
	case AuthProviderJWT:
		if c.Auth.JWT.Secret == "" && c.Auth.JWT.PublicKeyPath == "" {
			return fmt.Errorf("JWT_SECRET or JWT_PUBLIC_KEY_PATH is required")
		}
	case AuthProviderHeader:
		if c.IsProduction() {
			return fmt.Errorf("AUTH_PROVIDER=header is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.Auth.Provider)
	}

	if c.SOS.RatePerMinute < 0 {
		return fmt.Errorf("SOS_RATE_PER_MINUTE must not be negative")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// PostgresDSN returns DB_DSN when set, otherwise a key/value DSN built from
// the individual DB_* variables.
func (d DatabaseConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name,
	)
}

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
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
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
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
