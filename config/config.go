package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported STORE_DRIVER values
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// devJWTSecret is only used when JWT_SECRET is unset
const devJWTSecret = "food_delivery_super_secret_2024"

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Auth      AuthConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Tracking  TrackingConfig
}

type ServerConfig struct {
	Port            int
	Mode            string
	ServiceName     string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type StoreConfig struct {
	Driver        string
	DSN           string
	MongoURL      string
	MongoDatabase string
	Seed          bool
}

type AuthConfig struct {
	JWTSecret  []byte
	TokenTTL   time.Duration
	BcryptCost int
}

type LogConfig struct {
	Level string
}

type RateLimitConfig struct {
	AuthPerMinute int
	AuthBurst     int
}

type TrackingConfig struct {
	Interval time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	return fromViper(viper.New())
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	v.SetDefault("PORT", 10000)
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVICE_NAME", "Food-Delivery-Backend")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("STORE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "food_ordering.db")
	v.SetDefault("MONGO_URL", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "food_delivery")
	v.SetDefault("SEED_DATA", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "168h")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("AUTH_RATE_PER_MINUTE", 20)
	v.SetDefault("AUTH_RATE_BURST", 5)
	v.SetDefault("TRACK_INTERVAL", "5s")

	shutdownTimeout, err := time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing SHUTDOWN_TIMEOUT: %w", err)
	}
	tokenTTL, err := time.ParseDuration(v.GetString("TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("parsing TOKEN_TTL: %w", err)
	}
	trackInterval, err := time.ParseDuration(v.GetString("TRACK_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("parsing TRACK_INTERVAL: %w", err)
	}
	if trackInterval <= 0 {
		return nil, errors.New("TRACK_INTERVAL must be positive")
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER")))
	switch driver {
	case DriverSQLite, DriverMySQL, DriverMongo, DriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}

	mode := strings.ToLower(strings.TrimSpace(v.GetString("GIN_MODE")))
	switch mode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("unknown GIN_MODE %q", mode)
	}

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		log.Printf("JWT_SECRET not set, using development secret")
		secret = devJWTSecret
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("PORT"),
			Mode:            mode,
			ServiceName:     v.GetString("SERVICE_NAME"),
			ShutdownTimeout: shutdownTimeout,
			AllowedOrigins:  splitList(v.GetString("ALLOWED_ORIGINS")),
		},
		Store: StoreConfig{
			Driver:        driver,
			DSN:           v.GetString("DATABASE_DSN"),
			MongoURL:      v.GetString("MONGO_URL"),
			MongoDatabase: v.GetString("MONGO_DATABASE"),
			Seed:          v.GetBool("SEED_DATA"),
		},
		Auth: AuthConfig{
			JWTSecret:  []byte(secret),
			TokenTTL:   tokenTTL,
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute: v.GetInt("AUTH_RATE_PER_MINUTE"),
			AuthBurst:     v.GetInt("AUTH_RATE_BURST"),
		},
		Tracking: TrackingConfig{
			Interval: trackInterval,
		},
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
