package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Firebase FirebaseConfig
	Payment  PaymentConfig
	Redis    RedisConfig
	Users    UsersConfig
	App      AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
	// TrustedProxies lists the proxy IPs/CIDRs whose X-Forwarded-For is
	// believed. Empty means the client IP is the socket peer.
	TrustedProxies  []string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver      string
	URI         string
	Scheme      string
	Host        string
	User        string
	Password    string
	Name        string
	PostgresDSN string
}

// FirebaseConfig holds the service-account credentials used to verify ID tokens.
// Either a file path or the inline JSON document may be set.
type FirebaseConfig struct {
	CredentialsPath string
	CredentialsJSON string
}

func (f FirebaseConfig) Enabled() bool {
	return f.CredentialsPath != "" || f.CredentialsJSON != ""
}

type PaymentConfig struct {
	SecretKey string
	Currency  string
	RateLimit float64
	RateBurst int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type UsersConfig struct {
	// UpsertOnCreate makes POST /adduser upsert by email instead of
	// inserting the body as-is.
	UpsertOnCreate bool
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "5000"),
			CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"*"}),
			TrustedProxies:  getEnvAsList("TRUSTED_PROXIES", nil),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:      strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMongo)),
			URI:         getEnv("MONGODB_URI", ""),
			Scheme:      getEnv("DB_SCHEME", "mongodb+srv"),
			Host:        getEnv("DB_HOST", "cluster0.6vvik.mongodb.net"),
			User:        getEnv("DB_USER", ""),
			Password:    getEnv("DB_PASS", ""),
			Name:        getEnv("DB_NAME", "eyeSide"),
			PostgresDSN: getEnv("POSTGRES_DSN", ""),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			CredentialsJSON: getEnv("FIREBASE_CREDENTIALS_JSON", ""),
		},
		Payment: PaymentConfig{
			SecretKey: getEnv("STRIPE_SECRET_KEY", ""),
			Currency:  strings.ToLower(getEnv("PAYMENT_CURRENCY", "usd")),
			RateLimit: getEnvAsFloat("PAYMENT_RATE_LIMIT", 5),
			RateBurst: getEnvAsInt("PAYMENT_RATE_BURST", 10),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Users: UsersConfig{
			UpsertOnCreate: getEnvAsBool("USERS_UPSERT_ON_CREATE", false),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
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

	for _, p := range c.Server.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", p)
			}
		}
	}

	switch c.Database.Driver {
	case StoreDriverMongo:
		if c.Database.URI == "" && c.Database.Host == "" {
			return fmt.Errorf("MONGODB_URI or DB_HOST is required")
		}
	case StoreDriverPostgres:
		if c.Database.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Database.Driver)
	}

	if c.Firebase.CredentialsPath != "" && c.Firebase.CredentialsJSON != "" {
		return fmt.Errorf("set only one of FIREBASE_CREDENTIALS_PATH and FIREBASE_CREDENTIALS_JSON")
	}

	if c.Payment.Currency == "" {
		return fmt.Errorf("PAYMENT_CURRENCY is required")
	}

	if c.Payment.RateLimit <= 0 || c.Payment.RateBurst <= 0 {
		return fmt.Errorf("PAYMENT_RATE_LIMIT and PAYMENT_RATE_BURST must be positive")
	}

	return nil
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
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
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

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
