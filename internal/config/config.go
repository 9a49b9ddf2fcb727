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
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds everything main needs to wire the service.
type Config struct {
	Port        string
	Environment string

	StorageDriver string
	AutoMigrate   bool
	Database      DatabaseConfig

	Twilio TwilioConfig

	RedisAddr     string
	RedisPassword string
	DemoMode      bool

	SessionSecret string
	SessionCookie string
	SessionTTL    time.Duration
	CookieSecure  bool

	AdminPhone  string
	OTPTTL      time.Duration
	CORSOrigins string
	BodyLimitMB int
}

type DatabaseConfig struct {
	URL                    string
	Host                   string
	User                   string
	Password               string
	Name                   string
	Port                   string
	InstanceConnectionName string
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

// Configured reports whether SMS delivery can be attempted.
func (t TwilioConfig) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.From != ""
}

// DSN builds the postgres connection string. Cloud Run deployments connect through the
// Cloud SQL unix socket, local development over TCP.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.InstanceConnectionName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			d.InstanceConnectionName, d.User, d.Password, d.Name)
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		d.Host, d.User, d.Password, d.Name, d.Port)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads .env files for local development and then the process environment.
func Load() (*Config, error) {
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		if err := godotenv.Load(".env"); err != nil {
			if err := godotenv.Load("environments/.env.development"); err != nil {
				log.Println("⚠️  No .env file found - checking environment variables")
			}
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	env := getenv("ENVIRONMENT", "development")
	if os.Getenv("INSTANCE_CONNECTION_NAME") != "" && os.Getenv("ENVIRONMENT") == "" {
		env = "production"
	}

	cfg := &Config{
		Port:        getenv("PORT", "8080"),
		Environment: env,

		StorageDriver: strings.ToLower(getenv("STORAGE_DRIVER", StoragePostgres)),
		AutoMigrate:   getbool("AUTO_MIGRATE", true),
		Database: DatabaseConfig{
			URL:                    os.Getenv("DATABASE_URL"),
			Host:                   getenv("DB_HOST", "localhost"),
			User:                   getenv("DB_USER", "postgres"),
			Password:               os.Getenv("DB_PASS"),
			Name:                   getenv("DB_NAME", "govjobs"),
			Port:                   getenv("DB_PORT", "5432"),
			InstanceConnectionName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		},

		Twilio: TwilioConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			From:       os.Getenv("TWILIO_PHONE_NUMBER"),
		},

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DemoMode:      getbool("DEMO_MODE", false),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionCookie: getenv("SESSION_COOKIE", "user_session"),
		SessionTTL:    getduration("SESSION_TTL", 30*24*time.Hour),

		AdminPhone:  getenv("ADMIN_PHONE", "9999999999"),
		OTPTTL:      getduration("OTP_TTL", 5*time.Minute),
		CORSOrigins: getenv("CORS_ORIGINS", "*"),
		BodyLimitMB: getint("BODY_LIMIT_MB", 32),
	}
	cfg.CookieSecure = getbool("COOKIE_SECURE", cfg.IsProduction())

	if getbool("USE_MEMORY_STORE", false) {
		cfg.StorageDriver = StorageMemory
	}
	if cfg.StorageDriver != StorageMemory && cfg.StorageDriver != StoragePostgres {
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.SessionSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("SESSION_SECRET must be set in production")
		}
		cfg.SessionSecret = "dev-session-secret"
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getint(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
