// Package config loads the application configuration once at startup.
// The resulting Config is treated as read-only and handed to every component that needs it.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const envFile = ".env"

// Config groups every setting of the service.
type Config struct {
	Environment   string
	Port          string
	LogLevel      string
	ServiceName   string
	PublicBaseURL string
	AllowOrigins  []string
	VerifyEmailMX bool

	Database  DatabaseConfig
	Token     TokenConfig
	Mail      MailConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
}

// DatabaseConfig holds the postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	MinConns int32
	MaxConns int32
}

// TokenConfig holds the signing key location and the expiry policies of the three token kinds.
type TokenConfig struct {
	KeyPairPath    string
	Issuer         string
	AccessTokenTTL time.Duration
	EmailTokenTTL  time.Duration
	HashCost       int
}

// MailConfig selects and configures the outgoing mail transport.
type MailConfig struct {
	Provider      string
	From          string
	FromName      string
	MailgunDomain string
	MailgunAPIKey string
	MailgunEU     bool
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
}

// StorageConfig points at the S3 compatible bucket used for avatars.
type StorageConfig struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// RateLimitConfig configures the redis token bucket in front of /users/me.
type RateLimitConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	MePerMinute   int
	Prefix        string
}

var ErrMissingDatabaseConfig = errors.New("database environment variables not set")

// Load reads the optional .env file and the process environment into a new Config.
func Load() (*Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		log.Info("No .env file found, using environment variables from system")
	} else {
		log.Info("Loaded environment variables from .env file")
	}

	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Environment:   envStr("ENVIRONMENT", "development"),
		Port:          envStr("PORT", "8080"),
		LogLevel:      envStr("LOG_LEVEL", "INFO"),
		ServiceName:   envStr("SERVICE_NAME", "contacts-api"),
		PublicBaseURL: strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		AllowOrigins:  envList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		VerifyEmailMX: envBool("VERIFY_EMAIL_MX", false),
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     envStr("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  envStr("DB_SSLMODE", "disable"),
			MinConns: int32(envInt("DB_MIN_CONNS", 5)),
			MaxConns: int32(envInt("DB_MAX_CONNS", 30)),
		},
		Token: TokenConfig{
			KeyPairPath:    envStr("KEY_PAIR_PATH", "keys/ed25519.key"),
			Issuer:         envStr("JWT_ISSUER", "contacts-api"),
			AccessTokenTTL: time.Duration(envInt("JWT_EXPIRATION_SECONDS", 3600)) * time.Second,
			EmailTokenTTL:  time.Duration(envInt("MAIL_TOKEN_EXP_DAYS", 7)) * 24 * time.Hour,
			HashCost:       envInt("HASH_COST", bcrypt.DefaultCost),
		},
		Mail: MailConfig{
			Provider:      strings.ToLower(envStr("MAIL_PROVIDER", "mailgun")),
			From:          envStr("MAIL_FROM", "no-reply@contacts-api.local"),
			FromName:      envStr("MAIL_FROM_NAME", "Rest API Service"),
			MailgunDomain: os.Getenv("MAILGUN_DOMAIN"),
			MailgunAPIKey: os.Getenv("MAILGUN_API_KEY"),
			MailgunEU:     envBool("MAILGUN_EU", false),
			SMTPHost:      os.Getenv("MAIL_SERVER"),
			SMTPPort:      envInt("MAIL_PORT", 465),
			SMTPUsername:  os.Getenv("MAIL_USERNAME"),
			SMTPPassword:  os.Getenv("MAIL_PASSWORD"),
		},
		Storage: StorageConfig{
			Region:    envStr("S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Bucket:    envStr("S3_BUCKET", "avatars"),
			PublicURL: strings.TrimRight(os.Getenv("S3_PUBLIC_URL"), "/"),
		},
		RateLimit: RateLimitConfig{
			RedisAddr:     os.Getenv("REDIS_ADDR"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       envInt("REDIS_DB", 0),
			MePerMinute:   envInt("RATE_LIMIT_ME_PER_MINUTE", 10),
			Prefix:        envStr("RATE_LIMIT_PREFIX", "rl"),
		},
	}

	if cfg.Token.HashCost < bcrypt.MinCost || cfg.Token.HashCost > bcrypt.MaxCost {
		cfg.Token.HashCost = bcrypt.DefaultCost
	}
	if cfg.RateLimit.MePerMinute < 1 {
		cfg.RateLimit.MePerMinute = 10
	}

	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether side effects such as sending mails are enabled.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (d DatabaseConfig) validate() error {
	if d.Host == "" || d.Port == "" || d.User == "" || d.Password == "" || d.Name == "" {
		return ErrMissingDatabaseConfig
	}
	return nil
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envBool(k string, d bool) bool {
	switch strings.ToLower(os.Getenv(k)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envList(k string, d []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return d
	}
	return out
}
