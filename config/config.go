package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Database drivers understood by the database package.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort     string
	ServerHost     string
	RequestTimeout time.Duration
	CORSOrigins    []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret    string
	JWTExpiresIn time.Duration

	RabbitMQURL string

	S3BucketName string
	AWSRegion    string

	LogLevel  string
	LogFormat string
}

// secrets are read from SECRETS_DIR before falling back to the environment.
var secretKeys = map[string]string{
	"DB_USER":        "db_user",
	"DB_PASSWORD":    "db_password",
	"JWT_SECRET":     "jwt_secret",
	"REDIS_PASSWORD": "redis_password",
	"RABBITMQ_URL":   "rabbitmq_url",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "chefcourse")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("SQLITE_PATH", "chefcourse.db")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_EXPIRES_IN", "7d")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// LoadConfig reads configuration from the environment, with sensitive values
// optionally supplied as Docker secrets, and validates the result.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	env := GetEnvironment()
	// CI has no secrets mount; everything comes from the environment.
	if env != CI {
		dir := secretsDir()
		for key, file := range secretKeys {
			if value := readSecret(dir, file); value != "" {
				v.Set(key, value)
			}
		}
	}

	cfg := &Config{
		Environment:   env,
		ServerPort:    v.GetString("SERVER_PORT"),
		ServerHost:    v.GetString("SERVER_HOST"),
		CORSOrigins:   splitList(v.GetString("CORS_ORIGINS")),
		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBSSLMode:     v.GetString("DB_SSL_MODE"),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		RedisURL:      v.GetString("REDIS_URL"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		RabbitMQURL:   v.GetString("RABBITMQ_URL"),
		S3BucketName:  v.GetString("S3_BUCKET_NAME"),
		AWSRegion:     v.GetString("AWS_REGION"),
		LogLevel:      strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:     strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	var errs ValidationErrors
	var err error
	if cfg.RequestTimeout, err = ParseDuration(v.GetString("REQUEST_TIMEOUT")); err != nil {
		errs = append(errs, ValidationError{Field: "REQUEST_TIMEOUT", Message: err.Error()})
	}
	if cfg.JWTExpiresIn, err = ParseDuration(v.GetString("JWT_EXPIRES_IN")); err != nil {
		errs = append(errs, ValidationError{Field: "JWT_EXPIRES_IN", Message: err.Error()})
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %w", errs)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// ServerAddr is the listen address for the HTTP server.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

// PostgresDSN builds a key/value DSN for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// ParseDuration accepts Go durations plus a day suffix, so "7d" and "168h"
// are the same value.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

func secretsDir() string {
	if dir := os.Getenv("SECRETS_DIR"); dir != "" {
		return dir
	}
	return "/run/secrets"
}

// readSecret reads a Docker secret, returning "" when it does not exist.
func readSecret(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
