// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	// Database – either set DatabaseURL directly, or the individual MySQL fields.
	// For the sqlite driver DatabaseURL is the database file path.
	Driver      string
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string

	// Connection pool bound and per-query deadline.
	MaxOpenConns int
	QueryTimeout time.Duration

	// Server
	Debug       bool
	Environment string
	Port        string
	TLSDomains  []string

	// Security middleware
	AllowedOrigins  []string
	RateLimitWindow time.Duration
	RateLimitMax    int

	// Filter defaults for the best-score endpoints.
	DefaultEventID int
	DefaultGender  string

	// Base URL the API client talks to.
	APIBaseURL string

	// MySQL DSN the snapshot tool copies from.
	SnapshotSourceDSN string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	cfg := FromViper(newViper())
	if err := cfg.Validate(); err != nil {
		log.Fatal("config: ", err)
	}
	return cfg
}

// FromViper builds a Config from an already populated viper instance,
// applying defaults for anything unset.
func FromViper(v *viper.Viper) *Config {
	// Defaults
	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("MYSQL_HOST", "localhost")
	v.SetDefault("MYSQL_PORT", "3306")
	v.SetDefault("MYSQL_USER", "root")
	v.SetDefault("MYSQL_DATABASE", "jfa_heatwave_db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_QUERY_TIMEOUT", "10s")
	v.SetDefault("NODE_ENV", "development")
	v.SetDefault("PORT", ":3001")
	v.SetDefault("DEBUG", false)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,https://localhost:3000")
	v.SetDefault("RATE_LIMIT_WINDOW_MS", 900000)
	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 100)
	v.SetDefault("DEFAULT_EVENT_ID", 374)
	v.SetDefault("DEFAULT_GENDER", "Men")
	v.SetDefault("API_BASE_URL", "http://localhost:3001")

	return &Config{
		Driver:          strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		DBUser:          v.GetString("MYSQL_USER"),
		DBPass:          v.GetString("MYSQL_PASSWORD"),
		DBHost:          v.GetString("MYSQL_HOST"),
		DBPort:          v.GetString("MYSQL_PORT"),
		DBName:          v.GetString("MYSQL_DATABASE"),
		MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		QueryTimeout:    v.GetDuration("DB_QUERY_TIMEOUT"),
		Debug:           v.GetBool("DEBUG"),
		Environment:     v.GetString("NODE_ENV"),
		Port:            normalizePort(v.GetString("PORT")),
		TLSDomains:      splitTrimmed(v.GetString("TLS_DOMAINS")),
		AllowedOrigins:  splitTrimmed(v.GetString("ALLOWED_ORIGINS")),
		RateLimitWindow: time.Duration(v.GetInt64("RATE_LIMIT_WINDOW_MS")) * time.Millisecond,
		RateLimitMax:    v.GetInt("RATE_LIMIT_MAX_REQUESTS"),
		DefaultEventID:  v.GetInt("DEFAULT_EVENT_ID"),
		DefaultGender:   v.GetString("DEFAULT_GENDER"),
		APIBaseURL:      strings.TrimRight(v.GetString("API_BASE_URL"), "/"),

		SnapshotSourceDSN: v.GetString("SNAPSHOT_SOURCE_DSN"),
	}
}

// DSN returns the connection string for the configured driver.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.Driver {
	case DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.DBUser, c.DBPass),
			Host:     net.JoinHostPort(c.DBHost, c.DBPort),
			Path:     "/" + c.DBName,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	default:
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true",
			c.DBUser,
			c.DBPass,
			c.DBHost,
			c.DBPort,
			c.DBName,
		)
	}
}

// Validate reports the first setting that makes the config unusable.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverMySQL, DriverPostgres:
	case DriverSQLite:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be set for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.Driver)
	}
	if c.MaxOpenConns <= 0 {
		return errors.New("DB_MAX_OPEN_CONNS must be positive")
	}
	if c.QueryTimeout <= 0 {
		return errors.New("DB_QUERY_TIMEOUT must be positive")
	}
	if c.RateLimitWindow <= 0 || c.RateLimitMax <= 0 {
		return errors.New("RATE_LIMIT_WINDOW_MS and RATE_LIMIT_MAX_REQUESTS must be positive")
	}
	return nil
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

// normalizePort accepts both "3001" and ":3001".
func normalizePort(p string) string {
	p = strings.TrimSpace(p)
	if p != "" && !strings.Contains(p, ":") {
		return ":" + p
	}
	return p
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
