package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the development signing secret used when JWT_SECRET is unset
const DefaultJWTSecret = "your-jwt-secret-key"

var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set in release mode")

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	Server    ServerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Workers   WorkerConfig
}

type DatabaseConfig struct {
	Driver       string
	DSN          string
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type ServerConfig struct {
	Port    string
	GinMode string
	// Proxies whose X-Forwarded-For header is believed. Empty trusts none.
	TrustedProxies []string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	LoginPerSecond float64
	LoginBurst     int
}

type WorkerConfig struct {
	DischargeSweepInterval time.Duration
	DoctorsCacheTTL        time.Duration
}

func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "mysql"),
			DSN:          getEnv("DB_DSN", ""),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "3306"),
			User:         getEnv("DB_USER", "root"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "hospital_backoffice"),
			MaxOpenConns: parseInt(getEnv("DB_MAX_OPEN_CONNS", "100"), 100),
			MaxIdleConns: parseInt(getEnv("DB_MAX_IDLE_CONNS", "10"), 10),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", DefaultJWTSecret),
			Expiry: parseDuration(getEnv("JWT_EXPIRY", "3h"), 3*time.Hour),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "5000"),
			GinMode:        getEnv("GIN_MODE", "debug"),
			TrustedProxies: parseList(getEnv("TRUSTED_PROXIES", "")),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		RateLimit: RateLimitConfig{
			LoginPerSecond: parseFloat(getEnv("LOGIN_RATE_PER_SEC", "1"), 1),
			LoginBurst:     parseInt(getEnv("LOGIN_RATE_BURST", "5"), 5),
		},
		Workers: WorkerConfig{
			DischargeSweepInterval: parseDuration(getEnv("DISCHARGE_SWEEP_INTERVAL", "1m"), time.Minute),
			DoctorsCacheTTL:        parseDuration(getEnv("DOCTORS_CACHE_TTL", "5m"), 5*time.Minute),
		},
	}

	return config
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.Server.GinMode == "release"
}

// Validate rejects settings that are only acceptable during development.
func (c *Config) Validate() error {
	if c.IsRelease() && c.JWT.Secret == DefaultJWTSecret {
		return ErrDefaultJWTSecret
	}
	return nil
}

// ConnectionString builds the DSN for the configured driver.
// DB_DSN, when set, is used as-is.
func (d DatabaseConfig) ConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}

	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			d.Host, d.Port, d.User, d.Password, d.Database)
	case "sqlite":
		return d.Database + ".db"
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User, d.Password, d.Host, d.Port, d.Database)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil || duration <= 0 {
		fmt.Printf("Warning: Invalid duration format '%s', using %s\n", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func parseList(s string) []string {
	items := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
