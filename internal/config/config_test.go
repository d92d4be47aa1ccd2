package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "JWT_EXPIRY", "PORT", "ALLOWED_ORIGINS", "TRUSTED_PROXIES", "DISCHARGE_SWEEP_INTERVAL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, time.Minute, cfg.Workers.DischargeSweepInterval)
	assert.Empty(t, cfg.Server.TrustedProxies)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_EXPIRY", "30m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,,")
	t.Setenv("LOGIN_RATE_BURST", "not-a-number")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.1")

	cfg := LoadConfig()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiry)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5, cfg.RateLimit.LoginBurst)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.Server.TrustedProxies)
}

func TestValidate_DefaultSecretInRelease(t *testing.T) {
	cfg := &Config{
		JWT:    JWTConfig{Secret: DefaultJWTSecret},
		Server: ServerConfig{GinMode: "debug"},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Server.GinMode = "release"
	assert.ErrorIs(t, cfg.Validate(), ErrDefaultJWTSecret)

	cfg.JWT.Secret = "a-real-secret"
	assert.NoError(t, cfg.Validate())
}

func TestConnectionString(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "3306", User: "u", Password: "p", Database: "hosp"}

	db.Driver = "mysql"
	assert.Equal(t, "u:p@tcp(db:3306)/hosp?charset=utf8mb4&parseTime=True&loc=UTC", db.ConnectionString())

	db.Driver = "postgres"
	assert.Contains(t, db.ConnectionString(), "dbname=hosp")

	db.Driver = "sqlite"
	assert.Equal(t, "hosp.db", db.ConnectionString())

	db.DSN = "file::memory:"
	assert.Equal(t, "file::memory:", db.ConnectionString())
}
