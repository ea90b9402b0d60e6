package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SESSION_SECRET", "session-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 8*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Session.CookieSecure)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "http://localhost:8080/uploads", cfg.Storage.BaseURL)
	assert.Equal(t, 10, cfg.RateLimit.LoginPerMinute)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SESSION_SECRET", "session-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.True(t, cfg.Session.CookieSecure, "production defaults to secure cookies")
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing db password", map[string]string{"SESSION_SECRET": "s"}},
		{"missing session secret", map[string]string{"DB_PASSWORD": "p"}},
		{"bad port", map[string]string{"DB_PASSWORD": "p", "SESSION_SECRET": "s", "APP_PORT": "eighty"}},
		{"bad ttl", map[string]string{"DB_PASSWORD": "p", "SESSION_SECRET": "s", "SESSION_TTL": "forever"}},
		{"bad bool", map[string]string{"DB_PASSWORD": "p", "SESSION_SECRET": "s", "DB_AUTO_MIGRATE": "maybe"}},
		{"zero burst", map[string]string{"DB_PASSWORD": "p", "SESSION_SECRET": "s", "LOGIN_RATE_BURST": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_PASSWORD", "")
			t.Setenv("SESSION_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 5433, Name: "ers", SSLMode: "disable"}}
	assert.Equal(t, "postgres://u:p@db:5433/ers?sslmode=disable", cfg.DatabaseURL())
}
