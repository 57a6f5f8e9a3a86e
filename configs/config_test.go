package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("DB_PORT", "")

	cfg := LoadConfig("does-not-exist.env")

	assert.Equal(t, 3004, cfg.AppPort)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, 100, cfg.RateLimitMax)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg := LoadConfig("does-not-exist.env")

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "s3cr3t", cfg.JWTSecret)
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.Local, Config{}.Location())
	assert.Equal(t, time.Local, Config{Timezone: "Not/AZone"}.Location())

	loc := Config{Timezone: "UTC"}.Location()
	assert.Equal(t, "UTC", loc.String())
}
