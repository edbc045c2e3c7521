package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 5, cfg.WorkerCount)
	assert.Equal(t, "noreply@bookshelf.local", cfg.MailFrom)
	assert.Empty(t, cfg.SwaggerHost)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_DB", "4")
	t.Setenv("WORKER_COUNT", "12")
	t.Setenv("SWAGGER_HOST", "api.bookshelf.example.com")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 4, cfg.RedisDB)
	assert.Equal(t, 12, cfg.WorkerCount)
	assert.Equal(t, "api.bookshelf.example.com", cfg.SwaggerHost)
}

func TestLoad_BadIntFallsBackToDefault(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()

	assert.Equal(t, 2, cfg.RedisDB)
}
