package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDatabaseConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "")
		t.Setenv("MIGRATIONS_AUTO", "")

		cfg := GetDatabaseConfig()

		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, "5432", cfg.Port)
		assert.True(t, cfg.AutoMigrate)
	})

	t.Run("FromEnv", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("MIGRATIONS_AUTO", "false")

		cfg := GetDatabaseConfig()

		assert.Equal(t, "db.internal", cfg.Host)
		assert.False(t, cfg.AutoMigrate)
	})
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("BOOKING_AUTO_CONFIRM", "not-a-bool")
	assert.True(t, getEnvBool("BOOKING_AUTO_CONFIRM", true))

	t.Setenv("BOOKING_AUTO_CONFIRM", "1")
	assert.True(t, getEnvBool("BOOKING_AUTO_CONFIRM", false))
}

func TestGetRedisConfig(t *testing.T) {
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_PORT", "6390")

	cfg := GetRedisConfig()

	assert.Equal(t, 3, cfg.DB)
	assert.Equal(t, "6390", cfg.Port)
}
