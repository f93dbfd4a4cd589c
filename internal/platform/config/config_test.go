package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	require.NotNil(t, cfg)

	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 72*time.Hour, cfg.JWTExp)
	assert.Equal(t, 5*time.Second, cfg.StorageTimeout)
	assert.True(t, cfg.DBMigrate)
	assert.Contains(t, cfg.DBConnStr, "dbname=workouts_db")
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("STORAGE_TIMEOUT", "250ms")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_DB", "3")

	cfg := FromEnv()

	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTExp)
	assert.Equal(t, 250*time.Millisecond, cfg.StorageTimeout)
	assert.False(t, cfg.DBMigrate)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Contains(t, cfg.DBConnStr, "host=db.internal")
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("STORAGE_TIMEOUT", "soon")
	t.Setenv("BCRYPT_COST", "high")
	t.Setenv("DB_MIGRATE", "maybe")

	cfg := FromEnv()

	assert.Equal(t, 5*time.Second, cfg.StorageTimeout)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.DBMigrate)
}
