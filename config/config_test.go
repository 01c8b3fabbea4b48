package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "STORAGE_BACKEND", "DATABASE_URL", "DEFAULT_IDR_TO_SGD", "SEED_CATALOG", "RATE_LIMIT_MAX_REQUESTS", "RATE_LIMIT_PERIOD_MIN", "STORE_TIMEOUT_SEC"} {
		t.Setenv(key, "") // restaura o valor original ao fim do teste
		os.Unsetenv(key)
	}
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, 0.000085, cfg.DefaultIDRToSGD)
	assert.True(t, cfg.SeedCatalog)
	assert.Equal(t, 100, cfg.RateLimitMaxRequests)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, time.Minute, cfg.RateLimitPeriod)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/estoque?sslmode=disable")
	t.Setenv("DB_TIMEOUT_SEC", "3")
	t.Setenv("DEFAULT_IDR_TO_SGD", "0.0001")
	t.Setenv("SEED_CATALOG", "false")
	t.Setenv("AUTO_MIGRATE", "0")
	t.Setenv("ENV", "production")

	cfg := LoadConfig()

	assert.Equal(t, BackendPostgres, cfg.StorageBackend)
	assert.Equal(t, "postgres://u:p@localhost/estoque?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, 3*time.Second, cfg.DBTimeout)
	assert.Equal(t, 0.0001, cfg.DefaultIDRToSGD)
	assert.False(t, cfg.SeedCatalog)
	assert.False(t, cfg.AutoMigrate)
	assert.False(t, cfg.IsDevelopment())
}

func TestHelpers_FallBackOnInvalidValues(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_FLOAT", "muito")
	t.Setenv("X_BOOL", "talvez")

	assert.Equal(t, 7, getIntEnv("X_INT", 7))
	assert.Equal(t, 1.5, getFloatEnv("X_FLOAT", 1.5))
	assert.True(t, getBoolEnv("X_BOOL", true))
	assert.Equal(t, time.Duration(2), getDurationEnv("X_INT", 2))
}
