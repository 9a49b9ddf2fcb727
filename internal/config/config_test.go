package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("USE_MEMORY_STORE", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("INSTANCE_CONNECTION_NAME", "")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "user_session", cfg.SessionCookie)
	assert.Equal(t, "9999999999", cfg.AdminPhone)
	assert.False(t, cfg.CookieSecure)
	assert.NotEmpty(t, cfg.SessionSecret)
}

func TestFromEnvLegacyMemoryFlag(t *testing.T) {
	t.Setenv("USE_MEMORY_STORE", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
}

func TestFromEnvRejectsUnknownDriver(t *testing.T) {
	t.Setenv("USE_MEMORY_STORE", "")
	t.Setenv("STORAGE_DRIVER", "localstorage")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnvProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SESSION_SECRET", "")

	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("SESSION_SECRET", "s3cret")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.CookieSecure)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5433"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5433 sslmode=disable", d.DSN())

	d.InstanceConnectionName = "proj:region:inst"
	assert.Contains(t, d.DSN(), "host=/cloudsql/proj:region:inst")

	d.URL = "postgres://x"
	assert.Equal(t, "postgres://x", d.DSN())
}
