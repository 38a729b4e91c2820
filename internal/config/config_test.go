package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "simulator", cfg.Gateway.Mode)
	assert.Equal(t, int64(10000), cfg.Gateway.HighValueLimit)
	assert.InDelta(t, 0.95, cfg.Gateway.ApprovalRate, 0.0001)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PAYMENTS_SERVER__PORT", "9090")
	t.Setenv("PAYMENTS_STORAGE__DRIVER", "postgres")
	t.Setenv("PAYMENTS_GATEWAY__HIGH_VALUE_LIMIT", "5000")
	t.Setenv("PAYMENTS_LOGGER__LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, int64(5000), cfg.Gateway.HighValueLimit)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadConfig_RejectsUnknownStorageDriver(t *testing.T) {
	t.Setenv("PAYMENTS_STORAGE__DRIVER", "cassandra")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_RejectsOutOfRangeApprovalRate(t *testing.T) {
	t.Setenv("PAYMENTS_GATEWAY__APPROVAL_RATE", "1.5")

	_, err := LoadConfig()
	assert.Error(t, err)
}
