package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCfg_Defaults(t *testing.T) {
	cfg, err := LoadCfg("testdata/missing.env")

	require.NoError(t, err)
	assert.Equal(t, StoragePG, cfg.Storage)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "0.0.0.0:9090", cfg.Grpc.Addr())
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 2*time.Second, cfg.Session.ErrorHold)
	assert.Equal(t, "deskcalc", cfg.DB.DBName)
	assert.Equal(t, "deskcalc.operations", cfg.Kafka.Topic)
	assert.True(t, cfg.CacheEnabled)
	assert.Len(t, cfg.Server.AllowOrigins, 4)
}

func TestLoadCfg_FromEnv(t *testing.T) {
	t.Setenv("CALCULATOR_STORAGE", "mongo")
	t.Setenv("CALCULATOR_LOG_LEVEL", "debug")
	t.Setenv("CALCULATOR_SESSION_ERROR_HOLD", "500ms")
	t.Setenv("CALCULATOR_SERVER_PORT", "18080")
	t.Setenv("CALCULATOR_EVENTS_ENABLED", "false")
	t.Setenv("CALCULATOR_MONGO_URI", "mongodb://mongo:27017")

	cfg, err := LoadCfg("testdata/missing.env")

	require.NoError(t, err)
	assert.Equal(t, StorageMongo, cfg.Storage)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 500*time.Millisecond, cfg.Session.ErrorHold)
	assert.Equal(t, "18080", cfg.Server.Port)
	assert.False(t, cfg.EventsEnabled)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo.URI)
}

func TestLoadCfg_UnknownStorage(t *testing.T) {
	t.Setenv("CALCULATOR_STORAGE", "sqlite")

	_, err := LoadCfg("testdata/missing.env")

	assert.ErrorContains(t, err, "storage must be")
}
