package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "lotto645", cfg.MongoDB.Database)
	assert.Equal(t, "https://www.dhlottery.co.kr", cfg.LottoAPI.BaseURL)
	assert.Equal(t, time.Hour, cfg.LottoAPI.CacheTTL)
	assert.Equal(t, 23, cfg.Engine.HighThreshold)
	assert.Equal(t, 24*60*60, cfg.JWT.ExpiresIn)
	assert.Empty(t, cfg.MongoDB.URI)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  port: "9000"
mongodb:
  database: draws_test
lottoapi:
  cachettl: 5m
  mockapi: true
engine:
  defaultwindow: 30
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "draws_test", cfg.MongoDB.Database)
	assert.Equal(t, 5*time.Minute, cfg.LottoAPI.CacheTTL)
	assert.True(t, cfg.LottoAPI.MockAPI)
	assert.Equal(t, 30, cfg.Engine.DefaultWindow)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
}

func TestLoadConfig_PortOverride(t *testing.T) {
	t.Setenv("PORT", "10000")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "10000", cfg.Server.Port)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOTTO_DOTENV_TEST=yes\n"), 0o600))
	t.Setenv("LOTTO_DOTENV_TEST", "")
	os.Unsetenv("LOTTO_DOTENV_TEST")

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "yes", GetEnv("LOTTO_DOTENV_TEST", "no"))
	assert.Equal(t, "fallback", GetEnv("LOTTO_DOTENV_UNSET", "fallback"))
}
