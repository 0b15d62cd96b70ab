package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv() {
	os.Unsetenv("APP_NAME")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("AMT_HOST")
	os.Unsetenv("AMT_PROTOCOL")
	os.Unsetenv("AMT_USERNAME")
	os.Unsetenv("AMT_PASSWORD")
}

func TestNewConfig_Defaults(t *testing.T) { //nolint:paralleltest // cannot have simultaneous tests modifying environment variables
	clearEnv()

	configPath := filepath.Join(t.TempDir(), "config", "config.yml")

	cfg, err := NewConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "amtctl", cfg.Name)
	assert.Equal(t, "DEVELOPMENT", cfg.Version)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, ProtocolHTTP, cfg.Protocol)
	assert.Equal(t, 16992, cfg.Port())
	assert.False(t, cfg.UseTLS())
	assert.Equal(t, "http://localhost:16992/wsman", cfg.Endpoint())

	// the defaults are written out on first run
	_, statErr := os.Stat(configPath)
	assert.NoError(t, statErr)
}

func TestNewConfig_EnvVars(t *testing.T) { //nolint:paralleltest // cannot have simultaneous tests modifying environment variables
	os.Setenv("APP_NAME", "testApp")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("AMT_HOST", "192.168.1.20")
	os.Setenv("AMT_PROTOCOL", "https")
	os.Setenv("AMT_USERNAME", "operator")

	defer clearEnv()

	cfg, err := NewConfig(filepath.Join(t.TempDir(), "config.yml"))
	require.NoError(t, err)

	assert.Equal(t, "testApp", cfg.Name)
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "192.168.1.20", cfg.Host)
	assert.Equal(t, 16993, cfg.Port())
	assert.True(t, cfg.UseTLS())
	assert.Equal(t, "https://192.168.1.20:16993/wsman", cfg.Endpoint())
	assert.Equal(t, "operator", cfg.Username)
}

func TestNewConfig_FileAndEnvVars(t *testing.T) { //nolint:paralleltest // cannot have simultaneous tests modifying environment variables
	clearEnv()

	configYAML := `
app:
  name: fileApp
logger:
  log_level: warn
amt:
  host: amt.example.test
  protocol: https
  username: fileuser
  password: filepassword
`
	configFilePath := filepath.Join(t.TempDir(), "test_config.yml")
	require.NoError(t, os.WriteFile(configFilePath, []byte(configYAML), 0o600))

	os.Setenv("AMT_PASSWORD", "envpassword")

	defer clearEnv()

	cfg, err := NewConfig(configFilePath)
	require.NoError(t, err)

	assert.Equal(t, "fileApp", cfg.Name)
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "amt.example.test", cfg.Host)
	assert.Equal(t, "fileuser", cfg.Username)
	assert.Equal(t, "envpassword", cfg.Password)
}

func TestNewConfig_InvalidProtocol(t *testing.T) { //nolint:paralleltest // cannot have simultaneous tests modifying environment variables
	clearEnv()

	os.Setenv("AMT_PROTOCOL", "ftp")

	defer clearEnv()

	_, err := NewConfig(filepath.Join(t.TempDir(), "config.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Protocol")
}
