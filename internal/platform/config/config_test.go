package config

import (
	"os"
	"testing"
	"time"

	"github.com/pscheid92/hello-env/internal/bootstrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv isolates tests from variables set on the machine running them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"ENV", "DB_PASSWORD", "HOST", "PORT", "METRICS_PORT", "SECRETS_FILE", "LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "not set", cfg.DBPassword)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Empty(t, cfg.MetricsPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, bootstrap.DefaultSecretsFile, cfg.SecretsFile)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "prod")
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("PORT", "9090")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.AppEnv)
	assert.Equal(t, "from-env", cfg.DBPassword)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoad_SecretsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("ENV", "staging")

	cfg, err := Load(map[string]string{"DB_PASSWORD": "secret123"})
	require.NoError(t, err)

	assert.Equal(t, "secret123", cfg.DBPassword)
	assert.Equal(t, "staging", cfg.AppEnv)
}

func TestLoad_SecretsWithEmptyValueStillOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "staging")

	cfg, err := Load(map[string]string{"ENV": ""})
	require.NoError(t, err)

	v, ok := cfg.Lookup("ENV")
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestLookup_InjectedSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_TOKEN", "from-env")

	cfg, err := Load(map[string]string{"API_TOKEN": "from-secrets", "EXTRA": "x"})
	require.NoError(t, err)

	v, ok := cfg.Lookup("API_TOKEN")
	assert.True(t, ok)
	assert.Equal(t, "from-secrets", v)

	v, ok = cfg.Lookup("EXTRA")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"non-numeric port", "PORT", "http", "PORT must be numeric"},
		{"port out of range", "PORT", "70000", "PORT must be between 1 and 65535"},
		{"zero metrics port", "METRICS_PORT", "0", "METRICS_PORT must be between 1 and 65535"},
		{"metrics port equals port", "METRICS_PORT", "8080", "METRICS_PORT must differ from PORT"},
		{"unknown log level", "LOG_LEVEL", "verbose", "LOG_LEVEL must be one of"},
		{"unknown log format", "LOG_FORMAT", "xml", "LOG_FORMAT must be one of"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT", "-1s", "SHUTDOWN_TIMEOUT must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSecretsPath(t *testing.T) {
	t.Setenv("SECRETS_FILE", "")
	assert.Equal(t, bootstrap.DefaultSecretsFile, SecretsPath())

	t.Setenv("SECRETS_FILE", "/tmp/custom")
	assert.Equal(t, "/tmp/custom", SecretsPath())
}
