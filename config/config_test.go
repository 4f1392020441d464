package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, 30*time.Second, cfg.StageTimeout)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
confluence_url: https://wiki.example.com
confluence_username: ada
confluence_api_token: tok
output_dir: /tmp/out
rate_limit: 5
stage_timeout: 10s
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://wiki.example.com", cfg.ConfluenceURL)
	assert.Equal(t, "ada", cfg.ConfluenceUsername)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, 10*time.Second, cfg.StageTimeout)
	// Unset fields keep their defaults.
	assert.Equal(t, time.Minute, cfg.RateWindow)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("confluence_url: https://file.example.com\n"), 0644))

	t.Setenv("CONFLUENCE_URL", "https://env.example.com")
	t.Setenv("RATE_LIMIT", "7")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("ENABLE_METRICS", "false")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.ConfluenceURL)
	assert.Equal(t, 7, cfg.RateLimit)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.False(t, cfg.MetricsEnabled)
}

func TestInvalidEnvValues(t *testing.T) {
	t.Setenv("RATE_LIMIT", "lots")
	_, err := Load("")
	assert.Error(t, err)
}

func TestInvalidDurationEnv(t *testing.T) {
	t.Setenv("STAGE_TIMEOUT", "soon")
	_, err := Load("")
	assert.Error(t, err)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFLUENCE_URL")
	assert.Contains(t, err.Error(), "CONFLUENCE_API_TOKEN")

	cfg.ConfluenceURL = "https://wiki.example.com"
	cfg.ConfluenceUsername = "ada"
	cfg.ConfluenceAPIToken = "tok"
	assert.NoError(t, cfg.Validate())
}
