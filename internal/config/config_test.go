package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8888, cfg.Server.Port)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 1.0, cfg.AI.RequestsPerSecond)
	assert.Equal(t, 4, cfg.Queue.MaxWorkers)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prlens.toml")
	content := `
[server]
port = 9999

[github]
token = "tok"
webhook_secret = "sec"

[ai]
provider = "anthropic"
api_key = "key"
model = "claude-3-haiku"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "tok", cfg.GitHub.Token)
	assert.Equal(t, "sec", cfg.GitHub.WebhookSecret)
	assert.Equal(t, "anthropic", cfg.AI.Provider)
	assert.Equal(t, "claude-3-haiku", cfg.AI.Model)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prlens.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 9999\n"), 0644))

	t.Setenv("PRLENS_SERVER_PORT", "7777")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Server.Port)
}

func TestLoadEnvMultiWordKeys(t *testing.T) {
	t.Setenv("PRLENS_AI_API_KEY", "env-key")
	t.Setenv("PRLENS_GITHUB_WEBHOOK_SECRET", "env-secret")
	t.Setenv("PRLENS_QUEUE_MAX_WORKERS", "9")
	t.Setenv("PRLENS_AI_REQUESTS_PER_SECOND", "2.5")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.AI.APIKey)
	assert.Equal(t, "env-secret", cfg.GitHub.WebhookSecret)
	assert.Equal(t, 9, cfg.Queue.MaxWorkers)
	assert.Equal(t, 2.5, cfg.AI.RequestsPerSecond)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Error(t, Validate(cfg), "openai without api key must fail")

	cfg.AI.APIKey = "key"
	assert.NoError(t, Validate(cfg))

	cfg.AI.Provider = "ollama"
	cfg.AI.APIKey = ""
	assert.NoError(t, Validate(cfg), "ollama needs no key")

	cfg.AI.Provider = "skynet"
	assert.Error(t, Validate(cfg))

	cfg.AI.Provider = "ollama"
	cfg.Server.Port = 0
	assert.Error(t, Validate(cfg))
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prlens.toml")

	require.NoError(t, InitConfig(path))
	assert.Error(t, InitConfig(path), "must not overwrite an existing file")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.AI.Provider)
}
