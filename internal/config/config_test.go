package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skilleval/internal/llm"
)

// clearEnv isolates a test from the developer's environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"SKILLEVAL_DB", "SKILLEVAL_LLM_PROVIDER", "SKILLEVAL_ANTHROPIC_API_KEY",
		"SKILLEVAL_OPENAI_API_KEY", "SKILLEVAL_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skilleval.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "claude-haiku", cfg.LLM.Anthropic.Model)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Evaluation.Concurrency)
	assert.Equal(t, 0.7, cfg.Generation.Temperature)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
db: /tmp/eval.db
log:
  level: debug
llm:
  provider: openai
  timeout: 15s
  openai:
    api_key: sk-file
    model: gpt-4.1-mini
evaluation:
  concurrency: 8
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/eval.db", cfg.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-file", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4.1-mini", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 8, cfg.Evaluation.Concurrency)
	assert.Equal(t, 1024, cfg.Generation.MaxTokens)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "llm:\n  provider: openai\n  openai:\n    api_key: sk-file\n")
	t.Setenv("SKILLEVAL_LLM_PROVIDER", "anthropic")
	t.Setenv("SKILLEVAL_ANTHROPIC_API_KEY", "sk-env")
	t.Setenv("SKILLEVAL_DB", "/data/env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "sk-env", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, "/data/env.db", cfg.DB)
}

func TestLoad_DiscoversVendorKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-vendor")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-vendor", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDBPath(t *testing.T) {
	clearEnv(t)
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	cfg := &Config{DB: "/from/config.db"}
	p, err := cfg.DBPath("/from/flag.db")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.db", p)

	p, err = cfg.DBPath("")
	require.NoError(t, err)
	assert.Equal(t, "/from/config.db", p)

	p, err = (&Config{}).DBPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "skilleval", "skilleval.db"), p)
}
