// Package config loads skilleval settings from a YAML file and
// SKILLEVAL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhisek/skilleval/internal/llm"
	"github.com/abhisek/skilleval/internal/logging"
	"github.com/abhisek/skilleval/internal/store"
)

// Config is the full application configuration.
type Config struct {
	DB         string           `mapstructure:"db"`
	Log        logging.Config   `mapstructure:"log"`
	LLM        llm.Config       `mapstructure:"llm"`
	Evaluation EvaluationConfig `mapstructure:"evaluation"`
	Generation GenerationConfig `mapstructure:"generation"`
}

// EvaluationConfig controls answer scoring.
type EvaluationConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	MaxTokens   int `mapstructure:"max_tokens"`
}

// GenerationConfig controls question generation.
type GenerationConfig struct {
	Concurrency int     `mapstructure:"concurrency"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// envBindings maps config keys to the environment variables that
// override them, beyond the automatic SKILLEVAL_<KEY> form.
var envBindings = map[string]string{
	"llm.anthropic.api_key":  "SKILLEVAL_ANTHROPIC_API_KEY",
	"llm.anthropic.model":    "SKILLEVAL_ANTHROPIC_MODEL",
	"llm.openai.api_key":     "SKILLEVAL_OPENAI_API_KEY",
	"llm.openai.model":       "SKILLEVAL_OPENAI_MODEL",
	"llm.openai.base_url":    "SKILLEVAL_OPENAI_BASE_URL",
	"llm.gemini.api_key":     "SKILLEVAL_GEMINI_API_KEY",
	"llm.gemini.model":       "SKILLEVAL_GEMINI_MODEL",
	"llm.openrouter.api_key": "SKILLEVAL_OPENROUTER_API_KEY",
	"llm.openrouter.model":   "SKILLEVAL_OPENROUTER_MODEL",
	"log.level":              "SKILLEVAL_LOG_LEVEL",
	"log.file":               "SKILLEVAL_LOG_FILE",
}

// Load reads configuration. An explicit path must exist; otherwise
// skilleval.yaml is looked up in the user config dir and the working
// directory, and a missing file is not an error. When no provider key is
// configured the vendors' standard API key variables are probed.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SKILLEVAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("skilleval")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "skilleval"))
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if !cfg.LLM.HasKey() {
		if found, ok := llm.DiscoverConfig(); ok {
			adoptKey(&cfg.LLM, found)
		}
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	lc := llm.DefaultConfig()
	v.SetDefault("db", "")
	v.SetDefault("llm.provider", lc.Provider)
	v.SetDefault("llm.timeout", lc.Timeout)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", lc.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", lc.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", lc.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", lc.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", lc.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", lc.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", lc.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", lc.Retry.Multiplier)

	logc := logging.DefaultConfig()
	v.SetDefault("log.level", logc.Level)
	v.SetDefault("log.file", logc.File)
	v.SetDefault("log.max_size_mb", logc.MaxSizeMB)
	v.SetDefault("log.max_backups", logc.MaxBackups)
	v.SetDefault("log.max_age_days", logc.MaxAgeDays)

	v.SetDefault("evaluation.concurrency", 4)
	v.SetDefault("evaluation.max_tokens", 768)
	v.SetDefault("generation.concurrency", 4)
	v.SetDefault("generation.max_tokens", 1024)
	v.SetDefault("generation.temperature", 0.7)
}

// adoptKey switches cfg to the discovered provider, keeping configured
// models.
func adoptKey(cfg *llm.Config, found llm.Config) {
	cfg.Provider = found.Provider
	switch found.Provider {
	case llm.ProviderGemini:
		cfg.Gemini.APIKey = found.Gemini.APIKey
	case llm.ProviderOpenAI:
		cfg.OpenAI.APIKey = found.OpenAI.APIKey
	case llm.ProviderAnthropic:
		cfg.Anthropic.APIKey = found.Anthropic.APIKey
	case llm.ProviderOpenRouter:
		cfg.OpenRouter.APIKey = found.OpenRouter.APIKey
	}
}

// DBPath resolves the database path: the flag wins, then SKILLEVAL_DB or
// the config file, then the XDG data dir.
func (c *Config) DBPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if c.DB != "" {
		return c.DB, nil
	}
	return store.DefaultDBPath()
}
