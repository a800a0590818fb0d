// Package config loads the CLI configuration from YAML, merges it over
// defaults, and applies environment variable overrides for credentials.
package config

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/smartpick/smartpick/core/prompt"
	"github.com/smartpick/smartpick/providers/ai"
)

type Config struct {
	Provider  ProviderConfig    `yaml:"provider"`
	Session   SessionConfig     `yaml:"session"`
	Logging   LoggingConfig     `yaml:"logging"`
	Templates []prompt.Template `yaml:"templates"`
}

type ProviderConfig struct {
	Type         string  `yaml:"type"`
	APIURL       string  `yaml:"api_url"`
	APIKey       string  `yaml:"api_key"`
	DefaultModel string  `yaml:"default_model"`
	Temperature  float32 `yaml:"temperature"`
	MaxTokens    int     `yaml:"max_tokens"`
}

type SessionConfig struct {
	MultiTurn       bool `yaml:"multi_turn"`
	MaxHistoryTurns int  `yaml:"max_history_turns"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() Config {
	return Config{
		Provider: ProviderConfig{
			Type:        string(ai.ProviderOpenAI),
			APIURL:      "https://api.openai.com/v1",
			Temperature: 0.7,
			MaxTokens:   1000,
		},
		Session: SessionConfig{
			MultiTurn:       false,
			MaxHistoryTurns: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file and merges it over defaults.
// If the file does not exist, defaults are returned without error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("No config file found, using defaults", "path", path)
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv lets credentials live outside the config file. SMARTPICK_API_KEY
// always wins; the provider-specific keys are consulted when the generic one
// is absent.
func applyEnv(cfg *Config) {
	if key := os.Getenv("SMARTPICK_API_KEY"); key != "" {
		cfg.Provider.APIKey = key
		return
	}
	if cfg.Provider.APIKey != "" {
		return
	}
	switch ai.ProviderType(cfg.Provider.Type) {
	case ai.ProviderAnthropic:
		cfg.Provider.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case ai.ProviderOllama:
		// Ollama needs no credentials.
	default:
		cfg.Provider.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

// AIConfig converts the provider section into the client configuration.
func (c Config) AIConfig() ai.Config {
	return ai.Config{
		Provider:     ai.ProviderType(c.Provider.Type),
		APIURL:       c.Provider.APIURL,
		APIKey:       c.Provider.APIKey,
		DefaultModel: c.Provider.DefaultModel,
		Temperature:  c.Provider.Temperature,
		MaxTokens:    c.Provider.MaxTokens,
	}
}

// AllTemplates returns the built-in templates followed by any user-defined
// templates from the config file. A user template with the same id as a
// built-in shadows it.
func (c Config) AllTemplates() []prompt.Template {
	builtins := prompt.Builtins()
	if len(c.Templates) == 0 {
		return builtins
	}
	byID := make(map[string]bool, len(c.Templates))
	for _, t := range c.Templates {
		byID[t.ID] = true
	}
	merged := make([]prompt.Template, 0, len(builtins)+len(c.Templates))
	for _, t := range builtins {
		if !byID[t.ID] {
			merged = append(merged, t)
		}
	}
	merged = append(merged, c.Templates...)
	return merged
}
