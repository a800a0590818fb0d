package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smartpick/smartpick/core/prompt"
	"github.com/smartpick/smartpick/providers/ai"
)

func builtinShadow() prompt.Template {
	return prompt.Template{
		ID:     "summarize",
		Name:   "My summarize",
		Prompt: "custom {{selection}}",
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoad_MissingFileReturnsDefaults verifies a nonexistent path is not an
// error.
func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("SMARTPICK_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Provider.Type != string(ai.ProviderOpenAI) {
		t.Errorf("Provider.Type = %q, want the OpenAI default", cfg.Provider.Type)
	}
	if cfg.Session.MaxHistoryTurns != 10 {
		t.Errorf("MaxHistoryTurns = %d, want 10", cfg.Session.MaxHistoryTurns)
	}
}

// TestLoad_MergesFileOverDefaults verifies file values win while unspecified
// fields keep their defaults.
func TestLoad_MergesFileOverDefaults(t *testing.T) {
	t.Setenv("SMARTPICK_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	path := writeConfig(t, `
provider:
  type: anthropic
  api_url: https://api.anthropic.com/v1
  default_model: claude-3-5-haiku-20241022
session:
  multi_turn: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Provider.Type != "anthropic" {
		t.Errorf("Provider.Type = %q", cfg.Provider.Type)
	}
	if !cfg.Session.MultiTurn {
		t.Error("MultiTurn not set from file")
	}
	if cfg.Session.MaxHistoryTurns != 10 {
		t.Errorf("MaxHistoryTurns = %d, want the default kept", cfg.Session.MaxHistoryTurns)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want the default kept", cfg.Logging.Level)
	}
}

// TestLoad_InvalidYAML verifies malformed files fail loudly.
func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "provider: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

// TestLoad_EnvironmentOverridesKey verifies the generic key always wins and
// the provider-specific key fills a gap.
func TestLoad_EnvironmentOverridesKey(t *testing.T) {
	path := writeConfig(t, `
provider:
  type: anthropic
  api_key: from-file
`)

	t.Setenv("SMARTPICK_API_KEY", "from-env")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Provider.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want the generic env var to win", cfg.Provider.APIKey)
	}

	t.Setenv("SMARTPICK_API_KEY", "")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Provider.APIKey != "from-file" {
		t.Errorf("APIKey = %q, want the file value kept", cfg.Provider.APIKey)
	}

	emptyKeyPath := writeConfig(t, "provider:\n  type: anthropic\n")
	t.Setenv("ANTHROPIC_API_KEY", "provider-env")
	cfg, err = Load(emptyKeyPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Provider.APIKey != "provider-env" {
		t.Errorf("APIKey = %q, want the provider-specific env var", cfg.Provider.APIKey)
	}
}

// TestAIConfig verifies the provider section maps onto the client config.
func TestAIConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider.Type = "ollama"
	cfg.Provider.APIURL = "http://localhost:11434/v1"
	cfg.Provider.DefaultModel = "llama3.1:8b"

	aiConfig := cfg.AIConfig()
	if aiConfig.Provider != ai.ProviderOllama {
		t.Errorf("Provider = %q", aiConfig.Provider)
	}
	if aiConfig.DefaultModel != "llama3.1:8b" {
		t.Errorf("DefaultModel = %q", aiConfig.DefaultModel)
	}
}

// TestAllTemplates_UserShadowsBuiltin verifies a user template with a builtin
// id replaces it while the other builtins survive.
func TestAllTemplates_UserShadowsBuiltin(t *testing.T) {
	cfg := DefaultConfig()

	baseline := len(cfg.AllTemplates())
	if baseline == 0 {
		t.Fatal("no templates at all")
	}

	cfg.Templates = append(cfg.Templates, builtinShadow())
	merged := cfg.AllTemplates()
	if len(merged) != baseline {
		t.Errorf("len = %d, want %d (shadow replaces, not adds)", len(merged), baseline)
	}

	found := false
	for _, template := range merged {
		if template.ID == "summarize" {
			found = true
			if template.Prompt != "custom {{selection}}" {
				t.Errorf("summarize prompt = %q, want the user override", template.Prompt)
			}
		}
	}
	if !found {
		t.Error("shadowed template missing from the merged list")
	}
}
