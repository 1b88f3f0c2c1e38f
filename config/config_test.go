package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Addr != ":8000" {
		t.Errorf("default addr = %q", cfg.Server.Addr)
	}
	if cfg.Index.ChunkWords != 50 {
		t.Errorf("default chunk_words = %d", cfg.Index.ChunkWords)
	}
	if cfg.Retrieve.TopK != 2 {
		t.Errorf("default top_k = %d", cfg.Retrieve.TopK)
	}
	if cfg.Ask.WordBudget != 200 {
		t.Errorf("default word_budget = %d", cfg.Ask.WordBudget)
	}
	if cfg.OpenAI.Model != "gpt-3.5-turbo" {
		t.Errorf("default model = %q", cfg.OpenAI.Model)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docqa.yaml")
	content := `
server:
  addr: ":9100"
index:
  chunk_words: 80
retrieve:
  top_k: 5
openai:
  timeout: 10s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Addr != ":9100" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Index.ChunkWords != 80 {
		t.Errorf("chunk_words = %d", cfg.Index.ChunkWords)
	}
	if cfg.Retrieve.TopK != 5 {
		t.Errorf("top_k = %d", cfg.Retrieve.TopK)
	}
	if cfg.OpenAI.Timeout != 10*time.Second {
		t.Errorf("timeout = %v", cfg.OpenAI.Timeout)
	}
	// Untouched sections keep their defaults.
	if cfg.Ask.WordBudget != 200 {
		t.Errorf("word_budget = %d", cfg.Ask.WordBudget)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docqa.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4")
	t.Setenv("DOCQA_DATA_DIR", "/var/lib/docqa")
	t.Setenv("DOCQA_ADDR", ":7000")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("api key = %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4" {
		t.Errorf("model = %q", cfg.OpenAI.Model)
	}
	if cfg.Store.DataDir != "/var/lib/docqa" {
		t.Errorf("data_dir = %q", cfg.Store.DataDir)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
}

func TestAPIKeyNeverReadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docqa.yaml")
	if err := os.WriteFile(path, []byte("openai:\n  apikey: leaked\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OpenAI.APIKey != "" {
		t.Errorf("api key should only come from the environment, got %q", cfg.OpenAI.APIKey)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero chunk words", func(c *Config) { c.Index.ChunkWords = 0 }},
		{"zero top_k", func(c *Config) { c.Retrieve.TopK = 0 }},
		{"negative word budget", func(c *Config) { c.Ask.WordBudget = -1 }},
		{"b out of range", func(c *Config) { c.Index.B = 1.5 }},
		{"non-positive k1", func(c *Config) { c.Index.K1 = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
