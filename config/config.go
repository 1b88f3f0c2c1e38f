package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the docqa service.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Index    IndexConfig    `yaml:"index"`
	Retrieve RetrieveConfig `yaml:"retrieve"`
	Ask      AskConfig      `yaml:"ask"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Scan     ScanConfig     `yaml:"scan"`
}

// ServerConfig holds the HTTP listener configuration.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig holds index storage configuration.
type StoreConfig struct {
	DataDir string `yaml:"data_dir"`
}

// IndexConfig holds ingestion and indexing configuration.
type IndexConfig struct {
	ChunkWords        int      `yaml:"chunk_words"`
	CleanHeaderFooter bool     `yaml:"clean_header_footer"`
	Stemming          bool     `yaml:"stemming"`
	K1                float64  `yaml:"k1"`
	B                 float64  `yaml:"b"`
	Includes          []string `yaml:"includes"`
	Excludes          []string `yaml:"excludes"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK int `yaml:"top_k"`
}

// AskConfig holds answer-synthesis configuration.
type AskConfig struct {
	WordBudget int `yaml:"word_budget"`
}

// OpenAIConfig holds completion service configuration. The API key is taken
// from the environment only, never from the file.
type OpenAIConfig struct {
	APIKey  string        `yaml:"-"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// ScanConfig holds URL scan configuration.
type ScanConfig struct {
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8000",
		},
		Store: StoreConfig{
			DataDir: "data",
		},
		Index: IndexConfig{
			ChunkWords:        50,
			CleanHeaderFooter: true,
			Stemming:          true,
			K1:                1.2,
			B:                 0.75,
			Includes:          []string{"**/*"},
			Excludes:          []string{"**/.*"},
		},
		Retrieve: RetrieveConfig{
			TopK: 2,
		},
		Ask: AskConfig{
			WordBudget: 200,
		},
		OpenAI: OpenAIConfig{
			Model:   "gpt-3.5-turbo",
			Timeout: 30 * time.Second,
		},
		Scan: ScanConfig{
			FetchTimeout: 15 * time.Second,
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// applyEnv overlays environment variables on the loaded file values.
func (c *Config) applyEnv() {
	c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.OpenAI.Model = v
	}
	if v := os.Getenv("DOCQA_DATA_DIR"); v != "" {
		c.Store.DataDir = v
	}
	if v := os.Getenv("DOCQA_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

func (c *Config) Validate() error {
	if c.Index.ChunkWords <= 0 {
		return fmt.Errorf("index.chunk_words must be positive, got %d", c.Index.ChunkWords)
	}
	if c.Retrieve.TopK <= 0 {
		return fmt.Errorf("retrieve.top_k must be positive, got %d", c.Retrieve.TopK)
	}
	if c.Ask.WordBudget <= 0 {
		return fmt.Errorf("ask.word_budget must be positive, got %d", c.Ask.WordBudget)
	}
	if c.Index.K1 <= 0 || c.Index.B < 0 || c.Index.B > 1 {
		return fmt.Errorf("index.k1 must be positive and index.b in [0,1]")
	}
	return nil
}
