package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the newsbrief pipeline.
type Config struct {
	DataDir   string          `yaml:"data_dir"`
	IndexDir  string          `yaml:"index_dir"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Generate  GenerateConfig  `yaml:"generate"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Server    ServerConfig    `yaml:"server"`
}

// IngestConfig holds news fetching and chunking configuration.
type IngestConfig struct {
	APIKeyEnv    string `yaml:"api_key_env"` // Environment variable for the NewsAPI key
	FromDays     int    `yaml:"from_days"`
	MaxArticles  int    `yaml:"max_articles"`
	ChunkWords   int    `yaml:"chunk_words"`
	OverlapWords int    `yaml:"overlap_words"`
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "ollama", "mock"
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
}

// GenerateConfig holds generation backend configuration.
type GenerateConfig struct {
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	MaxTokens      int    `yaml:"max_tokens"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UseChat        bool   `yaml:"use_chat"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK int `yaml:"top_k"`
}

// ServerConfig holds web UI configuration.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir:  "data",
		IndexDir: "index_data",
		Ingest: IngestConfig{
			APIKeyEnv:    "NEWSAPI_KEY",
			FromDays:     1,
			MaxArticles:  5,
			ChunkWords:   350,
			OverlapWords: 50,
		},
		Embedding: EmbeddingConfig{
			Provider:  "ollama",
			Model:     "nomic-embed-text",
			BaseURL:   "http://localhost:11434/v1",
			Dimension: 768,
			BatchSize: 100,
		},
		Generate: GenerateConfig{
			BaseURL:        "http://localhost:11434",
			Model:          "llama3:latest",
			MaxTokens:      512,
			TimeoutSeconds: 120,
			UseChat:        false,
		},
		Retrieve: RetrieveConfig{
			TopK: 5,
		},
		Server: ServerConfig{
			Listen: ":8080",
		},
	}
}

// Load loads configuration from a YAML file, applying env overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, cfg.Validate()
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// LoadFromDir loads configuration from a directory (looks for newsbrief.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "newsbrief.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	cfg := DefaultConfig()
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Ingest.OverlapWords >= c.Ingest.ChunkWords {
		return fmt.Errorf("ingest: overlap_words (%d) must be smaller than chunk_words (%d)",
			c.Ingest.OverlapWords, c.Ingest.ChunkWords)
	}
	if c.Retrieve.TopK < 1 {
		return fmt.Errorf("retrieve: top_k must be at least 1")
	}
	return nil
}

// NewsAPIKey returns the configured NewsAPI key, failing fast with an
// explanatory message when it is missing.
func (c *Config) NewsAPIKey() (string, error) {
	key := os.Getenv(c.Ingest.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("news API key not found: set %s in the environment or a .env file", c.Ingest.APIKeyEnv)
	}
	return key, nil
}

// applyEnv applies environment overrides on top of file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		c.Generate.BaseURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		c.Generate.Model = v
	}
	if v := os.Getenv("OLLAMA_EMBED_MODEL"); v != "" {
		c.Embedding.Model = v
	}
	if v, err := strconv.Atoi(os.Getenv("RAG_TOP_K")); err == nil && v > 0 {
		c.Retrieve.TopK = v
	}
	if v, err := strconv.Atoi(os.Getenv("OLLAMA_MAX_TOKENS")); err == nil && v > 0 {
		c.Generate.MaxTokens = v
	}
}

// IndexDBPath returns the path to the index bundle.
func IndexDBPath(indexDir string) string {
	return filepath.Join(indexDir, "index.db")
}

// EnsureDirs creates the data and index directories if missing.
func (c *Config) EnsureDirs() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return err
	}
	return os.MkdirAll(c.IndexDir, 0755)
}
