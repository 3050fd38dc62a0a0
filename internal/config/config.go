package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EmbeddingConfig pins the embedding capability used at both ingest and query
// time. Index and query embedder must stay on the same model, so the model
// identifier is recorded in the index manifest and checked on retrieval.
type EmbeddingConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// LLMConfig configures the chat-completion capability.
type LLMConfig struct {
	Model            string  `yaml:"model"`
	BaseURL          string  `yaml:"base_url,omitempty"`
	Temperature      float32 `yaml:"temperature"`
	TemperatureFloor float32 `yaml:"temperature_floor"`
	MaxTokens        int     `yaml:"max_tokens"`
}

// ChunkingConfig controls how documents are split before embedding.
// Sizes are in whitespace-delimited words.
type ChunkingConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// RetrievalConfig controls top-K similarity search.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// Config is the in-memory representation of ~/.ragbot/config.yaml.
type Config struct {
	ListenAddr    string   `yaml:"listen_addr"`
	SourceDir     string   `yaml:"source_dir"`
	IndexDir      string   `yaml:"index_dir"`
	IndexFetchURL string   `yaml:"index_fetch_url,omitempty"`
	Include       []string `yaml:"include,omitempty"`
	Exclude       []string `yaml:"exclude,omitempty"`

	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
}

// AppDir returns the absolute path to ~/.ragbot/.
func AppDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ragbot"), nil
}

// ConfigPath returns the absolute path to ~/.ragbot/config.yaml.
func ConfigPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the default Config written on first ragbot init.
func DefaultConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	j := func(parts ...string) string { return filepath.Join(append([]string{home}, parts...)...) }

	return &Config{
		ListenAddr: ":8080",
		SourceDir:  j(".ragbot", "source"),
		IndexDir:   j(".ragbot", "index"),
		Include:    []string{"**/*.txt", "**/*.md", "**/*.pdf"},
		Embedding: EmbeddingConfig{
			Model: "text-embedding-3-small",
		},
		LLM: LLMConfig{
			Model:            "gpt-4o-mini",
			Temperature:      0.4,
			TemperatureFloor: 0.4,
			MaxTokens:        400,
		},
		Chunking: ChunkingConfig{
			ChunkSize:    300,
			ChunkOverlap: 60,
		},
		Retrieval: RetrievalConfig{
			TopK: 8,
		},
	}, nil
}

// Load reads and parses ~/.ragbot/config.yaml, then applies environment
// overrides and validates the result.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads and parses the config at path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	cfg.SourceDir, err = ExpandPath(cfg.SourceDir)
	if err != nil {
		return nil, err
	}
	cfg.IndexDir, err = ExpandPath(cfg.IndexDir)
	if err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save marshals cfg and writes it to ~/.ragbot/config.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// Validate checks startup invariants. The chunking precondition is re-checked
// at ingest time as well; everything else is validated once here.
func (c *Config) Validate() error {
	if c.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.Chunking.ChunkSize)
	}
	if c.Chunking.ChunkOverlap < 0 || c.Chunking.ChunkOverlap >= c.Chunking.ChunkSize {
		return fmt.Errorf("chunk_overlap must satisfy 0 <= overlap < chunk_size, got overlap=%d size=%d",
			c.Chunking.ChunkOverlap, c.Chunking.ChunkSize)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.Retrieval.TopK)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.LLM.TemperatureFloor < 0 {
		return fmt.Errorf("temperature_floor must not be negative, got %g", c.LLM.TemperatureFloor)
	}
	if c.Embedding.Model == "" {
		return fmt.Errorf("embedding model is not configured")
	}
	return nil
}

// applyEnvOverrides lets individual knobs be overridden without editing the
// config file, using process environment first and ~/.ragbot/.env second.
func applyEnvOverrides(cfg *Config) error {
	overrides := []struct {
		key   string
		apply func(string) error
	}{
		{"RAGBOT_EMBEDDING_MODEL", func(v string) error { cfg.Embedding.Model = v; return nil }},
		{"RAGBOT_LLM_MODEL", func(v string) error { cfg.LLM.Model = v; return nil }},
		{"RAGBOT_CHUNK_SIZE", func(v string) error { return setInt(&cfg.Chunking.ChunkSize, v) }},
		{"RAGBOT_CHUNK_OVERLAP", func(v string) error { return setInt(&cfg.Chunking.ChunkOverlap, v) }},
		{"RAGBOT_TOP_K", func(v string) error { return setInt(&cfg.Retrieval.TopK, v) }},
		{"RAGBOT_TEMPERATURE", func(v string) error { return setFloat(&cfg.LLM.Temperature, v) }},
		{"RAGBOT_INDEX_FETCH_URL", func(v string) error { cfg.IndexFetchURL = v; return nil }},
		{"RAGBOT_LISTEN_ADDR", func(v string) error { cfg.ListenAddr = v; return nil }},
	}
	for _, o := range overrides {
		v, err := GetConfigValue(o.key)
		if err != nil {
			return err
		}
		if v == "" {
			continue
		}
		if err := o.apply(v); err != nil {
			return fmt.Errorf("invalid %s: %w", o.key, err)
		}
	}
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func setFloat(dst *float32, v string) error {
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return err
	}
	*dst = float32(f)
	return nil
}
