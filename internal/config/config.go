// # internal/config/config.go
package config

import (
	"os"

	"typemeta/internal/store"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Indexes []string `toml:"indexes"` // relationship types, one index each
	Query   Query    `toml:"query"`
	History History  `toml:"history"`
	Tracing Tracing  `toml:"tracing"`
}

type Query struct {
	MaxResults int `toml:"max_results"` // 0 = unlimited
}

type History struct {
	Path       string `toml:"path"`
	ProjectKey string `toml:"project_key"`
}

type Tracing struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	if cfg.History.ProjectKey == "" {
		cfg.History.ProjectKey = "default"
	}
	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		cfg.Tracing.Endpoint = "localhost:4317"
	}

	return &cfg, nil
}

// NewStore builds a store with the configured index set. An empty set is
// legal here; the store reports it on the first query.
func (c *Config) NewStore() *store.Store {
	return store.New(c.Indexes...)
}
