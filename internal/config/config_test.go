package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "typemeta.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
indexes = ["subtypes", "annotations"]

[query]
max_results = 100

[history]
path = "/tmp/typemeta-history.db"
project_key = "acme"

[tracing]
enabled = true
endpoint = "collector:4317"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg.Indexes, []string{"subtypes", "annotations"}) {
		t.Errorf("unexpected indexes: %v", cfg.Indexes)
	}
	if cfg.Query.MaxResults != 100 {
		t.Errorf("expected max_results 100, got %d", cfg.Query.MaxResults)
	}
	if cfg.History.ProjectKey != "acme" {
		t.Errorf("expected project_key acme, got %q", cfg.History.ProjectKey)
	}
	if cfg.Tracing.Endpoint != "collector:4317" {
		t.Errorf("expected endpoint collector:4317, got %q", cfg.Tracing.Endpoint)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
indexes = ["subtypes"]

[tracing]
enabled = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.History.ProjectKey != "default" {
		t.Errorf("expected default project key, got %q", cfg.History.ProjectKey)
	}
	if cfg.Tracing.Endpoint != "localhost:4317" {
		t.Errorf("expected default tracing endpoint, got %q", cfg.Tracing.Endpoint)
	}
	if cfg.Query.MaxResults != 0 {
		t.Errorf("expected unlimited results by default, got %d", cfg.Query.MaxResults)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewStore(t *testing.T) {
	cfg := &Config{Indexes: []string{"subtypes", "annotations"}}

	st := cfg.NewStore()
	if got := st.IndexNames(); !reflect.DeepEqual(got, []string{"annotations", "subtypes"}) {
		t.Errorf("expected configured indexes, got %v", got)
	}
}
