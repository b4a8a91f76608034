package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != "8080" {
		t.Fatalf("unexpected default port: %q", cfg.APIPort)
	}
	if cfg.GraphDir != "graph" || cfg.StaticDir != "web" {
		t.Fatalf("unexpected default dirs: %q, %q", cfg.GraphDir, cfg.StaticDir)
	}
	if cfg.OllamaEmbedModel != "nomic-embed-text" {
		t.Fatalf("unexpected default embed model: %q", cfg.OllamaEmbedModel)
	}
	if cfg.RetrievalTopK != 5 || cfg.NeighborLimit != 2 {
		t.Fatalf("unexpected retrieval defaults: %d, %d", cfg.RetrievalTopK, cfg.NeighborLimit)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OLLAMA_URL", "http://ollama:11434")
	t.Setenv("RETRIEVAL_TOP_K", "7")
	t.Setenv("SEARCH_PACE_PER_SECOND", "2.5")
	t.Setenv("MAX_SEARCH_RESULTS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != "9090" {
		t.Fatalf("port override ignored: %q", cfg.APIPort)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level override ignored: %q", cfg.LogLevel)
	}
	if cfg.OllamaURL != "http://ollama:11434" {
		t.Fatalf("ollama url override ignored: %q", cfg.OllamaURL)
	}
	if cfg.RetrievalTopK != 7 {
		t.Fatalf("top-k override ignored: %d", cfg.RetrievalTopK)
	}
	if cfg.SearchPacePerSecond != 2.5 {
		t.Fatalf("search pace override ignored: %v", cfg.SearchPacePerSecond)
	}
	// Unparseable integers keep the default.
	if cfg.MaxSearchResults != 5 {
		t.Fatalf("expected default max results, got %d", cfg.MaxSearchResults)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("api_port: \"7070\"\nenvironment: production\nretrieval_top_k: 3\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIPort != "7070" || cfg.Environment != "production" || cfg.RetrievalTopK != 3 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.GraphDir != "graph" {
		t.Fatalf("unexpected graph dir: %q", cfg.GraphDir)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_port: \"7070\"\n"), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("API_PORT", "6060")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIPort != "6060" {
		t.Fatalf("environment should win over the file, got %q", cfg.APIPort)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
