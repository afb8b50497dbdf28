// ABOUTME: Tests for environment-based configuration loading
// ABOUTME: Verifies defaults, overrides, and validation ranges
package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Make sure ambient environment does not leak in
	for _, key := range []string{
		"RECALL_DB_PATH", "OPENAI_API_KEY", "RECALL_OPENAI_MODEL",
		"RECALL_CHUNK_SIZE", "RECALL_KEYWORD_WEIGHT", "RECALL_SEMANTIC_WEIGHT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %q, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %q", cfg.EmbeddingModel)
	}
	if cfg.EmbeddingDimension != 1536 {
		t.Errorf("EmbeddingDimension = %d, want 1536", cfg.EmbeddingDimension)
	}
	if cfg.ChunkSize != 500 || cfg.ChunkOverlap != 50 {
		t.Errorf("chunking = %d/%d, want 500/50", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.KeywordWeight != 0.7 || cfg.SemanticWeight != 0.3 {
		t.Errorf("weights = %g/%g, want 0.7/0.3", cfg.KeywordWeight, cfg.SemanticWeight)
	}
	if cfg.SimilarityThreshold != 0.3 {
		t.Errorf("SimilarityThreshold = %g, want 0.3", cfg.SimilarityThreshold)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.TopK != 8 {
		t.Errorf("TopK = %d, want 8", cfg.TopK)
	}
	if !strings.HasSuffix(cfg.DBPath, "recall.db") {
		t.Errorf("DBPath = %q, want default recall.db location", cfg.DBPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RECALL_DB_PATH", "/tmp/custom.db")
	t.Setenv("RECALL_OPENAI_MODEL", "gpt-4o")
	t.Setenv("RECALL_CHUNK_SIZE", "800")
	t.Setenv("RECALL_CHUNK_OVERLAP", "100")
	t.Setenv("RECALL_KEYWORD_WEIGHT", "0.5")
	t.Setenv("RECALL_SEMANTIC_WEIGHT", "0.5")
	t.Setenv("OPENAI_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ChatModel != "gpt-4o" {
		t.Errorf("ChatModel = %q", cfg.ChatModel)
	}
	if cfg.ChunkSize != 800 || cfg.ChunkOverlap != 100 {
		t.Errorf("chunking = %d/%d", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.KeywordWeight != 0.5 || cfg.SemanticWeight != 0.5 {
		t.Errorf("weights = %g/%g", cfg.KeywordWeight, cfg.SemanticWeight)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
}

func TestLoad_InvalidValueFallsBack(t *testing.T) {
	t.Setenv("RECALL_CHUNK_SIZE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ChunkSize != 500 {
		t.Errorf("ChunkSize = %d, want default on unparseable value", cfg.ChunkSize)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			KeywordWeight:       0.7,
			SemanticWeight:      0.3,
			SimilarityThreshold: 0.3,
			MaxRetries:          3,
			ChunkSize:           500,
			ChunkOverlap:        50,
			EmbeddingDimension:  1536,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"keyword weight too high", func(c *Config) { c.KeywordWeight = 1.5 }, true},
		{"semantic weight negative", func(c *Config) { c.SemanticWeight = -0.1 }, true},
		{"threshold too high", func(c *Config) { c.SimilarityThreshold = 2 }, true},
		{"retries too high", func(c *Config) { c.MaxRetries = 11 }, true},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, true},
		{"overlap equals size", func(c *Config) { c.ChunkOverlap = 500 }, true},
		{"overlap beyond half the window", func(c *Config) { c.ChunkOverlap = 300 }, true},
		{"overlap at half the window", func(c *Config) { c.ChunkOverlap = 250 }, false},
		{"zero dimension", func(c *Config) { c.EmbeddingDimension = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
