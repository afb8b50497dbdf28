// ABOUTME: Centralized configuration for the retrieval engine
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/harper/recall-standalone/internal/storage/sqlite"
)

// Config holds all configuration for the retrieval engine. It is an
// explicit value passed into each component's constructor; there are no
// module-level singletons.
type Config struct {
	// Storage settings
	DBPath string

	// OpenAI settings
	OpenAIKey          string
	ChatModel          string
	EmbeddingModel     string
	EmbeddingDimension int
	Timeout            time.Duration
	MaxRetries         int
	RetryDelay         time.Duration

	// Index settings
	ChunkSize    int
	ChunkOverlap int

	// Query settings
	KeywordWeight       float64
	SemanticWeight      float64
	SimilarityThreshold float64
	TopK                int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		DBPath:              getEnv("RECALL_DB_PATH", sqlite.DefaultDBPath()),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		ChatModel:           getEnv("RECALL_OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel:      getEnv("RECALL_EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingDimension:  getEnvInt("RECALL_EMBEDDING_DIMENSION", 1536),
		Timeout:             getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:          getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:          getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		ChunkSize:           getEnvInt("RECALL_CHUNK_SIZE", 500),
		ChunkOverlap:        getEnvInt("RECALL_CHUNK_OVERLAP", 50),
		KeywordWeight:       getEnvFloat("RECALL_KEYWORD_WEIGHT", 0.7),
		SemanticWeight:      getEnvFloat("RECALL_SEMANTIC_WEIGHT", 0.3),
		SimilarityThreshold: getEnvFloat("RECALL_SIMILARITY_THRESHOLD", 0.3),
		TopK:                getEnvInt("RECALL_TOP_K", 8),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.KeywordWeight < 0 || c.KeywordWeight > 1 {
		return fmt.Errorf("RECALL_KEYWORD_WEIGHT must be 0-1, got %f", c.KeywordWeight)
	}
	if c.SemanticWeight < 0 || c.SemanticWeight > 1 {
		return fmt.Errorf("RECALL_SEMANTIC_WEIGHT must be 0-1, got %f", c.SemanticWeight)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("RECALL_SIMILARITY_THRESHOLD must be 0-1, got %f", c.SimilarityThreshold)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("RECALL_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap > c.ChunkSize/2 {
		return fmt.Errorf("RECALL_CHUNK_OVERLAP must be at most half of RECALL_CHUNK_SIZE, got %d", c.ChunkOverlap)
	}
	if c.EmbeddingDimension < 1 {
		return fmt.Errorf("RECALL_EMBEDDING_DIMENSION must be positive, got %d", c.EmbeddingDimension)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
