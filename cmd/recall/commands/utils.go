// ABOUTME: Shared utility functions and service wiring for CLI commands
// ABOUTME: Consolidates config loading, database and provider setup used by every command
package commands

import (
	"fmt"
	"time"

	"github.com/harper/recall-standalone/internal/config"
	"github.com/harper/recall-standalone/internal/llm"
	"github.com/harper/recall-standalone/internal/storage/sqlite"
)

// services bundles the wired components a command needs. chat is nil when
// no OpenAI key is configured.
type services struct {
	cfg      *config.Config
	db       *sqlite.DB
	provider llm.EmbeddingProvider
	chat     llm.ChatProvider
}

// openServices loads configuration, opens the database and selects the
// embedding provider. The --db flag overrides the configured path.
func openServices() (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	clientCfg := &llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Dimension:      cfg.EmbeddingDimension,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	}

	provider, err := llm.SelectEmbeddingProvider(clientCfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing embedding provider: %w", err)
	}

	var chat llm.ChatProvider
	if cfg.OpenAIKey != "" {
		client, err := llm.NewOpenAIClientWithConfig(clientCfg)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("initializing OpenAI client: %w", err)
		}
		chat = client
	}

	return &services{cfg: cfg, db: db, provider: provider, chat: chat}, nil
}

// Close releases the underlying database connection
func (s *services) Close() error {
	return s.db.Close()
}

func (s *services) transcriptStore() *sqlite.TranscriptStore {
	return sqlite.NewTranscriptStore(s.db)
}

func (s *services) chunkStore() *sqlite.ChunkStore {
	return sqlite.NewChunkStore(s.db)
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
