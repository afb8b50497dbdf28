// ABOUTME: Provider interfaces for embeddings and chat completion
// ABOUTME: Selects the real OpenAI provider or the deterministic fallback once at construction
package llm

import "context"

// EmbeddingProvider generates fixed-dimension embedding vectors.
// The dimension is fixed for the provider's lifetime; every vector it
// returns has exactly Dimension() elements.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Dimension() int
	Name() string
}

// ChatProvider generates a completion for a system/user prompt pair.
type ChatProvider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// SelectEmbeddingProvider picks the embedding provider for an index
// instance: the OpenAI provider when an API key is configured, otherwise
// the deterministic hash fallback. The choice is made once so the index
// dimensionality stays fixed.
func SelectEmbeddingProvider(config *ClientConfig) (EmbeddingProvider, error) {
	if config.APIKey == "" {
		return NewHashEmbedder(config.Dimension), nil
	}
	return NewOpenAIClientWithConfig(config)
}
