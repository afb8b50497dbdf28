// ABOUTME: MCP tool definitions and registration for the recall server
// ABOUTME: Defines JSON schemas for the search, ask, stats, and embedding tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/recall-standalone/internal/core"
	"github.com/harper/recall-standalone/internal/llm"
	"github.com/harper/recall-standalone/internal/rag"
	"github.com/harper/recall-standalone/internal/search"
	"github.com/harper/recall-standalone/internal/storage/sqlite"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, db *sqlite.DB, provider llm.EmbeddingProvider, chat llm.ChatProvider) *Handlers {
	handlers := &Handlers{
		transcripts: sqlite.NewTranscriptStore(db),
		chunks:      sqlite.NewChunkStore(db),
		hybrid:      search.NewHybridSearcher(db, provider),
		keyword:     search.NewKeywordSearcher(db),
		semantic:    search.NewSemanticSearcher(db, provider),
		answerer:    rag.NewAnswerer(db, provider, chat),
		indexer:     core.NewIndexer(db, provider, core.NewChunker(core.DefaultChunkSize, core.DefaultChunkOverlap)),
	}

	// 1. search_transcripts - ranked retrieval across stored notes
	server.AddTool(mcp.Tool{
		Name:        "search_transcripts",
		Description: "Search stored notes and transcripts. Hybrid mode fuses keyword and semantic relevance; keyword and semantic modes run a single leg.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query text",
				},
				"mode": map[string]interface{}{
					"type":        "string",
					"description": "Search mode: hybrid, keyword, or semantic (default: hybrid)",
					"default":     "hybrid",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 10)",
					"default":     10,
				},
				"date_from": map[string]interface{}{
					"type":        "string",
					"description": "Only match transcripts dated on or after YYYY-MM-DD",
				},
				"date_to": map[string]interface{}{
					"type":        "string",
					"description": "Only match transcripts dated on or before YYYY-MM-DD",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchTranscripts)

	// 2. ask_transcripts - retrieval-augmented question answering
	server.AddTool(mcp.Tool{
		Name:        "ask_transcripts",
		Description: "Ask a natural-language question over the stored notes. Retrieves the most relevant transcripts and generates an answer grounded in them, with cited sources.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer from stored notes",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskTranscripts)

	// 3. get_stats - store and embedding coverage statistics
	server.AddTool(mcp.Tool{
		Name:        "get_stats",
		Description: "Get statistics about the stored transcripts: counts, word totals, date range, classification histogram, and embedding coverage.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetStats)

	// 4. generate_embeddings - backfill vector index
	server.AddTool(mcp.Tool{
		Name:        "generate_embeddings",
		Description: "Generate chunk embeddings for transcripts that do not have them yet. Set force to re-embed every transcript.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"force": map[string]interface{}{
					"type":        "boolean",
					"description": "Regenerate embeddings even for transcripts that already have them (default: false)",
					"default":     false,
				},
			},
		},
	}, handlers.GenerateEmbeddings)

	return handlers
}
