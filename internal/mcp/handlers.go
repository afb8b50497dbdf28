// ABOUTME: MCP tool handler implementations for the recall server
// ABOUTME: Contains handler implementations with proper error handling for all 4 tools
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/recall-standalone/internal/core"
	"github.com/harper/recall-standalone/internal/rag"
	"github.com/harper/recall-standalone/internal/search"
	"github.com/harper/recall-standalone/internal/storage/sqlite"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	transcripts *sqlite.TranscriptStore
	chunks      *sqlite.ChunkStore
	hybrid      *search.HybridSearcher
	keyword     *search.KeywordSearcher
	semantic    *search.SemanticSearcher
	answerer    *rag.Answerer
	indexer     *core.Indexer
}

// SearchTranscripts handles the search_transcripts tool
func (h *Handlers) SearchTranscripts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	mode := request.GetString("mode", "hybrid")
	limit := request.GetInt("limit", 10)
	dateFrom := request.GetString("date_from", "")
	dateTo := request.GetString("date_to", "")

	if limit <= 0 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}

	response := map[string]interface{}{
		"query": query,
		"mode":  mode,
	}

	switch mode {
	case "hybrid":
		results, degraded, err := h.hybrid.Search(ctx, search.HybridParams{
			Query:    query,
			Limit:    limit,
			DateFrom: dateFrom,
			DateTo:   dateTo,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		response["results"] = results
		response["count"] = len(results)
		if degraded {
			response["degraded"] = true
		}

	case "keyword":
		results, err := h.keyword.Search(search.KeywordParams{
			Query:    query,
			Limit:    limit,
			DateFrom: dateFrom,
			DateTo:   dateTo,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		response["results"] = results
		response["count"] = len(results)

	case "semantic":
		results, err := h.semantic.Search(ctx, search.SemanticParams{
			Query:    query,
			Limit:    limit,
			DateFrom: dateFrom,
			DateTo:   dateTo,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		response["results"] = results
		response["count"] = len(results)

	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown mode %q: must be hybrid, keyword, or semantic", mode)), nil
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// AskTranscripts handles the ask_transcripts tool
func (h *Handlers) AskTranscripts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	answer, err := h.answerer.Ask(ctx, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("question answering failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(answer)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetStats handles the get_stats tool
func (h *Handlers) GetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.transcripts.Stats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get stats: %v", err)), nil
	}

	embedding, err := h.chunks.Stats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get embedding stats: %v", err)), nil
	}

	response := map[string]interface{}{
		"store":      stats,
		"embeddings": embedding,
		"provider":   h.indexer.Provider().Name(),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GenerateEmbeddings handles the generate_embeddings tool
func (h *Handlers) GenerateEmbeddings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	force := request.GetBool("force", false)

	stats, err := h.indexer.BatchGenerateEmbeddings(ctx, force)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("embedding generation failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(stats)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
