// ABOUTME: Retrieval-augmented answering over hybrid search results
// ABOUTME: Assembles cited context blocks; degrades to sources-only output when the LLM fails
package rag

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/harper/recall-standalone/internal/llm"
	"github.com/harper/recall-standalone/internal/models"
	"github.com/harper/recall-standalone/internal/search"
	"github.com/harper/recall-standalone/internal/storage/sqlite"
)

const (
	// DefaultTopK is how many retrieved documents feed the answer context
	DefaultTopK = 8
	// excerptLength bounds the excerpt echoed back to the caller
	excerptLength = 500
	// promptExcerptLength bounds the content slice handed to the model
	promptExcerptLength = 300

	// NoRelevantNotesAnswer is returned without any LLM call when
	// retrieval finds nothing relevant.
	NoRelevantNotesAnswer = "I couldn't find any relevant notes to answer your question."

	answerSystemPrompt = `You are an assistant that answers questions based on provided notes.
Use only the context from the notes to provide accurate, helpful answers.
If the context doesn't contain enough information to fully answer the question, say so.
Be concise but thorough.`
)

// AnswerGenerationError indicates the language-model call failed or
// returned unusable output. Retrieval results are unaffected.
type AnswerGenerationError struct {
	Err error
}

func (e *AnswerGenerationError) Error() string {
	return fmt.Sprintf("answer generation: %v", e.Err)
}

func (e *AnswerGenerationError) Unwrap() error {
	return e.Err
}

// Answerer turns questions into grounded answers with cited sources
type Answerer struct {
	hybrid *search.HybridSearcher
	chat   llm.ChatProvider
	topK   int
}

// NewAnswerer creates an Answerer. chat may be nil when no language-model
// credential is configured; retrieval still works and answers degrade to
// sources-only output.
func NewAnswerer(db *sqlite.DB, provider llm.EmbeddingProvider, chat llm.ChatProvider) *Answerer {
	return &Answerer{
		hybrid: search.NewHybridSearcher(db, provider),
		chat:   chat,
		topK:   DefaultTopK,
	}
}

// Ask retrieves relevant documents for the question and generates an
// answer grounded in them. With no qualifying results the canned
// no-relevant-notes answer is returned and the language model is never
// invoked. A failed language-model call is caught: the caller still
// receives the ranked sources and contexts, with an explanatory string
// in place of the answer.
func (a *Answerer) Ask(ctx context.Context, question string) (*models.Answer, error) {
	results, degraded, err := a.hybrid.Search(ctx, search.HybridParams{
		Query: question,
		Limit: a.topK,
	})
	if err != nil {
		return nil, err
	}

	answer := &models.Answer{
		Question: question,
		Degraded: degraded,
	}

	if len(results) == 0 {
		answer.Answer = NoRelevantNotesAnswer
		return answer, nil
	}

	answer.Sources = results
	answer.Contexts = buildContexts(results)

	if a.chat == nil {
		answer.Answer = "No language model is configured; here are the most relevant notes."
		return answer, nil
	}

	text, err := a.chat.Complete(ctx, answerSystemPrompt, buildUserPrompt(question, results))
	if err != nil {
		genErr := &AnswerGenerationError{Err: err}
		log.Printf("Warning: %v", genErr)
		answer.Answer = fmt.Sprintf("I found relevant notes but encountered an error generating an answer: %v", err)
		return answer, nil
	}

	answer.Answer = text
	return answer, nil
}

// buildContexts converts retrieval hits into caller-visible context entries
func buildContexts(results []models.FusedResult) []models.ContextEntry {
	contexts := make([]models.ContextEntry, 0, len(results))
	for _, r := range results {
		contexts = append(contexts, models.ContextEntry{
			Filename: r.Filename,
			Excerpt:  excerpt(r.Content, excerptLength),
			Summary:  r.AnalysisSummary,
			Score:    r.CombinedScore,
		})
	}
	return contexts
}

// buildUserPrompt assembles the question plus one labeled context block
// per retrieved document
func buildUserPrompt(question string, results []models.FusedResult) string {
	var sb strings.Builder
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\n\nContext from notes:\n")

	for _, r := range results {
		sb.WriteString(fmt.Sprintf("\nFrom %s (score: %.2f):\n", r.Filename, r.CombinedScore))
		if r.AnalysisSummary != "" {
			sb.WriteString(fmt.Sprintf("Summary: %s\n", r.AnalysisSummary))
		}
		sb.WriteString(fmt.Sprintf("Content: %s\n", excerpt(r.Content, promptExcerptLength)))
	}

	sb.WriteString("\nPlease answer the question based on the provided context.")
	return sb.String()
}

// excerpt bounds text to maxLen characters with a trailing ellipsis
func excerpt(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
