// ABOUTME: Benchmark runner - seeds corpora, executes queries, and collects results
// ABOUTME: Each scenario runs against a fresh in-memory database for isolation

package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/harper/recall-standalone/internal/core"
	"github.com/harper/recall-standalone/internal/llm"
	"github.com/harper/recall-standalone/internal/rag"
	"github.com/harper/recall-standalone/internal/search"
	"github.com/harper/recall-standalone/internal/storage/sqlite"
)

// QueryResult is the scored outcome of one benchmark query
type QueryResult struct {
	Query          string   `json:"query"`
	Mode           string   `json:"mode"`
	RetrievalScore float64  `json:"retrieval_score"`
	RetrievalNote  string   `json:"retrieval_note"`
	AnswerScore    float64  `json:"answer_score,omitempty"`
	AnswerNote     string   `json:"answer_note,omitempty"`
	LatencyMS      int64    `json:"latency_ms"`
	Retrieved      []string `json:"retrieved"`
}

// ScenarioResult aggregates the query results for one scenario
type ScenarioResult struct {
	ScenarioID   string        `json:"scenario_id"`
	Name         string        `json:"name"`
	Queries      []QueryResult `json:"queries"`
	AverageScore float64       `json:"average_score"`
	Passed       bool          `json:"passed"`
}

// BenchmarkRunner executes retrieval benchmark scenarios
type BenchmarkRunner struct {
	provider llm.EmbeddingProvider
	chat     llm.ChatProvider
	metrics  *MetricsCalculator
	verbose  bool
}

// NewBenchmarkRunner creates a runner. With an empty API key the
// deterministic hash embedder runs the semantic leg and answer
// generation degrades to sources-only output.
func NewBenchmarkRunner(apiKey string, verbose bool) (*BenchmarkRunner, error) {
	clientCfg := llm.DefaultConfig(apiKey)

	provider, err := llm.SelectEmbeddingProvider(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("initializing embedding provider: %w", err)
	}

	var chat llm.ChatProvider
	if apiKey != "" {
		client, err := llm.NewOpenAIClientWithConfig(clientCfg)
		if err != nil {
			return nil, fmt.Errorf("initializing chat client: %w", err)
		}
		chat = client
	}

	return &BenchmarkRunner{
		provider: provider,
		chat:     chat,
		metrics:  NewMetricsCalculator(),
		verbose:  verbose,
	}, nil
}

// RunAll executes every scenario and returns their results
func (r *BenchmarkRunner) RunAll(ctx context.Context, scenarios []Scenario) ([]ScenarioResult, error) {
	results := make([]ScenarioResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		result, err := r.Run(ctx, scenario)
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", scenario.ID, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// Run executes a single scenario against a fresh in-memory database
func (r *BenchmarkRunner) Run(ctx context.Context, scenario Scenario) (ScenarioResult, error) {
	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RUNNING: %s\n", scenario.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("Description: %s\n\n", scenario.Description)
	}

	db, err := sqlite.OpenInMemory()
	if err != nil {
		return ScenarioResult{}, fmt.Errorf("creating benchmark database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := r.seed(ctx, db, scenario.Corpus); err != nil {
		return ScenarioResult{}, fmt.Errorf("seeding corpus: %w", err)
	}

	result := ScenarioResult{ScenarioID: scenario.ID, Name: scenario.Name}
	var total float64

	for _, q := range scenario.Queries {
		qr, err := r.runQuery(ctx, db, q)
		if err != nil {
			return ScenarioResult{}, fmt.Errorf("query %q: %w", q.Query, err)
		}
		result.Queries = append(result.Queries, qr)

		score := qr.RetrievalScore
		if q.Ask {
			score = (qr.RetrievalScore + qr.AnswerScore) / 2
		}
		total += score

		if r.verbose {
			fmt.Printf("  %-40q retrieval=%.2f %s\n", q.Query, qr.RetrievalScore, qr.RetrievalNote)
		}
	}

	if len(result.Queries) > 0 {
		result.AverageScore = total / float64(len(result.Queries))
	}
	result.Passed = result.AverageScore >= 0.99

	return result, nil
}

func (r *BenchmarkRunner) seed(ctx context.Context, db *sqlite.DB, corpus []SeedDocument) error {
	transcripts := sqlite.NewTranscriptStore(db)
	indexer := core.NewIndexer(db, r.provider, nil)

	for _, doc := range corpus {
		id, err := transcripts.Add(doc.Filename, doc.Date, doc.Date+"T09:00:00Z", "benchmark", "", doc.Content)
		if err != nil {
			return err
		}
		if _, err := indexer.GenerateEmbeddings(ctx, id, doc.Content, false); err != nil {
			return err
		}
	}
	return nil
}

func (r *BenchmarkRunner) runQuery(ctx context.Context, db *sqlite.DB, q QueryCase) (QueryResult, error) {
	qr := QueryResult{Query: q.Query, Mode: q.Mode}
	started := time.Now()

	var retrieved []string
	switch q.Mode {
	case "keyword":
		searcher := search.NewKeywordSearcher(db)
		results, err := searcher.Search(search.KeywordParams{Query: q.Query})
		if err != nil {
			return qr, err
		}
		for _, res := range results {
			retrieved = append(retrieved, res.Filename)
		}

	case "semantic":
		searcher := search.NewSemanticSearcher(db, r.provider)
		results, err := searcher.Search(ctx, search.SemanticParams{Query: q.Query})
		if err != nil {
			return qr, err
		}
		for _, res := range results {
			retrieved = append(retrieved, res.Filename)
		}

	default: // hybrid
		searcher := search.NewHybridSearcher(db, r.provider)
		results, _, err := searcher.Search(ctx, search.HybridParams{Query: q.Query})
		if err != nil {
			return qr, err
		}
		for _, res := range results {
			retrieved = append(retrieved, res.Filename)
		}
	}

	scored := retrieved
	if q.TopK > 0 && len(scored) > q.TopK {
		scored = scored[:q.TopK]
	}
	qr.Retrieved = retrieved
	qr.RetrievalScore, qr.RetrievalNote = r.metrics.ScoreRetrieval(scored, q.ExpectedDocs, q.ForbiddenDocs)

	if q.Ask {
		answerer := rag.NewAnswerer(db, r.provider, r.chat)
		answer, err := answerer.Ask(ctx, q.Query)
		if err != nil {
			return qr, err
		}
		if r.chat == nil {
			// Without a language model there is nothing to grade
			qr.AnswerScore, qr.AnswerNote = 0, "skipped: no chat provider configured"
		} else {
			qr.AnswerScore, qr.AnswerNote = r.metrics.ScoreAnswer(answer.Answer, q.ExpectedInAnswer, q.ForbiddenInAnswer)
		}
	}

	qr.LatencyMS = time.Since(started).Milliseconds()
	return qr, nil
}

// WriteResults writes benchmark results as indented JSON
func WriteResults(path string, results []ScenarioResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
