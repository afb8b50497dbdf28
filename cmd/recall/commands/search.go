// ABOUTME: CLI command to search stored notes
// ABOUTME: Supports hybrid, keyword, and semantic modes with date filters
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/recall-standalone/internal/models"
	"github.com/harper/recall-standalone/internal/search"
)

var (
	searchMode   string
	searchLimit  int
	searchOffset int
	searchFrom   string
	searchTo     string
	searchClass  string
)

// NewSearchCmd creates search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search stored notes",
		Long: `Search stored notes and transcripts.

Hybrid mode (the default) fuses ranked keyword matches with semantic
similarity over chunk embeddings. Keyword mode runs full-text search
only; semantic mode runs similarity only.

Examples:
  recall search "standup blockers"
  recall search --mode keyword --limit 10 "quarterly planning"
  recall search --from 2026-01-01 --to 2026-03-31 "roadmap"
  recall search --format json "API design"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().StringVar(&searchMode, "mode", "hybrid", "Search mode (hybrid, keyword, semantic)")
	cmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum results to return")
	cmd.Flags().IntVar(&searchOffset, "offset", 0, "Skip this many results (keyword mode only)")
	cmd.Flags().StringVar(&searchFrom, "from", "", "Only match documents dated on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&searchTo, "to", "", "Only match documents dated on or before YYYY-MM-DD")
	cmd.Flags().StringVar(&searchClass, "class", "", "Filter by analysis classification (keyword mode only)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	query := args[0]

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	switch searchMode {
	case "hybrid":
		searcher := search.NewHybridSearcher(svc.db, svc.provider)
		results, degraded, err := searcher.Search(cmd.Context(), search.HybridParams{
			Query:          query,
			Limit:          searchLimit,
			KeywordWeight:  svc.cfg.KeywordWeight,
			SemanticWeight: svc.cfg.SemanticWeight,
			DateFrom:       searchFrom,
			DateTo:         searchTo,
		})
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}
		if degraded && !quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "Warning: embedding provider unavailable, showing keyword results only")
		}
		return printHybridResults(cmd, query, results)

	case "keyword":
		searcher := search.NewKeywordSearcher(svc.db)
		results, err := searcher.Search(search.KeywordParams{
			Query:          query,
			Limit:          searchLimit,
			Offset:         searchOffset,
			DateFrom:       searchFrom,
			DateTo:         searchTo,
			Classification: searchClass,
		})
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}
		return printKeywordResults(cmd, query, results)

	case "semantic":
		searcher := search.NewSemanticSearcher(svc.db, svc.provider)
		results, err := searcher.Search(cmd.Context(), search.SemanticParams{
			Query:               query,
			Limit:               searchLimit,
			SimilarityThreshold: svc.cfg.SimilarityThreshold,
			DateFrom:            searchFrom,
			DateTo:              searchTo,
		})
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}
		return printSemanticResults(cmd, query, results)

	default:
		return fmt.Errorf("unknown mode %q: must be hybrid, keyword, or semantic", searchMode)
	}
}

func printHybridResults(cmd *cobra.Command, query string, results []models.FusedResult) error {
	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No results for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd, results)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tSOURCE\tDATE\tFILE\tSNIPPET\n")
	fmt.Fprintf(w, "-----\t------\t----\t----\t-------\n")
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\t%s\n",
			r.CombinedScore, r.Source, r.Date,
			truncate(r.Filename, 30), truncate(r.Snippet, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}
	return nil
}

func printKeywordResults(cmd *cobra.Command, query string, results []models.SearchResult) error {
	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No results for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd, results)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tDATE\tFILE\tSNIPPET\n")
	fmt.Fprintf(w, "-----\t----\t----\t-------\n")
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
			r.Score, r.Date, truncate(r.Filename, 30), truncate(r.Snippet, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}
	return nil
}

func printSemanticResults(cmd *cobra.Command, query string, results []models.SemanticResult) error {
	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No results for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd, results)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SIMILARITY\tDATE\tFILE\tSNIPPET\n")
	fmt.Fprintf(w, "----------\t----\t----\t-------\n")
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
			r.Similarity, r.Date, truncate(r.Filename, 30), truncate(r.Snippet, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}
	return nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	return nil
}
