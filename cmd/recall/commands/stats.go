// ABOUTME: CLI command to display store and embedding statistics
// ABOUTME: Reports document counts, word totals, date range, and index coverage
package commands

import (
	"fmt"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewStatsCmd creates stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show store statistics",
		Long: `Show statistics about the stored documents.

Reports document and analysis counts, the covered date range, total
word count, classification breakdown, and semantic index coverage.

Examples:
  recall stats
  recall stats --format json`,
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	stats, err := svc.transcriptStore().Stats()
	if err != nil {
		return fmt.Errorf("reading store stats: %w", err)
	}

	embedding, err := svc.chunkStore().Stats()
	if err != nil {
		return fmt.Errorf("reading embedding stats: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(cmd, map[string]interface{}{
			"store":      stats,
			"embeddings": embedding,
			"provider":   svc.provider.Name(),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Documents:  %d (%d words)\n", stats.TotalDocuments, stats.TotalWords)
	fmt.Fprintf(out, "Analyses:   %d\n", stats.TotalAnalyses)
	if stats.EarliestDate != "" {
		fmt.Fprintf(out, "Date range: %s to %s\n", stats.EarliestDate, stats.LatestDate)
	}

	if len(stats.Classifications) > 0 {
		fmt.Fprintln(out, "\nClassifications:")
		names := make([]string, 0, len(stats.Classifications))
		for name := range stats.Classifications {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %-20s %d\n", name, stats.Classifications[name])
		}
	}

	fmt.Fprintf(out, "\nEmbeddings: %d chunk(s) across %d of %d document(s) (%.1f%% coverage)\n",
		embedding.TotalChunks, embedding.DocumentsWithChunks,
		embedding.TotalDocuments, embedding.CoveragePercent)
	fmt.Fprintf(out, "Provider:   %s\n", svc.provider.Name())

	return nil
}
