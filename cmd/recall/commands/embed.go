// ABOUTME: CLI command to generate chunk embeddings for stored documents
// ABOUTME: Backfills the semantic index incrementally or regenerates it with --force
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/recall-standalone/internal/core"
)

var embedForce bool

// NewEmbedCmd creates embed command
func NewEmbedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Generate embeddings for stored documents",
		Long: `Generate chunk embeddings for documents that do not have them yet.

Documents already embedded are skipped, so the command is safe to run
repeatedly. --force re-chunks and re-embeds everything, which is needed
after changing the embedding model or chunking settings.

A failed document is logged and skipped; the run continues with the
rest.

Examples:
  recall embed
  recall embed --force`,
		RunE: runEmbed,
	}

	cmd.Flags().BoolVar(&embedForce, "force", false, "Regenerate embeddings for all documents")

	return cmd
}

func runEmbed(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	indexer := core.NewIndexer(svc.db, svc.provider,
		core.NewChunker(svc.cfg.ChunkSize, svc.cfg.ChunkOverlap))

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Generating embeddings with provider %s...\n", svc.provider.Name())
	}

	stats, err := indexer.BatchGenerateEmbeddings(cmd.Context(), embedForce)
	if err != nil {
		return fmt.Errorf("generating embeddings: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(cmd, stats)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Processed %d document(s), %d embedding(s) generated, %d error(s)\n",
		stats.Processed, stats.EmbeddingsGenerated, stats.Errors)

	return nil
}
