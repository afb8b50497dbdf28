// ABOUTME: CLI command to list stored documents
// ABOUTME: Shows ingested transcripts with dates, word counts, and embedding status
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var listMissing bool

// NewListCmd creates list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		Long: `List stored documents.

Shows every ingested transcript with its date, word count, and when it
was added. --missing restricts the listing to documents that have no
chunk embeddings yet.

Examples:
  recall list
  recall list --missing
  recall list --format json`,
		RunE: runList,
	}

	cmd.Flags().BoolVar(&listMissing, "missing", false, "Only show documents without embeddings")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	transcripts := svc.transcriptStore()

	docs, err := transcripts.All()
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	if listMissing {
		docs, err = transcripts.WithoutChunks()
		if err != nil {
			return fmt.Errorf("listing documents: %w", err)
		}
	}

	if len(docs) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No documents stored")
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd, docs)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tDATE\tWORDS\tADDED\tFILE\n")
	fmt.Fprintf(w, "--\t----\t-----\t-----\t----\n")
	for _, doc := range docs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			doc.ID, doc.Date, doc.WordCount,
			formatTime(doc.CreatedAt), truncate(doc.Filename, 40))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d document(s)\n", len(docs))
	}

	return nil
}
