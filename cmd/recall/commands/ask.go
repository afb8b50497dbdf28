// ABOUTME: CLI command for retrieval-augmented question answering
// ABOUTME: Retrieves relevant notes and generates a grounded answer with sources
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/recall-standalone/internal/rag"
)

var askShowContexts bool

// NewAskCmd creates ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question over your notes",
		Long: `Ask a natural-language question over the stored notes.

Retrieves the most relevant documents with hybrid search, then
generates an answer grounded in them. Sources are always listed
so the answer can be checked against the underlying notes.

Without OPENAI_API_KEY the retrieval still runs and the matched
sources are shown without a generated answer.

Examples:
  recall ask "what did we decide about the migration?"
  recall ask --contexts "who owns the billing service?"
  recall ask --format json "open action items from last week"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().BoolVar(&askShowContexts, "contexts", false, "Show the retrieved passages passed to the model")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	question := args[0]

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	answerer := rag.NewAnswerer(svc.db, svc.provider, svc.chat)
	answer, err := answerer.Ask(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(cmd, answer)
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer.Answer)

	if len(answer.Sources) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nSources:")
		for i, src := range answer.Sources {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s (%s, score %.2f)\n",
				i+1, src.Filename, src.Date, src.CombinedScore)
		}
	}

	if askShowContexts && len(answer.Contexts) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nContexts:")
		for _, entry := range answer.Contexts {
			fmt.Fprintf(cmd.OutOrStdout(), "--- %s (score %.2f)\n%s\n",
				entry.Filename, entry.Score, entry.Excerpt)
		}
	}

	if answer.Degraded && !quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: embedding provider unavailable, retrieval used keyword matching only")
	}

	return nil
}
