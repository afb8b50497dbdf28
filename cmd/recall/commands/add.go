// ABOUTME: CLI command to ingest notes and transcripts
// ABOUTME: Reads files or stdin into the content store and embeds them
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/recall-standalone/internal/core"
)

var (
	addDate    string
	addEngine  string
	addNoEmbed bool
)

// NewAddCmd creates add command
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [file...]",
		Short: "Add notes or transcripts to the store",
		Long: `Add notes or transcripts to the store.

Each file becomes one immutable document, keyed by its base filename.
Adding a file that was already ingested is a no-op. With no arguments,
text is read from stdin and stored under a generated filename.

Unless --no-embed is given, chunk embeddings are generated immediately
so the document is searchable semantically as well as by keyword.

Examples:
  recall add meeting-notes.txt
  recall add --date 2026-08-30 transcripts/*.txt
  pbpaste | recall add --no-embed`,
		RunE: runAdd,
	}

	cmd.Flags().StringVar(&addDate, "date", "", "Document date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&addEngine, "engine", "manual", "Origin engine that produced the transcript")
	cmd.Flags().BoolVar(&addNoEmbed, "no-embed", false, "Skip embedding generation")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	date := addDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	timestamp := time.Now().Format(time.RFC3339)

	type pending struct {
		name    string
		path    string
		content string
	}

	var inputs []pending
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return fmt.Errorf("no text provided")
		}
		name := fmt.Sprintf("stdin_%s_%s.txt", date, uuid.New().String()[:8])
		inputs = append(inputs, pending{name: name, content: text})
	} else {
		for _, arg := range args {
			data, err := os.ReadFile(arg)
			if err != nil {
				return fmt.Errorf("reading file: %w", err)
			}
			abs, err := filepath.Abs(arg)
			if err != nil {
				abs = arg
			}
			inputs = append(inputs, pending{
				name:    filepath.Base(arg),
				path:    abs,
				content: string(data),
			})
		}
	}

	transcripts := svc.transcriptStore()
	indexer := core.NewIndexer(svc.db, svc.provider,
		core.NewChunker(svc.cfg.ChunkSize, svc.cfg.ChunkOverlap))

	added := 0
	for _, in := range inputs {
		existing, err := transcripts.GetByFilename(in.name)
		if err != nil {
			return fmt.Errorf("checking for existing document: %w", err)
		}
		if existing != nil {
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped %s (already ingested as #%d)\n", in.name, existing.ID)
			}
			continue
		}

		id, err := transcripts.Add(in.name, date, timestamp, addEngine, in.path, in.content)
		if err != nil {
			return fmt.Errorf("storing document: %w", err)
		}
		added++

		if !addNoEmbed {
			if _, err := indexer.GenerateEmbeddings(cmd.Context(), id, in.content, false); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: embedding %s failed: %v\n", in.name, err)
			}
		}

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s as #%d\n", in.name, id)
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d document(s)\n", added)
	}

	return nil
}
