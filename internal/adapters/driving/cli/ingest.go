package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Upload and index documents",
	Long: `Uploads one or more files and runs the ingestion pipeline:
text extraction, chunking, embedding, and indexing. Once a document
reaches the ready state its content is available to ask and chat.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestor == nil {
		return errors.New("ingestor not configured")
	}

	ctx := context.Background()
	var failed int

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			cmd.PrintErrf("%s: %v\n", path, err)
			failed++
			continue
		}

		doc, err := ingestor.RegisterUpload(ctx, userID, filepath.Base(path), data)
		if err != nil {
			cmd.PrintErrf("%s: %v\n", path, err)
			failed++
			continue
		}

		result, err := ingestor.Ingest(ctx, doc.ID)
		if err != nil {
			if result != nil {
				cmd.PrintErrf("%s: ingestion failed (%s): %v\n", path, result.Status, err)
			} else {
				cmd.PrintErrf("%s: ingestion failed: %v\n", path, err)
			}
			failed++
			continue
		}

		switch result.Status {
		case domain.StatusReady:
			cmd.Printf("%s: indexed as %s (%d chunks)\n", path, doc.ID, result.ChunkCount)
		case domain.StatusEmptyText:
			cmd.Printf("%s: stored as %s but produced no text\n", path, doc.ID)
		default:
			cmd.Printf("%s: ended in state %s\n", path, result.Status)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}
