package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage ingested documents",
	Long:  `List documents, inspect ingestion status, or reprocess a document.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentReingestCmd = &cobra.Command{
	Use:   "reingest [doc-id]",
	Short: "Reprocess a document",
	Long:  `Re-runs the ingestion pipeline, replacing the document's chunk set.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentReingest,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentReingestCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(context.Background(), userID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents yet. Use `docsage ingest` to add some.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    File: %s\n", docs[i].Filename)
		cmd.Printf("    Status: %s", docs[i].Status)
		if docs[i].Status.Retrievable() {
			cmd.Printf(" (%d chunks)", docs[i].ChunkCount)
		}
		cmd.Println()
		if docs[i].LastError != "" {
			cmd.Printf("    Error: %s\n", docs[i].LastError)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(context.Background(), userID, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("ID: %s\n", doc.ID)
	cmd.Printf("File: %s\n", doc.Filename)
	cmd.Printf("Status: %s\n", doc.Status)
	cmd.Printf("Chunks: %d\n", doc.ChunkCount)
	cmd.Printf("Uploaded: %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	if doc.LastError != "" {
		cmd.Printf("Last error: %s\n", doc.LastError)
	}
	return nil
}

func runDocumentReingest(cmd *cobra.Command, args []string) error {
	if documentService == nil || ingestor == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()

	// Ownership check before touching the pipeline.
	doc, err := documentService.Get(ctx, userID, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	result, err := ingestor.Ingest(ctx, doc.ID)
	if err != nil {
		if result != nil {
			return fmt.Errorf("reingestion failed (%s): %w", result.Status, err)
		}
		return fmt.Errorf("reingestion failed: %w", err)
	}

	cmd.Printf("Document %s: %s (%d chunks)\n", doc.ID, result.Status, result.ChunkCount)
	return nil
}
