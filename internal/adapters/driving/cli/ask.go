package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/core/domain"
	"github.com/docsage/docsage/internal/core/ports/driving"
)

var askDocumentID string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-off question about your documents",
	Long: `Answers a single question grounded in your ingested documents.
The turn is not recorded; use chat for a persistent conversation.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askDocumentID, "document", "d", "", "restrict retrieval to one document")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	answer, err := chatService.Answer(context.Background(), driving.AnswerRequest{
		OwnerID:    userID,
		Messages:   []domain.Message{{Role: domain.RoleUser, Content: args[0]}},
		DocumentID: askDocumentID,
	})
	if err != nil {
		return fmt.Errorf("failed to answer: %w", err)
	}

	cmd.Println(answer.Text)
	if answer.MatchCount == 0 {
		cmd.PrintErrln("\n(no document excerpts matched; answered from general knowledge)")
	}
	return nil
}
