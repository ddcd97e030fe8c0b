package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/core/domain"
)

var conversationCmd = &cobra.Command{
	Use:     "conversation",
	Aliases: []string{"conversations"},
	Short:   "Manage chat conversations",
}

var conversationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your conversations",
	Args:  cobra.NoArgs,
	RunE:  runConversationList,
}

var conversationShowCmd = &cobra.Command{
	Use:   "show [conversation-id]",
	Short: "Print a conversation's history",
	Args:  cobra.ExactArgs(1),
	RunE:  runConversationShow,
}

var conversationRenameCmd = &cobra.Command{
	Use:   "rename [conversation-id] [title]",
	Short: "Rename a conversation",
	Args:  cobra.ExactArgs(2),
	RunE:  runConversationRename,
}

func init() {
	conversationCmd.AddCommand(conversationListCmd)
	conversationCmd.AddCommand(conversationShowCmd)
	conversationCmd.AddCommand(conversationRenameCmd)
	rootCmd.AddCommand(conversationCmd)
}

func runConversationList(cmd *cobra.Command, _ []string) error {
	if convManager == nil {
		return errors.New("conversation manager not configured")
	}

	convs, err := convManager.List(context.Background(), userID)
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}

	if len(convs) == 0 {
		cmd.Println("No conversations yet. Use `docsage chat` to start one.")
		return nil
	}

	for i := range convs {
		cmd.Printf("  %s  %s  (%s)\n", convs[i].ID, convs[i].Title,
			convs[i].CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runConversationShow(cmd *cobra.Command, args []string) error {
	if convManager == nil {
		return errors.New("conversation manager not configured")
	}

	msgs, err := convManager.Messages(context.Background(), userID, args[0])
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}

	for _, msg := range msgs {
		label := "You"
		if msg.Role == domain.RoleAssistant {
			label = "Docsage"
		}
		cmd.Printf("%s:\n%s\n\n", label, strings.TrimSpace(msg.Content))
	}
	return nil
}

func runConversationRename(cmd *cobra.Command, args []string) error {
	if convManager == nil {
		return errors.New("conversation manager not configured")
	}

	if err := convManager.Rename(context.Background(), userID, args[0], args[1]); err != nil {
		return fmt.Errorf("failed to rename conversation: %w", err)
	}
	cmd.Printf("Renamed %s to %q\n", args[0], args[1])
	return nil
}
