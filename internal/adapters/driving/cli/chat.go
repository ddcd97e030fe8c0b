package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/adapters/driving/tui"
)

var chatConversationID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Opens an interactive terminal chat grounded in your ingested
documents. Every turn is recorded in a conversation; resume one with
--conversation.

Controls:
  Enter      - Send message
  PgUp/PgDn  - Scroll history
  Ctrl+C     - Quit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatConversationID, "conversation", "c", "", "resume an existing conversation")
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	if chatService == nil || convManager == nil {
		return errors.New("chat service not configured")
	}

	// Panic recovery for stack traces; bubbletea owns the terminal.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	model, err := tui.NewChat(chatService, convManager, userID, chatConversationID)
	if err != nil {
		return fmt.Errorf("starting chat: %w", err)
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
