// Package cli implements the command line interface. Commands call
// into the core through driving ports; wiring happens in main.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/core/ports/driving"
	"github.com/docsage/docsage/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services are injected by main before Execute.
var (
	ingestor        driving.Ingestor
	chatService     driving.Chat
	convManager     driving.ConversationManager
	documentService driving.DocumentCatalog
)

var (
	verbose bool
	userID  string
)

var rootCmd = &cobra.Command{
	Use:   "docsage",
	Short: "Chat with your documents",
	Long: `Docsage ingests your documents, indexes them as embeddings,
and answers questions grounded in their content.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// DOCSAGE_DEBUG may have enabled verbose already.
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

// Services bundles everything the CLI needs from the core.
type Services struct {
	Ingestor            driving.Ingestor
	Chat                driving.Chat
	ConversationManager driving.ConversationManager
	Documents           driving.DocumentCatalog
}

// SetServices injects core services. Call before Execute.
func SetServices(s Services) {
	ingestor = s.Ingestor
	chatService = s.Chat
	convManager = s.ConversationManager
	documentService = s.Documents
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "default", "acting user ID")
}
