package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopdesk/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Launch the interactive chat",
	Long: `Launch an interactive chat with the support assistant.

Each answer lists the passages it was grounded in. The status bar shows
the answer mode and the vector store state.

Controls:
  Enter      - Send
  Tab        - Switch between knowledge-base and routed answers
  PgUp/PgDn  - Scroll the transcript
  Esc        - Quit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	svc, err := loadServices()
	if err != nil {
		return err
	}

	app, err := tui.NewApp(&tui.Ports{
		Retrieval: svc.Retrieval,
		Assistant: svc.Assistant,
	})
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}
	return nil
}
