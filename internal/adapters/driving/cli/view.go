package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui"
)

// errNotTerminal is returned when view is run without an interactive terminal.
var errNotTerminal = errors.New("view requires an interactive terminal, use \"nbmcp show\" instead")

var viewCmd = &cobra.Command{
	Use:   "view [notebook]",
	Short: "Browse a notebook in the terminal UI",
	Long: `Opens a read-only terminal viewer for a notebook.

Controls:
  ↑/k, ↓/j   - Select cell
  tab        - Next output of the selected cell
  Enter      - Show the selected output in full
  r          - Reload from disk
  Esc        - Back
  ?          - Toggle help
  q          - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		return errNotTerminal
	}

	app, err := tui.NewApp(&tui.Ports{Outputs: outputService}, args[0])
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
