package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/styles"
)

var showPlain bool

var showCmd = &cobra.Command{
	Use:   "show [notebook]",
	Short: "Print a summary of a notebook",
	Long: `Prints every cell in order with a truncated preview of each output.

Long text is cut to output.preview_length characters, images are replaced by
their MIME type and size, and HTML tables by their dimensions and first rows.
Use "nbmcp output" to read a single output in full.

Headers are coloured when stdout is a terminal; --plain disables this.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "never colour the output")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if outputService == nil {
		return errors.New("output service not configured")
	}

	summary, err := outputService.Summarize(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("summarising notebook: %w", err)
	}

	out := cmd.OutOrStdout()
	if !showPlain && isTerminal(out) {
		summary = styleSummary(summary, styles.DefaultStyles())
	}
	fmt.Fprint(out, summary)
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// styleSummary colours the header and fence lines of a summary.
func styleSummary(summary string, st *styles.Styles) string {
	lines := strings.Split(summary, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "[[Cell ") && strings.HasSuffix(line, " - Output]]"):
			lines[i] = st.Subtitle.Render(line)
		case strings.HasPrefix(line, "[[Cell "):
			lines[i] = st.Title.Render(line)
		case strings.HasPrefix(line, "```"):
			lines[i] = st.Muted.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
