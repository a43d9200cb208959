package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

var (
	outputHint string
	outputJSON bool
)

var outputCmd = &cobra.Command{
	Use:   "output [notebook] [cell] [output]",
	Short: "Print one cell output in full",
	Long: `Prints a single output without truncation. Cell and output indices are 1-based,
matching the locators printed by "nbmcp show".

For outputs with several representations, --hint picks one:
  text   - text/plain
  image  - the first image (base64 encoded)
  table  - text/html

Without a hint, or when the hinted representation is missing, the order is
text/plain, image, text/html, then the first remaining entry.`,
	Args: cobra.ExactArgs(3),
	RunE: runOutput,
}

func init() {
	outputCmd.Flags().StringVar(&outputHint, "hint", "", "preferred representation: text, image or table")
	outputCmd.Flags().BoolVar(&outputJSON, "json", false, "print the output and its MIME type as JSON")
	rootCmd.AddCommand(outputCmd)
}

func runOutput(cmd *cobra.Command, args []string) error {
	if outputService == nil {
		return errors.New("output service not configured")
	}

	cellIndex, err := parseIndex(args[1], "cell")
	if err != nil {
		return err
	}
	outputIndex, err := parseIndex(args[2], "output")
	if err != nil {
		return err
	}
	hint, err := domain.ParseTypeHint(outputHint)
	if err != nil {
		return err
	}

	full, err := outputService.GetFullOutput(cmd.Context(), args[0], cellIndex, outputIndex, hint)
	if err != nil {
		return fmt.Errorf("reading output: %w", err)
	}

	if outputJSON {
		return outputFullJSON(cmd, full)
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, full.Data)
	if !strings.HasSuffix(full.Data, "\n") {
		fmt.Fprintln(out)
	}
	return nil
}

func outputFullJSON(cmd *cobra.Command, full *domain.FullOutput) error {
	data, err := json.MarshalIndent(struct {
		Data       string `json:"full_output_data"`
		MIMEType   string `json:"mime_type"`
		OutputType string `json:"output_type"`
		StreamName string `json:"stream_name,omitempty"`
	}{full.Data, full.MIMEType, full.OutputType.String(), full.StreamName}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
