package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change output limits, the notebook root and the MCP rate limit.

Settings are stored in config.toml under the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Validates and saves a single setting.

Keys:
  output.preview_length  characters of text shown per output in summaries
  output.table_rows      rows previewed for HTML tables
  notebooks.root         directory notebook paths must stay inside ("" allows any)
  mcp.rate_limit         MCP HTTP requests per second (0 disables throttling)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Println("Output:")
	cmd.Printf("  Preview length: %d characters\n", settings.PreviewLength)
	cmd.Printf("  Table rows:     %d\n", settings.TableRows)
	cmd.Println()
	cmd.Println("Notebooks:")
	cmd.Printf("  Root:           %s\n", displayRoot(settings))
	cmd.Println()
	cmd.Println("MCP:")
	cmd.Printf("  Rate limit:     %s\n", displayRateLimit(settings))

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s set to %q\n", key, value)
	return nil
}

func displayRoot(s *domain.Settings) string {
	if s.NotebookRoot == "" {
		return "(any path)"
	}
	return s.NotebookRoot
}

func displayRateLimit(s *domain.Settings) string {
	if s.RateLimit == 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%g requests/second", s.RateLimit)
}
