// Package cli provides the cobra command tree for nbmcp.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nbmcp/internal/core/ports/driving"
	"github.com/custodia-labs/nbmcp/internal/logger"
)

// Services bundles the application services the commands drive.
type Services struct {
	Cells    driving.CellService
	Outputs  driving.OutputService
	Settings driving.SettingsService

	// Paths resolves notebook paths the way the services do.
	// When nil, paths are used as given.
	Paths driving.PathResolver
}

// ServiceFactory builds the services for a config directory.
// An empty directory means the default location.
type ServiceFactory func(configDir string) (*Services, error)

var (
	version   = "dev"
	verbose   bool
	configDir string

	serviceFactory ServiceFactory
	servicesReady  bool

	cellService     driving.CellService
	outputService   driving.OutputService
	settingsService driving.SettingsService
	pathResolver    driving.PathResolver
)

var rootCmd = &cobra.Command{
	Use:   "nbmcp",
	Short: "Read and edit Jupyter notebooks from the command line or over MCP",
	Long: `nbmcp loads .ipynb files, summarises their cells and outputs, and edits
cells in place with atomic saves.

The same operations are exposed to AI assistants through an MCP server
(see "nbmcp mcp serve").`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Config directory (default ~/.nbmcp)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServiceFactory sets how services are built before a command runs.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
	servicesReady = false
}

// SetServices injects ready-made services, bypassing the factory.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	cellService = s.Cells
	outputService = s.Outputs
	settingsService = s.Settings
	pathResolver = s.Paths
	servicesReady = true
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if servicesReady || serviceFactory == nil {
		return nil
	}

	s, err := serviceFactory(configDir)
	if err != nil {
		return fmt.Errorf("initialising services: %w", err)
	}
	SetServices(s)
	return nil
}

// Execute runs the root command and exits non-zero on failure.
// Interrupt and SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
