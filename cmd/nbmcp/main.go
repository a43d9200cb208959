// Command nbmcp reads and edits Jupyter notebooks from the terminal and
// serves the same operations over MCP.
package main

import (
	"fmt"

	"github.com/custodia-labs/nbmcp/internal/adapters/driven/config/file"
	"github.com/custodia-labs/nbmcp/internal/adapters/driven/storage/ipynb"
	"github.com/custodia-labs/nbmcp/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/nbmcp/internal/adapters/driving/cli"
	"github.com/custodia-labs/nbmcp/internal/core/ports/driven"
	"github.com/custodia-labs/nbmcp/internal/core/services"
	"github.com/custodia-labs/nbmcp/internal/logger"
	"github.com/custodia-labs/nbmcp/internal/normalisers/html"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)
	cli.Execute()
}

// buildServices wires the ipynb store and the config file into the core services.
func buildServices(configDir string) (*cli.Services, error) {
	var configStore driven.ConfigStore
	fileStore, err := file.NewConfigStore(configDir)
	if err != nil {
		logger.Warn("config unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileStore
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	store := ipynb.NewStore()
	paths := services.NewPathPolicy(settings.NotebookRoot)
	formatter := services.NewFormatter(*settings, html.NewTableSummariser())

	return &cli.Services{
		Cells:    services.NewCellService(store, paths),
		Outputs:  services.NewOutputService(store, paths, formatter),
		Settings: settingsService,
		Paths:    paths,
	}, nil
}
