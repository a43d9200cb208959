package mcp

import (
	"github.com/custodia-labs/nbmcp/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Cells edits notebook cells.
	Cells driving.CellService

	// Outputs summarises notebooks and extracts outputs.
	Outputs driving.OutputService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Cells == nil {
		return ErrMissingCellService
	}
	if p.Outputs == nil {
		return ErrMissingOutputService
	}
	return nil
}
