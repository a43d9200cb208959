// Package tui provides a read-only terminal viewer for notebooks.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/nbmcp/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Outputs loads notebooks and reads full outputs.
	Outputs driving.OutputService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Outputs == nil {
		return ErrMissingOutputService
	}
	return nil
}
