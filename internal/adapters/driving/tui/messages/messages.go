// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewNotebook is the cell list with source and output previews.
	ViewNotebook ViewType = iota
	// ViewOutput shows one output in full.
	ViewOutput
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewNotebook:
		return "notebook"
	case ViewOutput:
		return "output"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// NotebookLoaded carries a freshly read notebook.
type NotebookLoaded struct {
	Path     string
	Notebook *domain.Notebook
	Err      error
}

// ReloadRequested asks for the notebook to be read again from disk.
type ReloadRequested struct{}

// FullOutputLoaded carries one untruncated output. Indices are 1-based.
type FullOutputLoaded struct {
	CellIndex   int
	OutputIndex int
	Output      *domain.FullOutput
	Err         error
}
