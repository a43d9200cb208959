package driving

import (
	"context"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

// CellService edits the cells of a notebook on disk.
// Every call loads the notebook, applies one change and saves it.
// Indices are 1-based.
type CellService interface {
	// EditCell replaces a cell's source. Code cells lose their outputs.
	EditCell(ctx context.Context, path string, index int, source string) error

	// AddCell inserts a new cell and returns its 1-based index.
	AddCell(ctx context.Context, path string, index int, cellType domain.CellType, source string) (int, error)

	// DeleteCell removes a cell.
	DeleteCell(ctx context.Context, path string, index int) error

	// MergeCells appends cell index2 to cell index1. index2 must equal index1+1.
	MergeCells(ctx context.Context, path string, index1, index2 int) error
}

// PathResolver maps a caller-supplied notebook path to the file the
// services will actually open.
type PathResolver interface {
	Resolve(path string) (string, error)
}

// OutputService reads notebooks for display. It never writes.
type OutputService interface {
	// Summarize returns a truncated overview of all cells and outputs.
	Summarize(ctx context.Context, path string) (string, error)

	// GetFullOutput returns one output untruncated.
	GetFullOutput(ctx context.Context, path string, cellIndex, outputIndex int, hint domain.TypeHint) (*domain.FullOutput, error)

	// Load returns the parsed notebook for read-only views.
	Load(ctx context.Context, path string) (*domain.Notebook, error)
}
