package driven

import (
	"context"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

// NotebookStore loads and saves notebooks on persistent storage.
// It holds no state between calls: the file is the single source of truth.
type NotebookStore interface {
	// Load reads and validates the notebook at path.
	// Fails with domain.ErrNotFound, domain.ErrInvalidFormat or
	// domain.ErrUnsupportedVersion.
	Load(ctx context.Context, path string) (*domain.Notebook, error)

	// Save writes the notebook to path atomically.
	// A failed save leaves any existing file untouched and wraps domain.ErrIO.
	Save(ctx context.Context, path string, nb *domain.Notebook) error
}
