package ipynb

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
	"github.com/custodia-labs/nbmcp/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.NotebookStore = (*Store)(nil)

// cellIDLength matches the short ids nbformat generates.
const cellIDLength = 8

// Store reads and writes .ipynb files on the local filesystem.
// It keeps no state: every Load re-reads the file.
type Store struct {
	newID func() string
}

// NewStore creates a filesystem notebook store.
func NewStore() *Store {
	return &Store{newID: newCellID}
}

// Load reads and validates the notebook at path.
func (s *Store) Load(ctx context.Context, path string) (*domain.Notebook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: notebook file not found at %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrIO, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrIO, path, err)
	}

	nb, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nb, nil
}

// Save writes the notebook to path atomically.
// Cells of 4.5+ notebooks that lack an id are written with a fresh one;
// the caller's notebook is left unchanged.
func (s *Store) Save(ctx context.Context, path string, nb *domain.Notebook) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if nb == nil {
		return fmt.Errorf("%w: notebook is nil", domain.ErrInvalidInput)
	}

	out := *nb
	if nb.Format.RequiresCellIDs() {
		out.Cells = s.withCellIDs(nb.Cells)
	}

	data, err := Encode(&out)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}

	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: writing %s: %v", domain.ErrIO, path, err)
	}
	return nil
}

// withCellIDs returns a copy of cells in which every cell has a unique id.
func (s *Store) withCellIDs(cells []domain.Cell) []domain.Cell {
	out := make([]domain.Cell, len(cells))
	copy(out, cells)

	seen := make(map[string]bool, len(out))
	for i := range out {
		if id := out[i].ID; id != "" {
			seen[id] = true
		}
	}

	for i := range out {
		if out[i].ID != "" {
			continue
		}
		id := s.newID()
		for seen[id] {
			id = s.newID()
		}
		seen[id] = true
		out[i].ID = id
	}
	return out
}

func newCellID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:cellIDLength]
}
