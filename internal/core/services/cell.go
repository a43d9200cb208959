package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
	"github.com/custodia-labs/nbmcp/internal/core/ports/driven"
	"github.com/custodia-labs/nbmcp/internal/core/ports/driving"
	"github.com/custodia-labs/nbmcp/internal/logger"
)

// Ensure CellService implements the interface.
var _ driving.CellService = (*CellService)(nil)

// CellService edits notebook cells. Each call is one load → mutate → save
// transaction; a failed validation never reaches Save.
type CellService struct {
	store driven.NotebookStore
	paths *PathPolicy
}

// NewCellService creates a new cell service.
// A nil path policy allows any path.
func NewCellService(store driven.NotebookStore, paths *PathPolicy) *CellService {
	if paths == nil {
		paths = NewPathPolicy("")
	}
	return &CellService{
		store: store,
		paths: paths,
	}
}

// EditCell replaces a cell's source. Code cells lose their outputs.
func (s *CellService) EditCell(ctx context.Context, path string, index int, source string) error {
	return s.mutate(ctx, path, "edit_cell", func(nb *domain.Notebook) error {
		return nb.EditCell(index, source)
	})
}

// AddCell inserts a new cell and returns its 1-based index.
func (s *CellService) AddCell(
	ctx context.Context,
	path string,
	index int,
	cellType domain.CellType,
	source string,
) (int, error) {
	cell, err := domain.NewCell(cellType, source)
	if err != nil {
		return 0, err
	}

	var inserted int
	err = s.mutate(ctx, path, "add_cell", func(nb *domain.Notebook) error {
		var insertErr error
		inserted, insertErr = nb.InsertCell(index, cell)
		return insertErr
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// DeleteCell removes a cell.
func (s *CellService) DeleteCell(ctx context.Context, path string, index int) error {
	return s.mutate(ctx, path, "delete_cell", func(nb *domain.Notebook) error {
		return nb.DeleteCell(index)
	})
}

// MergeCells appends cell index2 to cell index1.
func (s *CellService) MergeCells(ctx context.Context, path string, index1, index2 int) error {
	return s.mutate(ctx, path, "merge_cells", func(nb *domain.Notebook) error {
		return nb.MergeCells(index1, index2)
	})
}

// mutate runs one transaction against the notebook at path.
func (s *CellService) mutate(ctx context.Context, path, op string, fn func(*domain.Notebook) error) error {
	if s.store == nil {
		return fmt.Errorf("%s: %w", op, ErrStoreNotConfigured)
	}

	resolved, err := s.paths.Resolve(path)
	if err != nil {
		return err
	}

	logger.Section(op)
	defer logger.Timed(op)()
	logger.Debug("Loading %s", resolved)

	nb, err := s.store.Load(ctx, resolved)
	if err != nil {
		return err
	}

	before := nb.Len()
	if err := fn(nb); err != nil {
		logger.Debug("Rejected %s: %v", op, err)
		return err
	}
	logger.Debug("Cells: %d -> %d", before, nb.Len())

	if err := s.store.Save(ctx, resolved, nb); err != nil {
		logger.Warn("Save failed for %s: %v", resolved, err)
		return err
	}
	logger.Debug("Saved %s", resolved)
	return nil
}
