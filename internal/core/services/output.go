package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
	"github.com/custodia-labs/nbmcp/internal/core/ports/driven"
	"github.com/custodia-labs/nbmcp/internal/core/ports/driving"
	"github.com/custodia-labs/nbmcp/internal/logger"
)

// Ensure OutputService implements the interface.
var _ driving.OutputService = (*OutputService)(nil)

// ErrStoreNotConfigured is returned when a service has no notebook store.
var ErrStoreNotConfigured = errors.New("notebook store not configured")

// OutputService loads notebooks and formats their outputs.
type OutputService struct {
	store     driven.NotebookStore
	paths     *PathPolicy
	formatter *Formatter
}

// NewOutputService creates a new output service.
// A nil formatter uses default settings without table measurement.
func NewOutputService(store driven.NotebookStore, paths *PathPolicy, formatter *Formatter) *OutputService {
	if paths == nil {
		paths = NewPathPolicy("")
	}
	if formatter == nil {
		formatter = NewFormatter(domain.DefaultSettings(), nil)
	}
	return &OutputService{
		store:     store,
		paths:     paths,
		formatter: formatter,
	}
}

// Load returns the parsed notebook at path.
func (s *OutputService) Load(ctx context.Context, path string) (*domain.Notebook, error) {
	if s.store == nil {
		return nil, ErrStoreNotConfigured
	}

	resolved, err := s.paths.Resolve(path)
	if err != nil {
		return nil, err
	}

	logger.Debug("Loading %s", resolved)
	return s.store.Load(ctx, resolved)
}

// Summarize returns a truncated overview of all cells and outputs.
func (s *OutputService) Summarize(ctx context.Context, path string) (string, error) {
	nb, err := s.Load(ctx, path)
	if err != nil {
		return "", err
	}

	logger.Debug("Summarising %d cells", nb.Len())
	return s.formatter.Summarize(nb), nil
}

// GetFullOutput returns one output untruncated.
func (s *OutputService) GetFullOutput(
	ctx context.Context,
	path string,
	cellIndex, outputIndex int,
	hint domain.TypeHint,
) (*domain.FullOutput, error) {
	nb, err := s.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	full, err := s.formatter.Extract(nb, cellIndex, outputIndex, hint)
	if err != nil {
		return nil, err
	}

	logger.Debug("Selected %s (%d bytes) from cell %d output %d", full.MIMEType, len(full.Data), cellIndex, outputIndex)
	return full, nil
}
