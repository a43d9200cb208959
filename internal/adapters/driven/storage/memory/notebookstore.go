package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
	"github.com/custodia-labs/nbmcp/internal/core/ports/driven"
)

// Ensure NotebookStore implements the interface.
var _ driven.NotebookStore = (*NotebookStore)(nil)

// NotebookStore is an in-memory implementation of driven.NotebookStore.
// Notebooks are deep-copied on the way in and out, so callers never share
// state with the store, just as with files on disk.
type NotebookStore struct {
	mu        sync.RWMutex
	notebooks map[string]*domain.Notebook
	saves     map[string]int
}

// NewNotebookStore creates a new in-memory notebook store.
func NewNotebookStore() *NotebookStore {
	return &NotebookStore{
		notebooks: make(map[string]*domain.Notebook),
		saves:     make(map[string]int),
	}
}

// Put seeds a notebook without counting it as a save.
func (s *NotebookStore) Put(path string, nb *domain.Notebook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notebooks[path] = nb.Clone()
}

// Load returns a copy of the notebook stored at path.
func (s *NotebookStore) Load(_ context.Context, path string) (*domain.Notebook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nb, ok := s.notebooks[path]
	if !ok {
		return nil, fmt.Errorf("%w: notebook file not found at %s", domain.ErrNotFound, path)
	}
	return nb.Clone(), nil
}

// Save stores a copy of the notebook at path.
func (s *NotebookStore) Save(_ context.Context, path string, nb *domain.Notebook) error {
	if nb == nil {
		return fmt.Errorf("%w: notebook is nil", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notebooks[path] = nb.Clone()
	s.saves[path]++
	return nil
}

// Saves returns how many times path has been saved.
func (s *NotebookStore) Saves(path string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves[path]
}
