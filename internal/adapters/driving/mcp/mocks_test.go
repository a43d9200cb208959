package mcp

import (
	"context"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

// mockCellService is a mock implementation of driving.CellService.
type mockCellService struct {
	index int
	err   error

	calls    []string
	path     string
	cellType domain.CellType
	source   string
	indices  []int
}

func (m *mockCellService) EditCell(_ context.Context, path string, index int, source string) error {
	m.calls = append(m.calls, "edit")
	m.path, m.source, m.indices = path, source, []int{index}
	return m.err
}

func (m *mockCellService) AddCell(
	_ context.Context,
	path string,
	index int,
	cellType domain.CellType,
	source string,
) (int, error) {
	m.calls = append(m.calls, "add")
	m.path, m.cellType, m.source, m.indices = path, cellType, source, []int{index}
	return m.index, m.err
}

func (m *mockCellService) DeleteCell(_ context.Context, path string, index int) error {
	m.calls = append(m.calls, "delete")
	m.path, m.indices = path, []int{index}
	return m.err
}

func (m *mockCellService) MergeCells(_ context.Context, path string, index1, index2 int) error {
	m.calls = append(m.calls, "merge")
	m.path, m.indices = path, []int{index1, index2}
	return m.err
}

// mockOutputService is a mock implementation of driving.OutputService.
type mockOutputService struct {
	summary  string
	full     *domain.FullOutput
	notebook *domain.Notebook
	err      error

	path string
	hint domain.TypeHint
}

func (m *mockOutputService) Summarize(_ context.Context, path string) (string, error) {
	m.path = path
	return m.summary, m.err
}

func (m *mockOutputService) GetFullOutput(
	_ context.Context,
	path string,
	_, _ int,
	hint domain.TypeHint,
) (*domain.FullOutput, error) {
	m.path, m.hint = path, hint
	return m.full, m.err
}

func (m *mockOutputService) Load(_ context.Context, path string) (*domain.Notebook, error) {
	m.path = path
	return m.notebook, m.err
}
