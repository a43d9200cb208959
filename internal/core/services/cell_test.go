package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nbmcp/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

const testPath = "/work/analysis.ipynb"

func newCellFixture(t *testing.T) (*CellService, *memory.NotebookStore) {
	t.Helper()
	store := memory.NewNotebookStore()
	store.Put(testPath, testNotebook())
	return NewCellService(store, nil), store
}

func loadSaved(t *testing.T, store *memory.NotebookStore) *domain.Notebook {
	t.Helper()
	nb, err := store.Load(context.Background(), testPath)
	require.NoError(t, err)
	return nb
}

func TestNewCellService(t *testing.T) {
	svc := NewCellService(memory.NewNotebookStore(), nil)
	require.NotNil(t, svc)
	assert.Empty(t, svc.paths.Root())
}

func TestCellService_EditCell(t *testing.T) {
	svc, store := newCellFixture(t)

	require.NoError(t, svc.EditCell(context.Background(), testPath, 2, "print('hi')"))

	nb := loadSaved(t, store)
	assert.Equal(t, 1, store.Saves(testPath))
	assert.Equal(t, "print('hi')", nb.Cells[1].Source)
	assert.Empty(t, nb.Cells[1].Outputs)
	assert.Nil(t, nb.Cells[1].ExecutionCount)
	assert.Equal(t, 4, nb.Len())
}

func TestCellService_EditCell_Markdown(t *testing.T) {
	svc, store := newCellFixture(t)

	require.NoError(t, svc.EditCell(context.Background(), testPath, 1, "# New title"))
	assert.Equal(t, "# New title", loadSaved(t, store).Cells[0].Source)
}

func TestCellService_AddCell(t *testing.T) {
	ctx := context.Background()

	t.Run("insert shifts later cells", func(t *testing.T) {
		svc, store := newCellFixture(t)

		idx, err := svc.AddCell(ctx, testPath, 2, domain.CellTypeMarkdown, "## Setup")
		require.NoError(t, err)
		assert.Equal(t, 2, idx)

		nb := loadSaved(t, store)
		require.Equal(t, 5, nb.Len())
		assert.Equal(t, "## Setup", nb.Cells[1].Source)
		assert.Equal(t, "import pandas as pd\ndf", nb.Cells[2].Source)
	})

	t.Run("append at len+1", func(t *testing.T) {
		svc, store := newCellFixture(t)

		idx, err := svc.AddCell(ctx, testPath, 5, domain.CellTypeCode, "y = 2")
		require.NoError(t, err)
		assert.Equal(t, 5, idx)

		nb := loadSaved(t, store)
		assert.Equal(t, domain.CellTypeCode, nb.Cells[4].Type)
		assert.Empty(t, nb.Cells[4].Outputs)
	})

	t.Run("invalid type never loads or saves", func(t *testing.T) {
		svc, store := newCellFixture(t)

		_, err := svc.AddCell(ctx, testPath, 1, domain.CellTypeRaw, "x")
		assert.ErrorIs(t, err, domain.ErrInvalidCellType)
		assert.Equal(t, 0, store.Saves(testPath))
	})

	t.Run("out of range", func(t *testing.T) {
		svc, store := newCellFixture(t)

		_, err := svc.AddCell(ctx, testPath, 6, domain.CellTypeCode, "x")
		assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
		assert.Equal(t, 0, store.Saves(testPath))
	})
}

func TestCellService_DeleteCell(t *testing.T) {
	svc, store := newCellFixture(t)

	require.NoError(t, svc.DeleteCell(context.Background(), testPath, 3))

	nb := loadSaved(t, store)
	require.Equal(t, 3, nb.Len())
	assert.Equal(t, "c3", nb.Cells[2].ID)
}

func TestCellService_MergeCells(t *testing.T) {
	ctx := context.Background()

	t.Run("code cells", func(t *testing.T) {
		svc, store := newCellFixture(t)

		require.NoError(t, svc.MergeCells(ctx, testPath, 3, 4))

		nb := loadSaved(t, store)
		require.Equal(t, 3, nb.Len())
		merged := nb.Cells[2]
		assert.Equal(t, domain.CellTypeCode, merged.Type)
		assert.Equal(t, "1/0\nx = 1\n", merged.Source)
		assert.Empty(t, merged.Outputs)
	})

	t.Run("markdown and code", func(t *testing.T) {
		svc, store := newCellFixture(t)

		require.NoError(t, svc.MergeCells(ctx, testPath, 1, 2))
		assert.Equal(t, domain.CellTypeMarkdown, loadSaved(t, store).Cells[0].Type)
	})

	t.Run("non-consecutive leaves the document untouched", func(t *testing.T) {
		svc, store := newCellFixture(t)

		err := svc.MergeCells(ctx, testPath, 1, 3)
		assert.ErrorIs(t, err, domain.ErrNonConsecutiveIndices)
		assert.Equal(t, 0, store.Saves(testPath))
		assert.Equal(t, testNotebook(), loadSaved(t, store))
	})
}

func TestCellService_FailedValidationDoesNotSave(t *testing.T) {
	ctx := context.Background()
	svc, store := newCellFixture(t)

	assert.ErrorIs(t, svc.EditCell(ctx, testPath, 0, "x"), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, svc.EditCell(ctx, testPath, 5, "x"), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, svc.DeleteCell(ctx, testPath, 9), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, svc.MergeCells(ctx, testPath, 4, 5), domain.ErrIndexOutOfRange)

	assert.Equal(t, 0, store.Saves(testPath))
	assert.Equal(t, testNotebook(), loadSaved(t, store))
}

func TestCellService_LoadErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCellFixture(t)

	err := svc.EditCell(ctx, "/work/missing.ipynb", 1, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.EditCell(ctx, "", 1, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCellService_SaveFailure(t *testing.T) {
	inner := memory.NewNotebookStore()
	inner.Put(testPath, testNotebook())
	svc := NewCellService(&failingStore{NotebookStore: inner}, nil)

	err := svc.DeleteCell(context.Background(), testPath, 1)
	assert.ErrorIs(t, err, domain.ErrIO)

	nb, err := inner.Load(context.Background(), testPath)
	require.NoError(t, err)
	assert.Equal(t, 4, nb.Len())
}

func TestCellService_NilStore(t *testing.T) {
	svc := NewCellService(nil, nil)

	err := svc.EditCell(context.Background(), testPath, 1, "x")
	assert.ErrorIs(t, err, ErrStoreNotConfigured)
	assert.Contains(t, err.Error(), "edit_cell")
}

func TestCellService_PathPolicy(t *testing.T) {
	store := memory.NewNotebookStore()
	store.Put("/work/nb/a.ipynb", testNotebook())
	svc := NewCellService(store, NewPathPolicy("/work/nb"))
	ctx := context.Background()

	require.NoError(t, svc.EditCell(ctx, "a.ipynb", 1, "relative"))
	assert.Equal(t, 1, store.Saves("/work/nb/a.ipynb"))

	err := svc.EditCell(ctx, "../escape.ipynb", 1, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
