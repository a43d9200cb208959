package mcp

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

const nbPath = "/work/analysis.ipynb"

func TestServer_handleGetFormattedContent(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the summary", func(t *testing.T) {
		outputs := &mockOutputService{summary: "[[Cell 1 - Code]]\n"}
		server := newTestServer(t, &mockCellService{}, outputs)

		res, out, err := server.handleGetFormattedContent(ctx, nil, FormattedContentInput{Filepath: nbPath})

		require.NoError(t, err)
		assert.Nil(t, res)
		assert.Equal(t, "[[Cell 1 - Code]]\n", out.FormattedContent)
		assert.Equal(t, nbPath, out.Filepath)
		assert.Empty(t, out.Error)
		assert.Equal(t, nbPath, outputs.path)
	})

	t.Run("reports load errors in the result", func(t *testing.T) {
		outputs := &mockOutputService{err: fmt.Errorf("%w: notebook file not found at %s", domain.ErrNotFound, nbPath)}
		server := newTestServer(t, &mockCellService{}, outputs)

		_, out, err := server.handleGetFormattedContent(ctx, nil, FormattedContentInput{Filepath: nbPath})

		require.NoError(t, err)
		assert.Empty(t, out.FormattedContent)
		assert.Equal(t, nbPath, out.Filepath)
		assert.Contains(t, out.Error, "notebook file not found")
	})
}

func TestServer_handleGetFullOutput(t *testing.T) {
	ctx := context.Background()

	t.Run("returns data and mime type", func(t *testing.T) {
		outputs := &mockOutputService{full: &domain.FullOutput{
			Data:       "iVBORw0KGgo=",
			MIMEType:   domain.MIMEImagePNG,
			OutputType: domain.OutputTypeDisplayData,
		}}
		server := newTestServer(t, &mockCellService{}, outputs)

		_, out, err := server.handleGetFullOutput(ctx, nil, FullOutputInput{
			Filepath: nbPath, CellIndex: 2, OutputIndex: 1, TypeHint: "image",
		})

		require.NoError(t, err)
		assert.Equal(t, "iVBORw0KGgo=", out.FullOutputData)
		assert.Equal(t, domain.MIMEImagePNG, out.MimeType)
		assert.Equal(t, "display_data", out.OutputType)
		assert.Empty(t, out.Error)
		assert.Equal(t, domain.TypeHintImage, outputs.hint)
	})

	t.Run("reports the stream name", func(t *testing.T) {
		outputs := &mockOutputService{full: &domain.FullOutput{
			Data:       "warning\n",
			MIMEType:   domain.MIMETextPlain,
			OutputType: domain.OutputTypeStream,
			StreamName: "stderr",
		}}
		server := newTestServer(t, &mockCellService{}, outputs)

		_, out, err := server.handleGetFullOutput(ctx, nil, FullOutputInput{
			Filepath: nbPath, CellIndex: 2, OutputIndex: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, "stderr", out.StreamName)
		assert.Equal(t, "stream", out.OutputType)
	})

	t.Run("rejects an unknown hint without loading", func(t *testing.T) {
		outputs := &mockOutputService{}
		server := newTestServer(t, &mockCellService{}, outputs)

		_, out, err := server.handleGetFullOutput(ctx, nil, FullOutputInput{
			Filepath: nbPath, CellIndex: 1, OutputIndex: 1, TypeHint: "video",
		})

		require.NoError(t, err)
		assert.Contains(t, out.Error, "video")
		assert.Empty(t, outputs.path)
	})

	t.Run("index errors ask for 1-based indices", func(t *testing.T) {
		outputs := &mockOutputService{err: fmt.Errorf("%w: cell index 0 not in [1, 3]", domain.ErrIndexOutOfRange)}
		server := newTestServer(t, &mockCellService{}, outputs)

		_, out, err := server.handleGetFullOutput(ctx, nil, FullOutputInput{Filepath: nbPath})

		require.NoError(t, err)
		assert.Empty(t, out.FullOutputData)
		assert.Empty(t, out.MimeType)
		assert.Contains(t, out.Error, "Please use a 1-based index.")
	})
}

func TestServer_handleEditCell(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		cells := &mockCellService{}
		server := newTestServer(t, cells, &mockOutputService{})

		_, out, err := server.handleEditCell(ctx, nil, EditCellInput{
			Filepath: nbPath, CellIndex: 2, NewSourceContent: "x = 2",
		})

		require.NoError(t, err)
		assert.Equal(t, EditResult{Success: true, Filepath: nbPath}, out)
		assert.Equal(t, "x = 2", cells.source)
		assert.Equal(t, []int{2}, cells.indices)
	})

	t.Run("failure", func(t *testing.T) {
		cells := &mockCellService{err: fmt.Errorf("%w: cell index 9 not in [1, 3]", domain.ErrIndexOutOfRange)}
		server := newTestServer(t, cells, &mockOutputService{})

		_, out, err := server.handleEditCell(ctx, nil, EditCellInput{Filepath: nbPath, CellIndex: 9})

		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, nbPath, out.Filepath)
		assert.Contains(t, out.Error, "cell index 9")
	})
}

func TestServer_handleAddCell(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the new index", func(t *testing.T) {
		cells := &mockCellService{index: 3}
		server := newTestServer(t, cells, &mockOutputService{})

		_, out, err := server.handleAddCell(ctx, nil, AddCellInput{
			Filepath: nbPath, CellIndex: 3, CellType: "markdown", SourceContent: "# Notes",
		})

		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.Equal(t, 3, out.NewCellActualIndex)
		assert.Empty(t, out.Error)
		assert.Equal(t, domain.CellTypeMarkdown, cells.cellType)
		assert.Equal(t, "# Notes", cells.source)
	})

	t.Run("failure reports -1", func(t *testing.T) {
		cells := &mockCellService{err: fmt.Errorf("%w: \"raw\"", domain.ErrInvalidCellType)}
		server := newTestServer(t, cells, &mockOutputService{})

		_, out, err := server.handleAddCell(ctx, nil, AddCellInput{
			Filepath: nbPath, CellIndex: 1, CellType: "raw",
		})

		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, -1, out.NewCellActualIndex)
		assert.Contains(t, out.Error, "invalid cell type")
	})
}

func TestServer_handleDeleteCell(t *testing.T) {
	cells := &mockCellService{}
	server := newTestServer(t, cells, &mockOutputService{})

	_, out, err := server.handleDeleteCell(context.Background(), nil, DeleteCellInput{Filepath: nbPath, CellIndex: 4})

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, []string{"delete"}, cells.calls)
	assert.Equal(t, []int{4}, cells.indices)
}

func TestServer_handleMergeCells(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		cells := &mockCellService{}
		server := newTestServer(t, cells, &mockOutputService{})

		_, out, err := server.handleMergeCells(ctx, nil, MergeCellsInput{Filepath: nbPath, CellIndex1: 1, CellIndex2: 2})

		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.Equal(t, []int{1, 2}, cells.indices)
	})

	t.Run("non-consecutive", func(t *testing.T) {
		cells := &mockCellService{err: fmt.Errorf("%w: cell 3 is not immediately after cell 1", domain.ErrNonConsecutiveIndices)}
		server := newTestServer(t, cells, &mockOutputService{})

		_, out, err := server.handleMergeCells(ctx, nil, MergeCellsInput{Filepath: nbPath, CellIndex1: 1, CellIndex2: 3})

		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Contains(t, out.Error, "not consecutive")
		assert.NotContains(t, out.Error, "1-based")
	})
}
