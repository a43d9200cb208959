package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

func TestExtractNotebookPath(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"relative path", "notebook://work/a.ipynb", "work/a.ipynb"},
		{"absolute path", "notebook:///home/me/a.ipynb", "/home/me/a.ipynb"},
		{"escaped space", "notebook:///tmp/my%20nb.ipynb", "/tmp/my nb.ipynb"},
		{"invalid prefix", "file:///tmp/a.ipynb", ""},
		{"empty path", "notebook://", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractNotebookPath(tt.uri))
		})
	}
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleNotebookResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the summary", func(t *testing.T) {
		outputs := &mockOutputService{summary: "[[Cell 1 - Markdown]]\n"}
		server := newTestServer(t, &mockCellService{}, outputs)

		res, err := server.handleNotebookResource(ctx, readRequest("notebook:///work/a.ipynb"))

		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		assert.Equal(t, "notebook:///work/a.ipynb", res.Contents[0].URI)
		assert.Equal(t, "text/markdown", res.Contents[0].MIMEType)
		assert.Equal(t, "[[Cell 1 - Markdown]]\n", res.Contents[0].Text)
		assert.Equal(t, "/work/a.ipynb", outputs.path)
	})

	t.Run("missing notebook is resource not found", func(t *testing.T) {
		outputs := &mockOutputService{err: fmt.Errorf("%w: missing", domain.ErrNotFound)}
		server := newTestServer(t, &mockCellService{}, outputs)

		_, err := server.handleNotebookResource(ctx, readRequest("notebook:///work/missing.ipynb"))

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("bad URI is resource not found", func(t *testing.T) {
		outputs := &mockOutputService{}
		server := newTestServer(t, &mockCellService{}, outputs)

		_, err := server.handleNotebookResource(ctx, readRequest("file:///a.ipynb"))

		require.Error(t, err)
		assert.Empty(t, outputs.path)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		outputs := &mockOutputService{err: fmt.Errorf("%w: bad json", domain.ErrInvalidFormat)}
		server := newTestServer(t, &mockCellService{}, outputs)

		_, err := server.handleNotebookResource(ctx, readRequest("notebook:///work/a.ipynb"))

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidFormat))
		assert.Contains(t, err.Error(), "summarising notebook")
	})
}
