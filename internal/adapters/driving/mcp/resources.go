package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for notebook resources.
	uriScheme = "notebook://"

	summaryMIMEType = "text/markdown"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "{+path}",
		Name:        "notebook-summary",
		Description: "Formatted summary of a notebook, as returned by get_formatted_content",
		MIMEType:    summaryMIMEType,
	}, s.handleNotebookResource)
}

// handleNotebookResource returns the summary of the notebook named by the URI.
func (s *Server) handleNotebookResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	path := extractNotebookPath(req.Params.URI)
	if path == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	summary, err := s.ports.Outputs.Summarize(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("summarising notebook: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: summaryMIMEType,
			Text:     summary,
		}},
	}, nil
}

// extractNotebookPath extracts the file path from a URI like notebook://{path}.
// Both notebook://relative/a.ipynb and notebook:///abs/a.ipynb are accepted;
// percent-escapes are decoded.
func extractNotebookPath(uri string) string {
	if !strings.HasPrefix(uri, uriScheme) {
		return ""
	}

	path := strings.TrimPrefix(uri, uriScheme)
	if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}
	return path
}
