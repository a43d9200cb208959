// Package mcp provides an MCP (Model Context Protocol) server adapter for nbmcp.
// It lets AI assistants read and edit Jupyter notebooks through six tools
// and a notebook:// resource template.
package mcp

import "errors"

var (
	// ErrMissingCellService is returned when the cell service is not provided.
	ErrMissingCellService = errors.New("mcp: cell service is required")

	// ErrMissingOutputService is returned when the output service is not provided.
	ErrMissingOutputService = errors.New("mcp: output service is required")
)
