package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
	"github.com/custodia-labs/nbmcp/internal/logger"
)

// Tool names.
const (
	ToolGetFormattedContent = "get_formatted_content"
	ToolGetFullOutput       = "get_full_output"
	ToolEditCell            = "edit_cell"
	ToolAddCell             = "add_cell"
	ToolDeleteCell          = "delete_cell"
	ToolMergeCells          = "merge_cells"
)

// FormattedContentInput is the input schema for get_formatted_content.
type FormattedContentInput struct {
	Filepath string `json:"filepath" jsonschema:"path to the .ipynb notebook"`
}

// FormattedContentOutput is the output schema for get_formatted_content.
type FormattedContentOutput struct {
	FormattedContent string `json:"formatted_content"`
	Filepath         string `json:"filepath"`
	Error            string `json:"error,omitempty"`
}

// FullOutputInput is the input schema for get_full_output.
type FullOutputInput struct {
	Filepath    string `json:"filepath" jsonschema:"path to the .ipynb notebook"`
	CellIndex   int    `json:"cell_index" jsonschema:"1-based index of a code cell"`
	OutputIndex int    `json:"output_index" jsonschema:"1-based index of the output within the cell"`
	TypeHint    string `json:"type_hint,omitempty" jsonschema:"preferred representation: text, image or table"`
}

// FullOutputOutput is the output schema for get_full_output.
type FullOutputOutput struct {
	FullOutputData string `json:"full_output_data"`
	MimeType       string `json:"mime_type"`
	OutputType     string `json:"output_type,omitempty"`
	StreamName     string `json:"stream_name,omitempty"`
	Error          string `json:"error,omitempty"`
}

// EditCellInput is the input schema for edit_cell.
type EditCellInput struct {
	Filepath         string `json:"filepath" jsonschema:"path to the .ipynb notebook"`
	CellIndex        int    `json:"cell_index" jsonschema:"1-based index of the cell to edit"`
	NewSourceContent string `json:"new_source_content" jsonschema:"replacement source; code cells lose their outputs"`
}

// AddCellInput is the input schema for add_cell.
type AddCellInput struct {
	Filepath      string `json:"filepath" jsonschema:"path to the .ipynb notebook"`
	CellIndex     int    `json:"cell_index" jsonschema:"1-based position for the new cell; cell count + 1 appends"`
	CellType      string `json:"cell_type" jsonschema:"code or markdown"`
	SourceContent string `json:"source_content" jsonschema:"source of the new cell"`
}

// DeleteCellInput is the input schema for delete_cell.
type DeleteCellInput struct {
	Filepath  string `json:"filepath" jsonschema:"path to the .ipynb notebook"`
	CellIndex int    `json:"cell_index" jsonschema:"1-based index of the cell to delete"`
}

// MergeCellsInput is the input schema for merge_cells.
type MergeCellsInput struct {
	Filepath   string `json:"filepath" jsonschema:"path to the .ipynb notebook"`
	CellIndex1 int    `json:"cell_index1" jsonschema:"1-based index of the first cell"`
	CellIndex2 int    `json:"cell_index2" jsonschema:"1-based index of the second cell; must be cell_index1 + 1"`
}

// EditResult is the output schema for edit_cell, delete_cell and merge_cells.
type EditResult struct {
	Success  bool   `json:"success"`
	Filepath string `json:"filepath"`
	Error    string `json:"error,omitempty"`
}

// AddCellOutput is the output schema for add_cell.
type AddCellOutput struct {
	Success            bool   `json:"success"`
	Filepath           string `json:"filepath"`
	NewCellActualIndex int    `json:"new_cell_actual_index"`
	Error              string `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: ToolGetFormattedContent,
		Description: "Summarise every cell of a notebook with truncated output previews. " +
			"Cells and outputs are numbered from 1.",
	}, s.handleGetFormattedContent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolGetFullOutput,
		Description: "Return one output of a code cell untruncated, with its MIME type",
	}, s.handleGetFullOutput)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolEditCell,
		Description: "Replace the source of a cell. Code cells lose their outputs.",
	}, s.handleEditCell)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolAddCell,
		Description: "Insert a new code or markdown cell at a 1-based position",
	}, s.handleAddCell)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolDeleteCell,
		Description: "Delete a cell",
	}, s.handleDeleteCell)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolMergeCells,
		Description: "Merge a cell into the cell before it. The result is code only if both cells were code.",
	}, s.handleMergeCells)
}

// handleGetFormattedContent handles the get_formatted_content tool invocation.
func (s *Server) handleGetFormattedContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FormattedContentInput,
) (*mcp.CallToolResult, FormattedContentOutput, error) {
	summary, err := s.ports.Outputs.Summarize(ctx, input.Filepath)
	if err != nil {
		return nil, FormattedContentOutput{
			Filepath: input.Filepath,
			Error:    failure(ToolGetFormattedContent, err),
		}, nil
	}

	return nil, FormattedContentOutput{
		FormattedContent: summary,
		Filepath:         input.Filepath,
	}, nil
}

// handleGetFullOutput handles the get_full_output tool invocation.
func (s *Server) handleGetFullOutput(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FullOutputInput,
) (*mcp.CallToolResult, FullOutputOutput, error) {
	hint, err := domain.ParseTypeHint(input.TypeHint)
	if err != nil {
		return nil, FullOutputOutput{Error: failure(ToolGetFullOutput, err)}, nil
	}

	full, err := s.ports.Outputs.GetFullOutput(ctx, input.Filepath, input.CellIndex, input.OutputIndex, hint)
	if err != nil {
		return nil, FullOutputOutput{Error: failure(ToolGetFullOutput, err)}, nil
	}

	return nil, FullOutputOutput{
		FullOutputData: full.Data,
		MimeType:       full.MIMEType,
		OutputType:     full.OutputType.String(),
		StreamName:     full.StreamName,
	}, nil
}

// handleEditCell handles the edit_cell tool invocation.
func (s *Server) handleEditCell(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EditCellInput,
) (*mcp.CallToolResult, EditResult, error) {
	err := s.ports.Cells.EditCell(ctx, input.Filepath, input.CellIndex, input.NewSourceContent)
	return nil, editResult(ToolEditCell, input.Filepath, err), nil
}

// handleAddCell handles the add_cell tool invocation.
func (s *Server) handleAddCell(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddCellInput,
) (*mcp.CallToolResult, AddCellOutput, error) {
	index, err := s.ports.Cells.AddCell(
		ctx, input.Filepath, input.CellIndex, domain.CellType(input.CellType), input.SourceContent)
	if err != nil {
		return nil, AddCellOutput{
			Filepath:           input.Filepath,
			NewCellActualIndex: -1,
			Error:              failure(ToolAddCell, err),
		}, nil
	}

	return nil, AddCellOutput{
		Success:            true,
		Filepath:           input.Filepath,
		NewCellActualIndex: index,
	}, nil
}

// handleDeleteCell handles the delete_cell tool invocation.
func (s *Server) handleDeleteCell(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteCellInput,
) (*mcp.CallToolResult, EditResult, error) {
	err := s.ports.Cells.DeleteCell(ctx, input.Filepath, input.CellIndex)
	return nil, editResult(ToolDeleteCell, input.Filepath, err), nil
}

// handleMergeCells handles the merge_cells tool invocation.
func (s *Server) handleMergeCells(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MergeCellsInput,
) (*mcp.CallToolResult, EditResult, error) {
	err := s.ports.Cells.MergeCells(ctx, input.Filepath, input.CellIndex1, input.CellIndex2)
	return nil, editResult(ToolMergeCells, input.Filepath, err), nil
}

func editResult(tool, path string, err error) EditResult {
	if err != nil {
		return EditResult{Filepath: path, Error: failure(tool, err)}
	}
	return EditResult{Success: true, Filepath: path}
}

// failure logs a tool error and turns it into the message returned to the client.
func failure(tool string, err error) string {
	logger.Warn("%s failed: %v", tool, err)
	return errorMessage(err)
}

// errorMessage renders err for an MCP client.
func errorMessage(err error) string {
	if errors.Is(err, domain.ErrIndexOutOfRange) {
		return err.Error() + ". Please use a 1-based index."
	}
	return err.Error()
}
