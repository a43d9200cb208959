package domain

import (
	"encoding/json"
	"fmt"
)

// Supported nbformat range. Any 4.x minor is accepted.
const (
	SupportedMajorVersion = 4

	// CellIDMinorVersion is the first 4.x minor that requires cell ids.
	CellIDMinorVersion = 5
)

// Fields holds opaque JSON members that the engine preserves but never inspects.
// Values are kept in their raw encoded form so a load→save cycle keeps them intact.
type Fields map[string]json.RawMessage

// Clone returns a shallow copy of the fields.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// FormatVersion is the nbformat major/minor pair.
type FormatVersion struct {
	Major int
	Minor int
}

// IsSupported returns true if the engine understands this version.
func (v FormatVersion) IsSupported() bool {
	return v.Major == SupportedMajorVersion && v.Minor >= 0
}

// RequiresCellIDs returns true if cells must carry an id field.
func (v FormatVersion) RequiresCellIDs() bool {
	return v.Major == SupportedMajorVersion && v.Minor >= CellIDMinorVersion
}

// String returns the dotted representation, e.g. "4.5".
func (v FormatVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CellType identifies the kind of a cell.
type CellType string

// Cell types.
const (
	// CellTypeCode is an executable cell that may carry outputs.
	CellTypeCode CellType = "code"

	// CellTypeMarkdown is a prose cell. It never carries outputs.
	CellTypeMarkdown CellType = "markdown"

	// CellTypeRaw is an unrendered cell. Loaded and saved as-is; never created.
	CellTypeRaw CellType = "raw"
)

// IsValid returns true if the cell type is recognised on load.
func (t CellType) IsValid() bool {
	switch t {
	case CellTypeCode, CellTypeMarkdown, CellTypeRaw:
		return true
	default:
		return false
	}
}

// IsCreatable returns true if new cells of this type may be added.
func (t CellType) IsCreatable() bool {
	return t == CellTypeCode || t == CellTypeMarkdown
}

// Label returns the capitalised name used in summaries.
func (t CellType) Label() string {
	switch t {
	case CellTypeCode:
		return "Code"
	case CellTypeMarkdown:
		return "Markdown"
	case CellTypeRaw:
		return "Raw"
	default:
		return string(t)
	}
}

// String returns the string representation.
func (t CellType) String() string {
	return string(t)
}

// Cell is a unit of notebook content. Its identity is its position.
type Cell struct {
	// Type is the cell kind.
	Type CellType

	// ID is the nbformat 4.5+ cell id. Empty for older notebooks.
	ID string

	// Source is the cell body as one logical string.
	Source string

	// ExecutionCount is set only for code cells that have been run.
	ExecutionCount *int

	// Outputs are the results of the last execution. Always empty for non-code cells.
	Outputs []Output

	// Metadata is the opaque cell metadata.
	Metadata Fields

	// Extra holds unrecognised cell members (e.g. attachments).
	Extra Fields
}

// IsCode returns true for code cells.
func (c *Cell) IsCode() bool {
	return c.Type == CellTypeCode
}

// ClearOutputs drops outputs and the execution count.
// The cell's source no longer matches what produced them.
func (c *Cell) ClearOutputs() {
	c.Outputs = nil
	c.ExecutionCount = nil
}

// Notebook is the root document: an ordered cell sequence plus metadata.
type Notebook struct {
	// Format is the nbformat version pair.
	Format FormatVersion

	// Metadata is the opaque notebook metadata.
	Metadata Fields

	// Cells is the canonical, externally visible cell order.
	Cells []Cell

	// Extra holds unrecognised top-level members.
	Extra Fields
}

// Len returns the number of cells.
func (n *Notebook) Len() int {
	return len(n.Cells)
}

// Cell returns the cell at a 1-based index.
func (n *Notebook) Cell(index int) (*Cell, error) {
	pos, err := n.position(index)
	if err != nil {
		return nil, err
	}
	return &n.Cells[pos], nil
}

// position converts a 1-based cell address into a slice offset.
func (n *Notebook) position(index int) (int, error) {
	if index < 1 || index > len(n.Cells) {
		return 0, fmt.Errorf("%w: cell index %d not in [1, %d]", ErrIndexOutOfRange, index, len(n.Cells))
	}
	return index - 1, nil
}

// insertionPosition converts a 1-based insertion point into a slice offset.
func (n *Notebook) insertionPosition(index int) (int, error) {
	if index < 1 || index > len(n.Cells)+1 {
		return 0, fmt.Errorf("%w: insertion index %d not in [1, %d]", ErrIndexOutOfRange, index, len(n.Cells)+1)
	}
	return index - 1, nil
}
