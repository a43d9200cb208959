package domain

import "errors"

// Domain errors represent notebook engine failures.
// Adapters wrap them with context; callers match with errors.Is.
var (
	// Load errors.

	// ErrNotFound indicates the notebook path does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidFormat indicates the content is not a structurally valid notebook.
	ErrInvalidFormat = errors.New("invalid notebook format")

	// ErrUnsupportedVersion indicates an nbformat version the engine cannot handle.
	ErrUnsupportedVersion = errors.New("unsupported notebook format version")

	// Editing errors.

	// ErrIndexOutOfRange indicates a 1-based cell or output index outside the valid range.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidCellType indicates a cell type other than code or markdown.
	ErrInvalidCellType = errors.New("invalid cell type")

	// ErrNonConsecutiveIndices indicates a merge of cells that are not adjacent.
	ErrNonConsecutiveIndices = errors.New("cell indices are not consecutive")

	// Extraction errors.

	// ErrOutputNotFound indicates an output with no representation to return.
	ErrOutputNotFound = errors.New("output not found")

	// ErrOutputTypeUnsupported indicates an output request against a cell that cannot have outputs.
	ErrOutputTypeUnsupported = errors.New("cell type does not carry outputs")

	// Save errors.

	// ErrIO indicates the notebook could not be written.
	ErrIO = errors.New("i/o error")

	// ErrInvalidInput indicates malformed or invalid caller input.
	ErrInvalidInput = errors.New("invalid input")
)
