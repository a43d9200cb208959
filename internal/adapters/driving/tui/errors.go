package tui

import "errors"

// ErrMissingOutputService is returned when the output service is not provided.
var ErrMissingOutputService = errors.New("tui: output service is required")

// ErrMissingNotebookPath is returned when no notebook path is given.
var ErrMissingNotebookPath = errors.New("tui: notebook path is required")
