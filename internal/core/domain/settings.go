package domain

import "fmt"

// Default settings, matching the summary limits of the original tool server.
const (
	DefaultPreviewLength = 500
	DefaultTableRows     = 5
)

// Settings holds user-tunable engine options.
type Settings struct {
	// PreviewLength is the number of characters of text shown per output in summaries.
	PreviewLength int

	// TableRows is the number of body rows previewed for HTML tables.
	TableRows int

	// NotebookRoot restricts notebook paths to a directory tree. Empty allows any path.
	NotebookRoot string

	// RateLimit caps MCP HTTP requests per second. Zero disables throttling.
	RateLimit float64
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		PreviewLength: DefaultPreviewLength,
		TableRows:     DefaultTableRows,
	}
}

// Validate checks that numeric options are usable.
func (s Settings) Validate() error {
	if s.PreviewLength < 1 {
		return fmt.Errorf("%w: preview length must be positive, got %d", ErrInvalidInput, s.PreviewLength)
	}
	if s.TableRows < 0 {
		return fmt.Errorf("%w: table rows must not be negative, got %d", ErrInvalidInput, s.TableRows)
	}
	if s.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must not be negative, got %g", ErrInvalidInput, s.RateLimit)
	}
	return nil
}
