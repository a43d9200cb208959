package domain

import "fmt"

// TypeHint is a caller-supplied category used to pick one representation
// of a multi-representation output.
type TypeHint string

// Type hints. The zero value means no preference.
const (
	TypeHintNone  TypeHint = ""
	TypeHintText  TypeHint = "text"
	TypeHintImage TypeHint = "image"
	TypeHintTable TypeHint = "table"
)

// ParseTypeHint validates a raw hint string.
func ParseTypeHint(s string) (TypeHint, error) {
	h := TypeHint(s)
	switch h {
	case TypeHintNone, TypeHintText, TypeHintImage, TypeHintTable:
		return h, nil
	default:
		return TypeHintNone, fmt.Errorf("%w: type hint %q, must be %q, %q or %q",
			ErrInvalidInput, s, TypeHintText, TypeHintImage, TypeHintTable)
	}
}

// FullOutput is the untruncated content of one output.
type FullOutput struct {
	// Data is the selected payload. Images stay base64 encoded.
	Data string

	// MIMEType is the representation actually selected.
	MIMEType string

	// OutputType is the variant the payload came from.
	OutputType OutputType

	// StreamName is "stdout" or "stderr" for stream outputs, empty otherwise.
	StreamName string
}
