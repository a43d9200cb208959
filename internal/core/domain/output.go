package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// OutputType identifies the variant of an output.
type OutputType string

// Output types.
const (
	OutputTypeStream        OutputType = "stream"
	OutputTypeExecuteResult OutputType = "execute_result"
	OutputTypeDisplayData   OutputType = "display_data"
	OutputTypeError         OutputType = "error"
)

// IsValid returns true if the output type is recognised.
func (t OutputType) IsValid() bool {
	switch t {
	case OutputTypeStream, OutputTypeExecuteResult, OutputTypeDisplayData, OutputTypeError:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t OutputType) String() string {
	return string(t)
}

// Output is one result artifact of a code cell.
// The set of implementations is closed: StreamOutput, ExecuteResult,
// DisplayData and ErrorOutput.
type Output interface {
	// Type returns the nbformat output_type.
	Type() OutputType

	sealed()
}

// StreamOutput is text written to stdout or stderr.
type StreamOutput struct {
	// Name is the stream name, "stdout" or "stderr".
	Name string

	// Text is the full stream text.
	Text string

	// Extra holds unrecognised members.
	Extra Fields
}

// ExecuteResult is the value of the last expression of a cell.
type ExecuteResult struct {
	ExecutionCount *int
	Data           MimeBundle
	Metadata       Fields
	Extra          Fields
}

// DisplayData is rich content displayed explicitly by a cell.
type DisplayData struct {
	Data     MimeBundle
	Metadata Fields
	Extra    Fields
}

// ErrorOutput is an exception raised during execution.
type ErrorOutput struct {
	// Name is the exception class name (ename).
	Name string

	// Value is the exception message (evalue).
	Value string

	// Traceback is the ordered list of traceback lines.
	Traceback []string

	Extra Fields
}

// Type implements Output.
func (*StreamOutput) Type() OutputType { return OutputTypeStream }

// Type implements Output.
func (*ExecuteResult) Type() OutputType { return OutputTypeExecuteResult }

// Type implements Output.
func (*DisplayData) Type() OutputType { return OutputTypeDisplayData }

// Type implements Output.
func (*ErrorOutput) Type() OutputType { return OutputTypeError }

func (*StreamOutput) sealed()  {}
func (*ExecuteResult) sealed() {}
func (*DisplayData) sealed()   {}
func (*ErrorOutput) sealed()   {}

// RichData returns the MIME bundle of execute_result and display_data outputs.
func RichData(o Output) (MimeBundle, bool) {
	switch v := o.(type) {
	case *ExecuteResult:
		return v.Data, true
	case *DisplayData:
		return v.Data, true
	default:
		return nil, false
	}
}

// Well-known MIME types.
const (
	MIMETextPlain = "text/plain"
	MIMETextHTML  = "text/html"
	MIMEJSON      = "application/json"
	MIMEImagePNG  = "image/png"
	MIMEImageJPEG = "image/jpeg"
	MIMEImageGIF  = "image/gif"
	MIMEImageSVG  = "image/svg+xml"

	imagePrefix = "image/"
)

// imagePriority orders image MIME types when more than one is present.
var imagePriority = []string{MIMEImagePNG, MIMEImageJPEG, MIMEImageGIF, MIMEImageSVG}

// IsImageMIME returns true for image/* types.
func IsImageMIME(mime string) bool {
	return strings.HasPrefix(mime, imagePrefix)
}

// MimeContent is a single representation within a MimeBundle.
// Text and base64 payloads live in Text; structured payloads keep their raw JSON.
type MimeContent struct {
	Text string
	Raw  json.RawMessage
}

// IsStructured returns true if the payload is a JSON value rather than a string.
func (c MimeContent) IsStructured() bool {
	return len(c.Raw) > 0
}

// String returns the payload as text. Structured payloads are returned as JSON.
func (c MimeContent) String() string {
	if c.IsStructured() {
		return string(c.Raw)
	}
	return c.Text
}

// Size returns the payload size in bytes as stored.
func (c MimeContent) Size() int {
	if c.IsStructured() {
		return len(c.Raw)
	}
	return len(c.Text)
}

// MimeBundle maps MIME types to alternative representations of one output.
type MimeBundle map[string]MimeContent

// Keys returns the MIME types in sorted order.
func (b MimeBundle) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Image returns the preferred image entry: png, jpeg, gif, svg,
// then any other image/* type in sorted order.
func (b MimeBundle) Image() (string, bool) {
	for _, mime := range imagePriority {
		if _, ok := b[mime]; ok {
			return mime, true
		}
	}
	for _, mime := range b.Keys() {
		if IsImageMIME(mime) {
			return mime, true
		}
	}
	return "", false
}

// HTMLTable returns the text/html payload if it contains table markup.
func (b MimeBundle) HTMLTable() (string, bool) {
	c, ok := b[MIMETextHTML]
	if !ok {
		return "", false
	}
	html := c.String()
	if !strings.Contains(strings.ToLower(html), "<table") {
		return "", false
	}
	return html, true
}
