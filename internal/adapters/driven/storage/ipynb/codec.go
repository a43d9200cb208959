package ipynb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

// Member names of the nbformat 4 schema.
const (
	keyNBFormat       = "nbformat"
	keyNBFormatMinor  = "nbformat_minor"
	keyMetadata       = "metadata"
	keyCells          = "cells"
	keyCellType       = "cell_type"
	keyID             = "id"
	keySource         = "source"
	keyExecutionCount = "execution_count"
	keyOutputs        = "outputs"
	keyOutputType     = "output_type"
	keyName           = "name"
	keyText           = "text"
	keyData           = "data"
	keyEName          = "ename"
	keyEValue         = "evalue"
	keyTraceback      = "traceback"
)

// object is a decoded JSON object whose members are still encoded.
type object map[string]json.RawMessage

// take removes and returns a member.
func (o object) take(key string) (json.RawMessage, bool) {
	v, ok := o[key]
	if ok {
		delete(o, key)
	}
	return v, ok
}

// rest returns the members that were not taken, or nil when none remain.
func (o object) rest() domain.Fields {
	if len(o) == 0 {
		return nil
	}
	return domain.Fields(o)
}

// Decode parses nbformat JSON into a notebook.
func Decode(data []byte) (*domain.Notebook, error) {
	var top object
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	if top == nil {
		return nil, fmt.Errorf("%w: document is not a JSON object", domain.ErrInvalidFormat)
	}

	nb := &domain.Notebook{}
	if err := decodeOptional(top, keyNBFormat, &nb.Format.Major); err != nil {
		return nil, err
	}
	if err := decodeOptional(top, keyNBFormatMinor, &nb.Format.Minor); err != nil {
		return nil, err
	}
	if !nb.Format.IsSupported() {
		return nil, fmt.Errorf("%w: %s, expected %d.x",
			domain.ErrUnsupportedVersion, nb.Format, domain.SupportedMajorVersion)
	}

	// Older majors keep cells under worksheets, so the version is checked first.
	rawCells, ok := top.take(keyCells)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", domain.ErrInvalidFormat, keyCells)
	}
	var cellObjects []object
	if err := json.Unmarshal(rawCells, &cellObjects); err != nil || cellObjects == nil {
		return nil, fmt.Errorf("%w: %q is not a sequence of objects", domain.ErrInvalidFormat, keyCells)
	}

	metadata, err := decodeFields(top, keyMetadata)
	if err != nil {
		return nil, err
	}
	nb.Metadata = metadata

	nb.Cells = make([]domain.Cell, 0, len(cellObjects))
	for i, obj := range cellObjects {
		cell, err := decodeCell(obj)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i+1, err)
		}
		nb.Cells = append(nb.Cells, cell)
	}

	nb.Extra = top.rest()
	return nb, nil
}

func decodeCell(obj object) (domain.Cell, error) {
	if obj == nil {
		return domain.Cell{}, fmt.Errorf("%w: cell is null", domain.ErrInvalidFormat)
	}

	var cell domain.Cell
	var cellType string
	if err := decodeRequired(obj, keyCellType, &cellType); err != nil {
		return cell, err
	}
	cell.Type = domain.CellType(cellType)
	if !cell.Type.IsValid() {
		return cell, fmt.Errorf("%w: unknown cell type %q", domain.ErrInvalidFormat, cellType)
	}

	if err := decodeOptional(obj, keyID, &cell.ID); err != nil {
		return cell, err
	}

	source, err := decodeMultiline(obj, keySource)
	if err != nil {
		return cell, err
	}
	cell.Source = source

	metadata, err := decodeFields(obj, keyMetadata)
	if err != nil {
		return cell, err
	}
	cell.Metadata = metadata

	rawCount, hasCount := obj.take(keyExecutionCount)
	rawOutputs, hasOutputs := obj.take(keyOutputs)

	// Non-code cells never carry outputs or an execution count.
	if cell.IsCode() {
		if hasCount {
			if err := json.Unmarshal(rawCount, &cell.ExecutionCount); err != nil {
				return cell, fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidFormat, keyExecutionCount)
			}
		}
		if hasOutputs {
			outputs, err := decodeOutputs(rawOutputs)
			if err != nil {
				return cell, err
			}
			cell.Outputs = outputs
		}
	}

	cell.Extra = obj.rest()
	return cell, nil
}

func decodeOutputs(raw json.RawMessage) ([]domain.Output, error) {
	var objects []object
	if err := json.Unmarshal(raw, &objects); err != nil {
		return nil, fmt.Errorf("%w: %q is not a sequence of objects", domain.ErrInvalidFormat, keyOutputs)
	}

	outputs := make([]domain.Output, 0, len(objects))
	for j, obj := range objects {
		out, err := decodeOutput(obj)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", j+1, err)
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

func decodeOutput(obj object) (domain.Output, error) {
	if obj == nil {
		return nil, fmt.Errorf("%w: output is null", domain.ErrInvalidFormat)
	}

	var outputType string
	if err := decodeRequired(obj, keyOutputType, &outputType); err != nil {
		return nil, err
	}

	switch domain.OutputType(outputType) {
	case domain.OutputTypeStream:
		out := &domain.StreamOutput{}
		if err := decodeOptional(obj, keyName, &out.Name); err != nil {
			return nil, err
		}
		text, err := decodeMultiline(obj, keyText)
		if err != nil {
			return nil, err
		}
		out.Text = text
		out.Extra = obj.rest()
		return out, nil

	case domain.OutputTypeExecuteResult:
		out := &domain.ExecuteResult{}
		if raw, ok := obj.take(keyExecutionCount); ok {
			if err := json.Unmarshal(raw, &out.ExecutionCount); err != nil {
				return nil, fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidFormat, keyExecutionCount)
			}
		}
		data, metadata, err := decodeRich(obj)
		if err != nil {
			return nil, err
		}
		out.Data, out.Metadata = data, metadata
		out.Extra = obj.rest()
		return out, nil

	case domain.OutputTypeDisplayData:
		out := &domain.DisplayData{}
		data, metadata, err := decodeRich(obj)
		if err != nil {
			return nil, err
		}
		out.Data, out.Metadata = data, metadata
		out.Extra = obj.rest()
		return out, nil

	case domain.OutputTypeError:
		out := &domain.ErrorOutput{}
		if err := decodeOptional(obj, keyEName, &out.Name); err != nil {
			return nil, err
		}
		if err := decodeOptional(obj, keyEValue, &out.Value); err != nil {
			return nil, err
		}
		if err := decodeOptional(obj, keyTraceback, &out.Traceback); err != nil {
			return nil, err
		}
		out.Extra = obj.rest()
		return out, nil

	default:
		return nil, fmt.Errorf("%w: unknown output type %q", domain.ErrInvalidFormat, outputType)
	}
}

func decodeRich(obj object) (domain.MimeBundle, domain.Fields, error) {
	bundle := domain.MimeBundle{}
	if raw, ok := obj.take(keyData); ok {
		var entries object
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, nil, fmt.Errorf("%w: %q is not an object", domain.ErrInvalidFormat, keyData)
		}
		for mime, value := range entries {
			bundle[mime] = decodeMimeContent(mime, value)
		}
	}

	metadata, err := decodeFields(obj, keyMetadata)
	if err != nil {
		return nil, nil, err
	}
	return bundle, metadata, nil
}

// decodeMimeContent joins split text payloads. JSON MIME types and any
// payload that is not text keep their raw form.
func decodeMimeContent(mime string, value json.RawMessage) domain.MimeContent {
	if isJSONMIME(mime) {
		return domain.MimeContent{Raw: value}
	}
	if text, ok := joinMultiline(value); ok {
		return domain.MimeContent{Text: text}
	}
	return domain.MimeContent{Raw: value}
}

// isJSONMIME reports MIME types whose payload is a JSON value, never split into lines.
func isJSONMIME(mime string) bool {
	return mime == domain.MIMEJSON || strings.HasSuffix(mime, "+json")
}

// isMultilineMIME reports whether payloads of mime are written as line arrays.
// Base64 images and JSON stay single strings.
func isMultilineMIME(mime string) bool {
	return strings.HasPrefix(mime, "text/") ||
		mime == domain.MIMEImageSVG ||
		mime == "application/javascript"
}

// joinMultiline accepts a string or an array of string fragments.
func joinMultiline(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return s, true
	case '[':
		var parts []string
		if err := json.Unmarshal(trimmed, &parts); err != nil {
			return "", false
		}
		return strings.Join(parts, ""), true
	default:
		return "", false
	}
}

func decodeMultiline(obj object, key string) (string, error) {
	raw, ok := obj.take(key)
	if !ok || isNull(raw) {
		return "", nil
	}
	text, ok := joinMultiline(raw)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string or a list of strings", domain.ErrInvalidFormat, key)
	}
	return text, nil
}

func decodeFields(obj object, key string) (domain.Fields, error) {
	fields := domain.Fields{}
	raw, ok := obj.take(key)
	if !ok || isNull(raw) {
		return fields, nil
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %q is not an object", domain.ErrInvalidFormat, key)
	}
	return fields, nil
}

func decodeRequired(obj object, key string, dst any) error {
	raw, ok := obj.take(key)
	if !ok {
		return fmt.Errorf("%w: missing %q", domain.ErrInvalidFormat, key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %q has the wrong type", domain.ErrInvalidFormat, key)
	}
	return nil
}

func decodeOptional(obj object, key string, dst any) error {
	raw, ok := obj.take(key)
	if !ok || isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %q has the wrong type", domain.ErrInvalidFormat, key)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Encode serialises a notebook the way the nbformat writer does:
// sorted keys, one-space indent, multi-line strings split into lines.
func Encode(nb *domain.Notebook) ([]byte, error) {
	top := withExtra(nb.Extra)
	top[keyNBFormat] = nb.Format.Major
	top[keyNBFormatMinor] = nb.Format.Minor
	top[keyMetadata] = fieldsOrEmpty(nb.Metadata)

	cells := make([]map[string]any, len(nb.Cells))
	for i := range nb.Cells {
		cells[i] = encodeCell(&nb.Cells[i])
	}
	top[keyCells] = cells

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(top); err != nil {
		return nil, fmt.Errorf("encoding notebook: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeCell(cell *domain.Cell) map[string]any {
	m := withExtra(cell.Extra)
	m[keyCellType] = cell.Type.String()
	m[keyMetadata] = fieldsOrEmpty(cell.Metadata)
	m[keySource] = splitLines(cell.Source)
	if cell.ID != "" {
		m[keyID] = cell.ID
	}

	if cell.IsCode() {
		m[keyExecutionCount] = cell.ExecutionCount
		outputs := make([]map[string]any, 0, len(cell.Outputs))
		for _, out := range cell.Outputs {
			if encoded := encodeOutput(out); encoded != nil {
				outputs = append(outputs, encoded)
			}
		}
		m[keyOutputs] = outputs
	}
	return m
}

func encodeOutput(out domain.Output) map[string]any {
	switch v := out.(type) {
	case *domain.StreamOutput:
		m := withExtra(v.Extra)
		m[keyOutputType] = v.Type().String()
		m[keyName] = v.Name
		m[keyText] = splitLines(v.Text)
		return m
	case *domain.ExecuteResult:
		m := withExtra(v.Extra)
		m[keyOutputType] = v.Type().String()
		m[keyExecutionCount] = v.ExecutionCount
		m[keyData] = encodeBundle(v.Data)
		m[keyMetadata] = fieldsOrEmpty(v.Metadata)
		return m
	case *domain.DisplayData:
		m := withExtra(v.Extra)
		m[keyOutputType] = v.Type().String()
		m[keyData] = encodeBundle(v.Data)
		m[keyMetadata] = fieldsOrEmpty(v.Metadata)
		return m
	case *domain.ErrorOutput:
		m := withExtra(v.Extra)
		m[keyOutputType] = v.Type().String()
		m[keyEName] = v.Name
		m[keyEValue] = v.Value
		traceback := v.Traceback
		if traceback == nil {
			traceback = []string{}
		}
		m[keyTraceback] = traceback
		return m
	default:
		return nil
	}
}

func encodeBundle(bundle domain.MimeBundle) map[string]any {
	m := make(map[string]any, len(bundle))
	for mime, content := range bundle {
		switch {
		case content.IsStructured():
			m[mime] = content.Raw
		case isMultilineMIME(mime):
			m[mime] = splitLines(content.Text)
		default:
			m[mime] = content.Text
		}
	}
	return m
}

func withExtra(extra domain.Fields) map[string]any {
	m := make(map[string]any, len(extra)+8)
	for k, v := range extra {
		m[k] = v
	}
	return m
}

func fieldsOrEmpty(f domain.Fields) domain.Fields {
	if f == nil {
		return domain.Fields{}
	}
	return f
}

// splitLines splits s after every newline, keeping the newlines,
// so that joining the parts restores s exactly.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
