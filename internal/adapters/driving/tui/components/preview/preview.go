// Package preview renders one-line previews of cells and outputs.
package preview

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

// Ellipsis marks cut text.
const Ellipsis = "…"

// Line returns the first non-blank line of s, cut to width runes.
func Line(s string, width int) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			return Truncate(strings.TrimRight(line, " \t\r"), width)
		}
	}
	return ""
}

// Truncate cuts s to at most width runes, ending in an ellipsis when cut.
func Truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + Ellipsis
}

// Lines returns up to limit lines of s and the number left out.
func Lines(s string, limit int) ([]string, int) {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if limit < 1 || len(lines) <= limit {
		return lines, 0
	}
	return lines[:limit], len(lines) - limit
}

// Output summarises one output on a single line.
func Output(out domain.Output, width int) string {
	switch v := out.(type) {
	case *domain.StreamOutput:
		return Truncate(fmt.Sprintf("%s: %s", v.Name, Line(v.Text, width)), width)

	case *domain.ErrorOutput:
		return Truncate(fmt.Sprintf("%s: %s", v.Name, v.Value), width)

	case *domain.ExecuteResult:
		return Truncate(richData(v.Data, width), width)

	case *domain.DisplayData:
		return Truncate(richData(v.Data, width), width)

	default:
		return "unknown output"
	}
}

func richData(data domain.MimeBundle, width int) string {
	if mime, ok := data.Image(); ok {
		return fmt.Sprintf("image (%s)", mime)
	}
	if _, ok := data.HTMLTable(); ok {
		return "table (text/html)"
	}
	if plain, ok := data[domain.MIMETextPlain]; ok {
		return Line(plain.String(), width)
	}
	if len(data) == 0 {
		return "empty"
	}
	return strings.Join(data.Keys(), ", ")
}

// Kind names the output variant for labels.
func Kind(out domain.Output) string {
	if out == nil {
		return ""
	}
	return out.Type().String()
}
