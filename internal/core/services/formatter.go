package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
	"github.com/custodia-labs/nbmcp/internal/core/ports/driven"
)

// Summary markers.
const (
	TruncationMarker = "[TRUNCATED]"
	FullOutputHint   = "Use `get_full_output` for full content."
)

// Formatter renders notebooks for display. It only reads the notebook.
type Formatter struct {
	previewLength int
	tableRows     int
	tables        driven.TableSummariser
}

// NewFormatter creates a formatter from settings.
// tables may be nil, in which case HTML tables get a generic marker.
func NewFormatter(settings domain.Settings, tables driven.TableSummariser) *Formatter {
	previewLength := settings.PreviewLength
	if previewLength < 1 {
		previewLength = domain.DefaultPreviewLength
	}
	tableRows := settings.TableRows
	if tableRows < 0 {
		tableRows = domain.DefaultTableRows
	}
	return &Formatter{
		previewLength: previewLength,
		tableRows:     tableRows,
		tables:        tables,
	}
}

// Summarize renders every cell in order with compact output previews.
func (f *Formatter) Summarize(nb *domain.Notebook) string {
	var b strings.Builder

	for i := range nb.Cells {
		cell := &nb.Cells[i]
		cellIndex := i + 1

		fmt.Fprintf(&b, "[[Cell %d - %s]]\n", cellIndex, cell.Type.Label())
		b.WriteString("```\n")
		b.WriteString(cell.Source)
		if !strings.HasSuffix(cell.Source, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("```\n")

		if cell.IsCode() && len(cell.Outputs) > 0 {
			fmt.Fprintf(&b, "[[Cell %d - Output]]\n", cellIndex)
			for j, out := range cell.Outputs {
				b.WriteString("- ")
				b.WriteString(f.summarizeOutput(out, cellIndex, j+1))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// summarizeOutput renders one output on a single bullet.
func (f *Formatter) summarizeOutput(out domain.Output, cellIndex, outputIndex int) string {
	switch v := out.(type) {
	case *domain.StreamOutput:
		return f.text(v.Text, cellIndex, outputIndex)
	case *domain.ExecuteResult:
		return f.rich(v.Data, cellIndex, outputIndex)
	case *domain.DisplayData:
		return f.rich(v.Data, cellIndex, outputIndex)
	case *domain.ErrorOutput:
		return fmt.Sprintf("Error: %s: %s %s", v.Name, v.Value, locator(cellIndex, outputIndex))
	default:
		return fmt.Sprintf("Unknown output %s", locator(cellIndex, outputIndex))
	}
}

// rich picks the most informative entry of a MIME bundle:
// image, then HTML table, then plain text.
func (f *Formatter) rich(data domain.MimeBundle, cellIndex, outputIndex int) string {
	if mime, ok := data.Image(); ok {
		return fmt.Sprintf("Image (%s, %s) - IMG_ID%03d%03d %s",
			mime, formatSize(data[mime].Size()), cellIndex, outputIndex, locator(cellIndex, outputIndex))
	}
	if html, ok := data.HTMLTable(); ok {
		return f.table(html, cellIndex, outputIndex)
	}
	if plain, ok := data[domain.MIMETextPlain]; ok {
		return f.text(plain.String(), cellIndex, outputIndex)
	}
	if len(data) == 0 {
		return fmt.Sprintf("Empty output %s", locator(cellIndex, outputIndex))
	}
	return fmt.Sprintf("Other data type: %s %s", strings.Join(data.Keys(), ", "), locator(cellIndex, outputIndex))
}

// text renders a text preview, truncated to the preview length.
func (f *Formatter) text(s string, cellIndex, outputIndex int) string {
	preview, truncated := truncateRunes(s, f.previewLength)
	if !truncated {
		return "Text: " + preview
	}
	return fmt.Sprintf("Text: %s... %s %s", preview, TruncationMarker, locator(cellIndex, outputIndex))
}

// table renders an HTML table as row/column counts and a markdown preview.
func (f *Formatter) table(html string, cellIndex, outputIndex int) string {
	if f.tables == nil {
		return fmt.Sprintf("Table output (HTML) %s", locator(cellIndex, outputIndex))
	}

	summary, ok := f.tables.Summarise(html, f.tableRows)
	if !ok {
		return fmt.Sprintf("Table output (HTML) %s", locator(cellIndex, outputIndex))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Table (HTML, %d rows x %d columns):", summary.Rows, summary.Columns)

	lines := markdownTable(summary)
	if len(lines) > 0 {
		b.WriteString("\n```markdown\n")
		b.WriteString(strings.Join(lines, "\n"))
		if summary.Rows > len(summary.Preview) {
			b.WriteString("\n... ")
			b.WriteString(TruncationMarker)
		}
		b.WriteString("\n```\n")
	} else {
		b.WriteString(" ")
	}
	b.WriteString(locator(cellIndex, outputIndex))
	return b.String()
}

// markdownTable renders the header and preview rows as markdown table lines.
func markdownTable(summary *driven.TableSummary) []string {
	var lines []string
	if len(summary.Header) > 0 {
		lines = append(lines, markdownRow(summary.Header))
		lines = append(lines, "|"+strings.Repeat("---|", len(summary.Header)))
	}
	for _, row := range summary.Preview {
		lines = append(lines, markdownRow(row))
	}
	return lines
}

func markdownRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return "| " + strings.Join(escaped, " | ") + " |"
}

// Extract returns one output untruncated.
// Stream and error outputs ignore the hint.
func (f *Formatter) Extract(
	nb *domain.Notebook,
	cellIndex, outputIndex int,
	hint domain.TypeHint,
) (*domain.FullOutput, error) {
	out, err := nb.OutputAt(cellIndex, outputIndex)
	if err != nil {
		return nil, err
	}

	switch v := out.(type) {
	case *domain.StreamOutput:
		return &domain.FullOutput{
			Data:       v.Text,
			MIMEType:   domain.MIMETextPlain,
			OutputType: v.Type(),
			StreamName: v.Name,
		}, nil

	case *domain.ErrorOutput:
		traceback := v.Traceback
		if traceback == nil {
			traceback = []string{}
		}
		data, err := json.Marshal(struct {
			Ename     string   `json:"ename"`
			Evalue    string   `json:"evalue"`
			Traceback []string `json:"traceback"`
		}{v.Name, v.Value, traceback})
		if err != nil {
			return nil, fmt.Errorf("encoding error output: %w", err)
		}
		return &domain.FullOutput{
			Data:       string(data),
			MIMEType:   domain.MIMEJSON,
			OutputType: v.Type(),
		}, nil

	case *domain.ExecuteResult:
		return selectRepresentation(v.Data, hint, v.Type(), cellIndex, outputIndex)

	case *domain.DisplayData:
		return selectRepresentation(v.Data, hint, v.Type(), cellIndex, outputIndex)

	default:
		return nil, fmt.Errorf("%w: unrecognised output at cell %d, output %d",
			domain.ErrOutputNotFound, cellIndex, outputIndex)
	}
}

// selectRepresentation applies the hint, then the fixed preference order
// text/plain > image/* > text/html > first remaining entry.
func selectRepresentation(
	data domain.MimeBundle,
	hint domain.TypeHint,
	outputType domain.OutputType,
	cellIndex, outputIndex int,
) (*domain.FullOutput, error) {
	mime, ok := hintedMIME(data, hint)
	if !ok {
		mime, ok = preferredMIME(data)
	}
	if !ok {
		return nil, fmt.Errorf("%w: cell %d, output %d has no data",
			domain.ErrOutputNotFound, cellIndex, outputIndex)
	}

	return &domain.FullOutput{
		Data:       data[mime].String(),
		MIMEType:   mime,
		OutputType: outputType,
	}, nil
}

func hintedMIME(data domain.MimeBundle, hint domain.TypeHint) (string, bool) {
	switch hint {
	case domain.TypeHintText:
		_, ok := data[domain.MIMETextPlain]
		return domain.MIMETextPlain, ok
	case domain.TypeHintImage:
		return data.Image()
	case domain.TypeHintTable:
		_, ok := data[domain.MIMETextHTML]
		return domain.MIMETextHTML, ok
	default:
		return "", false
	}
}

func preferredMIME(data domain.MimeBundle) (string, bool) {
	if _, ok := data[domain.MIMETextPlain]; ok {
		return domain.MIMETextPlain, true
	}
	if mime, ok := data.Image(); ok {
		return mime, true
	}
	if _, ok := data[domain.MIMETextHTML]; ok {
		return domain.MIMETextHTML, true
	}
	keys := data.Keys()
	if len(keys) == 0 {
		return "", false
	}
	return keys[0], true
}

// locator is the trailing pointer to get_full_output.
func locator(cellIndex, outputIndex int) string {
	return fmt.Sprintf("%s (cell %d [1-based], output %d [1-based])", FullOutputHint, cellIndex, outputIndex)
}

// truncateRunes cuts s to at most limit runes.
func truncateRunes(s string, limit int) (string, bool) {
	if utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i], true
		}
		n++
	}
	return s, false
}

func formatSize(n int) string {
	const unit = 1024
	switch {
	case n < unit:
		return fmt.Sprintf("%d B", n)
	case n < unit*unit:
		return fmt.Sprintf("%.1f KB", float64(n)/unit)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(unit*unit))
	}
}
