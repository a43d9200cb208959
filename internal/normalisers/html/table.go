package html

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/nbmcp/internal/core/ports/driven"
)

// Ensure TableSummariser implements the interface.
var _ driven.TableSummariser = (*TableSummariser)(nil)

// TableSummariser summarises HTML tables such as rendered DataFrames.
type TableSummariser struct{}

// NewTableSummariser creates a new table summariser.
func NewTableSummariser() *TableSummariser {
	return &TableSummariser{}
}

// Summarise inspects the first table in markup.
// Header rows are rows inside <thead>, or a leading row made only of <th>
// cells when there is no <thead>. Every other row counts as a body row.
func (s *TableSummariser) Summarise(markup string, maxRows int) (*driven.TableSummary, bool) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, false
	}

	table := findFirst(doc, atom.Table)
	if table == nil {
		return nil, false
	}

	rows := tableRows(table)
	hasHead := false
	for _, row := range rows {
		hasHead = hasHead || row.inHead
	}

	var headRows, bodyRows [][]string
	for _, row := range rows {
		cells := rowCells(row.node)
		if len(cells) == 0 {
			continue
		}
		switch {
		case row.inHead:
			headRows = append(headRows, cells)
		case !hasHead && len(headRows) == 0 && len(bodyRows) == 0 && allHeaderCells(row.node):
			headRows = append(headRows, cells)
		default:
			bodyRows = append(bodyRows, cells)
		}
	}

	if len(headRows) == 0 && len(bodyRows) == 0 {
		return nil, false
	}

	summary := &driven.TableSummary{Rows: len(bodyRows)}
	if len(headRows) > 0 {
		summary.Header = labelRow(headRows)
	}
	summary.Columns = len(summary.Header)
	for _, row := range bodyRows {
		if len(row) > summary.Columns {
			summary.Columns = len(row)
		}
	}

	if maxRows > len(bodyRows) {
		maxRows = len(bodyRows)
	}
	if maxRows > 0 {
		summary.Preview = bodyRows[:maxRows]
	}
	return summary, true
}

// labelRow picks the header row with the most non-empty labels.
// Multi-row headers mix spanning group labels and index names with the
// actual column labels; the earliest row wins a tie.
func labelRow(rows [][]string) []string {
	best, bestCount := rows[0], -1
	for _, row := range rows {
		count := 0
		for _, cell := range row {
			if cell != "" {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = row, count
		}
	}
	return best
}

type tableRow struct {
	node   *html.Node
	inHead bool
}

// tableRows collects the rows of table in document order, skipping nested tables.
func tableRows(table *html.Node) []tableRow {
	var rows []tableRow
	var walk func(n *html.Node, inHead bool)
	walk = func(n *html.Node, inHead bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Table:
				continue
			case atom.Thead:
				walk(c, true)
			case atom.Tr:
				rows = append(rows, tableRow{node: c, inHead: inHead})
			default:
				walk(c, inHead)
			}
		}
	}
	walk(table, false)
	return rows
}

// rowCells returns the text of each th/td cell in a row.
func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			cells = append(cells, textContent(c))
		}
	}
	return cells
}

func allHeaderCells(tr *html.Node) bool {
	found := false
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Th:
			found = true
		case atom.Td:
			return false
		}
	}
	return found
}

// textContent concatenates the text below n with whitespace collapsed.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}
