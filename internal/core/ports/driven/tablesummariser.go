package driven

// TableSummary describes an HTML table found in an output.
type TableSummary struct {
	// Rows is the number of body rows.
	Rows int

	// Columns is the widest row's cell count.
	Columns int

	// Header holds the column labels, if the table has a header row.
	Header []string

	// Preview holds the first body rows as plain-text cells.
	Preview [][]string
}

// TableSummariser measures tabular HTML for output summaries.
// Parsing is best effort; malformed markup yields ok=false rather than an error.
type TableSummariser interface {
	// Summarise inspects the first table in html, keeping at most maxRows preview rows.
	Summarise(html string, maxRows int) (summary *TableSummary, ok bool)
}
