package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
	"github.com/custodia-labs/nbmcp/internal/core/ports/driven"
)

func intPtr(n int) *int { return &n }

// testNotebook returns a notebook covering every output variant:
//
//	1 markdown
//	2 code: stream, display_data (png + text), execute_result (html table + text)
//	3 code: error
//	4 code: no outputs
func testNotebook() *domain.Notebook {
	return &domain.Notebook{
		Format: domain.FormatVersion{Major: 4, Minor: 5},
		Cells: []domain.Cell{
			{Type: domain.CellTypeMarkdown, ID: "m1", Source: "# Title"},
			{
				Type:           domain.CellTypeCode,
				ID:             "c1",
				Source:         "import pandas as pd\ndf",
				ExecutionCount: intPtr(1),
				Outputs: []domain.Output{
					&domain.StreamOutput{Name: "stdout", Text: "hello\n"},
					&domain.DisplayData{Data: domain.MimeBundle{
						domain.MIMEImagePNG:  {Text: "iVBORw0KGgo="},
						domain.MIMETextPlain: {Text: "<Figure>"},
					}},
					&domain.ExecuteResult{ExecutionCount: intPtr(1), Data: domain.MimeBundle{
						domain.MIMETextHTML:  {Text: "<table><tr><th>a</th></tr><tr><td>1</td></tr></table>"},
						domain.MIMETextPlain: {Text: "   a\n0  1"},
					}},
				},
			},
			{
				Type:           domain.CellTypeCode,
				ID:             "c2",
				Source:         "1/0",
				ExecutionCount: intPtr(2),
				Outputs: []domain.Output{
					&domain.ErrorOutput{Name: "ZeroDivisionError", Value: "division by zero", Traceback: []string{"tb1", "tb2"}},
				},
			},
			{Type: domain.CellTypeCode, ID: "c3", Source: "x = 1\n"},
		},
	}
}

// stubTables returns a fixed summary for any input.
type stubTables struct {
	summary *driven.TableSummary
	ok      bool
	maxRows int
}

func (s *stubTables) Summarise(_ string, maxRows int) (*driven.TableSummary, bool) {
	s.maxRows = maxRows
	return s.summary, s.ok
}

// failingStore loads from an inner store and fails every save.
type failingStore struct {
	driven.NotebookStore
}

func (s *failingStore) Save(_ context.Context, path string, _ *domain.Notebook) error {
	return fmt.Errorf("%w: writing %s: disk full", domain.ErrIO, path)
}
