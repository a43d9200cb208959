package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataFrameHTML = `<div>
<style scoped>.dataframe tbody tr th:only-of-type { vertical-align: middle; }</style>
<table border="1" class="dataframe">
  <thead>
    <tr style="text-align: right;">
      <th></th>
      <th>name</th>
      <th>score</th>
    </tr>
  </thead>
  <tbody>
    <tr><th>0</th><td>alice</td><td>1.5</td></tr>
    <tr><th>1</th><td>bob &amp; co</td><td>2.0</td></tr>
    <tr><th>2</th><td>carol</td><td>3.25</td></tr>
  </tbody>
</table>
<p>3 rows × 2 columns</p>
</div>`

func TestNewTableSummariser(t *testing.T) {
	require.NotNil(t, NewTableSummariser())
}

func TestSummarise_DataFrame(t *testing.T) {
	s := NewTableSummariser()

	summary, ok := s.Summarise(dataFrameHTML, 2)
	require.True(t, ok)

	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, 3, summary.Columns)
	assert.Equal(t, []string{"", "name", "score"}, summary.Header)
	require.Len(t, summary.Preview, 2)
	assert.Equal(t, []string{"0", "alice", "1.5"}, summary.Preview[0])
	assert.Equal(t, []string{"1", "bob & co", "2.0"}, summary.Preview[1])
}

func TestSummarise_PreviewLargerThanTable(t *testing.T) {
	summary, ok := NewTableSummariser().Summarise(dataFrameHTML, 10)
	require.True(t, ok)
	assert.Len(t, summary.Preview, 3)
}

func TestSummarise_ZeroPreviewRows(t *testing.T) {
	summary, ok := NewTableSummariser().Summarise(dataFrameHTML, 0)
	require.True(t, ok)
	assert.Empty(t, summary.Preview)
	assert.Equal(t, 3, summary.Rows)
}

func TestSummarise_HeaderWithoutThead(t *testing.T) {
	markup := `<table>
<tr><th>x</th><th>y</th></tr>
<tr><td>1</td><td>2</td></tr>
<tr><td>3</td><td>4</td><td>5</td></tr>
</table>`

	summary, ok := NewTableSummariser().Summarise(markup, 5)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, summary.Header)
	assert.Equal(t, 2, summary.Rows)
	assert.Equal(t, 3, summary.Columns, "widest row wins")
}

func TestSummarise_NoHeader(t *testing.T) {
	summary, ok := NewTableSummariser().Summarise(`<table><tr><td>a</td></tr></table>`, 5)
	require.True(t, ok)
	assert.Empty(t, summary.Header)
	assert.Equal(t, 1, summary.Rows)
	assert.Equal(t, 1, summary.Columns)
}

func TestSummarise_MultiRowHeader(t *testing.T) {
	markup := `<table>
<thead>
<tr><th></th><th>a</th><th>b</th></tr>
<tr><th>idx</th><th></th><th></th></tr>
</thead>
<tbody><tr><th>0</th><td>1</td><td>2</td></tr></tbody>
</table>`

	summary, ok := NewTableSummariser().Summarise(markup, 5)
	require.True(t, ok)
	assert.Equal(t, []string{"", "a", "b"}, summary.Header)
	assert.Equal(t, 1, summary.Rows)
}

func TestSummarise_NestedTableIgnored(t *testing.T) {
	markup := `<table><tbody>
<tr><td>outer<table><tr><td>inner</td></tr><tr><td>inner2</td></tr></table></td></tr>
</tbody></table>`

	summary, ok := NewTableSummariser().Summarise(markup, 5)
	require.True(t, ok)
	assert.Equal(t, 1, summary.Rows)
}

func TestSummarise_NotATable(t *testing.T) {
	tests := []string{
		"",
		"<p>hello</p>",
		"<table></table>",
		"<table><tr></tr></table>",
	}

	for _, markup := range tests {
		_, ok := NewTableSummariser().Summarise(markup, 5)
		assert.False(t, ok, "markup %q", markup)
	}
}
