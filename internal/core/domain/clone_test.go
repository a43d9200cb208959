package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotebook_Clone(t *testing.T) {
	assert.Nil(t, (*Notebook)(nil).Clone())

	nb := sampleNotebook()
	nb.Cells[2].Outputs = append(nb.Cells[2].Outputs,
		&DisplayData{Data: MimeBundle{MIMEImagePNG: {Text: "abc"}}},
		&ErrorOutput{Name: "E", Traceback: []string{"t"}},
	)

	clone := nb.Clone()
	require.Equal(t, nb, clone)

	clone.Cells[1].Source = "changed"
	*clone.Cells[1].ExecutionCount = 99
	clone.Cells[1].Metadata["new"] = []byte(`1`)
	clone.Cells[1].Outputs[0].(*StreamOutput).Text = "changed"
	clone.Cells[2].Outputs[1].(*DisplayData).Data[MIMETextPlain] = MimeContent{Text: "x"}
	clone.Cells[2].Outputs[2].(*ErrorOutput).Traceback[0] = "changed"
	clone.Metadata["new"] = []byte(`1`)

	assert.Equal(t, "x = 1", nb.Cells[1].Source)
	assert.Equal(t, 1, *nb.Cells[1].ExecutionCount)
	assert.NotContains(t, nb.Cells[1].Metadata, "new")
	assert.Equal(t, "1\n", nb.Cells[1].Outputs[0].(*StreamOutput).Text)
	assert.NotContains(t, nb.Cells[2].Outputs[1].(*DisplayData).Data, MIMETextPlain)
	assert.Equal(t, "t", nb.Cells[2].Outputs[2].(*ErrorOutput).Traceback[0])
	assert.NotContains(t, nb.Metadata, "new")
}
