package output

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

func numberedOutput(n int) *domain.FullOutput {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return &domain.FullOutput{
		Data:       strings.Join(lines, "\n") + "\n",
		MIMEType:   domain.MIMETextPlain,
		OutputType: domain.OutputTypeStream,
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	assert.Nil(t, v.Output())
	assert.Empty(t, v.Lines())
	assert.Equal(t, "Output", v.Title())
	assert.Contains(t, v.View(), "(No content)")
	assert.Nil(t, v.Init())
}

func TestView_SetOutput(t *testing.T) {
	v := NewView(nil, nil)

	v.SetOutput(2, 1, numberedOutput(3))

	assert.Equal(t, []string{"line 1", "line 2", "line 3"}, v.Lines())
	assert.Equal(t, "Cell 2, output 1  text/plain (stream)", v.Title())

	view := v.View()
	assert.Contains(t, view, "line 1")
	assert.Contains(t, view, "line 3")
	assert.NotContains(t, view, "Line 1-")
}

func TestView_TitleShowsStreamName(t *testing.T) {
	v := NewView(nil, nil)

	out := numberedOutput(1)
	out.StreamName = "stderr"
	v.SetOutput(1, 2, out)

	assert.Equal(t, "Cell 1, output 2  text/plain (stream stderr)", v.Title())
}

func TestView_ErrorOutputShowsTraceback(t *testing.T) {
	v := NewView(nil, nil)

	v.SetOutput(1, 1, &domain.FullOutput{
		Data:       `{"ename":"ZeroDivisionError","evalue":"division by zero","traceback":["frame 1","frame 2"]}`,
		MIMEType:   domain.MIMEJSON,
		OutputType: domain.OutputTypeError,
	})

	assert.Equal(t, []string{"ZeroDivisionError: division by zero", "", "frame 1", "frame 2"}, v.Lines())
}

func TestView_ErrorOutputWithInvalidJSON(t *testing.T) {
	v := NewView(nil, nil)

	v.SetOutput(1, 1, &domain.FullOutput{Data: "not json", OutputType: domain.OutputTypeError})

	assert.Equal(t, []string{"not json"}, v.Lines())
}

func TestView_WrapsLongLines(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(24, 24)

	v.SetOutput(1, 1, &domain.FullOutput{Data: strings.Repeat("é", 45)})

	require.Len(t, v.Lines(), 3)
	assert.Equal(t, strings.Repeat("é", 20), v.Lines()[0])
	assert.Equal(t, strings.Repeat("é", 5), v.Lines()[2])
}

func TestView_FullOutputLoaded(t *testing.T) {
	v := NewView(nil, nil)
	out := numberedOutput(2)

	v.Update(messages.FullOutputLoaded{CellIndex: 4, OutputIndex: 2, Output: out})
	assert.Same(t, out, v.Output())

	v.Update(messages.FullOutputLoaded{CellIndex: 5, OutputIndex: 1, Err: domain.ErrIO})
	assert.Same(t, out, v.Output())
	assert.Contains(t, v.Title(), "Cell 4, output 2")
}

func TestView_Scrolling(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 17) // 10 visible lines
	v.SetOutput(1, 1, numberedOutput(25))

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.ScrollOffset())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.ScrollOffset())

	v.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 11, v.ScrollOffset())

	v.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 15, v.ScrollOffset())
	assert.Contains(t, v.View(), "[100%] Line 16-25 of 25")

	v.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 5, v.ScrollOffset())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, v.ScrollOffset())
	assert.Contains(t, v.View(), "[0%] Line 1-10 of 25")

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, 15, v.ScrollOffset())
}

func TestView_SetOutputResetsScroll(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 17)
	v.SetOutput(1, 1, numberedOutput(25))
	v.Update(tea.KeyMsg{Type: tea.KeyEnd})

	v.SetOutput(1, 2, numberedOutput(25))

	assert.Equal(t, 0, v.ScrollOffset())
}

func TestView_Back(t *testing.T) {
	v := NewView(nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewNotebook, msg.View)
}
