// Package output provides the scrolling full-output view for the TUI.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

// View shows one output untruncated.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	output       *domain.FullOutput
	cellIndex    int
	outputIndex  int
	content      string
	lines        []string
	scrollOffset int
	width        int
	height       int
}

// NewView creates a new output view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles: s,
		keymap: km,
		width:  80,
		height: 24,
	}
}

// SetOutput shows out, located at 1-based cell and output indices.
func (v *View) SetOutput(cellIndex, outputIndex int, out *domain.FullOutput) {
	v.cellIndex = cellIndex
	v.outputIndex = outputIndex
	v.output = out
	v.content = displayContent(out)
	v.scrollOffset = 0
	v.wrapContent()
}

// displayContent renders the payload for reading.
// Error outputs arrive as JSON and are shown as a traceback.
func displayContent(out *domain.FullOutput) string {
	if out == nil {
		return ""
	}
	if out.OutputType == domain.OutputTypeError {
		var e struct {
			Ename     string   `json:"ename"`
			Evalue    string   `json:"evalue"`
			Traceback []string `json:"traceback"`
		}
		if err := json.Unmarshal([]byte(out.Data), &e); err == nil {
			lines := append([]string{fmt.Sprintf("%s: %s", e.Ename, e.Evalue), ""}, e.Traceback...)
			return strings.Join(lines, "\n")
		}
	}
	return out.Data
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the output view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.FullOutputLoaded:
		if msg.Err == nil {
			v.SetOutput(msg.CellIndex, msg.OutputIndex, msg.Output)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Up):
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case keymap.Matches(key, v.keymap.PageUp):
		v.scrollOffset -= v.visibleLines()
		if v.scrollOffset < 0 {
			v.scrollOffset = 0
		}
	case keymap.Matches(key, v.keymap.PageDown):
		v.scrollOffset += v.visibleLines()
		if v.scrollOffset > v.maxScrollOffset() {
			v.scrollOffset = v.maxScrollOffset()
		}
	case keymap.Matches(key, v.keymap.Top):
		v.scrollOffset = 0
	case keymap.Matches(key, v.keymap.Bottom):
		v.scrollOffset = v.maxScrollOffset()
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewNotebook}
		}
	}

	return v, nil
}

// wrapContent wraps the content to fit the view width.
func (v *View) wrapContent() {
	if v.content == "" {
		v.lines = nil
		return
	}

	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	rawLines := strings.Split(strings.TrimRight(v.content, "\n"), "\n")
	v.lines = make([]string, 0, len(rawLines))

	for _, line := range rawLines {
		runes := []rune(line)
		for len(runes) > contentWidth {
			v.lines = append(v.lines, string(runes[:contentWidth]))
			runes = runes[contentWidth:]
		}
		v.lines = append(v.lines, string(runes))
	}
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Title, separator, scroll indicator, help and the status bar.
	available := v.height - 7
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	maxOffset := len(v.lines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// View renders the output view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.Title()))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(0, min(v.width-4, 60))))
	b.WriteString("\n\n")

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("(No content)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.styles.Normal.Render(v.lines[i]))
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		b.WriteString("\n")
		percentage := 0
		if v.maxScrollOffset() > 0 {
			percentage = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage,
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(v.lines)),
			len(v.lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// Title names the output and its selected representation.
func (v *View) Title() string {
	if v.output == nil {
		return "Output"
	}
	title := fmt.Sprintf("Cell %d, output %d  %s", v.cellIndex, v.outputIndex, v.output.MIMEType)
	switch {
	case v.output.StreamName != "":
		title += fmt.Sprintf(" (%s %s)", v.output.OutputType, v.output.StreamName)
	case v.output.OutputType != "":
		title += fmt.Sprintf(" (%s)", v.output.OutputType)
	}
	return title
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.wrapContent()
}

// Output returns the output being shown.
func (v *View) Output() *domain.FullOutput {
	return v.output
}

// Lines returns the wrapped content lines.
func (v *View) Lines() []string {
	return v.lines
}

// ScrollOffset returns the index of the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}
