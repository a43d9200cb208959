// Package notebook provides the main notebook view: a cell list beside the
// selected cell's source and output previews.
package notebook

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/components/preview"
	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/nbmcp/internal/core/domain"
	"github.com/custodia-labs/nbmcp/internal/core/ports/driving"
)

// minListWidth is the narrowest the cell list pane gets.
const minListWidth = 30

// View is the notebook view.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	outputs driving.OutputService
	ctx     context.Context
	path    string

	notebook *domain.Notebook
	cells    *list.CellList
	output   int
	width    int
	height   int
	loading  bool
	err      error
}

// NewView creates a notebook view for the notebook at path.
func NewView(s *styles.Styles, km *keymap.KeyMap, outputs driving.OutputService, path string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:  s,
		keymap:  km,
		outputs: outputs,
		ctx:     context.Background(),
		path:    path,
		cells:   list.NewCellList(s),
	}
	v.SetDimensions(80, 24)
	return v
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the notebook.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load returns a command that reads the notebook from disk.
func (v *View) Load() tea.Cmd {
	if v.outputs == nil {
		return func() tea.Msg {
			return messages.NotebookLoaded{Path: v.path, Err: fmt.Errorf("output service not available")}
		}
	}

	v.loading = true
	ctx, svc, path := v.ctx, v.outputs, v.path
	return func() tea.Msg {
		nb, err := svc.Load(ctx, path)
		return messages.NotebookLoaded{Path: path, Notebook: nb, Err: err}
	}
}

// Update handles messages for the notebook view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.NotebookLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notebook = msg.Notebook
		v.cells.SetCells(msg.Notebook.Cells)
		v.clampOutput()
		return v, nil

	case messages.ReloadRequested:
		return v, v.Load()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Up), keymap.Matches(key, v.keymap.Down),
		keymap.Matches(key, v.keymap.Top), keymap.Matches(key, v.keymap.Bottom):
		before := v.cells.Selected()
		v.cells.Update(msg)
		if v.cells.Selected() != before {
			v.output = 0
		}

	case keymap.Matches(key, v.keymap.NextOutput):
		if n := v.outputCount(); n > 0 {
			v.output = (v.output + 1) % n
		}

	case keymap.Matches(key, v.keymap.PrevOutput):
		if n := v.outputCount(); n > 0 {
			v.output = (v.output - 1 + n) % n
		}

	case keymap.Matches(key, v.keymap.Expand):
		return v, v.expand()

	case keymap.Matches(key, v.keymap.Reload):
		return v, v.Load()
	}

	return v, nil
}

// expand returns a command fetching the selected output in full.
func (v *View) expand() tea.Cmd {
	cell := v.cells.SelectedCell()
	cellIndex := v.cells.Selected() + 1
	if cell == nil || len(cell.Outputs) == 0 {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: fmt.Errorf("%w: cell %d has no outputs", domain.ErrOutputNotFound, cellIndex)}
		}
	}
	if v.outputs == nil {
		return nil
	}

	ctx, svc, path, outputIndex := v.ctx, v.outputs, v.path, v.output+1
	return func() tea.Msg {
		full, err := svc.GetFullOutput(ctx, path, cellIndex, outputIndex, domain.TypeHintNone)
		return messages.FullOutputLoaded{
			CellIndex:   cellIndex,
			OutputIndex: outputIndex,
			Output:      full,
			Err:         err,
		}
	}
}

func (v *View) outputCount() int {
	cell := v.cells.SelectedCell()
	if cell == nil {
		return 0
	}
	return len(cell.Outputs)
}

func (v *View) clampOutput() {
	if n := v.outputCount(); v.output >= n {
		v.output = 0
	}
}

// View renders the notebook view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.title()))
	b.WriteString("\n\n")

	switch {
	case v.notebook == nil && v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[r] retry  [q] quit"))
		return b.String()
	case v.notebook == nil:
		b.WriteString(v.styles.Muted.Render("Loading notebook..."))
		return b.String()
	}

	listWidth, detailWidth, paneHeight := v.layout()
	left := lipgloss.NewStyle().Width(listWidth).Render(v.cells.View())
	right := lipgloss.NewStyle().Width(detailWidth).Render(v.renderDetail(detailWidth, paneHeight))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right))

	if v.err != nil {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Reload failed: %s", v.err.Error())))
	}

	return b.String()
}

func (v *View) title() string {
	if v.notebook == nil {
		return v.path
	}
	return fmt.Sprintf("%s  (nbformat %s)", v.path, v.notebook.Format)
}

// renderDetail renders the selected cell's source and output previews.
func (v *View) renderDetail(width, height int) string {
	cell := v.cells.SelectedCell()
	if cell == nil {
		return v.styles.Muted.Render("Empty notebook")
	}

	var b strings.Builder
	header := fmt.Sprintf("Cell %d  %s", v.cells.Selected()+1, cell.Type.Label())
	if cell.ExecutionCount != nil {
		header += fmt.Sprintf("  [%d]", *cell.ExecutionCount)
	}
	b.WriteString(v.styles.Subtitle.Render(header))
	b.WriteString("\n")

	// Leave room for the output section below the source.
	sourceLines := height - 4 - len(cell.Outputs)
	if sourceLines < 3 {
		sourceLines = 3
	}
	lines, hidden := preview.Lines(cell.Source, sourceLines)
	for i, line := range lines {
		lines[i] = preview.Truncate(line, width-2)
	}
	if hidden > 0 {
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("… %d more lines", hidden)))
	}
	b.WriteString(v.styles.Source.Render(strings.Join(lines, "\n")))
	b.WriteString("\n\n")

	if !cell.IsCode() {
		return b.String()
	}
	if len(cell.Outputs) == 0 {
		b.WriteString(v.styles.Muted.Render("No outputs"))
		return b.String()
	}

	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Outputs (%d)", len(cell.Outputs))))
	for i, out := range cell.Outputs {
		b.WriteString("\n")
		line := fmt.Sprintf("%d. %-14s %s", i+1, preview.Kind(out), preview.Output(out, width-22))
		if i == v.output {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
	}
	return b.String()
}

// layout splits the width between the cell list and the detail pane.
func (v *View) layout() (listWidth, detailWidth, paneHeight int) {
	listWidth = v.width * 2 / 5
	if listWidth < minListWidth {
		listWidth = minListWidth
	}
	detailWidth = v.width - listWidth - 3
	if detailWidth < 20 {
		detailWidth = 20
	}
	return listWidth, detailWidth, v.height - 4
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	listWidth, _, paneHeight := v.layout()
	v.cells.SetDimensions(listWidth, paneHeight)
}

// Path returns the notebook path.
func (v *View) Path() string {
	return v.path
}

// Notebook returns the loaded notebook, or nil before the first load.
func (v *View) Notebook() *domain.Notebook {
	return v.notebook
}

// SelectedCell returns the 1-based index of the selected cell.
func (v *View) SelectedCell() int {
	return v.cells.Selected() + 1
}

// SelectedOutput returns the 1-based index of the selected output.
func (v *View) SelectedOutput() int {
	return v.output + 1
}

// Loading returns whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
