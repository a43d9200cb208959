// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/components/preview"
	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

// CellList displays notebook cells in a navigable list, one line per cell.
type CellList struct {
	cells    []domain.Cell
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewCellList creates a new cell list component.
func NewCellList(s *styles.Styles) *CellList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &CellList{
		styles: s,
		width:  40,
		height: 10,
	}
}

// Init initialises the cell list.
func (c *CellList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (c *CellList) Update(msg tea.Msg) (*CellList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			c.MoveUp()
		case "down", "j":
			c.MoveDown()
		case "home", "g":
			c.SetSelected(0)
		case "end", "G":
			c.SetSelected(len(c.cells) - 1)
		}
	}
	return c, nil
}

// View renders the visible window of cells around the selection.
func (c *CellList) View() string {
	if len(c.cells) == 0 {
		return c.styles.Muted.Render("No cells")
	}

	lines := make([]string, 0, c.height)
	lines = append(lines, c.styles.Subtitle.Render(fmt.Sprintf("Cells (%d)", len(c.cells))), "")

	start, end := c.window()
	for i := start; i < end; i++ {
		lines = append(lines, c.renderCell(i, &c.cells[i]))
	}
	if end < len(c.cells) {
		lines = append(lines, c.styles.Muted.Render(fmt.Sprintf("  … %d more", len(c.cells)-end)))
	}

	return strings.Join(lines, "\n")
}

// window returns the range of cells that fit, keeping the selection visible.
func (c *CellList) window() (int, int) {
	visible := c.height - 3
	if visible < 1 {
		visible = 1
	}

	start := 0
	if c.selected >= visible {
		start = c.selected - visible + 1
	}
	end := start + visible
	if end > len(c.cells) {
		end = len(c.cells)
	}
	return start, end
}

// renderCell formats one cell as "> [3] code  first line of source  (2)".
func (c *CellList) renderCell(index int, cell *domain.Cell) string {
	indicator := "  "
	if index == c.selected {
		indicator = "> "
	}

	label := fmt.Sprintf("%s[%d] ", indicator, index+1)
	kind := fmt.Sprintf("%-9s", cell.Type)

	outputs := ""
	if len(cell.Outputs) > 0 {
		outputs = fmt.Sprintf(" (%d)", len(cell.Outputs))
	}

	width := c.width - len(label) - len(kind) - len(outputs) - 1
	if width < 8 {
		width = 8
	}
	source := preview.Line(cell.Source, width)
	if source == "" {
		source = "(empty)"
	}

	if index == c.selected {
		return c.styles.Selected.Render(label + kind + source + outputs)
	}
	return c.styles.Normal.Render(label) +
		c.styles.CellType(cell.Type).Render(kind) +
		c.styles.Normal.Render(source) +
		c.styles.Muted.Render(outputs)
}

// SetCells replaces the cells, keeping the selection where possible.
func (c *CellList) SetCells(cells []domain.Cell) {
	c.cells = cells
	if c.selected >= len(cells) {
		c.selected = len(cells) - 1
	}
	if c.selected < 0 {
		c.selected = 0
	}
}

// Cells returns the current cells.
func (c *CellList) Cells() []domain.Cell {
	return c.cells
}

// Selected returns the 0-based index of the selected cell.
func (c *CellList) Selected() int {
	return c.selected
}

// SetSelected sets the selected index if it is in range.
func (c *CellList) SetSelected(index int) {
	if index >= 0 && index < len(c.cells) {
		c.selected = index
	}
}

// SelectedCell returns the currently selected cell, or nil if none.
func (c *CellList) SelectedCell() *domain.Cell {
	if len(c.cells) == 0 || c.selected < 0 || c.selected >= len(c.cells) {
		return nil
	}
	return &c.cells[c.selected]
}

// MoveUp moves selection up.
func (c *CellList) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// MoveDown moves selection down.
func (c *CellList) MoveDown() {
	if c.selected < len(c.cells)-1 {
		c.selected++
	}
}

// SetDimensions sets the component dimensions.
func (c *CellList) SetDimensions(width, height int) {
	c.width = width
	c.height = height
}

// Width returns the current width.
func (c *CellList) Width() int {
	return c.width
}

// Height returns the current height.
func (c *CellList) Height() int {
	return c.height
}

// Count returns the number of cells.
func (c *CellList) Count() int {
	return len(c.cells)
}

// IsEmpty returns whether the list is empty.
func (c *CellList) IsEmpty() bool {
	return len(c.cells) == 0
}
