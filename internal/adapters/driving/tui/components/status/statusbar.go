// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateHelp    State = "help"
	StateOutput  State = "output"
)

// Bar displays the notebook name, application state and keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	state     State
	message   string
	path      string
	cellCount int
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - s.styles.StatusBar.GetHorizontalPadding() - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the notebook name and state.
func (s *Bar) renderLeft() string {
	name := ""
	if s.path != "" {
		name = s.styles.Normal.Render(filepath.Base(s.path)) + "  "
	}

	switch s.state {
	case StateLoading:
		return name + s.styles.Muted.Render("Loading...")
	case StateError:
		if s.message != "" {
			return name + s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return name + s.styles.Error.Render("Error")
	case StateHelp:
		return name + s.styles.Normal.Render("Help")
	case StateOutput:
		return name + s.styles.Normal.Render(s.message)
	case StateReady:
		if s.message != "" {
			return name + s.styles.Muted.Render(s.message)
		}
	}
	return name + s.styles.Muted.Render(fmt.Sprintf("%d cells", s.cellCount))
}

// renderRight renders keybinding hints for the current state.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case StateOutput:
		bindings = s.keymap.OutputHelp()
	case StateReady:
		bindings = s.keymap.NotebookHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetPath sets the notebook path shown on the left.
func (s *Bar) SetPath(path string) {
	s.path = path
}

// Path returns the notebook path.
func (s *Bar) Path() string {
	return s.path
}

// SetCellCount sets the number of cells.
func (s *Bar) SetCellCount(count int) {
	s.cellCount = count
}

// CellCount returns the number of cells.
func (s *Bar) CellCount() int {
	return s.cellCount
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the state and message. The path and cell count are kept.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
