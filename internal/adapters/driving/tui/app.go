package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/views/notebook"
	"github.com/custodia-labs/nbmcp/internal/adapters/driving/tui/views/output"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// path is the notebook being viewed.
	path string

	styles *styles.Styles
	keymap *keymap.KeyMap

	statusBar    *status.Bar
	notebookView *notebook.View
	outputView   *output.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is restored when help is closed.
	previousView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a viewer for the notebook at path.
func NewApp(ports *Ports, path string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("creating app: %w", ErrMissingNotebookPath)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	bar := status.NewBar(s, km)
	bar.SetPath(path)

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		path:         path,
		styles:       s,
		keymap:       km,
		statusBar:    bar,
		notebookView: notebook.NewView(s, km, ports.Outputs, path),
		outputView:   output.NewView(s, km),
		currentView:  messages.ViewNotebook,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.notebookView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It sets the window title and loads the notebook.
func (a *App) Init() tea.Cmd {
	a.statusBar.SetState(status.StateLoading)
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("nbmcp - "+filepath.Base(a.path)),
		a.notebookView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.statusBar.SetWidth(msg.Width)
		a.notebookView.SetDimensions(msg.Width, msg.Height)
		a.outputView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.NotebookLoaded:
		a.notebookView, cmd = a.notebookView.Update(msg)
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, cmd
		}
		a.err = nil
		a.statusBar.Clear()
		if msg.Notebook != nil {
			a.statusBar.SetCellCount(msg.Notebook.Len())
		}
		return a, cmd

	case messages.FullOutputLoaded:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.outputView, cmd = a.outputView.Update(msg)
		a.err = nil
		a.currentView = messages.ViewOutput
		a.statusBar.SetState(status.StateOutput)
		a.statusBar.SetMessage(fmt.Sprintf("Cell %d, output %d", msg.CellIndex, msg.OutputIndex))
		return a, cmd

	case messages.ReloadRequested:
		a.statusBar.SetState(status.StateLoading)
		a.notebookView, cmd = a.notebookView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.switchView(msg.View)
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// handleKeyMsg routes key presses to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	if keymap.Matches(key, a.keymap.Quit) {
		return a, tea.Quit
	}

	if keymap.Matches(key, a.keymap.Help) {
		if a.currentView == messages.ViewHelp {
			a.switchView(a.previousView)
		} else {
			a.previousView = a.currentView
			a.switchView(messages.ViewHelp)
		}
		return a, nil
	}

	switch a.currentView {
	case messages.ViewNotebook:
		if keymap.Matches(key, a.keymap.Reload) {
			a.statusBar.SetState(status.StateLoading)
		}
		a.notebookView, cmd = a.notebookView.Update(msg)
		return a, cmd

	case messages.ViewOutput:
		a.outputView, cmd = a.outputView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		if keymap.Matches(key, a.keymap.Back) {
			a.switchView(a.previousView)
		}
		return a, nil
	}

	return a, nil
}

// switchView activates a view and updates the status bar to match.
func (a *App) switchView(view messages.ViewType) {
	a.currentView = view
	switch view {
	case messages.ViewHelp:
		a.statusBar.SetState(status.StateHelp)
	case messages.ViewOutput:
		a.statusBar.SetState(status.StateOutput)
	default:
		a.statusBar.Clear()
	}
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
}

// View implements tea.Model.
// It renders the active view above the status bar.
func (a *App) View() string {
	var body string
	switch a.currentView {
	case messages.ViewOutput:
		body = a.outputView.View()
	case messages.ViewHelp:
		body = a.renderHelp()
	default:
		body = a.notebookView.View()
	}

	return body + "\n" + a.statusBar.View()
}

// renderHelp renders every keybinding grouped by purpose.
func (a *App) renderHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Keybindings"))
	b.WriteString("\n\n")

	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, a.styles.Muted.Render(h.Desc)))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[?/esc] close help"))
	return b.String()
}

// Run starts the TUI program.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Path returns the notebook path.
func (a *App) Path() string {
	return a.path
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether a window size has been received.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
}

// Ports returns the app's ports.
func (a *App) Ports() *Ports {
	return a.ports
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// NotebookView returns the notebook view.
func (a *App) NotebookView() *notebook.View {
	return a.notebookView
}

// OutputView returns the output view.
func (a *App) OutputView() *output.View {
	return a.outputView
}
