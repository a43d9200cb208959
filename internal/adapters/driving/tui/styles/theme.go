// Package styles provides colour themes and styling for the notebook viewer
// and the coloured output of "nbmcp show".
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Background is the background colour.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#F37726"), // Jupyter orange
		Secondary:  lipgloss.Color("#4FA3D1"), // Blue
		Background: lipgloss.Color("#1B1B1F"), // Near black
		Foreground: lipgloss.Color("#E4E4E7"), // Off white
		Muted:      lipgloss.Color("#71717A"), // Gray
		Success:    lipgloss.Color("#7BC47F"), // Green
		Warning:    lipgloss.Color("#E5C07B"), // Amber
		Error:      lipgloss.Color("#E06C75"), // Red
		Border:     lipgloss.Color("#3F3F46"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// Source style for the selected cell's source block.
	Source lipgloss.Style

	// Code marks code cells in the cell list.
	Code lipgloss.Style

	// Markdown marks markdown cells in the cell list.
	Markdown lipgloss.Style

	// Raw marks raw cells in the cell list.
	Raw lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Source: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(theme.Border).
			PaddingLeft(1),

		Code: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Markdown: lipgloss.NewStyle().
			Foreground(theme.Success),

		Raw: lipgloss.NewStyle().
			Foreground(theme.Muted),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#27272A")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// CellType returns the list marker style for a cell type.
func (s *Styles) CellType(t domain.CellType) lipgloss.Style {
	switch t {
	case domain.CellTypeCode:
		return s.Code
	case domain.CellTypeMarkdown:
		return s.Markdown
	default:
		return s.Raw
	}
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
