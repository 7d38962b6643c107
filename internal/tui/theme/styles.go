package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	Title      lipgloss.Style
	Label      lipgloss.Style
	Text       lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Chip       lipgloss.Style
	MergeField lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style

	Modal        lipgloss.Style
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
}
