package campaignwizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/tui/theme"
)

// Color palette (Catppuccin Mocha)
var (
	colorSubtext0 = lipgloss.Color("#a6adc8") // Subtext0
	colorSubtext1 = lipgloss.Color("#bac2de") // Subtext1
	colorSurface2 = lipgloss.Color("#585b70") // Surface2
)

// Hint bar styles
var (
	styleHintKey = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Bold(true)

	styleHintDesc = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	styleHintSeparator = lipgloss.NewStyle().
				Foreground(colorSurface2)
)

// renderHintBar renders a hint bar with the given key-description pairs.
// Example: renderHintBar("↑↓", "navigate", "enter", "select", "esc", "back")
// Returns: "↑↓ navigate • enter select • esc back"
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + styleHintSeparator.Render("•") + " ")
		}
		b.WriteString(styleHintKey.Render(pairs[i]) + " " + styleHintDesc.Render(pairs[i+1]))
	}
	return b.String()
}

// highlightMergeFields renders text with {{field}} tokens emphasized.
func highlightMergeFields(text string) string {
	s := theme.Current().S()
	locs := campaign.MergeFieldSpans(text)
	if len(locs) == 0 {
		return s.Text.Render(text)
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(s.Text.Render(text[last:loc[0]]))
		b.WriteString(s.MergeField.Render(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(s.Text.Render(text[last:]))
	return b.String()
}

// cursorPrefix marks the focused row of a list.
func cursorPrefix(focused bool) string {
	if focused {
		return theme.Current().S().Selected.Render("› ")
	}
	return "  "
}

// radio renders a one-of-many option.
func radio(label string, selected, focused bool) string {
	s := theme.Current().S()
	mark := "○ "
	style := s.Muted
	if selected {
		mark = "● "
		style = s.Text
	}
	if focused {
		style = s.Selected
	}
	return style.Render(mark + label)
}

// checkbox renders a many-of-many option.
func checkbox(label string, checked, focused bool) string {
	s := theme.Current().S()
	mark := "[ ] "
	style := s.Muted
	if checked {
		mark = "[x] "
		style = s.Text
	}
	if focused {
		style = s.Selected
	}
	return style.Render(mark + label)
}

// chips renders set values as tags.
func chips(values []string) string {
	if len(values) == 0 {
		return theme.Current().S().Muted.Render("none")
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = theme.Current().S().Chip.Render(v)
	}
	return strings.Join(parts, " ")
}
