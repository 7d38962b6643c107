package campaignwizard

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campaignr/internal/tui/theme"
)

const toastDuration = 3 * time.Second

// Toast shows one short notification that auto-dismisses. A newer message
// replaces the current one and restarts its timer.
type Toast struct {
	message string
	isError bool
	visible bool
	gen     uint64
}

type toastExpiredMsg struct {
	gen uint64
}

// NewToast creates a new Toast component.
func NewToast() *Toast {
	return &Toast{}
}

// Show displays msg as information.
func (t *Toast) Show(msg string) tea.Cmd {
	return t.show(msg, false)
}

// ShowError displays msg as an error.
func (t *Toast) ShowError(msg string) tea.Cmd {
	return t.show(msg, true)
}

func (t *Toast) show(msg string, isError bool) tea.Cmd {
	t.gen++
	t.message = msg
	t.isError = isError
	t.visible = true
	gen := t.gen
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{gen: gen}
	})
}

// Update handles messages for the toast component.
func (t *Toast) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(toastExpiredMsg); ok && msg.gen == t.gen {
		t.dismiss()
	}
	return nil
}

func (t *Toast) dismiss() {
	t.visible = false
	t.message = ""
	t.isError = false
}

// View renders the toast line, or "" when hidden.
func (t *Toast) View(width int) string {
	if !t.visible || t.message == "" {
		return ""
	}

	th := theme.Current()
	bg := th.Warning
	if t.isError {
		bg = th.Error
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.BgBase)).
		Background(lipgloss.Color(bg)).
		Padding(0, 1).
		Bold(true)

	content := style.Render(t.message)
	if width > 2 && lipgloss.Width(content) > width-2 {
		content = style.Width(width - 2).Render(t.message)
	}
	return content
}

// IsVisible returns whether the toast is currently visible.
func (t *Toast) IsVisible() bool {
	return t.visible
}

// Message returns the current toast message (empty if not visible).
func (t *Toast) Message() string {
	if !t.visible {
		return ""
	}
	return t.message
}

// IsError reports whether the visible toast is an error.
func (t *Toast) IsError() bool {
	return t.visible && t.isError
}
