package campaignwizard

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/tui/theme"
)

type modeRow int

const (
	rowMode modeRow = iota
	rowTone
	rowLength
	rowLanguage
	rowKeyPoints
	rowCount
)

var modeDescriptions = map[campaign.GenerationMode]string{
	campaign.ModeTemplate: "One subject and body you write or generate",
	campaign.ModeABTest:   "Mix hooks, bodies and CTAs; each recipient gets one combination",
	campaign.ModeAuto:     "A unique message is written for every recipient",
}

// ModeStep chooses the generation mode and the message style.
type ModeStep struct {
	env       *stepEnv
	row       modeRow
	keyPoints textinput.Model

	width  int
	height int
}

// NewModeStep creates the mode step.
func NewModeStep(env *stepEnv) *ModeStep {
	ti := textinput.New()
	ti.Placeholder = "What should every message mention?"
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.SetWidth(50)
	ti.SetStyles(inputStyles())
	return &ModeStep{env: env, keyPoints: ti, width: modalContentWidth}
}

// Init loads the key points from the draft.
func (s *ModeStep) Init() tea.Cmd {
	s.keyPoints.SetValue(s.env.draft.Style.KeyPoints)
	if s.row == rowKeyPoints {
		return s.keyPoints.Focus()
	}
	return nil
}

// SetSize updates the size of the step.
func (s *ModeStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.keyPoints.SetWidth(width - 24)
}

// Hints returns the key hints for the step.
func (s *ModeStep) Hints() []string {
	if s.row == rowKeyPoints {
		return []string{"↑↓", "row", "type", "key points"}
	}
	return []string{"↑↓", "row", "←→", "change"}
}

// Update handles messages for the mode step.
func (s *ModeStep) Update(msg tea.Msg) tea.Cmd {
	d := s.env.draft

	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.row == rowKeyPoints {
			var cmd tea.Cmd
			s.keyPoints, cmd = s.keyPoints.Update(msg)
			return cmd
		}
		return nil
	}

	switch key.String() {
	case "up", "shift+tab":
		return s.moveRow(-1)
	case "down", "tab":
		return s.moveRow(1)
	case "enter":
		return nextStep
	}

	dir := 0
	switch key.String() {
	case "left", "h":
		dir = -1
	case "right", "l", "space", " ":
		dir = 1
	}

	switch s.row {
	case rowMode:
		if dir != 0 {
			d.SetMode(cycle(campaign.Modes, d.Mode(), dir))
		}
	case rowTone:
		if dir != 0 {
			d.Style.Tone = cycle(campaign.Tones, d.Style.Tone, dir)
		}
	case rowLength:
		if dir != 0 {
			d.Style.Length = cycle(campaign.Lengths, d.Style.Length, dir)
		}
	case rowLanguage:
		if dir != 0 {
			d.Style.Language = cycle(campaign.Languages, d.Style.Language, dir)
		}
	case rowKeyPoints:
		var cmd tea.Cmd
		s.keyPoints, cmd = s.keyPoints.Update(msg)
		d.Style.KeyPoints = strings.TrimSpace(s.keyPoints.Value())
		return cmd
	}
	return nil
}

func (s *ModeStep) moveRow(dir int) tea.Cmd {
	next := s.row + modeRow(dir)
	if next < 0 || next >= rowCount {
		return nil
	}
	s.row = next
	if s.row == rowKeyPoints {
		return s.keyPoints.Focus()
	}
	s.keyPoints.Blur()
	return nil
}

// View renders the mode step.
func (s *ModeStep) View() string {
	st := theme.Current().S()
	d := s.env.draft

	label := func(r modeRow, text string) string {
		style := st.Label
		if s.row == r {
			style = st.Selected
		}
		return cursorPrefix(s.row == r) + style.Width(14).Render(text)
	}

	var modes []string
	for _, mode := range campaign.Modes {
		modes = append(modes, radio(modeLabel(mode), d.Mode() == mode, s.row == rowMode && d.Mode() == mode))
	}
	rows := []string{label(rowMode, "Generation") + strings.Join(modes, "  ")}
	if desc, ok := modeDescriptions[d.Mode()]; ok {
		rows = append(rows, strings.Repeat(" ", 16)+st.Muted.Render(desc))
	} else {
		rows = append(rows, strings.Repeat(" ", 16)+st.Muted.Render("Choose how messages are produced"))
	}
	rows = append(rows, "")

	rows = append(rows,
		label(rowTone, "Tone")+options(campaign.Tones, d.Style.Tone, s.row == rowTone),
		label(rowLength, "Length")+options(campaign.Lengths, d.Style.Length, s.row == rowLength),
		label(rowLanguage, "Language")+options(campaign.Languages, d.Style.Language, s.row == rowLanguage),
		label(rowKeyPoints, "Key points")+s.keyPoints.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func modeLabel(m campaign.GenerationMode) string {
	switch m {
	case campaign.ModeTemplate:
		return "Template"
	case campaign.ModeABTest:
		return "A/B test"
	case campaign.ModeAuto:
		return "Fully automatic"
	default:
		return string(m)
	}
}

func options[T ~string](all []T, selected T, focused bool) string {
	parts := make([]string, len(all))
	for i, opt := range all {
		parts[i] = radio(string(opt), opt == selected, focused && opt == selected)
	}
	return strings.Join(parts, "  ")
}
