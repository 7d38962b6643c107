package campaignwizard

import (
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/tui/theme"
)

// templateCount is how many alternatives one generate request asks for.
const templateCount = 3

// TemplateStep edits the single subject/body template.
type TemplateStep struct {
	env *stepEnv

	subject   textinput.Model
	body      textarea.Model
	focusBody bool

	generating   bool
	alternatives []campaign.TemplateContent
	altIndex     int

	width  int
	height int
}

// NewTemplateStep creates the template step.
func NewTemplateStep(env *stepEnv) *TemplateStep {
	subject := textinput.New()
	subject.Placeholder = "Subject, e.g. Quick question about {{company}}"
	subject.Prompt = ""
	subject.CharLimit = 200
	subject.SetWidth(modalContentWidth - 12)
	subject.SetStyles(inputStyles())

	body := textarea.New()
	body.Placeholder = "Hi {{firstName}},\n\n..."
	body.CharLimit = 5000
	body.ShowLineNumbers = false
	body.Prompt = ""
	body.SetWidth(modalContentWidth)
	body.SetHeight(8)

	return &TemplateStep{env: env, subject: subject, body: body, width: modalContentWidth}
}

// Init loads the inputs from the draft.
func (s *TemplateStep) Init() tea.Cmd {
	tmpl := s.env.draft.Template
	if tmpl == nil {
		return nil
	}
	s.subject.SetValue(tmpl.Subject)
	s.body.SetValue(tmpl.Body)
	return s.applyFocus()
}

// SetSize updates the size of the step.
func (s *TemplateStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.subject.SetWidth(width - 12)
	s.body.SetWidth(width)
	bodyHeight := height - 8
	if bodyHeight < 4 {
		bodyHeight = 4
	}
	if bodyHeight > 16 {
		bodyHeight = 16
	}
	s.body.SetHeight(bodyHeight)
}

// Hints returns the key hints for the step.
func (s *TemplateStep) Hints() []string {
	hints := []string{"tab", "field", "ctrl+g", "generate"}
	if len(s.alternatives) > 1 {
		hints = append(hints, "ctrl+o", "next suggestion")
	}
	if os.Getenv("EDITOR") != "" {
		hints = append(hints, "ctrl+e", "edit body")
	}
	return hints
}

func (s *TemplateStep) applyFocus() tea.Cmd {
	if s.focusBody {
		s.subject.Blur()
		return s.body.Focus()
	}
	s.body.Blur()
	return s.subject.Focus()
}

// Update handles messages for the template step.
func (s *TemplateStep) Update(msg tea.Msg) tea.Cmd {
	tmpl := s.env.draft.Template

	switch msg := msg.(type) {
	case TemplatesGeneratedMsg:
		s.generating = false
		if tmpl == nil || msg.target != tmpl {
			// Mode changed while the request was in flight.
			return nil
		}
		if msg.Err != nil {
			return toastCmd(fmt.Sprintf("Generation failed: %v", msg.Err), true)
		}
		s.alternatives = msg.Templates
		s.altIndex = 0
		s.apply(s.alternatives[0])
		return nil

	case TemplateEditedMsg:
		if tmpl == nil || msg.target != tmpl {
			return nil
		}
		s.body.SetValue(strings.TrimRight(msg.Body, "\n"))
		tmpl.Body = s.body.Value()
		return nil

	case tea.KeyPressMsg:
		if tmpl == nil {
			return nil
		}
		switch msg.String() {
		case "tab", "shift+tab":
			s.focusBody = !s.focusBody
			return s.applyFocus()
		case "ctrl+g":
			return s.generate()
		case "ctrl+o":
			if len(s.alternatives) > 1 {
				s.altIndex = (s.altIndex + 1) % len(s.alternatives)
				s.apply(s.alternatives[s.altIndex])
			}
			return nil
		case "ctrl+e":
			return s.openEditor()
		case "enter":
			if !s.focusBody {
				s.focusBody = true
				return s.applyFocus()
			}
		}
	}

	var cmd tea.Cmd
	if s.focusBody {
		s.body, cmd = s.body.Update(msg)
	} else {
		s.subject, cmd = s.subject.Update(msg)
	}
	if tmpl != nil {
		tmpl.Subject = s.subject.Value()
		tmpl.Body = s.body.Value()
	}
	return cmd
}

func (s *TemplateStep) apply(t campaign.TemplateContent) {
	s.subject.SetValue(t.Subject)
	s.body.SetValue(t.Body)
	*s.env.draft.Template = t
}

func (s *TemplateStep) generate() tea.Cmd {
	gen := s.env.opts.Generator
	if gen == nil || s.generating {
		return nil
	}
	d := s.env.draft
	req := campaign.TemplateRequest{
		Tone:      d.Style.Tone,
		Language:  d.Style.Language,
		KeyPoints: d.Style.KeyPoints,
		Goal:      d.Goal,
		Count:     templateCount,
	}
	s.generating = true
	ctx := s.env.ctx
	target := d.Template
	return func() tea.Msg {
		templates, err := gen.GenerateTemplates(ctx, req)
		if err == nil && len(templates) == 0 {
			err = fmt.Errorf("no templates returned")
		}
		return TemplatesGeneratedMsg{Templates: templates, Err: err, target: target}
	}
}

// openEditor launches the user's $EDITOR with the template body.
func (s *TemplateStep) openEditor() tea.Cmd {
	target := s.env.draft.Template
	tmpfile, err := os.CreateTemp("", "campaignr_template_*.txt")
	if err != nil {
		return toastCmd("Could not create temp file: "+err.Error(), true)
	}
	path := tmpfile.Name()

	if _, err := tmpfile.WriteString(s.body.Value()); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(path)
		return toastCmd("Could not write temp file: "+err.Error(), true)
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("campaignr", path)
	if err != nil {
		_ = os.Remove(path)
		return toastCmd("No editor available: "+err.Error(), true)
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer os.Remove(path)
		if err != nil {
			return showToastMsg{text: "Editor failed: " + err.Error(), isError: true}
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return showToastMsg{text: "Could not read edited body: " + err.Error(), isError: true}
		}
		return TemplateEditedMsg{Body: string(content), target: target}
	})
}

// View renders the template step.
func (s *TemplateStep) View() string {
	st := theme.Current().S()

	subjectLabel := st.Label.Width(10).Render("Subject")
	bodyLabel := st.Label.Render("Body")
	if s.focusBody {
		bodyLabel = st.Selected.Render("Body")
	} else {
		subjectLabel = st.Selected.Width(10).Render("Subject")
	}

	panel := st.Panel
	if s.focusBody {
		panel = st.PanelFocused
	}

	rows := []string{
		subjectLabel + " " + s.subject.View(),
		"",
		bodyLabel,
		panel.Render(s.body.View()),
	}

	var status []string
	if s.generating {
		status = append(status, st.Muted.Render("Generating templates..."))
	} else if len(s.alternatives) > 1 {
		status = append(status, st.Muted.Render(fmt.Sprintf("Suggestion %d of %d", s.altIndex+1, len(s.alternatives))))
	}
	fields := campaign.MergeFields(s.subject.Value() + "\n" + s.body.Value())
	if len(fields) > 0 {
		status = append(status, st.Muted.Render("Merge fields: ")+highlightMergeFields("{{"+strings.Join(fields, "}} {{")+"}}"))
	}
	if len(status) > 0 {
		rows = append(rows, strings.Join(status, st.Muted.Render(" · ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
