package campaignwizard

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/tui/theme"
)

// AttachmentStep picks an optional document to send with every message.
// Row 0 is "no attachment".
type AttachmentStep struct {
	env *stepEnv

	attachments []campaign.Attachment
	loading     bool
	loaded      bool
	err         string
	cursor      int

	width  int
	height int
}

// NewAttachmentStep creates the attachment step.
func NewAttachmentStep(env *stepEnv) *AttachmentStep {
	return &AttachmentStep{env: env, width: modalContentWidth}
}

// Init places the cursor on the current selection.
func (s *AttachmentStep) Init() tea.Cmd {
	s.cursor = 0
	if att := s.env.draft.Attachment; att != nil {
		for i, a := range s.attachments {
			if a.ID == att.ID {
				s.cursor = i + 1
			}
		}
	}
	if !s.loaded && !s.loading {
		return s.load()
	}
	return nil
}

func (s *AttachmentStep) load() tea.Cmd {
	catalog := s.env.opts.Catalog
	if catalog == nil {
		s.loaded = true
		return nil
	}
	s.loading = true
	ctx := s.env.ctx
	return func() tea.Msg {
		atts, err := catalog.Attachments(ctx)
		return AttachmentsLoadedMsg{Attachments: atts, Err: err}
	}
}

// SetSize updates the size of the step.
func (s *AttachmentStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Hints returns the key hints for the step.
func (s *AttachmentStep) Hints() []string {
	return []string{"↑↓", "move", "space", "select", "enter", "select & next"}
}

// Update handles messages for the attachment step.
func (s *AttachmentStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case AttachmentsLoadedMsg:
		s.loading = false
		s.loaded = true
		if msg.Err != nil {
			s.err = msg.Err.Error()
			log.Warn("loading attachments: %v", msg.Err)
			return nil
		}
		s.err = ""
		s.attachments = msg.Attachments
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.attachments) {
				s.cursor++
			}
		case "space", " ":
			s.selectCursor()
		case "enter":
			s.selectCursor()
			return nextStep
		case "r":
			if s.err != "" {
				s.err = ""
				return s.load()
			}
		}
	}
	return nil
}

func (s *AttachmentStep) selectCursor() {
	if s.cursor == 0 {
		s.env.draft.Attachment = nil
		return
	}
	att := s.attachments[s.cursor-1]
	s.env.draft.Attachment = &att
}

// View renders the attachment step.
func (s *AttachmentStep) View() string {
	st := theme.Current().S()
	selected := s.env.draft.Attachment

	rows := []string{st.Text.Render("Attach a document to every message (optional)."), ""}
	rows = append(rows, cursorPrefix(s.cursor == 0)+radio("No attachment", selected == nil, s.cursor == 0))

	for i, att := range s.attachments {
		label := fmt.Sprintf("%s %s", att.DisplayName, st.Muted.Render("("+string(att.Origin)+")"))
		isSel := selected != nil && selected.ID == att.ID
		rows = append(rows, cursorPrefix(s.cursor == i+1)+radio(label, isSel, s.cursor == i+1))
	}

	switch {
	case s.loading:
		rows = append(rows, "", st.Muted.Render("Loading documents..."))
	case s.err != "":
		rows = append(rows, "", st.Error.Render("✗ "+s.err), st.Muted.Render("Press r to retry."))
	case s.loaded && len(s.attachments) == 0:
		rows = append(rows, "", st.Muted.Render("No documents available."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
