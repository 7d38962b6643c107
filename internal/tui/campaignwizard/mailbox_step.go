package campaignwizard

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campaignr/internal/tui/theme"
)

// MailboxStep shows the outreach mailbox connection. Connecting happens
// in the browser; the step re-checks the provider on request.
type MailboxStep struct {
	env      *stepEnv
	checking bool
	err      string

	width  int
	height int
}

// NewMailboxStep creates the mailbox step.
func NewMailboxStep(env *stepEnv) *MailboxStep {
	return &MailboxStep{env: env, width: modalContentWidth}
}

// Init re-checks the connection each time the step is shown.
func (s *MailboxStep) Init() tea.Cmd {
	return s.refresh()
}

// SetSize updates the size of the step.
func (s *MailboxStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Hints returns the key hints for the step.
func (s *MailboxStep) Hints() []string {
	if s.env.draft.Mailbox.Connected {
		return []string{"c", "re-check", "d", "disconnect"}
	}
	return []string{"c", "check connection"}
}

func (s *MailboxStep) refresh() tea.Cmd {
	provider := s.env.opts.Mailbox
	if provider == nil {
		return nil
	}
	s.checking = true
	ctx := s.env.ctx
	return func() tea.Msg {
		conn, err := provider.Status(ctx)
		return MailboxStatusMsg{Conn: conn, Err: err}
	}
}

func (s *MailboxStep) disconnect() tea.Cmd {
	provider := s.env.opts.Mailbox
	if provider == nil {
		return nil
	}
	s.checking = true
	ctx := s.env.ctx
	return func() tea.Msg {
		return MailboxDisconnectedMsg{Err: provider.Disconnect(ctx)}
	}
}

// Update handles messages for the mailbox step.
func (s *MailboxStep) Update(msg tea.Msg) tea.Cmd {
	d := s.env.draft

	switch msg := msg.(type) {
	case MailboxStatusMsg:
		s.checking = false
		if msg.Err != nil {
			s.err = msg.Err.Error()
			log.Warn("mailbox status: %v", msg.Err)
			return nil
		}
		s.err = ""
		d.Mailbox = msg.Conn
		return nil

	case MailboxDisconnectedMsg:
		s.checking = false
		if msg.Err != nil {
			return toastCmd(msg.Err.Error(), true)
		}
		d.Mailbox.Connected = false
		d.Mailbox.Address = ""
		return toastCmd("Mailbox disconnected", false)

	case tea.KeyPressMsg:
		if s.checking {
			return nil
		}
		switch msg.String() {
		case "c", "r":
			return s.refresh()
		case "d":
			if d.Mailbox.Connected {
				return s.disconnect()
			}
		case "enter":
			return nextStep
		}
	}
	return nil
}

// View renders the mailbox step.
func (s *MailboxStep) View() string {
	st := theme.Current().S()
	conn := s.env.draft.Mailbox

	var status string
	switch {
	case s.env.opts.Mailbox == nil:
		status = st.Error.Render("No mailbox provider configured")
	case s.checking:
		status = st.Muted.Render("Checking connection...")
	case conn.Connected && conn.Address != "":
		status = st.Success.Render("✓ Connected as " + conn.Address)
	case conn.Connected:
		status = st.Success.Render("✓ Connected")
	default:
		status = st.Error.Render("✗ Not connected")
	}

	rows := []string{
		st.Text.Render("Outreach emails are sent from your own mailbox."),
		"",
		status,
	}

	if !conn.Connected {
		rows = append(rows, "")
		if s.env.opts.ConnectURL != "" {
			rows = append(rows, st.Text.Render("Connect it in your browser:"), st.Selected.Render(s.env.opts.ConnectURL))
		}
		rows = append(rows, st.Muted.Render("Then press c to check again."))
	}

	if s.err != "" {
		rows = append(rows, "", st.Error.Render("✗ "+s.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
