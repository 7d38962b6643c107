package campaignwizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/glamour/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/tui/theme"
)

// ReviewStep names the campaign and summarizes the draft before it is
// created.
type ReviewStep struct {
	env *stepEnv

	name    textinput.Model
	summary viewport.Model

	width  int
	height int
}

// NewReviewStep creates the review step.
func NewReviewStep(env *stepEnv) *ReviewStep {
	ti := textinput.New()
	ti.Placeholder = "e.g. Backend roles in Berlin"
	ti.Prompt = ""
	ti.CharLimit = 120
	ti.SetWidth(modalContentWidth - 12)
	ti.SetStyles(inputStyles())

	vp := viewport.New(
		viewport.WithWidth(modalContentWidth),
		viewport.WithHeight(10),
	)

	return &ReviewStep{env: env, name: ti, summary: vp, width: modalContentWidth, height: 16}
}

// Init renders the summary and focuses the name input.
func (s *ReviewStep) Init() tea.Cmd {
	s.name.SetValue(s.env.draft.Name)
	s.name.CursorEnd()
	s.refreshSummary()
	return s.name.Focus()
}

func (s *ReviewStep) refreshSummary() {
	s.summary.SetContent(renderMarkdown(reviewMarkdown(s.env.draft), s.width))
	s.summary.GotoTop()
}

// SetSize updates the size of the step.
func (s *ReviewStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.name.SetWidth(width - 12)
	s.summary.SetWidth(width)
	// name row, blank line, estimate line
	s.summary.SetHeight(max(height-4, 4))
	s.refreshSummary()
}

// Hints returns the key hints for the step.
func (s *ReviewStep) Hints() []string {
	return []string{"type", "name", "pgup/pgdn", "scroll", "enter", "create"}
}

// Update handles messages for the review step.
func (s *ReviewStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			return nextStep
		case "pgup", "pgdown", "ctrl+u", "ctrl+d", "up", "down":
			var cmd tea.Cmd
			s.summary, cmd = s.summary.Update(msg)
			return cmd
		}
	}

	var cmd tea.Cmd
	s.name, cmd = s.name.Update(msg)
	s.env.draft.Name = s.name.Value()
	return cmd
}

// View renders the review step.
func (s *ReviewStep) View() string {
	st := theme.Current().S()
	label := st.Selected.Width(10).Render("Name")
	return lipgloss.JoinVertical(lipgloss.Left,
		label+" "+s.name.View(),
		"",
		s.summary.View(),
	)
}

// reviewMarkdown summarizes a draft as markdown.
func reviewMarkdown(d *campaign.Draft) string {
	var b strings.Builder
	t := d.Targeting

	list := func(values []string) string {
		if len(values) == 0 {
			return "_none_"
		}
		return strings.Join(values, ", ")
	}

	b.WriteString("## Targeting\n\n")
	fmt.Fprintf(&b, "- **Goal:** %s\n", d.Goal)
	fmt.Fprintf(&b, "- **Job titles:** %s\n", list(t.Titles.Values()))
	if t.ExpandTitles {
		b.WriteString("- **Similar titles:** included\n")
	}
	fmt.Fprintf(&b, "- **Locations:** %s\n", list(t.Locations.Values()))
	if t.Seniorities.Len() > 0 {
		fmt.Fprintf(&b, "- **Seniority:** %s\n", list(t.Seniorities.Values()))
	}
	if t.CompanySizes.Len() > 0 {
		fmt.Fprintf(&b, "- **Company size:** %s\n", list(t.CompanySizes.Values()))
	}
	if t.Industries.Len() > 0 {
		fmt.Fprintf(&b, "- **Industries:** %s\n", list(t.Industries.Values()))
	}
	if t.ExcludedCompanies.Len() > 0 {
		fmt.Fprintf(&b, "- **Excluded companies:** %s\n", list(t.ExcludedCompanies.Values()))
	}
	if t.PriorityCompanies.Len() > 0 {
		fmt.Fprintf(&b, "- **Priority companies:** %s\n", list(t.PriorityCompanies.Values()))
	}

	b.WriteString("\n## Mailbox\n\n")
	switch {
	case d.Mailbox.Connected && d.Mailbox.Address != "":
		fmt.Fprintf(&b, "Sending from `%s`\n", d.Mailbox.Address)
	case d.Mailbox.Connected:
		b.WriteString("Connected\n")
	default:
		b.WriteString("Not connected\n")
	}

	b.WriteString("\n## Messages\n\n")
	fmt.Fprintf(&b, "- **Mode:** %s\n", modeLabel(d.Mode()))
	fmt.Fprintf(&b, "- **Tone:** %s · **Length:** %s · **Language:** %s\n", d.Style.Tone, d.Style.Length, d.Style.Language)
	if d.Style.KeyPoints != "" {
		fmt.Fprintf(&b, "- **Key points:** %s\n", d.Style.KeyPoints)
	}

	switch d.Mode() {
	case campaign.ModeTemplate:
		if d.Template != nil {
			fmt.Fprintf(&b, "\n**Subject:** %s\n\n", d.Template.Subject)
			for _, line := range strings.Split(d.Template.Body, "\n") {
				fmt.Fprintf(&b, "> %s\n", line)
			}
		}
	case campaign.ModeABTest:
		if v := d.Variants; v != nil {
			fmt.Fprintf(&b, "\n%d hook(s) × %d body(ies) × %d CTA(s) = **%d combination(s)**\n",
				len(v.Filled(campaign.SectionHooks)),
				len(v.Filled(campaign.SectionBodies)),
				len(v.Filled(campaign.SectionCTAs)),
				v.Combinations(),
			)
		}
	case campaign.ModeAuto:
		b.WriteString("\nEach recipient gets a message written for them.\n")
	}

	b.WriteString("\n## Attachment\n\n")
	if d.Attachment != nil {
		fmt.Fprintf(&b, "%s (%s)\n", d.Attachment.DisplayName, d.Attachment.Origin)
	} else {
		b.WriteString("None\n")
	}

	return b.String()
}

// renderMarkdown renders markdown content with glamour for terminal display.
func renderMarkdown(content string, width int) string {
	// Cap width to 120 for readability
	if width > 120 {
		width = 120
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fallback to plain text
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	// Remove trailing newline that glamour adds
	return strings.TrimSuffix(rendered, "\n")
}
