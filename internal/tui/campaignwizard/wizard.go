// Package campaignwizard is the interactive campaign configuration wizard.
// It owns a campaign.Draft and walks the user through the steps of
// campaign.Sequence, validating each before moving forward, until the
// assembled record is stored.
package campaignwizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/estimator"
	"github.com/mark3labs/campaignr/internal/logger"
	"github.com/mark3labs/campaignr/internal/tui/theme"
)

var log = logger.Named("wizard")

// ErrCancelled is returned by Run when the user leaves without saving.
var ErrCancelled = errors.New("wizard cancelled")

// Modal layout constants
const (
	modalWidth        = 78                                                       // Total modal width including border
	modalPadding      = 2                                                        // Horizontal padding on each side
	modalBorderWidth  = 1                                                        // Border width on each side
	modalContentWidth = modalWidth - (modalPadding * 2) - (modalBorderWidth * 2) // 72
)

// State is the lifecycle state of the wizard.
type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options injects configuration and collaborators. Places and Catalog are
// optional.
type Options struct {
	Mailbox   campaign.MailboxProvider
	Generator campaign.Generator
	Audience  campaign.AudienceService
	Store     campaign.RecordStore
	Catalog   campaign.AttachmentCatalog
	Places    campaign.PlaceSuggester

	EstimateDebounce time.Duration
	Language         campaign.Language
	// ConnectURL is where the user completes the mailbox OAuth flow.
	ConnectURL string
	Now        func() time.Time
}

// stepModel is one screen of the wizard. Init runs each time the step
// becomes current.
type stepModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Hints() []string
}

// capturer is implemented by steps that sometimes need esc for themselves.
type capturer interface {
	Capturing() bool
}

// stepEnv is what steps share with the wizard.
type stepEnv struct {
	ctx   context.Context
	draft *campaign.Draft
	opts  *Options
}

// WizardModel is the BubbleTea model of the campaign wizard. It is the
// only writer of the draft: async results come back as messages and are
// applied here.
type WizardModel struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options

	draft   *campaign.Draft
	seq     []campaign.Step
	step    int
	state   State
	savedID string

	steps      map[campaign.Step]stepModel
	targeting  *TargetingStep
	mailbox    *MailboxStep
	template   *TemplateStep
	variants   *VariantsStep
	attachment *AttachmentStep
	review     *ReviewStep

	estimator *estimator.Estimator
	toast     *Toast
	spinner   spinner.Model

	// Save error state
	saveError     string
	showSaveError bool

	// quit requested while a save was in flight
	quitAfterSave bool

	width  int
	height int
}

// New creates a wizard with an empty draft. Cancelling ctx aborts every
// request the wizard has in flight.
func New(ctx context.Context, opts Options) *WizardModel {
	ctx, cancel := context.WithCancel(ctx)
	if opts.Now == nil {
		opts.Now = time.Now
	}

	draft := campaign.NewDraft()
	if opts.Language != "" {
		draft.Style.Language = opts.Language
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))

	m := &WizardModel{
		ctx:       ctx,
		cancel:    cancel,
		opts:      opts,
		draft:     draft,
		seq:       campaign.Sequence(draft),
		estimator: estimator.New(ctx, opts.Audience, opts.EstimateDebounce),
		toast:     NewToast(),
		spinner:   s,
	}

	env := &stepEnv{ctx: ctx, draft: draft, opts: &m.opts}
	m.targeting = NewTargetingStep(env)
	m.mailbox = NewMailboxStep(env)
	m.template = NewTemplateStep(env)
	m.variants = NewVariantsStep(env)
	m.attachment = NewAttachmentStep(env)
	m.review = NewReviewStep(env)
	m.steps = map[campaign.Step]stepModel{
		campaign.StepTargeting:  m.targeting,
		campaign.StepMailbox:    m.mailbox,
		campaign.StepMode:       NewModeStep(env),
		campaign.StepTemplate:   m.template,
		campaign.StepVariants:   m.variants,
		campaign.StepAttachment: m.attachment,
		campaign.StepReview:     m.review,
	}
	return m
}

// Run shows the wizard full screen and returns the ID of the stored
// campaign, or ErrCancelled.
func Run(ctx context.Context, opts Options) (string, error) {
	m := New(ctx, opts)
	defer m.Close()

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("wizard failed: %w", err)
	}

	wizModel, ok := finalModel.(*WizardModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	if wizModel.state != StateCompleted {
		return "", ErrCancelled
	}
	return wizModel.savedID, nil
}

// Close stops background work. It is safe to call more than once.
func (m *WizardModel) Close() {
	m.estimator.Stop()
	m.cancel()
}

// Init initializes the wizard model.
func (m *WizardModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.currentStep().Init(),
		m.mailbox.refresh(),
		m.attachment.load(),
	)
}

// Update handles messages for the wizard.
func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateCompleted || m.state == StateCancelled {
		// Late results after the wizard ended are dropped.
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, s := range m.steps {
			s.SetSize(modalContentWidth, m.stepHeight())
		}
		return m, nil

	case nextStepMsg:
		return m, m.advance()

	case showToastMsg:
		if msg.isError {
			return m, m.toast.ShowError(msg.text)
		}
		return m, m.toast.Show(msg.text)

	case toastExpiredMsg:
		return m, m.toast.Update(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case CampaignSavedMsg:
		if m.state != StateSubmitting {
			return m, nil
		}
		log.Info("campaign %s stored", msg.ID)
		m.state = StateCompleted
		m.savedID = msg.ID
		m.draft = nil
		m.Close()
		return m, tea.Quit

	case SaveErrorMsg:
		if m.state != StateSubmitting {
			return m, nil
		}
		log.Error("storing campaign: %v", msg.Err)
		m.state = StateEditing
		if m.quitAfterSave {
			return m, m.cancelWizard()
		}
		m.saveError = msg.Err.Error()
		m.showSaveError = true
		return m, nil

	case RetrySaveMsg:
		m.showSaveError = false
		m.saveError = ""
		return m, m.submit()

	// Async results go to the step that asked for them, current or not.
	case MailboxStatusMsg, MailboxDisconnectedMsg:
		return m, m.mutate(m.mailbox, msg)
	case AttachmentsLoadedMsg:
		return m, m.mutate(m.attachment, msg)
	case TemplatesGeneratedMsg, TemplateEditedMsg:
		return m, m.mutate(m.template, msg)
	case VariantGeneratedMsg:
		return m, m.mutate(m.variants, msg)
	case placeQueryMsg, PlaceSuggestionsMsg:
		return m, m.mutate(m.targeting, msg)
	}

	if cmd := m.estimator.Update(msg); cmd != nil {
		return m, cmd
	}
	return m, m.mutate(m.currentStep(), msg)
}

func (m *WizardModel) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if m.state == StateSubmitting {
		// The store may already hold the record; exit once it answers.
		if key == "ctrl+c" {
			m.quitAfterSave = true
		}
		return nil
	}

	if key == "ctrl+c" {
		return m.cancelWizard()
	}

	// If save error modal is visible, handle Y/N/ESC
	if m.showSaveError {
		switch key {
		case "y", "Y":
			return func() tea.Msg { return RetrySaveMsg{} }
		case "n", "N", "esc":
			m.showSaveError = false
			m.saveError = ""
		}
		return nil
	}

	switch key {
	case "ctrl+n":
		return m.advance()
	case "esc":
		if c, ok := m.currentStep().(capturer); ok && c.Capturing() {
			break
		}
		return m.back()
	}

	return m.mutate(m.currentStep(), msg)
}

// mutate forwards msg to a step, then brings the sequence, the step
// pointer and the audience estimate in line with the draft.
func (m *WizardModel) mutate(s stepModel, msg tea.Msg) tea.Cmd {
	before := m.draft.Targeting.Criteria()
	cmd := s.Update(msg)
	return tea.Batch(cmd, m.sync(before))
}

func (m *WizardModel) sync(before campaign.Criteria) tea.Cmd {
	prev := m.seq
	m.seq = campaign.Sequence(m.draft)
	if len(prev) != len(m.seq) || campaign.IndexOf(m.seq, prev[m.step]) != m.step {
		m.step = campaign.ClampStep(prev, m.seq, m.step)
		log.Debug("sequence now %v, at %s", m.seq, m.currentStepID())
	}

	after := m.draft.Targeting.Criteria()
	if after.Equal(before) {
		return nil
	}
	return m.estimator.Schedule(after)
}

// advance validates the current step and moves forward, or submits on
// the last step.
func (m *WizardModel) advance() tea.Cmd {
	if m.state != StateEditing {
		return nil
	}

	current := m.currentStepID()
	if err := campaign.CheckStep(current, m.draft); err != nil {
		return m.toast.ShowError(err.Error())
	}
	if m.step == len(m.seq)-1 {
		return m.submit()
	}

	m.step++
	return m.currentStep().Init()
}

// back moves to the previous step; it is never gated. On the first step
// it cancels the wizard.
func (m *WizardModel) back() tea.Cmd {
	if m.step == 0 {
		return m.cancelWizard()
	}
	m.step--
	return m.currentStep().Init()
}

func (m *WizardModel) cancelWizard() tea.Cmd {
	log.Debug("wizard cancelled at %s", m.currentStepID())
	m.state = StateCancelled
	m.Close()
	return tea.Quit
}

// submit assembles the record and stores it. The draft is kept until the
// store confirms, so a failure can be retried.
func (m *WizardModel) submit() tea.Cmd {
	rec, err := campaign.Assemble(m.draft, m.opts.Now())
	if err != nil {
		var verr *campaign.ValidationError
		switch {
		case errors.Is(err, campaign.ErrNameRequired):
			return m.toast.ShowError("Give your campaign a name")
		case errors.As(err, &verr):
			if i := campaign.IndexOf(m.seq, verr.Step); i >= 0 {
				m.step = i
			}
			return tea.Batch(m.toast.ShowError(verr.Message), m.currentStep().Init())
		default:
			return m.toast.ShowError(err.Error())
		}
	}

	if m.opts.Store == nil {
		return m.toast.ShowError("No campaign store configured")
	}

	m.state = StateSubmitting
	store := m.opts.Store
	ctx := m.ctx
	log.Debug("submitting campaign %q (%s)", rec.Name, rec.Mode)
	return func() tea.Msg {
		id, err := store.CreateCampaignRecord(ctx, rec)
		if err != nil {
			return SaveErrorMsg{Err: err}
		}
		return CampaignSavedMsg{ID: id}
	}
}

func (m *WizardModel) currentStepID() campaign.Step {
	return m.seq[m.step]
}

func (m *WizardModel) currentStep() stepModel {
	return m.steps[m.currentStepID()]
}

// State returns the lifecycle state.
func (m *WizardModel) State() State {
	return m.state
}

// Step returns the current step.
func (m *WizardModel) Step() campaign.Step {
	return m.currentStepID()
}

// Sequence returns the steps of the current flow.
func (m *WizardModel) Sequence() []campaign.Step {
	return append([]campaign.Step(nil), m.seq...)
}

// Draft returns the draft being edited; nil once the campaign is stored.
func (m *WizardModel) Draft() *campaign.Draft {
	return m.draft
}

// SavedID returns the ID of the stored campaign once completed.
func (m *WizardModel) SavedID() string {
	return m.savedID
}

// View renders the wizard.
func (m *WizardModel) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 || m.state == StateCompleted || m.state == StateCancelled {
		// Not ready to render, or already done
		view.Content = lipgloss.NewLayer("")
		return view
	}

	content := m.renderModal()
	if toast := m.toast.View(m.width); toast != "" {
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", toast)
	}

	centered := lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	// Draw to canvas using ultraviolet
	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// stepHeight returns the rows available to a step inside the modal.
func (m *WizardModel) stepHeight() int {
	height := m.height - 4 // Terminal margin
	if height > 44 {
		height = 44
	}
	// Modal chrome: padding, border, title, breadcrumb, buttons, hints
	height -= 12
	if height < 8 {
		height = 8
	}
	return height
}

func (m *WizardModel) renderModal() string {
	t := theme.Current()
	s := t.S()

	if m.showSaveError {
		return m.renderSaveErrorModal()
	}

	if m.state == StateSubmitting {
		text := "Saving campaign..."
		if m.quitAfterSave {
			text = "Saving campaign, exiting once it is stored..."
		}
		return s.Modal.Width(modalWidth).Render(
			m.spinner.View() + " " + s.Text.Render(text),
		)
	}

	title := s.Title.MarginBottom(1).Render(fmt.Sprintf(
		"New Campaign · Step %d/%d: %s", m.step+1, len(m.seq), m.currentStepID().Title(),
	))

	parts := []string{title, m.renderBreadcrumb(), "", m.currentStep().View()}

	if id := m.currentStepID(); id == campaign.StepTargeting || id == campaign.StepReview {
		parts = append(parts, "", m.renderEstimate())
	}

	last := m.step == len(m.seq)-1
	bar := NewButtonBar(navButtons(m.step == 0, last, campaign.CanAdvance(m.currentStepID(), m.draft)), modalContentWidth)
	parts = append(parts, "", bar.Render())

	hints := append(m.currentStep().Hints(), "ctrl+n", "next", "esc", "back", "ctrl+c", "quit")
	if last {
		hints[len(hints)-5] = "create"
	}
	parts = append(parts, "", renderHintBar(hints...))

	return s.Modal.
		Width(modalWidth).
		BorderForeground(lipgloss.Color(t.BorderDefault)).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderBreadcrumb lists the steps of the flow, marking the current one.
// While no mode is chosen the flow ends at the mode step.
func (m *WizardModel) renderBreadcrumb() string {
	s := theme.Current().S()
	items := make([]string, len(m.seq))
	for i, step := range m.seq {
		switch {
		case i == m.step:
			items[i] = s.Selected.Render(step.Title())
		case i < m.step:
			items[i] = s.Text.Render(step.Title())
		default:
			items[i] = s.Muted.Render(step.Title())
		}
	}
	crumb := strings.Join(items, s.Muted.Render(" › "))
	if m.draft.Mode() == campaign.ModeUnset {
		crumb += s.Muted.Render(" › ...")
	}
	return crumb
}

func (m *WizardModel) renderEstimate() string {
	s := theme.Current().S()
	line := s.Label.Render("Audience: ")
	if m.estimator.Loading() {
		line += m.spinner.View() + " "
	}
	line += s.Text.Render(m.estimator.String())
	if m.estimator.Err() != nil {
		line += s.Muted.Render(" (last update failed)")
	}
	return line
}

// renderSaveErrorModal renders an error modal for save failures with retry/cancel options.
func (m *WizardModel) renderSaveErrorModal() string {
	t := theme.Current()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Error)).
		MarginBottom(1)
	titleText := titleStyle.Render("⚠ Save Failed")

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1)
	messageText := messageStyle.Render(fmt.Sprintf("Failed to save campaign: %s", m.saveError))

	buttonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted))
	buttons := buttonStyle.Render("Press Y to retry, N or ESC to cancel")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleText,
		messageText,
		"",
		buttons,
	)

	modalStyle := lipgloss.NewStyle().
		Width(60).
		Padding(2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Error))

	return modalStyle.Render(content)
}
