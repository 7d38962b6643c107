package campaignwizard

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/tui/theme"
)

// placeDebounce is the quiet interval before location suggestions are
// requested.
const placeDebounce = 250 * time.Millisecond

type targetingField int

const (
	fieldGoal targetingField = iota
	fieldTitles
	fieldLocations
	fieldSeniorities
	fieldCompanySizes
	fieldIndustries
	fieldExcluded
	fieldPriority
	fieldExpand
	fieldCount
)

// setField describes a free-text set input.
type setField struct {
	label string
	input textinput.Model
	set   func(d *campaign.Draft) *campaign.StringSet
}

// TargetingStep edits the goal and who the campaign reaches.
type TargetingStep struct {
	env   *stepEnv
	focus targetingField

	inputs map[targetingField]*setField

	// option cursors for the multi-select rows
	seniorityCursor int
	sizeCursor      int

	placeSeq    uint64
	suggestions []string

	width  int
	height int
}

// NewTargetingStep creates the targeting step.
func NewTargetingStep(env *stepEnv) *TargetingStep {
	newInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = "+ "
		ti.CharLimit = 200
		ti.SetWidth(50)
		ti.SetStyles(inputStyles())
		return ti
	}

	t := &TargetingStep{
		env:   env,
		width: modalContentWidth,
		inputs: map[targetingField]*setField{
			fieldTitles: {
				label: "Job titles",
				input: newInput("e.g. Backend Engineer, SRE"),
				set:   func(d *campaign.Draft) *campaign.StringSet { return &d.Targeting.Titles },
			},
			fieldLocations: {
				label: "Locations",
				input: newInput("e.g. Paris, Remote"),
				set:   func(d *campaign.Draft) *campaign.StringSet { return &d.Targeting.Locations },
			},
			fieldIndustries: {
				label: "Industries",
				input: newInput("optional"),
				set:   func(d *campaign.Draft) *campaign.StringSet { return &d.Targeting.Industries },
			},
			fieldExcluded: {
				label: "Excluded companies",
				input: newInput("optional"),
				set:   func(d *campaign.Draft) *campaign.StringSet { return &d.Targeting.ExcludedCompanies },
			},
			fieldPriority: {
				label: "Priority companies",
				input: newInput("optional"),
				set:   func(d *campaign.Draft) *campaign.StringSet { return &d.Targeting.PriorityCompanies },
			},
		},
	}
	return t
}

// inputStyles returns the textinput styles shared by the wizard steps.
func inputStyles() textinput.Styles {
	return textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086")),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("#b4befe")),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70")),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086")),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color("#cba6f7"),
			Shape: tea.CursorBar,
			Blink: true,
		},
	}
}

// Init focuses the current field.
func (t *TargetingStep) Init() tea.Cmd {
	return t.setFocus(t.focus)
}

// SetSize updates the size of the step.
func (t *TargetingStep) SetSize(width, height int) {
	t.width = width
	t.height = height
	for _, f := range t.inputs {
		f.input.SetWidth(width - 24)
	}
}

// Hints returns the key hints for the focused field.
func (t *TargetingStep) Hints() []string {
	switch t.focus {
	case fieldGoal:
		return []string{"↑↓", "field", "←→", "goal"}
	case fieldSeniorities, fieldCompanySizes:
		return []string{"↑↓", "field", "←→", "option", "space", "toggle"}
	case fieldExpand:
		return []string{"↑↓", "field", "space", "toggle"}
	case fieldLocations:
		if len(t.suggestions) > 0 {
			return []string{"↑↓", "field", "enter", "add", "tab", "complete"}
		}
	}
	return []string{"↑↓", "field", "enter", "add", "⌫", "remove last"}
}

func (t *TargetingStep) setFocus(f targetingField) tea.Cmd {
	t.focus = f
	var cmd tea.Cmd
	for field, in := range t.inputs {
		if field == f {
			cmd = in.input.Focus()
		} else {
			in.input.Blur()
		}
	}
	if f != fieldLocations {
		t.suggestions = nil
	}
	return cmd
}

// Update handles messages for the targeting step.
func (t *TargetingStep) Update(msg tea.Msg) tea.Cmd {
	d := t.env.draft

	switch msg := msg.(type) {
	case placeQueryMsg:
		if msg.seq != t.placeSeq || t.env.opts.Places == nil {
			return nil
		}
		return t.fetchPlaces(msg.seq, msg.query)

	case PlaceSuggestionsMsg:
		if msg.seq != t.placeSeq {
			return nil
		}
		if msg.Err != nil {
			log.Warn("place suggestions: %v", msg.Err)
			return nil
		}
		t.suggestions = msg.Suggestions
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "shift+tab":
			if t.focus > 0 {
				return t.setFocus(t.focus - 1)
			}
			return nil
		case "down", "tab":
			if msg.String() == "tab" && t.focus == fieldLocations && len(t.suggestions) > 0 {
				in := t.inputs[fieldLocations]
				in.input.SetValue(t.suggestions[0])
				in.input.CursorEnd()
				t.suggestions = nil
				return nil
			}
			if t.focus < fieldCount-1 {
				return t.setFocus(t.focus + 1)
			}
			return nil
		}

		switch t.focus {
		case fieldGoal:
			switch msg.String() {
			case "left", "h":
				d.Goal = cycle(campaign.Goals, d.Goal, -1)
			case "right", "l", "space", " ":
				d.Goal = cycle(campaign.Goals, d.Goal, 1)
			}
			return nil

		case fieldSeniorities:
			t.seniorityCursor = t.toggleRow(msg, campaign.Seniorities, t.seniorityCursor, &d.Targeting.Seniorities)
			return nil

		case fieldCompanySizes:
			t.sizeCursor = t.toggleRow(msg, campaign.CompanySizes, t.sizeCursor, &d.Targeting.CompanySizes)
			return nil

		case fieldExpand:
			switch msg.String() {
			case "space", " ", "enter", "left", "right":
				d.Targeting.ExpandTitles = !d.Targeting.ExpandTitles
			}
			return nil
		}

		in := t.inputs[t.focus]
		switch msg.String() {
		case "enter":
			set := in.set(d)
			for _, v := range campaign.ParseList(in.input.Value()) {
				set.Add(v)
			}
			in.input.Reset()
			t.suggestions = nil
			return nil
		case "backspace":
			if in.input.Value() == "" {
				set := in.set(d)
				if values := set.Values(); len(values) > 0 {
					set.Remove(values[len(values)-1])
				}
				return nil
			}
		}

		before := in.input.Value()
		var cmd tea.Cmd
		in.input, cmd = in.input.Update(msg)
		if t.focus == fieldLocations && in.input.Value() != before {
			return tea.Batch(cmd, t.schedulePlaces(in.input.Value()))
		}
		return cmd
	}

	if in, ok := t.inputs[t.focus]; ok {
		var cmd tea.Cmd
		in.input, cmd = in.input.Update(msg)
		return cmd
	}
	return nil
}

// toggleRow moves the option cursor or toggles the option under it.
func (t *TargetingStep) toggleRow(msg tea.KeyPressMsg, options []string, cursor int, set *campaign.StringSet) int {
	switch msg.String() {
	case "left", "h":
		if cursor > 0 {
			cursor--
		}
	case "right", "l":
		if cursor < len(options)-1 {
			cursor++
		}
	case "space", " ", "enter":
		opt := options[cursor]
		if !set.Remove(opt) {
			set.Add(opt)
		}
	}
	return cursor
}

// schedulePlaces queues a suggestion lookup once typing pauses.
func (t *TargetingStep) schedulePlaces(query string) tea.Cmd {
	t.placeSeq++
	t.suggestions = nil
	if t.env.opts.Places == nil || strings.TrimSpace(query) == "" {
		return nil
	}
	seq := t.placeSeq
	return tea.Tick(placeDebounce, func(time.Time) tea.Msg {
		return placeQueryMsg{seq: seq, query: query}
	})
}

func (t *TargetingStep) fetchPlaces(seq uint64, query string) tea.Cmd {
	places := t.env.opts.Places
	ctx := t.env.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		suggestions, err := places.Suggest(ctx, query)
		return PlaceSuggestionsMsg{seq: seq, Suggestions: suggestions, Err: err}
	}
}

// View renders the targeting step.
func (t *TargetingStep) View() string {
	s := theme.Current().S()
	d := t.env.draft

	label := func(f targetingField, text string) string {
		style := s.Label
		if t.focus == f {
			style = s.Selected
		}
		return cursorPrefix(t.focus == f) + style.Width(20).Render(text)
	}

	var rows []string

	goals := make([]string, len(campaign.Goals))
	for i, g := range campaign.Goals {
		goals[i] = radio(string(g), d.Goal == g, t.focus == fieldGoal && d.Goal == g)
	}
	rows = append(rows, label(fieldGoal, "Goal")+strings.Join(goals, "  "))

	for _, f := range []targetingField{fieldTitles, fieldLocations} {
		rows = append(rows, t.renderSetField(f, label))
		if f == fieldLocations && t.focus == fieldLocations && len(t.suggestions) > 0 {
			shown := t.suggestions
			if len(shown) > 4 {
				shown = shown[:4]
			}
			rows = append(rows, strings.Repeat(" ", 22)+s.Muted.Render("↳ "+strings.Join(shown, " · ")))
		}
	}

	rows = append(rows, label(fieldSeniorities, "Seniority")+
		t.renderOptions(campaign.Seniorities, t.seniorityCursor, d.Targeting.Seniorities, t.focus == fieldSeniorities))
	rows = append(rows, label(fieldCompanySizes, "Company size")+
		t.renderOptions(campaign.CompanySizes, t.sizeCursor, d.Targeting.CompanySizes, t.focus == fieldCompanySizes))

	for _, f := range []targetingField{fieldIndustries, fieldExcluded, fieldPriority} {
		rows = append(rows, t.renderSetField(f, label))
	}

	rows = append(rows, label(fieldExpand, "Similar titles")+
		checkbox("include related job titles", d.Targeting.ExpandTitles, t.focus == fieldExpand))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (t *TargetingStep) renderSetField(f targetingField, label func(targetingField, string) string) string {
	in := t.inputs[f]
	line := label(f, in.label) + chips(in.set(t.env.draft).Values())
	if t.focus != f {
		return line
	}
	return line + "\n" + strings.Repeat(" ", 22) + in.input.View()
}

// renderOptions shows the selected options, or all of them with a cursor
// while the row is focused.
func (t *TargetingStep) renderOptions(options []string, cursor int, set campaign.StringSet, focused bool) string {
	if !focused {
		return chips(set.Values())
	}
	parts := make([]string, len(options))
	for i, opt := range options {
		parts[i] = checkbox(opt, set.Has(opt), i == cursor)
	}
	return lipgloss.NewStyle().Width(t.width - 22).Render(strings.Join(parts, " "))
}

// cycle returns the option dir steps from current, wrapping around. An
// unset current selects the first option.
func cycle[T comparable](options []T, current T, dir int) T {
	for i, opt := range options {
		if opt == current {
			return options[(i+dir+len(options))%len(options)]
		}
	}
	return options[0]
}
