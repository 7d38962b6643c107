package campaignwizard

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/tui/theme"
)

// VariantsStep edits the hook, body and CTA lists of an A/B campaign and
// previews combinations.
type VariantsStep struct {
	env *stepEnv

	section int // index into campaign.Sections
	entry   int

	editing bool
	editor  textarea.Model

	// slots with a generate request in flight
	generating map[campaign.SlotID]bool

	// preview selection per section
	preview [3]int
	rng     *rand.Rand

	width  int
	height int
}

// NewVariantsStep creates the variants step.
func NewVariantsStep(env *stepEnv) *VariantsStep {
	ta := textarea.New()
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetWidth(modalContentWidth - 4)
	ta.SetHeight(3)

	return &VariantsStep{
		env:        env,
		editor:     ta,
		generating: make(map[campaign.SlotID]bool),
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		width:      modalContentWidth,
	}
}

// Init resets the cursor into range.
func (s *VariantsStep) Init() tea.Cmd {
	s.editing = false
	s.editor.Blur()
	s.clampCursor()
	return nil
}

// SetSize updates the size of the step.
func (s *VariantsStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.editor.SetWidth(width - 4)
}

// Capturing reports whether an entry is being edited; esc then ends the
// edit instead of leaving the step.
func (s *VariantsStep) Capturing() bool {
	return s.editing
}

// Hints returns the key hints for the step.
func (s *VariantsStep) Hints() []string {
	if s.editing {
		return []string{"esc", "done"}
	}
	return []string{"↑↓", "move", "enter", "edit", "a", "add", "x", "remove", "g", "generate", "p", "preview", "r", "random"}
}

func (s *VariantsStep) sets() *campaign.VariantSets {
	return s.env.draft.Variants
}

func (s *VariantsStep) currentSection() campaign.Section {
	return campaign.Sections[s.section]
}

func (s *VariantsStep) clampCursor() {
	v := s.sets()
	if v == nil {
		s.section, s.entry = 0, 0
		return
	}
	if n := v.Len(s.currentSection()); s.entry >= n {
		s.entry = n - 1
	}
	if s.entry < 0 {
		s.entry = 0
	}
}

// move walks the cursor through all entries, section by section.
func (s *VariantsStep) move(dir int) {
	v := s.sets()
	s.entry += dir
	if s.entry < 0 {
		if s.section == 0 {
			s.entry = 0
			return
		}
		s.section--
		s.entry = v.Len(s.currentSection()) - 1
		return
	}
	if s.entry >= v.Len(s.currentSection()) {
		if s.section == len(campaign.Sections)-1 {
			s.entry = v.Len(s.currentSection()) - 1
			return
		}
		s.section++
		s.entry = 0
	}
}

// Update handles messages for the variants step.
func (s *VariantsStep) Update(msg tea.Msg) tea.Cmd {
	v := s.sets()

	if msg, ok := msg.(VariantGeneratedMsg); ok {
		return s.applyGenerated(msg)
	}
	if v == nil {
		return nil
	}

	key, isKey := msg.(tea.KeyPressMsg)
	if s.editing {
		if isKey && (key.String() == "esc" || key.String() == "ctrl+s") {
			s.editing = false
			s.editor.Blur()
			return nil
		}
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		if err := v.Update(s.currentSection(), s.entry, s.editor.Value()); err != nil {
			log.Warn("editing %s %d: %v", s.currentSection(), s.entry, err)
			s.editing = false
			s.editor.Blur()
			return tea.Batch(cmd, toastCmd("Edit not saved: "+err.Error(), true))
		}
		return cmd
	}
	if !isKey {
		return nil
	}

	sec := s.currentSection()
	switch key.String() {
	case "up", "k":
		s.move(-1)
	case "down", "j":
		s.move(1)
	case "tab":
		s.section = (s.section + 1) % len(campaign.Sections)
		s.clampCursor()
	case "shift+tab":
		s.section = (s.section + len(campaign.Sections) - 1) % len(campaign.Sections)
		s.clampCursor()
	case "enter", "e":
		return s.startEdit()
	case "a":
		if err := v.Add(sec); err != nil {
			return toastCmd(fmt.Sprintf("%s allows at most %d entries", sec.Label(), sec.Max()), true)
		}
		s.entry = v.Len(sec) - 1
		return s.startEdit()
	case "x", "delete":
		if err := v.Remove(sec, s.entry); err != nil {
			return toastCmd(fmt.Sprintf("Keep at least one %s", sec.Singular()), true)
		}
		s.clampCursor()
	case "g":
		return s.generate()
	case "p":
		s.preview[s.section] = s.entry
	case "r":
		h, b, c, ok := v.RandomCombination(s.rng)
		if !ok {
			return toastCmd("Fill every section to preview a combination", true)
		}
		s.preview = [3]int{h, b, c}
	}
	return nil
}

func (s *VariantsStep) startEdit() tea.Cmd {
	text, err := s.sets().Entry(s.currentSection(), s.entry)
	if err != nil {
		return nil
	}
	s.editing = true
	s.editor.SetValue(text)
	return s.editor.Focus()
}

// generate asks for a new variant for the entry under the cursor. The
// result is matched back by slot, so it lands on the same entry even if
// others were added or removed meanwhile.
func (s *VariantsStep) generate() tea.Cmd {
	gen := s.env.opts.Generator
	if gen == nil {
		return nil
	}
	d := s.env.draft
	sec := s.currentSection()
	slot, err := d.Variants.Slot(sec, s.entry)
	if err != nil || s.generating[slot] {
		return nil
	}

	req := campaign.VariantRequest{
		Kind:     sec,
		Tone:     d.Style.Tone,
		Language: d.Style.Language,
		Goal:     d.Goal,
		Existing: d.Variants.Others(sec, s.entry),
	}
	s.generating[slot] = true
	ctx := s.env.ctx
	return func() tea.Msg {
		text, err := gen.GenerateVariant(ctx, req)
		return VariantGeneratedMsg{Section: sec, Slot: slot, Text: text, Err: err}
	}
}

func (s *VariantsStep) applyGenerated(msg VariantGeneratedMsg) tea.Cmd {
	delete(s.generating, msg.Slot)
	v := s.sets()
	if v == nil {
		return nil
	}
	if msg.Err != nil {
		return toastCmd(fmt.Sprintf("Could not generate %s: %v", msg.Section.Singular(), msg.Err), true)
	}
	if !v.UpdateSlot(msg.Section, msg.Slot, msg.Text) {
		log.Debug("dropping generated %s for removed slot %d", msg.Section, msg.Slot)
		return nil
	}
	if s.editing && s.currentSection() == msg.Section {
		if slot, err := v.Slot(msg.Section, s.entry); err == nil && slot == msg.Slot {
			s.editor.SetValue(msg.Text)
		}
	}
	return nil
}

// previewIndices returns the preview selection, kept within range.
func (s *VariantsStep) previewIndices() [3]int {
	v := s.sets()
	var out [3]int
	for i, sec := range campaign.Sections {
		out[i] = min(max(s.preview[i], 0), v.Len(sec)-1)
	}
	return out
}

// View renders the variants step.
func (s *VariantsStep) View() string {
	st := theme.Current().S()
	v := s.sets()
	if v == nil {
		return st.Muted.Render("Choose the A/B test mode to edit variants.")
	}

	var rows []string
	for i, sec := range campaign.Sections {
		header := fmt.Sprintf("%s (%d/%d)", sec.Label(), v.Len(sec), sec.Max())
		if i == s.section {
			rows = append(rows, st.Selected.Render(header))
		} else {
			rows = append(rows, st.Label.Render(header))
		}

		for j, text := range v.Entries(sec) {
			focused := i == s.section && j == s.entry
			if focused && s.editing {
				rows = append(rows, st.PanelFocused.Render(s.editor.View()))
				continue
			}

			line := firstLine(text)
			if strings.TrimSpace(line) == "" {
				line = st.Muted.Render("(empty)")
			} else {
				line = highlightMergeFields(truncate(line, s.width-8))
			}
			if slot, err := v.Slot(sec, j); err == nil && s.generating[slot] {
				line += st.Muted.Render("  generating...")
			}
			rows = append(rows, cursorPrefix(focused)+fmt.Sprintf("%d. ", j+1)+line)
		}
		rows = append(rows, "")
	}

	rows = append(rows, s.renderPreview())
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *VariantsStep) renderPreview() string {
	st := theme.Current().S()
	v := s.sets()

	combos := v.Combinations()
	header := st.Label.Render("Preview") + st.Muted.Render(fmt.Sprintf("  %d combination(s)", combos))
	if combos == 0 {
		return header + "\n" + st.Muted.Render("Fill every section to see a message.")
	}

	idx := s.previewIndices()
	text, err := v.Preview(idx[0], idx[1], idx[2])
	if err != nil {
		return header
	}
	sel := st.Muted.Render(fmt.Sprintf("  hook %d · body %d · CTA %d", idx[0]+1, idx[1]+1, idx[2]+1))
	return header + sel + "\n" + st.Panel.Width(s.width-2).Render(highlightMergeFields(text))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-1 {
		r = r[:width-1]
	}
	return string(r) + "…"
}
