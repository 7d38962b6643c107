package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func draftWithMode(mode GenerationMode) *Draft {
	d := NewDraft()
	d.SetMode(mode)
	return d
}

func TestSequenceAlwaysStartsWithFixedSteps(t *testing.T) {
	prefix := []Step{StepTargeting, StepMailbox, StepMode}
	for _, mode := range []GenerationMode{ModeUnset, ModeTemplate, ModeABTest, ModeAuto} {
		d := draftWithMode(mode)
		d.Name = "anything"
		d.Goal = GoalNetworking
		d.Mailbox.Connected = true
		seq := Sequence(d)
		assert.Equal(t, prefix, seq[:3], "mode %q", mode)
	}
}

func TestSequenceByMode(t *testing.T) {
	tests := []struct {
		mode GenerationMode
		want []Step
	}{
		{ModeUnset, []Step{StepTargeting, StepMailbox, StepMode}},
		{ModeTemplate, []Step{StepTargeting, StepMailbox, StepMode, StepTemplate, StepAttachment, StepReview}},
		{ModeABTest, []Step{StepTargeting, StepMailbox, StepMode, StepVariants, StepAttachment, StepReview}},
		{ModeAuto, []Step{StepTargeting, StepMailbox, StepMode, StepAttachment, StepReview}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, Sequence(draftWithMode(tt.mode)))
		})
	}
}

func TestSequenceRederivedAfterModeChange(t *testing.T) {
	d := draftWithMode(ModeTemplate)
	for _, mode := range []GenerationMode{ModeABTest, ModeAuto, ModeTemplate} {
		d.SetMode(mode)
		seq := Sequence(d)
		hasTemplate := IndexOf(seq, StepTemplate) >= 0
		hasVariants := IndexOf(seq, StepVariants) >= 0
		assert.False(t, hasTemplate && hasVariants, "mode %q", mode)
		assert.Equal(t, mode == ModeTemplate, hasTemplate)
		assert.Equal(t, mode == ModeABTest, hasVariants)
	}
}

func TestClampStep(t *testing.T) {
	template := Sequence(draftWithMode(ModeTemplate))
	abtest := Sequence(draftWithMode(ModeABTest))
	auto := Sequence(draftWithMode(ModeAuto))
	unset := Sequence(draftWithMode(ModeUnset))

	tests := []struct {
		name    string
		prev    []Step
		next    []Step
		current int
		want    Step
	}{
		{"surviving step keeps position", template, abtest, 2, StepMode},
		{"attachment survives a mode swap", template, abtest, 4, StepAttachment},
		{"removed template falls back to mode", template, abtest, 3, StepMode},
		{"removed variants falls back to mode", abtest, auto, 3, StepMode},
		{"review moves to shorter tail", template, auto, 5, StepReview},
		{"mode unset strands nothing", template, unset, 5, StepMode},
		{"out of range pointer clamps", auto, auto, 99, StepReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := ClampStep(tt.prev, tt.next, tt.current)
			if assert.True(t, idx >= 0 && idx < len(tt.next)) {
				assert.Equal(t, tt.want, tt.next[idx])
			}
		})
	}
}

func TestStepTitle(t *testing.T) {
	assert.Equal(t, "A/B Variants", StepVariants.Title())
	assert.Equal(t, "custom", Step("custom").Title())
}
