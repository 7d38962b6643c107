package campaign

// Step identifies one screen of the wizard.
type Step string

const (
	StepTargeting  Step = "targeting"
	StepMailbox    Step = "mailbox"
	StepMode       Step = "mode"
	StepTemplate   Step = "template"
	StepVariants   Step = "variants"
	StepAttachment Step = "attachment"
	StepReview     Step = "review"
)

// Title returns the heading shown for the step.
func (s Step) Title() string {
	switch s {
	case StepTargeting:
		return "Targeting"
	case StepMailbox:
		return "Mailbox"
	case StepMode:
		return "Generation Mode"
	case StepTemplate:
		return "Message Template"
	case StepVariants:
		return "A/B Variants"
	case StepAttachment:
		return "Attachment"
	case StepReview:
		return "Review"
	default:
		return string(s)
	}
}

// Sequence returns the steps of the flow for the draft's current mode.
// The first three steps are fixed; the tail depends on the mode and is
// absent while no mode is chosen.
func Sequence(d *Draft) []Step {
	seq := []Step{StepTargeting, StepMailbox, StepMode}
	switch d.Mode() {
	case ModeTemplate:
		seq = append(seq, StepTemplate, StepAttachment, StepReview)
	case ModeABTest:
		seq = append(seq, StepVariants, StepAttachment, StepReview)
	case ModeAuto:
		seq = append(seq, StepAttachment, StepReview)
	}
	return seq
}

// IndexOf returns the position of step in seq, or -1.
func IndexOf(seq []Step, step Step) int {
	for i, s := range seq {
		if s == step {
			return i
		}
	}
	return -1
}

// ClampStep maps the pointer current, an index into prev, onto next. If the
// step it pointed at survived, its new index is returned; otherwise the
// nearest earlier step of prev that still exists in next. The result is
// always a valid index of next (next is never empty).
func ClampStep(prev, next []Step, current int) int {
	if current >= len(prev) {
		current = len(prev) - 1
	}
	for i := current; i >= 0; i-- {
		if idx := IndexOf(next, prev[i]); idx >= 0 {
			return idx
		}
	}
	return 0
}
