package campaign

import (
	"fmt"
	"strings"
)

// CheckStep returns a *ValidationError if the draft does not allow leaving
// step going forward. Going back is never checked.
func CheckStep(step Step, d *Draft) error {
	fail := func(format string, args ...any) error {
		return &ValidationError{Step: step, Message: fmt.Sprintf(format, args...)}
	}

	switch step {
	case StepTargeting:
		if d.Goal == GoalUnset {
			return fail("Choose an outreach goal")
		}
		if d.Targeting.Titles.Len() == 0 {
			return fail("Add at least one job title")
		}
		if d.Targeting.Locations.Len() == 0 {
			return fail("Add at least one location")
		}
	case StepMailbox:
		if !d.Mailbox.Connected {
			return fail("Connect your mailbox to continue")
		}
	case StepMode:
		if d.Mode() == ModeUnset {
			return fail("Choose how messages are generated")
		}
	case StepTemplate:
		if d.Template == nil || strings.TrimSpace(d.Template.Subject) == "" || strings.TrimSpace(d.Template.Body) == "" {
			return fail("Template subject and body are required")
		}
	case StepVariants:
		if d.Variants == nil {
			return fail("Add at least one variant to each section")
		}
		for _, sec := range Sections {
			if len(d.Variants.Filled(sec)) == 0 {
				return fail("Add at least one %s variant", sec.Singular())
			}
		}
	case StepAttachment, StepReview:
		// optional / terminal
	}
	return nil
}

// CanAdvance reports whether the draft allows leaving step going forward.
func CanAdvance(step Step, d *Draft) bool {
	return CheckStep(step, d) == nil
}

// CheckSequence validates every step of the draft's current sequence and
// returns the first failure.
func CheckSequence(d *Draft) error {
	for _, step := range Sequence(d) {
		if err := CheckStep(step, d); err != nil {
			return err
		}
	}
	return nil
}
