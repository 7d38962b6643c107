package campaign

import "errors"

var (
	// ErrNameRequired is returned by Assemble when the campaign name is blank.
	ErrNameRequired = errors.New("campaign name is required")

	// ErrModeUnset is returned when an operation needs a generation mode.
	ErrModeUnset = errors.New("generation mode is not set")

	// ErrSectionFull is returned by VariantSets.Add at the section maximum.
	ErrSectionFull = errors.New("variant section is full")

	// ErrSectionMinimum is returned by VariantSets.Remove on the last entry.
	ErrSectionMinimum = errors.New("variant section needs at least one entry")

	// ErrIndexOutOfRange is returned for a variant index outside its section.
	ErrIndexOutOfRange = errors.New("variant index out of range")

	// ErrUnknownSection is returned for a section that does not exist.
	ErrUnknownSection = errors.New("unknown variant section")
)

// ValidationError explains why a step cannot be left going forward.
// Message is shown to the user as is.
type ValidationError struct {
	Step    Step
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
