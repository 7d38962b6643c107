package campaign

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func readyDraft(mode GenerationMode) *Draft {
	d := NewDraft()
	d.Name = "  Spring applications  "
	d.Goal = GoalJob
	d.Targeting.Titles.Add("Software Engineer")
	d.Targeting.Locations.Add("Remote")
	d.Mailbox = MailboxConnection{Connected: true, Address: "me@example.com"}
	d.SetMode(mode)
	switch mode {
	case ModeTemplate:
		d.Template.Subject = "Hello {{firstName}}"
		d.Template.Body = "I am applying for..."
	case ModeABTest:
		_ = d.Variants.Update(SectionHooks, 0, "Hi {{firstName}}")
		_ = d.Variants.Add(SectionHooks)
		_ = d.Variants.Update(SectionBodies, 0, "Body")
		_ = d.Variants.Update(SectionCTAs, 0, "CTA")
	}
	return d
}

func recordKeys(t *testing.T, rec *Record) map[string]json.RawMessage {
	t.Helper()
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &keys))
	return keys
}

func TestAssembleRequiresName(t *testing.T) {
	d := readyDraft(ModeAuto)
	d.Name = "   "
	_, err := Assemble(d, fixedNow)
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestAssembleRequiresMode(t *testing.T) {
	d := readyDraft(ModeUnset)
	_, err := Assemble(d, fixedNow)
	assert.ErrorIs(t, err, ErrModeUnset)
}

func TestAssembleRejectsInvalidStep(t *testing.T) {
	d := readyDraft(ModeTemplate)
	d.Template.Body = ""
	_, err := Assemble(d, fixedNow)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, StepTemplate, verr.Step)
}

func TestAssembleTemplateMode(t *testing.T) {
	rec, err := Assemble(readyDraft(ModeTemplate), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Spring applications", rec.Name)
	assert.Equal(t, "spring-applications", rec.Slug)
	assert.Equal(t, ModeTemplate, rec.Mode)
	require.NotNil(t, rec.Template)
	assert.Equal(t, "Hello {{firstName}}", rec.Template.Subject)
	assert.Nil(t, rec.Variants)
	assert.Equal(t, Stats{}, rec.Stats)
	assert.Equal(t, fixedNow, rec.CreatedAt)

	keys := recordKeys(t, rec)
	assert.Contains(t, keys, "template")
	assert.NotContains(t, keys, "variantSets")
	assert.NotContains(t, keys, "attachment")
}

func TestAssembleABTestFiltersBlanks(t *testing.T) {
	rec, err := Assemble(readyDraft(ModeABTest), fixedNow)
	require.NoError(t, err)

	require.NotNil(t, rec.Variants)
	assert.Equal(t, []string{"Hi {{firstName}}"}, rec.Variants.Hooks)
	assert.Equal(t, []string{"Body"}, rec.Variants.Bodies)
	assert.Equal(t, []string{"CTA"}, rec.Variants.CTAs)
	assert.Nil(t, rec.Template)

	keys := recordKeys(t, rec)
	assert.Contains(t, keys, "variantSets")
	assert.NotContains(t, keys, "template")
}

func TestAssembleAutoModeScenario(t *testing.T) {
	d := readyDraft(ModeAuto)

	assert.Equal(t, []Step{StepTargeting, StepMailbox, StepMode, StepAttachment, StepReview}, Sequence(d))
	for _, step := range Sequence(d) {
		assert.True(t, CanAdvance(step, d), "step %s", step)
	}

	rec, err := Assemble(d, fixedNow)
	require.NoError(t, err)
	keys := recordKeys(t, rec)
	assert.NotContains(t, keys, "template")
	assert.NotContains(t, keys, "variantSets")
	assert.Equal(t, []string{"Software Engineer"}, rec.Targeting.Titles)
	assert.Equal(t, []string{"Remote"}, rec.Targeting.Locations)
}

func TestAssembleAttachment(t *testing.T) {
	d := readyDraft(ModeAuto)
	d.Attachment = &Attachment{ID: "cv-1", DisplayName: "CV.pdf", SourceURL: "https://files.example.com/cv.pdf", Origin: OriginProfile}

	rec, err := Assemble(d, fixedNow)
	require.NoError(t, err)
	require.NotNil(t, rec.Attachment)
	assert.Equal(t, "cv-1", rec.Attachment.ID)

	d.Attachment.DisplayName = "changed"
	assert.Equal(t, "CV.pdf", rec.Attachment.DisplayName, "record must not alias the draft")
}

func TestAssembleAfterModeSwitchDropsTemplate(t *testing.T) {
	d := readyDraft(ModeTemplate)
	d.SetMode(ModeABTest)
	require.NoError(t, d.Variants.Update(SectionHooks, 0, "hook"))
	require.NoError(t, d.Variants.Update(SectionBodies, 0, "body"))
	require.NoError(t, d.Variants.Update(SectionCTAs, 0, "cta"))

	rec, err := Assemble(d, fixedNow)
	require.NoError(t, err)
	assert.Nil(t, rec.Template)
	assert.NotContains(t, recordKeys(t, rec), "template")
}

func TestAssembleLeavesDraftIntact(t *testing.T) {
	d := readyDraft(ModeABTest)
	before := d.Variants.Entries(SectionHooks)

	_, err := Assemble(d, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, before, d.Variants.Entries(SectionHooks))
	assert.Equal(t, "  Spring applications  ", d.Name)
}

func TestVariantBlockPreview(t *testing.T) {
	b := &VariantBlock{Hooks: []string{"h1", "h2"}, Bodies: []string{"b1"}, CTAs: []string{"c1"}}
	got, err := b.Preview(1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "h2\n\nb1\n\nc1", got)

	_, err = b.Preview(0, 1, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}
