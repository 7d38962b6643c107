// Package campaign holds the control and data model of the campaign
// configuration wizard: the draft, the step sequencer and validator, the
// A/B variant editor and the submission assembler.
package campaign

import (
	"fmt"
	"strings"
)

// Goal is the outreach goal of a campaign.
type Goal string

const (
	GoalUnset      Goal = ""
	GoalJob        Goal = "job"
	GoalInternship Goal = "internship"
	GoalNetworking Goal = "networking"
)

// Goals lists the selectable goals in display order.
var Goals = []Goal{GoalJob, GoalInternship, GoalNetworking}

// ParseGoal parses a goal name.
func ParseGoal(s string) (Goal, error) {
	for _, g := range Goals {
		if strings.EqualFold(s, string(g)) {
			return g, nil
		}
	}
	return GoalUnset, fmt.Errorf("invalid goal: %q (must be job, internship, or networking)", s)
}

// Tone is the voice used when writing outreach messages.
type Tone string

const (
	ToneCasual       Tone = "casual"
	ToneProfessional Tone = "professional"
	ToneBold         Tone = "bold"
)

// Tones lists the selectable tones in display order.
var Tones = []Tone{ToneCasual, ToneProfessional, ToneBold}

// Length is the target length of generated messages.
type Length string

const (
	LengthShort    Length = "short"
	LengthMedium   Length = "medium"
	LengthDetailed Length = "detailed"
)

// Lengths lists the selectable lengths in display order.
var Lengths = []Length{LengthShort, LengthMedium, LengthDetailed}

// Language is the language messages are written in.
type Language string

const (
	LanguageEN Language = "en"
	LanguageFR Language = "fr"
)

// Languages lists the supported languages.
var Languages = []Language{LanguageEN, LanguageFR}

// ParseLanguage parses a language code.
func ParseLanguage(s string) (Language, error) {
	for _, l := range Languages {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid language: %q (must be en or fr)", s)
}

// GenerationMode decides how message content is produced and which steps
// follow the mode step.
type GenerationMode string

const (
	ModeUnset    GenerationMode = ""
	ModeTemplate GenerationMode = "template"
	ModeABTest   GenerationMode = "abtest"
	ModeAuto     GenerationMode = "auto"
)

// Modes lists the selectable generation modes in display order.
var Modes = []GenerationMode{ModeTemplate, ModeABTest, ModeAuto}

// ParseMode parses a generation mode name.
func ParseMode(s string) (GenerationMode, error) {
	for _, m := range Modes {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return ModeUnset, fmt.Errorf("invalid generation mode: %q (must be template, abtest, or auto)", s)
}

// AttachmentOrigin tells where an attachment came from.
type AttachmentOrigin string

const (
	OriginProfile AttachmentOrigin = "profile"
	OriginBuilder AttachmentOrigin = "builder"
	OriginUpload  AttachmentOrigin = "upload"
)

// Seniority levels accepted in targeting.
var Seniorities = []string{"entry", "junior", "mid", "senior", "lead", "manager", "director", "vp", "cxo"}

// Company size buckets accepted in targeting.
var CompanySizes = []string{"1-10", "11-50", "51-200", "201-500", "501-1000", "1001-5000", "5000+"}

// StringSet is an insertion-ordered set of trimmed, non-blank strings.
// Membership is case-insensitive; the first spelling added is kept.
type StringSet struct {
	items []string
}

// NewStringSet returns a set holding values, deduplicated.
func NewStringSet(values ...string) StringSet {
	var s StringSet
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v. Returns false if v is blank or already present.
func (s *StringSet) Add(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" || s.Has(v) {
		return false
	}
	s.items = append(s.items, v)
	return true
}

// Remove deletes v. Returns false if v was not present.
func (s *StringSet) Remove(v string) bool {
	v = strings.TrimSpace(v)
	for i, item := range s.items {
		if strings.EqualFold(item, v) {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether v is a member.
func (s StringSet) Has(v string) bool {
	v = strings.TrimSpace(v)
	for _, item := range s.items {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (s StringSet) Len() int {
	return len(s.items)
}

// Values returns a copy of the members in insertion order.
func (s StringSet) Values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Replace swaps the members for values, deduplicated.
func (s *StringSet) Replace(values []string) {
	*s = NewStringSet(values...)
}

// ParseList splits a comma separated list into a deduplicated slice.
func ParseList(input string) []string {
	return NewStringSet(strings.Split(input, ",")...).Values()
}

// Targeting describes who the campaign reaches.
type Targeting struct {
	Titles            StringSet
	Locations         StringSet
	Seniorities       StringSet
	CompanySizes      StringSet
	Industries        StringSet
	ExcludedCompanies StringSet
	PriorityCompanies StringSet
	ExpandTitles      bool
}

// Criteria returns the audience query for the targeting.
func (t Targeting) Criteria() Criteria {
	return Criteria{
		Titles:            t.Titles.Values(),
		Locations:         t.Locations.Values(),
		Seniorities:       t.Seniorities.Values(),
		CompanySizes:      t.CompanySizes.Values(),
		Industries:        t.Industries.Values(),
		PriorityCompanies: t.PriorityCompanies.Values(),
	}
}

// MailboxConnection is the state reported by the mailbox provider.
// An empty Address means no address is known.
type MailboxConnection struct {
	Connected bool   `json:"connected" yaml:"connected"`
	Address   string `json:"address,omitempty" yaml:"address,omitempty"`
}

// MessageStyle controls how messages are written.
type MessageStyle struct {
	Tone      Tone     `json:"tone" yaml:"tone"`
	Length    Length   `json:"length" yaml:"length"`
	Language  Language `json:"language" yaml:"language"`
	KeyPoints string   `json:"keyPoints,omitempty" yaml:"key_points,omitempty"`
}

// DefaultMessageStyle is the style a new draft starts with.
func DefaultMessageStyle() MessageStyle {
	return MessageStyle{
		Tone:     ToneProfessional,
		Length:   LengthMedium,
		Language: LanguageEN,
	}
}

// TemplateContent is a single subject/body pair.
type TemplateContent struct {
	Subject string `json:"subject" yaml:"subject"`
	Body    string `json:"body" yaml:"body"`
}

// Attachment is a document that can be sent along with outreach.
type Attachment struct {
	ID          string           `json:"id" yaml:"id"`
	DisplayName string           `json:"displayName" yaml:"display_name"`
	SourceURL   string           `json:"sourceUrl" yaml:"source_url"`
	Origin      AttachmentOrigin `json:"origin" yaml:"origin"`
}

// Draft is the in-progress configuration of one campaign. It is owned by a
// single wizard and never persisted; Assemble turns it into a Record.
type Draft struct {
	Name       string
	Goal       Goal
	Targeting  Targeting
	Mailbox    MailboxConnection
	Style      MessageStyle
	Template   *TemplateContent
	Variants   *VariantSets
	Attachment *Attachment

	mode GenerationMode
}

// NewDraft returns an empty draft with the default message style.
func NewDraft() *Draft {
	return &Draft{Style: DefaultMessageStyle()}
}

// Mode returns the generation mode.
func (d *Draft) Mode() GenerationMode {
	return d.mode
}

// SetMode changes the generation mode. Content belonging to the previous
// mode is discarded and the new mode's content is seeded empty. Selecting
// the current mode again keeps its content.
func (d *Draft) SetMode(mode GenerationMode) {
	if mode == d.mode {
		return
	}
	d.mode = mode
	d.Template = nil
	d.Variants = nil
	switch mode {
	case ModeTemplate:
		d.Template = &TemplateContent{}
	case ModeABTest:
		d.Variants = NewVariantSets()
	}
}
