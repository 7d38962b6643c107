package campaign

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// TargetingBlock is the persisted form of Targeting.
type TargetingBlock struct {
	Titles            []string `json:"titles" yaml:"titles"`
	Locations         []string `json:"locations" yaml:"locations"`
	Seniorities       []string `json:"seniorities" yaml:"seniorities"`
	CompanySizes      []string `json:"companySizes" yaml:"company_sizes"`
	Industries        []string `json:"industries" yaml:"industries"`
	ExcludedCompanies []string `json:"excludedCompanies" yaml:"excluded_companies"`
	PriorityCompanies []string `json:"priorityCompanies" yaml:"priority_companies"`
	ExpandTitles      bool     `json:"expandTitles" yaml:"expand_titles"`
}

// VariantBlock is the persisted form of VariantSets, blanks removed.
type VariantBlock struct {
	Hooks  []string `json:"hooks" yaml:"hooks"`
	Bodies []string `json:"bodies" yaml:"bodies"`
	CTAs   []string `json:"ctas" yaml:"ctas"`
}

// Preview returns the message built from the selected entries.
func (v *VariantBlock) Preview(hook, body, cta int) (string, error) {
	lists := [][]string{v.Hooks, v.Bodies, v.CTAs}
	picks := []int{hook, body, cta}
	for i, list := range lists {
		if picks[i] < 0 || picks[i] >= len(list) {
			return "", fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, Sections[i], picks[i])
		}
	}
	return joinMessage(v.Hooks[hook], v.Bodies[body], v.CTAs[cta]), nil
}

// Stats are the engagement counters of a campaign. New records start at zero.
type Stats struct {
	Sent    int `json:"sent" yaml:"sent"`
	Opened  int `json:"opened" yaml:"opened"`
	Replied int `json:"replied" yaml:"replied"`
	Bounced int `json:"bounced" yaml:"bounced"`
}

// Record is the persisted campaign. Template and Variants are mutually
// exclusive and follow Mode; Attachment is present only when chosen.
type Record struct {
	ID         string            `json:"id" yaml:"id"`
	Slug       string            `json:"slug" yaml:"slug"`
	Name       string            `json:"name" yaml:"name"`
	Goal       Goal              `json:"goal" yaml:"goal"`
	Targeting  TargetingBlock    `json:"targeting" yaml:"targeting"`
	Mailbox    MailboxConnection `json:"mailbox" yaml:"mailbox"`
	Style      MessageStyle      `json:"messageStyle" yaml:"message_style"`
	Mode       GenerationMode    `json:"generationMode" yaml:"generation_mode"`
	Template   *TemplateContent  `json:"template,omitempty" yaml:"template,omitempty"`
	Variants   *VariantBlock     `json:"variantSets,omitempty" yaml:"variant_sets,omitempty"`
	Attachment *Attachment       `json:"attachment,omitempty" yaml:"attachment,omitempty"`
	Stats      Stats             `json:"stats" yaml:"stats"`
	CreatedAt  time.Time         `json:"createdAt" yaml:"created_at"`
}

// Assemble builds the record for a draft whose steps all validate. The
// name is the only field checked here rather than per step. The draft is
// not modified, so a failed save can be retried with it.
func Assemble(d *Draft, now time.Time) (*Record, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if d.Mode() == ModeUnset {
		return nil, ErrModeUnset
	}
	if err := CheckSequence(d); err != nil {
		return nil, err
	}

	t := d.Targeting
	rec := &Record{
		Slug: slug.Make(name),
		Name: name,
		Goal: d.Goal,
		Targeting: TargetingBlock{
			Titles:            t.Titles.Values(),
			Locations:         t.Locations.Values(),
			Seniorities:       t.Seniorities.Values(),
			CompanySizes:      t.CompanySizes.Values(),
			Industries:        t.Industries.Values(),
			ExcludedCompanies: t.ExcludedCompanies.Values(),
			PriorityCompanies: t.PriorityCompanies.Values(),
			ExpandTitles:      t.ExpandTitles,
		},
		Mailbox:   d.Mailbox,
		Style:     d.Style,
		Mode:      d.Mode(),
		CreatedAt: now.UTC(),
	}

	switch d.Mode() {
	case ModeTemplate:
		tmpl := *d.Template
		rec.Template = &tmpl
	case ModeABTest:
		rec.Variants = &VariantBlock{
			Hooks:  d.Variants.Filled(SectionHooks),
			Bodies: d.Variants.Filled(SectionBodies),
			CTAs:   d.Variants.Filled(SectionCTAs),
		}
	}

	if d.Attachment != nil {
		att := *d.Attachment
		rec.Attachment = &att
	}

	return rec, nil
}
