package campaign

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync/atomic"
)

// Section is one of the three A/B variant lists.
type Section string

const (
	SectionHooks  Section = "hook"
	SectionBodies Section = "body"
	SectionCTAs   Section = "cta"
)

// Sections lists the variant sections in message order.
var Sections = []Section{SectionHooks, SectionBodies, SectionCTAs}

// Max returns the most entries the section may hold.
func (s Section) Max() int {
	switch s {
	case SectionHooks:
		return 5
	case SectionBodies, SectionCTAs:
		return 3
	default:
		return 0
	}
}

// Label returns the plural display name of the section.
func (s Section) Label() string {
	switch s {
	case SectionHooks:
		return "Hooks"
	case SectionBodies:
		return "Bodies"
	case SectionCTAs:
		return "CTAs"
	default:
		return string(s)
	}
}

// Singular returns the display name of one entry of the section.
func (s Section) Singular() string {
	if s == SectionCTAs {
		return "CTA"
	}
	return string(s)
}

func (s Section) index() (int, error) {
	for i, sec := range Sections {
		if sec == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

// SlotID identifies a variant entry for its whole lifetime, independent of
// its position. IDs are unique across all VariantSets in the process, so a
// result for a discarded set can never match an entry of a new one.
type SlotID uint64

var lastSlotID atomic.Uint64

type variant struct {
	id   SlotID
	text string
}

// VariantSets holds the hook, body and CTA lists of an A/B test campaign.
// Every section always holds between 1 and Section.Max entries; entries
// may be blank while being edited.
type VariantSets struct {
	sections [3][]variant
}

// NewVariantSets returns sets with one blank entry per section.
func NewVariantSets() *VariantSets {
	v := &VariantSets{}
	for i := range v.sections {
		v.sections[i] = []variant{v.newVariant("")}
	}
	return v
}

// NewVariantSetsFrom builds sets from existing lists. Each list must hold
// between 1 and the section maximum entries.
func NewVariantSetsFrom(hooks, bodies, ctas []string) (*VariantSets, error) {
	v := &VariantSets{}
	for i, list := range [][]string{hooks, bodies, ctas} {
		sec := Sections[i]
		if len(list) < 1 || len(list) > sec.Max() {
			return nil, fmt.Errorf("%s: need 1 to %d entries, got %d", sec.Label(), sec.Max(), len(list))
		}
		for _, text := range list {
			v.sections[i] = append(v.sections[i], v.newVariant(text))
		}
	}
	return v, nil
}

func (v *VariantSets) newVariant(text string) variant {
	return variant{id: SlotID(lastSlotID.Add(1)), text: text}
}

func (v *VariantSets) section(sec Section) ([]variant, int, error) {
	i, err := sec.index()
	if err != nil {
		return nil, 0, err
	}
	return v.sections[i], i, nil
}

// Len returns the number of entries in sec, blank ones included.
func (v *VariantSets) Len(sec Section) int {
	list, _, err := v.section(sec)
	if err != nil {
		return 0
	}
	return len(list)
}

// Entries returns a copy of the entries of sec.
func (v *VariantSets) Entries(sec Section) []string {
	list, _, err := v.section(sec)
	if err != nil {
		return nil
	}
	out := make([]string, len(list))
	for i, item := range list {
		out[i] = item.text
	}
	return out
}

// Entry returns the entry at index in sec.
func (v *VariantSets) Entry(sec Section, index int) (string, error) {
	list, _, err := v.section(sec)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(list) {
		return "", fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, sec, index)
	}
	return list[index].text, nil
}

// Slot returns the slot ID of the entry at index in sec.
func (v *VariantSets) Slot(sec Section, index int) (SlotID, error) {
	list, _, err := v.section(sec)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= len(list) {
		return 0, fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, sec, index)
	}
	return list[index].id, nil
}

// IndexOfSlot returns the current index of slot in sec.
func (v *VariantSets) IndexOfSlot(sec Section, slot SlotID) (int, bool) {
	list, _, err := v.section(sec)
	if err != nil {
		return 0, false
	}
	for i, item := range list {
		if item.id == slot {
			return i, true
		}
	}
	return 0, false
}

// Add appends a blank entry to sec. A full section is left unchanged and
// ErrSectionFull is returned.
func (v *VariantSets) Add(sec Section) error {
	list, i, err := v.section(sec)
	if err != nil {
		return err
	}
	if len(list) >= sec.Max() {
		return fmt.Errorf("%w: %s allows at most %d", ErrSectionFull, sec.Label(), sec.Max())
	}
	v.sections[i] = append(list, v.newVariant(""))
	return nil
}

// Remove deletes the entry at index from sec, keeping the order of the
// rest. The last remaining entry cannot be removed.
func (v *VariantSets) Remove(sec Section, index int) error {
	list, i, err := v.section(sec)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(list) {
		return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, sec, index)
	}
	if len(list) <= 1 {
		return fmt.Errorf("%w: %s", ErrSectionMinimum, sec.Label())
	}
	v.sections[i] = append(list[:index:index], list[index+1:]...)
	return nil
}

// Update replaces the text of the entry at index in sec. Merge fields are
// kept verbatim; they are resolved per recipient at send time.
func (v *VariantSets) Update(sec Section, index int, text string) error {
	list, _, err := v.section(sec)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(list) {
		return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, sec, index)
	}
	list[index].text = text
	return nil
}

// UpdateSlot replaces the text of the entry identified by slot. Returns
// false if the slot no longer exists.
func (v *VariantSets) UpdateSlot(sec Section, slot SlotID, text string) bool {
	index, ok := v.IndexOfSlot(sec, slot)
	if !ok {
		return false
	}
	return v.Update(sec, index, text) == nil
}

// Filled returns the non-blank entries of sec in order.
func (v *VariantSets) Filled(sec Section) []string {
	var out []string
	for _, text := range v.Entries(sec) {
		if strings.TrimSpace(text) != "" {
			out = append(out, text)
		}
	}
	return out
}

// Others returns the non-blank entries of sec except the one at index.
func (v *VariantSets) Others(sec Section, index int) []string {
	var out []string
	for i, text := range v.Entries(sec) {
		if i == index || strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, text)
	}
	return out
}

// Complete reports whether every section has a non-blank entry.
func (v *VariantSets) Complete() bool {
	for _, sec := range Sections {
		if len(v.Filled(sec)) == 0 {
			return false
		}
	}
	return true
}

// Combinations returns how many distinct hook/body/CTA messages the
// non-blank entries produce.
func (v *VariantSets) Combinations() int {
	n := 1
	for _, sec := range Sections {
		n *= len(v.Filled(sec))
	}
	return n
}

// Preview returns the message built from the selected entries.
func (v *VariantSets) Preview(hook, body, cta int) (string, error) {
	parts := make([]string, 0, len(Sections))
	for i, sec := range Sections {
		text, err := v.Entry(sec, []int{hook, body, cta}[i])
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return joinMessage(parts[0], parts[1], parts[2]), nil
}

// RandomCombination picks one non-blank entry per section, the way a
// message is chosen for each recipient at send time. ok is false when a
// section has no non-blank entry.
func (v *VariantSets) RandomCombination(r *rand.Rand) (hook, body, cta int, ok bool) {
	var picks [3]int
	for i, sec := range Sections {
		var candidates []int
		for j, text := range v.Entries(sec) {
			if strings.TrimSpace(text) != "" {
				candidates = append(candidates, j)
			}
		}
		if len(candidates) == 0 {
			return 0, 0, 0, false
		}
		picks[i] = candidates[r.IntN(len(candidates))]
	}
	return picks[0], picks[1], picks[2], true
}

func joinMessage(hook, body, cta string) string {
	return hook + "\n\n" + body + "\n\n" + cta
}

var mergeFieldRegex = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// MergeFields returns the distinct merge field identifiers in text, in
// order of first appearance. Identifiers are not checked against any list.
func MergeFields(text string) []string {
	var fields []string
	seen := make(map[string]bool)
	for _, m := range mergeFieldRegex.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			fields = append(fields, m[1])
		}
	}
	return fields
}

// MergeFieldSpans returns the byte ranges of every merge field in text.
func MergeFieldSpans(text string) [][]int {
	return mergeFieldRegex.FindAllStringIndex(text, -1)
}
