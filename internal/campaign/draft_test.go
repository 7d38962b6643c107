package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSet(t *testing.T) {
	s := NewStringSet("Software Engineer", " software engineer ", "", "  ", "Designer")
	assert.Equal(t, []string{"Software Engineer", "Designer"}, s.Values())

	assert.False(t, s.Add("DESIGNER"), "duplicate should be rejected case-insensitively")
	assert.True(t, s.Add("Product Manager"))
	assert.True(t, s.Has("product manager"))

	assert.True(t, s.Remove("software engineer"))
	assert.False(t, s.Remove("software engineer"))
	assert.Equal(t, []string{"Designer", "Product Manager"}, s.Values())

	values := s.Values()
	values[0] = "mutated"
	assert.Equal(t, "Designer", s.Values()[0], "Values must return a copy")
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"Paris", "Remote"}, ParseList("Paris, Remote,, paris "))
	assert.Empty(t, ParseList(" , "))
}

func TestParseEnums(t *testing.T) {
	g, err := ParseGoal("Internship")
	require.NoError(t, err)
	assert.Equal(t, GoalInternship, g)
	_, err = ParseGoal("freelance")
	assert.Error(t, err)

	m, err := ParseMode("abtest")
	require.NoError(t, err)
	assert.Equal(t, ModeABTest, m)
	_, err = ParseMode("")
	assert.Error(t, err)

	l, err := ParseLanguage("FR")
	require.NoError(t, err)
	assert.Equal(t, LanguageFR, l)
}

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft()
	assert.Equal(t, ModeUnset, d.Mode())
	assert.Equal(t, GoalUnset, d.Goal)
	assert.Equal(t, DefaultMessageStyle(), d.Style)
	assert.Nil(t, d.Template)
	assert.Nil(t, d.Variants)
	assert.Nil(t, d.Attachment)
}

func TestSetModeDiscardsOtherBranch(t *testing.T) {
	d := NewDraft()

	d.SetMode(ModeTemplate)
	require.NotNil(t, d.Template)
	assert.Nil(t, d.Variants)
	d.Template.Subject = "Hello"

	d.SetMode(ModeTemplate)
	assert.Equal(t, "Hello", d.Template.Subject, "reselecting the same mode keeps content")

	d.SetMode(ModeABTest)
	assert.Nil(t, d.Template)
	require.NotNil(t, d.Variants)
	for _, sec := range Sections {
		assert.Equal(t, 1, d.Variants.Len(sec))
	}

	d.SetMode(ModeAuto)
	assert.Nil(t, d.Template)
	assert.Nil(t, d.Variants)

	d.SetMode(ModeTemplate)
	assert.Equal(t, "", d.Template.Subject, "earlier template content must not come back")
}

func TestTargetingCriteria(t *testing.T) {
	d := NewDraft()
	assert.False(t, d.Targeting.Criteria().Ready())

	d.Targeting.Titles.Add("Backend Engineer")
	assert.False(t, d.Targeting.Criteria().Ready())

	d.Targeting.Locations.Add("Berlin")
	d.Targeting.PriorityCompanies.Add("Acme")
	d.Targeting.ExcludedCompanies.Add("Globex")
	c := d.Targeting.Criteria()
	assert.True(t, c.Ready())
	assert.Equal(t, []string{"Acme"}, c.PriorityCompanies)
}

func TestCriteriaEqual(t *testing.T) {
	a := Criteria{Titles: []string{"SRE"}, Locations: []string{"Paris"}}
	b := Criteria{Titles: []string{"SRE"}, Locations: []string{"Paris"}, Industries: []string{}}
	assert.True(t, a.Equal(b), "nil and empty lists are equal")

	b.Industries = []string{"Fintech"}
	assert.False(t, a.Equal(b))

	c := Criteria{Titles: []string{"Paris"}, Locations: []string{"SRE"}}
	assert.False(t, a.Equal(c))
}
