package theme

import (
	"strings"
	"testing"
)

func TestCatppuccinMocha_ColorPalette(t *testing.T) {
	t.Parallel()

	th := Current()
	if th.Name != "catppuccin-mocha" {
		t.Fatalf("expected catppuccin-mocha theme, got %s", th.Name)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"Primary (Mauve)", th.Primary, "#cba6f7"},
		{"Secondary (Lavender)", th.Secondary, "#b4befe"},
		{"BgBase", th.BgBase, "#1e1e2e"},
		{"FgBase (Text)", th.FgBase, "#cdd6f4"},
		{"Error (Red)", th.Error, "#f38ba8"},
		{"Success (Green)", th.Success, "#a6e3a1"},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.expected, tt.got)
		}
	}
}

func TestStylesBuiltOnce(t *testing.T) {
	t.Parallel()

	th := NewCatppuccinMocha()
	if th.S() != th.S() {
		t.Error("expected S() to return the same styles on every call")
	}
	if got := th.S().Title.Render("x"); got == "" {
		t.Error("expected title style to render")
	}
}

func TestInterpolateColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		pos  float64
		want string
	}{
		{"#000000", "#ffffff", 0, "#000000"},
		{"#000000", "#ffffff", 1, "#ffffff"},
		{"#000000", "#ff8040", 0.5, "#7f4020"},
		{"cba6f7", "cba6f7", 0.3, "#cba6f7"},
		{"bogus", "#ffffff", 0, "#000000"},
	}
	for _, tt := range tests {
		if got := InterpolateColor(tt.a, tt.b, tt.pos); got != tt.want {
			t.Errorf("InterpolateColor(%s, %s, %v) = %s, want %s", tt.a, tt.b, tt.pos, got, tt.want)
		}
	}
}

func TestApplyGradient(t *testing.T) {
	t.Parallel()

	if got := ApplyGradient("", "#000000", "#ffffff"); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
	out := ApplyGradient("a b", "#000000", "#ffffff")
	for _, want := range []string{"a", " ", "b"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}
