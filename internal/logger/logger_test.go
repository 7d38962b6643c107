package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"ERROR", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr != (err != nil) {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLevel(LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	output := buf.String()
	for _, unwanted := range []string{"debug message", "info message"} {
		if strings.Contains(output, unwanted) {
			t.Errorf("%q should be filtered at WARN level", unwanted)
		}
	}
	for _, wanted := range []string{"[WARN] warn message", "[ERROR] error message"} {
		if !strings.Contains(output, wanted) {
			t.Errorf("output missing %q:\n%s", wanted, output)
		}
	}
}

func TestNamedSharesSink(t *testing.T) {
	var buf bytes.Buffer
	root := New()
	root.SetOutput(&buf)
	root.SetLevel(LevelDebug)

	est := root.Named("wizard").Named("estimator")
	est.Debug("issued seq=%d", 3)

	root.SetLevel(LevelError)
	est.Info("filtered by parent level")

	output := buf.String()
	if !strings.Contains(output, "[DEBUG] wizard.estimator: issued seq=3") {
		t.Errorf("unexpected output: %q", output)
	}
	if strings.Contains(output, "filtered by parent level") {
		t.Error("child logger should follow the parent's level")
	}
}

func TestEnvConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaignr.log")
	t.Setenv("CAMPAIGNR_LOG_LEVEL", "debug")
	t.Setenv("CAMPAIGNR_LOG_FILE", path)

	l := New()
	l.Debug("from env")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(content), "[DEBUG] from env") {
		t.Errorf("log file missing message: %q", content)
	}
}

func TestConfigure(t *testing.T) {
	l := New()
	if err := l.Configure("loud", ""); err == nil {
		t.Error("expected error for invalid level")
	}
	if err := l.Configure("", filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Error("expected error for unopenable file")
	}

	var buf bytes.Buffer
	l.SetOutput(&buf)
	if err := l.Configure("error", ""); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	l.Warn("quiet")
	if buf.Len() != 0 {
		t.Errorf("expected nothing logged, got %q", buf.String())
	}
}

func TestCloseWithoutFile(t *testing.T) {
	l := New()
	if err := l.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	Default.SetOutput(&buf)
	Default.SetLevel(LevelDebug)
	defer Default.SetLevel(LevelInfo)

	Debug("debug %s", "test")
	Info("info %s", "test")
	Warn("warn %s", "test")
	Error("error %s", "test")
	Named("store").Info("named %s", "test")

	output := buf.String()
	for _, want := range []string{"debug test", "info test", "warn test", "error test", "store: named test"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
