package output

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSuccess(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Success("Test message")

	if !strings.Contains(buf.String(), "🪶") {
		t.Error("Success output should contain feather emoji")
	}
	if !strings.Contains(buf.String(), "Test message") {
		t.Error("Success output should contain the message")
	}
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Error("Error message")

	if !strings.Contains(buf.String(), "❌") {
		t.Error("Error output should contain X emoji")
	}
	if !strings.Contains(buf.String(), "Error message") {
		t.Error("Error output should contain the message")
	}
}

func TestInfoAndStep(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)
	p.Info("Info message")
	p.Step("go mod tidy")

	out := buf.String()
	if !strings.Contains(out, "Info message") {
		t.Error("Info output should contain the message")
	}
	if !strings.Contains(out, "   go mod tidy") {
		t.Error("Step output should be indented")
	}
}

func TestPlain(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Plain("usage\n")

	if buf.String() != "usage\n" {
		t.Errorf("Plain() = %q, want %q", buf.String(), "usage\n")
	}
}

func TestNew_NilWriter(t *testing.T) {
	if New(nil).out != os.Stdout {
		t.Error("New(nil) should fall back to stdout")
	}
}
