package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jabrailkhalil/photoshutterinspector/internal/ui"
)

func TestLogger_EnabledAndSetWriter(t *testing.T) {
	var l Logger
	if l.Enabled() {
		t.Fatalf("expected disabled when Writer is nil")
	}

	var buf bytes.Buffer
	l.SetWriter(&buf)
	if !l.Enabled() {
		t.Fatalf("expected enabled after setting Writer")
	}
}

func TestLogger_NilReceiverIsSafe(t *testing.T) {
	var l *Logger
	if l.Enabled() {
		t.Fatal("nil logger must report disabled")
	}
	l.Logf("a.cr2", "must not panic")
}

func TestLogger_Logf_WritesPrefixFileAndMessage(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:", PrefixColor: ui.FgGreen}
	l.Logf("  IMG_0001.CR2  ", "msg %d", 1)

	out := buf.String()
	if !strings.Contains(out, "X:") {
		t.Fatalf("expected prefix, got %q", out)
	}
	if !strings.Contains(out, "file=IMG_0001.CR2") {
		t.Fatalf("expected trimmed file path, got %q", out)
	}
	if !strings.Contains(out, "msg 1") {
		t.Fatalf("expected formatted message, got %q", out)
	}
}

func TestLogger_Logf_EmptyPath_UsesUnknown(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:"}
	l.Logf("   ", "x")

	if !strings.Contains(buf.String(), "file=(unknown)") {
		t.Fatalf("expected unknown file placeholder, got %q", buf.String())
	}
}

func TestLogger_Logf_DefaultPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Writer: &buf}
	l.Logf("a.cr2", "x")

	if !strings.Contains(buf.String(), "Log:") {
		t.Fatalf("expected default prefix, got %q", buf.String())
	}
}

func TestLogger_Logf_OmitFile(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:", OmitFile: true}
	l.Logf("a.cr2", "x")

	if buf.String() != "X: x\n" {
		t.Fatalf("output = %q, want %q", buf.String(), "X: x\\n")
	}
}
