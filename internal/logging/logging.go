package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/jabrailkhalil/photoshutterinspector/internal/ui"
)

// Logger is a tiny opt-in logger used across internal packages.
// When Writer is nil, logging is disabled.
//
// The output format is:
//
//	<ColoredPrefix> file=<path> <formattedMessage>\n
//
// where <path> is trimmed and defaults to "(unknown)".
type Logger struct {
	Writer io.Writer

	PrefixText  string
	PrefixColor string

	// OmitFile controls whether the file field is written.
	// When false (default), output includes: "file=<path>".
	OmitFile bool
}

func (l *Logger) SetWriter(w io.Writer) { l.Writer = w }

func (l *Logger) Enabled() bool { return l != nil && l.Writer != nil }

func (l *Logger) Logf(file string, format string, args ...any) {
	if l == nil || l.Writer == nil {
		return
	}
	prefix := l.PrefixText
	if prefix == "" {
		prefix = "Log:"
	}
	if l.PrefixColor != "" {
		prefix = ui.Color(prefix, l.PrefixColor)
	}
	msg := fmt.Sprintf(format, args...)
	if l.OmitFile {
		fmt.Fprintf(l.Writer, "%s %s\n", prefix, msg)
		return
	}

	f := strings.TrimSpace(file)
	if f == "" {
		f = "(unknown)"
	}
	fmt.Fprintf(l.Writer, "%s file=%s %s\n", prefix, f, msg)
}
