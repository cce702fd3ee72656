// Package exiftool shells out to the exiftool binary and turns its JSON
// output into the flat tag map the extraction pipeline works on. The
// binary decoding of maker notes stays entirely inside exiftool; this
// package only owns the subprocess lifecycle and failure taxonomy.
package exiftool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
)

// Failure categories callers must be able to tell apart.
var (
	ErrToolNotFound    = errors.New("exiftool not found")
	ErrUnsupportedFile = errors.New("unsupported or corrupt file")
	ErrNoMetadata      = errors.New("no metadata found")
	ErrTimeout         = errors.New("exiftool timed out")
)

// DefaultTimeout bounds a single per-file exiftool invocation.
const DefaultTimeout = 30 * time.Second

// Source reads metadata for one file per call by invoking exiftool.
// A Source is safe for concurrent use; every call spawns its own process.
type Source struct {
	// Binary is the exiftool executable path; "exiftool" resolves via PATH.
	Binary string

	// Timeout applies per invocation. Zero means DefaultTimeout.
	Timeout time.Duration
}

// New returns a Source for the given executable path.
func New(binary string, timeout time.Duration) *Source {
	if binary == "" {
		binary = "exiftool"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Source{Binary: binary, Timeout: timeout}
}

// Version probes the tool once so a missing installation fails before
// any file work starts.
func (s *Source) Version(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	out, err := exec.CommandContext(ctx, s.Binary, "-ver").Output()
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("%w: %q", ErrToolNotFound, s.Binary)
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: version probe", ErrTimeout)
		}
		return "", fmt.Errorf("probing exiftool version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Read runs exiftool on one file and returns its flat tag map.
//
// Flags mirror what the tool needs for maker-note access:
// -j JSON output, -G group names, -a duplicate tags, -u unknown tags,
// -n numeric values.
func (s *Source) Read(ctx context.Context, path string) (record.RawMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, s.Binary, "-j", "-G", "-a", "-u", "-n", "--", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %q", ErrToolNotFound, s.Binary)
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, path)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// exiftool exits non-zero with nothing on stdout for files it
		// cannot parse at all.
		if len(bytes.TrimSpace(out)) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, firstStderrLine(&stderr, path))
		}
	}

	var objects []map[string]any
	if err := json.Unmarshal(out, &objects); err != nil {
		return nil, fmt.Errorf("parsing exiftool output for %s: %w", path, err)
	}
	if len(objects) == 0 || len(objects[0]) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMetadata, path)
	}

	meta := record.RawMetadata(objects[0])
	logf(path, "read %d tags", len(meta))
	return meta, nil
}

func (s *Source) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultTimeout
	}
	return s.Timeout
}

func isNotFound(err error) bool {
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var execErr *exec.Error
	return errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound)
}

func firstStderrLine(buf *bytes.Buffer, fallback string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(buf.String()), "\n")
	if line == "" {
		return fallback
	}
	return line
}
