// Package shutterinspect is the public library surface: a thin facade
// over the internal extraction pipeline for programs that want shutter
// records without going through the CLI.
package shutterinspect

import (
	"context"
	"time"

	"github.com/jabrailkhalil/photoshutterinspector/internal/camera"
	"github.com/jabrailkhalil/photoshutterinspector/internal/compare"
	"github.com/jabrailkhalil/photoshutterinspector/internal/exiftool"
	"github.com/jabrailkhalil/photoshutterinspector/internal/inspect"
	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
)

// Re-exported result types; see the record package for field semantics.
type (
	ShutterRecord    = record.ShutterRecord
	ComparisonResult = record.ComparisonResult
	RawMetadata      = record.RawMetadata
)

// Options configures an Inspector. The zero value uses exiftool from
// PATH with the default per-file timeout.
type Options struct {
	// ExiftoolPath overrides the exiftool executable location.
	ExiftoolPath string

	// Timeout bounds each per-file exiftool invocation.
	Timeout time.Duration

	// Workers bounds batch concurrency; zero means one worker per CPU.
	Workers int
}

// Inspector analyzes camera files for shutter actuation counts.
type Inspector struct {
	inner   *inspect.Inspector
	source  *exiftool.Source
	workers int
}

// New returns an Inspector with the given options.
func New(opts Options) *Inspector {
	source := exiftool.New(opts.ExiftoolPath, opts.Timeout)
	return &Inspector{
		inner:   inspect.New(source, camera.Default()),
		source:  source,
		workers: opts.Workers,
	}
}

// ToolVersion probes the exiftool installation. An error means the tool
// is missing or unusable; nothing else in this package will work then.
func (i *Inspector) ToolVersion(ctx context.Context) (string, error) {
	return i.source.Version(ctx)
}

// InspectFile analyzes one file. The returned record always exists; a
// subprocess failure is reported through its Error and ToolError fields.
func (i *Inspector) InspectFile(ctx context.Context, path string) ShutterRecord {
	return i.inner.InspectFile(ctx, path)
}

// InspectDir analyzes every supported file directly inside dir. Records
// come back in directory listing order. The second return value is true
// when ctx was cancelled before the whole directory was processed.
func (i *Inspector) InspectDir(ctx context.Context, dir string) ([]ShutterRecord, bool, error) {
	paths, err := inspect.ListDir(dir)
	if err != nil {
		return nil, false, err
	}
	result := i.inner.Batch(ctx, paths, i.workers, nil)
	return result.Records, result.Incomplete, nil
}

// Compare analyzes both files and derives the actuation delta, first
// taken as the baseline.
func (i *Inspector) Compare(ctx context.Context, first, second string) ComparisonResult {
	a := i.inner.InspectFile(ctx, first)
	b := i.inner.InspectFile(ctx, second)
	return compare.Compare(a, b)
}

// CompareRecords derives the delta between two already-obtained records.
func CompareRecords(first, second ShutterRecord) ComparisonResult {
	return compare.Compare(first, second)
}

// Supported reports whether the file name has an extension worth probing.
func Supported(path string) bool { return inspect.Supported(path) }
