// Package inspect wires the per-file pipeline together: metadata source
// → vendor resolver → extractor → validator. Source failures never
// propagate out of the pipeline; they become unavailable records so a
// batch keeps going.
package inspect

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jabrailkhalil/photoshutterinspector/internal/camera"
	"github.com/jabrailkhalil/photoshutterinspector/internal/exiftool"
	"github.com/jabrailkhalil/photoshutterinspector/internal/extract"
	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
	"github.com/jabrailkhalil/photoshutterinspector/internal/validate"
)

// MetadataSource abstracts the exiftool subprocess so tests can feed the
// pipeline canned tag maps.
type MetadataSource interface {
	Read(ctx context.Context, path string) (record.RawMetadata, error)
}

// SupportedExtensions are the raw/JPEG formats worth probing for
// maker-note counters.
var SupportedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".cr2":  {},
	".cr3":  {},
	".nef":  {},
	".arw":  {},
	".orf":  {},
	".rw2":  {},
	".dng":  {},
}

// Supported reports whether the file name has a supported extension.
func Supported(path string) bool {
	_, ok := SupportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ListDir returns the supported files directly inside dir, sorted by
// name. Enumeration is deliberately non-recursive.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Inspector runs the extraction pipeline. The registry is read-only and
// shared by all workers; the inspector itself is safe for concurrent use
// as long as the source is.
type Inspector struct {
	Source   MetadataSource
	Registry *camera.Registry
}

// New returns an Inspector over the given source and vendor registry.
// A nil registry falls back to the built-in one.
func New(source MetadataSource, registry *camera.Registry) *Inspector {
	if registry == nil {
		registry = camera.Default()
	}
	return &Inspector{Source: source, Registry: registry}
}

// InspectFile analyzes a single file. It always returns a record; a
// metadata-source failure yields an unavailable record with ToolError
// set so the caller can reflect it in the exit code.
func (ins *Inspector) InspectFile(ctx context.Context, path string) record.ShutterRecord {
	meta, err := ins.Source.Read(ctx, path)
	if err != nil {
		logf(path, "metadata source failed: %v", err)
		return failureRecord(path, err)
	}

	prof, ok := ins.Registry.Resolve(meta)
	var profile *camera.Profile
	if ok {
		profile = &prof
	}

	rec := extract.Extract(path, meta, profile)
	rec = validate.Validate(rec, profile)
	return rec
}

func failureRecord(path string, err error) record.ShutterRecord {
	rec := record.ShutterRecord{
		Path:       path,
		Confidence: record.ConfidenceUnavailable,
		Error:      err.Error(),
		// A read aborted by the user's interrupt is not a tool failure
		// and must not flip the exit code.
		ToolError: !errors.Is(err, context.Canceled),
	}
	if errors.Is(err, exiftool.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		rec.AddWarning(record.WarnExtractionTimeout)
	}
	return rec
}
