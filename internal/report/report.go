// Package report renders normalized shutter records and comparison
// results as pretty text, JSON, or CSV. The JSON document mirrors the
// record fields exactly, with null for unavailable values, so a saved
// report parses back into the same records.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
)

// Format selects the output rendering.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPretty:
		return FormatPretty, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected pretty|json|csv)", s)
	}
}

// Meta carries run-level context shown alongside the records.
type Meta struct {
	// ExiftoolVersion is the probed version of the metadata extractor.
	ExiftoolVersion string

	// Incomplete marks a batch that was cancelled before every file was
	// processed.
	Incomplete bool
}

// WriteRecords renders a batch (or single-file) analysis.
func WriteRecords(w io.Writer, format Format, recs []record.ShutterRecord, meta Meta) error {
	switch format {
	case FormatJSON:
		return writeRecordsJSON(w, recs, meta)
	case FormatCSV:
		return writeRecordsCSV(w, recs)
	default:
		return writeRecordsPretty(w, recs, meta)
	}
}

// WriteComparison renders a two-file comparison.
func WriteComparison(w io.Writer, format Format, res record.ComparisonResult, meta Meta) error {
	switch format {
	case FormatJSON:
		return writeComparisonJSON(w, res, meta)
	case FormatCSV:
		return writeRecordsCSV(w, []record.ShutterRecord{res.First, res.Second})
	default:
		return writeComparisonPretty(w, res)
	}
}
