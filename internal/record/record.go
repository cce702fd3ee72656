// Package record defines the canonical data model shared by the
// extraction pipeline: the raw metadata map produced by the metadata
// source, the normalized per-file ShutterRecord, and the result of
// comparing two records.
package record

import (
	"strconv"
	"strings"
)

// Confidence is the extractor's self-assessed reliability of a
// shutter-count value.
type Confidence string

const (
	// ConfidenceExact means the count came from a primary maker-note tag.
	ConfidenceExact Confidence = "exact"
	// ConfidenceHeuristic means the count was derived from a secondary
	// tag through a documented transform.
	ConfidenceHeuristic Confidence = "heuristic"
	// ConfidenceUnavailable means no usable count could be determined.
	ConfidenceUnavailable Confidence = "unavailable"
)

// Warning flags attached to records and comparison results. These are
// report metadata, never errors.
const (
	WarnNoVendorProfile     = "no_vendor_profile"
	WarnOutOfBounds         = "out_of_bounds"
	WarnCountBelowSecondary = "count_below_secondary"
	WarnUnitMismatch        = "unit_mismatch"
	WarnIncompleteData      = "incomplete_data"
	WarnCrossVendor         = "cross_vendor_comparison"
	WarnDecreasingCount     = "decreasing_count"
	WarnExtractionTimeout   = "extraction_timeout"
	WarnEditedSoftware      = "edited_software"
	WarnFileTypeMismatch    = "file_type_mismatch"
	WarnSerialMismatch      = "serial_mismatch"
	WarnFirmwareMismatch    = "firmware_mismatch"
	WarnTimeOrderReversed   = "time_order_reversed"
	WarnFileNumberReversed  = "file_number_order_reversed"
)

// RawMetadata is the flat tag name → scalar value map returned by the
// metadata source for one file. Tag names may carry a group prefix
// ("MakerNotes:ShutterCount"). Immutable once produced.
type RawMetadata map[string]any

// Lookup returns the value for the first of the given tag names present
// in the map. A name matches its exact key or any key whose group-suffixed
// form ends in ":<name>", so "Make" finds both "Make" and "EXIF:Make".
// When several group-prefixed keys share the same suffix, the
// lexicographically smallest key wins, so repeated lookups on the same
// map always return the same value.
func (m RawMetadata) Lookup(names ...string) (any, bool) {
	for _, name := range names {
		if v, ok := m[name]; ok {
			return v, true
		}
		suffix := ":" + name
		best := ""
		found := false
		for key := range m {
			if !strings.EqualFold(key, name) && !hasFoldSuffix(key, suffix) {
				continue
			}
			if !found || key < best {
				best = key
				found = true
			}
		}
		if found {
			return m[best], true
		}
	}
	return nil, false
}

// LookupString is Lookup restricted to non-empty string renderings.
func (m RawMetadata) LookupString(names ...string) (string, bool) {
	v, ok := m.Lookup(names...)
	if !ok {
		return "", false
	}
	s := strings.TrimSpace(Stringify(v))
	if s == "" {
		return "", false
	}
	return s, true
}

func hasFoldSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

// ShutterRecord is the normalized analysis result for one file. It is
// created by the extractor, refined by the validator (confidence only
// ever moves toward less certainty) and immutable afterwards.
type ShutterRecord struct {
	Path  string `json:"path"`
	Make  string `json:"make,omitempty"`
	Model string `json:"model,omitempty"`

	SerialNumber     string `json:"serial_number,omitempty"`
	LensModel        string `json:"lens_model,omitempty"`
	Firmware         string `json:"firmware,omitempty"`
	DateTimeOriginal string `json:"datetime_original,omitempty"`

	// ShutterCount is nil when the count is unavailable; it serializes
	// as JSON null in that case.
	ShutterCount *int64     `json:"shutter_count"`
	SourceTag    string     `json:"source_tag,omitempty"`
	Confidence   Confidence `json:"confidence"`

	// Secondary holds the cross-validation counters that were present,
	// keyed by tag name.
	Secondary map[string]int64 `json:"secondary,omitempty"`

	// FileNumber is the in-camera file counter, a hint only - it is NOT
	// a shutter count and may reset with the memory card.
	FileNumber *int64 `json:"file_number,omitempty"`

	Warnings []string `json:"warnings,omitempty"`

	// Error carries the metadata-source failure for this file, if any.
	// ToolError distinguishes "could not be processed at all" from a
	// merely unavailable count; it drives the process exit code.
	Error     string `json:"error,omitempty"`
	ToolError bool   `json:"tool_error,omitempty"`
}

// Count returns the shutter count and whether one is set.
func (r *ShutterRecord) Count() (int64, bool) {
	if r.ShutterCount == nil {
		return 0, false
	}
	return *r.ShutterCount, true
}

// Usable reports whether the record carries a count trustworthy enough
// to compare: exact or heuristic confidence with a concrete value.
func (r *ShutterRecord) Usable() bool {
	return r.ShutterCount != nil &&
		(r.Confidence == ConfidenceExact || r.Confidence == ConfidenceHeuristic)
}

// HasWarning reports whether the given flag is already attached.
func (r *ShutterRecord) HasWarning(flag string) bool {
	for _, w := range r.Warnings {
		if w == flag {
			return true
		}
	}
	return false
}

// AddWarning attaches a flag once; duplicates are ignored so repeated
// validation passes stay idempotent.
func (r *ShutterRecord) AddWarning(flag string) {
	if !r.HasWarning(flag) {
		r.Warnings = append(r.Warnings, flag)
	}
}

// Downgrade moves the record to unavailable confidence and clears the
// count, attaching the reason. The source tag is kept so the report can
// still show what was tried. Downgrading is one-way.
func (r *ShutterRecord) Downgrade(reason string) {
	r.Confidence = ConfidenceUnavailable
	r.ShutterCount = nil
	r.AddWarning(reason)
}

// ComparisonResult pairs two records with the actuation delta between
// them. Delta is nil when either count is unavailable.
type ComparisonResult struct {
	First  ShutterRecord `json:"first"`
	Second ShutterRecord `json:"second"`
	Delta  *int64        `json:"delta"`

	SameMake bool     `json:"same_make"`
	Warnings []string `json:"warnings,omitempty"`
}

// HasWarning reports whether the given flag is attached to the result.
func (c *ComparisonResult) HasWarning(flag string) bool {
	for _, w := range c.Warnings {
		if w == flag {
			return true
		}
	}
	return false
}

// AddWarning attaches a flag once.
func (c *ComparisonResult) AddWarning(flag string) {
	if !c.HasWarning(flag) {
		c.Warnings = append(c.Warnings, flag)
	}
}

// Int64 returns a pointer to v, for building records literally.
func Int64(v int64) *int64 { return &v }

// Stringify renders a raw scalar the way reports display it. Floats that
// are whole numbers lose their fraction, matching exiftool's -n output.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return Stringify(float64(t))
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
