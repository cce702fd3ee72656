// Package extract normalizes a raw metadata map into a ShutterRecord.
// The count itself follows the vendor profile's priority list: the first
// primary tag holding a non-negative integer wins outright (confidence
// exact), then documented heuristic fallbacks (confidence heuristic),
// then unavailable. Ties are broken purely by list order - maker-note
// tags for the same quantity disagree across firmware revisions, so a
// fixed vendor-curated order is more reproducible than voting.
package extract

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jabrailkhalil/photoshutterinspector/internal/camera"
	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
)

// knownEditors flags files that have been through editing software or a
// messenger re-encode; such files often carry stripped or rewritten
// maker notes.
var knownEditors = []string{
	"lightroom", "photoshop", "adobe", "camera raw",
	"capture one", "dxo", "luminar", "affinity",
	"gimp", "darktable", "rawtherapee",
	"snapseed", "vsco", "instagram", "telegram",
	"whatsapp", "facebook", "messenger", "viber", "signal",
}

// fileNumberPattern pulls the in-camera counter out of names like
// IMG_1234.CR2 or DSC_0042.NEF.
var fileNumberPattern = regexp.MustCompile(`(?i)(?:IMG|DSC|_MG|_DSC)_?(\d+)`)

// Extract builds the normalized record for one file. A nil profile means
// the vendor could not be resolved; the record is then unavailable with
// the no_vendor_profile warning but still carries the camera identity
// fields that were present.
func Extract(path string, meta record.RawMetadata, prof *camera.Profile) record.ShutterRecord {
	rec := record.ShutterRecord{
		Path:       path,
		Confidence: record.ConfidenceUnavailable,
	}
	rec.Make, rec.Model = camera.Identity(meta)
	fillIdentity(&rec, meta)
	fillHints(&rec, meta)

	if prof == nil {
		rec.AddWarning(record.WarnNoVendorProfile)
		logf(path, "no vendor profile, count unavailable")
		return rec
	}

	// Primary tags, first match wins.
	for _, tag := range prof.PrimaryTags {
		v, ok := meta.Lookup(tag)
		if !ok {
			continue
		}
		count, ok := ParseCount(v)
		if !ok {
			continue
		}
		rec.ShutterCount = record.Int64(count)
		rec.SourceTag = tag
		rec.Confidence = record.ConfidenceExact
		break
	}

	// Heuristic fallbacks only when no primary tag was usable.
	if rec.ShutterCount == nil {
		for _, h := range prof.Heuristics {
			v, ok := meta.Lookup(h.Tag)
			if !ok {
				continue
			}
			raw, ok := ParseCount(v)
			if !ok {
				continue
			}
			count := h.Apply(raw)
			if count < 0 {
				continue
			}
			rec.ShutterCount = record.Int64(count)
			rec.SourceTag = h.Tag
			rec.Confidence = record.ConfidenceHeuristic
			break
		}
	}

	// Secondary counters are collected regardless of the outcome; the
	// validator cross-checks against them.
	for _, tag := range prof.SecondaryTags {
		if tag == rec.SourceTag {
			continue
		}
		if v, ok := meta.Lookup(tag); ok {
			if n, ok := ParseCount(v); ok {
				if rec.Secondary == nil {
					rec.Secondary = make(map[string]int64)
				}
				rec.Secondary[tag] = n
			}
		}
	}

	logf(path, "count=%s source=%s confidence=%s",
		countString(rec.ShutterCount), rec.SourceTag, rec.Confidence)
	return rec
}

// fillIdentity copies the camera identity fields the report shows.
func fillIdentity(rec *record.ShutterRecord, meta record.RawMetadata) {
	rec.SerialNumber, _ = meta.LookupString(
		"SerialNumber", "CameraSerialNumber", "InternalSerialNumber")
	rec.LensModel, _ = meta.LookupString("LensModel", "Lens", "LensType")
	rec.Firmware, _ = meta.LookupString("Firmware", "FirmwareVersion")
	rec.DateTimeOriginal, _ = meta.LookupString("DateTimeOriginal", "CreateDate")
}

// fillHints records the indirect signals: the in-camera file number (NOT
// an actuation count), editing-software traces and extension mismatches.
func fillHints(rec *record.ShutterRecord, meta record.RawMetadata) {
	if v, ok := meta.Lookup("FileNumber", "FileIndex"); ok {
		if n, ok := ParseCount(v); ok {
			rec.FileNumber = record.Int64(n)
		}
	}
	if rec.FileNumber == nil {
		if m := fileNumberPattern.FindStringSubmatch(filepath.Base(rec.Path)); m != nil {
			if n, ok := ParseCount(m[1]); ok {
				rec.FileNumber = record.Int64(n)
			}
		}
	}

	software, _ := meta.LookupString("Software")
	processing, _ := meta.LookupString("ProcessingSoftware")
	if editedBy(software + " " + processing) {
		rec.AddWarning(record.WarnEditedSoftware)
	}

	if mismatchedType(rec.Path, meta) {
		rec.AddWarning(record.WarnFileTypeMismatch)
	}
}

func editedBy(software string) bool {
	s := strings.ToLower(software)
	for _, editor := range knownEditors {
		if strings.Contains(s, editor) {
			return true
		}
	}
	return false
}

// expectedTypes maps file extensions to the FileType values exiftool
// reports for genuine files of that kind.
var expectedTypes = map[string][]string{
	".jpg":  {"JPEG", "JPG"},
	".jpeg": {"JPEG", "JPG"},
	".cr2":  {"CR2"},
	".cr3":  {"CR3"},
	".nef":  {"NEF"},
	".arw":  {"ARW"},
	".orf":  {"ORF"},
	".rw2":  {"RW2"},
	".dng":  {"DNG"},
}

func mismatchedType(path string, meta record.RawMetadata) bool {
	want, ok := expectedTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return false
	}
	actual, ok := meta.LookupString("FileType")
	if !ok {
		return false
	}
	actual = strings.ToUpper(actual)
	for _, w := range want {
		if actual == w {
			return false
		}
	}
	return true
}

func countString(v *int64) string {
	if v == nil {
		return "none"
	}
	return record.Stringify(*v)
}
