package extract

import (
	"testing"

	"github.com/jabrailkhalil/photoshutterinspector/internal/camera"
	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
)

// testProfile mirrors the shape of the built-in Canon entry without
// depending on the embedded registry.
func testProfile() *camera.Profile {
	return &camera.Profile{
		Vendor:        "Canon",
		MakeMatch:     []string{"canon"},
		PrimaryTags:   []string{"MakerNotes:ShutterCount", "Canon:ShutterCount", "ShutterCount"},
		SecondaryTags: []string{"MakerNotes:ImageCount", "ImageCount"},
		Heuristics:    []camera.Heuristic{{Tag: "ImageCount", Scale: 1}},
		MinCount:      1,
		MaxCount:      2000000,
	}
}

func TestExtract_PrimaryTagExact(t *testing.T) {
	meta := record.RawMetadata{
		"Make":               "Canon",
		"Model":              "EOS 5D",
		"Canon:ShutterCount": "15342",
	}
	rec := Extract("IMG_0001.CR2", meta, testProfile())

	count, ok := rec.Count()
	if !ok || count != 15342 {
		t.Fatalf("count = %d, %v; want 15342", count, ok)
	}
	if rec.Confidence != record.ConfidenceExact {
		t.Fatalf("confidence = %q, want exact", rec.Confidence)
	}
	if rec.SourceTag != "Canon:ShutterCount" {
		t.Fatalf("source tag = %q", rec.SourceTag)
	}
	if rec.Make != "Canon" || rec.Model != "EOS 5D" {
		t.Fatalf("identity = %q / %q", rec.Make, rec.Model)
	}
}

func TestExtract_FirstPriorityTagWins(t *testing.T) {
	meta := record.RawMetadata{
		"Make":                    "Canon",
		"MakerNotes:ShutterCount": float64(20000),
		"Canon:ShutterCount":      float64(99),
	}
	rec := Extract("a.cr2", meta, testProfile())

	if rec.SourceTag != "MakerNotes:ShutterCount" {
		t.Fatalf("source tag = %q, want the first priority tag", rec.SourceTag)
	}
	if count, _ := rec.Count(); count != 20000 {
		t.Fatalf("count = %d, want 20000", count)
	}
}

func TestExtract_SkipsUnparseablePrimary(t *testing.T) {
	meta := record.RawMetadata{
		"Make":                    "Canon",
		"MakerNotes:ShutterCount": "n/a",
		"Canon:ShutterCount":      float64(777),
	}
	rec := Extract("a.cr2", meta, testProfile())

	if rec.SourceTag != "Canon:ShutterCount" {
		t.Fatalf("source tag = %q, want the next parseable tag", rec.SourceTag)
	}
	if rec.Confidence != record.ConfidenceExact {
		t.Fatalf("confidence = %q", rec.Confidence)
	}
}

func TestExtract_HeuristicFallback(t *testing.T) {
	meta := record.RawMetadata{
		"Make":       "Canon",
		"ImageCount": float64(5000),
	}
	rec := Extract("a.cr2", meta, testProfile())

	if rec.Confidence != record.ConfidenceHeuristic {
		t.Fatalf("confidence = %q, want heuristic", rec.Confidence)
	}
	if count, _ := rec.Count(); count != 5000 {
		t.Fatalf("count = %d, want 5000", count)
	}
	if rec.SourceTag != "ImageCount" {
		t.Fatalf("source tag = %q", rec.SourceTag)
	}
}

func TestExtract_NoProfile(t *testing.T) {
	meta := record.RawMetadata{
		"Make":         "UnknownCo",
		"Model":        "Prototype",
		"ShutterCount": float64(123),
	}
	rec := Extract("a.jpg", meta, nil)

	if rec.ShutterCount != nil {
		t.Fatal("expected no count without a vendor profile")
	}
	if rec.Confidence != record.ConfidenceUnavailable {
		t.Fatalf("confidence = %q, want unavailable", rec.Confidence)
	}
	if !rec.HasWarning(record.WarnNoVendorProfile) {
		t.Fatalf("missing no_vendor_profile warning: %v", rec.Warnings)
	}
	if len(rec.Warnings) != 1 {
		t.Fatalf("expected no warnings beyond no_vendor_profile: %v", rec.Warnings)
	}
	if rec.Make != "UnknownCo" || rec.Model != "Prototype" {
		t.Fatalf("identity fields must survive: %q / %q", rec.Make, rec.Model)
	}
}

func TestExtract_NoMatchingTags(t *testing.T) {
	meta := record.RawMetadata{"Make": "Canon", "Model": "EOS R6"}
	rec := Extract("a.cr3", meta, testProfile())

	if rec.ShutterCount != nil || rec.Confidence != record.ConfidenceUnavailable {
		t.Fatalf("expected unavailable, got %+v", rec)
	}
}

func TestExtract_NeverNegative(t *testing.T) {
	meta := record.RawMetadata{
		"Make":                    "Canon",
		"MakerNotes:ShutterCount": float64(-5),
		"ImageCount":              float64(-1),
	}
	rec := Extract("a.cr2", meta, testProfile())

	if rec.ShutterCount != nil {
		t.Fatalf("negative raw values must never yield a count: %d", *rec.ShutterCount)
	}
}

func TestExtract_CollectsSecondaryCounters(t *testing.T) {
	meta := record.RawMetadata{
		"Make":                    "Canon",
		"MakerNotes:ShutterCount": float64(15342),
		"MakerNotes:ImageCount":   float64(15000),
	}
	rec := Extract("a.cr2", meta, testProfile())

	if rec.Secondary["MakerNotes:ImageCount"] != 15000 {
		t.Fatalf("secondary counters = %v", rec.Secondary)
	}
}

func TestExtract_SecondarySkipsSourceTag(t *testing.T) {
	prof := testProfile()
	prof.PrimaryTags = []string{"ImageCount"}
	meta := record.RawMetadata{
		"Make":       "Canon",
		"ImageCount": float64(42),
	}
	rec := Extract("a.cr2", meta, prof)

	if _, ok := rec.Secondary["ImageCount"]; ok {
		t.Fatal("the tag that produced the count must not also cross-check it")
	}
}

func TestExtract_FileNumberFromTag(t *testing.T) {
	meta := record.RawMetadata{
		"Make":       "Canon",
		"FileNumber": float64(1234),
	}
	rec := Extract("a.cr2", meta, testProfile())

	if rec.FileNumber == nil || *rec.FileNumber != 1234 {
		t.Fatalf("file number = %v", rec.FileNumber)
	}
}

func TestExtract_FileNumberFromFilename(t *testing.T) {
	tests := []struct {
		path string
		want int64
		none bool
	}{
		{"/photos/IMG_1234.CR2", 1234, false},
		{"/photos/DSC_0042.NEF", 42, false},
		{"/photos/_MG_9001.CR2", 9001, false},
		{"/photos/vacation.jpg", 0, true},
	}
	for _, tt := range tests {
		rec := Extract(tt.path, record.RawMetadata{"Make": "Canon"}, testProfile())
		if tt.none {
			if rec.FileNumber != nil {
				t.Errorf("%s: file number = %d, want none", tt.path, *rec.FileNumber)
			}
			continue
		}
		if rec.FileNumber == nil || *rec.FileNumber != tt.want {
			t.Errorf("%s: file number = %v, want %d", tt.path, rec.FileNumber, tt.want)
		}
	}
}

func TestExtract_EditedSoftwareWarning(t *testing.T) {
	meta := record.RawMetadata{
		"Make":     "Canon",
		"Software": "Adobe Lightroom Classic 13.2",
	}
	rec := Extract("a.jpg", meta, testProfile())

	if !rec.HasWarning(record.WarnEditedSoftware) {
		t.Fatalf("missing edited_software warning: %v", rec.Warnings)
	}
}

func TestExtract_CameraFirmwareIsNotAnEditor(t *testing.T) {
	meta := record.RawMetadata{
		"Make":     "Canon",
		"Software": "Firmware Version 1.8.1",
	}
	rec := Extract("a.jpg", meta, testProfile())

	if rec.HasWarning(record.WarnEditedSoftware) {
		t.Fatalf("firmware string misflagged as editor: %v", rec.Warnings)
	}
}

func TestExtract_FileTypeMismatch(t *testing.T) {
	meta := record.RawMetadata{
		"Make":          "Canon",
		"File:FileType": "PNG",
	}
	rec := Extract("fake.cr2", meta, testProfile())

	if !rec.HasWarning(record.WarnFileTypeMismatch) {
		t.Fatalf("missing file_type_mismatch warning: %v", rec.Warnings)
	}

	genuine := record.RawMetadata{
		"Make":          "Canon",
		"File:FileType": "CR2",
	}
	rec = Extract("real.cr2", genuine, testProfile())
	if rec.HasWarning(record.WarnFileTypeMismatch) {
		t.Fatalf("genuine file misflagged: %v", rec.Warnings)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int64
		wantOK bool
	}{
		{"float64 whole", float64(15342), 15342, true},
		{"float64 fractional", float64(1.5), 0, false},
		{"float64 negative", float64(-1), 0, false},
		{"int", int(7), 7, true},
		{"int64", int64(9), 9, true},
		{"int negative", int(-7), 0, false},
		{"string number", "15342", 15342, true},
		{"string padded", "  42 ", 42, true},
		{"string negative", "-1", 0, false},
		{"string junk", "n/a", 0, false},
		{"empty string", "", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCount(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("ParseCount(%v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
