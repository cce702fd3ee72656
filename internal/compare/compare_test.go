package compare

import (
	"testing"

	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
)

func canonRecord(count int64) record.ShutterRecord {
	return record.ShutterRecord{
		Make:         "Canon",
		Model:        "EOS 5D Mark IV",
		ShutterCount: record.Int64(count),
		Confidence:   record.ConfidenceExact,
	}
}

func TestCompare_IncreasingCount(t *testing.T) {
	res := Compare(canonRecord(1000), canonRecord(1500))

	if res.Delta == nil || *res.Delta != 500 {
		t.Fatalf("delta = %v, want 500", res.Delta)
	}
	if !res.SameMake {
		t.Fatal("expected same make")
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestCompare_IdenticalCounts(t *testing.T) {
	res := Compare(canonRecord(1000), canonRecord(1000))

	if res.Delta == nil || *res.Delta != 0 {
		t.Fatalf("delta = %v, want 0", res.Delta)
	}
	if res.HasWarning(record.WarnDecreasingCount) {
		t.Fatalf("zero delta is not decreasing: %v", res.Warnings)
	}
}

func TestCompare_DecreasingCount(t *testing.T) {
	res := Compare(canonRecord(1500), canonRecord(1000))

	if res.Delta == nil || *res.Delta != -500 {
		t.Fatalf("delta = %v, want -500", res.Delta)
	}
	if !res.HasWarning(record.WarnDecreasingCount) {
		t.Fatalf("missing decreasing_count: %v", res.Warnings)
	}
}

func TestCompare_DeltaAntisymmetric(t *testing.T) {
	ab := Compare(canonRecord(1000), canonRecord(1500))
	ba := Compare(canonRecord(1500), canonRecord(1000))

	if ab.Delta == nil || ba.Delta == nil {
		t.Fatal("expected deltas on both directions")
	}
	if *ab.Delta != -*ba.Delta {
		t.Fatalf("deltas not antisymmetric: %d vs %d", *ab.Delta, *ba.Delta)
	}
}

func TestCompare_IncompleteData(t *testing.T) {
	unavailable := record.ShutterRecord{
		Make:       "Canon",
		Confidence: record.ConfidenceUnavailable,
	}
	res := Compare(canonRecord(1000), unavailable)

	if res.Delta != nil {
		t.Fatalf("delta = %v, want nil", res.Delta)
	}
	if !res.HasWarning(record.WarnIncompleteData) {
		t.Fatalf("missing incomplete_data: %v", res.Warnings)
	}
}

func TestCompare_CrossVendor(t *testing.T) {
	nikon := record.ShutterRecord{
		Make:         "NIKON CORPORATION",
		ShutterCount: record.Int64(2000),
		Confidence:   record.ConfidenceExact,
	}
	res := Compare(canonRecord(1000), nikon)

	if res.SameMake {
		t.Fatal("expected different makes")
	}
	if !res.HasWarning(record.WarnCrossVendor) {
		t.Fatalf("missing cross_vendor_comparison: %v", res.Warnings)
	}
	// The arithmetic still happens; the warning carries the caveat.
	if res.Delta == nil || *res.Delta != 1000 {
		t.Fatalf("delta = %v, want 1000", res.Delta)
	}
}

func TestCompare_MakeComparisonIsCaseInsensitive(t *testing.T) {
	a := canonRecord(1000)
	b := canonRecord(1500)
	b.Make = "CANON"
	res := Compare(a, b)

	if !res.SameMake {
		t.Fatal("expected case-insensitive make match")
	}
	if res.HasWarning(record.WarnCrossVendor) {
		t.Fatalf("unexpected cross-vendor warning: %v", res.Warnings)
	}
}

func TestCompare_MissingMakeIsNotCrossVendor(t *testing.T) {
	a := canonRecord(1000)
	a.Make = ""
	res := Compare(a, canonRecord(1500))

	if res.SameMake {
		t.Fatal("missing make cannot count as same make")
	}
	if res.HasWarning(record.WarnCrossVendor) {
		t.Fatalf("missing make is inconclusive, not cross-vendor: %v", res.Warnings)
	}
}

func TestCompare_SerialMismatch(t *testing.T) {
	a := canonRecord(1000)
	a.SerialNumber = "123456"
	b := canonRecord(1500)
	b.SerialNumber = "654321"
	res := Compare(a, b)

	if !res.HasWarning(record.WarnSerialMismatch) {
		t.Fatalf("missing serial_mismatch: %v", res.Warnings)
	}

	b.SerialNumber = "123456"
	res = Compare(a, b)
	if res.HasWarning(record.WarnSerialMismatch) {
		t.Fatalf("matching serials misflagged: %v", res.Warnings)
	}

	b.SerialNumber = ""
	res = Compare(a, b)
	if res.HasWarning(record.WarnSerialMismatch) {
		t.Fatalf("a missing serial is inconclusive: %v", res.Warnings)
	}
}

func TestCompare_FirmwareMismatch(t *testing.T) {
	a := canonRecord(1000)
	a.Firmware = "1.2.0"
	b := canonRecord(1500)
	b.Firmware = "1.4.0"
	res := Compare(a, b)

	if !res.HasWarning(record.WarnFirmwareMismatch) {
		t.Fatalf("missing firmware_mismatch: %v", res.Warnings)
	}

	b.Firmware = "1.2.0"
	res = Compare(a, b)
	if res.HasWarning(record.WarnFirmwareMismatch) {
		t.Fatalf("matching firmware misflagged: %v", res.Warnings)
	}

	b.Firmware = ""
	res = Compare(a, b)
	if res.HasWarning(record.WarnFirmwareMismatch) {
		t.Fatalf("missing firmware is inconclusive: %v", res.Warnings)
	}
}

func TestCompare_TimeOrderReversed(t *testing.T) {
	a := canonRecord(1000)
	a.DateTimeOriginal = "2024:03:10 14:30:00"
	b := canonRecord(1500)
	b.DateTimeOriginal = "2024:01:05 09:00:00"
	res := Compare(a, b)

	if !res.HasWarning(record.WarnTimeOrderReversed) {
		t.Fatalf("missing time_order_reversed: %v", res.Warnings)
	}

	b.DateTimeOriginal = "2024:05:01 10:00:00"
	res = Compare(a, b)
	if res.HasWarning(record.WarnTimeOrderReversed) {
		t.Fatalf("forward time order misflagged: %v", res.Warnings)
	}
}

func TestCompare_TimestampVariants(t *testing.T) {
	a := canonRecord(1000)
	a.DateTimeOriginal = "2024:03:10 14:30:00.25+02:00"
	b := canonRecord(1500)
	b.DateTimeOriginal = "2024:03:10 14:29:00"
	res := Compare(a, b)

	if !res.HasWarning(record.WarnTimeOrderReversed) {
		t.Fatalf("subsecond/zone suffixes must not break parsing: %v", res.Warnings)
	}

	// Unparseable timestamps are ignored entirely.
	b.DateTimeOriginal = "not a time"
	res = Compare(a, b)
	if res.HasWarning(record.WarnTimeOrderReversed) {
		t.Fatalf("unparseable timestamp misflagged: %v", res.Warnings)
	}
}

func TestCompare_FileNumberOrderReversed(t *testing.T) {
	a := canonRecord(1000)
	a.FileNumber = record.Int64(5000)
	b := canonRecord(1500)
	b.FileNumber = record.Int64(100)
	res := Compare(a, b)

	if !res.HasWarning(record.WarnFileNumberReversed) {
		t.Fatalf("missing file_number_order_reversed: %v", res.Warnings)
	}

	b.FileNumber = record.Int64(5001)
	res = Compare(a, b)
	if res.HasWarning(record.WarnFileNumberReversed) {
		t.Fatalf("forward file numbers misflagged: %v", res.Warnings)
	}

	b.FileNumber = nil
	res = Compare(a, b)
	if res.HasWarning(record.WarnFileNumberReversed) {
		t.Fatalf("missing file number is inconclusive: %v", res.Warnings)
	}
}

func TestCompare_NeverMutatesInputs(t *testing.T) {
	a := canonRecord(1500)
	b := canonRecord(1000)
	before := *a.ShutterCount

	Compare(a, b)

	if *a.ShutterCount != before {
		t.Fatal("inputs must not change")
	}
}
