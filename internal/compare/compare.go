// Package compare derives the actuation delta between two normalized
// records and flags the anomalies a buyer checking a seller's files
// cares about. Compare never fails: every questionable situation becomes
// a warning on the result.
package compare

import (
	"strings"
	"time"

	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
)

// exifTimeLayout is the capture timestamp format exiftool reports.
const exifTimeLayout = "2006:01:02 15:04:05"

// Compare produces the comparison of two records, first taken as the
// baseline. The delta is materialized only when both records carry a
// usable count; a negative delta signals swapped file order or a board
// replacement, not an internal bug.
func Compare(first, second record.ShutterRecord) record.ComparisonResult {
	res := record.ComparisonResult{
		First:  first,
		Second: second,
	}

	res.SameMake = first.Make != "" && strings.EqualFold(first.Make, second.Make)
	if first.Make != "" && second.Make != "" && !res.SameMake {
		// Absolute counts are not meaningfully comparable across camera
		// lines; the delta is still computed below when both exist.
		res.AddWarning(record.WarnCrossVendor)
	}

	if first.Usable() && second.Usable() {
		delta := *second.ShutterCount - *first.ShutterCount
		res.Delta = record.Int64(delta)
		if delta < 0 {
			res.AddWarning(record.WarnDecreasingCount)
		}
	} else {
		res.AddWarning(record.WarnIncompleteData)
	}

	if first.SerialNumber != "" && second.SerialNumber != "" &&
		first.SerialNumber != second.SerialNumber {
		res.AddWarning(record.WarnSerialMismatch)
	}

	// Differing firmware is a soft signal: the body may have been
	// updated between shots, or the files come from two cameras.
	if first.Firmware != "" && second.Firmware != "" &&
		first.Firmware != second.Firmware {
		res.AddWarning(record.WarnFirmwareMismatch)
	}

	if reversedCaptureTime(first.DateTimeOriginal, second.DateTimeOriginal) {
		res.AddWarning(record.WarnTimeOrderReversed)
	}

	// File numbers reset with the memory card, so this is a soft signal.
	if first.FileNumber != nil && second.FileNumber != nil &&
		*second.FileNumber < *first.FileNumber {
		res.AddWarning(record.WarnFileNumberReversed)
	}

	return res
}

// reversedCaptureTime reports whether the second capture timestamp is
// strictly before the first. Unparseable or missing timestamps are
// ignored.
func reversedCaptureTime(first, second string) bool {
	t1, ok1 := parseExifTime(first)
	t2, ok2 := parseExifTime(second)
	return ok1 && ok2 && t2.Before(t1)
}

func parseExifTime(s string) (time.Time, bool) {
	// Strip subseconds and zone offsets: "2024:01:15 14:30:00.25+02:00".
	s, _, _ = strings.Cut(s, ".")
	s, _, _ = strings.Cut(s, "+")
	t, err := time.Parse(exifTimeLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
