// Package validate sanity-checks an extracted ShutterRecord against the
// vendor profile's plausibility bounds and the secondary counters. Every
// check either downgrades confidence or attaches a warning; none of them
// errors out, and a record is never made more certain than the extractor
// left it.
package validate

import (
	"github.com/jabrailkhalil/photoshutterinspector/internal/camera"
	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
)

// Validate returns a possibly-downgraded copy of rec. It is idempotent:
// validating an already-validated record yields the same record. The
// source tag survives downgrades so the report can show what was tried.
func Validate(rec record.ShutterRecord, prof *camera.Profile) record.ShutterRecord {
	if prof == nil || rec.ShutterCount == nil {
		return rec
	}
	count := *rec.ShutterCount

	// 1. Bounds: a count outside the vendor's plausible range is noise,
	// not data.
	if count < prof.MinCount || (prof.MaxCount > 0 && count > prof.MaxCount) {
		rec.Downgrade(record.WarnOutOfBounds)
		return rec
	}

	secondary, hasSecondary := largestSecondary(rec.Secondary)

	// 2. Cross-check: some cameras reset secondary counters, so a count
	// below the image counter is reported, not rejected.
	if hasSecondary && count < secondary {
		rec.AddWarning(record.WarnCountBelowSecondary)
	}

	// 3. Unit sanity, heuristic values only: a derived count more than an
	// order of magnitude away from the secondary counter means the
	// transform does not fit this model.
	if rec.Confidence == record.ConfidenceHeuristic && hasSecondary && secondary > 0 {
		if count > secondary*10 || count*10 < secondary {
			rec.Downgrade(record.WarnUnitMismatch)
		}
	}

	return rec
}

func largestSecondary(values map[string]int64) (int64, bool) {
	var max int64
	found := false
	for _, v := range values {
		if !found || v > max {
			max = v
			found = true
		}
	}
	return max, found
}
