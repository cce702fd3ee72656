package camera

import (
	"strings"

	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
)

// makeTags are the canonical make/model keys present in virtually every
// format exiftool understands.
var (
	makeTags  = []string{"Make", "EXIF:Make"}
	modelTags = []string{"Model", "EXIF:Model", "Camera Model Name"}
)

// Identity reads the camera make and model from a metadata map. Either
// value may be empty.
func Identity(meta record.RawMetadata) (make_, model string) {
	make_, _ = meta.LookupString(makeTags...)
	model, _ = meta.LookupString(modelTags...)
	return make_, model
}

// Resolve inspects the metadata map and returns the vendor profile whose
// make patterns match the file's Make tag. The second return value is
// false when no registered vendor matches; callers must treat that as
// "no shutter-count tag is known for this camera", not as an error.
func (r *Registry) Resolve(meta record.RawMetadata) (Profile, bool) {
	makeValue, ok := meta.LookupString(makeTags...)
	if !ok {
		return Profile{}, false
	}
	needle := strings.ToLower(makeValue)
	for _, p := range r.profiles {
		for _, pattern := range p.MakeMatch {
			if strings.Contains(needle, pattern) {
				logf("", "resolved make %q to vendor %s", makeValue, p.Vendor)
				return p, true
			}
		}
	}
	logf("", "no vendor profile for make %q", makeValue)
	return Profile{}, false
}
