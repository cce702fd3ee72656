// Package camera holds the static vendor registry: which maker-note
// tags encode the shutter count for each manufacturer, in what priority
// order, and what value range is plausible. The registry is data-driven
// (profiles.yaml, embedded at build time) so supporting a new camera
// line never requires code changes.
package camera

import (
	_ "embed"
	"fmt"

	yaml "go.yaml.in/yaml/v3"
)

//go:embed profiles.yaml
var profilesYAML []byte

// Heuristic describes how a secondary counter tag is turned into an
// approximate actuation count when no primary tag is present.
type Heuristic struct {
	Tag    string `yaml:"tag"`
	Scale  int64  `yaml:"scale"`
	Offset int64  `yaml:"offset"`
}

// Apply transforms a raw counter value into an actuation count.
func (h Heuristic) Apply(v int64) int64 {
	scale := h.Scale
	if scale == 0 {
		scale = 1
	}
	return v*scale + h.Offset
}

// Profile identifies a camera manufacturer and the ordered tag lists to
// probe for its shutter count. Profiles are read-only after Load and are
// safe to share across workers.
type Profile struct {
	Vendor string `yaml:"vendor"`

	// MakeMatch holds lowercase substrings matched against the Make tag.
	MakeMatch []string `yaml:"make_match"`

	// PrimaryTags are probed first-match-wins; a hit is confidence exact.
	PrimaryTags []string `yaml:"primary_tags"`

	// SecondaryTags are collected for cross-validation only.
	SecondaryTags []string `yaml:"secondary_tags"`

	// Heuristics are fallbacks yielding confidence heuristic.
	Heuristics []Heuristic `yaml:"heuristics"`

	// Plausible count bounds, inclusive.
	MinCount int64 `yaml:"min_count"`
	MaxCount int64 `yaml:"max_count"`
}

type registryFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// Registry is the set of known vendor profiles.
type Registry struct {
	profiles []Profile
}

// Load parses a YAML registry document.
func Load(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing vendor profiles: %w", err)
	}
	if len(file.Profiles) == 0 {
		return nil, fmt.Errorf("vendor profile registry is empty")
	}
	for _, p := range file.Profiles {
		if p.Vendor == "" {
			return nil, fmt.Errorf("vendor profile without a vendor name")
		}
		if len(p.MakeMatch) == 0 {
			return nil, fmt.Errorf("vendor profile %q has no make_match patterns", p.Vendor)
		}
		if len(p.PrimaryTags) == 0 {
			return nil, fmt.Errorf("vendor profile %q has no primary tags", p.Vendor)
		}
	}
	return &Registry{profiles: file.Profiles}, nil
}

// Default returns the built-in registry. It panics on a malformed
// embedded document, which is a build defect rather than a runtime
// condition.
func Default() *Registry {
	reg, err := Load(profilesYAML)
	if err != nil {
		panic(err)
	}
	return reg
}

// Profiles returns the registered profiles in declaration order.
func (r *Registry) Profiles() []Profile { return r.profiles }
