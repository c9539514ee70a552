package periph

import (
	"fmt"
	"sort"
	"strings"
)

// Capability identifies one optional peripheral subsystem that a deployment
// may carry. The set of capabilities is fixed at daemon construction.
type Capability string

const (
	CapDisplay         Capability = "display"
	CapRGB             Capability = "rgb"
	CapFan             Capability = "fan"
	CapPowerSupervisor Capability = "power-supervisor"
)

var known = map[Capability]struct{}{
	CapDisplay:         {},
	CapRGB:             {},
	CapFan:             {},
	CapPowerSupervisor: {},
}

// ParseCapability normalizes and validates a capability tag.
func ParseCapability(value string) (Capability, bool) {
	tag := Capability(strings.ToLower(strings.TrimSpace(value)))
	_, ok := known[tag]
	return tag, ok
}

// Set is an immutable collection of capability tags. Construct one with
// NewSet or ParseSet and do not mutate it afterwards.
type Set map[Capability]struct{}

// NewSet builds a Set from known capability tags.
func NewSet(caps ...Capability) Set {
	s := make(Set, len(caps))
	for _, c := range caps {
		if _, ok := known[c]; ok {
			s[c] = struct{}{}
		}
	}
	return s
}

// ParseSet builds a Set from raw tag strings, rejecting unknown tags.
func ParseSet(values []string) (Set, error) {
	s := make(Set, len(values))
	var unknownTags []string
	for _, v := range values {
		tag, ok := ParseCapability(v)
		if !ok {
			unknownTags = append(unknownTags, strings.TrimSpace(v))
			continue
		}
		s[tag] = struct{}{}
	}
	if len(unknownTags) > 0 {
		return nil, fmt.Errorf("unknown peripheral tags: %s", strings.Join(unknownTags, ", "))
	}
	return s, nil
}

// Has reports whether the capability is present.
func (s Set) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List returns the capabilities in a stable order.
func (s Set) List() []Capability {
	out := make([]Capability, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the capabilities as plain strings in a stable order.
func (s Set) Strings() []string {
	caps := s.List()
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = string(c)
	}
	return out
}
