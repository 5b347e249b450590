package schematic

import (
	"wire-topology/pkg/colorutil"
)

// NetClass carries the visual style a net imposes on its junction dots.
type NetClass struct {
	Name         string  `json:"name"`
	JunctionSize float64 `json:"junction_size"`
	Color        string  `json:"color"`
}

// DefaultNetClass is the style used when no net class is registered for a
// net id.
func DefaultNetClass() NetClass {
	return NetClass{
		Name:         "default",
		JunctionSize: 4,
		Color:        colorutil.Black,
	}
}

// NetClassLookup resolves a net id to its class. nil lookups and unknown ids
// both fall back to DefaultNetClass.
type NetClassLookup func(netID string) (NetClass, bool)

// ResolveNetClass applies the fallback rule for a possibly-nil lookup.
func ResolveNetClass(lookup NetClassLookup, netID string) NetClass {
	if lookup != nil {
		if nc, ok := lookup(netID); ok {
			return nc
		}
	}
	return DefaultNetClass()
}
