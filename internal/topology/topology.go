// Package topology builds the derived wire graph of a schematic: wires split
// at their meeting points, a node/edge graph with per-axis degrees, maximal
// straight wire paths (SWPs), the mapping of embedded two-pin components onto
// SWPs, and the auto-detected junction dots. Everything here is a derived
// view, recomputed in full on every rebuild; only manual junctions pass
// through untouched.
package topology

import (
	"wire-topology/internal/schematic"
	"wire-topology/pkg/geometry"
)

// ColorMixed is the SWP color when the contributing wires disagree.
const ColorMixed = "mixed"

// DefaultTolerance is the coincidence tolerance for component-to-SWP mapping.
const DefaultTolerance = 0.5

// Options configures a rebuild.
type Options struct {
	// Tolerance is the snap distance for pin-on-SWP tests.
	Tolerance float64
	// NetClasses styles newly detected junctions; nil means defaults.
	NetClasses schematic.NetClassLookup
}

// DefaultOptions returns the standard rebuild configuration.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance}
}

// AxisDegree counts, per axis, how many axis-aligned edge endpoints touch a
// node. A straight run continues through a node only while the degree on the
// run's axis is exactly 2.
type AxisDegree struct {
	X int
	Y int
}

// On returns the degree along the given axis.
func (d AxisDegree) On(axis geometry.Axis) int {
	switch axis {
	case geometry.AxisX:
		return d.X
	case geometry.AxisY:
		return d.Y
	default:
		return 0
	}
}

// Node is a distinct integer coordinate touched by at least one edge.
type Node struct {
	Key     geometry.PointInt
	EdgeIDs []string
	Degree  AxisDegree
}

// Edge is one axis-aligned sub-segment of a wire after splitting, or a
// synthetic bridge between the two pins of an embedded component.
type Edge struct {
	ID           string
	WireID       string // empty for bridge edges
	SegmentIndex int
	A, B         geometry.Point2D
	Axis         geometry.Axis
	AKey, BKey   geometry.PointInt
	ComponentID  string // set only for bridge edges
}

// Bridge reports whether the edge is a synthetic component bridge.
func (e *Edge) Bridge() bool {
	return e.ComponentID != ""
}

// OtherKey returns the edge endpoint opposite to key.
func (e *Edge) OtherKey(key geometry.PointInt) geometry.PointInt {
	if e.AKey == key {
		return e.BKey
	}
	return e.AKey
}

// SWP is a straight wire path: a maximal same-axis run of edges whose
// interior nodes pass straight through. It can span several wire objects and
// lets an embedded two-pin component slide along the run without conceptually
// breaking the wire.
type SWP struct {
	ID    string
	Axis  geometry.Axis
	Start geometry.Point2D
	End   geometry.Point2D
	// Color is the common color of the contributing wires, or ColorMixed.
	Color             string
	EdgeWireIDs       []string
	EdgeIndicesByWire map[string][]int
}

// ContainsPoint reports whether p lies on the SWP's axis line within its
// span, with tolerance.
func (s *SWP) ContainsPoint(p geometry.Point2D, tol float64) bool {
	switch s.Axis {
	case geometry.AxisX:
		if p.Y < s.Start.Y-tol || p.Y > s.Start.Y+tol {
			return false
		}
		lo, hi := s.Start.X, s.End.X
		if lo > hi {
			lo, hi = hi, lo
		}
		return p.X >= lo-tol && p.X <= hi+tol
	case geometry.AxisY:
		if p.X < s.Start.X-tol || p.X > s.Start.X+tol {
			return false
		}
		lo, hi := s.Start.Y, s.End.Y
		if lo > hi {
			lo, hi = hi, lo
		}
		return p.Y >= lo-tol && p.Y <= hi+tol
	default:
		return false
	}
}

// Result is the rebuilt topology. Wires passed to Rebuild are mutated in
// place (split points inserted); junctions are returned as the new full set,
// manual ones preserved verbatim.
type Result struct {
	Nodes     map[geometry.PointInt]*Node
	Edges     map[string]*Edge
	SWPs      []*SWP
	CompToSWP map[string]string
	Junctions []*schematic.Junction

	edgeOrder []string
}

// SWPByID returns the SWP with the given id, or nil.
func (r *Result) SWPByID(id string) *SWP {
	for _, s := range r.SWPs {
		if s.ID == id {
			return s
		}
	}
	return nil
}
