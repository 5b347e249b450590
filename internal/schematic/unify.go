package schematic

import (
	"wire-topology/pkg/geometry"
)

// CanUnify reports whether two wires can be merged into a single straight
// polyline: both straight, on the same net, sharing an endpoint within
// tolerance, and collinear with each other. Wires on different nets never
// unify, even when geometrically collinear.
func CanUnify(a, b *Wire, tolerance float64) bool {
	if a == nil || b == nil || a.ID == b.ID {
		return false
	}
	if a.NetID != b.NetID {
		return false
	}
	if !isStraight(a) || !isStraight(b) {
		return false
	}
	shared, _, _, ok := sharedEndpoint(a, b, tolerance)
	if !ok {
		return false
	}
	// Far ends must be collinear through the shared point
	fa := farEndpoint(a, shared, tolerance)
	fb := farEndpoint(b, shared, tolerance)
	return geometry.Collinear(fa, shared, fb, tolerance)
}

// UnifyWires merges two unifiable wires into one wire spanning the original
// extremes, preserving the common net id and a's color. Returns nil, false
// when the wires cannot be unified.
func UnifyWires(a, b *Wire, tolerance float64) (*Wire, bool) {
	if !CanUnify(a, b, tolerance) {
		return nil, false
	}
	shared, _, _, _ := sharedEndpoint(a, b, tolerance)
	fa := farEndpoint(a, shared, tolerance)
	fb := farEndpoint(b, shared, tolerance)

	merged := NewWire([]geometry.Point2D{fa, fb}, a.Color)
	merged.NetID = a.NetID
	merged.Source = SourceUnified
	merged.Normalize(true)
	if len(merged.Points) < 2 {
		return nil, false
	}
	return merged, true
}

// isStraight reports whether the whole polyline lies on one line.
func isStraight(w *Wire) bool {
	if len(w.Points) < 2 {
		return false
	}
	first := w.Points[0]
	last := w.Points[len(w.Points)-1]
	for _, p := range w.Points[1 : len(w.Points)-1] {
		if !geometry.Collinear(first, p, last, geometry.EpsExact) {
			return false
		}
	}
	return true
}

// sharedEndpoint finds a pair of coincident endpoints between a and b.
// Returns the shared position and the endpoint indexes on each wire.
func sharedEndpoint(a, b *Wire, tolerance float64) (geometry.Point2D, int, int, bool) {
	as, ae := a.EndpointIndexes()
	bs, be := b.EndpointIndexes()
	for _, ai := range []int{as, ae} {
		for _, bi := range []int{bs, be} {
			if geometry.PointsEqual(a.Points[ai], b.Points[bi], tolerance) {
				return a.Points[ai], ai, bi, true
			}
		}
	}
	return geometry.Point2D{}, -1, -1, false
}

// farEndpoint returns the wire endpoint that is not the shared one.
func farEndpoint(w *Wire, shared geometry.Point2D, tolerance float64) geometry.Point2D {
	start := w.Points[0]
	end := w.Points[len(w.Points)-1]
	if geometry.PointsEqual(start, shared, tolerance) {
		return end
	}
	return start
}
