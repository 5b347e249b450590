package router

import (
	"wire-topology/pkg/geometry"
)

// HitKind identifies what a hit test found, ordered by precision: a pin is a
// more deliberate target than a junction, a junction than a wire endpoint,
// and so on. Ties in distance resolve by this order.
type HitKind int

const (
	// HitNone means nothing was within tolerance.
	HitNone HitKind = iota
	// HitPin is a component pin.
	HitPin
	// HitJunction is an explicit junction marker.
	HitJunction
	// HitEndpoint is a wire's start or end point.
	HitEndpoint
	// HitCorner is an interior vertex of a wire polyline.
	HitCorner
	// HitSegment is the body of a wire segment.
	HitSegment
)

func (k HitKind) String() string {
	switch k {
	case HitPin:
		return "Pin"
	case HitJunction:
		return "Junction"
	case HitEndpoint:
		return "Endpoint"
	case HitCorner:
		return "Corner"
	case HitSegment:
		return "Segment"
	default:
		return "None"
	}
}

// kindPriority ranks hit kinds for tie-breaking; lower wins.
func kindPriority(k HitKind) int {
	switch k {
	case HitPin:
		return 0
	case HitJunction:
		return 1
	case HitEndpoint:
		return 2
	case HitCorner:
		return 3
	case HitSegment:
		return 4
	default:
		return 5
	}
}

// Hit describes the best target found near a query point. At is the
// target's own position; for a segment hit it is the closest point on the
// segment body, so callers can snap to the wire.
type Hit struct {
	Kind     HitKind
	Distance float64
	At       geometry.Point2D

	PinID        string
	JunctionID   string
	WireID       string
	PointIndex   int // for endpoints and corners
	SegmentIndex int // for segments
}

// HitTest finds the closest target within tolerance of p. When two
// candidates are equally distant the more precise kind wins
// (pin < junction < endpoint < corner < segment), so the result does not
// depend on collection iteration order. tolerance <= 0 uses the router's
// configured tolerance.
func (r *Router) HitTest(p geometry.Point2D, tolerance float64) Hit {
	tol := tolerance
	if tol <= 0 {
		tol = r.opts.Tolerance
	}

	best := Hit{Kind: HitNone}
	consider := func(h Hit) {
		if h.Distance > tol {
			return
		}
		if best.Kind == HitNone ||
			h.Distance < best.Distance ||
			(h.Distance == best.Distance && kindPriority(h.Kind) < kindPriority(best.Kind)) {
			best = h
		}
	}

	for _, pin := range r.doc.Pins() {
		consider(Hit{Kind: HitPin, Distance: p.Distance(pin.At), At: pin.At, PinID: pin.ID})
	}
	for _, j := range r.doc.Junctions {
		consider(Hit{Kind: HitJunction, Distance: p.Distance(j.At), At: j.At, JunctionID: j.ID})
	}
	for _, w := range r.doc.Wires {
		if len(w.Points) < 2 {
			continue
		}
		// Bounds prefilter keeps the segment scan cheap on big sheets
		if !w.Bounds().Expand(tol).Contains(p) {
			continue
		}
		start, end := w.EndpointIndexes()
		for _, idx := range []int{start, end} {
			consider(Hit{
				Kind:       HitEndpoint,
				Distance:   p.Distance(w.Points[idx]),
				At:         w.Points[idx],
				WireID:     w.ID,
				PointIndex: idx,
			})
		}
		for i := 1; i < len(w.Points)-1; i++ {
			consider(Hit{
				Kind:       HitCorner,
				Distance:   p.Distance(w.Points[i]),
				At:         w.Points[i],
				WireID:     w.ID,
				PointIndex: i,
			})
		}
		for i := 0; i < w.SegmentCount(); i++ {
			a, b := w.Segment(i)
			d, _ := geometry.PointToSegmentDistance(p, a, b)
			consider(Hit{
				Kind:         HitSegment,
				Distance:     d,
				At:           projectOntoSegment(p, a, b),
				WireID:       w.ID,
				SegmentIndex: i,
			})
		}
	}
	return best
}
