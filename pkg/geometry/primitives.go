package geometry

import (
	"math"
)

// EpsExact is the epsilon for exact-snap comparisons, where coordinates are
// expected to already sit on the grid. Fuzzy comparisons (connection
// tolerance) use a caller-supplied value instead; the two must not be mixed.
const EpsExact = 1e-6

// Axis identifies the orientation of an axis-aligned segment.
type Axis int

const (
	// AxisNone marks a diagonal or degenerate segment.
	AxisNone Axis = iota
	// AxisX marks a horizontal segment (constant Y).
	AxisX
	// AxisY marks a vertical segment (constant X).
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "horizontal"
	case AxisY:
		return "vertical"
	default:
		return "none"
	}
}

// Perpendicular returns the other axis, or AxisNone for AxisNone.
func (a Axis) Perpendicular() Axis {
	switch a {
	case AxisX:
		return AxisY
	case AxisY:
		return AxisX
	default:
		return AxisNone
	}
}

// SegmentAxis classifies the segment a-b. A zero-length or diagonal segment
// is AxisNone.
func SegmentAxis(a, b Point2D) Axis {
	dx := math.Abs(a.X - b.X)
	dy := math.Abs(a.Y - b.Y)
	if dx <= EpsExact && dy <= EpsExact {
		return AxisNone
	}
	if dy <= EpsExact {
		return AxisX
	}
	if dx <= EpsExact {
		return AxisY
	}
	return AxisNone
}

// PointsEqual reports whether two points coincide within eps on both axes.
func PointsEqual(a, b Point2D, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// PointToSegmentDistance returns the minimum distance from p to the segment
// a-b, and whether the perpendicular foot of p lands within the segment
// (not just near an extension of it). A zero-length segment is treated as a
// point target with onSegment=false.
func PointToSegmentDistance(p, a, b Point2D) (distance float64, onSegment bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y

	if dx == 0 && dy == 0 {
		return p.Distance(a), false
	}

	// Parameter t of the closest point on the infinite line
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / (dx*dx + dy*dy)
	onSegment = t >= 0 && t <= 1

	// Clamp to the segment
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := Point2D{X: a.X + t*dx, Y: a.Y + t*dy}
	return p.Distance(closest), onSegment
}

// NormalizePolyline collapses consecutive duplicate points. If removeCollinear
// is set, it also removes interior points that sit on a straight axis-aligned
// run through their neighbors, repeating until no more removals apply
// (a removal can expose a new collinear triple). Each pass strictly shrinks
// the point count, so the loop terminates.
func NormalizePolyline(points []Point2D, removeCollinear bool) []Point2D {
	if len(points) == 0 {
		return nil
	}

	out := make([]Point2D, 0, len(points))
	out = append(out, points[0])
	for _, p := range points[1:] {
		if !PointsEqual(p, out[len(out)-1], EpsExact) {
			out = append(out, p)
		}
	}

	if !removeCollinear {
		return out
	}

	for {
		removed := false
		for i := 1; i < len(out)-1; i++ {
			a, b, c := out[i-1], out[i], out[i+1]
			sameX := math.Abs(a.X-b.X) <= EpsExact && math.Abs(b.X-c.X) <= EpsExact
			sameY := math.Abs(a.Y-b.Y) <= EpsExact && math.Abs(b.Y-c.Y) <= EpsExact
			if sameX || sameY {
				out = append(out[:i], out[i+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			return out
		}
	}
}

// AxisAlignedIntersection returns the intersection point of two axis-aligned
// segments, if they intersect in exactly one point. Parallel, collinear
// (overlapping), diagonal, and disjoint segment pairs return ok=false.
func AxisAlignedIntersection(a1, a2, b1, b2 Point2D) (Point2D, bool) {
	axisA := SegmentAxis(a1, a2)
	axisB := SegmentAxis(b1, b2)
	if axisA == AxisNone || axisB == AxisNone || axisA == axisB {
		return Point2D{}, false
	}

	// Make a the horizontal segment
	if axisA == AxisY {
		a1, a2, b1, b2 = b1, b2, a1, a2
	}

	y := a1.Y
	x := b1.X
	minAX := math.Min(a1.X, a2.X)
	maxAX := math.Max(a1.X, a2.X)
	minBY := math.Min(b1.Y, b2.Y)
	maxBY := math.Max(b1.Y, b2.Y)

	if x < minAX-EpsExact || x > maxAX+EpsExact {
		return Point2D{}, false
	}
	if y < minBY-EpsExact || y > maxBY+EpsExact {
		return Point2D{}, false
	}
	return Point2D{X: x, Y: y}, true
}

// PointOnOpenSegment reports whether p lies strictly inside the axis-aligned
// segment a-b, excluding both endpoints. Used by the topology builder's
// T-junction detection, which works on integer-rounded coordinates.
func PointOnOpenSegment(p, a, b Point2D) bool {
	switch SegmentAxis(a, b) {
	case AxisX:
		if math.Abs(p.Y-a.Y) > EpsExact {
			return false
		}
		lo := math.Min(a.X, b.X)
		hi := math.Max(a.X, b.X)
		return p.X > lo+EpsExact && p.X < hi-EpsExact
	case AxisY:
		if math.Abs(p.X-a.X) > EpsExact {
			return false
		}
		lo := math.Min(a.Y, b.Y)
		hi := math.Max(a.Y, b.Y)
		return p.Y > lo+EpsExact && p.Y < hi-EpsExact
	default:
		return false
	}
}

// Collinear reports whether three points lie on one straight line within eps,
// in any direction (not just axis-aligned).
func Collinear(a, b, c Point2D, eps float64) bool {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	return math.Abs(cross) <= eps*(a.Distance(c)+1)
}
