package router

import (
	"errors"
	"fmt"
	"math"

	"wire-topology/pkg/geometry"
)

// Sentinel errors for edit preconditions. All of them indicate a caller bug
// (stale id, inconsistent selection); the document is left untouched.
var (
	ErrWireNotFound    = errors.New("wire not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNotOrthogonal   = errors.New("segment is not orthogonal")
	ErrDegenerate      = errors.New("edit would collapse the wire")
)

// MoveWireEndpoint relocates one endpoint of a wire. For a two-point wire the
// endpoint simply moves; for longer wires the vertex next to the endpoint is
// adjusted so the end segment keeps its original axis (horizontal stays
// horizontal, vertical stays vertical). A diagonal end segment is never
// forced orthogonal.
func (r *Router) MoveWireEndpoint(wireID string, endpointIndex int, newPos geometry.Point2D) error {
	w := r.doc.Wire(wireID)
	if w == nil {
		return fmt.Errorf("move endpoint of %s: %w", wireID, ErrWireNotFound)
	}
	start, end := w.EndpointIndexes()
	if endpointIndex != start && endpointIndex != end {
		return fmt.Errorf("move endpoint %d of %s: %w", endpointIndex, wireID, ErrIndexOutOfRange)
	}

	snapped := r.snap(newPos)
	pts := append([]geometry.Point2D(nil), w.Points...)

	if len(pts) > 2 {
		adj := 1
		if endpointIndex == end {
			adj = len(pts) - 2
		}
		switch geometry.SegmentAxis(pts[endpointIndex], pts[adj]) {
		case geometry.AxisX:
			pts[adj].Y = snapped.Y
		case geometry.AxisY:
			pts[adj].X = snapped.X
		}
	}
	pts[endpointIndex] = snapped

	return r.commitWireEdit(wireID, pts)
}

// DragWireSegment shifts an axis-aligned segment perpendicular to its axis,
// to the cursor's coordinate on that perpendicular axis. Dragging a
// non-orthogonal segment is a precondition violation.
func (r *Router) DragWireSegment(wireID string, segmentIndex int, cursor geometry.Point2D) error {
	w := r.doc.Wire(wireID)
	if w == nil {
		return fmt.Errorf("drag segment of %s: %w", wireID, ErrWireNotFound)
	}
	if segmentIndex < 0 || segmentIndex >= w.SegmentCount() {
		return fmt.Errorf("drag segment %d of %s: %w", segmentIndex, wireID, ErrIndexOutOfRange)
	}

	a, b := w.Segment(segmentIndex)
	axis := geometry.SegmentAxis(a, b)
	if axis == geometry.AxisNone {
		return fmt.Errorf("drag segment %d of %s: %w", segmentIndex, wireID, ErrNotOrthogonal)
	}

	snapped := r.snap(cursor)
	pts := append([]geometry.Point2D(nil), w.Points...)
	if axis == geometry.AxisX {
		pts[segmentIndex].Y = snapped.Y
		pts[segmentIndex+1].Y = snapped.Y
	} else {
		pts[segmentIndex].X = snapped.X
		pts[segmentIndex+1].X = snapped.X
	}

	return r.commitWireEdit(wireID, pts)
}

// InsertCorner projects the cursor onto a segment and inserts the projected
// point as a new vertex. Landing exactly on an existing vertex inserts
// nothing and reports inserted=false. The new vertex survives later
// normalization even though it is collinear: it is an explicit split point.
func (r *Router) InsertCorner(wireID string, segmentIndex int, cursor geometry.Point2D) (inserted bool, err error) {
	w := r.doc.Wire(wireID)
	if w == nil {
		return false, fmt.Errorf("insert corner on %s: %w", wireID, ErrWireNotFound)
	}
	if segmentIndex < 0 || segmentIndex >= w.SegmentCount() {
		return false, fmt.Errorf("insert corner on segment %d of %s: %w", segmentIndex, wireID, ErrIndexOutOfRange)
	}

	a, b := w.Segment(segmentIndex)
	point := projectOntoSegment(r.snap(cursor), a, b)
	if geometry.PointsEqual(point, a, geometry.EpsExact) || geometry.PointsEqual(point, b, geometry.EpsExact) {
		return false, nil
	}

	pts := append([]geometry.Point2D(nil), w.Points[:segmentIndex+1]...)
	pts = append(pts, point)
	pts = append(pts, w.Points[segmentIndex+1:]...)

	if err := r.commitWireEdit(wireID, pts); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveCorner deletes an interior vertex when its neighbors share an x or y
// coordinate, so the polyline stays orthogonal. Endpoints and non-mergeable
// corners report removed=false.
func (r *Router) RemoveCorner(wireID string, pointIndex int) (removed bool, err error) {
	w := r.doc.Wire(wireID)
	if w == nil {
		return false, fmt.Errorf("remove corner on %s: %w", wireID, ErrWireNotFound)
	}
	if pointIndex < 0 || pointIndex >= len(w.Points) {
		return false, fmt.Errorf("remove corner %d of %s: %w", pointIndex, wireID, ErrIndexOutOfRange)
	}
	if pointIndex == 0 || pointIndex == len(w.Points)-1 {
		return false, nil
	}

	prev := w.Points[pointIndex-1]
	next := w.Points[pointIndex+1]
	sameX := math.Abs(prev.X-next.X) <= geometry.EpsExact
	sameY := math.Abs(prev.Y-next.Y) <= geometry.EpsExact
	if !sameX && !sameY {
		return false, nil
	}

	pts := append([]geometry.Point2D(nil), w.Points[:pointIndex]...)
	pts = append(pts, w.Points[pointIndex+1:]...)

	if err := r.commitWireEdit(wireID, pts); err != nil {
		return false, err
	}
	return true, nil
}

// commitWireEdit validates the edited polyline, swaps it in, and re-derives
// connectivity. On error the wire is unchanged.
func (r *Router) commitWireEdit(wireID string, pts []geometry.Point2D) error {
	normalized := geometry.NormalizePolyline(pts, false)
	if len(normalized) < 2 {
		return fmt.Errorf("edit wire %s: %w", wireID, ErrDegenerate)
	}
	w := r.doc.Wire(wireID)
	w.Points = normalized
	r.doc.WiresChanged()
	r.rebuildConnectivity()
	return nil
}

// projectOntoSegment clamps the projection of p onto the segment a-b to the
// segment's own span. A zero-length segment projects to a.
func projectOntoSegment(p, a, b geometry.Point2D) geometry.Point2D {
	d := b.Sub(a)
	lenSq := d.X*d.X + d.Y*d.Y
	if lenSq == 0 {
		return a
	}
	t := ((p.X-a.X)*d.X + (p.Y-a.Y)*d.Y) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return geometry.Point2D{X: a.X + t*d.X, Y: a.Y + t*d.Y}
}
