// Package schematic provides the authoritative data model for a schematic
// document: wires, junctions, components with pins, and the owning document
// aggregate. Topology, straight-wire paths, and nets are derived from this
// model and never stored in it.
package schematic

import (
	"fmt"

	"github.com/google/uuid"

	"wire-topology/pkg/colorutil"
	"wire-topology/pkg/geometry"
)

// WireSource indicates how a wire was created.
type WireSource int

const (
	// SourceDrawn indicates the wire was drawn interactively.
	SourceDrawn WireSource = iota
	// SourceLoaded indicates the wire came from a saved document.
	SourceLoaded
	// SourceUnified indicates the wire was produced by merging collinear
	// same-net wires.
	SourceUnified
)

func (s WireSource) String() string {
	switch s {
	case SourceDrawn:
		return "Drawn"
	case SourceLoaded:
		return "Loaded"
	case SourceUnified:
		return "Unified"
	default:
		return "Unknown"
	}
}

// Wire is a polyline conductor. Consecutive points define segments. The
// connectivity deriver accepts any geometry; the topology builder assumes
// axis-aligned segments and treats diagonal ones as axis-less.
type Wire struct {
	ID     string             `json:"id"`
	Points []geometry.Point2D `json:"points"`
	Color  string             `json:"color,omitempty"`
	NetID  string             `json:"net_id,omitempty"`
	Source WireSource         `json:"-"`
}

// NewWire creates a wire with a fresh id. The points are normalized
// (consecutive duplicates collapsed).
func NewWire(points []geometry.Point2D, color string) *Wire {
	return &Wire{
		ID:     uuid.New().String(),
		Points: geometry.NormalizePolyline(points, false),
		Color:  color,
		Source: SourceDrawn,
	}
}

// Validate checks the wire invariant: at least two distinct points.
func (w *Wire) Validate() error {
	if len(geometry.NormalizePolyline(w.Points, false)) < 2 {
		return fmt.Errorf("wire %s has fewer than 2 distinct points", w.ID)
	}
	return nil
}

// Normalize collapses consecutive duplicate points in place, and optionally
// removes axis-aligned collinear interior points.
func (w *Wire) Normalize(removeCollinear bool) {
	w.Points = geometry.NormalizePolyline(w.Points, removeCollinear)
}

// SegmentCount returns the number of segments in the polyline.
func (w *Wire) SegmentCount() int {
	if len(w.Points) < 2 {
		return 0
	}
	return len(w.Points) - 1
}

// Segment returns the endpoints of segment i.
func (w *Wire) Segment(i int) (a, b geometry.Point2D) {
	return w.Points[i], w.Points[i+1]
}

// Endpoint returns one of the wire's two endpoints: index 0 for the start,
// any other value for the end.
func (w *Wire) Endpoint(index int) geometry.Point2D {
	if index == 0 {
		return w.Points[0]
	}
	return w.Points[len(w.Points)-1]
}

// EndpointIndexes returns the point indexes of the two endpoints.
func (w *Wire) EndpointIndexes() (start, end int) {
	return 0, len(w.Points) - 1
}

// Bounds returns the bounding box of the polyline, for hit-test prefiltering.
func (w *Wire) Bounds() geometry.Rect {
	return geometry.BoundingBox(w.Points)
}

// Length returns the total polyline length.
func (w *Wire) Length() float64 {
	return geometry.PathLength(w.Points)
}

// Clone returns a deep copy of the wire.
func (w *Wire) Clone() *Wire {
	c := *w
	c.Points = append([]geometry.Point2D(nil), w.Points...)
	return &c
}

// SameColor reports whether the wire's color equals the given one.
func (w *Wire) SameColor(color string) bool {
	return colorutil.Equal(w.Color, color)
}
