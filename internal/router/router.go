// Package router implements the interactive orthogonal wire-editing kernel:
// wire placement with a live orthogonal preview, hit testing, and the direct
// editing operations (move endpoint, drag segment, insert/remove corner).
// Every structural edit re-derives connectivity before it returns; there is
// no dirty tracking, staleness is a bug.
package router

import (
	"fmt"
	"math"

	"wire-topology/internal/netlist"
	"wire-topology/internal/schematic"
	"wire-topology/pkg/colorutil"
	"wire-topology/pkg/geometry"
)

// Mode selects how the placement preview is shaped.
type Mode int

const (
	// ModeOrthogonal previews an axis-aligned path with an auto-detected
	// bend (HV or VH).
	ModeOrthogonal Mode = iota
	// ModeFree previews a straight line to the cursor.
	ModeFree
)

// Options configures the router.
type Options struct {
	// Tolerance is the connection and hit-test snap distance.
	Tolerance float64
	// SnapGrid is the placement grid pitch; 0 disables snapping.
	SnapGrid float64
	// MinMove is the cursor travel below which no drawing axis is chosen,
	// filtering out jitter at the start of a segment.
	MinMove float64
	// TurnThreshold is the perpendicular travel that locks the bend
	// direction (HV vs VH) for the current segment.
	TurnThreshold float64
	// WireColor is assigned to newly placed wires.
	WireColor string
}

// DefaultOptions returns the standard interactive configuration.
func DefaultOptions() Options {
	return Options{
		Tolerance:     netlist.DefaultTolerance,
		SnapGrid:      1,
		MinMove:       2,
		TurnThreshold: 4,
		WireColor:     colorutil.Black,
	}
}

// placement is the transient state between BeginPlacement and
// FinishPlacement/CancelPlacement.
type placement struct {
	mode       Mode
	committed  []geometry.Point2D
	preview    []geometry.Point2D
	firstAxis  geometry.Axis
	bendLocked bool
}

// Router owns the document's wires, junctions, and pins for editing purposes
// and keeps the derived connectivity current across edits.
type Router struct {
	doc       *schematic.Document
	opts      Options
	placement *placement
	nets      netlist.Result
}

// New creates a router over the document and derives initial connectivity.
func New(doc *schematic.Document, opts Options) *Router {
	if opts.Tolerance <= 0 {
		opts.Tolerance = netlist.DefaultTolerance
	}
	r := &Router{doc: doc, opts: opts}
	r.rebuildConnectivity()
	return r
}

// Connectivity returns the nets derived after the most recent edit.
func (r *Router) Connectivity() netlist.Result {
	return r.nets
}

// Placing reports whether a placement is in progress.
func (r *Router) Placing() bool {
	return r.placement != nil
}

// BeginPlacement starts drawing a wire at start (snapped).
func (r *Router) BeginPlacement(start geometry.Point2D, mode Mode) error {
	if r.placement != nil {
		return fmt.Errorf("placement already in progress")
	}
	s := r.snap(start)
	r.placement = &placement{
		mode:      mode,
		committed: []geometry.Point2D{s},
		preview:   []geometry.Point2D{s},
	}
	return nil
}

// UpdatePlacement recomputes the live preview from the last committed point
// to the cursor and returns it. The first point of the preview is always the
// last committed point.
func (r *Router) UpdatePlacement(cursor geometry.Point2D) ([]geometry.Point2D, error) {
	p := r.placement
	if p == nil {
		return nil, fmt.Errorf("no placement in progress")
	}
	last := p.committed[len(p.committed)-1]
	c := r.snap(cursor)

	if p.mode == ModeFree {
		p.preview = geometry.NormalizePolyline([]geometry.Point2D{last, c}, false)
		return p.preview, nil
	}

	dx := math.Abs(c.X - last.X)
	dy := math.Abs(c.Y - last.Y)

	if !p.bendLocked {
		if dx < r.opts.MinMove && dy < r.opts.MinMove {
			// Not enough travel to pick an axis yet
			p.firstAxis = geometry.AxisNone
			p.preview = []geometry.Point2D{last}
			return p.preview, nil
		}
		if dx >= dy {
			p.firstAxis = geometry.AxisX
		} else {
			p.firstAxis = geometry.AxisY
		}
		// Perpendicular travel past the turn threshold locks the bend
		// direction for the rest of this segment, so the preview cannot
		// flicker between HV and VH.
		perp := dy
		if p.firstAxis == geometry.AxisY {
			perp = dx
		}
		if perp >= r.opts.TurnThreshold {
			p.bendLocked = true
		}
	}

	var bend geometry.Point2D
	if p.firstAxis == geometry.AxisX {
		bend = geometry.Point2D{X: c.X, Y: last.Y}
	} else {
		bend = geometry.Point2D{X: last.X, Y: c.Y}
	}
	p.preview = geometry.NormalizePolyline([]geometry.Point2D{last, bend, c}, false)
	return p.preview, nil
}

// CommitCorner fixes the current preview into the committed path and starts
// a fresh segment: the next stretch may pick its own bend direction.
func (r *Router) CommitCorner() error {
	p := r.placement
	if p == nil {
		return fmt.Errorf("no placement in progress")
	}
	if len(p.preview) > 1 {
		p.committed = append(p.committed, p.preview[1:]...)
	}
	last := p.committed[len(p.committed)-1]
	p.preview = []geometry.Point2D{last}
	p.firstAxis = geometry.AxisNone
	p.bendLocked = false
	return nil
}

// FinishPlacement creates a wire from the committed path plus the current
// preview, adds it to the document, re-derives connectivity, and returns the
// new wire. Finishing with fewer than two distinct points discards the
// placement and returns an error.
func (r *Router) FinishPlacement() (*schematic.Wire, error) {
	p := r.placement
	if p == nil {
		return nil, fmt.Errorf("no placement in progress")
	}
	points := append([]geometry.Point2D(nil), p.committed...)
	if len(p.preview) > 1 {
		points = append(points, p.preview[1:]...)
	}
	r.placement = nil

	points = geometry.NormalizePolyline(points, false)
	if len(points) < 2 {
		return nil, fmt.Errorf("placement has no extent")
	}

	w := schematic.NewWire(points, r.opts.WireColor)
	r.doc.AddWire(w)
	r.rebuildConnectivity()
	return w, nil
}

// CancelPlacement discards the in-progress placement without touching the
// document.
func (r *Router) CancelPlacement() {
	r.placement = nil
}

// snap rounds a point to the placement grid.
func (r *Router) snap(p geometry.Point2D) geometry.Point2D {
	g := r.opts.SnapGrid
	if g <= 0 {
		return p
	}
	return geometry.Point2D{
		X: math.Round(p.X/g) * g,
		Y: math.Round(p.Y/g) * g,
	}
}

// rebuildConnectivity re-derives nets from the current document state.
func (r *Router) rebuildConnectivity() {
	r.nets = netlist.Derive(netlist.Input{
		Wires:     r.doc.Wires,
		Pins:      r.doc.Pins(),
		Junctions: r.doc.Junctions,
		Tolerance: r.opts.Tolerance,
	})
}
