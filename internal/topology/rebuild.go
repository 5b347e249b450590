package topology

import (
	"fmt"
	"sort"

	"wire-topology/internal/schematic"
	"wire-topology/pkg/geometry"
)

// Rebuild recomputes the full topology from the live collections. Wires are
// rounded to the integer grid and split in place at points where another
// wire's vertex lands on their segment interior; junction detection replaces
// every non-manual junction.
func Rebuild(wires []*schematic.Wire, components []*schematic.Component, junctions []*schematic.Junction, opts Options) *Result {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}

	roundWires(wires)
	splitWiresAtTaps(wires)

	r := &Result{
		Nodes:     make(map[geometry.PointInt]*Node),
		Edges:     make(map[string]*Edge),
		CompToSWP: make(map[string]string),
	}
	buildGraph(r, wires)
	addComponentBridges(r, wires, components)
	extractSWPs(r, wires)
	mapComponentsToSWPs(r, components, opts.Tolerance)
	r.Junctions = redetectJunctions(r, wires, components, junctions, opts)
	return r
}

// roundWires snaps every wire point to the integer grid and collapses any
// duplicates that rounding produced.
func roundWires(wires []*schematic.Wire) {
	for _, w := range wires {
		for i := range w.Points {
			w.Points[i] = w.Points[i].Round().ToFloat()
		}
		w.Normalize(false)
	}
}

// splitWiresAtTaps finds every vertex of one wire that lies strictly inside
// a segment of another wire (a T-meeting) and inserts it into that segment.
// Interior-interior crossings are intentionally not split: a bare crossing is
// not a connection, so it is not a topology node either.
func splitWiresAtTaps(wires []*schematic.Wire) {
	// splits[wi][seg] lists the points to insert into wire wi's segment seg,
	// indexed against the current (pre-split) polylines.
	splits := make(map[int]map[int][]geometry.Point2D)

	for ti, target := range wires {
		for oi, other := range wires {
			if ti == oi {
				continue
			}
			for _, v := range other.Points {
				for s := 0; s < target.SegmentCount(); s++ {
					a, b := target.Segment(s)
					if geometry.PointOnOpenSegment(v, a, b) {
						if splits[ti] == nil {
							splits[ti] = make(map[int][]geometry.Point2D)
						}
						splits[ti][s] = append(splits[ti][s], v)
					}
				}
			}
		}
	}

	for ti, bySegment := range splits {
		w := wires[ti]
		var out []geometry.Point2D
		for s := 0; s < w.SegmentCount(); s++ {
			a, b := w.Segment(s)
			out = append(out, a)
			pts := bySegment[s]
			sortAlongSegment(pts, a, b)
			out = append(out, pts...)
		}
		out = append(out, w.Points[len(w.Points)-1])
		w.Points = geometry.NormalizePolyline(out, false)
	}
}

// sortAlongSegment orders points by their position along the segment a->b.
func sortAlongSegment(pts []geometry.Point2D, a, b geometry.Point2D) {
	d := b.Sub(a)
	sort.Slice(pts, func(i, j int) bool {
		ti := (pts[i].X-a.X)*d.X + (pts[i].Y-a.Y)*d.Y
		tj := (pts[j].X-a.X)*d.X + (pts[j].Y-a.Y)*d.Y
		return ti < tj
	})
}

// buildGraph creates one edge per consecutive point pair of the split wires
// and one node per distinct integer coordinate, tracking per-axis degrees.
func buildGraph(r *Result, wires []*schematic.Wire) {
	for _, w := range wires {
		for i := 0; i < w.SegmentCount(); i++ {
			a, b := w.Segment(i)
			e := &Edge{
				ID:           fmt.Sprintf("%s:%d", w.ID, i),
				WireID:       w.ID,
				SegmentIndex: i,
				A:            a,
				B:            b,
				Axis:         geometry.SegmentAxis(a, b),
				AKey:         a.Round(),
				BKey:         b.Round(),
			}
			addEdge(r, e)
		}
	}
}

// addComponentBridges adds a synthetic edge between the two pins of every
// embedded two-pin component, so the SWP walk passes straight through it.
// A component is embedded only when its pins are axis-aligned and each pin
// coincides with some wire's endpoint.
func addComponentBridges(r *Result, wires []*schematic.Wire, components []*schematic.Component) {
	for _, c := range components {
		if !c.Kind.TwoPin() {
			continue
		}
		pins := c.PinPositions()
		if len(pins) != 2 {
			continue
		}
		p1 := pins[0].At.Round().ToFloat()
		p2 := pins[1].At.Round().ToFloat()
		axis := geometry.SegmentAxis(p1, p2)
		if axis == geometry.AxisNone {
			continue
		}
		if !someWireEndpointAt(wires, p1.Round()) || !someWireEndpointAt(wires, p2.Round()) {
			continue
		}
		addEdge(r, &Edge{
			ID:          fmt.Sprintf("bridge:%s", c.ID),
			ComponentID: c.ID,
			A:           p1,
			B:           p2,
			Axis:        axis,
			AKey:        p1.Round(),
			BKey:        p2.Round(),
		})
	}
}

// someWireEndpointAt reports whether any wire starts or ends at the key.
func someWireEndpointAt(wires []*schematic.Wire, key geometry.PointInt) bool {
	for _, w := range wires {
		if len(w.Points) < 2 {
			continue
		}
		if w.Points[0].Round() == key || w.Points[len(w.Points)-1].Round() == key {
			return true
		}
	}
	return false
}

func addEdge(r *Result, e *Edge) {
	r.Edges[e.ID] = e
	r.edgeOrder = append(r.edgeOrder, e.ID)
	for _, key := range []geometry.PointInt{e.AKey, e.BKey} {
		n := r.Nodes[key]
		if n == nil {
			n = &Node{Key: key}
			r.Nodes[key] = n
		}
		n.EdgeIDs = append(n.EdgeIDs, e.ID)
		switch e.Axis {
		case geometry.AxisX:
			n.Degree.X++
		case geometry.AxisY:
			n.Degree.Y++
		}
	}
}

// sortedNodeKeys returns the node keys in row-major order for deterministic
// iteration.
func sortedNodeKeys(r *Result) []geometry.PointInt {
	keys := make([]geometry.PointInt, 0, len(r.Nodes))
	for k := range r.Nodes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Y != keys[j].Y {
			return keys[i].Y < keys[j].Y
		}
		return keys[i].X < keys[j].X
	})
	return keys
}
