package topology

import (
	"fmt"
	"sort"

	"wire-topology/internal/schematic"
	"wire-topology/pkg/geometry"
)

// extractSWPs groups the axis-aligned edges into maximal straight runs. From
// each unvisited edge the walk extends through both endpoints, continuing
// through a node only while its degree on the run's axis is exactly 2 (a
// pass-through, not a branch or endpoint).
func extractSWPs(r *Result, wires []*schematic.Wire) {
	wireByID := make(map[string]*schematic.Wire, len(wires))
	for _, w := range wires {
		wireByID[w.ID] = w
	}

	visited := make(map[string]bool)
	for _, eid := range r.edgeOrder {
		seed := r.Edges[eid]
		if visited[eid] || seed.Axis == geometry.AxisNone {
			continue
		}

		run := []*Edge{seed}
		visited[eid] = true
		for _, from := range []geometry.PointInt{seed.AKey, seed.BKey} {
			cur := seed
			at := from
			for {
				next := continuation(r, cur, at)
				if next == nil || visited[next.ID] {
					break
				}
				visited[next.ID] = true
				run = append(run, next)
				at = next.OtherKey(at)
				cur = next
			}
		}

		r.SWPs = append(r.SWPs, buildSWP(fmt.Sprintf("swp-%03d", len(r.SWPs)+1), seed.Axis, run, wireByID))
	}
}

// continuation returns the edge that continues the straight run through node
// at, or nil when the run stops there (branch, corner, or endpoint).
func continuation(r *Result, cur *Edge, at geometry.PointInt) *Edge {
	node := r.Nodes[at]
	if node == nil || node.Degree.On(cur.Axis) != 2 {
		return nil
	}
	for _, eid := range node.EdgeIDs {
		e := r.Edges[eid]
		if e.ID != cur.ID && e.Axis == cur.Axis {
			return e
		}
	}
	return nil
}

// buildSWP assembles the run into an SWP: extreme points along the axis,
// contributing wires with their absorbed segment indexes, and the common
// color if one exists.
func buildSWP(id string, axis geometry.Axis, run []*Edge, wireByID map[string]*schematic.Wire) *SWP {
	s := &SWP{
		ID:                id,
		Axis:              axis,
		EdgeIndicesByWire: make(map[string][]int),
	}

	coord := func(p geometry.Point2D) float64 {
		if axis == geometry.AxisX {
			return p.X
		}
		return p.Y
	}

	start, end := run[0].A, run[0].A
	for _, e := range run {
		for _, p := range []geometry.Point2D{e.A, e.B} {
			if coord(p) < coord(start) {
				start = p
			}
			if coord(p) > coord(end) {
				end = p
			}
		}
		if !e.Bridge() {
			s.EdgeIndicesByWire[e.WireID] = append(s.EdgeIndicesByWire[e.WireID], e.SegmentIndex)
		}
	}
	s.Start = start
	s.End = end

	for wid := range s.EdgeIndicesByWire {
		sort.Ints(s.EdgeIndicesByWire[wid])
		s.EdgeWireIDs = append(s.EdgeWireIDs, wid)
	}
	sort.Strings(s.EdgeWireIDs)

	s.Color = commonColor(s.EdgeWireIDs, wireByID)
	return s
}

// commonColor returns the color shared by every contributing wire, or
// ColorMixed when they disagree.
func commonColor(wireIDs []string, wireByID map[string]*schematic.Wire) string {
	var color string
	for i, wid := range wireIDs {
		w := wireByID[wid]
		if w == nil {
			continue
		}
		if i == 0 {
			color = w.Color
			continue
		}
		if !w.SameColor(color) {
			return ColorMixed
		}
	}
	return color
}

// mapComponentsToSWPs records, for each two-pin component whose pins both lie
// on one SWP's axis line within its span, the SWP it rides on. The first
// matching SWP wins.
func mapComponentsToSWPs(r *Result, components []*schematic.Component, tol float64) {
	for _, c := range components {
		if !c.Kind.TwoPin() {
			continue
		}
		pins := c.PinPositions()
		if len(pins) != 2 {
			continue
		}
		for _, s := range r.SWPs {
			if s.ContainsPoint(pins[0].At, tol) && s.ContainsPoint(pins[1].At, tol) {
				r.CompToSWP[c.ID] = s.ID
				break
			}
		}
	}
}
