package topology

import (
	"fmt"

	"wire-topology/internal/schematic"
	"wire-topology/pkg/geometry"
)

// redetectJunctions rebuilds the junction list. Manual junctions pass through
// verbatim (suppressed ones included; their only effect is vetoing
// re-creation at their point). Every non-manual junction is discarded and
// re-derived: a dot appears at a node where at least two distinct wires meet
// and at least one of them passes mid-segment through it, or a component pin
// sits on it.
func redetectJunctions(r *Result, wires []*schematic.Wire, components []*schematic.Component, previous []*schematic.Junction, opts Options) []*schematic.Junction {
	var out []*schematic.Junction
	manualAt := make(map[geometry.PointInt]bool)
	suppressedAt := make(map[geometry.PointInt]bool)
	for _, j := range previous {
		if !j.Manual {
			continue
		}
		out = append(out, j)
		key := j.At.Round()
		manualAt[key] = true
		if j.Suppressed {
			suppressedAt[key] = true
		}
	}

	wireByID := make(map[string]*schematic.Wire, len(wires))
	for _, w := range wires {
		wireByID[w.ID] = w
	}

	pinAt := make(map[geometry.PointInt]bool)
	for _, c := range components {
		for _, p := range c.PinPositions() {
			pinAt[p.At.Round()] = true
		}
	}

	seq := 0
	for _, key := range sortedNodeKeys(r) {
		if manualAt[key] || suppressedAt[key] {
			continue
		}
		node := r.Nodes[key]

		var touching []string
		seen := make(map[string]bool)
		midSegment := false
		for _, eid := range node.EdgeIDs {
			e := r.Edges[eid]
			if e.Bridge() || seen[e.WireID] {
				continue
			}
			seen[e.WireID] = true
			touching = append(touching, e.WireID)
			if w := wireByID[e.WireID]; w != nil && !isWireEndpoint(w, key) {
				midSegment = true
			}
		}
		if len(touching) < 2 {
			continue
		}
		if !midSegment && !pinAt[key] {
			continue
		}

		nc := schematic.ResolveNetClass(opts.NetClasses, wireByID[touching[0]].NetID)
		seq++
		out = append(out, &schematic.Junction{
			ID:    fmt.Sprintf("jct-%03d", seq),
			At:    key.ToFloat(),
			NetID: wireByID[touching[0]].NetID,
			Size:  nc.JunctionSize,
			Color: nc.Color,
		})
	}
	return out
}

// isWireEndpoint reports whether the node key is one of the wire's two
// endpoints (as opposed to an interior vertex such as a split point).
func isWireEndpoint(w *schematic.Wire, key geometry.PointInt) bool {
	return w.Points[0].Round() == key || w.Points[len(w.Points)-1].Round() == key
}
