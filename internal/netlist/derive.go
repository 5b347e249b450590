package netlist

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"wire-topology/internal/schematic"
	"wire-topology/pkg/geometry"
)

// DefaultTolerance is the snap distance for all coincidence checks: endpoint
// to endpoint, endpoint to pin, and endpoint on segment interior. One value
// covers all three so the checks can neither overlap nor leave a dead zone.
const DefaultTolerance = 0.5

// Input is the flat snapshot the deriver works from.
type Input struct {
	Wires     []*schematic.Wire
	Pins      []schematic.Pin
	Junctions []*schematic.Junction
	Tolerance float64
}

// Derive computes electrical nets from the snapshot. Connection rules:
//
//  1. A wire's own two endpoints always share a net.
//  2. Wire endpoints within tolerance of each other connect.
//  3. A pin within tolerance of a wire endpoint connects.
//  4. A wire endpoint landing on another wire's segment interior connects
//     without a junction (a deliberate tap) and is reported as an implicit
//     junction.
//  5. Two wire interiors crossing connect only through an explicit junction
//     placed at the crossing.
//
// Entities are nodes in a flat index space; the nets are the connected
// components of the resulting graph.
func Derive(in Input) Result {
	tol := in.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	tolSq := tol * tol

	// Flat entity index space: wire endpoints, then pins, then junctions.
	var members []Member
	var positions []geometry.Point2D

	type wireRef struct {
		wire       *schematic.Wire
		startIndex int // entity index of endpoint 0; end is startIndex+1
	}
	var wires []wireRef

	for _, w := range in.Wires {
		if len(w.Points) < 2 {
			continue
		}
		wires = append(wires, wireRef{wire: w, startIndex: len(members)})
		members = append(members,
			WireEndpointMember(w.ID, 0),
			WireEndpointMember(w.ID, 1))
		positions = append(positions, w.Points[0], w.Points[len(w.Points)-1])
	}

	pinStart := len(members)
	for _, p := range in.Pins {
		members = append(members, PinMember(p.ID))
		positions = append(positions, p.At)
	}

	junctionStart := len(members)
	for _, j := range in.Junctions {
		members = append(members, JunctionMember(j.ID))
		positions = append(positions, j.At)
	}

	g := simple.NewUndirectedGraph()
	for i := range members {
		g.AddNode(simple.Node(i))
	}
	connect := func(i, j int) {
		if i != j {
			g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
		}
	}

	// A wire is internally continuous
	for _, wr := range wires {
		connect(wr.startIndex, wr.startIndex+1)
	}

	// Endpoint-to-endpoint coincidence
	endpointCount := pinStart
	for i := 0; i < endpointCount; i++ {
		for j := i + 1; j < endpointCount; j++ {
			if positions[i].DistanceSquared(positions[j]) <= tolSq {
				connect(i, j)
			}
		}
	}

	// Pin-to-endpoint coincidence
	for p := pinStart; p < junctionStart; p++ {
		for e := 0; e < endpointCount; e++ {
			if positions[p].DistanceSquared(positions[e]) <= tolSq {
				connect(p, e)
			}
		}
	}

	// Endpoint on another wire's interior: connects without a junction.
	// Only positions near the other wire's own endpoints are excluded
	// here; the endpoint rules above already cover those.
	var implicit []geometry.Point2D
	for e := 0; e < endpointCount; e++ {
		owner := members[e].WireID
		for _, wr := range wires {
			if wr.wire.ID == owner {
				continue
			}
			if wireHasInteriorPoint(wr.wire, positions[e], tol) {
				connect(e, wr.startIndex)
				implicit = appendImplicit(implicit, positions[e], tol)
			}
		}
	}

	// Junction gating: a junction conducts into every wire whose endpoint or
	// segment interior it touches, and to pins under it.
	for jn := junctionStart; jn < len(members); jn++ {
		at := positions[jn]
		for _, wr := range wires {
			w := wr.wire
			switch {
			case at.DistanceSquared(w.Points[0]) <= tolSq:
				connect(jn, wr.startIndex)
			case at.DistanceSquared(w.Points[len(w.Points)-1]) <= tolSq:
				connect(jn, wr.startIndex+1)
			case wireHasInteriorPoint(w, at, tol):
				connect(jn, wr.startIndex)
			}
		}
		for p := pinStart; p < junctionStart; p++ {
			if at.DistanceSquared(positions[p]) <= tolSq {
				connect(jn, p)
			}
		}
	}

	return buildResult(members, in, topoComponents(g), implicit)
}

// topoComponents wraps gonum's connected components as entity index groups.
func topoComponents(g *simple.UndirectedGraph) [][]int {
	comps := topo.ConnectedComponents(g)
	out := make([][]int, 0, len(comps))
	for _, comp := range comps {
		idxs := make([]int, 0, len(comp))
		for _, n := range comp {
			idxs = append(idxs, int(n.ID()))
		}
		sort.Ints(idxs)
		out = append(out, idxs)
	}
	// Deterministic net order regardless of graph iteration order
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// buildResult numbers the components and picks each net's display name from
// the best wire NetID it contains.
func buildResult(members []Member, in Input, comps [][]int, implicit []geometry.Point2D) Result {
	netIDByWire := make(map[string]string)
	for _, w := range in.Wires {
		netIDByWire[w.ID] = w.NetID
	}

	r := Result{
		ImplicitJunctions: implicit,
		netByMember:       make(map[Member]string, len(members)),
	}
	for i, comp := range comps {
		net := Net{ID: fmt.Sprintf("net-%03d", i+1)}
		for _, idx := range comp {
			m := members[idx]
			net.Members = append(net.Members, m)
			r.netByMember[m] = net.ID
			if m.Kind == MemberWireEndpoint {
				net.Name = BetterNetName(net.Name, netIDByWire[m.WireID])
			}
		}
		if net.Name == "" {
			net.Name = net.ID
		}
		r.Nets = append(r.Nets, net)
	}
	return r
}

// wireHasInteriorPoint reports whether p lies on w within tolerance, away
// from the wire's two endpoints. Interior vertices count as interior: after
// a topology rebuild splits a wire at a tap, the tap point is a vertex near
// two segment endpoints, and it must still conduct. Only the wire's own
// endpoints are excluded, since the endpoint rules already cover those.
func wireHasInteriorPoint(w *schematic.Wire, p geometry.Point2D, tol float64) bool {
	tolSq := tol * tol
	if p.DistanceSquared(w.Points[0]) <= tolSq ||
		p.DistanceSquared(w.Points[len(w.Points)-1]) <= tolSq {
		return false
	}
	for i := 0; i < w.SegmentCount(); i++ {
		a, b := w.Segment(i)
		d, on := geometry.PointToSegmentDistance(p, a, b)
		if on && d <= tol {
			return true
		}
	}
	return false
}

// appendImplicit records an implicit junction position, deduplicating
// coincident reports.
func appendImplicit(list []geometry.Point2D, p geometry.Point2D, tol float64) []geometry.Point2D {
	for _, q := range list {
		if geometry.PointsEqual(q, p, tol) {
			return list
		}
	}
	return append(list, p)
}
