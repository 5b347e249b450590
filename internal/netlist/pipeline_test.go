package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wire-topology/internal/schematic"
	"wire-topology/internal/topology"
	"wire-topology/pkg/geometry"
)

// The editor always rebuilds topology before deriving connectivity, and the
// rebuild mutates the wires: a tap point becomes an interior vertex of the
// tapped wire. These tests run that sequence on the shared wire collection.

func TestTapStillConductsAfterRebuild(t *testing.T) {
	wa := schematic.NewWire([]geometry.Point2D{{X: 0, Y: 0}, {X: 20, Y: 0}}, "")
	wb := schematic.NewWire([]geometry.Point2D{{X: 10, Y: 0}, {X: 10, Y: -10}}, "")
	wires := []*schematic.Wire{wa, wb}

	topology.Rebuild(wires, nil, nil, topology.DefaultOptions())
	require.Equal(t, []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}}, wa.Points,
		"the split leaves the tap point as an interior vertex")

	r := Derive(Input{Wires: wires})
	assert.Len(t, r.Nets, 1)
	assert.True(t, r.SameNet(
		WireEndpointMember(wa.ID, 0),
		WireEndpointMember(wb.ID, 1)))
	require.Len(t, r.ImplicitJunctions, 1)
	assert.Equal(t, geometry.Point2D{X: 10, Y: 0}, r.ImplicitJunctions[0])
}

func TestJunctionOnSplitVertexGatesWire(t *testing.T) {
	wa := schematic.NewWire([]geometry.Point2D{{X: 0, Y: 0}, {X: 20, Y: 0}}, "")
	wb := schematic.NewWire([]geometry.Point2D{{X: 10, Y: 0}, {X: 10, Y: -10}}, "")
	wires := []*schematic.Wire{wa, wb}
	topology.Rebuild(wires, nil, nil, topology.DefaultOptions())

	j := schematic.NewManualJunction(geometry.Point2D{X: 10, Y: 0})
	r := Derive(Input{Wires: wires, Junctions: []*schematic.Junction{j}})

	require.Len(t, r.Nets, 1)
	assert.True(t, r.SameNet(
		JunctionMember(j.ID),
		WireEndpointMember(wa.ID, 0)),
		"a junction on the split vertex conducts into the split wire")
}
