package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wire-topology/internal/schematic"
	"wire-topology/pkg/colorutil"
	"wire-topology/pkg/geometry"
)

func wire(id, color string, points ...geometry.Point2D) *schematic.Wire {
	return &schematic.Wire{ID: id, Color: color, Points: points}
}

func TestSplitWireAtTap(t *testing.T) {
	wa := wire("wa", "", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 20, Y: 0})
	wb := wire("wb", "", geometry.Point2D{X: 10, Y: 0}, geometry.Point2D{X: 10, Y: -10})

	r := Rebuild([]*schematic.Wire{wa, wb}, nil, nil, DefaultOptions())

	// wa got the tap point inserted
	assert.Equal(t, []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}}, wa.Points)

	// three nodes along wa plus wb's far end
	require.Contains(t, r.Nodes, geometry.PointInt{X: 10, Y: 0})
	node := r.Nodes[geometry.PointInt{X: 10, Y: 0}]
	assert.Equal(t, 2, node.Degree.X)
	assert.Equal(t, 1, node.Degree.Y)
}

func TestBareCrossingIsNotSplit(t *testing.T) {
	w1 := wire("w1", "", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 20, Y: 0})
	w2 := wire("w2", "", geometry.Point2D{X: 10, Y: -10}, geometry.Point2D{X: 10, Y: 10})

	r := Rebuild([]*schematic.Wire{w1, w2}, nil, nil, DefaultOptions())

	assert.Len(t, w1.Points, 2, "interior-interior crossings do not split")
	assert.Len(t, w2.Points, 2)
	assert.NotContains(t, r.Nodes, geometry.PointInt{X: 10, Y: 0})
}

func TestSWPMaximality(t *testing.T) {
	// A chain of collinear degree-2 segments becomes exactly one SWP.
	wires := []*schematic.Wire{
		wire("w1", "#000", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 10, Y: 0}),
		wire("w2", "#000", geometry.Point2D{X: 10, Y: 0}, geometry.Point2D{X: 25, Y: 0}),
		wire("w3", "#000", geometry.Point2D{X: 25, Y: 0}, geometry.Point2D{X: 40, Y: 0}),
	}

	r := Rebuild(wires, nil, nil, DefaultOptions())

	require.Len(t, r.SWPs, 1)
	s := r.SWPs[0]
	assert.Equal(t, geometry.AxisX, s.Axis)
	assert.Equal(t, geometry.Point2D{X: 0, Y: 0}, s.Start)
	assert.Equal(t, geometry.Point2D{X: 40, Y: 0}, s.End)
	assert.Equal(t, []string{"w1", "w2", "w3"}, s.EdgeWireIDs)
	assert.Equal(t, "#000", s.Color)
}

func TestSWPStopsAtCorner(t *testing.T) {
	// An L-shaped wire yields one horizontal and one vertical SWP.
	w := wire("w1", "", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 10, Y: 0}, geometry.Point2D{X: 10, Y: 10})

	r := Rebuild([]*schematic.Wire{w}, nil, nil, DefaultOptions())

	require.Len(t, r.SWPs, 2)
	axes := []geometry.Axis{r.SWPs[0].Axis, r.SWPs[1].Axis}
	assert.Contains(t, axes, geometry.AxisX)
	assert.Contains(t, axes, geometry.AxisY)
}

func TestSWPStopsAtBranch(t *testing.T) {
	// A tap in the middle splits the run for the crossing wire but the
	// straight run continues through: degree on the run axis stays 2.
	wires := []*schematic.Wire{
		wire("wa", "", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 20, Y: 0}),
		wire("wb", "", geometry.Point2D{X: 10, Y: 0}, geometry.Point2D{X: 10, Y: -10}),
	}

	r := Rebuild(wires, nil, nil, DefaultOptions())

	// wa remains one straight path even though it was split at the tap;
	// wb is its own vertical path.
	require.Len(t, r.SWPs, 2)
	var horizontal *SWP
	for _, s := range r.SWPs {
		if s.Axis == geometry.AxisX {
			horizontal = s
		}
	}
	require.NotNil(t, horizontal)
	assert.Equal(t, geometry.Point2D{X: 0, Y: 0}, horizontal.Start)
	assert.Equal(t, geometry.Point2D{X: 20, Y: 0}, horizontal.End)
	assert.Equal(t, []int{0, 1}, horizontal.EdgeIndicesByWire["wa"])
}

func TestSWPMixedColor(t *testing.T) {
	wires := []*schematic.Wire{
		wire("w1", colorutil.Red, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 10, Y: 0}),
		wire("w2", colorutil.Blue, geometry.Point2D{X: 10, Y: 0}, geometry.Point2D{X: 20, Y: 0}),
	}

	r := Rebuild(wires, nil, nil, DefaultOptions())

	require.Len(t, r.SWPs, 1)
	assert.Equal(t, ColorMixed, r.SWPs[0].Color)
}

func TestDiagonalSegmentNeverJoinsSWP(t *testing.T) {
	wires := []*schematic.Wire{
		wire("w1", "", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 10, Y: 10}),
		wire("w2", "", geometry.Point2D{X: 10, Y: 10}, geometry.Point2D{X: 20, Y: 10}),
	}

	r := Rebuild(wires, nil, nil, DefaultOptions())

	require.Len(t, r.SWPs, 1, "only the horizontal segment forms a path")
	assert.Equal(t, []string{"w2"}, r.SWPs[0].EdgeWireIDs)
}

func TestEmbeddedComponentBridgesSWP(t *testing.T) {
	// Two wire stubs with a resistor between their facing endpoints: the
	// bridge edge lets the whole run read as one straight path, and the
	// component maps onto it.
	wires := []*schematic.Wire{
		wire("w1", "#000", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 40, Y: 0}),
		wire("w2", "#000", geometry.Point2D{X: 60, Y: 0}, geometry.Point2D{X: 100, Y: 0}),
	}
	comp := schematic.NewTwoPin("R1", schematic.KindResistor, 50, 0, 0, 20)

	r := Rebuild(wires, []*schematic.Component{comp}, nil, DefaultOptions())

	require.Len(t, r.SWPs, 1)
	s := r.SWPs[0]
	assert.Equal(t, geometry.Point2D{X: 0, Y: 0}, s.Start)
	assert.Equal(t, geometry.Point2D{X: 100, Y: 0}, s.End)
	assert.Equal(t, s.ID, r.CompToSWP["R1"])
}

func TestFloatingComponentGetsNoBridge(t *testing.T) {
	wires := []*schematic.Wire{
		wire("w1", "", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 40, Y: 0}),
	}
	// Pins at (45,0) and (65,0): neither coincides with a wire endpoint on
	// the right side, so the component is not embedded.
	comp := schematic.NewTwoPin("R1", schematic.KindResistor, 55, 0, 0, 20)

	r := Rebuild(wires, []*schematic.Component{comp}, nil, DefaultOptions())

	for id := range r.Edges {
		assert.NotContains(t, id, "bridge", "no bridge for a floating component")
	}
	assert.NotContains(t, r.CompToSWP, "R1")
}

func TestNonTwoPinComponentIgnored(t *testing.T) {
	wires := []*schematic.Wire{
		wire("w1", "", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 40, Y: 0}),
	}
	ic := &schematic.Component{
		ID:   "U1",
		Kind: schematic.KindIC,
		X:    20,
		Pins: []schematic.PinDef{
			{Number: 1, Offset: geometry.Point2D{X: -20}},
			{Number: 2, Offset: geometry.Point2D{X: 20}},
		},
	}

	r := Rebuild(wires, []*schematic.Component{ic}, nil, DefaultOptions())
	assert.NotContains(t, r.CompToSWP, "U1")
}
