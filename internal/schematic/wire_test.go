package schematic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wire-topology/pkg/geometry"
)

func TestNewWireNormalizes(t *testing.T) {
	w := NewWire([]geometry.Point2D{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}}, "#000")
	assert.Equal(t, []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}}, w.Points)
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, SourceDrawn, w.Source)
}

func TestWireValidate(t *testing.T) {
	w := NewWire([]geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}}, "")
	assert.NoError(t, w.Validate())

	collapsed := &Wire{ID: "w", Points: []geometry.Point2D{{X: 5, Y: 5}, {X: 5, Y: 5}}}
	assert.Error(t, collapsed.Validate())
}

func TestWireEndpoints(t *testing.T) {
	w := NewWire([]geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}}, "")
	start, end := w.EndpointIndexes()
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)
	assert.Equal(t, geometry.Point2D{X: 0, Y: 0}, w.Endpoint(0))
	assert.Equal(t, geometry.Point2D{X: 10, Y: 5}, w.Endpoint(end))
	assert.Equal(t, 2, w.SegmentCount())

	a, b := w.Segment(1)
	assert.Equal(t, geometry.Point2D{X: 10, Y: 0}, a)
	assert.Equal(t, geometry.Point2D{X: 10, Y: 5}, b)
}

func TestWireClone(t *testing.T) {
	w := NewWire([]geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}}, "#f00")
	c := w.Clone()
	c.Points[0].X = 99
	assert.Equal(t, 0.0, w.Points[0].X, "clone must not share point storage")
}

func TestUnifyCollinearSameNet(t *testing.T) {
	tests := []struct {
		name string
		a, b []geometry.Point2D
		want []geometry.Point2D
	}{
		{
			name: "axis aligned run",
			a:    []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}},
			b:    []geometry.Point2D{{X: 10, Y: 0}, {X: 25, Y: 0}},
			want: []geometry.Point2D{{X: 0, Y: 0}, {X: 25, Y: 0}},
		},
		{
			name: "diagonal run",
			a:    []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 10}},
			b:    []geometry.Point2D{{X: 10, Y: 10}, {X: 20, Y: 20}},
			want: []geometry.Point2D{{X: 0, Y: 0}, {X: 20, Y: 20}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewWire(tt.a, "#000")
			a.NetID = "net-001"
			b := NewWire(tt.b, "#000")
			b.NetID = "net-001"

			merged, ok := UnifyWires(a, b, 0.5)
			require.True(t, ok)
			assert.Equal(t, tt.want, merged.Points)
			assert.Equal(t, "net-001", merged.NetID)
			assert.Equal(t, SourceUnified, merged.Source)
		})
	}
}

func TestUnifyRejectsDifferentNets(t *testing.T) {
	a := NewWire([]geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}}, "")
	a.NetID = "net-001"
	b := NewWire([]geometry.Point2D{{X: 10, Y: 0}, {X: 25, Y: 0}}, "")
	b.NetID = "net-002"

	_, ok := UnifyWires(a, b, 0.5)
	assert.False(t, ok, "different nets never unify even when collinear")
}

func TestUnifyRejectsBentWires(t *testing.T) {
	a := NewWire([]geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, "")
	b := NewWire([]geometry.Point2D{{X: 10, Y: 10}, {X: 25, Y: 10}}, "")

	_, ok := UnifyWires(a, b, 0.5)
	assert.False(t, ok)
}

func TestUnifyRejectsNonCollinear(t *testing.T) {
	a := NewWire([]geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}}, "")
	b := NewWire([]geometry.Point2D{{X: 10, Y: 0}, {X: 10, Y: 15}}, "")

	_, ok := UnifyWires(a, b, 0.5)
	assert.False(t, ok, "a corner is not a straight run")
}
