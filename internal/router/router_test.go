package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wire-topology/internal/netlist"
	"wire-topology/internal/schematic"
	"wire-topology/pkg/geometry"
)

func newTestRouter(t *testing.T) (*Router, *schematic.Document) {
	t.Helper()
	doc := schematic.NewDocument()
	return New(doc, DefaultOptions()), doc
}

func TestPlacementLifecycle(t *testing.T) {
	r, doc := newTestRouter(t)
	assert.False(t, r.Placing())

	require.NoError(t, r.BeginPlacement(geometry.Point2D{X: 0, Y: 0}, ModeOrthogonal))
	assert.True(t, r.Placing())
	assert.Error(t, r.BeginPlacement(geometry.Point2D{X: 5, Y: 5}, ModeOrthogonal),
		"double begin is a caller bug")

	_, err := r.UpdatePlacement(geometry.Point2D{X: 20, Y: 0})
	require.NoError(t, err)

	w, err := r.FinishPlacement()
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.False(t, r.Placing())
	assert.Equal(t, []geometry.Point2D{{X: 0, Y: 0}, {X: 20, Y: 0}}, w.Points)
	assert.Len(t, doc.Wires, 1)
}

func TestPlacementMisuseErrors(t *testing.T) {
	r, _ := newTestRouter(t)

	_, err := r.UpdatePlacement(geometry.Point2D{X: 1, Y: 1})
	assert.Error(t, err)
	assert.Error(t, r.CommitCorner())
	_, err = r.FinishPlacement()
	assert.Error(t, err)
}

func TestOrthogonalPreviewBend(t *testing.T) {
	r, _ := newTestRouter(t)
	require.NoError(t, r.BeginPlacement(geometry.Point2D{X: 0, Y: 0}, ModeOrthogonal))

	// Mostly-horizontal movement: horizontal-first bend (HV)
	preview, err := r.UpdatePlacement(geometry.Point2D{X: 20, Y: 6})
	require.NoError(t, err)
	assert.Equal(t, []geometry.Point2D{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 6}}, preview)
}

func TestOrthogonalPreviewJitterFilter(t *testing.T) {
	r, _ := newTestRouter(t)
	require.NoError(t, r.BeginPlacement(geometry.Point2D{X: 0, Y: 0}, ModeOrthogonal))

	preview, err := r.UpdatePlacement(geometry.Point2D{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, []geometry.Point2D{{X: 0, Y: 0}}, preview, "below MinMove nothing is drawn")
}

func TestBendDirectionLocks(t *testing.T) {
	r, _ := newTestRouter(t)
	require.NoError(t, r.BeginPlacement(geometry.Point2D{X: 0, Y: 0}, ModeOrthogonal))

	// Horizontal dominant, perpendicular travel past TurnThreshold: HV locks
	_, err := r.UpdatePlacement(geometry.Point2D{X: 20, Y: 5})
	require.NoError(t, err)

	// Cursor now vertically dominant, but the bend direction must not flip
	preview, err := r.UpdatePlacement(geometry.Point2D{X: 8, Y: 30})
	require.NoError(t, err)
	assert.Equal(t, []geometry.Point2D{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 30}}, preview)
}

func TestCommitCornerResetsBendLock(t *testing.T) {
	r, _ := newTestRouter(t)
	require.NoError(t, r.BeginPlacement(geometry.Point2D{X: 0, Y: 0}, ModeOrthogonal))

	_, err := r.UpdatePlacement(geometry.Point2D{X: 20, Y: 5})
	require.NoError(t, err)
	require.NoError(t, r.CommitCorner())

	// New segment from (20,5): vertical dominant picks VH this time
	preview, err := r.UpdatePlacement(geometry.Point2D{X: 25, Y: 40})
	require.NoError(t, err)
	assert.Equal(t, geometry.Point2D{X: 20, Y: 5}, preview[0])
	assert.Equal(t, geometry.Point2D{X: 20, Y: 40}, preview[1], "fresh segment picks its own bend")

	w, err := r.FinishPlacement()
	require.NoError(t, err)
	// Committed corner points plus final preview, all orthogonal
	assertOrthogonal(t, w.Points)
}

func TestFreeModePreviewIsStraight(t *testing.T) {
	r, _ := newTestRouter(t)
	require.NoError(t, r.BeginPlacement(geometry.Point2D{X: 0, Y: 0}, ModeFree))

	preview, err := r.UpdatePlacement(geometry.Point2D{X: 13, Y: 7})
	require.NoError(t, err)
	assert.Equal(t, []geometry.Point2D{{X: 0, Y: 0}, {X: 13, Y: 7}}, preview)
}

func TestCancelPlacementLeavesDocumentUntouched(t *testing.T) {
	r, doc := newTestRouter(t)
	require.NoError(t, r.BeginPlacement(geometry.Point2D{X: 0, Y: 0}, ModeOrthogonal))
	_, err := r.UpdatePlacement(geometry.Point2D{X: 20, Y: 0})
	require.NoError(t, err)

	r.CancelPlacement()
	assert.False(t, r.Placing())
	assert.Empty(t, doc.Wires)
}

func TestFinishDegeneratePlacement(t *testing.T) {
	r, doc := newTestRouter(t)
	require.NoError(t, r.BeginPlacement(geometry.Point2D{X: 5, Y: 5}, ModeOrthogonal))

	_, err := r.FinishPlacement()
	assert.Error(t, err, "a single point is not a wire")
	assert.Empty(t, doc.Wires)
	assert.False(t, r.Placing())
}

func TestFinishPlacementDerivesConnectivity(t *testing.T) {
	r, doc := newTestRouter(t)
	existing := schematic.NewWire([]geometry.Point2D{{X: 20, Y: 0}, {X: 40, Y: 0}}, "")
	doc.AddWire(existing)

	require.NoError(t, r.BeginPlacement(geometry.Point2D{X: 0, Y: 0}, ModeOrthogonal))
	_, err := r.UpdatePlacement(geometry.Point2D{X: 20, Y: 0})
	require.NoError(t, err)
	placed, err := r.FinishPlacement()
	require.NoError(t, err)

	nets := r.Connectivity()
	assert.True(t, nets.SameNet(
		netlist.WireEndpointMember(placed.ID, 1),
		netlist.WireEndpointMember(existing.ID, 0)))
}

func TestSnapToGrid(t *testing.T) {
	doc := schematic.NewDocument()
	opts := DefaultOptions()
	opts.SnapGrid = 10
	r := New(doc, opts)

	require.NoError(t, r.BeginPlacement(geometry.Point2D{X: 3, Y: 4}, ModeOrthogonal))
	_, err := r.UpdatePlacement(geometry.Point2D{X: 27, Y: 2})
	require.NoError(t, err)
	w, err := r.FinishPlacement()
	require.NoError(t, err)

	assert.Equal(t, []geometry.Point2D{{X: 0, Y: 0}, {X: 30, Y: 0}}, w.Points)
}

func assertOrthogonal(t *testing.T, pts []geometry.Point2D) {
	t.Helper()
	for i := 1; i < len(pts); i++ {
		axis := geometry.SegmentAxis(pts[i-1], pts[i])
		assert.NotEqual(t, geometry.AxisNone, axis,
			"segment %d (%v -> %v) must be orthogonal", i-1, pts[i-1], pts[i])
	}
}
