package schematic

import (
	"github.com/google/uuid"

	"wire-topology/pkg/geometry"
)

// Junction is an explicit connection marker. A crossing of two wire interiors
// only conducts when a junction sits on it. Manual junctions are authoritative
// state and survive topology rebuilds; non-manual ones are derived and fully
// regenerated on every rebuild. A manual junction with Suppressed set records
// a spot where the user removed an auto-detected dot: nothing is regenerated
// there.
type Junction struct {
	ID         string           `json:"id"`
	At         geometry.Point2D `json:"at"`
	Manual     bool             `json:"manual,omitempty"`
	Suppressed bool             `json:"suppressed,omitempty"`
	NetID      string           `json:"net_id,omitempty"`
	Size       float64          `json:"size,omitempty"`
	Color      string           `json:"color,omitempty"`
}

// NewManualJunction creates a user-placed junction with a fresh id.
func NewManualJunction(at geometry.Point2D) *Junction {
	return &Junction{
		ID:     uuid.New().String(),
		At:     at,
		Manual: true,
	}
}

// Clone returns a copy of the junction.
func (j *Junction) Clone() *Junction {
	c := *j
	return &c
}
