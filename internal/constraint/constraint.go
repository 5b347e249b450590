// Package constraint implements declarative movement validation. Entities
// (component anchors, wire vertices, junctions) register a position, and
// typed constraints restrict how they may move. Solve runs the enabled
// constraints touching an entity against a proposed position, adjusts it so
// stronger constraints win over weaker ones, and reports every adjustment
// so a caller can explain why a drag did not land where the cursor was.
package constraint

import (
	"fmt"

	"wire-topology/pkg/geometry"
)

// Kind identifies a constraint type. The declaration order is the priority
// order, strongest first: a fixed position outranks axis locking, which
// outranks coincidence, and so on down to alignment hints.
type Kind int

const (
	// FixedPosition pins an entity to Target. Nothing moves it.
	FixedPosition Kind = iota
	// FixedAxis restricts movement to one axis through the entity's
	// current position.
	FixedAxis
	// Coincident forces the entity onto another entity's position.
	Coincident
	// Connected keeps the entity within Value of another entity,
	// clamping the position back when a move would stretch further.
	Connected
	// Orthogonal keeps the segment between two entities axis-aligned.
	Orthogonal
	// MinDistance keeps the entity at least Value away from another.
	MinDistance
	// NoOverlap keeps the square extents (half-size Value) of two
	// entities from intersecting.
	NoOverlap
	// OnGrid snaps the position to a grid of pitch Value.
	OnGrid
	// RubberBand flags, without adjusting, a stretch beyond Value
	// between two entities.
	RubberBand
	// Align keeps two entities on a shared horizontal or vertical line,
	// given by Axis.
	Align
)

func (k Kind) String() string {
	switch k {
	case FixedPosition:
		return "fixed-position"
	case FixedAxis:
		return "fixed-axis"
	case Coincident:
		return "coincident"
	case Connected:
		return "connected"
	case Orthogonal:
		return "orthogonal"
	case MinDistance:
		return "min-distance"
	case NoOverlap:
		return "no-overlap"
	case OnGrid:
		return "on-grid"
	case RubberBand:
		return "rubber-band"
	case Align:
		return "align"
	default:
		return "unknown"
	}
}

// Entity is a movable point the solver knows about.
type Entity struct {
	ID  string
	Pos geometry.Point2D
}

// Constraint ties a rule to one or two entities. Which parameter fields
// matter depends on Kind: Target for FixedPosition, Axis for FixedAxis and
// Align, Value for Connected, MinDistance, NoOverlap, OnGrid and RubberBand.
type Constraint struct {
	ID       string
	Kind     Kind
	Entities []string
	Enabled  bool

	Target geometry.Point2D
	Axis   geometry.Axis
	Value  float64
}

func (c *Constraint) touches(entityID string) bool {
	for _, id := range c.Entities {
		if id == entityID {
			return true
		}
	}
	return false
}

// other returns the id of the paired entity in a two-entity constraint.
func (c *Constraint) other(entityID string) (string, bool) {
	for _, id := range c.Entities {
		if id != entityID {
			return id, true
		}
	}
	return "", false
}

// Violation records one constraint that the proposed position did not
// satisfy, and what the solver did about it. Adjusted is false for
// report-only kinds such as RubberBand.
type Violation struct {
	ConstraintID string
	Kind         Kind
	Entities     []string
	Reason       string
	Adjusted     bool
	From         geometry.Point2D
	To           geometry.Point2D
}

func (v Violation) String() string {
	if v.Adjusted {
		return fmt.Sprintf("%s %s: %s (moved %v -> %v)", v.ConstraintID, v.Kind, v.Reason, v.From, v.To)
	}
	return fmt.Sprintf("%s %s: %s", v.ConstraintID, v.Kind, v.Reason)
}
