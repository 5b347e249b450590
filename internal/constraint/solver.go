package constraint

import (
	"fmt"
	"math"
	"sort"

	"wire-topology/pkg/geometry"
)

// Result is the outcome of solving one proposed move.
type Result struct {
	// Final is the closest position to the proposal that the enabled
	// constraints allow.
	Final geometry.Point2D
	// Violations lists, strongest first, every constraint the proposal
	// broke and the adjustment (if any) applied for it.
	Violations []Violation
}

// Solver evaluates registered constraints against proposed entity moves.
// Not safe for concurrent use.
type Solver struct {
	entities    map[string]*Entity
	constraints []*Constraint
	nextID      int
}

// NewSolver returns an empty solver.
func NewSolver() *Solver {
	return &Solver{entities: make(map[string]*Entity)}
}

// SetEntity registers or repositions an entity.
func (s *Solver) SetEntity(id string, pos geometry.Point2D) {
	if e, ok := s.entities[id]; ok {
		e.Pos = pos
		return
	}
	s.entities[id] = &Entity{ID: id, Pos: pos}
}

// Entity returns the registered entity, or nil.
func (s *Solver) Entity(id string) *Entity {
	return s.entities[id]
}

// Add registers a constraint, enabled, and returns its assigned id.
func (s *Solver) Add(kind Kind, entityIDs []string, opts ...Option) string {
	s.nextID++
	c := &Constraint{
		ID:       fmt.Sprintf("con-%03d", s.nextID),
		Kind:     kind,
		Entities: append([]string(nil), entityIDs...),
		Enabled:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	s.constraints = append(s.constraints, c)
	return c.ID
}

// Option sets a constraint parameter at Add time.
type Option func(*Constraint)

// WithTarget sets the fixed target position.
func WithTarget(p geometry.Point2D) Option {
	return func(c *Constraint) { c.Target = p }
}

// WithAxis sets the constrained axis.
func WithAxis(a geometry.Axis) Option {
	return func(c *Constraint) { c.Axis = a }
}

// WithValue sets the numeric parameter (distance, pitch, extent).
func WithValue(v float64) Option {
	return func(c *Constraint) { c.Value = v }
}

// Enable turns a constraint back on. Unknown ids are ignored.
func (s *Solver) Enable(id string) { s.setEnabled(id, true) }

// Disable turns a constraint off without removing it.
func (s *Solver) Disable(id string) { s.setEnabled(id, false) }

func (s *Solver) setEnabled(id string, enabled bool) {
	for _, c := range s.constraints {
		if c.ID == id {
			c.Enabled = enabled
			return
		}
	}
}

// Solve evaluates every enabled constraint touching entityID against a
// proposed position. Constraints apply weakest first, so by the time the
// strongest has run its adjustment stands; the e.g. manual-junction
// fixed-position constraint therefore overrides grid snapping rather than
// the reverse. The entity's stored position is not changed; callers commit
// Final themselves (via SetEntity) once the surrounding edit succeeds.
func (s *Solver) Solve(entityID string, proposed geometry.Point2D) Result {
	e := s.entities[entityID]
	if e == nil {
		return Result{Final: proposed}
	}

	var active []*Constraint
	for _, c := range s.constraints {
		if c.Enabled && c.touches(entityID) {
			active = append(active, c)
		}
	}
	// Weakest first; registration order breaks ties so evaluation is
	// deterministic.
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Kind > active[j].Kind
	})

	pos := proposed
	var violations []Violation
	for _, c := range active {
		if v, ok := s.apply(c, e, &pos); ok {
			violations = append(violations, v)
		}
	}
	// Report strongest first, the order a caller would explain them in.
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Kind < violations[j].Kind
	})
	return Result{Final: pos, Violations: violations}
}

// apply evaluates one constraint against *pos, adjusting it in place when
// the kind calls for it. It reports whether the constraint was violated.
func (s *Solver) apply(c *Constraint, e *Entity, pos *geometry.Point2D) (Violation, bool) {
	v := Violation{ConstraintID: c.ID, Kind: c.Kind, Entities: c.Entities, From: *pos}
	adjust := func(to geometry.Point2D, reason string) (Violation, bool) {
		v.Reason = reason
		v.Adjusted = true
		v.To = to
		*pos = to
		return v, true
	}

	switch c.Kind {
	case FixedPosition:
		if geometry.PointsEqual(*pos, c.Target, geometry.EpsExact) {
			return v, false
		}
		return adjust(c.Target, "entity is pinned in place")

	case FixedAxis:
		to := *pos
		switch c.Axis {
		case geometry.AxisX:
			to.Y = e.Pos.Y
		case geometry.AxisY:
			to.X = e.Pos.X
		default:
			return v, false
		}
		if geometry.PointsEqual(*pos, to, geometry.EpsExact) {
			return v, false
		}
		return adjust(to, fmt.Sprintf("movement locked to %s axis", axisName(c.Axis)))

	case Coincident:
		o := s.pairedEntity(c, e.ID)
		if o == nil || geometry.PointsEqual(*pos, o.Pos, geometry.EpsExact) {
			return v, false
		}
		return adjust(o.Pos, fmt.Sprintf("must coincide with %s", o.ID))

	case Connected:
		o := s.pairedEntity(c, e.ID)
		if o == nil {
			return v, false
		}
		d := pos.Distance(o.Pos)
		if d <= c.Value {
			return v, false
		}
		// Clamp back along the line toward the anchor.
		dir := pos.Sub(o.Pos).Scale(c.Value / d)
		return adjust(o.Pos.Add(dir), fmt.Sprintf("must stay within %g of %s", c.Value, o.ID))

	case Orthogonal:
		o := s.pairedEntity(c, e.ID)
		if o == nil {
			return v, false
		}
		dx := pos.X - o.Pos.X
		dy := pos.Y - o.Pos.Y
		if math.Abs(dx) <= geometry.EpsExact || math.Abs(dy) <= geometry.EpsExact {
			return v, false
		}
		to := *pos
		// Zero the smaller offset: the cheaper correction.
		if math.Abs(dx) < math.Abs(dy) {
			to.X = o.Pos.X
		} else {
			to.Y = o.Pos.Y
		}
		return adjust(to, fmt.Sprintf("segment to %s must stay orthogonal", o.ID))

	case MinDistance:
		o := s.pairedEntity(c, e.ID)
		if o == nil {
			return v, false
		}
		d := pos.Distance(o.Pos)
		if d >= c.Value {
			return v, false
		}
		if d <= geometry.EpsExact {
			// Coincident entities have no push direction; pick +X.
			return adjust(geometry.Point2D{X: o.Pos.X + c.Value, Y: o.Pos.Y},
				fmt.Sprintf("must stay at least %g from %s", c.Value, o.ID))
		}
		dir := pos.Sub(o.Pos).Scale(c.Value / d)
		return adjust(o.Pos.Add(dir), fmt.Sprintf("must stay at least %g from %s", c.Value, o.ID))

	case NoOverlap:
		o := s.pairedEntity(c, e.ID)
		if o == nil {
			return v, false
		}
		dx := pos.X - o.Pos.X
		dy := pos.Y - o.Pos.Y
		extent := 2 * c.Value
		px := extent - math.Abs(dx)
		py := extent - math.Abs(dy)
		if px <= 0 || py <= 0 {
			return v, false
		}
		to := *pos
		// Resolve along the axis of least penetration.
		if px <= py {
			to.X = o.Pos.X + math.Copysign(extent, nonzero(dx))
		} else {
			to.Y = o.Pos.Y + math.Copysign(extent, nonzero(dy))
		}
		return adjust(to, fmt.Sprintf("overlaps extent of %s", o.ID))

	case OnGrid:
		if c.Value <= 0 {
			return v, false
		}
		to := geometry.Point2D{
			X: math.Round(pos.X/c.Value) * c.Value,
			Y: math.Round(pos.Y/c.Value) * c.Value,
		}
		if geometry.PointsEqual(*pos, to, geometry.EpsExact) {
			return v, false
		}
		return adjust(to, fmt.Sprintf("snapped to %g grid", c.Value))

	case RubberBand:
		o := s.pairedEntity(c, e.ID)
		if o == nil {
			return v, false
		}
		d := pos.Distance(o.Pos)
		if d <= c.Value {
			return v, false
		}
		// Report only: the band stretches, the caller decides.
		v.Reason = fmt.Sprintf("stretched %.3g beyond %g from %s", d-c.Value, c.Value, o.ID)
		v.To = *pos
		return v, true

	case Align:
		o := s.pairedEntity(c, e.ID)
		if o == nil {
			return v, false
		}
		to := *pos
		switch c.Axis {
		case geometry.AxisX:
			to.Y = o.Pos.Y
		case geometry.AxisY:
			to.X = o.Pos.X
		default:
			return v, false
		}
		if geometry.PointsEqual(*pos, to, geometry.EpsExact) {
			return v, false
		}
		return adjust(to, fmt.Sprintf("aligned with %s", o.ID))
	}
	return v, false
}

// pairedEntity resolves the other entity of a two-entity constraint.
// Constraints referencing unregistered entities are skipped.
func (s *Solver) pairedEntity(c *Constraint, entityID string) *Entity {
	id, ok := c.other(entityID)
	if !ok {
		return nil
	}
	return s.entities[id]
}

func axisName(a geometry.Axis) string {
	if a == geometry.AxisY {
		return "vertical"
	}
	return "horizontal"
}

// nonzero keeps Copysign deterministic when the offset is exactly zero.
func nonzero(d float64) float64 {
	if d == 0 {
		return 1
	}
	return d
}
