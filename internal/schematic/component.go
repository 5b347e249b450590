package schematic

import (
	"fmt"
	"math"

	"wire-topology/pkg/geometry"
)

// ComponentKind identifies the component type.
type ComponentKind string

// Two-pin kinds can be embedded inline in a wire run and mapped onto a
// straight wire path.
const (
	KindResistor  ComponentKind = "resistor"
	KindCapacitor ComponentKind = "capacitor"
	KindInductor  ComponentKind = "inductor"
	KindDiode     ComponentKind = "diode"
	KindBattery   ComponentKind = "battery"
	KindACSource  ComponentKind = "ac_source"
	KindIC        ComponentKind = "ic"
	KindGround    ComponentKind = "ground"
)

// TwoPin reports whether the kind is a two-terminal component that can sit
// inline within a wire run.
func (k ComponentKind) TwoPin() bool {
	switch k {
	case KindResistor, KindCapacitor, KindInductor, KindDiode, KindBattery, KindACSource:
		return true
	default:
		return false
	}
}

// PinDef is a pin in component-local coordinates.
type PinDef struct {
	Number int              `json:"number"`
	Name   string           `json:"name,omitempty"`
	Offset geometry.Point2D `json:"offset"`
}

// Pin is the flat, absolute-position view of a component pin used by the
// connectivity deriver and hit testing. ID is "componentID.pinNumber".
type Pin struct {
	ID string           `json:"id"`
	At geometry.Point2D `json:"at"`
}

// Component is a placed component. Pin offsets are rotated by Rotation
// (degrees) around the component origin and translated to (X, Y).
type Component struct {
	ID       string        `json:"id"`
	Kind     ComponentKind `json:"kind"`
	Name     string        `json:"name,omitempty"`
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Rotation float64       `json:"rotation,omitempty"`
	Pins     []PinDef      `json:"pins"`
}

// NewTwoPin creates a two-pin component centered at (x, y) with its pins
// span/2 to either side along the local X axis.
func NewTwoPin(id string, kind ComponentKind, x, y, rotation, span float64) *Component {
	return &Component{
		ID:       id,
		Kind:     kind,
		X:        x,
		Y:        y,
		Rotation: rotation,
		Pins: []PinDef{
			{Number: 1, Offset: geometry.Point2D{X: -span / 2}},
			{Number: 2, Offset: geometry.Point2D{X: span / 2}},
		},
	}
}

// PinID returns the flat id for a pin number on this component.
func (c *Component) PinID(number int) string {
	return fmt.Sprintf("%s.%d", c.ID, number)
}

// PinPositions returns the absolute, rotation-applied pin positions.
func (c *Component) PinPositions() []Pin {
	t := geometry.Translation(c.X, c.Y).Compose(geometry.Rotation(c.Rotation * math.Pi / 180.0))

	pins := make([]Pin, len(c.Pins))
	for i, def := range c.Pins {
		pins[i] = Pin{
			ID: c.PinID(def.Number),
			At: t.Apply(def.Offset),
		}
	}
	return pins
}

// Move translates the component to a new origin.
func (c *Component) Move(x, y float64) {
	c.X = x
	c.Y = y
}

// Clone returns a deep copy of the component.
func (c *Component) Clone() *Component {
	cc := *c
	cc.Pins = append([]PinDef(nil), c.Pins...)
	return &cc
}
