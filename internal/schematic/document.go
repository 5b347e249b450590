package schematic

import (
	"sync"

	"wire-topology/pkg/geometry"
)

// EventType identifies a category of document change.
type EventType int

const (
	// EventWiresChanged fires after wires are added, removed, or edited.
	EventWiresChanged EventType = iota
	// EventJunctionsChanged fires after junctions change.
	EventJunctionsChanged
	// EventComponentsChanged fires after components change.
	EventComponentsChanged
)

// EventListener receives change notifications.
type EventListener func(EventType)

// Document owns the authoritative schematic state: wires, components, and
// junctions. Derived views (topology, straight wire paths, nets) are computed
// from it on demand and never written back. The document serializes access
// with a single lock; the kernel itself is single-threaded and hosts that
// mutate from several goroutines must go through these methods.
type Document struct {
	mu sync.RWMutex

	Wires      []*Wire
	Components []*Component
	Junctions  []*Junction

	listeners map[EventType][]EventListener
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		listeners: make(map[EventType][]EventListener),
	}
}

// Subscribe registers a listener for an event type.
func (d *Document) Subscribe(t EventType, l EventListener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[t] = append(d.listeners[t], l)
}

func (d *Document) notify(t EventType) {
	for _, l := range d.listeners[t] {
		l(t)
	}
}

// AddWire appends a wire and notifies listeners.
func (d *Document) AddWire(w *Wire) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Wires = append(d.Wires, w)
	d.notify(EventWiresChanged)
}

// RemoveWire deletes the wire with the given id. Returns false if absent.
func (d *Document) RemoveWire(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, w := range d.Wires {
		if w.ID == id {
			d.Wires = append(d.Wires[:i], d.Wires[i+1:]...)
			d.notify(EventWiresChanged)
			return true
		}
	}
	return false
}

// Wire returns the wire with the given id, or nil.
func (d *Document) Wire(id string) *Wire {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, w := range d.Wires {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// WiresChanged notifies listeners after in-place wire mutation (the editing
// operations modify wire point slices directly).
func (d *Document) WiresChanged() {
	d.mu.RLock()
	defer d.mu.RUnlock()
	d.notify(EventWiresChanged)
}

// AddJunction appends a junction and notifies listeners.
func (d *Document) AddJunction(j *Junction) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Junctions = append(d.Junctions, j)
	d.notify(EventJunctionsChanged)
}

// RemoveJunction deletes the junction with the given id. Returns false if
// absent.
func (d *Document) RemoveJunction(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, j := range d.Junctions {
		if j.ID == id {
			d.Junctions = append(d.Junctions[:i], d.Junctions[i+1:]...)
			d.notify(EventJunctionsChanged)
			return true
		}
	}
	return false
}

// SetJunctions replaces the junction list wholesale. Used by the topology
// builder's junction redetection.
func (d *Document) SetJunctions(junctions []*Junction) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Junctions = junctions
	d.notify(EventJunctionsChanged)
}

// JunctionAt returns the first junction within tolerance of p, or nil.
func (d *Document) JunctionAt(p geometry.Point2D, tolerance float64) *Junction {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, j := range d.Junctions {
		if geometry.PointsEqual(j.At, p, tolerance) {
			return j
		}
	}
	return nil
}

// AddComponent appends a component and notifies listeners.
func (d *Document) AddComponent(c *Component) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Components = append(d.Components, c)
	d.notify(EventComponentsChanged)
}

// Component returns the component with the given id, or nil.
func (d *Document) Component(id string) *Component {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, c := range d.Components {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Pins returns the absolute positions of every component pin, the flat view
// the connectivity deriver and hit testing consume.
func (d *Document) Pins() []Pin {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var pins []Pin
	for _, c := range d.Components {
		pins = append(pins, c.PinPositions()...)
	}
	return pins
}

// FindWireEndpointNear returns the wire and endpoint index (0 or last) of the
// first wire endpoint within tolerance of p. Returns nil, -1 if none.
func (d *Document) FindWireEndpointNear(p geometry.Point2D, tolerance float64) (*Wire, int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, w := range d.Wires {
		if len(w.Points) < 2 {
			continue
		}
		start, end := w.EndpointIndexes()
		if geometry.PointsEqual(w.Points[start], p, tolerance) {
			return w, start
		}
		if geometry.PointsEqual(w.Points[end], p, tolerance) {
			return w, end
		}
	}
	return nil, -1
}
