// Package netlist derives electrical nets from a snapshot of wires, pins,
// and junctions. Derivation is a pure function of the snapshot: crossings do
// not conduct unless an explicit junction sits on them, while a wire endpoint
// landing on another wire's run conducts without one.
package netlist

import (
	"fmt"
	"regexp"
	"strings"

	"wire-topology/pkg/geometry"
)

// autoNetRe matches auto-generated net names like "net-001", "net-042".
var autoNetRe = regexp.MustCompile(`^net-\d+$`)

// netNamePriority returns a priority score for a net name.
// Higher is better: 0=auto-generated, 1=component pin, 2=signal/user name.
func netNamePriority(name string) int {
	if name == "" || autoNetRe.MatchString(name) {
		return 0
	}
	if strings.Contains(name, ".") {
		return 1 // component pin name like "R3.1"
	}
	return 2 // signal name or user-assigned name
}

// BetterNetName returns the higher-priority name between a and b.
// Priority: signal/user names > component pin names > auto-generated
// "net-NNN". At equal priority, prefers the shorter name so "GND" wins over
// "GND#2".
func BetterNetName(a, b string) string {
	pa := netNamePriority(a)
	pb := netNamePriority(b)
	if pa > pb {
		return a
	}
	if pb > pa {
		return b
	}
	if a == "" {
		return b
	}
	if b != "" && len(b) < len(a) {
		return b
	}
	return a
}

// MemberKind identifies what kind of entity a net member is.
type MemberKind int

const (
	// MemberWireEndpoint is one endpoint of a wire polyline.
	MemberWireEndpoint MemberKind = iota
	// MemberPin is a component pin.
	MemberPin
	// MemberJunction is an explicit junction marker.
	MemberJunction
)

func (k MemberKind) String() string {
	switch k {
	case MemberWireEndpoint:
		return "WireEndpoint"
	case MemberPin:
		return "Pin"
	case MemberJunction:
		return "Junction"
	default:
		return "Unknown"
	}
}

// Member is the tagged identity of one entity in a net. Exactly one of the
// id fields is set, per Kind. Endpoint is 0 for a wire's start and 1 for its
// end.
type Member struct {
	Kind       MemberKind `json:"kind"`
	WireID     string     `json:"wire_id,omitempty"`
	Endpoint   int        `json:"endpoint,omitempty"`
	PinID      string     `json:"pin_id,omitempty"`
	JunctionID string     `json:"junction_id,omitempty"`
}

// WireEndpointMember builds the member identity for a wire endpoint.
// endpoint is 0 for the start, 1 for the end.
func WireEndpointMember(wireID string, endpoint int) Member {
	return Member{Kind: MemberWireEndpoint, WireID: wireID, Endpoint: endpoint}
}

// PinMember builds the member identity for a component pin.
func PinMember(pinID string) Member {
	return Member{Kind: MemberPin, PinID: pinID}
}

// JunctionMember builds the member identity for a junction.
func JunctionMember(junctionID string) Member {
	return Member{Kind: MemberJunction, JunctionID: junctionID}
}

func (m Member) String() string {
	switch m.Kind {
	case MemberWireEndpoint:
		return fmt.Sprintf("wire %s endpoint %d", m.WireID, m.Endpoint)
	case MemberPin:
		return fmt.Sprintf("pin %s", m.PinID)
	case MemberJunction:
		return fmt.Sprintf("junction %s", m.JunctionID)
	default:
		return "unknown member"
	}
}

// Net is one electrical net: a maximal set of wire endpoints, pins, and
// junctions judged connected.
type Net struct {
	ID      string   `json:"id"`   // e.g. "net-001"
	Name    string   `json:"name"` // best name carried by member wires
	Members []Member `json:"members"`
}

// ContainsWire reports whether any endpoint of the wire is in this net.
func (n *Net) ContainsWire(wireID string) bool {
	for _, m := range n.Members {
		if m.Kind == MemberWireEndpoint && m.WireID == wireID {
			return true
		}
	}
	return false
}

// ContainsPin reports whether the pin is in this net.
func (n *Net) ContainsPin(pinID string) bool {
	for _, m := range n.Members {
		if m.Kind == MemberPin && m.PinID == pinID {
			return true
		}
	}
	return false
}

// ContainsJunction reports whether the junction is in this net.
func (n *Net) ContainsJunction(junctionID string) bool {
	for _, m := range n.Members {
		if m.Kind == MemberJunction && m.JunctionID == junctionID {
			return true
		}
	}
	return false
}

// Result is the output of a connectivity derivation.
type Result struct {
	Nets []Net
	// ImplicitJunctions lists positions where a wire endpoint landed on
	// another wire's segment interior and connected without an explicit
	// junction. Informational only; never persisted as junctions.
	ImplicitJunctions []geometry.Point2D

	netByMember map[Member]string
}

// NetOf returns the id of the net containing the member, if any.
func (r *Result) NetOf(m Member) (string, bool) {
	id, ok := r.netByMember[m]
	return id, ok
}

// SameNet reports whether two members landed in the same net.
func (r *Result) SameNet(a, b Member) bool {
	na, oka := r.netByMember[a]
	nb, okb := r.netByMember[b]
	return oka && okb && na == nb
}

// NetByID returns the net with the given id, or nil.
func (r *Result) NetByID(id string) *Net {
	for i := range r.Nets {
		if r.Nets[i].ID == id {
			return &r.Nets[i]
		}
	}
	return nil
}
