// Package schema reflects Go struct definitions into Descriptors: the ordered slot lists the binder package
// reduces a parsed document.Document against. It plays the same role here that internal/marshaler/typeindex.go
// played in the teacher — a per-type index built once and cached — but the index it builds is the schema
// descriptor of spec §4.7 (Argument/Property/Child/Children/catch-all slots) rather than a flat field-name map.
package schema

import "reflect"

// SlotKind classifies what part of a node a Slot is bound to.
type SlotKind int

const (
	// SlotArgument binds a positional value from node.Arguments, in declaration order among Argument slots.
	SlotArgument SlotKind = iota
	// SlotProperty binds a named value from node.Properties.
	SlotProperty
	// SlotChild binds exactly one child node of a single node class.
	SlotChild
	// SlotChildren binds every child node whose class is in the slot's node group, in appearance order.
	SlotChildren
	// SlotOtherArguments catches positional arguments left over after all Argument slots are filled.
	SlotOtherArguments
	// SlotOtherProperties catches named properties left over after all Property slots are filled.
	SlotOtherProperties
	// SlotOtherChildren catches child nodes that matched no Child/Children slot.
	SlotOtherChildren
)

func (k SlotKind) String() string {
	switch k {
	case SlotArgument:
		return "argument"
	case SlotProperty:
		return "property"
	case SlotChild:
		return "child"
	case SlotChildren:
		return "children"
	case SlotOtherArguments:
		return "other-arguments"
	case SlotOtherProperties:
		return "other-properties"
	case SlotOtherChildren:
		return "other-children"
	default:
		return "slot(?)"
	}
}

// Slot is one field of a schema-declared struct, classified into a node part.
type Slot struct {
	Kind SlotKind
	// Name is the property key for SlotProperty, and the declaring field's Go name for every other kind
	// (SlotArgument, SlotChild/SlotChildren, the catch-alls).
	Name string
	// Field is the index path (for embedded-struct promotion) reflect.Value.FieldByIndex accepts.
	Field []int
	// Type is the field's Go type.
	Type reflect.Type
	// Optional marks an Argument or Property slot that need not be present; an absent one leaves the field at its Go
	// zero value. Default is not set by Build and not read by the binder.
	Optional bool
	Default  reflect.Value
	// Group lists the node classes a Child/Children slot accepts, collected when the descriptor is built; each
	// member's own Descriptor is built on first use, so a class may reference itself.
	Group []reflect.Type
}

// IsCatchAll reports whether s is one of the three catch-all slot kinds.
func (s *Slot) IsCatchAll() bool {
	switch s.Kind {
	case SlotOtherArguments, SlotOtherProperties, SlotOtherChildren:
		return true
	default:
		return false
	}
}

// Descriptor is the schema derived from a single Go struct type: its node name, and its ordered slot list.
type Descriptor struct {
	Type reflect.Type
	// NodeName is the KDL node name this class is recognized by (default: the Go type name, kebab-cased).
	NodeName string

	Arguments []Slot
	Properties map[string]Slot
	// propOrder preserves declaration order for property slots, so MissingProperty/ExtraProperty errors read in
	// a stable, source-like order rather than Go map iteration order.
	propOrder []string
	Children  []Slot

	OtherArguments  *Slot
	OtherProperties *Slot
	OtherChildren   *Slot
}

// PropertySlots returns the descriptor's property slots in declaration order.
func (d *Descriptor) PropertySlots() []Slot {
	out := make([]Slot, 0, len(d.propOrder))
	for _, name := range d.propOrder {
		out = append(out, d.Properties[name])
	}
	return out
}
