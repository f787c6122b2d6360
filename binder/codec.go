package binder

import (
	"reflect"

	"github.com/kdl2x/kdl2/document"
)

// NodeMarshaler lets a schema-bound type take over emitting its own document.Node, bypassing normal slot
// reflection entirely — the generalized form of the teacher's Marshaler interface.
type NodeMarshaler interface {
	MarshalKDL(node *document.Node) error
}

// NodeUnmarshaler is NodeMarshaler's inverse: a type that populates itself from an already-parsed document.Node,
// bypassing normal slot reflection — the generalized form of the teacher's Unmarshaler interface.
type NodeUnmarshaler interface {
	UnmarshalKDL(node *document.Node) error
}

// ValueMarshaler lets a scalar-typed schema field take over producing its own document.Value.
type ValueMarshaler interface {
	MarshalKDLValue(value *document.Value) error
}

// ValueUnmarshaler is ValueMarshaler's inverse, for a scalar-typed schema field populating itself from an
// already-decoded document.Value.
type ValueUnmarshaler interface {
	UnmarshalKDLValue(value *document.Value) error
}

// asNodeUnmarshaler returns dest's NodeUnmarshaler view if dest is addressable and its pointer type implements
// the interface.
func asNodeUnmarshaler(dest reflect.Value) (NodeUnmarshaler, bool) {
	if !dest.CanAddr() {
		return nil, false
	}
	u, ok := dest.Addr().Interface().(NodeUnmarshaler)
	return u, ok
}

func asNodeMarshaler(v reflect.Value) (NodeMarshaler, bool) {
	if v.CanAddr() {
		if m, ok := v.Addr().Interface().(NodeMarshaler); ok {
			return m, true
		}
	}
	if v.CanInterface() {
		if m, ok := v.Interface().(NodeMarshaler); ok {
			return m, true
		}
	}
	return nil, false
}

// assignDocValue coerces a decoded document.Value into field, first giving field's addressable pointer a chance
// to decode itself via ValueUnmarshaler.
func (b *Binder) assignDocValue(field reflect.Value, v *document.Value) error {
	if field.CanAddr() {
		if u, ok := field.Addr().Interface().(ValueUnmarshaler); ok {
			return u.UnmarshalKDLValue(v)
		}
	}
	return b.assignValue(field, v.ResolvedValue())
}
