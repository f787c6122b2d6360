package binder

import (
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/kdl2x/kdl2/document"
	"github.com/kdl2x/kdl2/internal/coerce"
	"github.com/kdl2x/kdl2/schema"
)

// Emit is the inverse of Bind: it walks v's schema.Descriptor and produces the document.Document whose top-level
// nodes are v's Child/Children/OtherChildren slots.
func (b *Binder) Emit(v interface{}) (*document.Document, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	desc, err := schema.Build(rv.Type())
	if err != nil {
		return nil, err
	}
	doc := document.New()
	nodes, err := b.emitChildren(desc, rv)
	if err != nil {
		return nil, err
	}
	doc.Nodes = nodes
	return doc, nil
}

// EmitNode is the inverse of BindNode: it produces a single document.Node named name carrying v's Argument,
// Property, and Child/Children slots.
func (b *Binder) EmitNode(name string, v interface{}) (*document.Node, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	desc, err := schema.Build(rv.Type())
	if err != nil {
		return nil, err
	}
	return b.emitNode(name, desc, rv)
}

func (b *Binder) emitNode(name string, desc *schema.Descriptor, src reflect.Value) (*document.Node, error) {
	n := document.NewNode()
	n.SetName(name)

	if m, ok := asNodeMarshaler(src); ok {
		err := m.MarshalKDL(n)
		return n, err
	}

	for _, slot := range desc.Arguments {
		field := src.FieldByIndex(slot.Field)
		if slot.Optional && isZero(field) {
			continue
		}
		n.AddArgument(resolvedOf(field), "")
	}

	for _, slot := range desc.PropertySlots() {
		field := src.FieldByIndex(slot.Field)
		if slot.Optional && isZero(field) {
			continue
		}
		n.AddProperty(slot.Name, resolvedOf(field), "")
	}

	if desc.OtherArguments != nil {
		emitOtherArguments(n, src.FieldByIndex(desc.OtherArguments.Field))
	}
	if desc.OtherProperties != nil {
		emitOtherProperties(n, src.FieldByIndex(desc.OtherProperties.Field))
	}

	children, err := b.emitChildren(desc, src)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		n.AddNode(c)
	}
	return n, nil
}

func (b *Binder) emitChildren(desc *schema.Descriptor, src reflect.Value) ([]*document.Node, error) {
	var nodes []*document.Node
	for _, slot := range desc.Children {
		field := src.FieldByIndex(slot.Field)
		switch slot.Kind {
		case schema.SlotChild:
			elem := field
			if elem.Kind() == reflect.Ptr {
				if elem.IsNil() {
					continue
				}
				elem = elem.Elem()
			} else if isZero(elem) && slot.Optional {
				continue
			}
			childDesc, err := schema.Build(elem.Type())
			if err != nil {
				return nil, err
			}
			n, err := b.emitNode(childDesc.NodeName, childDesc, elem)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		case schema.SlotChildren:
			for i := 0; i < field.Len(); i++ {
				elem := field.Index(i)
				if elem.Kind() == reflect.Ptr {
					elem = elem.Elem()
				}
				childDesc, err := schema.Build(elem.Type())
				if err != nil {
					return nil, err
				}
				n, err := b.emitNode(childDesc.NodeName, childDesc, elem)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, n)
			}
		}
	}
	if desc.OtherChildren != nil {
		field := src.FieldByIndex(desc.OtherChildren.Field)
		for i := 0; i < field.Len(); i++ {
			nodes = append(nodes, field.Index(i).Interface().(*document.Node))
		}
	}
	return nodes, nil
}

func isZero(v reflect.Value) bool {
	return v.IsZero()
}

// resolvedOf converts a schema field's Go value into the interface{} payload document.Node.Add{Argument,Property}
// expect: uuid.UUID and time.Time widen to their string form, everything else passes through reflect.Value.Interface.
func resolvedOf(v reflect.Value) interface{} {
	if v.Type() == timeType {
		return v.Interface().(time.Time).Format(time.RFC3339)
	}
	if v.Type() == uuidType {
		return v.Interface().(uuid.UUID).String()
	}
	return v.Interface()
}

var docValuePtrType = reflect.TypeOf((*document.Value)(nil))

// emitOtherArguments is Emit's inverse of the binder's OtherArguments catch-all: a []*document.Value slot is
// spliced back onto n.Arguments verbatim (preserving each value's original type annotation), while a typed slice
// is re-widened through resolvedOf and AddArgument like any declared argument slot.
func emitOtherArguments(n *document.Node, field reflect.Value) {
	if field.Type().Elem() == docValuePtrType {
		for i := 0; i < field.Len(); i++ {
			n.Arguments = append(n.Arguments, field.Index(i).Interface().(*document.Value))
		}
		return
	}
	for i := 0; i < field.Len(); i++ {
		n.AddArgument(resolvedOf(field.Index(i)), "")
	}
}

// emitOtherProperties is emitOtherArguments' property-side counterpart. A map keyed by string whose value type is
// string gets a pass through coerce.FromString first, matching how a plain map[string]string catch-all loses its
// original numeric/bool typing on the way in and needs it guessed back on the way out.
func emitOtherProperties(n *document.Node, field reflect.Value) {
	if field.Len() == 0 {
		return
	}
	if !n.Properties.Allocated() {
		n.Properties.Alloc()
	}
	valueIsDocPtr := field.Type().Elem() == docValuePtrType
	valueIsString := field.Type().Elem().Kind() == reflect.String
	for _, key := range field.MapKeys() {
		elem := field.MapIndex(key)
		switch {
		case valueIsDocPtr:
			n.Properties.Add(key.String(), elem.Interface().(*document.Value))
		case valueIsString:
			n.AddProperty(key.String(), coerce.FromString(elem.String()), "")
		default:
			n.AddProperty(key.String(), resolvedOf(elem), "")
		}
	}
}
