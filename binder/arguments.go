package binder

import (
	"reflect"

	"github.com/kdl2x/kdl2/document"
	"github.com/kdl2x/kdl2/schema"
)

func bindErr(kind document.BindKind, node *document.Node, slot string, err error) *document.BindError {
	e := &document.BindError{Kind: kind, Node: nodeName(node), Slot: slot, Err: err}
	if node != nil {
		e.Span = node.Span
	}
	return e
}

// bindArguments fills desc.Arguments, in declaration order, from node.Arguments (spec §4.8 step 2). Anything
// left over goes to OtherArguments if declared, else it's an ExtraArgument error; a required slot with nothing
// left to consume is a MissingArgument error.
func (b *Binder) bindArguments(desc *schema.Descriptor, node *document.Node, dest reflect.Value) error {
	args := node.Arguments
	i := 0
	for _, slot := range desc.Arguments {
		if i >= len(args) {
			if slot.Optional {
				continue
			}
			return bindErr(document.BindMissingArgument, node, slot.Name, errf("argument %d missing", i))
		}
		field := dest.FieldByIndex(slot.Field)
		if err := b.assignDocValue(field, args[i]); err != nil {
			return bindErr(document.BindTypeMismatch, node, slot.Name, err)
		}
		b.trace("node %q: argument %d -> field %s", nodeName(node), i, slot.Name)
		i++
	}

	if i < len(args) {
		if desc.OtherArguments != nil {
			rest := args[i:]
			field := dest.FieldByIndex(desc.OtherArguments.Field)
			if err := b.assignOtherArguments(field, rest); err != nil {
				return bindErr(document.BindTypeMismatch, node, desc.OtherArguments.Name, err)
			}
		} else {
			return bindErr(document.BindExtraArgument, node, "", errf("%d unexpected argument(s)", len(args)-i))
		}
	}
	return nil
}

// bindProperties fills desc.Properties by name from node.Properties (spec §4.8 step 3). Declared but absent
// optional properties are left at their Go zero value; required ones missing are MissingProperty; properties
// present in the node but not declared go to OtherProperties if declared, else ExtraProperty.
func (b *Binder) bindProperties(desc *schema.Descriptor, node *document.Node, dest reflect.Value) error {
	seen := make(map[string]bool, node.Properties.Len())

	for _, slot := range desc.PropertySlots() {
		val, ok := node.Properties.Get(slot.Name)
		seen[slot.Name] = true
		if !ok {
			if slot.Optional {
				continue
			}
			return bindErr(document.BindMissingProperty, node, slot.Name, errf("property %q missing", slot.Name))
		}
		field := dest.FieldByIndex(slot.Field)
		if err := b.assignDocValue(field, val); err != nil {
			return bindErr(document.BindTypeMismatch, node, slot.Name, err)
		}
		b.trace("node %q: property %q -> field %s", nodeName(node), slot.Name, slot.Name)
	}

	var extra []string
	for _, key := range node.Properties.Keys() {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	if len(extra) > 0 {
		if desc.OtherProperties != nil {
			field := dest.FieldByIndex(desc.OtherProperties.Field)
			if err := b.assignOtherProperties(field, node.Properties, extra); err != nil {
				return bindErr(document.BindTypeMismatch, node, desc.OtherProperties.Name, err)
			}
		} else {
			return bindErr(document.BindExtraProperty, node, extra[0], errf("unexpected property %q", extra[0]))
		}
	}
	return nil
}
