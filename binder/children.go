package binder

import (
	"reflect"

	"github.com/kdl2x/kdl2/document"
	"github.com/kdl2x/kdl2/schema"
)

// classMatch pairs a candidate Go type for a Child/Children slot with its resolved node name.
type classMatch struct {
	slotIndex int
	typ       reflect.Type
	nodeName  string
}

// bindChildren dispatches nodes (either a Node's own children, or a Document's top-level nodes) against desc's
// Child/Children slots (spec §4.8 steps 4-5): each child is resolved to a class by name, bound recursively, and
// appended/assigned to the owning slot. A name matching no slot goes to OtherChildren if declared, else it's
// UnexpectedChild. A Child (single) slot must match exactly once: MissingChild or DuplicateChild otherwise.
func (b *Binder) bindChildren(desc *schema.Descriptor, nodes []*document.Node, dest reflect.Value) error {
	matches := make([]classMatch, 0, len(desc.Children))
	for i, slot := range desc.Children {
		for _, t := range slot.Group {
			name, err := classNodeName(t)
			if err != nil {
				return err
			}
			matches = append(matches, classMatch{slotIndex: i, typ: t, nodeName: name})
		}
	}

	matchCount := make([]int, len(desc.Children))
	var unmatched []*document.Node

	for _, child := range nodes {
		name := nodeName(child)
		m, ok := findMatch(matches, name)
		if !ok {
			unmatched = append(unmatched, child)
			continue
		}
		slot := desc.Children[m.slotIndex]
		matchCount[m.slotIndex]++

		elem := reflect.New(m.typ)
		childDesc, err := schema.Build(m.typ)
		if err != nil {
			return err
		}
		if err := b.bindNode(childDesc, child, elem.Elem()); err != nil {
			return err
		}

		field := dest.FieldByIndex(slot.Field)
		switch slot.Kind {
		case schema.SlotChild:
			if matchCount[m.slotIndex] > 1 {
				return bindErr(document.BindDuplicateChild, child, slot.Name, errf("more than one %q child", name))
			}
			setChildField(field, elem)
		case schema.SlotChildren:
			appendChildField(field, elem)
		}
	}

	for i, slot := range desc.Children {
		if slot.Kind == schema.SlotChild && matchCount[i] == 0 && !slot.Optional {
			return bindErr(document.BindMissingChild, nil, slot.Name, errf("required child missing"))
		}
	}

	if len(unmatched) > 0 {
		if desc.OtherChildren != nil {
			field := dest.FieldByIndex(desc.OtherChildren.Field)
			field.Set(reflect.ValueOf(append([]*document.Node(nil), unmatched...)))
		} else {
			return bindErr(document.BindUnexpectedChild, unmatched[0], "", errf("unexpected child %q", nodeName(unmatched[0])))
		}
	}
	return nil
}

func findMatch(matches []classMatch, name string) (classMatch, bool) {
	for _, m := range matches {
		if m.nodeName == name {
			return m, true
		}
	}
	return classMatch{}, false
}

func classNodeName(t reflect.Type) (string, error) {
	d, err := schema.Build(t)
	if err != nil {
		return "", err
	}
	return d.NodeName, nil
}

// setChildField assigns a single-child slot: a struct field is set by dereferencing elem, a pointer field takes
// elem directly.
func setChildField(field reflect.Value, elem reflect.Value) {
	if field.Kind() == reflect.Ptr {
		field.Set(elem)
	} else {
		field.Set(elem.Elem())
	}
}

// appendChildField appends one resolved element to a Children slot, which may be []T or []*T.
func appendChildField(field reflect.Value, elem reflect.Value) {
	if field.Type().Elem().Kind() == reflect.Ptr {
		field.Set(reflect.Append(field, elem))
	} else {
		field.Set(reflect.Append(field, elem.Elem()))
	}
}
