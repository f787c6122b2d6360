// Package binder implements the schema-binding engine: it reduces a parsed document.Document (or a single
// document.Node) against a schema.Descriptor into a typed Go object graph, and the inverse (Emit). It plays the
// role internal/marshaler/unmarshal.go and marshal.go played in the teacher, rebuilt against the schema package's
// slot descriptors instead of a flat field-name index, and reporting the closed document.BindKind error set
// instead of ad hoc fmt.Errorf text.
package binder

import (
	"fmt"
	"reflect"

	"github.com/kdl2x/kdl2/document"
	"github.com/kdl2x/kdl2/relaxed"
	"github.com/kdl2x/kdl2/schema"
)

// Binder reduces Documents/Nodes into typed values. The zero value is ready to use.
type Binder struct {
	// Trace, if non-nil, is called with a human-readable line for each slot the binder resolves — the same
	// "optional injected function, nil means silent" shape the lexer's Scanner.Logger field uses.
	Trace func(format string, args ...interface{})

	// RelaxedNonCompliant permits relaxed.MultiplierSuffixes coercion of quoted string values ("30s", "4Gb") into
	// numeric or time.Duration fields, on top of whatever the parser already accepted as bare suffixed literals.
	RelaxedNonCompliant relaxed.Flags
}

// New creates a Binder with no trace hook.
func New() *Binder {
	return &Binder{}
}

func (b *Binder) trace(format string, args ...interface{}) {
	if b.Trace != nil {
		b.Trace(format, args...)
	}
}

// Bind reduces doc's top-level nodes into v, which must be a non-nil pointer to a struct whose Child/Children/
// OtherChildren slots describe the document's node group. Argument and Property slots on the root type are
// meaningless here (a Document has neither) and are simply left unset.
func (b *Binder) Bind(doc *document.Document, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("binder: Bind destination must be a non-nil pointer, got %T", v)
	}
	desc, err := schema.Build(rv.Type())
	if err != nil {
		return err
	}
	return b.bindChildren(desc, doc.Nodes, rv.Elem())
}

// BindNode reduces a single node's arguments, properties, and children into v, which must be a non-nil pointer
// to a struct described by v's schema.Descriptor. This implements spec §4.8 steps 2-5 for one already-resolved
// node class.
func (b *Binder) BindNode(node *document.Node, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("binder: BindNode destination must be a non-nil pointer, got %T", v)
	}
	desc, err := schema.Build(rv.Type())
	if err != nil {
		return err
	}
	return b.bindNode(desc, node, rv.Elem())
}

func nodeName(n *document.Node) string {
	if n.Name == nil {
		return ""
	}
	if s, ok := n.Name.ResolvedValue().(string); ok {
		return s
	}
	return n.Name.NodeNameString()
}

func (b *Binder) bindNode(desc *schema.Descriptor, node *document.Node, dest reflect.Value) error {
	if u, ok := asNodeUnmarshaler(dest); ok {
		return u.UnmarshalKDL(node)
	}
	b.trace("binding node %q against %s", nodeName(node), desc.Type)
	if err := b.bindArguments(desc, node, dest); err != nil {
		return err
	}
	if err := b.bindProperties(desc, node, dest); err != nil {
		return err
	}
	return b.bindChildren(desc, node.Children, dest)
}
