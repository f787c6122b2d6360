// Package transform implements the TypeTransform module: user-supplied type_map and node_map callbacks applied to
// a parsed document.Document, substituting host values for decoded scalars (by type annotation) or whole nodes
// (by node name). It is a post-parse pass over the already-built document.Document, not a parser hook, since
// nothing about substitution needs to see raw tokens — by the time a Document exists, every node's children,
// arguments and properties are already resolved and the transform only needs to walk them.
package transform

import "github.com/kdl2x/kdl2/document"

// TypeFunc substitutes a host value for a decoded scalar (Integer/Float/String/Bool/Null) carrying the type
// annotation TypeFunc is keyed by in Options.TypeMap.
type TypeFunc func(value interface{}) (interface{}, error)

// NodeFunc substitutes a host value for a whole node, given its children, positional arguments, and properties.
type NodeFunc func(children []*document.Node, args []*document.Value, props document.Properties) (interface{}, error)

// Options holds the two transform tables. A missing key means identity: the value or node passes through
// unchanged. The zero value performs no substitution at all.
type Options struct {
	TypeMap map[string]TypeFunc
	NodeMap map[string]NodeFunc
}

func (o Options) empty() bool {
	return len(o.TypeMap) == 0 && len(o.NodeMap) == 0
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

// Apply walks every node in doc, depth-first, substituting matched node_map/type_map results in place. Per §4.5's
// documented order, a node's own node_map substitution runs after its descendants have already been transformed,
// and when a transformed node also carries a type annotation, type_map runs on the node_map result next. Errors
// from a transformer propagate as a *document.TransformError carrying the offending node's Span.
func Apply(doc *document.Document, opts Options) error {
	if opts.empty() {
		return nil
	}
	for _, n := range doc.Nodes {
		if err := applyNode(n, opts); err != nil {
			return err
		}
	}
	return nil
}

func applyNode(n *document.Node, opts Options) error {
	for _, arg := range n.Arguments {
		if err := applyValue(n, arg, opts); err != nil {
			return err
		}
	}
	for _, key := range n.Properties.Keys() {
		v, _ := n.Properties.Get(key)
		if err := applyValue(n, v, opts); err != nil {
			return err
		}
	}
	for _, child := range n.Children {
		if err := applyNode(child, opts); err != nil {
			return err
		}
	}

	fn, ok := opts.NodeMap[nodeName(n)]
	if !ok {
		return nil
	}
	result, err := fn(n.Children, n.Arguments, n.Properties)
	if err != nil {
		return &document.TransformError{Kind: document.TransformFailed, Node: nodeName(n), Span: n.Span, Err: err}
	}
	n.Transformed = result

	if n.Type == "" {
		return nil
	}
	tf, ok := opts.TypeMap[string(n.Type)]
	if !ok {
		return nil
	}
	result, err = tf(result)
	if err != nil {
		return &document.TransformError{Kind: document.TransformFailed, Node: nodeName(n), Span: n.Span, Err: err}
	}
	n.Transformed = result
	return nil
}

func applyValue(owner *document.Node, v *document.Value, opts Options) error {
	if v == nil || v.Type == "" {
		return nil
	}
	fn, ok := opts.TypeMap[string(v.Type)]
	if !ok {
		return nil
	}
	result, err := fn(v.ResolvedValue())
	if err != nil {
		return &document.TransformError{Kind: document.TransformFailed, Node: nodeName(owner), Span: owner.Span, Err: err}
	}
	v.Value = result
	return nil
}
