package document

import (
	"fmt"
	"reflect"
)

// NavigationKind identifies why a single-match descent failed.
type NavigationKind int

const (
	// NavigationNotFound means a single-match descent matched zero nodes.
	NavigationNotFound NavigationKind = iota
	// NavigationAmbiguous means a single-match descent matched more than one node.
	NavigationAmbiguous
)

func (k NavigationKind) String() string {
	switch k {
	case NavigationNotFound:
		return "not found"
	case NavigationAmbiguous:
		return "ambiguous"
	default:
		return "navigation error"
	}
}

// NavigationError reports a failed single-match descent (the `//` path form).
type NavigationError struct {
	Kind NavigationKind
	Path []string
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("%s: path %v", e.Kind, e.Path)
}

// ByName returns every top-level node named name, in document order. This is the `document / name` form.
func (d *Document) ByName(name string) []*Node {
	return filterByName(d.Nodes, name)
}

// Descend resolves a slash-separated path against d's top-level nodes, descending one name per path element and
// returning every node reached at the final element, in order. This is the `document / a / b / c` form, which
// returns a flat sequence rather than a single node.
func (d *Document) Descend(path ...string) []*Node {
	return descend(d.Nodes, path)
}

// DescendOne is Descend restricted to exactly one match: it fails with a NavigationError of kind NavigationNotFound
// if the path matches nothing, or NavigationAmbiguous if it matches more than one node. This is the
// `document // name` form.
func (d *Document) DescendOne(path ...string) (*Node, error) {
	return descendOne(d.Nodes, path)
}

// ByName returns every immediate child of n named name, in document order. This is the `node / name` form.
func (n *Node) ByName(name string) []*Node {
	return filterByName(n.Children, name)
}

// Descend resolves a slash-separated path against n's children, the same way Document.Descend does for top-level
// nodes.
func (n *Node) Descend(path ...string) []*Node {
	return descend(n.Children, path)
}

// DescendOne is Descend restricted to exactly one match; see Document.DescendOne.
func (n *Node) DescendOne(path ...string) (*Node, error) {
	return descendOne(n.Children, path)
}

// Arg returns n's i'th positional argument, indexing by non-negative integer per spec §4.6.
func (n *Node) Arg(i int) (*Value, bool) {
	if i < 0 || i >= len(n.Arguments) {
		return nil, false
	}
	return n.Arguments[i], true
}

// Prop returns n's property named name, indexing by string per spec §4.6. It is Properties.Get under a name that
// reads naturally off a Node.
func (n *Node) Prop(name string) (*Value, bool) {
	return n.Properties.Get(name)
}

func filterByName(nodes []*Node, name string) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n.Name != nil && n.Name.ValueString() == name {
			out = append(out, n)
		}
	}
	return out
}

func descend(level []*Node, path []string) []*Node {
	matched := level
	for i, name := range path {
		matched = filterByName(matched, name)
		if i == len(path)-1 || len(matched) == 0 {
			break
		}
		var next []*Node
		for _, n := range matched {
			next = append(next, n.Children...)
		}
		matched = next
	}
	if len(path) == 0 {
		return nil
	}
	return matched
}

func descendOne(level []*Node, path []string) (*Node, error) {
	matches := descend(level, path)
	switch len(matches) {
	case 0:
		return nil, &NavigationError{Kind: NavigationNotFound, Path: path}
	case 1:
		return matches[0], nil
	default:
		return nil, &NavigationError{Kind: NavigationAmbiguous, Path: path}
	}
}

// Equal reports whether d and other are structurally equal: same top-level nodes in the same order, each
// structurally equal per Node.Equal.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return nodesEqual(d.Nodes, other.Nodes)
}

// Equal reports whether n and other are structurally equal per spec §4.6: ordered args, (order-preserved)
// properties, children, and node name all agree. Source spans and original formatting flags are ignored.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if !valuesEqualPtr(n.Name, other.Name) || n.Type != other.Type {
		return false
	}
	if len(n.Arguments) != len(other.Arguments) {
		return false
	}
	for i, a := range n.Arguments {
		if !valuesEqualPtr(a, other.Arguments[i]) {
			return false
		}
	}
	if n.Properties.Len() != other.Properties.Len() {
		return false
	}
	otherKeys := other.Properties.Keys()
	for i, k := range n.Properties.Keys() {
		a, _ := n.Properties.Get(k)
		b, ok := other.Properties.Get(k)
		if !ok || otherKeys[i] != k || !valuesEqualPtr(a, b) {
			return false
		}
	}
	return nodesEqual(n.Children, other.Children)
}

func nodesEqual(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func valuesEqualPtr(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Type == b.Type && reflect.DeepEqual(a.Value, b.Value)
}
