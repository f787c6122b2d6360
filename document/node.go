package document

import (
	"bytes"
	"io"
	"strings"

	"github.com/kdl2x/kdl2/internal/tokenizer"
)

// TypeAnnotation is the short identifier that may precede a node name or a value, eg: (u8)231.
type TypeAnnotation string

// Node represents a single node in a KDL document: a name, an optional type annotation, ordered arguments, an
// ordered-insertion property set, and an optional ordered list of children.
type Node struct {
	// Name is the node's name, itself a Value so that it may carry escape-decoded quoting.
	Name *Value
	// Type is the node's type annotation, or "" if none was given.
	Type TypeAnnotation
	// Arguments is the ordered list of positional argument values.
	Arguments []*Value
	// Properties is the insertion-ordered (last-wins) set of named properties.
	Properties Properties
	// Children is the ordered list of child nodes, or nil if there are none; an empty children block also leaves it
	// nil, so HasChildren tells `node {}` apart from `node`.
	Children []*Node
	// HasChildren records whether a children block was present in the source, independent of whether it produced
	// any child nodes (an empty `node {}` is distinct from a bare `node`).
	HasChildren bool
	// Span is the node's source location, for diagnostics.
	Span Span
	// Transformed holds the host value substituted for this node by a TypeTransform node_map callback, or nil if
	// no node_map entry matched this node's name.
	Transformed interface{}
}

// NewNode creates an empty Node.
func NewNode() *Node {
	return &Node{}
}

// ShallowCopy returns a shallow copy of n.
func (n *Node) ShallowCopy() *Node {
	r := &Node{}
	*r = *n
	return r
}

// AddNode appends child as a child of n and marks n as having a children block.
func (n *Node) AddNode(child *Node) {
	n.Children = append(n.Children, child)
	n.HasChildren = true
}

// SetName sets the node's name to a plain string value.
func (n *Node) SetName(name string) {
	n.Name = &Value{Value: name}
}

// SetNameToken sets the node's name from a lexer token.
func (n *Node) SetNameToken(t tokenizer.Token) error {
	v, err := ValueFromToken(t)
	if err != nil {
		return err
	}
	n.Name = v
	return nil
}

// AddArgument appends a positional argument with the given decoded value and type annotation (which may be "").
func (n *Node) AddArgument(value interface{}, typeAnnot TypeAnnotation) *Value {
	v := &Value{Value: value, Type: typeAnnot}
	n.Arguments = append(n.Arguments, v)
	return v
}

// AddArgumentToken decodes t as a Value and appends it as a positional argument with the given type annotation
// token (which may be invalid, meaning no annotation).
func (n *Node) AddArgumentToken(t tokenizer.Token, typeAnnot tokenizer.Token) error {
	v, err := ValueFromToken(t)
	if err != nil {
		return err
	}
	if typeAnnot.Valid() {
		v.Type = TypeAnnotation(typeAnnot.Data)
	}
	n.Arguments = append(n.Arguments, v)
	return nil
}

// AddProperty sets property name to value with the given type annotation (which may be ""), allocating the
// property set on first use.
func (n *Node) AddProperty(name string, value interface{}, typeAnnot TypeAnnotation) *Value {
	v := &Value{Type: typeAnnot, Value: value}
	if !n.Properties.Allocated() {
		n.Properties.Alloc()
	}
	n.Properties.Add(name, v)
	return v
}

// AddPropertyToken decodes a property name/value token pair (with an optional type annotation token on the value)
// and adds it to n's property set, returning the decoded Value.
func (n *Node) AddPropertyToken(name tokenizer.Token, value tokenizer.Token, typeAnnot tokenizer.Token) (*Value, error) {
	nt, err := ValueFromToken(name)
	if err != nil {
		return nil, err
	}
	vt, err := ValueFromToken(value)
	if err != nil {
		return nil, err
	}
	if typeAnnot.Valid() {
		vt.Type = TypeAnnotation(typeAnnot.Data)
	}

	if !n.Properties.Allocated() {
		n.Properties.Alloc()
	}
	n.Properties.Add(nt.ValueString(), vt)

	return vt, nil
}

// NodeWriteOptions controls how a node is rendered by WriteToOptions.
type NodeWriteOptions struct {
	// LeadingTrailingSpace includes indentation before, and a newline after, the node.
	LeadingTrailingSpace bool
	// NameAndType includes the node's type annotation and name in the output.
	NameAndType bool
	// Depth is the indentation depth.
	Depth int
	// Indent is the byte string repeated Depth times for indentation.
	Indent []byte
	// IgnoreFlags discards the original hex/octal/binary or raw/quoted/bare formatting hints.
	IgnoreFlags bool
}

var defaultNodeWriteOptions = NodeWriteOptions{
	NameAndType: true,
	Indent:      []byte{'\t'},
}

// String returns the canonical KDL representation of n, including its type annotation and name.
func (n *Node) String() string {
	b := strings.Builder{}
	_, _ = n.WriteTo(&b)
	return b.String()
}

// ValueString returns the KDL representation of n's arguments, properties, and children, without its name or type.
func (n *Node) ValueString() string {
	b := strings.Builder{}
	opts := defaultNodeWriteOptions
	opts.NameAndType = false
	_, _ = n.WriteToOptions(&b, opts)
	return b.String()
}

// WriteTo writes the canonical KDL representation of n, including its type annotation and name.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	return n.WriteToOptions(w, defaultNodeWriteOptions)
}

// WriteToOptions writes n's KDL representation with the given options.
func (n *Node) WriteToOptions(w io.Writer, opts NodeWriteOptions) (int64, error) {
	var (
		nw  int64
		err error
	)
	write := func(b []byte) {
		if err != nil {
			return
		}
		c, e := w.Write(b)
		nw += int64(c)
		err = e
	}

	if opts.Depth > 0 && opts.LeadingTrailingSpace {
		write(bytes.Repeat(opts.Indent, opts.Depth))
	}

	if opts.NameAndType {
		if len(n.Type) > 0 {
			write([]byte{'('})
			write([]byte(n.Type))
			write([]byte{')'})
		}
		write([]byte(n.Name.NodeNameString()))
	}

	for i, arg := range n.Arguments {
		if opts.NameAndType || i > 0 {
			write([]byte{' '})
		}
		if opts.IgnoreFlags {
			write([]byte(arg.UnformattedString()))
		} else {
			write([]byte(arg.FormattedString()))
		}
	}

	if n.Properties.Exist() {
		if opts.IgnoreFlags {
			write([]byte(n.Properties.UnformattedString()))
		} else {
			write([]byte(n.Properties.String()))
		}
	}

	if n.HasChildren {
		write([]byte{' ', '{'})
		if len(n.Children) > 0 {
			write([]byte{'\n'})
			opts.Depth++
			for _, child := range n.Children {
				if err != nil {
					break
				}
				if nnw, cerr := child.WriteToOptions(w, opts); cerr != nil {
					err = cerr
				} else {
					nw += nnw
				}
			}
			opts.Depth--
			if opts.Depth > 0 {
				write(bytes.Repeat(opts.Indent, opts.Depth))
			}
		}
		write([]byte{'}'})
	}

	if opts.LeadingTrailingSpace {
		write([]byte{'\n'})
	}

	return nw, err
}
