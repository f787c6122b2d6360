package document

// Document is the top-level container for a KDL document: an ordered list of top-level nodes. Navigation
// (ByName/Descend/DescendOne) and structural equality live in navigate.go.
type Document struct {
	Nodes []*Node
}

// AddNode appends child as a top-level node of d.
func (d *Document) AddNode(child *Node) {
	d.Nodes = append(d.Nodes, child)
}

// New creates an empty Document with room for a handful of top-level nodes before its slice reallocates.
func New() *Document {
	return &Document{
		Nodes: make([]*Node, 0, 32),
	}
}
