// Package generator renders a document.Document back to KDL text. It mirrors document.Node's own
// WriteToOptions machinery but drives it across a whole document and owns the process-wide options (indent
// style, whether to preserve the source's original number/string formatting).
package generator

import (
	"io"

	"github.com/kdl2x/kdl2/document"
)

// Options controls how a Document is rendered.
type Options struct {
	// Indent is the byte string repeated once per nesting depth.
	Indent string
	// IgnoreFlags discards the original hex/octal/binary or raw/quoted/bare formatting hints recorded on each
	// Value, re-rendering everything in its canonical form instead.
	IgnoreFlags bool
}

// Generator renders a Document to an io.Writer under a fixed set of Options.
type Generator struct {
	w       io.Writer
	depth   int
	options Options
}

// DefaultOptions indents with a single tab and preserves each Value's original formatting.
var DefaultOptions = Options{
	Indent: "\t",
}

// NewOptions creates a Generator that writes to w under opts.
func NewOptions(w io.Writer, opts Options) *Generator {
	return &Generator{
		w:       w,
		options: opts,
	}
}

// New creates a Generator that writes to w under DefaultOptions.
func New(w io.Writer) *Generator {
	return NewOptions(w, DefaultOptions)
}

func (g *Generator) nodeOptions(nameAndType bool) document.NodeWriteOptions {
	return document.NodeWriteOptions{
		LeadingTrailingSpace: true,
		NameAndType:          nameAndType,
		Depth:                g.depth,
		Indent:               []byte(g.options.Indent),
		IgnoreFlags:          g.options.IgnoreFlags,
	}
}

// generateNodes writes each of nodes at the generator's current depth.
func (g *Generator) generateNodes(nodes []*document.Node) error {
	opts := g.nodeOptions(true)
	for _, node := range nodes {
		if _, err := node.WriteToOptions(g.w, opts); err != nil {
			return err
		}
	}
	return nil
}

// Generate writes the full KDL representation of d.
func (g *Generator) Generate(d *document.Document) error {
	return g.generateNodes(d.Nodes)
}
