package parser

import (
	"github.com/kdl2x/kdl2/document"
	"github.com/kdl2x/kdl2/internal/tokenizer"
	"github.com/kdl2x/kdl2/relaxed"
)

// Options configures a parse.
type Options struct {
	// RelaxedNonCompliant permits the noncompliant grammar extensions described by relaxed.Flags.
	RelaxedNonCompliant relaxed.Flags
}

// context carries the mutable state of a single document parse: the node/state stacks, the pending
// identifier/type-annotation tokens, and the slashdash suppression state for each of the three positions a `/-`
// may appear in (node, argument-or-property, children block).
type context struct {
	opts Options

	doc *document.Document

	states []state
	state  state

	nodes []*document.Node

	// ident holds a token that might be an argument value or a property key, until the following token (an `=`
	// or not) disambiguates it.
	ident tokenizer.Token
	// typeAnnot holds a pending type annotation token, applied to whatever node or value follows it.
	typeAnnot tokenizer.Token

	continuation bool

	suppressNode  bool
	suppressEntry bool
	// childSuppressed has one entry per currently-open children block, true if that block (or an ancestor of it)
	// was introduced by a slashdash and so every node within it is parsed but dropped from the tree.
	childSuppressed []bool
}

// suppressed reports whether the innermost open children block (if any) is currently suppressed.
func (c *context) suppressed() bool {
	return len(c.childSuppressed) > 0 && c.childSuppressed[len(c.childSuppressed)-1]
}

func newContext(opts Options) *context {
	return &context{
		opts:  opts,
		doc:   document.New(),
		state: stateTop,
	}
}

// Document returns the document built so far.
func (c *context) Document() *document.Document {
	return c.doc
}

func (c *context) pushState(s state) {
	c.states = append(c.states, c.state)
	c.state = s
}

func (c *context) popState() error {
	if len(c.states) == 0 {
		return parseErr(document.ParseUnexpectedToken, tokenizer.Token{}, errUnbalanced)
	}
	c.state = c.states[len(c.states)-1]
	c.states = c.states[:len(c.states)-1]
	return nil
}

// beginNode pushes a new node onto both the document tree (unless it or an enclosing children block is currently
// suppressed by a slashdash) and the node stack, and clears the pending suppression flag.
func (c *context) beginNode() *document.Node {
	n := document.NewNode()
	if c.suppressNode || c.suppressed() {
		c.suppressNode = false
	} else if len(c.nodes) > 0 {
		c.nodes[len(c.nodes)-1].AddNode(n)
	} else {
		c.doc.AddNode(n)
	}
	c.nodes = append(c.nodes, n)
	return n
}

func (c *context) currentNode() *document.Node {
	return c.nodes[len(c.nodes)-1]
}

func (c *context) endNode() error {
	if len(c.nodes) == 0 {
		return parseErr(document.ParseUnexpectedToken, tokenizer.Token{}, errUnbalanced)
	}
	c.nodes = c.nodes[:len(c.nodes)-1]
	return c.popState()
}

// clearEntry drops any pending identifier/type-annotation tokens once they've been consumed as an argument or a
// property key/value pair.
func (c *context) clearEntry() {
	c.ident.Clear()
	c.typeAnnot.Clear()
}

// openChildren pushes stateTop to begin parsing a children block, honoring a pending slashdash suppression of
// the whole block. A block is suppressed if its own `/-` fired, or if it nests inside an already-suppressed
// block — suppression of an ancestor always propagates to its descendants.
func (c *context) openChildren() {
	suppressed := c.suppressed()
	if c.suppressEntry {
		c.suppressEntry = false
		suppressed = true
	}
	c.childSuppressed = append(c.childSuppressed, suppressed)
	c.pushState(stateTop)
}

// closeChildren pops the children-block suppression state pushed by the matching openChildren.
func (c *context) closeChildren() {
	if len(c.childSuppressed) > 0 {
		c.childSuppressed = c.childSuppressed[:len(c.childSuppressed)-1]
	}
}

// flushPendingArgument commits c.ident (if any) as a positional argument of the current node, honoring a pending
// slashdash suppression.
func (c *context) flushPendingArgument() error {
	if !c.ident.Valid() {
		return nil
	}
	defer c.clearEntry()
	if c.suppressEntry {
		c.suppressEntry = false
		return nil
	}
	return c.currentNode().AddArgumentToken(c.ident, c.typeAnnot)
}
