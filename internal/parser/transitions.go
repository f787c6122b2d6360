package parser

import (
	"github.com/kdl2x/kdl2/document"
	"github.com/kdl2x/kdl2/internal/tokenizer"
	"github.com/kdl2x/kdl2/relaxed"
)

type transitionFunc func(*context, tokenizer.Token) error

// transitions maps a state to the tokens (or token pseudo-classes, from tokenizer.TokenID.Classes) it accepts in
// that state, and how to act on each. A token not listed — directly or via one of its classes — is a syntax
// error.
var transitions = map[state]map[tokenizer.TokenID]transitionFunc{
	stateTop: {
		tokenizer.Whitespace: func(c *context, t tokenizer.Token) error {
			if c.typeAnnot.Valid() {
				return unexpectedToken(c.state, t)
			}
			return nil
		},
		tokenizer.ClassComment: func(c *context, t tokenizer.Token) error {
			if c.typeAnnot.Valid() {
				return unexpectedToken(c.state, t)
			}
			return nil
		},
		tokenizer.Slashdash: func(c *context, t tokenizer.Token) error {
			c.suppressNode = true
			return nil
		},
		tokenizer.ParensOpen: func(c *context, t tokenizer.Token) error {
			c.pushState(stateTypeAnnotation)
			return nil
		},
		tokenizer.ClassIdentifier: func(c *context, t tokenizer.Token) error {
			if t.ID == tokenizer.BareIdentifier && len(t.Data) > 1 && t.Data[len(t.Data)-1] == ':' && c.opts.RelaxedNonCompliant.Permit(relaxed.YAMLTOMLAssignments) {
				t.Data = t.Data[:len(t.Data)-1]
			}
			n := c.beginNode()
			if err := n.SetNameToken(t); err != nil {
				return err
			}
			if c.typeAnnot.Valid() {
				n.Type = document.TypeAnnotation(c.typeAnnot.Data)
				c.typeAnnot.Clear()
			}
			n.Span = spanOf(t)
			c.pushState(stateNodeName)
			return nil
		},
		tokenizer.BraceClose: func(c *context, t tokenizer.Token) error {
			if len(c.states) == 0 {
				return parseErr(document.ParseUnbalancedBraces, t, errUnbalanced)
			}
			c.closeChildren()
			return c.popState()
		},
		tokenizer.ClassTerminator: func(c *context, t tokenizer.Token) error {
			if c.typeAnnot.Valid() {
				return parseErr(document.ParseInvalidTypeAnnotation, t, errExpectedValueAfterType)
			}
			return nil
		},
	},

	stateNodeName: {
		tokenizer.Whitespace: func(c *context, t tokenizer.Token) error {
			c.state = stateNodeBody
			return nil
		},
		tokenizer.Equals: func(c *context, t tokenizer.Token) error {
			if c.opts.RelaxedNonCompliant.Permit(relaxed.YAMLTOMLAssignments) {
				c.state = stateNodeBody
				return nil
			}
			return unexpectedToken(c.state, t)
		},
		tokenizer.ClassTerminator: func(c *context, t tokenizer.Token) error {
			if c.continuation {
				return nil
			}
			return c.endNode()
		},
	},

	stateNodeBody: {
		tokenizer.Whitespace: func(c *context, t tokenizer.Token) error {
			if c.typeAnnot.Valid() {
				return unexpectedToken(c.state, t)
			}
			return nil
		},
		tokenizer.MultiLineComment: func(c *context, t tokenizer.Token) error {
			if c.typeAnnot.Valid() {
				return unexpectedToken(c.state, t)
			}
			return nil
		},
		tokenizer.SingleLineComment: func(c *context, t tokenizer.Token) error {
			c.state = stateNodeTrailingComment
			return nil
		},
		tokenizer.Continuation: func(c *context, t tokenizer.Token) error {
			c.continuation = true
			return nil
		},
		tokenizer.Slashdash: func(c *context, t tokenizer.Token) error {
			c.suppressEntry = true
			return nil
		},
		tokenizer.ParensOpen: func(c *context, t tokenizer.Token) error {
			c.pushState(stateTypeAnnotation)
			return nil
		},
		tokenizer.Equals: func(c *context, t tokenizer.Token) error {
			if c.opts.RelaxedNonCompliant.Permit(relaxed.YAMLTOMLAssignments) && !c.typeAnnot.Valid() && !c.ident.Valid() {
				return nil
			}
			return unexpectedToken(c.state, t)
		},
		tokenizer.ClassValue: func(c *context, t tokenizer.Token) error {
			c.ident = t
			c.state = stateEntry
			return nil
		},
		tokenizer.BraceOpen: func(c *context, t tokenizer.Token) error {
			c.openChildren()
			return nil
		},
		tokenizer.ClassTerminator: func(c *context, t tokenizer.Token) error {
			if c.continuation {
				return nil
			}
			if c.typeAnnot.Valid() {
				return parseErr(document.ParseInvalidTypeAnnotation, t, errExpectedValueAfterType)
			}
			return c.endNode()
		},
	},

	stateNodeTrailingComment: {
		tokenizer.ClassEndOfLine: func(c *context, t tokenizer.Token) error {
			if c.continuation {
				c.continuation = false
				c.state = stateNodeBody
				return nil
			}
			return c.endNode()
		},
	},

	stateEntry: {
		tokenizer.Whitespace: func(c *context, t tokenizer.Token) error {
			if err := c.flushPendingArgument(); err != nil {
				return err
			}
			c.state = stateNodeBody
			return nil
		},
		tokenizer.MultiLineComment: func(c *context, t tokenizer.Token) error {
			return nil
		},
		tokenizer.SingleLineComment: func(c *context, t tokenizer.Token) error {
			if err := c.flushPendingArgument(); err != nil {
				return err
			}
			c.state = stateNodeTrailingComment
			return nil
		},
		tokenizer.Equals: func(c *context, t tokenizer.Token) error {
			if c.typeAnnot.Valid() || (c.ident.ID != tokenizer.BareIdentifier && c.ident.ID != tokenizer.QuotedString && c.ident.ID != tokenizer.RawString) {
				return unexpectedToken(c.state, t)
			}
			c.state = statePropertyValue
			return nil
		},
		tokenizer.BraceOpen: func(c *context, t tokenizer.Token) error {
			if err := c.flushPendingArgument(); err != nil {
				return err
			}
			c.openChildren()
			return nil
		},
		tokenizer.ClassValue: func(c *context, t tokenizer.Token) error {
			if err := c.flushPendingArgument(); err != nil {
				return err
			}
			c.ident = t
			return nil
		},
		tokenizer.ClassTerminator: func(c *context, t tokenizer.Token) error {
			if err := c.flushPendingArgument(); err != nil {
				return err
			}
			return c.endNode()
		},
	},

	statePropertyValue: {
		tokenizer.ParensOpen: func(c *context, t tokenizer.Token) error {
			c.pushState(stateTypeAnnotation)
			return nil
		},
		tokenizer.ClassValue: func(c *context, t tokenizer.Token) error {
			defer c.clearEntry()
			if c.suppressEntry {
				c.suppressEntry = false
				c.state = stateNodeBody
				return nil
			}
			_, err := c.currentNode().AddPropertyToken(c.ident, t, c.typeAnnot)
			if err == nil {
				c.state = stateNodeBody
			}
			return err
		},
	},

	stateTypeAnnotation: {
		tokenizer.BareIdentifier: func(c *context, t tokenizer.Token) error {
			c.typeAnnot = t
			c.state = stateTypeAnnotationClose
			return nil
		},
		tokenizer.ClassString: func(c *context, t tokenizer.Token) error {
			c.typeAnnot = t
			c.state = stateTypeAnnotationClose
			return nil
		},
	},
	stateTypeAnnotationClose: {
		tokenizer.ParensClose: func(c *context, t tokenizer.Token) error {
			return c.popState()
		},
	},
}
