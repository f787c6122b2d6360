// Package parser assembles a stream of tokenizer.Tokens into a document.Document, by walking a small state
// machine (see state.go) driven by a table of per-state, per-token transition functions (see transitions.go).
package parser

import (
	"github.com/kdl2x/kdl2/document"
	"github.com/kdl2x/kdl2/internal/tokenizer"
)

// Parser holds no per-document state; all of that lives in a *context, so a single Parser can drive many
// concurrent parses.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// NewContext creates a fresh parse context with default options.
func (p *Parser) NewContext() *context {
	return newContext(Options{})
}

// NewContextOptions creates a fresh parse context with the given options.
func (p *Parser) NewContextOptions(opts Options) *context {
	return newContext(opts)
}

// Step feeds one token into the context, advancing the state machine. It returns a non-nil *document.ParseError on
// a syntax error.
func (p *Parser) Step(c *context, t tokenizer.Token) error {
	byState, ok := transitions[c.state]
	if !ok {
		return unexpectedToken(c.state, t)
	}
	if fn, ok := byState[t.ID]; ok {
		return fn(c, t)
	}
	for _, class := range t.ID.Classes() {
		if fn, ok := byState[class]; ok {
			return fn(c, t)
		}
	}
	return unexpectedToken(c.state, t)
}

// Finish validates that the context ended in a legal state: every opened children block and type annotation was
// closed, and no node is left half-declared. Call this after the token stream is exhausted.
func (p *Parser) Finish(c *context) error {
	if len(c.states) != 0 || len(c.nodes) != 0 {
		return parseErr(document.ParseUnbalancedBraces, tokenizer.Token{ID: tokenizer.EOF}, errUnbalanced)
	}
	if c.typeAnnot.Valid() {
		return parseErr(document.ParseInvalidTypeAnnotation, c.typeAnnot, errExpectedValueAfterType)
	}
	return nil
}

// Parse tokenizes and parses all of source into a Document.
func Parse(source []byte, opts Options) (*document.Document, error) {
	p := New()
	c := p.NewContextOptions(opts)

	s := tokenizer.New(source)
	s.RelaxedNonCompliant = opts.RelaxedNonCompliant
	for s.Scan() {
		t := s.Token()
		if t.ID == tokenizer.EOF {
			break
		}
		if err := p.Step(c, t); err != nil {
			return nil, err
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if err := p.Step(c, tokenizer.Token{ID: tokenizer.EOF}); err != nil {
		return nil, err
	}
	if err := p.Finish(c); err != nil {
		return nil, err
	}
	return c.Document(), nil
}
