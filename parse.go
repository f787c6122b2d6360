package kdl

import (
	"io"

	"github.com/kdl2x/kdl2/document"
	"github.com/kdl2x/kdl2/internal/parser"
	"github.com/kdl2x/kdl2/internal/transform"
	"github.com/kdl2x/kdl2/relaxed"
)

// TypeTransform is the substituted-value callback keyed by type annotation; see transform.TypeFunc.
type TypeTransform = transform.TypeFunc

// NodeTransform is the substituted-value callback keyed by node name; see transform.NodeFunc.
type NodeTransform = transform.NodeFunc

// ParseOptions is the parse-time configuration, a plain option struct in the teacher's idiom (ParseContextOptions)
// rather than functional options — its zero value parses strict KDL 2.0.
type ParseOptions struct {
	// RelaxedNonCompliant permits the noncompliant grammar extensions described by relaxed.Flags. The zero value
	// permits none of them.
	RelaxedNonCompliant relaxed.Flags

	// TypeMap and NodeMap apply TypeTransform substitutions to the parsed Document before it is returned. A
	// missing key in either map means identity: the value or node passes through unchanged. Both are nil by
	// default, so Parse's zero-value behavior is unaffected.
	TypeMap map[string]TypeTransform
	NodeMap map[string]NodeTransform
}

// Parse parses a complete KDL 2.0 document from data, then applies any TypeMap/NodeMap transforms in opts.
func Parse(data []byte, opts ParseOptions) (*document.Document, error) {
	doc, err := parser.Parse(data, parser.Options{RelaxedNonCompliant: opts.RelaxedNonCompliant})
	if err != nil {
		return nil, err
	}
	if err := transform.Apply(doc, transform.Options{TypeMap: opts.TypeMap, NodeMap: opts.NodeMap}); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseReader reads r to completion and parses it as a KDL 2.0 document.
func ParseReader(r io.Reader, opts ParseOptions) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts)
}
