package kdl

import (
	"github.com/kdl2x/kdl2/binder"
	"github.com/kdl2x/kdl2/document"
)

// Unmarshal parses data as KDL 2.0, then binds its top-level nodes against v's schema (see package schema); v
// must be a non-nil pointer to a struct. Returns a *document.ParseError or *document.BindError on failure.
func Unmarshal(data []byte, v interface{}) error {
	return UnmarshalWithOptions(data, v, ParseOptions{})
}

// UnmarshalWithOptions is Unmarshal with explicit ParseOptions (e.g. to permit relaxed syntax).
func UnmarshalWithOptions(data []byte, v interface{}, opts ParseOptions) error {
	doc, err := Parse(data, opts)
	if err != nil {
		return err
	}
	return binder.New().Bind(doc, v)
}

// UnmarshalDocument binds an already-parsed Document's top-level nodes against v's schema.
func UnmarshalDocument(doc *document.Document, v interface{}) error {
	return binder.New().Bind(doc, v)
}

// UnmarshalNode binds a single already-parsed Node's arguments, properties, and children against v's schema.
func UnmarshalNode(node *document.Node, v interface{}) error {
	return binder.New().BindNode(node, v)
}

// Marshal derives a Document from v's schema and renders it to canonical KDL 2.0 text.
func Marshal(v interface{}) ([]byte, error) {
	doc, err := binder.New().Emit(v)
	if err != nil {
		return nil, err
	}
	s, err := EmitString(doc)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// MarshalDocument derives a Document from v's schema without rendering it to text.
func MarshalDocument(v interface{}) (*document.Document, error) {
	return binder.New().Emit(v)
}

// MarshalNode derives a single Node named name from v's schema.
func MarshalNode(name string, v interface{}) (*document.Node, error) {
	return binder.New().EmitNode(name, v)
}
