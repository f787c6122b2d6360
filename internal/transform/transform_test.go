package transform

import (
	"errors"
	"testing"

	"github.com/kdl2x/kdl2/document"
)

func nodeNamed(name string) *document.Node {
	n := document.NewNode()
	n.SetName(name)
	return n
}

func TestApplyEmptyOptionsIsNoop(t *testing.T) {
	doc := document.New()
	n := nodeNamed("size")
	n.AddArgument(int64(4), "")
	doc.AddNode(n)

	if err := Apply(doc, Options{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if doc.Nodes[0].Transformed != nil {
		t.Errorf("expected no substitution, got %v", doc.Nodes[0].Transformed)
	}
}

func TestApplyTypeMapOnValue(t *testing.T) {
	doc := document.New()
	n := nodeNamed("size")
	arg := n.AddArgument(int64(4), "kb")
	doc.AddNode(n)

	opts := Options{
		TypeMap: map[string]TypeFunc{
			"kb": func(v interface{}) (interface{}, error) {
				return v.(int64) * 1024, nil
			},
		},
	}
	if err := Apply(doc, opts); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := arg.ResolvedValue(); got != int64(4096) {
		t.Errorf("arg value = %v, want 4096", got)
	}
}

func TestApplyNodeMapThenTypeMap(t *testing.T) {
	doc := document.New()
	n := nodeNamed("point")
	n.Type = "vec2"
	n.AddArgument(int64(1), "")
	n.AddArgument(int64(2), "")
	doc.AddNode(n)

	type pt struct{ x, y int64 }
	opts := Options{
		NodeMap: map[string]NodeFunc{
			"point": func(children []*document.Node, args []*document.Value, props document.Properties) (interface{}, error) {
				return pt{x: args[0].ResolvedValue().(int64), y: args[1].ResolvedValue().(int64)}, nil
			},
		},
		TypeMap: map[string]TypeFunc{
			"vec2": func(v interface{}) (interface{}, error) {
				p := v.(pt)
				return pt{x: p.x * 10, y: p.y * 10}, nil
			},
		},
	}
	if err := Apply(doc, opts); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got, ok := doc.Nodes[0].Transformed.(pt)
	if !ok {
		t.Fatalf("Transformed = %#v, want pt", doc.Nodes[0].Transformed)
	}
	if got != (pt{x: 10, y: 20}) {
		t.Errorf("Transformed = %+v, want {10 20}", got)
	}
}

func TestApplyNodeMapErrorCarriesSpan(t *testing.T) {
	doc := document.New()
	n := nodeNamed("bad")
	n.Span = document.Span{Line: 3, Column: 5}
	doc.AddNode(n)

	wantErr := errors.New("boom")
	opts := Options{
		NodeMap: map[string]NodeFunc{
			"bad": func(children []*document.Node, args []*document.Value, props document.Properties) (interface{}, error) {
				return nil, wantErr
			},
		},
	}
	err := Apply(doc, opts)
	var te *document.TransformError
	if !errors.As(err, &te) {
		t.Fatalf("Apply error = %v, want *document.TransformError", err)
	}
	if te.Span.Line != 3 || te.Span.Column != 5 {
		t.Errorf("TransformError.Span = %+v, want line 3 column 5", te.Span)
	}
	if !errors.Is(te, wantErr) {
		t.Errorf("TransformError does not unwrap to original error")
	}
}

func TestApplyUnmatchedKeyIsIdentity(t *testing.T) {
	doc := document.New()
	n := nodeNamed("other")
	arg := n.AddArgument("plain", "")
	doc.AddNode(n)

	opts := Options{
		TypeMap: map[string]TypeFunc{"kb": func(v interface{}) (interface{}, error) { return nil, nil }},
		NodeMap: map[string]NodeFunc{"size": func([]*document.Node, []*document.Value, document.Properties) (interface{}, error) { return nil, nil }},
	}
	if err := Apply(doc, opts); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if arg.ResolvedValue() != "plain" {
		t.Errorf("unmatched value was modified: %v", arg.ResolvedValue())
	}
	if doc.Nodes[0].Transformed != nil {
		t.Errorf("unmatched node was substituted: %v", doc.Nodes[0].Transformed)
	}
}
