package binder

import (
	"errors"
	"testing"

	"github.com/kdl2x/kdl2/document"
)

type leaf struct {
	Name string `kdl:"arg"`
	Port int64  `kdl:"arg,optional"`
	Host string `kdl:"host,optional"`
}

func leafNode(name string, port int64, host string) *document.Node {
	n := document.NewNode()
	n.SetName("leaf")
	n.AddArgument(name, "")
	if port != 0 {
		n.AddArgument(port, "")
	}
	if host != "" {
		n.AddProperty("host", host, "")
	}
	return n
}

func TestBindNodeArgumentsAndProperties(t *testing.T) {
	n := leafNode("db", 5432, "localhost")
	var got leaf
	if err := New().BindNode(n, &got); err != nil {
		t.Fatalf("BindNode: %v", err)
	}
	want := leaf{Name: "db", Port: 5432, Host: "localhost"}
	if got != want {
		t.Errorf("BindNode = %+v, want %+v", got, want)
	}
}

func TestBindNodeOptionalFieldsLeftZero(t *testing.T) {
	n := document.NewNode()
	n.SetName("leaf")
	n.AddArgument("solo", "")
	var got leaf
	if err := New().BindNode(n, &got); err != nil {
		t.Fatalf("BindNode: %v", err)
	}
	if got.Port != 0 || got.Host != "" {
		t.Errorf("BindNode = %+v, want zero optional fields", got)
	}
}

func TestEmitNodeRoundTrip(t *testing.T) {
	src := leaf{Name: "db", Port: 5432, Host: "localhost"}
	n, err := New().EmitNode("leaf", &src)
	if err != nil {
		t.Fatalf("EmitNode: %v", err)
	}
	var got leaf
	if err := New().BindNode(n, &got); err != nil {
		t.Fatalf("BindNode after EmitNode: %v", err)
	}
	if got != src {
		t.Errorf("round trip = %+v, want %+v", got, src)
	}
}

func TestBindNodeMissingRequiredArgument(t *testing.T) {
	n := document.NewNode()
	n.SetName("leaf")
	var got leaf
	err := New().BindNode(n, &got)
	var be *document.BindError
	if !errors.As(err, &be) {
		t.Fatalf("BindNode error = %v, want *document.BindError", err)
	}
	if be.Kind != document.BindMissingArgument {
		t.Errorf("Kind = %v, want BindMissingArgument", be.Kind)
	}
}

func TestBindNodeExtraArgument(t *testing.T) {
	n := leafNode("db", 5432, "")
	n.AddArgument("unexpected", "")
	var got leaf
	err := New().BindNode(n, &got)
	var be *document.BindError
	if !errors.As(err, &be) {
		t.Fatalf("BindNode error = %v, want *document.BindError", err)
	}
	if be.Kind != document.BindExtraArgument {
		t.Errorf("Kind = %v, want BindExtraArgument", be.Kind)
	}
}

func TestBindNodeMissingRequiredProperty(t *testing.T) {
	type withRequiredProp struct {
		Name string `kdl:"arg"`
		Mode string `kdl:"mode"`
	}
	n := document.NewNode()
	n.SetName("with-required-prop")
	n.AddArgument("x", "")
	var got withRequiredProp
	err := New().BindNode(n, &got)
	var be *document.BindError
	if !errors.As(err, &be) {
		t.Fatalf("BindNode error = %v, want *document.BindError", err)
	}
	if be.Kind != document.BindMissingProperty {
		t.Errorf("Kind = %v, want BindMissingProperty", be.Kind)
	}
}

func TestBindNodeExtraProperty(t *testing.T) {
	n := leafNode("db", 0, "localhost")
	n.AddProperty("unexpected", "x", "")
	var got leaf
	err := New().BindNode(n, &got)
	var be *document.BindError
	if !errors.As(err, &be) {
		t.Fatalf("BindNode error = %v, want *document.BindError", err)
	}
	if be.Kind != document.BindExtraProperty {
		t.Errorf("Kind = %v, want BindExtraProperty", be.Kind)
	}
}

type withExtras struct {
	Name string            `kdl:"arg"`
	Rest []int64           `kdl:",args"`
	Meta map[string]string `kdl:",props"`
}

func TestBindNodeCatchAllArgumentsAndProperties(t *testing.T) {
	n := document.NewNode()
	n.SetName("with-extras")
	n.AddArgument("main", "")
	n.AddArgument(int64(1), "")
	n.AddArgument(int64(2), "")
	n.AddProperty("region", "us", "")

	var got withExtras
	if err := New().BindNode(n, &got); err != nil {
		t.Fatalf("BindNode: %v", err)
	}
	if got.Name != "main" || len(got.Rest) != 2 || got.Rest[0] != 1 || got.Rest[1] != 2 {
		t.Errorf("BindNode = %+v, want Name=main Rest=[1 2]", got)
	}
	if got.Meta["region"] != "us" {
		t.Errorf("Meta = %+v, want region=us", got.Meta)
	}
}

func TestEmitNodeCatchAllRoundTrip(t *testing.T) {
	src := withExtras{
		Name: "main",
		Rest: []int64{1, 2},
		Meta: map[string]string{"region": "us"},
	}
	n, err := New().EmitNode("with-extras", &src)
	if err != nil {
		t.Fatalf("EmitNode: %v", err)
	}
	var got withExtras
	if err := New().BindNode(n, &got); err != nil {
		t.Fatalf("BindNode after EmitNode: %v", err)
	}
	if got.Name != src.Name || len(got.Rest) != len(src.Rest) || got.Rest[0] != src.Rest[0] || got.Rest[1] != src.Rest[1] {
		t.Errorf("round trip Rest = %+v, want %+v", got.Rest, src.Rest)
	}
	if got.Meta["region"] != "us" {
		t.Errorf("round trip Meta = %+v, want region=us", got.Meta)
	}
}

type childA struct {
	Value string `kdl:"arg"`
}

type childB struct {
	Value string `kdl:"arg"`
}

type parentStrict struct {
	One  childA   `kdl:"one"`
	Many []childB `kdl:"many"`
}

type parentWithCatchall struct {
	One  childA            `kdl:"one"`
	Many []childB          `kdl:"many"`
	Rest []*document.Node `kdl:",children"`
}

func childNode(name, value string) *document.Node {
	n := document.NewNode()
	n.SetName(name)
	n.AddArgument(value, "")
	return n
}

func TestBindChildAndChildrenSlots(t *testing.T) {
	doc := document.New()
	doc.AddNode(childNode("child-a", "solo"))
	doc.AddNode(childNode("child-b", "first"))
	doc.AddNode(childNode("child-b", "second"))

	var got parentStrict
	if err := New().Bind(doc, &got); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if got.One.Value != "solo" {
		t.Errorf("One = %+v, want Value=solo", got.One)
	}
	if len(got.Many) != 2 || got.Many[0].Value != "first" || got.Many[1].Value != "second" {
		t.Errorf("Many = %+v, want [first second]", got.Many)
	}
}

func TestBindMissingRequiredChild(t *testing.T) {
	doc := document.New()
	var got parentStrict
	err := New().Bind(doc, &got)
	var be *document.BindError
	if !errors.As(err, &be) {
		t.Fatalf("Bind error = %v, want *document.BindError", err)
	}
	if be.Kind != document.BindMissingChild {
		t.Errorf("Kind = %v, want BindMissingChild", be.Kind)
	}
}

func TestBindDuplicateChild(t *testing.T) {
	doc := document.New()
	doc.AddNode(childNode("child-a", "first"))
	doc.AddNode(childNode("child-a", "second"))
	var got parentStrict
	err := New().Bind(doc, &got)
	var be *document.BindError
	if !errors.As(err, &be) {
		t.Fatalf("Bind error = %v, want *document.BindError", err)
	}
	if be.Kind != document.BindDuplicateChild {
		t.Errorf("Kind = %v, want BindDuplicateChild", be.Kind)
	}
}

func TestBindUnexpectedChildWithoutCatchAll(t *testing.T) {
	doc := document.New()
	doc.AddNode(childNode("child-a", "solo"))
	doc.AddNode(childNode("mystery", "x"))
	var got parentStrict
	err := New().Bind(doc, &got)
	var be *document.BindError
	if !errors.As(err, &be) {
		t.Fatalf("Bind error = %v, want *document.BindError", err)
	}
	if be.Kind != document.BindUnexpectedChild {
		t.Errorf("Kind = %v, want BindUnexpectedChild", be.Kind)
	}
}

func TestBindUnexpectedChildFallsBackToCatchAll(t *testing.T) {
	doc := document.New()
	doc.AddNode(childNode("child-a", "solo"))
	doc.AddNode(childNode("mystery", "x"))
	var got parentWithCatchall
	if err := New().Bind(doc, &got); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if len(got.Rest) != 1 || nodeName(got.Rest[0]) != "mystery" {
		t.Errorf("Rest = %+v, want one node named mystery", got.Rest)
	}
}

func TestEmitRoundTripChildren(t *testing.T) {
	src := parentStrict{
		One:  childA{Value: "solo"},
		Many: []childB{{Value: "first"}, {Value: "second"}},
	}
	doc, err := New().Emit(&src)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	var got parentStrict
	if err := New().Bind(doc, &got); err != nil {
		t.Fatalf("Bind after Emit: %v", err)
	}
	if got.One.Value != src.One.Value {
		t.Errorf("One = %+v, want %+v", got.One, src.One)
	}
	if len(got.Many) != 2 || got.Many[0].Value != "first" || got.Many[1].Value != "second" {
		t.Errorf("Many = %+v, want %+v", got.Many, src.Many)
	}
}

func TestBinderTraceIsCalled(t *testing.T) {
	var lines []string
	b := &Binder{Trace: func(format string, args ...interface{}) {
		lines = append(lines, format)
	}}
	n := leafNode("db", 0, "")
	var got leaf
	if err := b.BindNode(n, &got); err != nil {
		t.Fatalf("BindNode: %v", err)
	}
	if len(lines) == 0 {
		t.Error("Trace was never called")
	}
}
