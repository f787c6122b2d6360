package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/kdl2x/kdl2/document"
	"github.com/kdl2x/kdl2/internal/generator"
	"github.com/kdl2x/kdl2/relaxed"
)

func render(t *testing.T, doc *document.Document) string {
	t.Helper()
	var b strings.Builder
	g := generator.NewOptions(&b, generator.Options{Indent: "    "})
	if err := g.Generate(doc); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return b.String()
}

func TestParseRoundTripsArgumentsAndProperties(t *testing.T) {
	input := `foo 1 key="val" 3 {
    bar
    (role)baz 1 2
}
`
	// the generator writes a node's arguments before its properties
	want := `foo 1 3 key="val" {
    bar
    (role)baz 1 2
}
`
	doc, err := Parse([]byte(input), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := render(t, doc); got != want {
		t.Errorf("round trip =\n%s\nwant\n%s", got, want)
	}
}

func TestParseSemicolons(t *testing.T) {
	input := `node1; node2; node3;
`
	doc, err := Parse([]byte(input), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Nodes) != 3 {
		t.Fatalf("Nodes = %d, want 3", len(doc.Nodes))
	}
	names := []string{"node1", "node2", "node3"}
	for i, n := range doc.Nodes {
		if n.Name.NodeNameString() != names[i] {
			t.Errorf("Nodes[%d].Name = %q, want %q", i, n.Name.NodeNameString(), names[i])
		}
	}
}

func TestParseSlashdashSuppressesArgumentPropertyAndChildren(t *testing.T) {
	input := `mynode /-"commented" "not commented" /-key="value" /-{
    a
    b
}
`
	doc, err := Parse([]byte(input), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Nodes) != 1 {
		t.Fatalf("Nodes = %d, want 1", len(doc.Nodes))
	}
	n := doc.Nodes[0]
	if len(n.Arguments) != 1 || n.Arguments[0].ResolvedValue() != "not commented" {
		t.Errorf("Arguments = %+v, want one value \"not commented\"", n.Arguments)
	}
	if n.Properties.Exist() {
		t.Errorf("Properties = %+v, want none (slashdashed)", n.Properties)
	}
	if n.HasChildren {
		t.Errorf("HasChildren = true, want false (slashdashed children block)")
	}
}

func TestParseSlashdashSuppressesWholeNode(t *testing.T) {
	input := `/-mynode "foo" key=1 {
  a
}
kept
`
	doc, err := Parse([]byte(input), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Nodes) != 1 || doc.Nodes[0].Name.NodeNameString() != "kept" {
		t.Fatalf("Nodes = %+v, want only \"kept\"", doc.Nodes)
	}
}

func TestParseUnbalancedBracesIsParseError(t *testing.T) {
	_, err := Parse([]byte("node {"), Options{})
	var pe *document.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse error = %v, want *document.ParseError", err)
	}
	if pe.Kind != document.ParseUnbalancedBraces {
		t.Errorf("Kind = %v, want ParseUnbalancedBraces", pe.Kind)
	}
}

func TestParseDanglingCloseBraceIsParseError(t *testing.T) {
	_, err := Parse([]byte("node {}}"), Options{})
	if err == nil {
		t.Fatal("expected an error for an unmatched closing brace")
	}
	var pe *document.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse error = %v, want *document.ParseError", err)
	}
}

func TestParseTypeAnnotationWithNoFollowingValue(t *testing.T) {
	_, err := Parse([]byte("node (u8)"), Options{})
	var pe *document.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse error = %v, want *document.ParseError", err)
	}
	if pe.Kind != document.ParseInvalidTypeAnnotation {
		t.Errorf("Kind = %v, want ParseInvalidTypeAnnotation", pe.Kind)
	}
}

func TestParseRelaxedNGINXSyntax(t *testing.T) {
	input := []byte(`
location / {
	root /var/www/html;
}
`)
	expect := `
location "/" {
    root "/var/www/html"
}
`
	doc, err := Parse(input, Options{RelaxedNonCompliant: relaxed.NGINXSyntax})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := strings.TrimSpace(render(t, doc))
	want := strings.TrimSpace(expect)
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseRelaxedYAMLTOMLAssignments(t *testing.T) {
	input := []byte(`
yaml-like: 1234
toml-like=1234
toml-like-2 = 5678
`)
	expect := `
yaml-like 1234
toml-like 1234
toml-like-2 5678
`
	doc, err := Parse(input, Options{RelaxedNonCompliant: relaxed.YAMLTOMLAssignments})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := strings.TrimSpace(render(t, doc))
	want := strings.TrimSpace(expect)
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseRelaxedNGINXRejectedWithoutFlag(t *testing.T) {
	input := []byte(`
location / {
	root /var/www/html;
}
`)
	if _, err := Parse(input, Options{}); err == nil {
		t.Error("expected a strict parse of NGINX-flavored input to fail")
	}
}
