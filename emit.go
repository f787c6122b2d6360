package kdl

import (
	"bytes"
	"io"

	"github.com/kdl2x/kdl2/document"
	"github.com/kdl2x/kdl2/internal/generator"
)

// EmitOptions controls rendering; see internal/generator.Options.
type EmitOptions = generator.Options

// DefaultEmitOptions indents with a single tab and preserves each Value's original formatting.
var DefaultEmitOptions = generator.DefaultOptions

// Emit writes doc's canonical KDL 2.0 text to w using DefaultEmitOptions.
func Emit(doc *document.Document, w io.Writer) error {
	return EmitWithOptions(doc, w, DefaultEmitOptions)
}

// EmitWithOptions writes doc's KDL 2.0 text to w under opts.
func EmitWithOptions(doc *document.Document, w io.Writer, opts EmitOptions) error {
	g := generator.NewOptions(w, opts)
	return g.Generate(doc)
}

// EmitString renders doc's canonical KDL 2.0 text and returns it.
func EmitString(doc *document.Document) (string, error) {
	var b bytes.Buffer
	if err := Emit(doc, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
