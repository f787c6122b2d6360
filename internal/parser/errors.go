package parser

import (
	"errors"
	"fmt"

	"github.com/kdl2x/kdl2/document"
	"github.com/kdl2x/kdl2/internal/tokenizer"
)

var (
	errUnbalanced             = errors.New("unbalanced braces")
	errExpectedValueAfterType = errors.New("expected a value after a type annotation")
)

func spanOf(t tokenizer.Token) document.Span {
	return document.Span{Line: t.Line, Column: t.Column, Offset: t.Offset, Length: t.Length}
}

func parseErr(kind document.ParseKind, t tokenizer.Token, err error) *document.ParseError {
	return &document.ParseError{Kind: kind, Span: spanOf(t), Err: err}
}

func unexpectedToken(st state, t tokenizer.Token) error {
	return parseErr(document.ParseUnexpectedToken, t, fmt.Errorf("unexpected %s in state %s", t.ID, st))
}
