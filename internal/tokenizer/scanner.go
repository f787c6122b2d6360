package tokenizer

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/kdl2x/kdl2/relaxed"
)

// ErrInvalidRune is returned when the input contains a byte sequence that isn't valid UTF-8.
var ErrInvalidRune = errors.New("invalid UTF-8 input")

// LexKind identifies the category of a LexError.
type LexKind int

const (
	LexUnexpectedCharacter LexKind = iota
	LexUnterminatedString
	LexUnterminatedComment
	LexInvalidEscape
	LexInvalidNumber
	LexReservedWord
	LexDisallowedCharacter
)

func (k LexKind) String() string {
	switch k {
	case LexUnexpectedCharacter:
		return "unexpected character"
	case LexUnterminatedString:
		return "unterminated string"
	case LexUnterminatedComment:
		return "unterminated comment"
	case LexInvalidEscape:
		return "invalid escape sequence"
	case LexInvalidNumber:
		return "invalid number"
	case LexReservedWord:
		return "reserved word used as identifier"
	case LexDisallowedCharacter:
		return "disallowed character"
	default:
		return "lex error"
	}
}

// LexError reports a failure to tokenize the source, carrying the exact line/column/offset and a source excerpt.
type LexError struct {
	Kind   LexKind
	Line   int
	Column int
	Offset int
	Excerpt string
	Err    error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d: %v\n%s", e.Kind, e.Line, e.Column, e.Err, e.Excerpt)
}

func (e *LexError) Unwrap() error { return e.Err }

// classifyLexError picks a LexKind for a raw lexer error by comparing it against a handful of sentinel error values
// (ErrInvalidRune, io.ErrUnexpectedEOF); every other error is classed as an unexpected character. It is intentionally coarse; callers that need a precise Kind should have the reader
// return a *LexError directly instead of a plain error.
func classifyLexError(err error) LexKind {
	switch err {
	case ErrInvalidRune:
		return LexDisallowedCharacter
	case io.ErrUnexpectedEOF:
		return LexUnterminatedString
	default:
		return LexUnexpectedCharacter
	}
}

// Scanner tokenizes a complete, in-memory KDL source buffer. Per the core's non-streaming design (spec Non-goal:
// no incremental parsing of partial documents), a Scanner is always constructed over the whole input at once;
// there is no refill machinery.
type Scanner struct {
	// Logger is an optional trace hook; nil means silent (see SPEC_FULL §10.2). No scanning step sends messages to
	// it.
	Logger func(string, ...interface{})

	// RelaxedNonCompliant permits the noncompliant grammar extensions described by relaxed.Flags.
	// relaxed.MultiplierSuffixes (a bare number may be followed directly by a unit suffix) and relaxed.NGINXSyntax
	// (a bare value may start with '/') affect tokenization; relaxed.YAMLTOMLAssignments is consulted by the parser.
	RelaxedNonCompliant relaxed.Flags

	raw    []byte
	input  []byte
	line   int
	column int
	offset int

	marks []markPos

	token Token
	err   error
}

type markPos struct {
	offset, line, column int
}

func (s *Scanner) log(msg string, v ...interface{}) {
	if s.Logger != nil {
		s.Logger(msg, v...)
	}
}

// New creates a Scanner over a complete, in-memory source buffer. A leading BOM (U+FEFF) is consumed silently if
// present, per spec §4.1/§6.
func New(input []byte) *Scanner {
	s := &Scanner{
		raw:    input,
		input:  input,
		line:   1,
		column: 1,
	}
	if r, size := utf8.DecodeRune(s.input); r == 0xFEFF {
		s.input = s.input[size:]
		s.offset += size
	}
	return s
}

// pos returns the current (line, column, offset) as a markPos.
func (s *Scanner) pos() markPos {
	return markPos{offset: s.offset, line: s.line, column: s.column}
}

// pushMark records the current position for later extraction via textFromMark.
func (s *Scanner) pushMark() {
	s.marks = append(s.marks, s.pos())
}

func (s *Scanner) popMark() {
	s.marks = s.marks[:len(s.marks)-1]
}

// textFromMark returns the bytes consumed since the most recent pushMark.
func (s *Scanner) textFromMark() []byte {
	m := s.marks[len(s.marks)-1]
	return s.raw[m.offset:s.offset]
}

// peekSize returns the next rune and its encoded size without consuming it.
func (s *Scanner) peekSize() (rune, int, error) {
	if len(s.input) == 0 {
		return 0, 0, io.EOF
	}
	c, size := utf8.DecodeRune(s.input)
	if c == utf8.RuneError && size <= 1 {
		return 0, 0, ErrInvalidRune
	}
	return c, size, nil
}

func (s *Scanner) peek() (rune, error) {
	c, _, err := s.peekSize()
	return c, err
}

// peekAt returns the rune n runes ahead (0 = next rune) without consuming anything.
func (s *Scanner) peekAt(n int) (rune, error) {
	rest := s.input
	var c rune
	for i := 0; i <= n; i++ {
		if len(rest) == 0 {
			return 0, io.EOF
		}
		var size int
		c, size = utf8.DecodeRune(rest)
		if c == utf8.RuneError && size <= 1 {
			return 0, ErrInvalidRune
		}
		rest = rest[size:]
	}
	return c, nil
}

// get consumes and returns the next rune.
func (s *Scanner) get() (rune, error) {
	c, size, err := s.peekSize()
	if err != nil {
		return 0, err
	}
	s.input = s.input[size:]
	s.offset += size
	if isNewline(c) {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c, nil
}

func (s *Scanner) skip() {
	_, _ = s.get()
}

// skipN consumes the next n runes, which must already be known to exist.
func (s *Scanner) skipN(n int) {
	for i := 0; i < n; i++ {
		s.skip()
	}
}

// readWhile consumes runes for as long as valid returns true, requiring at least minLength runes.
func (s *Scanner) readWhile(valid func(rune) bool, minLength int) ([]byte, error) {
	s.pushMark()
	defer s.popMark()

	n := 0
	for {
		c, err := s.peek()
		if err != nil || !valid(c) {
			if n < minLength {
				return nil, errUnexpectedInput(c, err)
			}
			return s.textFromMark(), nil
		}
		s.skip()
		n++
	}
}

func errUnexpectedInput(c rune, err error) error {
	if err != nil {
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return fmt.Errorf("unexpected character %q", c)
}

// Offset returns the current byte offset into the original input (including any BOM consumed at construction).
func (s *Scanner) Offset() int {
	return s.offset
}

// Pos returns the current 1-based line and column.
func (s *Scanner) Pos() (int, int) {
	return s.line, s.column
}

// excerpt returns the source line containing offset, with a caret marking the column.
func (s *Scanner) excerpt(offset int) string {
	start := offset
	for start > 0 && s.raw[start-1] != '\n' {
		start--
	}
	end := offset
	for end < len(s.raw) && s.raw[end] != '\n' {
		end++
	}
	col := offset - start
	line := make([]byte, 0, end-start+2+col)
	line = append(line, s.raw[start:end]...)
	line = append(line, '\n')
	for i := 0; i < col; i++ {
		line = append(line, ' ')
	}
	line = append(line, '^')
	return string(line)
}

// annotate wraps err as a *LexError carrying the scanner's current position and a source excerpt.
func (s *Scanner) annotate(err error) error {
	if le, ok := err.(*LexError); ok {
		return le
	}
	return &LexError{
		Kind:    classifyLexError(err),
		Line:    s.line,
		Column:  s.column,
		Offset:  s.offset,
		Excerpt: s.excerpt(s.offset),
		Err:     err,
	}
}

// Scan reads the next token into the Scanner and returns true if one was read. At the end of input Scan returns
// true once more with an EOF token, then false (with Err returning nil); on a lex error it returns false (with Err
// returning the error).
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	tok, err := s.readNext()
	if err != nil {
		if err == io.EOF {
			s.token = Token{ID: EOF, Line: s.line, Column: s.column, Offset: s.offset}
			s.err = io.EOF
			return true
		}
		s.err = s.annotate(err)
		return false
	}
	s.token = tok
	return true
}

// Token returns the most recently scanned token.
func (s *Scanner) Token() Token { return s.token }

// Err returns the first error encountered, or nil if scanning has not failed. Callers should stop calling Scan
// once it returns false; Err distinguishes a clean EOF (nil) from a lex failure.
func (s *Scanner) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}
