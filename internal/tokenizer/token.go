package tokenizer

import "fmt"

// TokenID identifies the lexical category of a Token.
type TokenID int

const (
	Unknown TokenID = iota
	Newline
	Whitespace
	MultiLineComment
	SingleLineComment
	Slashdash // `/-`
	Decimal
	SuffixedDecimal // relaxed.MultiplierSuffixes only: a decimal immediately followed by a unit suffix (32kb, 15s)
	Hexadecimal
	Octal
	Binary
	Keyword // #true, #false, #null, #inf, #-inf, #nan
	BareIdentifier
	RawString
	QuotedString
	BraceOpen
	BraceClose
	ParensOpen
	ParensClose
	Equals
	Semicolon
	Continuation
	EOF

	// pseudo-classes, used as map keys in the parser's state transition tables
	ClassWhitespace
	ClassValue
	ClassIdentifier
	ClassNonStringValue
	ClassNumber
	ClassString
	ClassTerminator
	ClassEndOfLine
	ClassComment
)

var tokenClasses = map[TokenID][]TokenID{
	Newline:           {ClassTerminator, ClassWhitespace, ClassEndOfLine},
	Whitespace:        {ClassWhitespace},
	MultiLineComment:  {ClassComment},
	SingleLineComment: {ClassComment},
	Decimal:           {ClassNumber, ClassValue, ClassNonStringValue},
	SuffixedDecimal:   {ClassNumber, ClassValue, ClassNonStringValue},
	Hexadecimal:       {ClassNumber, ClassValue, ClassNonStringValue},
	Octal:             {ClassNumber, ClassValue, ClassNonStringValue},
	Binary:            {ClassNumber, ClassValue, ClassNonStringValue},
	Keyword:           {ClassValue, ClassNonStringValue},
	BareIdentifier:    {ClassValue, ClassIdentifier},
	RawString:         {ClassValue, ClassString, ClassIdentifier},
	QuotedString:      {ClassValue, ClassString, ClassIdentifier},
	Semicolon:         {ClassTerminator},
	EOF:               {ClassTerminator, ClassEndOfLine},
}

// Classes returns the pseudo-classes t belongs to, used by the parser's state tables.
func (t TokenID) Classes() []TokenID {
	return tokenClasses[t]
}

func (t TokenID) String() string {
	switch t {
	case Newline:
		return "Newline"
	case Whitespace:
		return "Whitespace"
	case MultiLineComment:
		return "MultiLineComment"
	case SingleLineComment:
		return "SingleLineComment"
	case Slashdash:
		return "Slashdash"
	case Decimal:
		return "Decimal"
	case SuffixedDecimal:
		return "SuffixedDecimal"
	case Hexadecimal:
		return "Hexadecimal"
	case Octal:
		return "Octal"
	case Binary:
		return "Binary"
	case Keyword:
		return "Keyword"
	case BareIdentifier:
		return "BareIdentifier"
	case RawString:
		return "RawString"
	case QuotedString:
		return "QuotedString"
	case BraceOpen:
		return "BraceOpen"
	case BraceClose:
		return "BraceClose"
	case ParensOpen:
		return "ParensOpen"
	case ParensClose:
		return "ParensClose"
	case Equals:
		return "Equals"
	case Semicolon:
		return "Semicolon"
	case Continuation:
		return "Continuation"
	case EOF:
		return "EOF"
	default:
		return "(invalid)"
	}
}

// Token is a single lexical token with its source span.
type Token struct {
	ID                           TokenID
	Data                         []byte
	Line, Column, Offset, Length int
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if len(t.Data) > 0 {
		return fmt.Sprintf("%s(%s)", t.ID, string(t.Data))
	}
	return t.ID.String()
}

// Valid reports whether t holds a real token (as opposed to the zero value).
func (t Token) Valid() bool {
	return t.ID != Unknown
}

// Clear resets t to its zero (invalid) state.
func (t *Token) Clear() {
	*t = Token{}
}
