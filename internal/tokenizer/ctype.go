package tokenizer

import (
	"unicode"

	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/rangetable"
	"golang.org/x/text/runes"
)

// whitespaceSet backs isWhiteSpace with the general Unicode WHITE_SPACE property (stdlib's unicode.White_Space,
// merged through x/text/rangetable and tested via x/text/runes rather than a hand-listed switch) so the inline
// whitespace definition tracks the Unicode property directly instead of an incomplete manual enumeration.
var whitespaceSet = runes.In(rangetable.Merge(unicode.White_Space))

// isWhiteSpace reports whether c is inline (non-line-terminating) whitespace, including the BOM (which is only
// meaningful at the very start of a stream; callers are responsible for that restriction).
func isWhiteSpace(c rune) bool {
	if c == 0xFEFF {
		return true
	}
	if isNewline(c) {
		return false
	}
	return whitespaceSet.Contains(c)
}

// isNewline reports whether c is one of KDL's newline characters. \r\n is handled specially by the scanner since
// it is two runes that form a single line break.
func isNewline(c rune) bool {
	switch c {
	case '\r', '\n', '', ' ', ' ', '', '':
		return true
	default:
		return false
	}
}

// isLineSpace reports whether c is whitespace or a newline.
func isLineSpace(c rune) bool {
	return isWhiteSpace(c) || isNewline(c)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isSign(c rune) bool {
	return c == '-' || c == '+'
}

// isSeparator reports whether c ends a value (whitespace, newline, semicolon, brace, or parenthesis).
func isSeparator(c rune) bool {
	return isWhiteSpace(c) || isNewline(c) || c == ';' || c == '{' || c == '}' || c == '(' || c == ')'
}

// isBidiControl reports whether c is one of the explicit bidirectional-formatting control characters (LRE, RLE,
// LRO, RLO, PDF, LRI, RLI, FSI, PDI) via their Unicode bidi class, rather than hand-listing the two code point
// ranges that happen to contain them.
func isBidiControl(c rune) bool {
	p, _ := bidi.LookupRune(c)
	switch p.Class() {
	case bidi.LRE, bidi.RLE, bidi.LRO, bidi.RLO, bidi.PDF, bidi.LRI, bidi.RLI, bidi.FSI, bidi.PDI:
		return true
	default:
		return false
	}
}

// isDisallowed reports whether c is one of the scalar values KDL 2.0 forbids from appearing anywhere in a
// document: direction-control characters, most C0 controls, DEL, and lone surrogates (which can't occur in valid
// UTF-8 anyway, but are rejected defensively).
func isDisallowed(c rune) bool {
	switch {
	case isBidiControl(c):
		return true
	case c >= 0x0000 && c <= 0x0008:
		return true
	case c >= 0x000E && c <= 0x001F:
		return true
	case c == 0x007F:
		return true
	case c >= 0xD800 && c <= 0xDFFF:
		return true
	default:
		return false
	}
}

// isBareIdentifierStartChar reports whether c may begin a bare identifier. Per KDL 2.0, digits may never start a
// bare identifier; a leading sign is permitted only when not immediately followed by a digit (checked by the
// caller, which has lookahead the predicate alone does not).
func isBareIdentifierStartChar(c rune) bool {
	if isDigit(c) {
		return false
	}
	return isBareIdentifierChar(c)
}

// isBareIdentifierChar reports whether c may appear (after the first position) in a bare identifier.
func isBareIdentifierChar(c rune) bool {
	if isLineSpace(c) {
		return false
	}
	if isDisallowed(c) {
		return false
	}
	if c < 0x21 || c > 0x10FFFF {
		return false
	}
	switch c {
	case '\\', '/', '(', ')', '{', '}', '<', '>', ';', '[', ']', '=', ',', '"':
		return false
	case '#':
		return false
	default:
		return true
	}
}

// IsBareIdentifier reports whether s, taken as a whole, is a valid bare identifier: does not require quoting to be
// used as a KDL identifier.
func IsBareIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	if IsReservedWord(s) {
		return false
	}

	first := true
	for i, r := range s {
		if first {
			if !isBareIdentifierStartChar(r) {
				return false
			}
			// a leading sign is allowed only if the identifier isn't numeric-looking (no digit right after it)
			if isSign(r) && len(s) > i+1 && isDigit(rune(s[i+1])) {
				return false
			}
			first = false
		} else {
			if !isBareIdentifierChar(r) {
				return false
			}
		}
	}
	if s[0] == '#' {
		return false
	}
	return true
}

// IsReservedWord reports whether s is one of the words that a bare identifier must never equal, per KDL 2.0 (they
// must be quoted to be used as a node name, property key, or string argument).
func IsReservedWord(s string) bool {
	switch s {
	case "true", "false", "null", "inf", "-inf", "nan":
		return true
	default:
		return false
	}
}
