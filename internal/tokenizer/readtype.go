package tokenizer

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/kdl2x/kdl2/relaxed"
)

// readNext reads and returns the next token from the scanner's current position, or an error (io.EOF at the
// end of input, or a lex error otherwise).
func (s *Scanner) readNext() (Token, error) {
	start := s.pos()
	c, err := s.peek()
	if err != nil {
		return Token{}, err
	}

	switch {
	case isNewline(c):
		return s.readNewline(start)
	case isWhiteSpace(c):
		return s.readWhitespace(start)
	case c == '/':
		return s.readSlash(start)
	case c == '{':
		return s.readPunct(BraceOpen, start)
	case c == '}':
		return s.readPunct(BraceClose, start)
	case c == '(':
		return s.readPunct(ParensOpen, start)
	case c == ')':
		return s.readPunct(ParensClose, start)
	case c == '=':
		return s.readPunct(Equals, start)
	case c == ';':
		return s.readPunct(Semicolon, start)
	case c == '\\':
		return s.readContinuation(start)
	case c == '"':
		return s.readQuotedString(start)
	case c == '#':
		return s.readHash(start)
	case isDigit(c):
		return s.readNumber(start)
	case isSign(c):
		if n, err2 := s.peekAt(1); err2 == nil && isDigit(n) {
			return s.readNumber(start)
		}
		return s.readBareIdentifier(start)
	case isDisallowed(c):
		return Token{}, fmt.Errorf("disallowed character %U", c)
	default:
		return s.readBareIdentifier(start)
	}
}

func (s *Scanner) readPunct(id TokenID, start markPos) (Token, error) {
	s.skip()
	return s.finish(id, start, nil)
}

func (s *Scanner) finish(id TokenID, start markPos, data []byte) (Token, error) {
	return Token{
		ID:     id,
		Data:   data,
		Line:   start.line,
		Column: start.column,
		Offset: start.offset,
		Length: s.offset - start.offset,
	}, nil
}

// readNewline consumes a single line break, treating \r\n as one token.
func (s *Scanner) readNewline(start markPos) (Token, error) {
	c, _ := s.get()
	if c == '\r' {
		if n, err := s.peek(); err == nil && n == '\n' {
			s.skip()
		}
	}
	return s.finish(Newline, start, nil)
}

func (s *Scanner) readWhitespace(start markPos) (Token, error) {
	for {
		c, err := s.peek()
		if err != nil || !isWhiteSpace(c) {
			break
		}
		s.skip()
	}
	return s.finish(Whitespace, start, nil)
}

// readSlash dispatches on the character after a leading '/': '/' for a line comment, '*' for a block comment, or
// '-' for a slashdash. With relaxed.NGINXSyntax permitted, any other character makes the '/' the start of a bare
// path-like value (`/`, `/var/www/html`) that runs up to the next separator.
func (s *Scanner) readSlash(start markPos) (Token, error) {
	s.skip()
	n, err := s.peek()
	if err != nil {
		return Token{}, fmt.Errorf("unexpected end of input after '/'")
	}
	switch n {
	case '/':
		s.skip()
		return s.readSingleLineComment(start)
	case '*':
		s.skip()
		return s.readMultiLineComment(start)
	case '-':
		s.skip()
		return s.finish(Slashdash, start, nil)
	default:
		if s.RelaxedNonCompliant.Permit(relaxed.NGINXSyntax) {
			for {
				c, err2 := s.peek()
				if err2 != nil || isSeparator(c) {
					break
				}
				s.skip()
			}
			return s.finish(BareIdentifier, start, s.raw[start.offset:s.offset])
		}
		return Token{}, fmt.Errorf("unexpected character %q after '/'", n)
	}
}

func (s *Scanner) readSingleLineComment(start markPos) (Token, error) {
	for {
		c, err := s.peek()
		if err != nil || isNewline(c) {
			break
		}
		s.skip()
	}
	return s.finish(SingleLineComment, start, nil)
}

// readMultiLineComment consumes a /* ... */ comment, which may nest.
func (s *Scanner) readMultiLineComment(start markPos) (Token, error) {
	depth := 1
	for depth > 0 {
		c, err := s.get()
		if err != nil {
			return Token{}, fmt.Errorf("unterminated block comment")
		}
		switch c {
		case '/':
			if n, err2 := s.peek(); err2 == nil && n == '*' {
				s.skip()
				depth++
			}
		case '*':
			if n, err2 := s.peek(); err2 == nil && n == '/' {
				s.skip()
				depth--
			}
		}
	}
	return s.finish(MultiLineComment, start, nil)
}

// readContinuation consumes a backslash-newline line continuation, including any inline whitespace or a trailing
// line comment before the newline.
func (s *Scanner) readContinuation(start markPos) (Token, error) {
	s.skip() // '\\'
	for {
		c, err := s.peek()
		if err != nil {
			return Token{}, fmt.Errorf("expected newline after line continuation")
		}
		switch {
		case isWhiteSpace(c):
			s.skip()
		case isNewline(c):
			s.skip()
			if c == '\r' {
				if n, err2 := s.peek(); err2 == nil && n == '\n' {
					s.skip()
				}
			}
			return s.finish(Continuation, start, nil)
		case c == '/':
			if n, err2 := s.peekAt(1); err2 == nil && n == '/' {
				s.skipN(2)
				for {
					c2, err3 := s.peek()
					if err3 != nil || isNewline(c2) {
						break
					}
					s.skip()
				}
			} else {
				return Token{}, fmt.Errorf("unexpected character %q after line continuation", c)
			}
		default:
			return Token{}, fmt.Errorf("unexpected character %q after line continuation", c)
		}
	}
}

// readHash dispatches a leading '#' to a keyword (#true, #false, #null, #inf, #-inf, #nan) or to a raw string
// (any number of '#' followed by a '"').
func (s *Scanner) readHash(start markPos) (Token, error) {
	n := 0
	for {
		c, err := s.peekAt(n)
		if err != nil || c != '#' {
			break
		}
		n++
	}
	if next, err := s.peekAt(n); err == nil && next == '"' {
		return s.readRawString(start, n)
	}
	return s.readKeyword(start)
}

func (s *Scanner) readKeyword(start markPos) (Token, error) {
	s.skip() // '#'
	s.pushMark()
	if c, err := s.peek(); err == nil && c == '-' {
		s.skip()
	}
	for {
		c, err := s.peek()
		if err != nil || !isBareIdentifierChar(c) {
			break
		}
		s.skip()
	}
	word := s.textFromMark()
	s.popMark()

	full := make([]byte, 0, len(word)+1)
	full = append(full, '#')
	full = append(full, word...)
	switch string(full) {
	case "#true", "#false", "#null", "#inf", "#-inf", "#nan":
		return s.finish(Keyword, start, full)
	default:
		return Token{}, fmt.Errorf("unrecognized keyword %q", string(full))
	}
}

func (s *Scanner) quotesFollow(n int) bool {
	for i := 0; i < n; i++ {
		c, err := s.peekAt(i)
		if err != nil || c != '"' {
			return false
		}
	}
	return true
}

// readRawString reads a raw string (no escape processing) delimited by n '#' characters on each side of the
// quotes. It handles both the single-line form (#"..."#) and the multi-line block form (#"""..."""#), normalizing
// either into a single internal representation that parseRawString can decode uniformly.
func (s *Scanner) readRawString(start markPos, n int) (Token, error) {
	s.skipN(n)
	s.skip() // opening '"'

	var content []byte
	if s.quotesFollow(2) {
		s.skipN(2)
		body, err := s.readBlockStringBody()
		if err != nil {
			return Token{}, err
		}
		content = body
		s.skipN(3) // closing """
	} else {
		for {
			c, err := s.get()
			if err != nil {
				return Token{}, fmt.Errorf("unterminated raw string")
			}
			if c == '"' && s.hashesFollow(n) {
				break
			}
			content = utf8.AppendRune(content, c)
		}
	}
	for i := 0; i < n; i++ {
		c, err := s.get()
		if err != nil || c != '#' {
			return Token{}, fmt.Errorf("unterminated raw string: expected %d closing '#'", n)
		}
	}

	data := make([]byte, 0, 2+n*2+len(content))
	data = append(data, 'r')
	for i := 0; i < n; i++ {
		data = append(data, '#')
	}
	data = append(data, '"')
	data = append(data, content...)
	data = append(data, '"')
	for i := 0; i < n; i++ {
		data = append(data, '#')
	}
	return s.finish(RawString, start, data)
}

func (s *Scanner) hashesFollow(n int) bool {
	for i := 0; i < n; i++ {
		c, err := s.peekAt(i)
		if err != nil || c != '#' {
			return false
		}
	}
	return true
}

// readQuotedString reads a formatted string, including escape sequences. It handles both the single-line form
// and the multi-line block form ("""..."""), normalizing either into a single internal representation.
func (s *Scanner) readQuotedString(start markPos) (Token, error) {
	s.skip() // opening '"'

	if s.quotesFollow(2) {
		s.skipN(2)
		body, err := s.readBlockStringBody()
		if err != nil {
			return Token{}, err
		}
		s.skipN(3) // closing """
		data := make([]byte, 0, len(body)+2)
		data = append(data, '"')
		data = append(data, body...)
		data = append(data, '"')
		return s.finish(QuotedString, start, data)
	}

	content := []byte{'"'}
	for {
		c, err := s.get()
		if err != nil {
			return Token{}, fmt.Errorf("unterminated string")
		}
		switch {
		case c == '"':
			content = append(content, '"')
			return s.finish(QuotedString, start, content)
		case isNewline(c):
			return Token{}, fmt.Errorf("unescaped newline in quoted string")
		case c == '\\':
			escaped, err := s.readEscapeBody()
			if err != nil {
				return Token{}, err
			}
			if escaped != nil {
				content = append(content, '\\')
				content = append(content, escaped...)
			}
		default:
			content = utf8.AppendRune(content, c)
		}
	}
}

// readEscapeBody reads everything after a '\' in a quoted string (the escape character itself, plus the `{HEX}`
// body of a \u escape), or consumes a line continuation and returns nil if the escape is actually a continuation.
func (s *Scanner) readEscapeBody() ([]byte, error) {
	n, err := s.peek()
	if err != nil {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if isNewline(n) {
		s.skip()
		if n == '\r' {
			if nn, err2 := s.peek(); err2 == nil && nn == '\n' {
				s.skip()
			}
		}
		for {
			c, err2 := s.peek()
			if err2 != nil || !isWhiteSpace(c) {
				break
			}
			s.skip()
		}
		return nil, nil
	}

	esc, err := s.get()
	if err != nil {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	out := []byte{byte(esc)}
	if esc == 'u' {
		c, err2 := s.peek()
		if err2 != nil || c != '{' {
			return nil, fmt.Errorf("expected '{' after \\u escape")
		}
		s.skip()
		out = append(out, '{')
		for {
			c2, err3 := s.get()
			if err3 != nil {
				return nil, fmt.Errorf("unterminated unicode escape")
			}
			out = append(out, byte(c2))
			if c2 == '}' {
				break
			}
		}
	}
	return out, nil
}

// readBlockStringBody reads the raw bytes of a multi-line string body from just after the opening triple-quote
// up to (but not including) the closing triple-quote, dedenting every line by the indentation of the closing
// delimiter's line and dropping the final newline, per KDL 2.0's multi-line string rules.
func (s *Scanner) readBlockStringBody() ([]byte, error) {
	c, err := s.get()
	if err != nil || !isNewline(c) {
		return nil, fmt.Errorf("a multi-line string must begin with a newline immediately after the opening quotes")
	}
	if c == '\r' {
		if n, err2 := s.peek(); err2 == nil && n == '\n' {
			s.skip()
		}
	}

	var raw []byte
	for {
		if s.quotesFollow(3) {
			break
		}
		ch, err := s.get()
		if err != nil {
			return nil, fmt.Errorf("unterminated multi-line string")
		}
		if isNewline(ch) {
			if ch == '\r' {
				if n, err2 := s.peek(); err2 == nil && n == '\n' {
					s.skip()
				}
			}
			raw = append(raw, '\n')
			continue
		}
		raw = utf8.AppendRune(raw, ch)
	}

	lines := bytes.Split(raw, []byte{'\n'})
	closingIndent := lines[len(lines)-1]
	for _, b := range closingIndent {
		if !isWhiteSpace(rune(b)) {
			return nil, fmt.Errorf("the closing quotes of a multi-line string must be preceded only by whitespace")
		}
	}
	lines = lines[:len(lines)-1]

	for i, line := range lines {
		if len(line) == 0 {
			continue
		}
		if !bytes.HasPrefix(line, closingIndent) {
			return nil, fmt.Errorf("line %d of a multi-line string is indented less than its closing delimiter", i+1)
		}
		lines[i] = line[len(closingIndent):]
	}

	return bytes.Join(lines, []byte{'\n'}), nil
}

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isOctalDigit(c rune) bool {
	return c >= '0' && c <= '7'
}

func isBinaryDigit(c rune) bool {
	return c == '0' || c == '1'
}

// readDigits consumes a run of digits accepted by allowed, permitting '_' separators anywhere but the first
// position, and requires at least one digit.
func (s *Scanner) readDigits(allowed func(rune) bool) error {
	n := 0
	for {
		c, err := s.peek()
		if err != nil {
			break
		}
		if c == '_' {
			if n == 0 {
				return fmt.Errorf("a number cannot start with an underscore")
			}
			s.skip()
			continue
		}
		if !allowed(c) {
			break
		}
		s.skip()
		n++
	}
	if n == 0 {
		return fmt.Errorf("expected a digit")
	}
	return nil
}

// readNumber reads a decimal, hexadecimal, octal, or binary number, per KDL 2.0's grammar.
func (s *Scanner) readNumber(start markPos) (Token, error) {
	s.pushMark()
	defer s.popMark()

	if c, err := s.peek(); err == nil && isSign(c) {
		s.skip()
	}

	if c, err := s.peek(); err == nil && c == '0' {
		if n, err2 := s.peekAt(1); err2 == nil {
			switch n {
			case 'x':
				s.skipN(2)
				if err3 := s.readDigits(isHexDigit); err3 != nil {
					return Token{}, err3
				}
				return s.finish(Hexadecimal, start, s.textFromMark())
			case 'o':
				s.skipN(2)
				if err3 := s.readDigits(isOctalDigit); err3 != nil {
					return Token{}, err3
				}
				return s.finish(Octal, start, s.textFromMark())
			case 'b':
				s.skipN(2)
				if err3 := s.readDigits(isBinaryDigit); err3 != nil {
					return Token{}, err3
				}
				return s.finish(Binary, start, s.textFromMark())
			}
		}
	}

	if err := s.readDigits(isDigit); err != nil {
		return Token{}, err
	}
	if c, err := s.peek(); err == nil && c == '.' {
		if n, err2 := s.peekAt(1); err2 == nil && isDigit(n) {
			s.skip()
			if err3 := s.readDigits(isDigit); err3 != nil {
				return Token{}, err3
			}
		}
	}
	if c, err := s.peek(); err == nil && (c == 'e' || c == 'E') {
		if n, err2 := s.peekAt(1); err2 == nil && (isDigit(n) || (isSign(n) && func() bool { c2, e2 := s.peekAt(2); return e2 == nil && isDigit(c2) }())) {
			s.skip()
			if c2, err3 := s.peek(); err3 == nil && isSign(c2) {
				s.skip()
			}
			if err3 := s.readDigits(isDigit); err3 != nil {
				return Token{}, err3
			}
		}
	}

	if s.RelaxedNonCompliant.Permit(relaxed.MultiplierSuffixes) {
		if c, err := s.peek(); err == nil && isSuffixChar(c) {
			for {
				c, err := s.peek()
				if err != nil || !isSuffixChar(c) {
					break
				}
				s.skip()
			}
			return s.finish(SuffixedDecimal, start, s.textFromMark())
		}
	}

	return s.finish(Decimal, start, s.textFromMark())
}

// isSuffixChar reports whether c can appear in a relaxed.MultiplierSuffixes unit suffix: the binary/decimal
// multiplier letters (k/m/g/t/p, case-insensitive, optionally followed by b/B) or a time.ParseDuration unit
// (ns, us, µs, ms, s, m, h).
func isSuffixChar(c rune) bool {
	switch c {
	case 'k', 'K', 'm', 'M', 'g', 'G', 't', 'T', 'p', 'P', 'b', 'B', 'n', 's', 'S', 'u', 'U', 'h', 'H', 'µ':
		return true
	default:
		return false
	}
}

// readBareIdentifier reads a bare identifier (a node name, property key, or unquoted string value that needs no
// quoting), rejecting the reserved words that must be spelled with a `#` prefix or quotes instead.
func (s *Scanner) readBareIdentifier(start markPos) (Token, error) {
	s.pushMark()
	defer s.popMark()

	c, err := s.peek()
	if err != nil {
		return Token{}, errUnexpectedInput(c, err)
	}
	if isSign(c) {
		s.skip()
	} else if isBareIdentifierStartChar(c) {
		s.skip()
	} else {
		return Token{}, fmt.Errorf("unexpected character %q", c)
	}

	for {
		c, err := s.peek()
		if err != nil || !isBareIdentifierChar(c) {
			break
		}
		s.skip()
	}

	data := s.textFromMark()
	if IsReservedWord(string(data)) {
		return Token{}, &LexError{
			Kind: LexReservedWord,
			Line: start.line, Column: start.column, Offset: start.offset,
			Err: fmt.Errorf("%q must be written as #%s or quoted", string(data), string(data)),
		}
	}
	return s.finish(BareIdentifier, start, data)
}
