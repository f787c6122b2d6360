package coerce

import "regexp"

var (
	numericLiteral = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?([eE][0-9]+(\.[0-9]+)?)?$`)
	integerLiteral = regexp.MustCompile(`^[0-9]+$`)
)

// IsNumeric reports whether v's resolved payload can be read as a number: a numeric Go kind, *big.Int/*big.Float,
// or a string/[]byte/Stringer whose text matches a decimal literal. The binder consults this before widening a string
// into a Float-kind schema field so a non-numeric string produces a BindTypeMismatch instead of silently coercing
// to zero; Complex-kind fields take strings as Go complex literals and are not checked here.
func IsNumeric(v interface{}) bool {
	if isNumericKind(v) {
		return true
	}
	if s, ok := textOf(v); ok {
		return numericLiteral.MatchString(s)
	}
	return false
}

// IsInteger is IsNumeric narrowed to whole numbers: no fractional part, no exponent. The binder consults this
// before widening into an Int/Uint-kind schema field so "3.14" is rejected rather than truncated.
func IsInteger(v interface{}) bool {
	if isIntegerKind(v) {
		return true
	}
	if s, ok := textOf(v); ok {
		return integerLiteral.MatchString(s)
	}
	return false
}
