package document

import (
	"fmt"
	"math/big"
	"time"
)

// SuffixedDecimal is a relaxed.MultiplierSuffixes value: a decimal number immediately followed by a unit suffix
// with no separator, e.g. 32kb or 15s. Which reading applies depends on the destination field's Go type, decided
// by the binder's coercion layer rather than here: AsDuration treats the literal as a time.ParseDuration string;
// AsNumber treats Suffix as a decimal/binary multiplier.
type SuffixedDecimal struct {
	Number []byte
	Suffix []byte
}

// String returns the original literal with Number and Suffix rejoined.
func (s SuffixedDecimal) String() string {
	b := make([]byte, 0, len(s.Number)+len(s.Suffix))
	b = append(b, s.Number...)
	b = append(b, s.Suffix...)
	return string(b)
}

// AsDuration parses the literal as a Go duration string (15s, 2h30m, 100ms).
func (s SuffixedDecimal) AsDuration() (time.Duration, error) {
	return time.ParseDuration(s.String())
}

// AsNumber interprets Suffix as a [kKmMgGtTpP] decimal multiplier (*1000 per step) or, followed by b/B, a binary
// one (*1024 per step).
func (s SuffixedDecimal) AsNumber() (interface{}, error) {
	n, err := parseNumber(s.Number, 10)
	if err != nil {
		return nil, fmt.Errorf("suffixed decimal: %w", err)
	}
	if len(s.Suffix) == 0 {
		return n, nil
	}

	unit := float64(1000)
	switch len(s.Suffix) {
	case 1:
	case 2:
		if s.Suffix[1] != 'b' && s.Suffix[1] != 'B' {
			return nil, fmt.Errorf("invalid multiplier suffix %q", s.Suffix)
		}
		unit = 1024
	default:
		return nil, fmt.Errorf("invalid multiplier suffix %q", s.Suffix)
	}

	var steps int
	switch s.Suffix[0] {
	case 'k', 'K':
		steps = 1
	case 'm', 'M':
		steps = 2
	case 'g', 'G':
		steps = 3
	case 't', 'T':
		steps = 4
	case 'p', 'P':
		steps = 5
	default:
		return nil, fmt.Errorf("invalid multiplier suffix %q", s.Suffix)
	}
	multiplier := 1.0
	for i := 0; i < steps; i++ {
		multiplier *= unit
	}

	switch v := n.(type) {
	case int64:
		return float64(v) * multiplier, nil
	case float64:
		return v * multiplier, nil
	case *big.Int:
		bf := new(big.Float).SetInt(v)
		return new(big.Float).Mul(bf, big.NewFloat(multiplier)), nil
	case *big.Float:
		return new(big.Float).Mul(v, big.NewFloat(multiplier)), nil
	default:
		return nil, fmt.Errorf("suffixed decimal: unsupported numeric type %T", n)
	}
}

// ParseSuffixedDecimal splits b into its leading decimal digits and trailing unit suffix. It does not interpret
// the suffix; call AsDuration or AsNumber for that, once the destination type is known.
func ParseSuffixedDecimal(b []byte) (SuffixedDecimal, error) {
	i := 0
	for i < len(b) && (b[i] == '.' || (b[i] >= '0' && b[i] <= '9')) {
		i++
	}
	if i == 0 {
		return SuffixedDecimal{}, fmt.Errorf("suffixed decimal %q has no leading digits", b)
	}
	return SuffixedDecimal{Number: b[:i], Suffix: b[i:]}, nil
}
