package coerce

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"time"
)

// ToInt64 coerces a resolved document.Value payload into int64. time.Duration widens to whole seconds (matching
// ToNumeric's time.Time handling); strings parse as plain decimal integers with no unit suffix.
func ToInt64(v interface{}) int64 {
	switch x := v.(type) {
	case time.Time:
		return x.Unix()
	case time.Duration:
		return int64(x.Seconds())
	case complex64:
		return int64(real(x))
	case complex128:
		return int64(real(x))
	case *big.Int:
		return x.Int64()
	case *big.Float:
		i, _ := x.Int64()
		return i
	case error:
		i, _ := strconv.ParseInt(x.Error(), 10, 64)
		return i
	}

	if s, ok := textOf(v); ok {
		i, _ := strconv.ParseInt(s, 10, 64)
		return i
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float())
	default:
		if ToBool(v) {
			return 1
		}
		return 0
	}
}

// ToByte truncates ToInt64's result to a single byte.
func ToByte(v interface{}) byte {
	return byte(ToInt64(v))
}

// multiplierUnits holds the two relaxed.MultiplierSuffixes readings of k/m/g/t/p/e: decimal (si) steps of 1000,
// binary (iec) steps of 1024 when the suffix carries a trailing b/B.
var multiplierUnits = map[bool]map[byte]int64{
	true:  {'k': 1e3, 'm': 1e6, 'g': 1e9, 't': 1e12, 'p': 1e15, 'e': 1e18},
	false: {'k': 1 << 10, 'm': 1 << 20, 'g': 1 << 30, 't': 1 << 40, 'p': 1 << 50, 'e': 1 << 60},
}

func suffixToMultiplier(suffix string) (int64, error) {
	si := true
	switch len(suffix) {
	case 0:
		return 1, nil
	case 1:
	case 2:
		if suffix[1] != 'b' && suffix[1] != 'B' {
			return 0, fmt.Errorf("invalid suffix: %s", suffix)
		}
		si = false
	default:
		return 0, fmt.Errorf("invalid suffix: %s", suffix)
	}

	u := suffix[0]
	if u >= 'A' && u <= 'Z' {
		u += 32
	}
	m, ok := multiplierUnits[si][u]
	if !ok {
		return 0, fmt.Errorf("invalid suffix: %s", suffix)
	}
	return m, nil
}

// parseSuffixedInt splits s at its first non-digit, non-'.' byte and treats what follows as a multiplier suffix
// (relaxed.MultiplierSuffixes); with no recognizable split point it falls back to a plain integer parse.
func parseSuffixedInt(s string) (int64, error) {
	split := -1
	for i, c := range s {
		if c >= '0' && c <= '9' || c == '.' {
			if split != -1 {
				return strconv.ParseInt(s, 10, 64)
			}
			continue
		}
		if split == -1 {
			split = i
		}
	}
	if split <= 0 {
		return strconv.ParseInt(s, 10, 64)
	}
	n, err := strconv.ParseFloat(s[:split], 64)
	if err != nil {
		return 0, err
	}
	multiplier, err := suffixToMultiplier(s[split:])
	if err != nil {
		return 0, err
	}
	return int64(n * float64(multiplier)), nil
}

// ToInt64Suffix is ToInt64 with relaxed.MultiplierSuffixes string parsing: "4k" reads as 4000, "4kb" as 4096.
func ToInt64Suffix(v interface{}) int64 {
	if s, ok := textOf(v); ok {
		i, _ := parseSuffixedInt(s)
		return i
	}
	return ToInt64(v)
}
