package coerce

import (
	"math/big"
	"reflect"
	"strconv"
	"time"
)

func bigIntToFloat64(x *big.Int) float64 {
	bf := new(big.Float).SetInt(x)
	f, _ := bf.Float64()
	return f
}

// ToFloat64 coerces a resolved document.Value payload into float64. time.Duration widens to fractional seconds;
// strings parse as plain decimal floats with no unit suffix.
func ToFloat64(v interface{}) float64 {
	switch x := v.(type) {
	case time.Time:
		return float64(x.Unix())
	case time.Duration:
		return x.Seconds()
	case complex64:
		return float64(real(x))
	case complex128:
		return real(x)
	case *big.Int:
		return bigIntToFloat64(x)
	case *big.Float:
		f, _ := x.Float64()
		return f
	case error:
		f, _ := strconv.ParseFloat(x.Error(), 64)
		return f
	}

	if s, ok := textOf(v); ok {
		f, _ := strconv.ParseFloat(s, 64)
		return f
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		if ToBool(v) {
			return 1
		}
		return 0
	}
}

// parseSuffixedFloat is parseSuffixedInt's float-valued counterpart: same digit/suffix split, multiplier applied
// to a float64 mantissa instead of truncating through int64.
func parseSuffixedFloat(s string) (float64, error) {
	split := -1
	for i, c := range s {
		if c >= '0' && c <= '9' || c == '.' {
			if split != -1 {
				return strconv.ParseFloat(s, 64)
			}
			continue
		}
		if split == -1 {
			split = i
		}
	}
	if split <= 0 {
		return strconv.ParseFloat(s, 64)
	}
	n, err := strconv.ParseFloat(s[:split], 64)
	if err != nil {
		return 0, err
	}
	multiplier, err := suffixToMultiplier(s[split:])
	if err != nil {
		return 0, err
	}
	return n * float64(multiplier), nil
}

// ToFloat64Suffix is ToFloat64 with relaxed.MultiplierSuffixes string parsing.
func ToFloat64Suffix(v interface{}) float64 {
	if s, ok := textOf(v); ok {
		f, _ := parseSuffixedFloat(s)
		return f
	}
	return ToFloat64(v)
}
