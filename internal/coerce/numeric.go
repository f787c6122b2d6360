package coerce

import (
	"encoding"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// textOf extracts the textual form of v for the string-pattern checks in scalar.go, without going through the
// full ToString formatting (which would turn a non-numeric default case into "%v" noise instead of failing the
// pattern match cleanly).
func textOf(v interface{}) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	case []rune:
		return string(x), true
	case encoding.TextMarshaler:
		b, _ := x.MarshalText()
		return string(b), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return "", false
	}
}

func isNumericKind(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, complex64, complex128, *big.Int, *big.Float:
		return true
	default:
		return false
	}
}

func isIntegerKind(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, *big.Int:
		return true
	default:
		return false
	}
}

func parseDecimalText(s string) (i int64, f float64, isint bool) {
	if strings.IndexByte(s, '.') != -1 {
		f, _ = strconv.ParseFloat(s, 64)
		return 0, f, false
	}
	i, _ = strconv.ParseInt(s, 10, 64)
	return i, 0, true
}

// ToNumeric coerces a resolved document.Value payload into either an int64 or a float64, reporting which via
// isint. time.Time widens to its Unix seconds; a complex value keeps only its real part.
func ToNumeric(v interface{}) (i int64, f float64, isint bool) {
	switch x := v.(type) {
	case time.Time:
		return x.Unix(), 0, true
	case complex64:
		return 0, float64(real(x)), false
	case complex128:
		return 0, real(x), false
	case *big.Int:
		return x.Int64(), 0, true
	case *big.Float:
		f, _ := x.Float64()
		return 0, f, false
	case error:
		return parseDecimalText(x.Error())
	}

	if s, ok := textOf(v); ok {
		return parseDecimalText(s)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), 0, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), 0, true
	case reflect.Float32, reflect.Float64:
		return 0, rv.Float(), false
	default:
		if ToBool(v) {
			return 1, 0, true
		}
		return 0, 0, true
	}
}
