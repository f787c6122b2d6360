package coerce

import (
	"encoding"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"time"
)

// ToString coerces a resolved document.Value payload into its textual form — the inverse side of FromString,
// used when a schema field is declared string-typed but the source node held a numeric or boolean literal.
func ToString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return "<nil>"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case []byte:
		return string(x)
	case []rune:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case *big.Int:
		return x.String()
	case *big.Float:
		return x.String()
	case complex64:
		return strconv.FormatComplex(complex128(x), 'G', -1, 64)
	case complex128:
		return strconv.FormatComplex(x, 'G', -1, 128)
	case error:
		return x.Error()
	case encoding.TextMarshaler:
		b, _ := x.MarshalText()
		return string(b)
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'G', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'G', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FromString guesses s's originally-intended type back from its text: the KDL keyword spellings for bool/null, or
// a decimal literal, falling back to the string itself. A map[string]string OtherProperties catch-all loses its
// source typing on the way into the binder; Emit uses this to approximate the round trip.
func FromString(s string) interface{} {
	switch s {
	case "true", "false":
		return ToBool(s)
	case "null":
		return nil
	}
	if !numericLiteral.MatchString(s) {
		return s
	}
	i, f, isInt := ToNumeric(s)
	if isInt {
		return i
	}
	return f
}
