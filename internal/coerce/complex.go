package coerce

import (
	"encoding"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"time"
)

// parseComplexText parses s as a Go complex literal ("1+2i"), returning 0 on malformed input rather than an
// error — KDL has no native complex literal, so this only applies to string-typed node values a schema field
// declares as complex64/complex128.
func parseComplexText(s string) complex128 {
	c, _ := strconv.ParseComplex(s, 128)
	return c
}

// ToComplex128 coerces a resolved document.Value payload into complex128. Real-valued kinds map to a zero
// imaginary part; strings and Stringers/TextMarshalers are parsed as Go complex literals.
func ToComplex128(v interface{}) complex128 {
	switch x := v.(type) {
	case complex64:
		return complex128(x)
	case complex128:
		return x
	case time.Time:
		return complex(float64(x.Unix()), 0)
	case string:
		return parseComplexText(x)
	case []byte:
		return parseComplexText(string(x))
	case []rune:
		return parseComplexText(string(x))
	case error:
		return parseComplexText(x.Error())
	case encoding.TextMarshaler:
		b, _ := x.MarshalText()
		return parseComplexText(string(b))
	case fmt.Stringer:
		return parseComplexText(x.String())
	case *big.Int:
		bf := new(big.Float).SetInt(x)
		f, _ := bf.Float64()
		return complex(f, 0)
	case *big.Float:
		f, _ := x.Float64()
		return complex(f, 0)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return complex(float64(rv.Int()), 0)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return complex(float64(rv.Uint()), 0)
	case reflect.Float32, reflect.Float64:
		return complex(rv.Float(), 0)
	default:
		if ToBool(v) {
			return 1
		}
		return 0
	}
}
