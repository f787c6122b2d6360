package coerce

import (
	"encoding"
	"fmt"
	"math/big"
	"reflect"
	"time"
)

// truthyWord reports whether s spells a recognizable truthy token when a document.Value's underlying payload is a
// string rather than KDL's own #true/#false keywords — "1", "y", "yes", "t", "true" (case-insensitive on the
// first letter); anything else, including "0"/"n"/"no"/"f"/"false", is false.
func truthyWord(s string) bool {
	switch len(s) {
	case 1:
		return (s[0] > '0' && s[0] <= '9') || s[0] == 'y' || s[0] == 'Y' || s[0] == 't' || s[0] == 'T'
	case 3:
		return s[0] == 'y' || s[0] == 'Y'
	case 4:
		return s[0] == 't' || s[0] == 'T'
	default:
		return false
	}
}

// ToBool coerces a resolved document.Value payload into bool. Numeric kinds are truthy when non-zero; nil and the
// zero time.Time are false; strings and Stringers/TextMarshalers fall back to truthyWord.
func ToBool(v interface{}) bool {
	switch x := v.(type) {
	case bool:
		return x
	case nil:
		return false
	case string:
		return truthyWord(x)
	case []byte:
		return truthyWord(string(x))
	case []rune:
		return truthyWord(string(x))
	case time.Time:
		return !x.IsZero()
	case *big.Int:
		return x.Sign() != 0
	case *big.Float:
		return x.Sign() != 0
	case error:
		return x != nil
	case encoding.TextMarshaler:
		b, _ := x.MarshalText()
		return truthyWord(string(b))
	case fmt.Stringer:
		return truthyWord(x.String())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() != 0
	default:
		return false
	}
}
