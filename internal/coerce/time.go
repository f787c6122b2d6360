package coerce

import (
	"fmt"
	"time"
)

// ToTime widens v to a time.Time. A string is parsed as RFC 3339 (the "date/time parsed from ISO 8601 strings"
// widening the schema Binder's coercion table offers for Property/Argument slots declared time.Time); an int64
// or float64 is interpreted as a Unix timestamp in seconds, matching ToInt64's own time.Time->int64 direction.
func ToTime(v interface{}) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		return time.Parse(time.RFC3339, x)
	case []byte:
		return time.Parse(time.RFC3339, string(x))
	case int64:
		return time.Unix(x, 0), nil
	case int:
		return time.Unix(int64(x), 0), nil
	case float64:
		sec := int64(x)
		nsec := int64((x - float64(sec)) * 1e9)
		return time.Unix(sec, nsec), nil
	default:
		return time.Time{}, fmt.Errorf("cannot coerce %T to time.Time", v)
	}
}
