package coerce

import (
	"fmt"

	"github.com/google/uuid"
)

// ToUUID widens v to a uuid.UUID. Accepts a string (parsed per RFC 4122), an existing uuid.UUID, a 16-byte []byte
// (taken as the raw bytes), or another []byte, a []rune or a fmt.Stringer (parsed as text), and returns an error
// for anything else — unlike the other To* coercions, there is no sensible
// zero-value fallback for an identifier.
func ToUUID(v interface{}) (uuid.UUID, error) {
	switch x := v.(type) {
	case uuid.UUID:
		return x, nil
	case string:
		return uuid.Parse(x)
	case []byte:
		if len(x) == 16 {
			return uuid.FromBytes(x)
		}
		return uuid.Parse(string(x))
	case []rune:
		return uuid.Parse(string(x))
	case fmt.Stringer:
		return uuid.Parse(x.String())
	default:
		return uuid.UUID{}, fmt.Errorf("cannot coerce %T to uuid.UUID", v)
	}
}
