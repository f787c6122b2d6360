package document

import (
	"github.com/kdl2x/kdl2/internal/tokenizer"
)

// Properties is the ordered set of name=value pairs attached to a Node's header. Order reflects the position of
// each key's *last* assignment in the source text; a repeated key keeps only its final value but retains the
// position of that final occurrence, per the KDL 2.0 "last wins" rule.
type Properties struct {
	order []string
	props map[string]*Value
}

// Allocated reports whether the property set has backing storage.
func (p *Properties) Allocated() bool {
	return p.props != nil
}

// Alloc allocates backing storage for the property set.
func (p *Properties) Alloc() {
	p.order = make([]string, 0, 8)
	p.props = make(map[string]*Value, 8)
}

// Len returns the number of distinct property keys.
func (p *Properties) Len() int {
	return len(p.order)
}

// Keys returns the property keys in their preserved order.
func (p *Properties) Keys() []string {
	return p.order
}

// Get returns the value for key and whether it was present.
func (p Properties) Get(key string) (*Value, bool) {
	if p.props == nil {
		return nil, false
	}
	v, ok := p.props[key]
	return v, ok
}

// Add sets the value for name, moving it to the end of the order if it already existed (last-wins: the
// surviving entry takes the position of the last occurrence).
func (p *Properties) Add(name string, val *Value) {
	if _, exists := p.props[name]; exists {
		for i, k := range p.order {
			if k == name {
				p.order = append(p.order[:i], p.order[i+1:]...)
				break
			}
		}
	}
	p.order = append(p.order, name)
	p.props[name] = val
}

// Exist reports whether any properties are present.
func (p *Properties) Exist() bool {
	return len(p.order) > 0
}

// Unordered returns the backing map directly, for callers that don't care about order.
func (p Properties) Unordered() map[string]*Value {
	return p.props
}

func (p *Properties) appendString(b []byte, formatted bool) []byte {
	for _, k := range p.order {
		v := p.props[k]
		b = append(b, ' ')
		if len(k) > 0 && tokenizer.IsBareIdentifier(k) {
			b = append(b, k...)
		} else {
			b = AppendQuotedString(b, k, '"')
		}
		b = append(b, '=')
		if formatted {
			b = append(b, v.FormattedString()...)
		} else {
			b = append(b, v.UnformattedString()...)
		}
	}
	return b
}

// String returns the KDL representation of the property list, with values formatted per their original flags.
func (p *Properties) String() string {
	return string(p.appendString(make([]byte, 0, len(p.order)*16), true))
}

// UnformattedString is like String but ignores original numeric/string formatting flags.
func (p *Properties) UnformattedString() string {
	return string(p.appendString(make([]byte, 0, len(p.order)*16), false))
}

// AppendTo appends the KDL representation of the property list to b and returns the expanded buffer.
func (p Properties) AppendTo(b []byte) []byte {
	return (&p).appendString(b, true)
}
