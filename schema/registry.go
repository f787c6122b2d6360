package schema

import (
	"reflect"
	"sync"
)

// unions maps an interface type to the concrete struct types registered as its members, letting a Children<union>
// slot (spec §3, §4.7) resolve which node classes it accepts. There is no reflective way to enumerate an
// interface's implementers in Go, so a union must be declared explicitly with Register.
var unions sync.Map // reflect.Type -> []reflect.Type

// Register declares that the concrete types of members all belong to the union named by iface, an interface
// value such as (*MyUnion)(nil). A Children field typed as that interface (or a slice of it) resolves its node
// group to exactly these classes.
func Register(iface interface{}, members ...interface{}) {
	ifaceType := reflect.TypeOf(iface)
	if ifaceType != nil {
		ifaceType = ifaceType.Elem()
	} else {
		return
	}
	types := make([]reflect.Type, 0, len(members))
	for _, m := range members {
		t := reflect.TypeOf(m)
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		types = append(types, t)
	}
	unions.Store(ifaceType, types)
}

func unionMembers(ifaceType reflect.Type) []reflect.Type {
	v, ok := unions.Load(ifaceType)
	if !ok {
		return nil
	}
	return v.([]reflect.Type)
}
