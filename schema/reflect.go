package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// cache holds one Descriptor per struct type, built once and reused by every subsequent Bind/Emit call for that
// type — the same "build the index once per Go type" discipline internal/marshaler/typeindex.go used its
// atomic.Bool createdTypeIndexer guard for, generalized here to a concurrent-safe per-key map so unrelated
// classes don't serialize behind a single flag.
var cache sync.Map // reflect.Type -> *Descriptor

var (
	uuidType = reflect.TypeOf(uuid.UUID{})
	timeType = reflect.TypeOf(time.Time{})
)

// scalarFieldType reports whether t should be treated as a leaf value (Argument/Property) rather than descended
// into as a nested node class.
func scalarFieldType(t reflect.Type) bool {
	if t == timeType || t == uuidType {
		return true
	}
	switch t.Kind() {
	case reflect.Struct:
		return false
	case reflect.Ptr:
		return scalarFieldType(t.Elem())
	default:
		return true
	}
}

// tagSpec is the parsed form of a `kdl:"..."` struct tag: `kdl:"name,flag,flag"`.
type tagSpec struct {
	name  string
	flags map[string]bool
	skip  bool
}

func parseTag(raw string) tagSpec {
	if raw == "-" {
		return tagSpec{skip: true}
	}
	parts := strings.Split(raw, ",")
	spec := tagSpec{name: parts[0], flags: map[string]bool{}}
	for _, f := range parts[1:] {
		spec.flags[f] = true
	}
	return spec
}

func defaultName(fieldName string) string {
	var b strings.Builder
	for i, r := range fieldName {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// Build derives (or returns the cached) Descriptor for t, which must be a struct type or a pointer to one.
func Build(t reflect.Type) (*Descriptor, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: %s is not a struct type", t)
	}
	if d, ok := cache.Load(t); ok {
		return d.(*Descriptor), nil
	}

	d := &Descriptor{
		Type:       t,
		NodeName:   defaultName(t.Name()),
		Properties: map[string]Slot{},
	}
	if err := indexFields(t, nil, d); err != nil {
		return nil, err
	}

	actual, _ := cache.LoadOrStore(t, d)
	return actual.(*Descriptor), nil
}

func indexFields(t reflect.Type, prefix []int, d *Descriptor) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue // unexported
		}
		index := append(append([]int{}, prefix...), i)

		raw, has := f.Tag.Lookup("kdl")
		spec := parseTag(raw)
		if has && spec.skip {
			continue
		}

		if f.Anonymous && !has {
			ft := f.Type
			for ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if err := indexFields(ft, index, d); err != nil {
					return err
				}
				continue
			}
		}

		switch {
		case spec.flags["arg"]:
			d.Arguments = append(d.Arguments, Slot{
				Kind:     SlotArgument,
				Name:     f.Name,
				Field:    index,
				Type:     f.Type,
				Optional: spec.flags["optional"],
			})
		case spec.flags["args"]:
			s := Slot{Kind: SlotOtherArguments, Name: f.Name, Field: index, Type: f.Type}
			d.OtherArguments = &s
		case spec.flags["props"]:
			s := Slot{Kind: SlotOtherProperties, Name: f.Name, Field: index, Type: f.Type}
			d.OtherProperties = &s
		case spec.flags["children"]:
			s := Slot{Kind: SlotOtherChildren, Name: f.Name, Field: index, Type: f.Type}
			d.OtherChildren = &s
		case isChildSlot(f.Type):
			name := spec.name
			members, err := childClasses(f.Type, name)
			if err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
			if isChildrenSlice(f.Type) {
				d.Children = append(d.Children, Slot{Kind: SlotChildren, Name: f.Name, Field: index, Type: f.Type, Group: members, Optional: true})
			} else {
				d.Children = append(d.Children, Slot{Kind: SlotChild, Name: f.Name, Field: index, Type: f.Type, Group: members, Optional: spec.flags["optional"]})
			}
		default:
			name := spec.name
			if name == "" {
				name = defaultName(f.Name)
			}
			d.Properties[name] = Slot{
				Kind:     SlotProperty,
				Name:     name,
				Field:    index,
				Type:     f.Type,
				Optional: spec.flags["optional"],
			}
			d.propOrder = append(d.propOrder, name)
		}
	}
	return nil
}

// isChildSlot reports whether t denotes a nested-node field: a struct (or pointer to one, or slice/slice-of-
// pointer of one) that isn't one of the recognized scalar leaf types, or an interface (a declared union).
func isChildSlot(t reflect.Type) bool {
	et := t
	if et.Kind() == reflect.Slice {
		et = et.Elem()
	}
	for et.Kind() == reflect.Ptr {
		et = et.Elem()
	}
	if et.Kind() == reflect.Interface {
		return true
	}
	return et.Kind() == reflect.Struct && !scalarFieldType(et)
}

func isChildrenSlice(t reflect.Type) bool {
	return t.Kind() == reflect.Slice
}

// childClasses resolves the set of node classes a Child/Children slot accepts: the single element type if it's
// a concrete struct, or the registered union members if it's an interface.
func childClasses(t reflect.Type, fieldTagName string) ([]reflect.Type, error) {
	et := t
	if et.Kind() == reflect.Slice {
		et = et.Elem()
	}
	for et.Kind() == reflect.Ptr {
		et = et.Elem()
	}
	if et.Kind() == reflect.Interface {
		members := unionMembers(et)
		if len(members) == 0 {
			return nil, fmt.Errorf("interface type %s has no registered schema.Register members", et)
		}
		return members, nil
	}
	return []reflect.Type{et}, nil
}
