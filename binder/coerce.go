package binder

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/kdl2x/kdl2/document"
	"github.com/kdl2x/kdl2/internal/coerce"
	"github.com/kdl2x/kdl2/relaxed"
)

func errf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	uuidType     = reflect.TypeOf(uuid.UUID{})
	durationType = reflect.TypeOf(time.Duration(0))
)

// assignValue coerces raw (a decoded document.Value payload: int64/*big.Int/float64/*big.Float/string/bool/nil)
// into field, applying spec §4.8's coercion order: exact-type match first, then the one documented widening per
// declared type (Integer->floating, String->uuid.UUID, String/Integer->time.Time).
func (b *Binder) assignValue(field reflect.Value, raw interface{}) error {
	if !field.CanSet() {
		return errf("field is not settable")
	}

	if field.Kind() == reflect.Ptr {
		if raw == nil {
			field.Set(reflect.Zero(field.Type()))
			return nil
		}
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return b.assignValue(field.Elem(), raw)
	}

	if sd, ok := raw.(document.SuffixedDecimal); ok {
		if field.Type() == durationType {
			d, err := sd.AsDuration()
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := sd.AsNumber()
		if err != nil {
			return err
		}
		return b.assignValue(field, n)
	}

	ft := field.Type()
	switch {
	case ft == timeType:
		t, err := coerce.ToTime(raw)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(t))
		return nil
	case ft == uuidType:
		u, err := coerce.ToUUID(raw)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(u))
		return nil
	}

	if rv := reflect.ValueOf(raw); raw != nil && rv.Type().AssignableTo(ft) {
		field.Set(rv)
		return nil
	}

	// A quoted string carrying an embedded relaxed.MultiplierSuffixes suffix ("30s", "4Gb") only reaches here
	// (rather than the SuffixedDecimal branch above) because the source spelled it as a string, not a bare
	// number; honor the same suffix grammar for it when the caller opted in.
	suffixed := b.RelaxedNonCompliant.Permit(relaxed.MultiplierSuffixes)
	if _, isStr := raw.(string); !isStr {
		suffixed = false
	}

	// A plain string headed for an integer or floating field must read as a number of that kind; otherwise the
	// coercions below would turn it into zero or truncate it.
	if s, isStr := raw.(string); isStr && !suffixed && ft != durationType {
		switch field.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if !coerce.IsInteger(s) {
				return errf("cannot coerce %q into %s", s, ft)
			}
		case reflect.Float32, reflect.Float64:
			if !coerce.IsNumeric(s) {
				return errf("cannot coerce %q into %s", s, ft)
			}
		}
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(coerce.ToString(raw))
	case reflect.Bool:
		field.SetBool(coerce.ToBool(raw))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if ft == durationType {
			field.SetInt(int64(coerce.ToInt64(raw)))
		} else if suffixed {
			field.SetInt(coerce.ToInt64Suffix(raw))
		} else {
			field.SetInt(coerce.ToInt64(raw))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if suffixed {
			field.SetUint(uint64(coerce.ToInt64Suffix(raw)))
		} else {
			field.SetUint(uint64(coerce.ToInt64(raw)))
		}
	case reflect.Float32, reflect.Float64:
		if suffixed {
			field.SetFloat(coerce.ToFloat64Suffix(raw))
		} else {
			field.SetFloat(coerce.ToFloat64(raw))
		}
	case reflect.Complex64, reflect.Complex128:
		field.SetComplex(coerce.ToComplex128(raw))
	case reflect.Interface:
		if raw != nil {
			field.Set(reflect.ValueOf(raw))
		}
	default:
		return errf("cannot coerce %T into %s", raw, ft)
	}
	return nil
}

// assignOtherArguments fills an OtherArguments catch-all slot, which must be a slice of *document.Value or of
// interface{} (the arguments' resolved Go values).
func (b *Binder) assignOtherArguments(field reflect.Value, rest []*document.Value) error {
	if field.Type().Elem() == reflect.TypeOf((*document.Value)(nil)) {
		field.Set(reflect.ValueOf(append([]*document.Value(nil), rest...)))
		return nil
	}
	out := reflect.MakeSlice(field.Type(), 0, len(rest))
	for _, v := range rest {
		elem := reflect.New(field.Type().Elem()).Elem()
		if err := b.assignValue(elem, v.ResolvedValue()); err != nil {
			return err
		}
		out = reflect.Append(out, elem)
	}
	field.Set(out)
	return nil
}

// assignOtherProperties fills an OtherProperties catch-all slot, a Go map from property name to either
// *document.Value or a coerced Go value, for each key in extra. The map does not keep the properties' source order.
func (b *Binder) assignOtherProperties(field reflect.Value, props document.Properties, extra []string) error {
	out := reflect.MakeMapWithSize(field.Type(), len(extra))
	valueElemIsDocValue := field.Type().Elem() == reflect.TypeOf((*document.Value)(nil))
	for _, key := range extra {
		v, _ := props.Get(key)
		if valueElemIsDocValue {
			out.SetMapIndex(reflect.ValueOf(key), reflect.ValueOf(v))
			continue
		}
		elem := reflect.New(field.Type().Elem()).Elem()
		if err := b.assignValue(elem, v.ResolvedValue()); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(key), elem)
	}
	field.Set(out)
	return nil
}
