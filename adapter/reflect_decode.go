package adapter

import (
	"fmt"
	"reflect"

	"github.com/synadia-labs/valuable-value-go/value"
)

// FromValue populates *out from v. out must be a non-nil pointer. If
// *out implements Unmarshaler, that is used directly; otherwise *out
// is populated by reflection over its underlying kind.
func FromValue(v value.Value, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("adapter: FromValue requires a non-nil pointer, got %T", out)
	}
	if u, ok := out.(Unmarshaler); ok {
		return u.UnmarshalVV(v)
	}
	return reflectFromValue(v, rv.Elem())
}

func reflectFromValue(v value.Value, rv reflect.Value) error {
	if rv.CanAddr() {
		if u, ok := rv.Addr().Interface().(Unmarshaler); ok {
			return u.UnmarshalVV(v)
		}
	}
	if v.IsNil() {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	switch rv.Kind() {
	case reflect.Bool:
		if v.Kind() != value.KindBool {
			return typeMismatch("bool", v)
		}
		rv.SetBool(v.AsBool())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Kind() != value.KindInt {
			return typeMismatch("int", v)
		}
		if rv.OverflowInt(v.AsInt()) {
			return fmt.Errorf("adapter: int value %d overflows %s", v.AsInt(), rv.Type())
		}
		rv.SetInt(v.AsInt())
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Kind() != value.KindInt {
			return typeMismatch("int", v)
		}
		if v.AsInt() < 0 {
			return fmt.Errorf("adapter: negative int %d cannot fill %s", v.AsInt(), rv.Type())
		}
		u := uint64(v.AsInt())
		if rv.OverflowUint(u) {
			return fmt.Errorf("adapter: int value %d overflows %s", v.AsInt(), rv.Type())
		}
		rv.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		if v.Kind() != value.KindFloat {
			return typeMismatch("float", v)
		}
		rv.SetFloat(v.AsFloat())
		return nil
	case reflect.String:
		bs, err := intArrayToBytes(v)
		if err != nil {
			return err
		}
		rv.SetString(string(bs))
		return nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			bs, err := intArrayToBytes(v)
			if err != nil {
				return err
			}
			rv.SetBytes(bs)
			return nil
		}
		if v.Kind() != value.KindArray {
			return typeMismatch("array", v)
		}
		elems := v.Elems()
		out := reflect.MakeSlice(rv.Type(), len(elems), len(elems))
		for i, e := range elems {
			if err := reflectFromValue(e, out.Index(i)); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		rv.Set(out)
		return nil
	case reflect.Map:
		if v.Kind() != value.KindMap {
			return typeMismatch("map", v)
		}
		entries := v.Entries()
		out := reflect.MakeMapWithSize(rv.Type(), len(entries))
		for _, e := range entries {
			k := reflect.New(rv.Type().Key()).Elem()
			if err := reflectFromValue(e.Key, k); err != nil {
				return fmt.Errorf("map key: %w", err)
			}
			val := reflect.New(rv.Type().Elem()).Elem()
			if err := reflectFromValue(e.Val, val); err != nil {
				return fmt.Errorf("map value: %w", err)
			}
			out.SetMapIndex(k, val)
		}
		rv.Set(out)
		return nil
	case reflect.Struct:
		if v.Kind() != value.KindMap {
			return typeMismatch("map", v)
		}
		return fillStruct(v, rv)
	case reflect.Ptr:
		elem := reflect.New(rv.Type().Elem())
		if err := reflectFromValue(v, elem.Elem()); err != nil {
			return err
		}
		rv.Set(elem)
		return nil
	default:
		return fmt.Errorf("adapter: cannot fill a %s from a value", rv.Type())
	}
}

func fillStruct(v value.Value, rv reflect.Value) error {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name, _ := fieldName(f)
		entry, ok := v.Get(stringToValue(name))
		if !ok {
			continue
		}
		if err := reflectFromValue(entry, rv.Field(i)); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return nil
}

func intArrayToBytes(v value.Value) ([]byte, error) {
	if v.Kind() != value.KindArray {
		return nil, typeMismatch("array of bytes", v)
	}
	elems := v.Elems()
	out := make([]byte, len(elems))
	for i, e := range elems {
		if e.Kind() != value.KindInt || e.AsInt() < 0 || e.AsInt() > 255 {
			return nil, fmt.Errorf("adapter: element %d is not a byte-range int", i)
		}
		out[i] = byte(e.AsInt())
	}
	return out, nil
}

func typeMismatch(want string, v value.Value) error {
	return fmt.Errorf("adapter: expected %s, got %s", want, v.Kind())
}
