// Package adapter bridges Go's own type system to the value.Value
// model used by the compact and human codecs. It is deliberately
// separate from both codecs: canonicity validation needs the
// kind-directed API those packages expose directly, which a generic
// reflection-based serialization framework can't enforce (the same
// reason the original implementation's own serde-based API carries no
// support for canonic decoding). This package is the convenience layer
// on top, not a replacement for it.
package adapter

import (
	"fmt"
	"reflect"

	"github.com/synadia-labs/valuable-value-go/value"
)

// Marshaler is implemented by types that know how to convert
// themselves to a value.Value.
type Marshaler interface {
	MarshalVV() (value.Value, error)
}

// Unmarshaler is implemented by types that know how to populate
// themselves from a value.Value.
type Unmarshaler interface {
	UnmarshalVV(value.Value) error
}

// ToValue converts x to a value.Value. If x implements Marshaler, that
// is used directly; otherwise x is converted by reflection over its
// underlying kind.
func ToValue(x any) (value.Value, error) {
	if x == nil {
		return value.Nil(), nil
	}
	if m, ok := x.(Marshaler); ok {
		return m.MarshalVV()
	}
	return reflectToValue(reflect.ValueOf(x))
}

func reflectToValue(rv reflect.Value) (value.Value, error) {
	if m, ok := rv.Interface().(Marshaler); ok {
		return m.MarshalVV()
	}
	switch rv.Kind() {
	case reflect.Invalid:
		return value.Nil(), nil
	case reflect.Bool:
		return value.Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return value.Value{}, fmt.Errorf("adapter: uint value %d overflows int64", u)
		}
		return value.Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return value.Float(rv.Float()), nil
	case reflect.String:
		return stringToValue(rv.String()), nil
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return bytesToValue(rv.Bytes()), nil
		}
		elems := make([]value.Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			v, err := reflectToValue(rv.Index(i))
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = v
		}
		return value.Array(elems...), nil
	case reflect.Map:
		entries := make([]value.MapEntry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k, err := reflectToValue(iter.Key())
			if err != nil {
				return value.Value{}, err
			}
			v, err := reflectToValue(iter.Value())
			if err != nil {
				return value.Value{}, err
			}
			entries = append(entries, value.MapEntry{Key: k, Val: v})
		}
		return value.Map(entries...), nil
	case reflect.Struct:
		return structToValue(rv)
	case reflect.Ptr:
		if rv.IsNil() {
			return value.Nil(), nil
		}
		return reflectToValue(rv.Elem())
	case reflect.Interface:
		if rv.IsNil() {
			return value.Nil(), nil
		}
		return reflectToValue(rv.Elem())
	default:
		return value.Value{}, fmt.Errorf("adapter: cannot convert %s to a value", rv.Type())
	}
}

func stringToValue(s string) value.Value {
	return bytesToValue([]byte(s))
}

func bytesToValue(bs []byte) value.Value {
	elems := make([]value.Value, len(bs))
	for i, b := range bs {
		elems[i] = value.Int(int64(b))
	}
	return value.Array(elems...)
}

func structToValue(rv reflect.Value) (value.Value, error) {
	t := rv.Type()
	var entries []value.MapEntry
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		name, omitempty := fieldName(f)
		fv := rv.Field(i)
		if omitempty && fv.IsZero() {
			continue
		}
		v, err := reflectToValue(fv)
		if err != nil {
			return value.Value{}, fmt.Errorf("field %s: %w", f.Name, err)
		}
		entries = append(entries, value.MapEntry{Key: stringToValue(name), Val: v})
	}
	return value.Map(entries...), nil
}

func fieldName(f reflect.StructField) (name string, omitempty bool) {
	tag := f.Tag.Get("vv")
	if tag == "" {
		return f.Name, false
	}
	name = f.Name
	parts := splitComma(tag)
	if parts[0] != "" && parts[0] != "-" {
		name = parts[0]
	}
	for _, p := range parts[1:] {
		if p == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty
}

func splitComma(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
