package core

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Value is the closed set of things a parameter can hold:
// String, Int, Float, Bool, List and Map.
type Value interface {
	fmt.Stringer
	// Any returns the plain Go representation (string, int64, float64, bool,
	// []any or map[string]any).
	Any() any
	// queryText is the form used inside a URL query.
	queryText() string
}

type (
	String string
	Int    int64
	Float  float64
	Bool   bool
	List   []Value
	Map    map[string]Value
)

func (s String) String() string    { return string(s) }
func (s String) Any() any          { return string(s) }
func (s String) queryText() string { return string(s) }

func (i Int) String() string    { return strconv.FormatInt(int64(i), 10) }
func (i Int) Any() any          { return int64(i) }
func (i Int) queryText() string { return i.String() }

func (f Float) String() string    { return strconv.FormatFloat(float64(f), 'f', -1, 64) }
func (f Float) Any() any          { return float64(f) }
func (f Float) queryText() string { return f.String() }

func (b Bool) String() string    { return strconv.FormatBool(bool(b)) }
func (b Bool) Any() any          { return bool(b) }
func (b Bool) queryText() string { return b.String() }

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l List) Any() any {
	out := make([]any, len(l))
	for i, v := range l {
		out[i] = v.Any()
	}
	return out
}

// queryText joins list items with commas: ids=1,2,3
func (l List) queryText() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.queryText()
	}
	return strings.Join(parts, ",")
}

func (m Map) String() string {
	keys := m.keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + m[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (m Map) Any() any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.Any()
	}
	return out
}

// queryText renders a map that sits inside a List, where there is no key to
// hang bracket notation on. Top-level maps are expanded by encodeValue instead.
func (m Map) queryText() string {
	keys := m.keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ":" + m[k].queryText()
	}
	return strings.Join(parts, ",")
}

func (m Map) keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValueOf converts a Go value into a Value. Scalars, slices, arrays, string-keyed
// maps and pointers to any of those are supported; anything else is an error.
func ValueOf(v any) (Value, error) {
	// Nil pointers are rejected before any method, String included, is called on them.
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil, fmt.Errorf("nil %s is not a parameter value", rv.Type())
	}
	switch typed := v.(type) {
	case nil:
		return nil, fmt.Errorf("nil is not a parameter value")
	case Value:
		return typed, nil
	case string:
		return String(typed), nil
	case []byte:
		return String(typed), nil
	case bool:
		return Bool(typed), nil
	case int:
		return Int(typed), nil
	case int64:
		return Int(typed), nil
	case float64:
		return Float(typed), nil
	case fmt.Stringer:
		return String(typed.String()), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		return ValueOf(rv.Elem().Interface())
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("unsigned value %d overflows int64", u)
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		list := make(List, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			list[i] = item
		}
		return list, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map key type %s is not a string", rv.Type().Key())
		}
		out := make(Map, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			item, err := ValueOf(iter.Value().Interface())
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			out[key] = item
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported parameter value type %T", v)
}

// MustValueOf is like ValueOf but panics on unsupported input.
func MustValueOf(v any) Value {
	val, err := ValueOf(v)
	if err != nil {
		panic(err)
	}
	return val
}
