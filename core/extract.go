package core

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/gorilla/schema"
)

var (
	parameterType = reflect.TypeOf(Parameter{})
	schemaEncoder = schema.NewEncoder()
)

// FieldParameters returns the Parameter-typed fields of the struct v in
// declaration order. Only direct exported fields are considered: embedded
// structs and nested values are skipped. It lets an endpoint implement
// Parameters without listing its fields by hand:
//
//	func (e ListUsers) Parameters() []core.Parameter { return core.FieldParameters(e) }
func FieldParameters(v any) []Parameter {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil
	}
	rt := rv.Type()
	var out []Parameter
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.Anonymous || !field.IsExported() || field.Type != parameterType {
			continue
		}
		out = append(out, rv.Field(i).Interface().(Parameter))
	}
	return out
}

// SchemaParameters turns a struct tagged with `schema:"name"` into parameters
// of the given kind. Fields holding several values become lists. The result
// is sorted by name.
//
//	type Filter struct {
//	    Name  string   `schema:"name,omitempty"`
//	    Tags  []string `schema:"tag"`
//	}
func SchemaParameters(v any, kind Kind) ([]Parameter, error) {
	values := map[string][]string{}
	if err := schemaEncoder.Encode(v, values); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Parameter, 0, len(names))
	for _, name := range names {
		var raw any
		switch vals := values[name]; len(vals) {
		case 0:
			continue
		case 1:
			raw = vals[0]
		default:
			raw = vals
		}
		p, err := NewParameter(name, kind, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
