package core

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Payload marks a type as usable as a request body. The interface is sealed to
// this package, but any type can opt in by embedding PayloadMarker:
//
//	type CreateUser struct {
//	    core.PayloadMarker
//	    Name string `json:"name"`
//	}
type Payload interface {
	httpPayload()
}

// PayloadMarker is embedded by user-defined body types.
type PayloadMarker struct{}

func (PayloadMarker) httpPayload() {}

// EmptyPayload carries no data.
type EmptyPayload struct{}

func (EmptyPayload) httpPayload() {}

func (EmptyPayload) String() string { return "<empty>" }

// StringPayload sends the wrapped string as-is.
type StringPayload string

func (StringPayload) httpPayload() {}

func (s StringPayload) String() string { return string(s) }

// HasBody reports whether p carries something to send. A nil payload, a nil
// pointer and EmptyPayload all mean "no body".
func HasBody(p Payload) bool {
	switch p.(type) {
	case nil, EmptyPayload, *EmptyPayload:
		return false
	}
	rv := reflect.ValueOf(p)
	return rv.Kind() != reflect.Ptr || !rv.IsNil()
}

// describePayload renders a payload for Description output.
func describePayload(p Payload) string {
	if !HasBody(p) {
		return "nil"
	}
	if s, ok := p.(fmt.Stringer); ok {
		return s.String()
	}
	if b, err := json.Marshal(p); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%+v", p)
}
