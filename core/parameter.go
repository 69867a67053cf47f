package core

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or a nil function.
	_ = v.RegisterValidation("http_method", func(fl validator.FieldLevel) bool {
		return Method(fl.Field().String()).Known()
	})
	return v
}

// Kind tells where a parameter travels: the URL query or the request body.
type Kind int

const (
	Query Kind = iota
	Body
)

func (k Kind) String() string {
	switch k {
	case Query:
		return "query"
	case Body:
		return "body"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Parameter is a single named request parameter declared by an endpoint.
// It is immutable once built; use QueryParam, BodyParam or NewParameter.
type Parameter struct {
	name  string
	kind  Kind
	value Value
}

type parameterFields struct {
	Name string `validate:"required"`
	Kind Kind   `validate:"oneof=0 1"`
}

// NewParameter builds a Parameter, converting v with ValueOf.
// The name must be non-empty.
func NewParameter(name string, kind Kind, v any) (Parameter, error) {
	if err := validate.Struct(parameterFields{Name: name, Kind: kind}); err != nil {
		return Parameter{}, &ValidationError{Subject: fmt.Sprintf("parameter %q", name), Err: err}
	}
	value, err := ValueOf(v)
	if err != nil {
		return Parameter{}, fmt.Errorf("parameter %q: %w", name, err)
	}
	return Parameter{name: name, kind: kind, value: value}, nil
}

// QueryParam declares a query-string parameter. It panics on an empty name or an
// unsupported value, so it is meant for field initializers with literal input.
func QueryParam(name string, v any) Parameter {
	return mustParameter(name, Query, v)
}

// BodyParam declares a body-destined parameter. Panics like QueryParam.
func BodyParam(name string, v any) Parameter {
	return mustParameter(name, Body, v)
}

func mustParameter(name string, kind Kind, v any) Parameter {
	p, err := NewParameter(name, kind, v)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Parameter) Name() string { return p.name }
func (p Parameter) Kind() Kind   { return p.kind }
func (p Parameter) Value() Value { return p.value }

// Any returns the parameter value as a plain Go value.
func (p Parameter) Any() any {
	if p.value == nil {
		return nil
	}
	return p.value.Any()
}

// IsZero reports whether p was never initialized.
func (p Parameter) IsZero() bool {
	return p.name == "" && p.value == nil
}

func (p Parameter) String() string {
	if p.value == nil {
		return fmt.Sprintf("%s(%s)", p.name, p.kind)
	}
	return fmt.Sprintf("%s(%s)=%s", p.name, p.kind, p.value)
}
