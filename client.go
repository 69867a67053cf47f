package endpoints

import (
	"github.com/vast-data/go-endpoints/core"
)

type (
	Endpoint           = core.Endpoint
	Base               = core.Base
	Method             = core.Method
	Headers            = core.Headers
	Kind               = core.Kind
	Parameter          = core.Parameter
	Params             = core.Params
	Value              = core.Value
	Payload            = core.Payload
	PayloadMarker      = core.PayloadMarker
	EmptyPayload       = core.EmptyPayload
	StringPayload      = core.StringPayload
	Config             = core.Config
	Session            = core.Session
	Response           = core.Response
	Record             = core.Record
	RecordSet          = core.RecordSet
	Renderable         = core.Renderable
	Versioned          = core.Versioned
	RequestInterceptor = core.RequestInterceptor
	ApiError           = core.ApiError
)

const (
	GET     = core.GET
	HEAD    = core.HEAD
	POST    = core.POST
	PUT     = core.PUT
	PATCH   = core.PATCH
	DELETE  = core.DELETE
	CONNECT = core.CONNECT
	OPTIONS = core.OPTIONS
	TRACE   = core.TRACE

	Query = core.Query
	Body  = core.Body
)

var ErrDescriptionNotParseable = core.ErrDescriptionNotParseable

func NewSession(config *Config) (*Session, error) {
	return core.NewSession(config)
}

func QueryParam(name string, value any) Parameter {
	return core.QueryParam(name, value)
}

func BodyParam(name string, value any) Parameter {
	return core.BodyParam(name, value)
}

// URLString returns the full URL of ep, query string included.
func URLString(ep Endpoint) string {
	return core.URLString(ep)
}

// Description returns the human-readable summary of ep.
func Description(ep Endpoint) string {
	return core.Description(ep)
}

// FieldParameters collects the Parameter fields of an endpoint struct in
// declaration order.
func FieldParameters(v any) []Parameter {
	return core.FieldParameters(v)
}
