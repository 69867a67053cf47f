package openapi_schema

import (
	"encoding/json"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/vast-data/go-endpoints/core"
)

// schemaType returns the first type of the given OpenAPI schema, or "any".
func schemaType(s *openapi3.Schema) string {
	if s == nil || s.Type == nil || len(*s.Type) == 0 {
		return "any"
	}
	return (*s.Type)[0]
}

// queryValue converts a parameter value into the form kin-openapi validates
// against the parameter schema. Scalars sent to a string parameter are
// compared in their rendered form since every query value is text on the wire.
func queryValue(v core.Value, s *openapi3.Schema) any {
	switch v.(type) {
	case core.List, core.Map:
		return jsonDocument(v.Any())
	}
	if schemaType(s) == openapi3.TypeString {
		return v.String()
	}
	return jsonDocument(v.Any())
}

// jsonDocument round-trips v through encoding/json so numbers become float64
// and structs become maps, the shapes VisitJSON expects.
func jsonDocument(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return v
	}
	return doc
}

// bodyDocument returns what ep sends as a JSON document. Raw string payloads
// have no document.
func bodyDocument(ep core.Endpoint) (any, bool) {
	payload := ep.Body()
	if core.HasBody(payload) {
		switch payload.(type) {
		case core.StringPayload, *core.StringPayload:
			return nil, false
		}
		return jsonDocument(payload), true
	}
	params := core.BodyParameters(ep)
	if len(params) == 0 {
		return nil, false
	}
	return jsonDocument(params.Any()), true
}

// jsonBodySchema returns the schema of the JSON request body of operation, if any.
func jsonBodySchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	media := operation.RequestBody.Value.Content.Get(core.ContentTypeJSON)
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}
