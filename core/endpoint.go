package core

import (
	urlpkg "net/url"
	"strings"
)

// Endpoint declares the fixed shape of one API call. Implementations are
// plain values; nothing here mutates them, so they are safe to share.
//
// Embed Base to get the optional members (Headers, Body) for free:
//
//	type ListUsers struct {
//	    core.Base
//	    Limit core.Parameter
//	}
//
//	func (ListUsers) Method() core.Method { return core.GET }
//	func (ListUsers) BaseURL() string     { return "https://api.example.com" }
//	func (ListUsers) Path() string        { return "/users" }
//	func (e ListUsers) Parameters() []core.Parameter {
//	    return []core.Parameter{e.Limit}
//	}
type Endpoint interface {
	Method() Method
	BaseURL() string
	// Path is appended to BaseURL. Leading separators are ignored.
	Path() string
	Headers() Headers
	// Parameters lists every declared parameter, query and body alike, in
	// declaration order.
	Parameters() []Parameter
	Body() Payload
}

// Base supplies default Headers and Body for Endpoint implementations.
type Base struct{}

func (Base) Headers() Headers { return nil }
func (Base) Body() Payload    { return nil }

// QueryParameters collects the query-kind parameters of ep by name, in
// declaration order. It returns nil when there are none.
//
// Parameter names must be unique per kind: a duplicate is a programming error
// in the endpoint declaration and panics with *DuplicateParameterError.
func QueryParameters(ep Endpoint) Params {
	return collectParameters(ep, Query)
}

// BodyParameters is the body-kind counterpart of QueryParameters.
func BodyParameters(ep Endpoint) Params {
	return collectParameters(ep, Body)
}

func collectParameters(ep Endpoint, kind Kind) Params {
	var out Params
	for _, p := range ep.Parameters() {
		if p.IsZero() || p.Kind() != kind {
			continue
		}
		if out == nil {
			out = Params{}
		}
		if _, dup := out[p.Name()]; dup {
			panic(&DuplicateParameterError{Name: p.Name(), Kind: kind})
		}
		out[p.Name()] = p.Value()
	}
	return out
}

// QueryString returns the encoded query string of ep including the leading "?",
// or ("", false) when ep declares no query parameters.
func QueryString(ep Endpoint) (string, bool) {
	return EncodeParams(QueryParameters(ep), GET)
}

// URLString assembles baseURL, path and query into a string. Leading
// separators are stripped from the path and doubled separators are collapsed
// between the scheme and the query. The result is not guaranteed to be a
// valid URL; use URL for that.
func URLString(ep Endpoint) string {
	path := strings.TrimLeft(ep.Path(), "/")
	query, _ := QueryString(ep)
	return collapseSeparators(ep.BaseURL() + "/" + path + query)
}

func collapseSeparators(s string) string {
	end := strings.IndexByte(s, '?')
	if end < 0 {
		end = len(s)
	}
	start := 0
	if i := strings.Index(s[:end], "://"); i >= 0 {
		start = i + len("://")
	}
	middle := s[start:end]
	for strings.Contains(middle, "//") {
		middle = strings.ReplaceAll(middle, "//", "/")
	}
	return s[:start] + middle + s[end:]
}

// URL returns the typed URL of ep, or nil when BaseURL is not an absolute
// URL (scheme and host are required).
func URL(ep Endpoint) *urlpkg.URL {
	base, err := urlpkg.Parse(ep.BaseURL())
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil
	}
	u := base.JoinPath(strings.TrimLeft(ep.Path(), "/"))
	if query, ok := QueryString(ep); ok {
		query = strings.TrimPrefix(query, "?")
		if u.RawQuery != "" {
			u.RawQuery += "&" + query
		} else {
			u.RawQuery = query
		}
	}
	return u
}

// Description is a one-way, human readable rendering of ep.
// GET endpoints render as "GET <url>"; every other method adds a
// "Parameters:" and a "Body:" line.
func Description(ep Endpoint) string {
	method := Method(ep.Method().String())
	line := method.String() + " " + URLString(ep)
	if method == GET {
		return line
	}
	body := describePayload(ep.Body())
	if !HasBody(ep.Body()) {
		if params := BodyParameters(ep); len(params) > 0 {
			body = params.String()
		}
	}
	return line + "\nParameters: " + QueryParameters(ep).String() + "\nBody: " + body
}

// ParseEndpoint exists for symmetry with Description and always fails:
// descriptions cannot be turned back into endpoints.
func ParseEndpoint(description string) (Endpoint, error) {
	return nil, ErrDescriptionNotParseable
}
