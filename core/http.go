package core

import (
	"net/http"
	"sort"
	"strings"
)

// Method is an HTTP request method. Values are kept upper-case.
type Method string

const (
	GET     Method = http.MethodGet
	POST    Method = http.MethodPost
	PUT     Method = http.MethodPut
	PATCH   Method = http.MethodPatch
	DELETE  Method = http.MethodDelete
	HEAD    Method = http.MethodHead
	OPTIONS Method = http.MethodOptions
	CONNECT Method = http.MethodConnect
	TRACE   Method = http.MethodTrace
)

var knownMethods = []Method{GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS, CONNECT, TRACE}

// String returns the upper-cased method name as it goes on the wire.
func (m Method) String() string {
	return strings.ToUpper(string(m))
}

// Known reports whether m is one of the standard HTTP methods (case-insensitive).
func (m Method) Known() bool {
	upper := Method(m.String())
	for _, k := range knownMethods {
		if k == upper {
			return true
		}
	}
	return false
}

// carriesQuery reports whether parameters for this method belong in the URL
// rather than in an encoded body.
func (m Method) carriesQuery() bool {
	switch Method(m.String()) {
	case GET, HEAD, DELETE:
		return true
	}
	return false
}

// Headers is a flat header-name to value mapping declared by an endpoint.
type Headers map[string]string

// Get looks up a header ignoring case.
func (h Headers) Get(name string) string {
	if v, ok := h[name]; ok {
		return v
	}
	canonical := http.CanonicalHeaderKey(name)
	for k, v := range h {
		if http.CanonicalHeaderKey(k) == canonical {
			return v
		}
	}
	return ""
}

// Clone returns a shallow copy; nil stays nil.
func (h Headers) Clone() Headers {
	if h == nil {
		return nil
	}
	out := make(Headers, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// ToHTTP converts the mapping into a canonicalized http.Header.
func (h Headers) ToHTTP() http.Header {
	out := make(http.Header, len(h))
	for _, k := range h.keys() {
		out.Set(k, h[k])
	}
	return out
}

func (h Headers) keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
