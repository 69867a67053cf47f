package core

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	version "github.com/hashicorp/go-version"
)

// testEndpoint is a fully configurable Endpoint used across the package tests.
type testEndpoint struct {
	method  Method
	baseURL string
	path    string
	headers Headers
	params  []Parameter
	body    Payload
}

func (e testEndpoint) Method() Method          { return e.method }
func (e testEndpoint) BaseURL() string         { return e.baseURL }
func (e testEndpoint) Path() string            { return e.path }
func (e testEndpoint) Headers() Headers        { return e.headers }
func (e testEndpoint) Parameters() []Parameter { return e.params }
func (e testEndpoint) Body() Payload           { return e.body }

// listUsers declares its parameters as fields, the way endpoint authors do.
type listUsers struct {
	Base
	Limit  Parameter
	Name   Parameter
	Expand Parameter
}

func (listUsers) Method() Method            { return GET }
func (listUsers) BaseURL() string           { return "https://api.example.com/v1" }
func (listUsers) Path() string              { return "/users" }
func (e listUsers) Parameters() []Parameter { return FieldParameters(e) }

// createUser is a structured body.
type createUser struct {
	PayloadMarker
	Name string `json:"name" msgpack:"name"`
	Age  int    `json:"age,omitempty" msgpack:"age,omitempty"`
}

// versionedEndpoint only exists from a given server version on.
type versionedEndpoint struct {
	testEndpoint
	from string
}

func (e versionedEndpoint) AvailableFrom() *version.Version {
	return version.Must(version.NewVersion(e.from))
}

// interceptedEndpoint records interceptor calls into calls.
type interceptedEndpoint struct {
	testEndpoint
	calls *[]string
}

func (e interceptedEndpoint) BeforeRequest(_ context.Context, r *http.Request, _ []byte) error {
	*e.calls = append(*e.calls, "endpoint-before")
	r.Header.Set("X-Intercepted", "yes")
	return nil
}

func (e interceptedEndpoint) AfterRequest(_ context.Context, response *Response) (*Response, error) {
	*e.calls = append(*e.calls, "endpoint-after")
	return response, nil
}

func expectQueryValue(t *testing.T, got string, key string, want string) {
	t.Helper()
	parsed, err := url.ParseQuery(got)
	if err != nil {
		t.Fatalf("failed to parse query: %v", err)
	}
	vals, ok := parsed[key]
	if !ok || len(vals) == 0 {
		t.Fatalf("key %q missing in query: %q", key, got)
	}
	if vals[0] != want {
		t.Fatalf("value for %q = %q, want %q (raw: %q)", key, vals[0], want, got)
	}
}

func expectPanic(t *testing.T, fn func()) any {
	t.Helper()
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		fn()
	}()
	if recovered == nil {
		t.Fatalf("expected panic, got none")
	}
	return recovered
}
