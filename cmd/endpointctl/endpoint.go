package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	version "github.com/hashicorp/go-version"

	"github.com/vast-data/go-endpoints/core"
)

// EndpointFlags declare an endpoint on the command line.
type EndpointFlags struct {
	Method        string            `help:"HTTP method." default:"GET" short:"X"`
	BaseURL       string            `help:"Base URL of the API." name:"base-url" env:"ENDPOINTS_BASE_URL" required:""`
	Path          string            `help:"Endpoint path, relative to the base URL." short:"p"`
	Query         map[string]string `help:"Query parameter as name=value. Repeatable." short:"q"`
	BodyParam     map[string]string `help:"Body parameter as name=value. Repeatable." name:"body-param" short:"b"`
	Header        map[string]string `help:"Request header as name=value. Repeatable." short:"H"`
	Body          string            `help:"Raw request body." short:"d"`
	AvailableFrom string            `help:"Lowest server version providing the endpoint." name:"available-from"`
}

// flagEndpoint is the endpoint described by EndpointFlags.
type flagEndpoint struct {
	method        core.Method
	baseURL       string
	path          string
	headers       core.Headers
	params        []core.Parameter
	body          core.Payload
	availableFrom *version.Version
}

func (e flagEndpoint) Method() core.Method             { return e.method }
func (e flagEndpoint) BaseURL() string                 { return e.baseURL }
func (e flagEndpoint) Path() string                    { return e.path }
func (e flagEndpoint) Headers() core.Headers           { return e.headers }
func (e flagEndpoint) Parameters() []core.Parameter    { return e.params }
func (e flagEndpoint) Body() core.Payload              { return e.body }
func (e flagEndpoint) AvailableFrom() *version.Version { return e.availableFrom }

func (f *EndpointFlags) endpoint() (flagEndpoint, error) {
	ep := flagEndpoint{
		method:  core.Method(strings.ToUpper(f.Method)),
		baseURL: f.BaseURL,
		path:    f.Path,
	}
	if len(f.Header) > 0 {
		ep.headers = core.Headers(f.Header)
	}
	for _, group := range []struct {
		values map[string]string
		kind   core.Kind
	}{{f.Query, core.Query}, {f.BodyParam, core.Body}} {
		for _, name := range sortedKeys(group.values) {
			param, err := core.NewParameter(name, group.kind, parseValue(group.values[name]))
			if err != nil {
				return ep, err
			}
			ep.params = append(ep.params, param)
		}
	}
	if f.Body != "" {
		ep.body = core.StringPayload(f.Body)
	}
	if f.AvailableFrom != "" {
		ver, err := version.NewVersion(f.AvailableFrom)
		if err != nil {
			return ep, fmt.Errorf("invalid --available-from %q: %w", f.AvailableFrom, err)
		}
		ep.availableFrom = ver
	}
	return ep, core.Validate(ep)
}

// parseValue types a flag value: integers, floats and true/false keep their
// type, JSON arrays and objects are decoded, anything else stays a string.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && strings.ContainsAny(s, "0123456789") {
		return f
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err == nil {
			if _, err := core.ValueOf(decoded); err == nil {
				return decoded
			}
		}
	}
	return s
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
