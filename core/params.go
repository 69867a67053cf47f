package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	urlpkg "net/url"
	"sort"
	"strings"

	"github.com/bndr/gotabulate"
	"github.com/vmihailenco/msgpack/v5"
)

// Params maps parameter names to values. It is what an endpoint's declared
// parameters collapse into before being encoded for the wire.
type Params map[string]Value

// EncodeParams encodes params for the given method. An empty or nil mapping
// yields ("", false). Methods that carry parameters in the URL (GET, HEAD,
// DELETE) get a leading "?"; other methods get the bare form encoding.
//
// Keys are sorted. Lists are comma-joined under one key, nested maps use
// bracket notation (filter[name]=x), bools render as true/false.
func EncodeParams(params Params, method Method) (string, bool) {
	if len(params) == 0 {
		return "", false
	}
	encoded := params.ToQuery()
	if method.carriesQuery() {
		return "?" + encoded, true
	}
	return encoded, true
}

// ToQuery serializes the Params into a URL-encoded query string without the
// leading "?".
func (p Params) ToQuery() string {
	values := urlpkg.Values{}
	for k, v := range p {
		encodeValue(values, k, v)
	}
	return values.Encode()
}

func encodeValue(values urlpkg.Values, key string, v Value) {
	switch typed := v.(type) {
	case nil:
		values.Set(key, "")
	case Map:
		for _, sub := range typed.keys() {
			encodeValue(values, key+"["+sub+"]", typed[sub])
		}
	default:
		values.Set(key, v.queryText())
	}
}

// ToBody serializes the Params into a JSON-encoded io.Reader,
// suitable for use as the body of an HTTP POST, PUT, or PATCH request.
func (p Params) ToBody() (io.Reader, error) {
	buffer, err := json.Marshal(p.Any())
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(buffer), nil
}

// ToMsgpack serializes the Params as a msgpack map.
func (p Params) ToMsgpack() ([]byte, error) {
	return msgpack.Marshal(p.Any())
}

// Any converts the Params into plain Go values.
func (p Params) Any() map[string]any {
	if p == nil {
		return nil
	}
	out := make(map[string]any, len(p))
	for k, v := range p {
		if v == nil {
			out[k] = nil
			continue
		}
		out[k] = v.Any()
	}
	return out
}

// Keys returns parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the Params deterministically, e.g. [a: 1, b: x].
// A nil mapping renders as "nil".
func (p Params) String() string {
	if p == nil {
		return "nil"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, k := range p.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		if v := p[k]; v != nil {
			sb.WriteString(v.String())
		} else {
			sb.WriteString("nil")
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// PrettyTable renders the Params as a two column grid.
func (p Params) PrettyTable() string {
	if len(p) == 0 {
		return "<>"
	}
	rows := make([][]any, 0, len(p))
	for _, k := range p.Keys() {
		rows = append(rows, []any{k, fmt.Sprintf("%v", p[k])})
	}
	t := gotabulate.Create(rows)
	t.SetHeaders([]string{"name", "value"})
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(85)
	return t.Render("grid")
}
