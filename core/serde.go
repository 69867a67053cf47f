package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"sort"
	"strings"

	"github.com/bndr/gotabulate"
	"github.com/vmihailenco/msgpack/v5"
)

const customRawKey = "@raw" // used to store non-object values in Record

//  ######################################################
//              RAW RESPONSE
//  ######################################################

// Response is the raw result of sending an endpoint. The body is fully read;
// decoding is left to the caller.
type Response struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the media type of the response without parameters.
func (r *Response) ContentType() string {
	return mediaType(r.Header.Get(HeaderContentType))
}

// Decode unmarshals the body into v, using msgpack when the response says
// so and JSON otherwise.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return fmt.Errorf("%s %s: empty response body", r.Method, r.URL)
	}
	if isMsgpack(r.ContentType()) {
		return msgpack.Unmarshal(r.Body, v)
	}
	return json.Unmarshal(r.Body, v)
}

// Renderable decodes the body into a Record or a RecordSet.
// Empty bodies (e.g. 204 No Content) give an empty Record.
func (r *Response) Renderable() (Renderable, error) {
	trimmed := bytes.TrimSpace(r.Body)
	if r.StatusCode == http.StatusNoContent || len(trimmed) == 0 {
		return Record{}, nil
	}
	if isMsgpack(r.ContentType()) {
		var decoded any
		if err := msgpack.Unmarshal(r.Body, &decoded); err != nil {
			return nil, err
		}
		return toRenderable(decoded), nil
	}
	switch trimmed[0] {
	case '{', '[':
		var decoded any
		if err := json.Unmarshal(trimmed, &decoded); err != nil {
			return nil, err
		}
		return toRenderable(decoded), nil
	default:
		return Record{customRawKey: string(trimmed)}, nil
	}
}

func toRenderable(decoded any) Renderable {
	switch typed := decoded.(type) {
	case map[string]any:
		return Record(typed)
	case []any:
		set := make(RecordSet, len(typed))
		for i, item := range typed {
			if m, ok := item.(map[string]any); ok {
				set[i] = Record(m)
			} else {
				set[i] = Record{customRawKey: item}
			}
		}
		return set
	default:
		return Record{customRawKey: typed}
	}
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mt
}

func isMsgpack(contentType string) bool {
	return strings.EqualFold(contentType, ContentTypeMsgpack) ||
		strings.EqualFold(contentType, "application/x-msgpack")
}

//  ######################################################
//              RETURN TYPES
//  ######################################################

// Renderable is an interface implemented by types that can render themselves
// into a human-readable string format, typically for CLI display or logging.
type Renderable interface {
	PrettyTable() string
	PrettyJson(indent ...string) string
}

// Record represents a single generic data object as a key-value map.
type Record map[string]any

// RecordSet represents a list of Record objects.
type RecordSet []Record

// PrettyTable prints a single Record as a table
func (r Record) PrettyTable() string {
	if len(r) == 0 {
		return "<>"
	}
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys) // Sort to keep consistent order

	var rows [][]any
	for _, key := range keys {
		val := r[key]
		if val == nil {
			continue
		}
		switch val.(type) {
		case map[string]any, []any:
			compact, _ := json.Marshal(val)
			rows = append(rows, []any{key, string(compact)})
		default:
			rows = append(rows, []any{key, fmt.Sprintf("%v", val)})
		}
	}
	if len(rows) == 0 {
		return "<>"
	}
	t := gotabulate.Create(rows)
	t.SetHeaders([]string{"attr", "value"})
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(85)
	return t.Render("grid")
}

// PrettyJson prints the Record as JSON, optionally indented
func (r Record) PrettyJson(indent ...string) string {
	return prettyJson(r, indent...)
}

func (r Record) Empty() bool {
	return len(r) == 0
}

func (r Record) String() string {
	return r.PrettyTable()
}

// PrettyTable prints the full RecordSet by rendering each individual Record
func (rs RecordSet) PrettyTable() string {
	if len(rs) == 0 {
		return "[]"
	}
	var out strings.Builder
	out.WriteString("[\n")
	for i, record := range rs {
		out.WriteString(record.PrettyTable())
		if i < len(rs)-1 {
			out.WriteString("\n\n") // separate entries with a blank line
		}
	}
	out.WriteString("\n]")
	return out.String()
}

// PrettyJson prints the RecordSet as JSON, optionally indented
func (rs RecordSet) PrettyJson(indent ...string) string {
	return prettyJson(rs, indent...)
}

func (rs RecordSet) Empty() bool {
	return len(rs) == 0
}

func prettyJson(v any, indent ...string) string {
	var b []byte
	var err error
	if len(indent) > 0 {
		b, err = json.MarshalIndent(v, "", indent[0])
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Sprintf("failed to marshal JSON: %v", err)
	}
	return string(b)
}
