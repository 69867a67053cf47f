package core

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestEncodeParams(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		method Method
		want   string
		wantOk bool
	}{
		{name: "nil params", params: nil, method: GET, want: "", wantOk: false},
		{name: "empty params", params: Params{}, method: GET, want: "", wantOk: false},
		{name: "get gets question mark", params: Params{"a": Int(1)}, method: GET, want: "?a=1", wantOk: true},
		{name: "delete gets question mark", params: Params{"a": Int(1)}, method: DELETE, want: "?a=1", wantOk: true},
		{name: "head gets question mark", params: Params{"a": Int(1)}, method: HEAD, want: "?a=1", wantOk: true},
		{name: "post is bare form", params: Params{"a": Int(1)}, method: POST, want: "a=1", wantOk: true},
		{name: "lower-case method", params: Params{"a": Int(1)}, method: "get", want: "?a=1", wantOk: true},
		{name: "keys sorted", params: Params{"b": String("x"), "a": Int(1)}, method: GET, want: "?a=1&b=x", wantOk: true},
		{name: "spaces escaped", params: Params{"q": String("hello world")}, method: GET, want: "?q=hello+world", wantOk: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EncodeParams(tt.params, tt.method)
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("EncodeParams() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestParams_ToQuery_Lists(t *testing.T) {
	q := Params{"ids": MustValueOf([]int{1, 2, 3})}.ToQuery()
	expectQueryValue(t, q, "ids", "1,2,3")

	q = Params{"f": MustValueOf([]float64{1.5, 2})}.ToQuery()
	expectQueryValue(t, q, "f", "1.5,2")

	q = Params{"names": MustValueOf([2]string{"alice", "bob"})}.ToQuery()
	expectQueryValue(t, q, "names", "alice,bob")

	q = Params{"flags": MustValueOf([]bool{true, false, true})}.ToQuery()
	expectQueryValue(t, q, "flags", "true,false,true")

	q = Params{"mix": MustValueOf([]any{"x", 7, 2.5, false})}.ToQuery()
	expectQueryValue(t, q, "mix", "x,7,2.5,false")

	q = Params{"empty": List{}}.ToQuery()
	expectQueryValue(t, q, "empty", "")
}

func TestParams_ToQuery_Maps(t *testing.T) {
	q := Params{
		"filter": Map{"name": String("x"), "age": Int(3), "tags": List{String("a"), String("b")}},
	}.ToQuery()
	expectQueryValue(t, q, "filter[name]", "x")
	expectQueryValue(t, q, "filter[age]", "3")
	expectQueryValue(t, q, "filter[tags]", "a,b")

	nested := Params{"f": Map{"owner": Map{"id": Int(7)}}}.ToQuery()
	expectQueryValue(t, nested, "f[owner][id]", "7")
}

func TestParams_ToQuery_MapsInsideLists(t *testing.T) {
	// A list item has no key of its own, so a map inside a list is flattened
	// into k:v pairs instead of bracket keys.
	q := Params{"sort": List{Map{"field": String("name"), "dir": String("asc")}, Map{"field": String("age")}}}.ToQuery()
	expectQueryValue(t, q, "sort", "dir:asc,field:name,field:age")
	if strings.Contains(q, "%5B") {
		t.Errorf("ToQuery() = %q, want no bracket keys for maps inside lists", q)
	}
}

func TestParams_ToQuery_Scalars(t *testing.T) {
	q := Params{"on": Bool(true), "off": Bool(false), "ratio": Float(0.25), "n": Int(-4)}.ToQuery()
	expectQueryValue(t, q, "on", "true")
	expectQueryValue(t, q, "off", "false")
	expectQueryValue(t, q, "ratio", "0.25")
	expectQueryValue(t, q, "n", "-4")

	parsed, err := url.ParseQuery(q)
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed) != 4 {
		t.Errorf("expected 4 keys, got %v", parsed)
	}
}

func TestParams_String(t *testing.T) {
	tests := []struct {
		params Params
		want   string
	}{
		{params: nil, want: "nil"},
		{params: Params{}, want: "[]"},
		{params: Params{"b": String("x"), "a": Int(1)}, want: "[a: 1, b: x]"},
		{params: Params{"l": List{Int(1), String("y")}}, want: "[l: [1, y]]"},
		{params: Params{"m": Map{"k": Bool(true)}}, want: "[m: {k: true}]"},
	}
	for _, tt := range tests {
		if got := tt.params.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParams_ToBody(t *testing.T) {
	reader, err := Params{"a": Int(1), "b": String("x"), "l": List{Int(2)}}.ToBody()
	if err != nil {
		t.Fatalf("ToBody() error = %v", err)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("body is not JSON: %v (%s)", err, data)
	}
	if decoded["a"] != float64(1) || decoded["b"] != "x" {
		t.Errorf("unexpected body: %s", data)
	}
	if l, ok := decoded["l"].([]any); !ok || len(l) != 1 {
		t.Errorf("unexpected list in body: %s", data)
	}
}

func TestParams_ToMsgpack(t *testing.T) {
	data, err := Params{"a": Int(1), "b": String("x")}.ToMsgpack()
	if err != nil {
		t.Fatalf("ToMsgpack() error = %v", err)
	}
	var decoded map[string]any
	if err := msgpack.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("msgpack decode: %v", err)
	}
	if fmt.Sprint(decoded["a"]) != "1" || decoded["b"] != "x" {
		t.Errorf("unexpected decoded params: %v", decoded)
	}
}

func TestParams_PrettyTable(t *testing.T) {
	if got := (Params{}).PrettyTable(); got != "<>" {
		t.Errorf("empty PrettyTable() = %q", got)
	}
	table := Params{"limit": Int(10), "name": String("bob")}.PrettyTable()
	for _, want := range []string{"name", "value", "limit", "10", "bob"} {
		if !strings.Contains(table, want) {
			t.Errorf("PrettyTable() missing %q:\n%s", want, table)
		}
	}
}

func TestParams_Keys(t *testing.T) {
	keys := Params{"c": Int(1), "a": Int(2), "b": Int(3)}.Keys()
	if strings.Join(keys, ",") != "a,b,c" {
		t.Errorf("Keys() = %v", keys)
	}
}
