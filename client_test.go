package endpoints_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	endpoints "github.com/vast-data/go-endpoints"
)

type getPet struct {
	endpoints.Base
	base string
	id   int
}

func (getPet) Method() endpoints.Method { return endpoints.GET }
func (p getPet) BaseURL() string        { return p.base }
func (p getPet) Path() string           { return fmt.Sprintf("/pets/%d", p.id) }
func (getPet) Parameters() []endpoints.Parameter {
	return []endpoints.Parameter{endpoints.QueryParam("fields", []string{"name", "age"})}
}

func TestRootPackage(t *testing.T) {
	ep := getPet{base: "https://pets.example.com/api", id: 3}

	if got := endpoints.URLString(ep); got != "https://pets.example.com/api/pets/3?fields=name%2Cage" {
		t.Errorf("URLString() = %q", got)
	}
	if got := endpoints.Description(ep); got != "GET "+endpoints.URLString(ep) {
		t.Errorf("Description() = %q", got)
	}
}

func TestRootPackage_Session(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pets/3" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"name":"rex","age":4}`))
	}))
	defer server.Close()

	session, err := endpoints.NewSession(nil)
	if err != nil {
		t.Fatal(err)
	}

	response, err := session.Do(context.Background(), getPet{base: server.URL, id: 3})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	var pet struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	if err := response.Decode(&pet); err != nil || pet.Name != "rex" || pet.Age != 4 {
		t.Errorf("Decode() = %v, %+v", err, pet)
	}

	_, err = session.Do(context.Background(), getPet{base: server.URL, id: 4})
	var apiErr *endpoints.ApiError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 ApiError, got %v", err)
	}
}
