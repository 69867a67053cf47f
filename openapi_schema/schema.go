package openapi_schema

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/vast-data/go-endpoints/core"
)

// Schema is a loaded OpenAPI v3 document that endpoints can be checked against.
type Schema struct {
	doc *openapi3.T
}

// Load parses and validates an OpenAPI v3 document in JSON or YAML form.
func Load(data []byte) (*Schema, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("parse OpenAPI document: %w", err)
	}
	return newSchema(loader, doc)
}

// LoadFile reads an OpenAPI document from disk. Archives ending in .tar.gz or
// .tgz are unpacked with LoadArchive.
func LoadFile(path string) (*Schema, error) {
	if strings.HasSuffix(path, ".tar.gz") || strings.HasSuffix(path, ".tgz") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return LoadArchive(data)
	}
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load OpenAPI document %s: %w", path, err)
	}
	return newSchema(loader, doc)
}

// LoadArchive loads the first .json, .yaml or .yml document found in a
// gzip-compressed tar archive.
func LoadArchive(data []byte) (*Schema, error) {
	gzr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no OpenAPI document found in archive")
		}
		if err != nil {
			return nil, fmt.Errorf("tar read error: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || !isDocumentName(hdr.Name) {
			continue
		}
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, tr); err != nil {
			return nil, fmt.Errorf("copy %s from tar: %w", hdr.Name, err)
		}
		return Load(buf.Bytes())
	}
}

func newSchema(loader *openapi3.Loader, doc *openapi3.T) (*Schema, error) {
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return &Schema{doc: doc}, nil
}

// Paths returns the templated paths declared by the document, sorted.
func (s *Schema) Paths() []string {
	var paths []string
	for path := range s.doc.Paths.Map() {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// PathItem finds the declared path matching ep.Path(). Literal segments win
// over templated ones, so "/pets/mine" prefers "/pets/mine" to "/pets/{id}".
// A trailing slash on either side is ignored.
func (s *Schema) PathItem(ep core.Endpoint) (string, *openapi3.PathItem, error) {
	segments := splitPath(ep.Path())

	var (
		bestPath      string
		bestItem      *openapi3.PathItem
		bestTemplates = -1
	)
	for _, path := range s.Paths() {
		templates, ok := matchSegments(splitPath(path), segments)
		if !ok {
			continue
		}
		if bestTemplates < 0 || templates < bestTemplates {
			bestPath, bestItem, bestTemplates = path, s.doc.Paths.Value(path), templates
		}
	}
	if bestItem == nil {
		return "", nil, fmt.Errorf("path %q not found in OpenAPI schema", "/"+strings.Join(segments, "/"))
	}
	return bestPath, bestItem, nil
}

// Operation returns the operation ep invokes.
func (s *Schema) Operation(ep core.Endpoint) (*openapi3.Operation, error) {
	path, item, err := s.PathItem(ep)
	if err != nil {
		return nil, err
	}
	method := ep.Method().String()
	operation := item.GetOperation(method)
	if operation == nil {
		return nil, fmt.Errorf("method %s not found for path %s (available methods: %v)",
			method, path, availableMethods(item))
	}
	return operation, nil
}

// Check compares the declared parameters and body of ep with the operation it
// invokes. All problems found are reported in one *SchemaMismatchError.
func (s *Schema) Check(ep core.Endpoint) error {
	mismatch := &SchemaMismatchError{Endpoint: ep.Method().String() + " " + ep.Path()}

	// Parameter extraction panics on duplicate names, so the declaration is
	// validated first.
	if err := core.Validate(ep); err != nil {
		mismatch.Problems = append(mismatch.Problems, err.Error())
		return mismatch
	}

	path, item, err := s.PathItem(ep)
	if err != nil {
		mismatch.Problems = append(mismatch.Problems, err.Error())
		return mismatch
	}
	operation := item.GetOperation(ep.Method().String())
	if operation == nil {
		mismatch.Problems = append(mismatch.Problems, fmt.Sprintf(
			"method %s not found for path %s (available methods: %v)",
			ep.Method(), path, availableMethods(item)))
		return mismatch
	}

	declared := queryParameters(item, operation)
	query := core.QueryParameters(ep)

	for _, name := range query.Keys() {
		param, ok := declared[name]
		if !ok {
			mismatch.Problems = append(mismatch.Problems, fmt.Sprintf("query parameter %q is not declared", name))
			continue
		}
		if param.Schema == nil || param.Schema.Value == nil {
			continue
		}
		if err := param.Schema.Value.VisitJSON(queryValue(query[name], param.Schema.Value), openapi3.MultiErrors()); err != nil {
			mismatch.Problems = append(mismatch.Problems, fmt.Sprintf(
				"query parameter %q does not match its %s schema: %v", name, schemaType(param.Schema.Value), err))
		}
	}

	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := query[name]; !ok && declared[name].Required {
			mismatch.Problems = append(mismatch.Problems, fmt.Sprintf("required query parameter %q is missing", name))
		}
	}

	sendsBody := core.HasBody(ep.Body()) || len(core.BodyParameters(ep)) > 0
	if sendsBody && operation.RequestBody == nil {
		mismatch.Problems = append(mismatch.Problems, "operation does not accept a request body")
	}
	if body := jsonBodySchema(operation); sendsBody && body != nil {
		if doc, ok := bodyDocument(ep); ok {
			if err := body.VisitJSON(doc, openapi3.MultiErrors()); err != nil {
				mismatch.Problems = append(mismatch.Problems, fmt.Sprintf("request body does not match its schema: %v", err))
			}
		}
	}
	if !sendsBody && operation.RequestBody != nil && operation.RequestBody.Value != nil && operation.RequestBody.Value.Required {
		mismatch.Problems = append(mismatch.Problems, "operation requires a request body")
	}

	if len(mismatch.Problems) == 0 {
		return nil
	}
	return mismatch
}

// queryParameters merges path level and operation level query parameters.
// Operation level declarations override path level ones of the same name.
func queryParameters(item *openapi3.PathItem, operation *openapi3.Operation) map[string]*openapi3.Parameter {
	declared := make(map[string]*openapi3.Parameter)
	for _, params := range []openapi3.Parameters{item.Parameters, operation.Parameters} {
		for _, ref := range params {
			if ref == nil || ref.Value == nil || ref.Value.In != openapi3.ParameterInQuery {
				continue
			}
			declared[ref.Value.Name] = ref.Value
		}
	}
	return declared
}

func availableMethods(item *openapi3.PathItem) []string {
	var methods []string
	for method := range item.Operations() {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}

func splitPath(path string) []string {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// matchSegments reports whether concrete fits pattern and how many templated
// segments were needed to make it fit.
func matchSegments(pattern, concrete []string) (int, bool) {
	if len(pattern) != len(concrete) {
		return 0, false
	}
	templates := 0
	for i, segment := range pattern {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			if concrete[i] == "" {
				return 0, false
			}
			templates++
			continue
		}
		if segment != concrete[i] {
			return 0, false
		}
	}
	return templates, true
}

func isDocumentName(name string) bool {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
