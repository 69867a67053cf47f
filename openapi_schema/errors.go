package openapi_schema

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaMismatchError lists every way an endpoint disagrees with the
// operation it invokes.
type SchemaMismatchError struct {
	Endpoint string
	Problems []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("endpoint %s does not match the OpenAPI schema:\n  - %s",
		e.Endpoint, strings.Join(e.Problems, "\n  - "))
}

func IsSchemaMismatchErr(err error) bool {
	var mErr *SchemaMismatchError
	return errors.As(err, &mErr)
}
