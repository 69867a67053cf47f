package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrDescriptionNotParseable is returned by ParseEndpoint for every input.
	ErrDescriptionNotParseable = errors.New("endpoint description cannot be parsed back into an endpoint")
	// ErrInvalidURL is returned by the session when an endpoint has no typed URL.
	ErrInvalidURL = errors.New("endpoint base URL is not an absolute URL")
)

// ApiError represents a non-2xx response to an endpoint request.
type ApiError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *ApiError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("response body: %s", e.Body)
	}
	return fmt.Sprintf(
		"%s request to %s returned status code %d"+
			"; response body: %s", e.Method, e.URL, e.StatusCode, e.Body,
	)
}

func IsApiError(err error) bool {
	var apiErr *ApiError
	return errors.As(err, &apiErr)
}

// IgnoreStatusCodes returns nil when err is an ApiError with one of codes.
func IgnoreStatusCodes(err error, codes ...int) error {
	var apiErr *ApiError
	if !errors.As(err, &apiErr) {
		return err
	}
	for _, code := range codes {
		if apiErr.StatusCode == code {
			return nil
		}
	}
	return err
}

// ExpectStatusCodes reports whether err is an ApiError with one of codes.
func ExpectStatusCodes(err error, codes ...int) bool {
	var apiErr *ApiError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.StatusCode == code {
			return true
		}
	}
	return false
}

// DuplicateParameterError is the panic value raised when an endpoint declares
// two parameters of the same kind under one name.
type DuplicateParameterError struct {
	Name string
	Kind Kind
}

func (e *DuplicateParameterError) Error() string {
	return fmt.Sprintf("duplicate %s parameter %q", e.Kind, e.Name)
}

// ValidationError wraps the field errors found while validating a parameter
// or an endpoint.
type ValidationError struct {
	Subject string
	Err     error
}

func (e *ValidationError) Error() string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(e.Err, &fieldErrs) {
		return fmt.Sprintf("invalid %s: %v", e.Subject, e.Err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			problems = append(problems, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			problems = append(problems, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Sprintf("invalid %s: %s", e.Subject, strings.Join(problems, "; "))
}

func (e *ValidationError) Unwrap() error { return e.Err }

func IsValidationErr(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// VersionError reports that an endpoint needs a newer server than configured.
type VersionError struct {
	Endpoint      string
	Required      string
	ServerVersion string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("endpoint %s is not supported by server version %s (supported from version %s)",
		e.Endpoint, e.ServerVersion, e.Required)
}

func IsVersionErr(err error) bool {
	var vErr *VersionError
	return errors.As(err, &vErr)
}
