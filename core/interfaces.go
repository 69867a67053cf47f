package core

import (
	"context"
	"net/http"

	version "github.com/hashicorp/go-version"
)

// Versioned is implemented by endpoints that only exist from a given API
// version on. The session refuses to send them to an older server.
type Versioned interface {
	AvailableFrom() *version.Version
}

// RequestInterceptor defines a middleware-style interface an endpoint can
// implement to run logic before its request is sent and after its response
// is received. Typical use cases include request mutation, logging and
// response transformation.
type RequestInterceptor interface {
	// BeforeRequest is invoked prior to sending the request.
	//
	// Parameters:
	//   - ctx: The request context, useful for deadlines, tracing, or cancellation.
	//   - r: The prepared request object.
	//   - body: The encoded body, nil when nothing is sent.
	BeforeRequest(ctx context.Context, r *http.Request, body []byte) error

	// AfterRequest is invoked after a successful response has been read.
	// It returns a (possibly modified) response.
	AfterRequest(ctx context.Context, response *Response) (*Response, error)
}
