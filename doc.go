/*
Package endpoints provides a declarative way to describe HTTP endpoints and turn them into requests.

An endpoint is a type that states its method, base URL, path, headers, parameters and body. Each
parameter is either a query parameter or a body parameter; the package extracts them, encodes the
query string, builds the request URL and renders a human-readable description of the endpoint.

The Session type sends endpoints over HTTP. It is initialized using a Config struct that allows
customization of the user agent, timeouts, default headers, the expected server version and
request/response hooks.
*/
package endpoints
