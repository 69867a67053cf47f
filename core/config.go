package core

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	version "github.com/hashicorp/go-version"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

//go:embed version
var clientVersion string

// ClientVersion is the library version reported in the default User-Agent.
func ClientVersion() string {
	return strings.TrimSpace(clientVersion)
}

// Config represents the configuration of a Session.
type Config struct {
	UserAgent     string         // Optional custom User-Agent header. If empty, a default is applied.
	Timeout       *time.Duration // HTTP client timeout. If nil, a default is applied by validators.
	ServerVersion string         // Optional version of the remote API, checked against Versioned endpoints.
	Headers       Headers        // Headers sent with every request; endpoint headers take precedence.
	HTTPClient    *http.Client   // Optional client to send requests with. Timeout is not applied to a supplied client.
	Logger        *zap.Logger    // Optional logger. Defaults to a no-op logger.

	// BeforeRequestFn is an optional function hook executed before a request is sent.
	// It runs after the endpoint's own RequestInterceptor, if any.
	//
	// Parameters:
	//   - ctx: The request context.
	//   - r: The prepared request. Headers may still be modified.
	//   - body: The encoded request body, nil when there is none.
	//
	// Return:
	//   - error: Any error returned will abort the request.
	BeforeRequestFn func(ctx context.Context, r *http.Request, body []byte) error

	// AfterRequestFn is an optional function hook executed after a 2xx response is read.
	// It may return a modified response.
	AfterRequestFn func(ctx context.Context, response *Response) (*Response, error)
}

// ConfigFunc defines a function that can modify or validate a Config.
type ConfigFunc func(*Config) error

// Validate applies the given ConfigFunc validators to the config.
// Panics if any validator returns an error.
func (config *Config) Validate(validators ...ConfigFunc) {
	for _, fn := range validators {
		if err := fn(config); err != nil {
			panic(err)
		}
	}
}

// WithTimeout returns a ConfigFunc that sets a default timeout if none is provided.
func WithTimeout(timeout time.Duration) ConfigFunc {
	return func(config *Config) error {
		if config.Timeout == nil {
			config.Timeout = &timeout
		}
		if *config.Timeout < 0 {
			return fmt.Errorf("timeout cannot be negative: %s", *config.Timeout)
		}
		return nil
	}
}

// WithUserAgent sets a default User-Agent if none is provided in the config.
func WithUserAgent(config *Config) error {
	if config.UserAgent == "" {
		config.UserAgent = fmt.Sprintf(
			"%s,os:%s,arch:%s",
			fmt.Sprintf("go-endpoints-%s", ClientVersion()),
			runtime.GOOS,
			runtime.GOARCH,
		)
	}
	return nil
}

// WithLogger installs a no-op logger when none is provided.
func WithLogger(config *Config) error {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return nil
}

// WithHTTPClient builds an *http.Client honouring Timeout when none is provided.
// It must run after WithTimeout.
func WithHTTPClient(config *Config) error {
	if config.HTTPClient != nil {
		return nil
	}
	if config.Timeout == nil {
		return errors.New("timeout must be set before the HTTP client is created")
	}
	config.HTTPClient = &http.Client{Timeout: *config.Timeout}
	return nil
}

// WithServerVersion sets a default server version and checks that the
// configured one parses.
func WithServerVersion(defaultVer string) ConfigFunc {
	return func(config *Config) error {
		if config.ServerVersion == "" {
			config.ServerVersion = defaultVer
		}
		_, err := parseServerVersion(config.ServerVersion)
		return err
	}
}

// parseServerVersion returns nil for an empty version.
func parseServerVersion(raw string) (*version.Version, error) {
	if raw == "" {
		return nil, nil
	}
	ver, err := version.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid server version %q: %w", raw, err)
	}
	return ver, nil
}
