package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	version "github.com/hashicorp/go-version"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

// Session sends endpoints over HTTP and returns their raw responses.
// It adds no retries, authentication or caching of its own.
type Session struct {
	config        *Config
	client        *http.Client
	logger        *zap.Logger
	serverVersion *version.Version
}

// NewSession validates config, filling in defaults, and creates a Session.
func NewSession(config *Config) (*Session, error) {
	if config == nil {
		config = &Config{}
	}
	// A malformed server version is returned as an error rather than a panic
	// from Validate.
	if err := WithServerVersion("")(config); err != nil {
		return nil, err
	}
	config.Validate(
		WithTimeout(defaultTimeout),
		WithUserAgent,
		WithLogger,
		WithHTTPClient,
	)
	ver, _ := parseServerVersion(config.ServerVersion)
	return &Session{
		config:        config,
		client:        config.HTTPClient,
		logger:        config.Logger,
		serverVersion: ver,
	}, nil
}

func (s *Session) GetConfig() *Config {
	return s.config
}

// NewRequest builds the HTTP request for ep and returns it together with the
// encoded body (nil when nothing is sent).
func (s *Session) NewRequest(ctx context.Context, ep Endpoint) (*http.Request, []byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := Validate(ep); err != nil {
		return nil, nil, err
	}
	if err := s.checkVersionCompat(ep); err != nil {
		return nil, nil, err
	}
	u := URL(ep)
	if u == nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidURL, ep.BaseURL())
	}

	headers := s.consolidateHeaders(ep)
	body, contentType, err := encodeBody(ep, headers.Get(HeaderContentType))
	if err != nil {
		return nil, nil, err
	}
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, ep.Method().String(), u.String(), reader)
	if err != nil {
		return nil, nil, err
	}
	req.Header = headers
	if contentType != "" && req.Header.Get(HeaderContentType) == "" {
		req.Header.Set(HeaderContentType, contentType)
	}
	return req, body, nil
}

// Do sends ep and returns its raw response. Non-2xx responses are returned
// as *ApiError.
func (s *Session) Do(ctx context.Context, ep Endpoint) (*Response, error) {
	req, body, err := s.NewRequest(ctx, ep)
	if err != nil {
		return nil, err
	}
	if err = s.doBeforeRequest(req.Context(), ep, req, body); err != nil {
		return nil, err
	}

	started := time.Now()
	httpResponse, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform %s request to %s: %w", req.Method, req.URL, err)
	}
	defer httpResponse.Body.Close()

	data, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response from %s: %w", req.Method, req.URL, err)
	}
	response := &Response{
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: httpResponse.StatusCode,
		Header:     httpResponse.Header,
		Body:       data,
	}
	s.logger.Debug("response received",
		zap.String("method", response.Method),
		zap.String("url", response.URL),
		zap.Int("status", response.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(started)),
	)
	if err = validateResponse(response); err != nil {
		return nil, err
	}
	return s.doAfterRequest(req.Context(), ep, response)
}

// checkVersionCompat refuses Versioned endpoints newer than the configured server.
func (s *Session) checkVersionCompat(ep Endpoint) error {
	versioned, ok := ep.(Versioned)
	if !ok || s.serverVersion == nil {
		return nil
	}
	required := versioned.AvailableFrom()
	if required == nil {
		return nil
	}
	if s.serverVersion.LessThan(required) {
		return &VersionError{
			Endpoint:      ep.Method().String() + " " + ep.Path(),
			Required:      required.String(),
			ServerVersion: s.serverVersion.String(),
		}
	}
	return nil
}

// consolidateHeaders merges session headers, endpoint headers and defaults,
// in increasing order of precedence for the first two.
func (s *Session) consolidateHeaders(ep Endpoint) http.Header {
	finalHeaders := s.config.Headers.ToHTTP()
	for key, values := range ep.Headers().ToHTTP() {
		finalHeaders[key] = values
	}
	// Set default headers only if not already provided
	if finalHeaders.Get(HeaderAccept) == "" {
		finalHeaders.Set(HeaderAccept, ContentTypeJSON)
	}
	if finalHeaders.Get(HeaderUserAgent) == "" && s.config.UserAgent != "" {
		finalHeaders.Set(HeaderUserAgent, s.config.UserAgent)
	}
	return finalHeaders
}

// encodeBody serializes what ep sends. An explicit payload wins; otherwise
// body-kind parameters are sent as an object for methods that have a body.
func encodeBody(ep Endpoint, contentType string) ([]byte, string, error) {
	payload := ep.Body()
	if HasBody(payload) {
		switch typed := payload.(type) {
		case StringPayload:
			return []byte(typed), ContentTypeTextPlain, nil
		case *StringPayload:
			return []byte(*typed), ContentTypeTextPlain, nil
		}
		if isMsgpack(mediaType(contentType)) {
			data, err := msgpack.Marshal(payload)
			if err != nil {
				return nil, "", fmt.Errorf("encode %T as msgpack: %w", payload, err)
			}
			return data, ContentTypeMsgpack, nil
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, "", fmt.Errorf("encode %T as json: %w", payload, err)
		}
		return data, ContentTypeJSON, nil
	}

	method := Method(ep.Method().String())
	if method == GET || method == HEAD {
		return nil, "", nil
	}
	params := BodyParameters(ep)
	if len(params) == 0 {
		return nil, "", nil
	}
	if isMsgpack(mediaType(contentType)) {
		data, err := params.ToMsgpack()
		if err != nil {
			return nil, "", fmt.Errorf("encode body parameters as msgpack: %w", err)
		}
		return data, ContentTypeMsgpack, nil
	}
	reader, err := params.ToBody()
	if err != nil {
		return nil, "", fmt.Errorf("encode body parameters as json: %w", err)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", err
	}
	return data, ContentTypeJSON, nil
}

// validateResponse checks the response for 2xx status codes.
func validateResponse(response *Response) error {
	if response.StatusCode >= 200 && response.StatusCode <= 299 {
		return nil
	}
	return &ApiError{
		Method:     response.Method,
		URL:        response.URL,
		StatusCode: response.StatusCode,
		Body:       responseBodyAsStr(response.Body),
	}
}

// responseBodyAsStr pretty prints JSON bodies and returns anything else as is.
func responseBodyAsStr(body []byte) string {
	var b bytes.Buffer
	if err := json.Indent(&b, body, "", "  "); err == nil {
		return b.String()
	}
	return string(body)
}
