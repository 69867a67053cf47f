package core

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// ######################################################
//
//	REQUEST/RESPONSE INTERCEPTORS
//
// ######################################################

// doBeforeRequest runs the endpoint's own interceptor first, then the
// user-defined callback from Config.
func (s *Session) doBeforeRequest(ctx context.Context, ep Endpoint, r *http.Request, body []byte) error {
	s.beforeRequestLog(r, body)
	if interceptor, ok := ep.(RequestInterceptor); ok {
		if err := interceptor.BeforeRequest(ctx, r, body); err != nil {
			return err
		}
	}
	// User-defined callback
	if s.config.BeforeRequestFn != nil {
		return s.config.BeforeRequestFn(ctx, r, body)
	}
	return nil
}

// doAfterRequest mirrors doBeforeRequest for the response.
func (s *Session) doAfterRequest(ctx context.Context, ep Endpoint, response *Response) (*Response, error) {
	var err error
	if interceptor, ok := ep.(RequestInterceptor); ok {
		if response, err = interceptor.AfterRequest(ctx, response); err != nil {
			return nil, err
		}
	}
	// User-defined callback
	if s.config.AfterRequestFn != nil {
		if response, err = s.config.AfterRequestFn(ctx, response); err != nil {
			return nil, err
		}
	}
	return response, nil
}

func (s *Session) beforeRequestLog(r *http.Request, body []byte) {
	if ce := s.logger.Check(zap.DebugLevel, "sending request"); ce != nil {
		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
		}
		if len(body) > 0 {
			fields = append(fields, zap.ByteString("body", body))
		}
		ce.Write(fields...)
	}
}
