package http

import (
	"net/http"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// context key for attaching the marshalled request body
type payloadContextKey struct{}

type logTransport struct {
	transport http.RoundTripper
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	}

	// Payload may contain user text, keep it at debug level only
	if payload, ok := ctx.Value(payloadContextKey{}).([]byte); ok && len(payload) > 0 {
		fields = append(fields, zap.Int("payload_bytes", len(payload)))
		ctxzap.Debug(ctx, "HTTP outbound request", append(fields, zap.ByteString("payload", payload))...)
	} else {
		ctxzap.Debug(ctx, "HTTP outbound request", fields...)
	}

	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		ctxzap.Warn(ctx, "HTTP outbound request failed", append(fields, zap.Error(err), zap.Duration("duration", time.Since(start)))...)
		return nil, err
	}

	ctxzap.Debug(ctx, "HTTP outbound response",
		append(fields, zap.Int("status", resp.StatusCode), zap.Duration("duration", time.Since(start)))...,
	)
	return resp, nil
}

// WithRequestLogging wraps the HTTP transport with logging of method, URL, status and payload
func WithRequestLogging() HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &logTransport{
			transport: rt,
		}
	})
}
