package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Recoverer turns a handler panic into the response written by fallback.
// It must run after Logger so the panic is logged with the request id.
func Recoverer(fallback http.HandlerFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// Let the server abort the connection as usual
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				ctxzap.Error(r.Context(), "panic while handling request",
					zap.String("panic", fmt.Sprint(rec)),
					zap.ByteString("stack", debug.Stack()),
				)
				fallback(w, r)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
