package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// DefaultSlowRequest is the default threshold for slow request warnings.
const DefaultSlowRequest = 200 * time.Millisecond

// RequestLog returns middleware that logs each request with its status and duration.
// Normal requests log at DEBUG; requests at or above slow log at WARN.
// PRE: Mounted after chi's RequestID so request ids are available
func RequestLog(slow time.Duration) func(http.Handler) http.Handler {
	if slow <= 0 {
		slow = DefaultSlowRequest
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				elapsed := time.Since(start)
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				attrs := []any{
					"request_id", chimw.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"bytes", ww.BytesWritten(),
					"duration_ms", float64(elapsed.Microseconds()) / 1000.0,
				}
				if elapsed >= slow {
					slog.Warn("slow_request", attrs...)
					return
				}
				slog.Debug("request", attrs...)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
