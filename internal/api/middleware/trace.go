package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/draftforge/draftforge-api/internal/api/shared"
)

// TraceMiddleware stamps every request with a trace ID and logs its start
// and completion. A generation request is accepted in milliseconds but
// often debugged hours later from logs, so the trace ID is the join key
// between the access log, the job runner, and the error response body.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		log := slog.With(slog.String("trace_id", shared.GetTraceID(ctx)))

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		log.Debug("request finished",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)))
	})
}
