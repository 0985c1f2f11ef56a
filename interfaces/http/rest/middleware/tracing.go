package middleware

import (
	"net/http"

	"notes-backend/pkg/observability"
)

// Tracing opens an X-Ray segment per request and annotates it with the
// method and path. When tracing is disabled the handler chain runs
// untouched.
func Tracing(tracer *observability.Tracer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !tracer.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			ctx, seg := tracer.StartSegment(r.Context(), r.Method+" "+r.URL.Path)
			tracer.AddAnnotation(ctx, "method", r.Method)
			tracer.AddAnnotation(ctx, "path", r.URL.Path)

			next.ServeHTTP(w, r.WithContext(ctx))

			if seg != nil {
				seg.Close(nil)
			}
		})
	}
}
