package middleware

import (
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
)

// Logger logs one line per request with its status and latency.
func Logger(log logger.Logger) func(http.Handler) http.Handler {
	log = log.Named("HTTP")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()),
			}
			if sc := trace.SpanFromContext(r.Context()).SpanContext(); sc.HasTraceID() {
				fields = append(fields, "trace_id", sc.TraceID().String())
			}

			switch {
			case status >= http.StatusInternalServerError:
				log.Errorw("request failed", fields...)
			case status >= http.StatusBadRequest:
				log.Warnw("request rejected", fields...)
			default:
				log.Infow("request completed", fields...)
			}
		})
	}
}
