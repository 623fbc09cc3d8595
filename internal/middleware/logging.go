package middleware

import (
	"net/http"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/logging"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// RequestLogger attaches a request-scoped logrus entry to the context and
// logs one line per request once it completes.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		entry := logrus.WithFields(logrus.Fields{
			"request_id": chimiddleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
		})

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(logging.WithLogger(r.Context(), entry)))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := logrus.Fields{
			"status":      status,
			"bytes":       ww.BytesWritten(),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		switch {
		case status >= http.StatusInternalServerError:
			entry.WithFields(fields).Error("request completed")
		case status >= http.StatusBadRequest:
			entry.WithFields(fields).Warn("request completed")
		default:
			entry.WithFields(fields).Info("request completed")
		}
	})
}
