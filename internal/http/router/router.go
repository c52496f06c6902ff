// Package router wires the HTTP handlers into a chi router.
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/course-registration/internal/http/handlers/course"
	"github.com/aanand-mishra/course-registration/internal/http/handlers/registrations"
	"github.com/aanand-mishra/course-registration/internal/registration"
	"github.com/aanand-mishra/course-registration/internal/storage"
)

// New returns the API handler.
//
// Route table:
//
//	GET  /healthz             → liveness probe
//	GET  /api/courses         → list a session's courses (?session=Autumn)
//	POST /api/registrations   → register a student for a course
func New(store storage.Storage, validator *registration.Validator, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok\n"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/courses", course.List(store))
		r.Post("/registrations", registrations.New(store, validator))
	})

	return r
}

// requestLogger logs one line per request once the response is written.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
