package webserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/spboyer/leadval/internal/webapi"
)

// routes builds the router: request middleware, the REST API, and /metrics.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return webapi.CORSMiddleware(next, s.cfg.AllowedOrigins...)
	})

	webapi.RegisterRoutes(r, webapi.NewHandlers(s.cfg.Store, s.cfg.Reporter, s.cfg.Tenant, s.logger))
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())
	return r
}

// unmatchedRoute is the metrics label for requests that matched no route.
const unmatchedRoute = "unmatched"

// loggingMiddleware logs each request and records it in the HTTP metrics.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			elapsed := time.Since(start)
			route := unmatchedRoute
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			s.metrics.observe(r.Method, route, ww.Status(), elapsed)
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", elapsed),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
