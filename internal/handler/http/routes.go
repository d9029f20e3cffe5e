package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
	})

	// sync routes, farm-scoped via JWT
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Group(func(r chi.Router) {
			r.Use(withGZip)
			r.Post("/api/sync/pull/full", h.fullPull)
			r.Post("/api/sync/pull/incremental", h.incrementalPull)
			r.Post("/api/sync/push", h.push)
		})

		// The stream route stays uncompressed: it needs the raw Flusher so
		// chunks reach the client as they are produced.
		r.Get("/api/sync/pull/stream", h.streamPull)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
