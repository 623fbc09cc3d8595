package emergency

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the emergency endpoints on the /api router.
func SetupRoutes(r chi.Router, h *Handlers, requireAuth, requireAdmin func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Route("/emergency-requests", func(r chi.Router) {
			r.Get("/", h.Requests.List)
			r.Get("/{id}", h.Requests.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", h.Requests.Create)
				r.Put("/{id}", h.Requests.Update)
				r.Patch("/{id}", h.Requests.Update)
			})
		})

		r.Route("/emergency-responses", h.Responses.Routes)
	})
}
