package donations

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the donation endpoints on the /api router. Center
// writes additionally pass through requireAdmin.
func SetupRoutes(r chi.Router, h *Handlers, requireAuth, requireAdmin func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Route("/donation-centers", func(r chi.Router) {
			r.Get("/", h.Centers.List)
			r.Get("/{id}", h.Centers.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", h.Centers.Create)
				r.Put("/{id}", h.Centers.Update)
				r.Patch("/{id}", h.Centers.Update)
			})
		})

		r.Route("/donations", h.Donations.Routes)
		r.Route("/appointments", h.Appointments.Routes)
	})
}
