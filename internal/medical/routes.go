package medical

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the medical endpoints on the /api router.
func SetupRoutes(r chi.Router, h *Handlers, requireAuth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/profile", h.Profile.Get)
		r.Put("/profile", h.Profile.Update)
		r.Patch("/profile", h.Profile.Update)

		r.Route("/allergies", h.Allergies.Routes)
		r.Route("/medications", h.Medications.Routes)
		r.Route("/medical-conditions", h.Conditions.Routes)
	})
}
