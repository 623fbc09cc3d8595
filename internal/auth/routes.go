package auth

import (
	"net/http"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts under /api/auth. limiter guards the unauthenticated
// credential endpoints.
func SetupRoutes(h *Handler, requireAuth func(http.Handler) http.Handler, limiter *middleware.RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Handler)
		}
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/token/refresh", h.Refresh)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
		r.Delete("/me", h.DeleteMe)
		r.Post("/password", h.UpdatePassword)
	})

	return r
}
