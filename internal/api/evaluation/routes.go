package evaluation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers JSON API routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/evaluations", h.Evaluate)
		r.Post("/reports/{format}", h.ExportReport)
	})
}
