package web

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the HTML form routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.Index)
	r.Post("/", h.Submit)
	r.Get("/new", h.New)
	r.Post("/export/{format}", h.Export)
}
