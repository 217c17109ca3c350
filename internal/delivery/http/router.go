package http //nolint:revive // directory-based package name, imported with alias

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 30 * time.Second

func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", h.HandleHealth)

	r.Route("/api/pix", func(r chi.Router) {
		r.Post("/charges", h.HandleIssueCharge)
		r.Get("/charges/{id}", h.HandleGetCharge)
		r.Get("/qr", h.HandleQR)
	})

	return r
}
