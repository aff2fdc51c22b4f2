package handlers

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {

		// public routes
		r.Get("/health", h.HealthHandler)
		r.Post("/auth/signup", h.SignupHandler)
		r.Post("/auth/login", h.LoginHandler)
		r.Get("/templates", h.ListTemplatesHandler)
		r.Post("/contact", h.SubmitContactHandler)
		r.Get("/catalog", h.CatalogHandler)
		r.Post("/designs/generate", h.GenerateDesignsHandler)
		r.Post("/render", h.RenderHandler)
		r.Post("/export", h.ExportHandler)
		r.Get("/vcard", h.VCardHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/auth/me", h.MeHandler)
			r.Post("/orders", h.CreateOrderHandler)

			// admin only
			r.Group(func(r chi.Router) {
				r.Use(h.AdminOnly)

				r.Get("/templates/all", h.ListAllTemplatesHandler)
				r.Get("/templates/{id}", h.GetTemplateHandler)
				r.Post("/templates", h.CreateTemplateHandler)
				r.Put("/templates/{id}", h.UpdateTemplateHandler)
				r.Delete("/templates/{id}", h.DeleteTemplateHandler)
				r.Post("/upload", h.UploadHandler)

				r.Get("/contact", h.ListContactHandler)
				r.Patch("/contact/{id}/read", h.MarkContactReadHandler)

				r.Get("/orders", h.ListOrdersHandler)
				r.Patch("/orders/{id}/status", h.SetOrderStatusHandler)
			})
		})
	})
}
