// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the /api/v1 route tree.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.ListProjects)
		r.Post("/", h.CreateProject)
		r.Post("/site-visits", h.BulkScheduleSiteVisits)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetProject)
			r.Put("/", h.UpdateProject)
			r.Delete("/", h.DeleteProject)
			r.Post("/log", h.AppendProjectLog)
			r.Get("/proposal", h.ServeProposalPDF)
			r.Post("/proposal", h.UploadProposalPDF)
			r.Get("/window-order", h.ServeWindowOrderPDF)
			r.Post("/window-order", h.UploadWindowOrderPDF)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Get("/{id}", h.GetUser)
		r.Put("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
	})

	r.Route("/positions", func(r chi.Router) {
		r.Get("/", h.ListPositions)
		r.Post("/", h.CreatePosition)
		r.Put("/{id}", h.UpdatePosition)
		r.Delete("/{id}", h.DeletePosition)
	})

	r.Route("/email-templates", func(r chi.Router) {
		r.Get("/", h.ListEmailTemplates)
		r.Post("/", h.CreateEmailTemplate)
		r.Get("/{id}", h.GetEmailTemplate)
		r.Put("/{id}", h.UpdateEmailTemplate)
		r.Delete("/{id}", h.DeleteEmailTemplate)
	})

	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)

	r.Post("/folders", h.CreateFolder)
	r.Post("/email/send", h.SendEmail)

	return r
}
