// internal/server/router.go
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(s.requestMetrics)

	r.Get("/health", s.handleHealth)
	r.Get("/languages", s.handleLanguages)
	r.Get("/form_types", s.handleFormTypes)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(api chi.Router) {
		api.Use(s.rateLimit)
		api.Post("/register", s.handleRegister)
		api.Post("/login", s.handleLogin)
		api.Get("/verify", s.handleVerify)
		api.Post("/oauth/begin", s.handleOAuthBegin)
		api.Post("/oauth/dev", s.handleOAuthDev)
	})

	r.Group(func(api chi.Router) {
		api.Use(s.rateLimit)
		api.Use(s.requireAuth)
		api.Post("/chat", s.handleChat)
		api.Post("/generate_form", s.handleGenerateForm)
		api.Post("/generate_form_pdf", s.handleGenerateFormPDF)
	})

	r.Route("/data", func(api chi.Router) {
		api.Use(s.requireAuth)
		api.Get("/chats", s.handleListChats)
		api.Get("/forms", s.handleListForms)
	})

	return r
}
