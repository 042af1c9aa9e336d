package http

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/lotoboard/server/internal/auth"
	"github.com/lotoboard/server/internal/http/handlers"
	"github.com/lotoboard/server/internal/middleware"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	trackerHandler *handlers.TrackerHandler,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	healthHandler := handlers.NewHealthHandler()
	r.Get("/health", healthHandler.ServeHTTP)

	r.Post("/auth/login", authHandler.HandleLogin)
	// Logout only clears the cookie, so it stays reachable without a valid
	// session.
	r.Post("/auth/logout", authHandler.HandleLogout)

	// Session-guarded routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(jwtService))

		r.Get("/auth/me", authHandler.HandleMe)

		r.Route("/game", func(r chi.Router) {
			r.Get("/state", trackerHandler.HandleState)
			r.Post("/call", trackerHandler.HandleCall)
			r.Post("/erase", trackerHandler.HandleErase)
			r.Post("/new", trackerHandler.HandleNewGame)
			r.Post("/navigate", trackerHandler.HandleNavigate)
			r.Post("/reset", trackerHandler.HandleReset)
			r.Get("/statistics/export", trackerHandler.HandleExportStatistics)
		})

		// Admin-only routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/users", adminHandler.HandleListUsers)
			r.Post("/users", adminHandler.HandleCreateUser)
			r.Delete("/users/{id}", adminHandler.HandleDeleteUser)
		})
	})

	return r
}
