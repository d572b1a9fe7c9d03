package adapthttp

import (
	"net/http"

	"github.com/371bohdan/Record-Play/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth       *app.AuthService
	reset      *app.ResetService
	water      *app.WaterService
	oidcConfig OIDCConfig
}

// New creates a Server wired to the given application services.
func New(auth *app.AuthService, reset *app.ResetService, water *app.WaterService, oidcConfig OIDCConfig) *Server {
	return &Server{auth: auth, reset: reset, water: water, oidcConfig: oidcConfig}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.Handle("/profile", s.requireAuth(http.HandlerFunc(s.handleProfile)))
	mux.Handle("/water", s.requireAuth(http.HandlerFunc(s.handleWater)))
	mux.HandleFunc("/set_water/{id}", s.handleSetWater)
	mux.HandleFunc("/forgot-password", s.handleForgotPassword)
	mux.HandleFunc("/reset-password/{token}", s.handleResetPassword)

	mux.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	mux.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	mux.HandleFunc("/{$}", s.handleIndex)

	return s.loggingMiddleware(mux)
}
