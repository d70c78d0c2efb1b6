package handlers

import "net/http"

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Videos       VideoService
	Sessions     SessionManager
	Password     PasswordChecker
	APIKey       string
	LoginLimiter RateLimiter
	Provider     string
}

// RegisterRoutes wires HTTP handlers into mux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{Provider: deps.Provider}
	authn := AuthHandler{Password: deps.Password, Sessions: deps.Sessions, Limiter: deps.LoginLimiter}
	videos := VideoHandler{Videos: deps.Videos}
	gate := CredentialGate{APIKey: deps.APIKey, Sessions: deps.Sessions}

	mux.HandleFunc("GET /healthz", health.Handle)
	mux.HandleFunc("POST /api/v1/auth/login", authn.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", authn.Logout)
	mux.Handle("GET /api/v1/videos", gate.Wrap(http.HandlerFunc(videos.List)))
	mux.Handle("GET /api/v1/videos/{id}", gate.Wrap(http.HandlerFunc(videos.Show)))
}
