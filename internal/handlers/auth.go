package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vidhub/backend/internal/logging"
)

const frontendSubject = "frontend"

var unauthorized = map[string]string{"error": "Unauthorized"}

// AuthHandler exchanges the frontend access password for a session token.
type AuthHandler struct {
	Password PasswordChecker
	Sessions SessionManager
	Limiter  RateLimiter
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login.
func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, "login") {
		logger.Warn("login rate limited", "ip", clientIP(r))
		respondJSON(ctx, w, http.StatusTooManyRequests, map[string]string{"error": "too many login attempts"})
		return
	}

	if h.Password == nil || h.Sessions == nil {
		logger.Error("authentication dependencies unavailable", "hasPassword", h.Password != nil, "hasSessions", h.Sessions != nil)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "authentication services unavailable"})
		return
	}

	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		logger.Warn("invalid login payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.Password.Check(req.Password); err != nil {
		logger.Warn("login password mismatch", "ip", clientIP(r))
		respondJSON(ctx, w, http.StatusUnauthorized, unauthorized)
		return
	}

	session, err := h.Sessions.Issue(ctx, frontendSubject)
	if err != nil {
		logger.Error("failed to issue session", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to create session"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, session)
}

// Logout handles POST /api/v1/auth/logout.
func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok || h.Sessions == nil {
		respondJSON(r.Context(), w, http.StatusUnauthorized, unauthorized)
		return
	}
	h.Sessions.Revoke(r.Context(), token)
	w.WriteHeader(http.StatusNoContent)
}

// CredentialGate admits requests that present the backend API key verbatim in
// the Authorization header, or a live session as a bearer token.
type CredentialGate struct {
	APIKey   string
	Sessions SessionManager
}

// Wrap guards next.
func (g CredentialGate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.allowed(r) {
			next.ServeHTTP(w, r)
			return
		}
		respondJSON(r.Context(), w, http.StatusUnauthorized, unauthorized)
	})
}

func (g CredentialGate) allowed(r *http.Request) bool {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return false
	}

	if g.APIKey != "" && subtle.ConstantTimeCompare([]byte(header), []byte(g.APIKey)) == 1 {
		return true
	}

	if token, ok := bearerToken(r); ok && g.Sessions != nil {
		if _, err := g.Sessions.Validate(r.Context(), token); err == nil {
			return true
		}
	}
	return false
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status)
	}
}
