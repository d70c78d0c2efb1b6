package handlers

import "net/http"

// HealthHandler responds with service health information.
type HealthHandler struct {
	Provider string
}

// Handle implements GET /healthz.
func (h HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload := map[string]string{"status": "ok"}
	if h.Provider != "" {
		payload["provider"] = h.Provider
	}
	respondJSON(r.Context(), w, http.StatusOK, payload)
}
