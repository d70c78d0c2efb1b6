package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vidhub/backend/internal/logging"
	"github.com/vidhub/backend/internal/videos"
)

// VideoHandler serves the video listing and detail endpoints.
type VideoHandler struct {
	Videos VideoService
}

// List handles GET /api/v1/videos. A blank query lists popular videos.
func (h VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.Videos == nil {
		logging.FromContext(ctx).Error("video service unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "video service unavailable"})
		return
	}

	q := r.URL.Query()
	page := positiveInt(q.Get("page"), videos.DefaultPage)
	perPage := positiveInt(q.Get("per_page"), videos.DefaultPerPage)
	opts := videos.Options{Size: q.Get("size"), Locale: q.Get("locale")}

	var result videos.PageResult
	if query := strings.TrimSpace(q.Get("query")); query == "" {
		result = h.Videos.FetchPopular(ctx, page, perPage, opts)
	} else {
		result = h.Videos.Search(ctx, query, page, perPage, opts)
	}

	status := http.StatusOK
	if result.Failed() {
		status = http.StatusInternalServerError
	}
	respondJSON(ctx, w, status, result)
}

// Show handles GET /api/v1/videos/{id}.
func (h VideoHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.Videos == nil {
		logging.FromContext(ctx).Error("video service unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "video service unavailable"})
		return
	}

	result := h.Videos.FetchByID(ctx, r.PathValue("id"))

	status := http.StatusOK
	switch {
	case result.NotFound():
		status = http.StatusNotFound
	case result.Failed():
		status = http.StatusInternalServerError
	}
	respondJSON(ctx, w, status, result)
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
