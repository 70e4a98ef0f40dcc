package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/blacknews/blacknews-be/internal/auth"
	"github.com/blacknews/blacknews-be/internal/models"
	"github.com/blacknews/blacknews-be/internal/policy"
	"github.com/blacknews/blacknews-be/internal/services"
)

// ArticleHandler is the small REST surface used by the admin console,
// mirroring the listing and deletion operations of the query endpoint.
type ArticleHandler struct {
	service services.ArticleServiceProvider
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(service services.ArticleServiceProvider) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// List handles the request to list published articles.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.ArticleFilter{Category: r.URL.Query().Get("category")}
	if v := r.URL.Query().Get("featured"); v != "" {
		featured := v == "true" || v == "1"
		filter.IsFeatured = &featured
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil {
		filter.Skip = v
	}

	articles, err := h.service.List(filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list articles")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Failed to retrieve articles",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"articles": articles,
	})
}

// Delete handles article deletion, gated by the same role rule as the
// mutation equivalent.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if !policy.Allow(actor, policy.ActionDeleteArticle, "") {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"success": false,
			"error":   "Admin access required",
		})
		return
	}

	id := chi.URLParam(r, "id")
	existed, err := h.service.Delete(id)
	if err != nil {
		log.Error().Err(err).Str("article_id", id).Msg("Failed to delete article")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Failed to delete article",
		})
		return
	}
	if !existed {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "Article not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
