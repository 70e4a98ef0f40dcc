package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/blacknews/blacknews-be/internal/services"
)

// HealthHandler reports store connectivity, collection counts and basic host
// utilization.
type HealthHandler struct {
	db       *sql.DB
	articles services.ArticleServiceProvider
	users    services.UserServiceProvider
	comments services.CommentServiceProvider
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(
	db *sql.DB,
	articles services.ArticleServiceProvider,
	users services.UserServiceProvider,
	comments services.CommentServiceProvider,
) *HealthHandler {
	return &HealthHandler{db: db, articles: articles, users: users, comments: comments}
}

// Check handles the liveness probe.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK

	if err := h.db.Ping(); err != nil {
		log.Error().Err(err).Msg("Database ping failed")
		body["status"] = "degraded"
		body["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	} else {
		body["database"] = "ok"
		counts := map[string]int{}
		if n, err := h.articles.Count(); err == nil {
			counts["articles"] = n
		}
		if n, err := h.users.Count(); err == nil {
			counts["users"] = n
		}
		if n, err := h.comments.Count(); err == nil {
			counts["comments"] = n
		}
		body["counts"] = counts
	}

	// Host utilization is best effort; a sampling failure never degrades the
	// probe.
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		body["cpuPercent"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		body["memPercent"] = vm.UsedPercent
	}

	writeJSON(w, status, body)
}
