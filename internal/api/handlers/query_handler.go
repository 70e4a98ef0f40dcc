package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/blacknews/blacknews-be/internal/auth"
	"github.com/blacknews/blacknews-be/internal/resolver"
)

// QueryHandler serves the typed query/mutation endpoint.
type QueryHandler struct {
	resolver *resolver.Resolver
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(res *resolver.Resolver) *QueryHandler {
	return &QueryHandler{resolver: res}
}

// Serve decodes one operation request, executes it for the request's actor
// and writes the {data, errors} envelope. Operation failures are part of the
// envelope, not transport errors; only an unreadable body is a 400.
func (h *QueryHandler) Serve(w http.ResponseWriter, r *http.Request) {
	var req resolver.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Operation == "" {
		http.Error(w, "Missing operation name", http.StatusBadRequest)
		return
	}

	actor := auth.ActorFromContext(r.Context())
	response := h.resolver.Execute(actor, req)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
