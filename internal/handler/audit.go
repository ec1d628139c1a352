package handler

import (
	"net/http"

	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/go-chi/chi/v5"
)

type AuditHandler struct {
	Repo repository.AuditRepository
}

func (h AuditHandler) RegisterRoutes(r chi.Router) {
	r.Get("/audit", h.list)
}

func (h AuditHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), intQuery(r, "limit", 100))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, e := range items {
		resp = append(resp, map[string]any{
			"id":          e.ID,
			"userId":      e.UserID,
			"action":      e.Action,
			"module":      e.Module,
			"description": e.Description,
			"ipAddress":   e.IPAddress,
			"loggedAt":    e.LoggedAt.Format("2006-01-02 15:04:05"),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
