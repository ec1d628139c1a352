package handler

import (
	"encoding/json"
	"net/http"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	Repo repository.CategoryRepository
}

func (h CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.list)
	r.Post("/categories", h.upsert)
	r.Delete("/categories/{id}", h.delete)
}

func (h CategoryHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, c := range items {
		resp = append(resp, map[string]any{
			"id":          c.ID,
			"name":        c.Name,
			"description": c.Description,
			"active":      c.Active,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CategoryHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Active      *bool  `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	saved, err := h.Repo.Save(r.Context(), domain.Category{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Active:      active,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          saved.ID,
		"name":        saved.Name,
		"description": saved.Description,
		"active":      saved.Active,
	})
}

func (h CategoryHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
