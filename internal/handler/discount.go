package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/JosueLDjota/ERP-Modern/internal/validate"
	"github.com/go-chi/chi/v5"
)

type DiscountHandler struct {
	Repo repository.DiscountRepository
}

func (h DiscountHandler) RegisterRoutes(r chi.Router) {
	r.Get("/discounts", h.list)
	r.Get("/discounts/{id}", h.get)
	r.Post("/discounts", h.upsert)
	r.Delete("/discounts/{id}", h.delete)
}

func (h DiscountHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), listFilter(r))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, d := range items {
		resp = append(resp, discountPayload(d))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h DiscountHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	d, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, discountPayload(*d))
}

func (h DiscountHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID         int64   `json:"id"`
		Name       string  `json:"name"`
		Kind       string  `json:"kind"`
		Percentage float64 `json:"percentage"`
		MinAmount  float64 `json:"minAmount"`
		ValidFrom  string  `json:"validFrom"`
		ValidUntil string  `json:"validUntil"`
		Active     *bool   `json:"active"`
		MaxUses    int     `json:"maxUses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	form := (&validate.Form{}).
		Required("name", req.Name).
		Fraction("percentage", req.Percentage).
		NonNegative("maxUses", req.MaxUses)
	if err := form.Err(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var validFrom, validUntil *time.Time
	if req.ValidFrom != "" {
		t, err := time.Parse("2006-01-02", req.ValidFrom)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid validFrom")
			return
		}
		validFrom = &t
	}
	if req.ValidUntil != "" {
		t, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid validUntil")
			return
		}
		validUntil = &t
	}
	if validFrom != nil && validUntil != nil && validFrom.After(*validUntil) {
		writeError(w, http.StatusBadRequest, "validFrom must be before validUntil")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	saved, err := h.Repo.Save(r.Context(), domain.Discount{
		ID:         req.ID,
		Name:       req.Name,
		Kind:       req.Kind,
		Percentage: req.Percentage,
		MinAmount:  req.MinAmount,
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
		Active:     active,
		MaxUses:    req.MaxUses,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, discountPayload(*saved))
}

func (h DiscountHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if !boolQuery(r, "confirm") {
		writeJSON(w, http.StatusOK, map[string]string{"outcome": "cancelled"})
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"outcome": "deleted"})
}

func discountPayload(d domain.Discount) map[string]any {
	payload := map[string]any{
		"id":         d.ID,
		"name":       d.Name,
		"kind":       d.Kind,
		"percentage": d.Percentage,
		"minAmount":  d.MinAmount,
		"active":     d.Active,
		"maxUses":    d.MaxUses,
		"usedCount":  d.UsedCount,
	}
	if d.ValidFrom != nil {
		payload["validFrom"] = d.ValidFrom.Format("2006-01-02")
	}
	if d.ValidUntil != nil {
		payload["validUntil"] = d.ValidUntil.Format("2006-01-02")
	}
	return payload
}
