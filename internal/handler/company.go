package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/go-chi/chi/v5"
)

type CompanyHandler struct {
	Repo repository.CompanyRepository
}

func (h CompanyHandler) RegisterRoutes(r chi.Router) {
	r.Get("/company", h.get)
	r.Post("/company", h.save)
	r.Get("/company/series", h.listSeries)
	r.Post("/company/series/{series}/next", h.nextNumber)
}

func (h CompanyHandler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Repo.Get(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, companyPayload(*c))
}

func (h CompanyHandler) save(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID             int64   `json:"id"`
		Name           string  `json:"name"`
		TaxID          string  `json:"taxId"`
		Address        string  `json:"address"`
		Phone          string  `json:"phone"`
		Email          string  `json:"email"`
		Website        string  `json:"website"`
		Currency       string  `json:"currency"`
		Language       string  `json:"language"`
		Timezone       string  `json:"timezone"`
		DefaultTaxRate float64 `json:"defaultTaxRate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	saved, err := h.Repo.Save(r.Context(), domain.Company{
		ID:             req.ID,
		Name:           req.Name,
		TaxID:          req.TaxID,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		Website:        req.Website,
		Currency:       req.Currency,
		Language:       req.Language,
		Timezone:       req.Timezone,
		DefaultTaxRate: req.DefaultTaxRate,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, companyPayload(*saved))
}

func (h CompanyHandler) listSeries(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ListSeries(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, s := range items {
		resp = append(resp, map[string]any{
			"id":            s.ID,
			"series":        s.Series,
			"description":   s.Description,
			"currentNumber": s.CurrentNumber,
			"numberFrom":    s.NumberFrom,
			"numberTo":      s.NumberTo,
			"active":        s.Active,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CompanyHandler) nextNumber(w http.ResponseWriter, r *http.Request) {
	series := chi.URLParam(r, "series")
	n, err := h.Repo.NextInvoiceNumber(r.Context(), series)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"series": series, "number": n})
}

func companyPayload(c domain.Company) map[string]any {
	return map[string]any{
		"id":             c.ID,
		"name":           c.Name,
		"taxId":          c.TaxID,
		"address":        c.Address,
		"phone":          c.Phone,
		"email":          c.Email,
		"website":        c.Website,
		"currency":       c.Currency,
		"language":       c.Language,
		"timezone":       c.Timezone,
		"defaultTaxRate": c.DefaultTaxRate,
	}
}
