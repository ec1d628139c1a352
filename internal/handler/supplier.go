package handler

import (
	"encoding/json"
	"net/http"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/JosueLDjota/ERP-Modern/internal/service"
	"github.com/JosueLDjota/ERP-Modern/internal/validate"
	"github.com/go-chi/chi/v5"
)

type SupplierHandler struct {
	Repo repository.SupplierRepository
}

func (h SupplierHandler) RegisterRoutes(r chi.Router) {
	r.Get("/suppliers", h.list)
	r.Get("/suppliers/stats", h.stats)
	r.Get("/suppliers/categories", h.categories)
	r.Get("/suppliers/{id}", h.get)
	r.Post("/suppliers", h.upsert)
	r.Delete("/suppliers/{id}", h.delete)
}

func (h SupplierHandler) list(w http.ResponseWriter, r *http.Request) {
	status := domain.SupplierStatus(r.URL.Query().Get("status"))
	items, err := h.Repo.List(r.Context(), r.URL.Query().Get("q"), status)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, s := range items {
		resp = append(resp, supplierPayload(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h SupplierHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	s, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, supplierPayload(*s))
}

func (h SupplierHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID           int64   `json:"id"`
		Name         string  `json:"name"`
		ContactName  string  `json:"contactName"`
		ContactTitle string  `json:"contactTitle"`
		Phone        string  `json:"phone"`
		Email        string  `json:"email"`
		Website      string  `json:"website"`
		Category     string  `json:"category"`
		Status       string  `json:"status"`
		Address      string  `json:"address"`
		TaxID        string  `json:"taxId"`
		BusinessType string  `json:"businessType"`
		PaymentTerms string  `json:"paymentTerms"`
		CreditLimit  float64 `json:"creditLimit"`
		Notes        string  `json:"notes"`
		Rating       int     `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	form := (&validate.Form{}).
		Required("name", req.Name).
		Email("email", req.Email).
		IntRange("rating", req.Rating, 0, 5)
	if err := form.Err(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := domain.SupplierStatus(req.Status)
	switch status {
	case domain.SupplierActive, domain.SupplierInactive, domain.SupplierSuspended, domain.SupplierUnderEvaluation:
	case "":
		status = domain.SupplierActive
	default:
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	saved, err := h.Repo.Save(r.Context(), domain.Supplier{
		ID:           req.ID,
		Name:         req.Name,
		ContactName:  req.ContactName,
		ContactTitle: req.ContactTitle,
		Phone:        req.Phone,
		Email:        req.Email,
		Website:      req.Website,
		Category:     req.Category,
		Status:       status,
		Address:      req.Address,
		TaxID:        req.TaxID,
		BusinessType: req.BusinessType,
		PaymentTerms: req.PaymentTerms,
		CreditLimit:  req.CreditLimit,
		Notes:        req.Notes,
		Rating:       req.Rating,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, supplierPayload(*saved))
}

func (h SupplierHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	flow := service.DeleteFlow[int64]{
		CountDependents: h.Repo.CountProducts,
		Deactivate:      h.Repo.Deactivate,
		Delete:          h.Repo.Delete,
		DeleteCascade:   h.Repo.DeleteCascade,
	}
	outcome, err := flow.Run(r.Context(), id, deleteRequest(r))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"outcome": string(outcome)})
}

func (h SupplierHandler) categories(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.Categories(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h SupplierHandler) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Repo.Stats(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":         st.Total,
		"active":        st.Active,
		"categoryCount": st.CategoryCount,
		"topRatedName":  st.TopRatedName,
		"topRating":     st.TopRating,
	})
}

func supplierPayload(s domain.Supplier) map[string]any {
	return map[string]any{
		"id":           s.ID,
		"name":         s.Name,
		"contactName":  s.ContactName,
		"contactTitle": s.ContactTitle,
		"phone":        s.Phone,
		"email":        s.Email,
		"website":      s.Website,
		"category":     s.Category,
		"status":       string(s.Status),
		"address":      s.Address,
		"taxId":        s.TaxID,
		"businessType": s.BusinessType,
		"paymentTerms": s.PaymentTerms,
		"creditLimit":  s.CreditLimit,
		"notes":        s.Notes,
		"rating":       s.Rating,
	}
}
