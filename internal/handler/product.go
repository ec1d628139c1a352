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

type ProductHandler struct {
	Repo repository.ProductRepository
}

func (h ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.list)
	r.Get("/products/{id}", h.get)
	r.Post("/products", h.upsert)
	r.Delete("/products/{id}", h.delete)
	r.Get("/products/low-stock", h.lowStock)
}

func (h ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), listFilter(r), r.URL.Query().Get("q"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, p := range items {
		resp = append(resp, productPayload(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	p, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productPayload(*p))
}

func (h ProductHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Cost        float64 `json:"cost"`
		Stock       int     `json:"stock"`
		MinStock    int     `json:"minStock"`
		CategoryID  *int64  `json:"categoryId"`
		SupplierID  *int64  `json:"supplierId"`
		SKU         *string `json:"sku"`
		Barcode     string  `json:"barcode"`
		Unit        string  `json:"unit"`
		TaxRate     float64 `json:"taxRate"`
		Active      *bool   `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	form := (&validate.Form{}).
		Required("name", req.Name).
		Positive("price", req.Price).
		NonNegative("stock", req.Stock).
		NonNegative("minStock", req.MinStock)
	if err := form.Err(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	// Stock only applies on insert; existing stock moves through the
	// inventory endpoints so every change leaves an audit row.
	saved, err := h.Repo.Save(r.Context(), domain.Product{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Cost:        req.Cost,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		CategoryID:  req.CategoryID,
		SupplierID:  req.SupplierID,
		SKU:         req.SKU,
		Barcode:     req.Barcode,
		Unit:        req.Unit,
		TaxRate:     req.TaxRate,
		Active:      active,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productPayload(*saved))
}

// delete never cascades: a product referenced by sale lines can only be
// deactivated, keeping past receipts intact.
func (h ProductHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	flow := service.DeleteFlow[int64]{
		CountDependents: h.Repo.CountSaleLines,
		Deactivate:      h.Repo.Deactivate,
		Delete:          h.Repo.Delete,
	}
	req := deleteRequest(r)
	req.CascadeConfirmed = false
	outcome, err := flow.Run(r.Context(), id, req)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"outcome": string(outcome)})
}

func (h ProductHandler) lowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.LowStock(r.Context(), intQuery(r, "floor", 10))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, p := range items {
		resp = append(resp, map[string]any{
			"id":       p.ID,
			"name":     p.Name,
			"stock":    p.Stock,
			"minStock": p.MinStock,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func productPayload(p domain.Product) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"cost":        p.Cost,
		"stock":       p.Stock,
		"minStock":    p.MinStock,
		"categoryId":  p.CategoryID,
		"supplierId":  p.SupplierID,
		"sku":         p.SKU,
		"barcode":     p.Barcode,
		"unit":        p.Unit,
		"taxRate":     p.TaxRate,
		"active":      p.Active,
	}
}
