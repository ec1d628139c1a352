package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/JosueLDjota/ERP-Modern/internal/server/authctx"
	"github.com/JosueLDjota/ERP-Modern/internal/service"
	"github.com/go-chi/chi/v5"
)

type SaleHandler struct {
	Service  service.SaleService
	Receipts service.ReceiptService
	Repo     repository.SaleRepository
}

func (h SaleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sales", h.list)
	r.Get("/sales/{id}", h.get)
	r.Post("/sales", h.create)
	r.Post("/sales/{id}/cancel", h.cancel)
	r.Get("/sales/{id}/receipt", h.receipt)
}

func (h SaleHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []struct {
			ProductID   *int64  `json:"productId"`
			ProductName string  `json:"productName"`
			Quantity    int     `json:"quantity"`
			UnitPrice   float64 `json:"unitPrice"`
			Discount    float64 `json:"discount"`
			Tax         float64 `json:"tax"`
		} `json:"items"`
		Total         float64 `json:"total"`
		AmountPaid    float64 `json:"amountPaid"`
		ClientID      *int64  `json:"clientId"`
		ReceiptKind   string  `json:"receiptKind"`
		PaymentMethod string  `json:"paymentMethod"`
		Notes         string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	var userID *int64
	if u := authctx.FromContext(r.Context()); u != nil {
		userID = &u.ID
	}

	in := service.CreateSaleInput{
		Total:         req.Total,
		AmountPaid:    req.AmountPaid,
		UserID:        userID,
		ClientID:      req.ClientID,
		ReceiptKind:   req.ReceiptKind,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, service.SaleLineInput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			Tax:         it.Tax,
		})
	}

	sale, err := h.Service.Create(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptySale),
			errors.Is(err, service.ErrTotalMismatch),
			errors.Is(err, service.ErrUnderpaid):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeRepoError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, salePayload(sale))
}

func (h SaleHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), intQuery(r, "limit", 100))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for i := range items {
		resp = append(resp, salePayload(&items[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h SaleHandler) get(w http.ResponseWriter, r *http.Request) {
	sale, err := h.Repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, salePayload(sale))
}

func (h SaleHandler) cancel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	var userID *int64
	if u := authctx.FromContext(r.Context()); u != nil {
		userID = &u.ID
	}
	if err := h.Service.Cancel(r.Context(), chi.URLParam(r, "id"), req.Reason, userID); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (h SaleHandler) receipt(w http.ResponseWriter, r *http.Request) {
	sale, err := h.Repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	html, err := h.Receipts.Render(r.Context(), sale)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func salePayload(s *domain.Sale) map[string]any {
	items := make([]map[string]any, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, map[string]any{
			"id":          it.ID,
			"productId":   it.ProductID,
			"productName": it.ProductName,
			"quantity":    it.Quantity,
			"unitPrice":   it.UnitPrice,
			"discount":    it.Discount,
			"tax":         it.Tax,
			"subtotal":    it.Subtotal,
		})
	}
	return map[string]any{
		"id":            s.ID,
		"date":          s.Date.Format("2006-01-02 15:04:05"),
		"total":         s.Total,
		"subtotal":      s.Subtotal,
		"tax":           s.Tax,
		"discountTotal": s.DiscountTotal,
		"amountPaid":    s.AmountPaid,
		"change":        s.Change,
		"userId":        s.UserID,
		"clientId":      s.ClientID,
		"receiptKind":   s.ReceiptKind,
		"status":        string(s.Status),
		"paymentMethod": s.PaymentMethod,
		"notes":         s.Notes,
		"items":         items,
	}
}
