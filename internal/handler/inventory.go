package handler

import (
	"encoding/json"
	"net/http"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/JosueLDjota/ERP-Modern/internal/server/authctx"
	"github.com/go-chi/chi/v5"
)

type InventoryHandler struct {
	Repo repository.InventoryRepository
}

func (h InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Post("/inventory/movements", h.record)
	r.Get("/inventory/movements/{id}", h.history)
}

func (h InventoryHandler) record(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int64  `json:"productId"`
		Kind      string `json:"kind"`
		Quantity  int    `json:"quantity"`
		Reason    string `json:"reason"`
		Reference string `json:"reference"`
		Notes     string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	kind := domain.MovementKind(req.Kind)
	switch kind {
	case domain.MovementIn, domain.MovementOut, domain.MovementAdjust:
	default:
		writeError(w, http.StatusBadRequest, "kind must be in, out or adjust")
		return
	}
	if req.Quantity < 0 || (kind != domain.MovementAdjust && req.Quantity == 0) {
		writeError(w, http.StatusBadRequest, "invalid quantity")
		return
	}

	var userID *int64
	if u := authctx.FromContext(r.Context()); u != nil {
		userID = &u.ID
	}
	m, err := h.Repo.RecordMovement(r.Context(), repository.MovementInput{
		ProductID: req.ProductID,
		Kind:      kind,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		Reference: req.Reference,
		UserID:    userID,
		Notes:     req.Notes,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, movementPayload(*m))
}

// history lists the most recent movements for a product id.
func (h InventoryHandler) history(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	items, err := h.Repo.History(r.Context(), id, intQuery(r, "limit", 50))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, m := range items {
		resp = append(resp, movementPayload(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

func movementPayload(m domain.InventoryMovement) map[string]any {
	return map[string]any{
		"id":          m.ID,
		"productId":   m.ProductID,
		"kind":        string(m.Kind),
		"quantity":    m.Quantity,
		"stockBefore": m.StockBefore,
		"stockAfter":  m.StockAfter,
		"reason":      m.Reason,
		"reference":   m.Reference,
		"userId":      m.UserID,
		"movedAt":     m.MovedAt.Format("2006-01-02 15:04:05"),
		"notes":       m.Notes,
	}
}
