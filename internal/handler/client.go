package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/JosueLDjota/ERP-Modern/internal/service"
	"github.com/JosueLDjota/ERP-Modern/internal/validate"
	"github.com/go-chi/chi/v5"
)

type ClientHandler struct {
	Repo repository.ClientRepository
}

func (h ClientHandler) RegisterRoutes(r chi.Router) {
	r.Get("/clients", h.list)
	r.Get("/clients/{id}", h.get)
	r.Post("/clients", h.upsert)
	r.Delete("/clients/{id}", h.delete)
}

func (h ClientHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), listFilter(r), r.URL.Query().Get("q"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, c := range items {
		resp = append(resp, clientPayload(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ClientHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	c, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientPayload(*c))
}

func (h ClientHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          int64   `json:"id"`
		FirstName   string  `json:"firstName"`
		LastName    string  `json:"lastName"`
		NationalID  *string `json:"nationalId"`
		Phone       string  `json:"phone"`
		Email       string  `json:"email"`
		Address     string  `json:"address"`
		Active      *bool   `json:"active"`
		Tier        string  `json:"tier"`
		CreditLimit float64 `json:"creditLimit"`
		Notes       string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	nationalID := ""
	if req.NationalID != nil {
		nationalID = strings.TrimSpace(*req.NationalID)
	}
	form := (&validate.Form{}).
		Required("firstName", req.FirstName).
		Required("lastName", req.LastName).
		Email("email", req.Email).
		NationalID("nationalId", nationalID)
	if err := form.Err(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	saved, err := h.Repo.Save(r.Context(), domain.Client{
		ID:          req.ID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		NationalID:  req.NationalID,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Active:      active,
		Tier:        req.Tier,
		CreditLimit: req.CreditLimit,
		Notes:       req.Notes,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientPayload(*saved))
}

func (h ClientHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	flow := service.DeleteFlow[int64]{
		CountDependents: h.Repo.CountSales,
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

func clientPayload(c domain.Client) map[string]any {
	return map[string]any{
		"id":           c.ID,
		"firstName":    c.FirstName,
		"lastName":     c.LastName,
		"nationalId":   c.NationalID,
		"phone":        c.Phone,
		"email":        c.Email,
		"address":      c.Address,
		"registeredAt": c.RegisteredAt.Format("2006-01-02"),
		"active":       c.Active,
		"tier":         c.Tier,
		"creditLimit":  c.CreditLimit,
		"notes":        c.Notes,
	}
}
