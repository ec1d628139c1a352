package handler

import (
	"encoding/json"
	"net/http"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/JosueLDjota/ERP-Modern/internal/validate"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler covers account administration.
type UserHandler struct {
	Repo repository.UserRepository
}

func (h UserHandler) RegisterRoutes(r chi.Router) {
	r.Post("/users", h.create)
	r.Get("/users/{id}", h.get)
}

func (h UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	form := (&validate.Form{}).
		Required("name", req.Name).
		Required("username", req.Username).
		Required("password", req.Password).
		Email("email", req.Email)
	if err := form.Err(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	role := domain.UserRole(req.Role)
	switch role {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleCashier:
	case "":
		role = domain.RoleCashier
	default:
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	u, err := h.Repo.Create(r.Context(), repository.CreateUserParams{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		Email:        req.Email,
		Phone:        req.Phone,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, userPayload(*u))
}

func (h UserHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	u, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userPayload(*u))
}

func userPayload(u domain.User) map[string]any {
	return map[string]any{
		"id":       u.ID,
		"name":     u.Name,
		"username": u.Username,
		"role":     string(u.Role),
		"email":    u.Email,
		"phone":    u.Phone,
		"active":   u.Active,
		"locked":   u.Locked,
	}
}
