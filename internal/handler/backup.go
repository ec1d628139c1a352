package handler

import (
	"encoding/json"
	"net/http"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/notify"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/JosueLDjota/ERP-Modern/internal/server/authctx"
	"github.com/go-chi/chi/v5"
)

// BackupHandler registers backups taken by the operator tooling; the byte
// copy itself runs outside the service.
type BackupHandler struct {
	Repo     repository.BackupRepository
	Audit    repository.AuditRepository
	Notifier *notify.Engine
}

func (h BackupHandler) RegisterRoutes(r chi.Router) {
	r.Get("/backups", h.list)
	r.Post("/backups", h.create)
}

func (h BackupHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), intQuery(r, "limit", 50))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, b := range items {
		resp = append(resp, map[string]any{
			"id":        b.ID,
			"filename":  b.Filename,
			"path":      b.Path,
			"size":      b.Size,
			"userId":    b.UserID,
			"notes":     b.Notes,
			"automatic": b.Automatic,
			"createdAt": b.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h BackupHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename  string `json:"filename"`
		Path      string `json:"path"`
		Size      int64  `json:"size"`
		Notes     string `json:"notes"`
		Automatic bool   `json:"automatic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Filename == "" {
		writeError(w, http.StatusBadRequest, "filename is required")
		return
	}

	var userID *int64
	if u := authctx.FromContext(r.Context()); u != nil {
		userID = &u.ID
	}
	b, err := h.Repo.Create(r.Context(), domain.Backup{
		Filename:  req.Filename,
		Path:      req.Path,
		Size:      req.Size,
		UserID:    userID,
		Notes:     req.Notes,
		Automatic: req.Automatic,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}

	_ = h.Audit.Record(r.Context(), domain.AuditEntry{
		UserID:      userID,
		Action:      "backup",
		Module:      "backups",
		Description: "backup registered: " + b.Filename,
		IPAddress:   r.RemoteAddr,
		UserAgent:   r.UserAgent(),
	})
	if h.Notifier != nil {
		h.Notifier.NotifyBackupCompleted(b.Filename)
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        b.ID,
		"filename":  b.Filename,
		"createdAt": b.CreatedAt.Format("2006-01-02 15:04:05"),
	})
}
