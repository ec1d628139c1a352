package handler

import (
	"encoding/json"
	"net/http"

	"github.com/JosueLDjota/ERP-Modern/internal/notify"
	"github.com/go-chi/chi/v5"
)

// NotificationHandler exposes the engine's visible set, history and
// preferences to the delivery surface.
type NotificationHandler struct {
	Engine *notify.Engine
}

func (h NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/notifications", h.history)
	r.Get("/notifications/visible", h.visible)
	r.Get("/notifications/unread-count", h.unreadCount)
	r.Post("/notifications/read-all", h.markAllRead)
	r.Post("/notifications/{id}/dismiss", h.dismiss)
	r.Post("/notifications/{id}/click", h.click)
	r.Get("/notifications/config", h.getConfig)
	r.Put("/notifications/config", h.updateConfig)
}

func (h NotificationHandler) history(w http.ResponseWriter, r *http.Request) {
	items := h.Engine.History(intQuery(r, "limit", 0))
	resp := make([]map[string]any, 0, len(items))
	for _, t := range items {
		resp = append(resp, toastPayload(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h NotificationHandler) visible(w http.ResponseWriter, r *http.Request) {
	items := h.Engine.Visible()
	positions := notify.Layout(h.Engine.Config().Position,
		h.Engine.ScreenWidth, h.Engine.ScreenHeight, len(items))
	resp := make([]map[string]any, 0, len(items))
	for i, t := range items {
		p := toastPayload(t)
		p["x"] = positions[i].X
		p["y"] = positions[i].Y
		resp = append(resp, p)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"toasts": resp,
		"queued": h.Engine.QueuedCount(),
	})
}

func (h NotificationHandler) unreadCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"unread": h.Engine.UnreadCount()})
}

func (h NotificationHandler) markAllRead(w http.ResponseWriter, r *http.Request) {
	h.Engine.MarkAllRead(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h NotificationHandler) dismiss(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	h.Engine.Dismiss(id)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h NotificationHandler) click(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	h.Engine.Click(id)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h NotificationHandler) getConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Engine.Config())
}

func (h NotificationHandler) updateConfig(w http.ResponseWriter, r *http.Request) {
	// Decode over the current config so omitted fields keep their values.
	cfg := h.Engine.Config()
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	switch cfg.Position {
	case notify.AnchorTopRight, notify.AnchorBottomRight, notify.AnchorTopLeft:
	default:
		writeError(w, http.StatusBadRequest, "invalid position")
		return
	}
	h.Engine.UpdateConfig(cfg)
	writeJSON(w, http.StatusOK, cfg)
}

func toastPayload(t notify.Toast) map[string]any {
	return map[string]any{
		"id":        t.ID,
		"title":     t.Title,
		"message":   t.Message,
		"severity":  string(t.Severity),
		"icon":      t.Icon,
		"createdAt": t.CreatedAt.Format("2006-01-02 15:04:05"),
		"read":      t.Read,
		"actionRef": t.ActionRef,
	}
}
