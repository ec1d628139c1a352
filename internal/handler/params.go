package handler

import (
	"net/http"
	"strconv"

	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/JosueLDjota/ERP-Modern/internal/service"
	"github.com/go-chi/chi/v5"
)

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func boolQuery(r *http.Request, key string) bool {
	switch r.URL.Query().Get(key) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func listFilter(r *http.Request) repository.ListFilter {
	switch r.URL.Query().Get("filter") {
	case "active":
		return repository.FilterActive
	case "inactive":
		return repository.FilterInactive
	}
	return repository.FilterAll
}

func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// deleteRequest reads the confirmation flags shared by every guarded delete.
func deleteRequest(r *http.Request) service.DeleteRequest {
	return service.DeleteRequest{
		Confirmed:        boolQuery(r, "confirm"),
		Deactivate:       boolQuery(r, "deactivate"),
		CascadeConfirmed: boolQuery(r, "cascade"),
	}
}
