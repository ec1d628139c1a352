package handler

import (
	"net/http"

	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler struct {
	Repo repository.DashboardRepository
}

func (h DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/summary", h.summary)
	r.Get("/dashboard/sales/monthly", h.monthly)
	r.Get("/dashboard/sales/daily", h.daily)
	r.Get("/dashboard/low-stock", h.lowStock)
}

func (h DashboardHandler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.Repo.Summary(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"totalSales":      s.TotalSales,
		"monthlySales":    s.MonthlySales,
		"dailySales":      s.DailySales,
		"totalProducts":   s.TotalProducts,
		"outOfStock":      s.OutOfStock,
		"totalClients":    s.TotalClients,
		"newClientsMonth": s.NewClientsMonth,
		"bestSeller":      s.BestSeller,
		"bestSellerQty":   s.BestSellerQty,
	})
}

func (h DashboardHandler) monthly(w http.ResponseWriter, r *http.Request) {
	points, err := h.Repo.MonthlySeries(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seriesPayload(points))
}

func (h DashboardHandler) daily(w http.ResponseWriter, r *http.Request) {
	points, err := h.Repo.DailySeries(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seriesPayload(points))
}

func (h DashboardHandler) lowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.LowStockList(r.Context(), intQuery(r, "floor", 10))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, row := range items {
		resp = append(resp, map[string]any{"name": row.Name, "stock": row.Stock})
	}
	writeJSON(w, http.StatusOK, resp)
}

func seriesPayload(points []repository.SalesPoint) []map[string]any {
	resp := make([]map[string]any, 0, len(points))
	for _, p := range points {
		resp = append(resp, map[string]any{"label": p.Label, "amount": p.Amount})
	}
	return resp
}
