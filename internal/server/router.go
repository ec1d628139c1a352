package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/JosueLDjota/ERP-Modern/internal/config"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP routes and middleware.
func NewRouter(cfg config.Config,
	logger *slog.Logger,
	health handler.HealthHandler,
	auth handler.AuthHandler,
	clients handler.ClientHandler,
	products handler.ProductHandler,
	suppliers handler.SupplierHandler,
	categories handler.CategoryHandler,
	discounts handler.DiscountHandler,
	sales handler.SaleHandler,
	inventory handler.InventoryHandler,
	notifications handler.NotificationHandler,
	dashboard handler.DashboardHandler,
	settings handler.SettingsHandler,
	company handler.CompanyHandler,
	backups handler.BackupHandler,
	audit handler.AuditHandler,
	export handler.ExportHandler,
	users handler.UserHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health.RegisterRoutes(r)
	auth.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.JWTSecret))
		// cashier-level (cashier/manager/admin)
		pr.Group(func(sr chi.Router) {
			sr.Use(RequireRole(domain.RoleAdmin, domain.RoleManager, domain.RoleCashier))
			clients.RegisterRoutes(sr)
			products.RegisterRoutes(sr)
			categories.RegisterRoutes(sr)
			sales.RegisterRoutes(sr)
			notifications.RegisterRoutes(sr)
		})
		// manager-level (manager/admin)
		pr.Group(func(mr chi.Router) {
			mr.Use(RequireRole(domain.RoleAdmin, domain.RoleManager))
			suppliers.RegisterRoutes(mr)
			discounts.RegisterRoutes(mr)
			inventory.RegisterRoutes(mr)
			dashboard.RegisterRoutes(mr)
			settings.RegisterRoutes(mr)
			company.RegisterRoutes(mr)
			backups.RegisterRoutes(mr)
			audit.RegisterRoutes(mr)
			export.RegisterRoutes(mr)
		})
		// admin-only
		pr.Group(func(ar chi.Router) {
			ar.Use(RequireRole(domain.RoleAdmin))
			users.RegisterRoutes(ar)
		})
	})

	return r
}
