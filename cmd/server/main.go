package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JosueLDjota/ERP-Modern/internal/config"
	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/JosueLDjota/ERP-Modern/internal/handler"
	"github.com/JosueLDjota/ERP-Modern/internal/notify"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/JosueLDjota/ERP-Modern/internal/server"
	"github.com/JosueLDjota/ERP-Modern/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	if err := pg.InitSchema(ctx); err != nil {
		logger.Error("failed to init schema", "err", err)
		os.Exit(1)
	}

	// repositories
	userRepo := repository.UserRepository{DB: pg}
	clientRepo := repository.ClientRepository{DB: pg}
	productRepo := repository.ProductRepository{DB: pg}
	supplierRepo := repository.SupplierRepository{DB: pg}
	categoryRepo := repository.CategoryRepository{DB: pg}
	discountRepo := repository.DiscountRepository{DB: pg}
	settingsRepo := repository.SettingsRepository{DB: pg}
	inventoryRepo := repository.InventoryRepository{DB: pg}
	notificationRepo := repository.NotificationRepository{DB: pg}
	saleRepo := repository.SaleRepository{DB: pg}
	dashboardRepo := repository.DashboardRepository{DB: pg}
	companyRepo := repository.CompanyRepository{DB: pg}
	auditRepo := repository.AuditRepository{DB: pg}
	backupRepo := repository.BackupRepository{DB: pg}

	seeder := repository.Seeder{DB: pg, Logger: logger}
	if err := seeder.Run(ctx); err != nil {
		logger.Error("failed to seed defaults", "err", err)
		os.Exit(1)
	}

	// notification engine
	engine := notify.NewEngine(cfg.NotifyConfigPath, notificationRepo, logger)
	go engine.Run(ctx, productRepo)

	// services
	authSvc := service.AuthService{Config: cfg, Users: userRepo, Audit: auditRepo, Notifier: engine, Logger: logger}
	saleSvc := service.SaleService{Sales: saleRepo, Inventory: inventoryRepo, Clients: clientRepo, Notifier: engine, Logger: logger}
	receiptSvc := service.ReceiptService{Settings: settingsRepo, Company: companyRepo, Clients: clientRepo}

	// handlers
	healthHandler := handler.HealthHandler{DB: pg}
	authHandler := handler.AuthHandler{Service: &authSvc}
	clientHandler := handler.ClientHandler{Repo: clientRepo}
	productHandler := handler.ProductHandler{Repo: productRepo}
	supplierHandler := handler.SupplierHandler{Repo: supplierRepo}
	categoryHandler := handler.CategoryHandler{Repo: categoryRepo}
	discountHandler := handler.DiscountHandler{Repo: discountRepo}
	saleHandler := handler.SaleHandler{Service: saleSvc, Receipts: receiptSvc, Repo: saleRepo}
	inventoryHandler := handler.InventoryHandler{Repo: inventoryRepo}
	notificationHandler := handler.NotificationHandler{Engine: engine}
	dashboardHandler := handler.DashboardHandler{Repo: dashboardRepo}
	settingsHandler := handler.SettingsHandler{Repo: settingsRepo}
	companyHandler := handler.CompanyHandler{Repo: companyRepo}
	backupHandler := handler.BackupHandler{Repo: backupRepo, Audit: auditRepo, Notifier: engine}
	auditHandler := handler.AuditHandler{Repo: auditRepo}
	exportHandler := handler.ExportHandler{Products: productRepo, Clients: clientRepo}
	userHandler := handler.UserHandler{Repo: userRepo}

	router := server.NewRouter(cfg, logger,
		healthHandler, authHandler, clientHandler, productHandler, supplierHandler,
		categoryHandler, discountHandler, saleHandler, inventoryHandler, notificationHandler,
		dashboardHandler, settingsHandler, companyHandler, backupHandler, auditHandler,
		exportHandler, userHandler)

	engine.NotifySystemStarted(cfg.AppVersion)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
