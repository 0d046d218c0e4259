package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/cache"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/handler"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/middleware"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/reconcile"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/repository"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/service"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/ws"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/database"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/logger"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		logger.Get().Warn(".env file not found")
	}
	log := logger.Get()

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Supplier{},
		&model.Item{},
		&model.Transaction{},
		&model.Depreciation{},
		&model.CostItemDefinition{},
		&model.LogBookEntry{},
	)

	// 3. Seed admin user and laundry price list
	seedDefaults(db)

	// 4. WebSocket hub and in-process change broker
	wsHub := ws.NewHub()
	go wsHub.Run()
	broker := reconcile.NewBroker()

	// 5. Repositories
	itemRepo := repository.NewItemRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	depRepo := repository.NewDepreciationRepo(db)
	logBookRepo := repository.NewLogBookRepo(db)
	defRepo := repository.NewCostDefinitionRepo(db)

	// Optional Redis cache for dashboard aggregates
	var statsCache service.StatsCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		statsCache = cache.New(addr, os.Getenv("REDIS_PASSWORD"), 30*time.Second)
		log.Info("dashboard stats cache enabled")
	}

	// 6. Reconciled item view: periodic authoritative refresh + optimistic patches
	interval := reconcile.DefaultInterval
	if raw := os.Getenv("SYNC_INTERVAL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			interval = time.Duration(secs) * time.Second
		}
	}
	itemView := service.NewItemView(itemRepo, broker, interval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go itemView.Run(ctx)

	// 7. Dependency Injection (Wiring Layers)
	reverseOnDelete := os.Getenv("LEDGER_REVERSE_ON_DELETE") == "true"
	ledgerService := service.NewLedgerService(itemRepo, txRepo, wsHub, broker, reverseOnDelete)
	itemService := service.NewItemService(itemRepo, wsHub, broker, itemView)
	masterService := service.NewMasterDataService(categoryRepo, supplierRepo)
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, wsHub)
	reportService := service.NewReportService(txRepo, supplierRepo, categoryRepo, itemView, statsCache)
	costService := service.NewCostControlService(logBookRepo, defRepo)
	depService := service.NewDepreciationService(depRepo, itemRepo)

	itemHandler := handler.NewItemHandler(itemService)
	txHandler := handler.NewTransactionHandler(ledgerService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	masterHandler := handler.NewMasterDataHandler(masterService)
	dashHandler := handler.NewDashboardHandler(reportService)
	reportHandler := handler.NewReportHandler(reportService)
	costHandler := handler.NewCostControlHandler(costService)
	depHandler := handler.NewDepreciationHandler(depService)

	// 8. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Ramayana Hotel Inventaris v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 9. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)
	protected.Get("/dashboard/low-stock", dashHandler.GetLowStock)
	protected.Get("/dashboard/overdue", dashHandler.GetOverdueBorrows)

	// Items
	protected.Get("/items", itemHandler.GetItems)
	protected.Get("/items/:id", itemHandler.GetItem)
	protected.Post("/items", middleware.RequireRole(model.RoleAdmin, model.RoleManager), itemHandler.CreateItem)
	protected.Put("/items/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), itemHandler.UpdateItem)
	protected.Delete("/items/:id", middleware.RequireRole(model.RoleAdmin), itemHandler.DeleteItem)

	// Transactions (ledger)
	protected.Get("/transactions", txHandler.GetTransactions)
	protected.Get("/transactions/:id", txHandler.GetTransaction)
	protected.Post("/transactions", txHandler.CreateTransaction)
	protected.Put("/transactions/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), txHandler.UpdateTransaction)
	protected.Delete("/transactions/:id", middleware.RequireRole(model.RoleAdmin), txHandler.DeleteTransaction)

	// Master data
	protected.Get("/categories", masterHandler.GetCategories)
	protected.Post("/categories", middleware.RequireRole(model.RoleAdmin, model.RoleManager), masterHandler.CreateCategory)
	protected.Put("/categories/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), masterHandler.UpdateCategory)
	protected.Delete("/categories/:id", middleware.RequireRole(model.RoleAdmin), masterHandler.DeleteCategory)

	protected.Get("/suppliers", masterHandler.GetSuppliers)
	protected.Post("/suppliers", middleware.RequireRole(model.RoleAdmin, model.RoleManager), masterHandler.CreateSupplier)
	protected.Put("/suppliers/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), masterHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", middleware.RequireRole(model.RoleAdmin), masterHandler.DeleteSupplier)

	// Depreciation
	protected.Get("/depreciation", depHandler.GetAll)
	protected.Get("/depreciation/:id", depHandler.Get)
	protected.Post("/depreciation", middleware.RequireRole(model.RoleAdmin, model.RoleManager), depHandler.Create)
	protected.Put("/depreciation/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), depHandler.Update)
	protected.Delete("/depreciation/:id", middleware.RequireRole(model.RoleAdmin), depHandler.Delete)

	// Users (admin only)
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequireRole(model.RoleAdmin), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequireRole(model.RoleAdmin), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequireRole(model.RoleAdmin), userHandler.DeleteUser)

	// Reports
	protected.Get("/reports/items", reportHandler.ExportItems)
	protected.Get("/reports/transactions", reportHandler.ExportTransactions)
	protected.Get("/reports/suppliers", reportHandler.ExportSuppliers)
	protected.Get("/reports/categories", reportHandler.ExportCategories)

	// Cost control (admin/manager only, same guard as the original screen)
	costControl := protected.Group("/cost-control", middleware.RequireRole(model.RoleAdmin, model.RoleManager))
	costControl.Get("/report", costHandler.GetReport)
	costControl.Get("/report/export", costHandler.ExportReportCSV)
	costControl.Get("/report/export-xlsx", costHandler.ExportReportXLSX)
	costControl.Get("/prices", costHandler.GetDefinitions)
	costControl.Put("/prices/:id", costHandler.SetPrice)
	costControl.Post("/prices/import", costHandler.ImportPrices)
	costControl.Get("/log-book", costHandler.GetEntries)
	costControl.Post("/log-book", costHandler.CreateEntry)
	costControl.Put("/log-book/:id", costHandler.UpdateEntry)
	costControl.Delete("/log-book/:id", costHandler.DeleteEntry)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 10. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancel()
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Info("Server exited")
}

// seedDefaults creates the default admin user and the laundry price list if
// they don't exist yet.
func seedDefaults(db *gorm.DB) {
	log := logger.Get()
	userRepo := repository.NewUserRepo(db)
	defRepo := repository.NewCostDefinitionRepo(db)

	if err := defRepo.SeedDefaults(); err != nil {
		log.Warnf("Failed to seed laundry price list: %v", err)
	}

	if _, err := userRepo.FindByUsername("admin"); err != nil {
		admin := &model.User{
			Username: "admin",
			Email:    "admin@ramayanahotel.test",
			FullName: "Administrator",
			Role:     model.RoleAdmin,
			IsActive: true,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Warnf("Failed to hash admin password: %v", err)
			return
		}
		if err := userRepo.Create(admin); err != nil {
			log.Warnf("Failed to create admin user: %v", err)
		} else {
			log.Info("Admin user created: admin / admin123")
		}
	}
}
