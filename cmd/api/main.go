package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/amirahs/stockroom-golang/internal/database"
	"github.com/amirahs/stockroom-golang/internal/handlers"
	"github.com/amirahs/stockroom-golang/internal/repository"
	"github.com/amirahs/stockroom-golang/internal/routes"
	"github.com/amirahs/stockroom-golang/internal/service"
	"github.com/joho/godotenv"
)

const (
	defaultLowStockThreshold = 5
	defaultCheckInterval     = 15 * time.Minute
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// 1. --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 2. --- Repositories ---
	items := repository.NewMySQLItemRepository(db)
	categories := repository.NewMySQLCategoryRepository(db)
	departments := repository.NewMySQLDepartmentRepository(db)
	orders := repository.NewMySQLOrderRepository(db)
	logs := repository.NewMySQLLogRepository(db)
	users := repository.NewMySQLUserRepository(db)
	notifications := repository.NewMySQLNotificationRepository(db)
	tx := repository.NewSQLTxManager(db)

	// 3. --- Services ---
	threshold := intFromEnv("LOW_STOCK_THRESHOLD", defaultLowStockThreshold)
	notifier := service.NewNotifier(notifications, users)
	auditor := service.NewAuditor(logs, notifier)
	access := service.NewAccessService(departments, categories, items)

	app := &handlers.Handlers{
		Inventory: service.NewInventoryService(items, categories, tx, auditor),
		Catalog:   service.NewCategoryService(categories, items, tx),
		Access:    access,
		Orders:    service.NewOrderService(orders, items, access, tx, auditor),
		Reports:   service.NewReportService(items, threshold),

		Users:         users,
		Notifications: notifications,
		Logs:          logs,
	}

	// 4. --- Background Worker ---
	// Scans for low stock on a ticker and notifies item owners.
	interval := durationFromEnv("LOW_STOCK_CHECK_INTERVAL", defaultCheckInterval)
	watcher := service.NewLowStockWatcher(items, notifier, threshold, interval)
	go watcher.Run(context.Background())

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting Stockroom API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func intFromEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("WARNING: Invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return value
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("WARNING: Invalid %s=%q, using default %s", key, raw, fallback)
		return fallback
	}
	return value
}
