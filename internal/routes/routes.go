package routes

import (
	"net/http"

	"github.com/amirahs/stockroom-golang/internal/handlers"
	"github.com/amirahs/stockroom-golang/internal/middleware"
	"github.com/gin-gonic/gin"
)

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware())
		{
			auth.GET("/me", h.GetMe)

			// --- Inventory Items ---
			auth.POST("/items", h.CreateItem)
			auth.GET("/items", h.GetMyItems)
			auth.POST("/items/bulk-quantity", h.BulkUpdateQuantities)
			auth.GET("/items/:id", h.GetItem)
			auth.PUT("/items/:id", h.UpdateItem)
			auth.DELETE("/items/:id", h.DeleteItem)

			// --- Categories (Read) ---
			auth.GET("/categories", h.GetCategoryTree)
			auth.GET("/categories/:id/items", h.GetCategoryItems)

			// --- Departments (Read) ---
			auth.GET("/departments", h.GetDepartments)
			auth.GET("/departments/:id/categories", h.GetDepartmentCategories)
			auth.GET("/departments/:id/items", h.GetDepartmentItems)

			// --- Orders ---
			auth.POST("/orders", h.CreateOrder)
			auth.GET("/orders", h.GetOrders)
			auth.GET("/orders/:id", h.GetOrder)
			auth.POST("/orders/:id/confirm", h.ConfirmOrder)

			// --- Reports ---
			auth.GET("/reports/summary", h.GetSummary)
			auth.GET("/reports/low-stock", h.GetLowStock)

			// --- Notifications ---
			auth.GET("/notifications", h.GetMyNotifications)
			auth.PATCH("/notifications/:id/read", h.MarkNotificationAsRead)

			// --- Admin Routes (Admin Role Required) ---
			admin := auth.Group("/admin")
			admin.Use(middleware.AdminMiddleware(h.Users))
			{
				// Category mutations reshape the shared catalog, so
				// they are admin-only.
				admin.POST("/categories", h.CreateCategory)
				admin.PUT("/categories/:id", h.UpdateCategory)
				admin.DELETE("/categories/:id", h.DeleteCategory)

				admin.POST("/departments", h.CreateDepartment)

				admin.GET("/audit-logs", h.GetAuditLogs)
				admin.GET("/inventory-logs", h.GetInventoryLogs)
			}
		}
	}

	return router
}
