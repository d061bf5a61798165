package handlers

import (
	"net/http"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/repository"
	"github.com/amirahs/stockroom-golang/internal/service"
	"github.com/gin-gonic/gin"
)

// Handlers struct holds all dependencies for our handlers.
// Business rules live in the service layer; handlers only bind input,
// call a service and translate the result to HTTP.
type Handlers struct {
	Inventory *service.InventoryService
	Catalog   *service.CategoryService
	Access    *service.AccessService
	Orders    *service.OrderService
	Reports   *service.ReportService

	Users         repository.UserRepository
	Notifications repository.NotificationRepository
	Logs          repository.LogRepository
}

// respondError maps a service error onto the right HTTP status. Anything
// without a known code is a 500 with a generic message, never the raw error.
func respondError(c *gin.Context, err error) {
	code := apperror.GetCode(err)
	status := http.StatusInternalServerError
	message := "Something went wrong"

	switch code {
	case apperror.CodeValidation:
		status = http.StatusBadRequest
		message = err.Error()
	case apperror.CodeNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case apperror.CodePermission:
		status = http.StatusForbidden
		message = err.Error()
	case apperror.CodeInvalidState:
		status = http.StatusConflict
		message = err.Error()
	}

	c.JSON(status, gin.H{"error": message})
}

// currentUserID pulls the authenticated user's ID set by the auth middleware.
func currentUserID(c *gin.Context) int64 {
	userID_raw, _ := c.Get("userID")
	return userID_raw.(int64)
}
