package handlers

import (
	"net/http"
	"strconv"

	"github.com/amirahs/stockroom-golang/internal/service"
	"github.com/gin-gonic/gin"
)

//
// --- Order Handlers ---
//

type OrderInput struct {
	DepartmentID int64 `json:"departmentId" binding:"required"`
	Lines        []struct {
		ItemID   int64 `json:"itemId" binding:"required"`
		Quantity int   `json:"quantity" binding:"required"`
	} `json:"lines" binding:"required"`
}

// CreateOrder is the handler for POST /v1/orders
// Creates a draft. Every line is checked against the department's allowed
// item set; one bad line rejects the whole request.
func (h *Handlers) CreateOrder(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Create the Draft ---
	lines := make([]service.OrderLine, 0, len(input.Lines))
	for _, l := range input.Lines {
		lines = append(lines, service.OrderLine{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	order, err := h.Orders.Create(c, input.DepartmentID, currentUserID(c), lines)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ConfirmOrder is the handler for POST /v1/orders/:id/confirm
// Flips the draft to confirmed and decrements stock atomically. Confirming
// twice is a 409 and never decrements twice.
func (h *Handlers) ConfirmOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := h.Orders.Confirm(c, id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order confirmed",
		"order":   order,
	})
}

// GetOrders is the handler for GET /v1/orders
func (h *Handlers) GetOrders(c *gin.Context) {
	orders, err := h.Orders.List(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder is the handler for GET /v1/orders/:id
// Includes the order lines with item names.
func (h *Handlers) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	detail, err := h.Orders.Get(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
