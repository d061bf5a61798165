package handlers

import (
	"net/http"
	"strconv"

	"github.com/amirahs/stockroom-golang/internal/service"
	"github.com/gin-gonic/gin"
)

//
// --- Inventory Item Handlers ---
//

type ItemInput struct {
	Name       string `json:"name" binding:"required"`
	Quantity   int    `json:"quantity" binding:"gte=0"`
	CategoryID *int64 `json:"categoryId"`
}

// CreateItem is the handler for POST /v1/items
func (h *Handlers) CreateItem(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Create Through the Service ---
	// The service validates the category and writes the audit trail.
	item, err := h.Inventory.CreateItem(c, currentUserID(c), service.ItemInput{
		Name:       input.Name,
		Quantity:   input.Quantity,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// GetMyItems is the handler for GET /v1/items?sort=name
// Valid sort keys: id (default), name, quantity, category. The response
// also carries the low-stock ids so the dashboard can flag them inline.
func (h *Handlers) GetMyItems(c *gin.Context) {
	userID := currentUserID(c)
	items, err := h.Inventory.ListItems(c, userID, c.DefaultQuery("sort", "id"))
	if err != nil {
		respondError(c, err)
		return
	}

	low, err := h.Reports.LowStock(c, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	lowStockIDs := make([]int64, 0, len(low))
	for _, item := range low {
		lowStockIDs = append(lowStockIDs, item.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"items":         items,
		"lowStockIds":   lowStockIDs,
		"lowStockCount": len(lowStockIDs),
	})
}

// GetItem is the handler for GET /v1/items/:id
func (h *Handlers) GetItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, err := h.Inventory.GetItem(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UpdateItem is the handler for PUT /v1/items/:id
func (h *Handlers) UpdateItem(c *gin.Context) {
	// 1. --- Get IDs & Input ---
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}
	var input ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Update Through the Service ---
	// Ownership is checked there; editing someone else's item is a 403.
	item, err := h.Inventory.UpdateItem(c, currentUserID(c), id, service.ItemInput{
		Name:       input.Name,
		Quantity:   input.Quantity,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem is the handler for DELETE /v1/items/:id
func (h *Handlers) DeleteItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	if err := h.Inventory.DeleteItem(c, currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

type BulkQuantityInput struct {
	Updates []struct {
		ItemID      int64 `json:"itemId" binding:"required"`
		NewQuantity int   `json:"newQuantity"`
	} `json:"updates" binding:"required"`
}

// BulkUpdateQuantities is the handler for POST /v1/items/bulk-quantity
// The whole batch is applied in one transaction: one bad row rejects it all.
func (h *Handlers) BulkUpdateQuantities(c *gin.Context) {
	var input BulkQuantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make([]service.QuantityUpdate, 0, len(input.Updates))
	for _, u := range input.Updates {
		updates = append(updates, service.QuantityUpdate{ItemID: u.ItemID, NewQuantity: u.NewQuantity})
	}

	if err := h.Inventory.BulkUpdateQuantities(c, currentUserID(c), updates); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quantities updated"})
}
