package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --- Reporting Handlers ---
//

// GetSummary is the handler for GET /v1/reports/summary
// Totals and per-category counts for the logged-in user's inventory.
func (h *Handlers) GetSummary(c *gin.Context) {
	summary, err := h.Reports.Summary(c, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetLowStock is the handler for GET /v1/reports/low-stock
func (h *Handlers) GetLowStock(c *gin.Context) {
	items, err := h.Reports.LowStock(c, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"threshold": h.Reports.Threshold(),
		"items":     items,
	})
}
