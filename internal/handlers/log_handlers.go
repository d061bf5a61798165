package handlers

import (
	"net/http"
	"strconv"

	"github.com/amirahs/stockroom-golang/internal/repository"
	"github.com/gin-gonic/gin"
)

//
// --- Log Handlers (Admin-Only) ---
//

// pageParam reads ?page=N, defaulting to the first page.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// GetAuditLogs is the handler for GET /v1/admin/audit-logs?page=1
// Newest first, 20 per page. Each entry carries a JSON snapshot of the item
// at mutation time, so entries stay meaningful after the item is deleted.
func (h *Handlers) GetAuditLogs(c *gin.Context) {
	page := pageParam(c)
	logs, err := h.Logs.ListAuditLogs(c, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":     page,
		"pageSize": repository.LogsPageSize,
		"logs":     logs,
	})
}

// GetInventoryLogs is the handler for GET /v1/admin/inventory-logs?page=1
func (h *Handlers) GetInventoryLogs(c *gin.Context) {
	page := pageParam(c)
	logs, err := h.Logs.ListInventoryLogs(c, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":     page,
		"pageSize": repository.LogsPageSize,
		"logs":     logs,
	})
}
