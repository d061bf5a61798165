package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

//
// --- Department Handlers ---
//

type DepartmentInput struct {
	Name        string  `json:"name" binding:"required"`
	CategoryIDs []int64 `json:"categoryIds"`
}

// CreateDepartment is the handler for POST /v1/admin/departments
func (h *Handlers) CreateDepartment(c *gin.Context) {
	var input DepartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	department, err := h.Access.CreateDepartment(c, input.Name, input.CategoryIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"department": department})
}

// GetDepartments is the handler for GET /v1/departments
func (h *Handlers) GetDepartments(c *gin.Context) {
	departments, err := h.Access.ListDepartments(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

// GetDepartmentCategories is the handler for GET /v1/departments/:id/categories
func (h *Handlers) GetDepartmentCategories(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}

	categories, err := h.Access.DepartmentCategories(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetDepartmentItems is the handler for GET /v1/departments/:id/items
// The items this department may order: exactly those whose category is in
// the department's accessible set.
func (h *Handlers) GetDepartmentItems(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}

	items, err := h.Access.AllowedItems(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
