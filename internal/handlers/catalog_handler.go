package handlers

import (
	"net/http"

	"task-manager/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the category and tag endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type catalogNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.Categories()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory handles POST /api/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req catalogNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required."})
		return
	}

	category, err := h.catalog.CreateCategory(p, req.Name)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// DeleteCategory handles DELETE /api/categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteCategory(p, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTags handles GET /api/tags
func (h *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := h.catalog.Tags()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// CreateTag handles POST /api/tags
func (h *CatalogHandler) CreateTag(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req catalogNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tag name is required."})
		return
	}

	tag, err := h.catalog.CreateTag(p, req.Name)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// DeleteTag handles DELETE /api/tags/:id
func (h *CatalogHandler) DeleteTag(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteTag(p, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
