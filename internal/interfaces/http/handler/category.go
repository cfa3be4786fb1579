package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/stemkits/backend/internal/application/catalog"
)

// CategoryHandler handles category endpoints for the storefront and the
// back office
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Browse lists active categories for the storefront
func (h *CategoryHandler) Browse(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context(), true)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// BrowseTree returns the active category tree for storefront navigation
func (h *CategoryHandler) BrowseTree(c *gin.Context) {
	tree, err := h.categoryService.Tree(c.Request.Context(), true)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tree)
}

// GetBySlug returns a category by its slug
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Missing slug")
		return
	}

	category, err := h.categoryService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// List lists all categories including inactive ones
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context(), false)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// Get returns a category by ID
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Create creates a category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// Update updates a category
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete removes an empty category
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
