package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/stemkits/backend/internal/application/catalog"
)

// ProductHandler handles product endpoints for the storefront and the
// back office
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	imageService   *catalogapp.ImageService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService, imageService *catalogapp.ImageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		imageService:   imageService,
	}
}

// Browse lists published products for the storefront
func (h *ProductHandler) Browse(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	products, total, err := h.productService.Browse(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// GetBySlug returns a product by its slug
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Missing slug")
		return
	}

	product, err := h.productService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List lists products for the back office regardless of status
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// ListLowStock lists products at or below their low stock threshold
func (h *ProductHandler) ListLowStock(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	products, err := h.productService.ListLowStock(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Get returns a product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create creates a product in draft status
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update updates a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Publish makes a product visible on the storefront
func (h *ProductHandler) Publish(c *gin.Context) {
	h.lifecycle(c, h.productService.Publish)
}

// Archive removes a product from the storefront
func (h *ProductHandler) Archive(c *gin.Context) {
	h.lifecycle(c, h.productService.Archive)
}

// AdjustStock applies a relative stock adjustment
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req catalogapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a draft or archived product and its images
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.imageService.DeleteByProduct(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// InitiateImageUpload returns a presigned URL for uploading a product image
func (h *ProductHandler) InitiateImageUpload(c *gin.Context) {
	var req catalogapp.InitiateImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.imageService.InitiateUpload(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListImages lists a product's images
func (h *ProductHandler) ListImages(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	images, err := h.imageService.ListByProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, images)
}

// DeleteImage removes a single product image
func (h *ProductHandler) DeleteImage(c *gin.Context) {
	imageID, ok := parseParamUUID(c, "image_id")
	if !ok {
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), imageID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ProductHandler) lifecycle(c *gin.Context, op func(context.Context, uuid.UUID) (*catalogapp.ProductResponse, error)) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	product, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
