package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/catalog"
)

// =============================================================================
// Category DTOs
// =============================================================================

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Slug        string     `json:"slug" binding:"required,min=1,max=100"`
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Description string     `json:"description" binding:"max=1000"`
	ParentID    *uuid.UUID `json:"parent_id"`
	SortOrder   *int       `json:"sort_order"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	ParentID    *uuid.UUID `json:"parent_id"`
	SortOrder   *int       `json:"sort_order"`
	IsActive    *bool      `json:"is_active"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
	SortOrder   int        `json:"sort_order"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CategoryTreeResponse is a category with its children nested
type CategoryTreeResponse struct {
	CategoryResponse
	Children []CategoryTreeResponse `json:"children"`
}

// ToCategoryResponse converts a domain category to a response
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// =============================================================================
// Product DTOs
// =============================================================================

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	SKU               string           `json:"sku" binding:"required,min=1,max=50"`
	Slug              string           `json:"slug" binding:"required,min=1,max=100"`
	Name              string           `json:"name" binding:"required,min=1,max=200"`
	Description       string           `json:"description"`
	Brand             string           `json:"brand" binding:"max=100"`
	CategoryID        *uuid.UUID       `json:"category_id"`
	Price             decimal.Decimal  `json:"price" binding:"required"`
	CompareAtPrice    *decimal.Decimal `json:"compare_at_price"`
	AgeMin            *int             `json:"age_min"`
	AgeMax            *int             `json:"age_max"`
	StockQuantity     *int             `json:"stock_quantity"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	Featured          bool             `json:"featured"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description       *string          `json:"description"`
	Brand             *string          `json:"brand" binding:"omitempty,max=100"`
	CategoryID        *uuid.UUID       `json:"category_id"`
	Price             *decimal.Decimal `json:"price"`
	CompareAtPrice    *decimal.Decimal `json:"compare_at_price"`
	AgeMin            *int             `json:"age_min"`
	AgeMax            *int             `json:"age_max"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	Featured          *bool            `json:"featured"`
}

// AdjustStockRequest represents a manual stock adjustment
type AdjustStockRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                uuid.UUID       `json:"id"`
	SKU               string          `json:"sku"`
	Slug              string          `json:"slug"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Brand             string          `json:"brand"`
	CategoryID        *uuid.UUID      `json:"category_id"`
	Price             decimal.Decimal `json:"price"`
	CompareAtPrice    decimal.Decimal `json:"compare_at_price"`
	DiscountPercent   int             `json:"discount_percent"`
	AgeMin            int             `json:"age_min"`
	AgeMax            int             `json:"age_max"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	InStock           bool            `json:"in_stock"`
	LowStock          bool            `json:"low_stock"`
	Status            string          `json:"status"`
	Featured          bool            `json:"featured"`
	SortOrder         int             `json:"sort_order"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Version           int             `json:"version"`
}

// ProductListResponse represents a list item for products
type ProductListResponse struct {
	ID              uuid.UUID       `json:"id"`
	SKU             string          `json:"sku"`
	Slug            string          `json:"slug"`
	Name            string          `json:"name"`
	Brand           string          `json:"brand"`
	CategoryID      *uuid.UUID      `json:"category_id"`
	Price           decimal.Decimal `json:"price"`
	CompareAtPrice  decimal.Decimal `json:"compare_at_price"`
	DiscountPercent int             `json:"discount_percent"`
	StockQuantity   int             `json:"stock_quantity"`
	InStock         bool            `json:"in_stock"`
	Status          string          `json:"status"`
	Featured        bool            `json:"featured"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=draft active archived"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	Featured   *bool  `form:"featured"`
	InStock    *bool  `form:"in_stock"`
	Age        *int   `form:"age" binding:"omitempty,min=0,max=18"`
	PriceMin   string `form:"price_min"`
	PriceMax   string `form:"price_max"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain product to a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Slug:              p.Slug,
		Name:              p.Name,
		Description:       p.Description,
		Brand:             p.Brand,
		CategoryID:        p.CategoryID,
		Price:             p.Price,
		CompareAtPrice:    p.CompareAtPrice,
		DiscountPercent:   p.DiscountPercent(),
		AgeMin:            p.AgeMin,
		AgeMax:            p.AgeMax,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		InStock:           p.InStock(),
		LowStock:          p.IsLowStock(),
		Status:            string(p.Status),
		Featured:          p.Featured,
		SortOrder:         p.SortOrder,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		Version:           p.GetVersion(),
	}
}

// ToProductListResponse converts a domain product to a list item
func ToProductListResponse(p *catalog.Product) ProductListResponse {
	return ProductListResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Slug:            p.Slug,
		Name:            p.Name,
		Brand:           p.Brand,
		CategoryID:      p.CategoryID,
		Price:           p.Price,
		CompareAtPrice:  p.CompareAtPrice,
		DiscountPercent: p.DiscountPercent(),
		StockQuantity:   p.StockQuantity,
		InStock:         p.InStock(),
		Status:          string(p.Status),
		Featured:        p.Featured,
	}
}

// =============================================================================
// Product image DTOs
// =============================================================================

// InitiateImageUploadRequest starts a presigned image upload
type InitiateImageUploadRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	FileName    string    `json:"file_name" binding:"required,max=255"`
	ContentType string    `json:"content_type" binding:"required"`
	SizeBytes   int64     `json:"size_bytes" binding:"required,min=1"`
	AltText     string    `json:"alt_text" binding:"max=255"`
}

// InitiateImageUploadResponse carries the presigned URL for the client
type InitiateImageUploadResponse struct {
	ImageID   uuid.UUID `json:"image_id"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProductImageResponse represents an image in API responses
type ProductImageResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	AltText     string    `json:"alt_text"`
	Position    int       `json:"position"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToProductImageResponse converts a domain image to a response
func ToProductImageResponse(i *catalog.ProductImage, url string) ProductImageResponse {
	return ProductImageResponse{
		ID:          i.ID,
		ProductID:   i.ProductID,
		FileName:    i.FileName,
		ContentType: i.ContentType,
		SizeBytes:   i.SizeBytes,
		AltText:     i.AltText,
		Position:    i.Position,
		URL:         url,
		CreatedAt:   i.CreatedAt,
	}
}
