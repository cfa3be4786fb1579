package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
)

// ProductImage is an object-storage-backed image attached to a product.
// The binary itself lives in the object store; this entity tracks the key
// and display metadata.
type ProductImage struct {
	shared.BaseEntity
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	StorageKey  string    `gorm:"type:varchar(500);not null"`
	FileName    string    `gorm:"type:varchar(255);not null"`
	ContentType string    `gorm:"type:varchar(100)"`
	SizeBytes   int64     `gorm:"not null;default:0"`
	AltText     string    `gorm:"type:varchar(255)"`
	Position    int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductImage) TableName() string {
	return "product_images"
}

// allowed image content types for upload validation
var allowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// NewProductImage creates a new product image record
func NewProductImage(productID uuid.UUID, storageKey, fileName, contentType string, sizeBytes int64) (*ProductImage, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if strings.TrimSpace(storageKey) == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if contentType != "" && !allowedImageContentTypes[contentType] {
		return nil, shared.NewDomainError("UNSUPPORTED_CONTENT_TYPE", "Only JPEG, PNG, WebP, and GIF images are supported")
	}
	if sizeBytes < 0 {
		return nil, shared.NewDomainError("INVALID_SIZE", "Size cannot be negative")
	}

	return &ProductImage{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		StorageKey:  storageKey,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   sizeBytes,
	}, nil
}

// SetAltText sets the accessibility alt text
func (i *ProductImage) SetAltText(alt string) error {
	if len(alt) > 255 {
		return shared.NewDomainError("INVALID_ALT_TEXT", "Alt text cannot exceed 255 characters")
	}
	i.AltText = alt
	i.UpdatedAt = time.Now()
	return nil
}

// SetPosition sets the gallery position
func (i *ProductImage) SetPosition(position int) {
	i.Position = position
	i.UpdatedAt = time.Now()
}

// ProductImageRepository defines the interface for product image persistence
type ProductImageRepository interface {
	// FindByID finds an image by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductImage, error)

	// FindByProduct finds all images for a product ordered by position
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductImage, error)

	// Save creates or updates an image record
	Save(ctx context.Context, image *ProductImage) error

	// Delete deletes an image record
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByProduct deletes all image records for a product
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}
