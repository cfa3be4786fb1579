package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/catalog"
	"github.com/stemkits/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductImageRepository implements catalog.ProductImageRepository using GORM
type GormProductImageRepository struct {
	db *gorm.DB
}

// NewGormProductImageRepository creates a new GormProductImageRepository
func NewGormProductImageRepository(db *gorm.DB) *GormProductImageRepository {
	return &GormProductImageRepository{db: db}
}

// FindByID finds an image by its ID
func (r *GormProductImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductImage, error) {
	var image catalog.ProductImage
	if err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &image, nil
}

// FindByProduct finds all images for a product ordered by position
func (r *GormProductImageRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductImage, error) {
	var images []catalog.ProductImage
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("position ASC, created_at ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// Save creates or updates an image record
func (r *GormProductImageRepository) Save(ctx context.Context, image *catalog.ProductImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

// Delete deletes an image record
func (r *GormProductImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ProductImage{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByProduct deletes all image records for a product
func (r *GormProductImageRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&catalog.ProductImage{}, "product_id = ?", productID).Error
}

var _ catalog.ProductImageRepository = (*GormProductImageRepository)(nil)
