package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/catalog"
	"github.com/stemkits/backend/internal/domain/shared"
)

// ObjectStorageService defines the interface for object storage
// operations, implemented by the infrastructure layer (S3-compatible).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ImageServiceConfig holds configuration for the image service
type ImageServiceConfig struct {
	UploadURLExpiry      time.Duration
	DownloadURLExpiry    time.Duration
	MaxImagesPerProduct  int
	MaxImageSizeBytes    int64
}

// DefaultImageServiceConfig returns the default configuration
func DefaultImageServiceConfig() ImageServiceConfig {
	return ImageServiceConfig{
		UploadURLExpiry:     15 * time.Minute,
		DownloadURLExpiry:   1 * time.Hour,
		MaxImagesPerProduct: 10,
		MaxImageSizeBytes:   10 << 20,
	}
}

// ImageService handles product image uploads through presigned URLs
type ImageService struct {
	imageRepo   catalog.ProductImageRepository
	productRepo catalog.ProductRepository
	storage     ObjectStorageService
	config      ImageServiceConfig
}

// NewImageService creates a new ImageService
func NewImageService(
	imageRepo catalog.ProductImageRepository,
	productRepo catalog.ProductRepository,
	storage ObjectStorageService,
) *ImageService {
	return &ImageService{
		imageRepo:   imageRepo,
		productRepo: productRepo,
		storage:     storage,
		config:      DefaultImageServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *ImageService) SetConfig(config ImageServiceConfig) {
	s.config = config
}

// InitiateUpload records an image and returns a presigned upload URL
func (s *ImageService) InitiateUpload(ctx context.Context, req InitiateImageUploadRequest) (*InitiateImageUploadResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	images, err := s.imageRepo.FindByProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if len(images) >= s.config.MaxImagesPerProduct {
		return nil, shared.NewDomainError("IMAGE_LIMIT_EXCEEDED",
			fmt.Sprintf("Maximum %d images per product allowed", s.config.MaxImagesPerProduct))
	}
	if req.SizeBytes > s.config.MaxImageSizeBytes {
		return nil, shared.NewDomainError("IMAGE_TOO_LARGE",
			fmt.Sprintf("Images cannot exceed %d bytes", s.config.MaxImageSizeBytes))
	}

	storageKey := s.storageKey(req.ProductID, req.FileName)
	image, err := catalog.NewProductImage(req.ProductID, storageKey, req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return nil, err
	}
	if req.AltText != "" {
		if err := image.SetAltText(req.AltText); err != nil {
			return nil, err
		}
	}
	image.SetPosition(len(images))

	if err := s.imageRepo.Save(ctx, image); err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		_ = s.imageRepo.Delete(ctx, image.ID)
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &InitiateImageUploadResponse{
		ImageID:   image.ID,
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

// ListByProduct returns a product's images with presigned download URLs
func (s *ImageService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]ProductImageResponse, error) {
	images, err := s.imageRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductImageResponse, 0, len(images))
	for i := range images {
		url, _, err := s.storage.GenerateDownloadURL(ctx, images[i].StorageKey, s.config.DownloadURLExpiry)
		if err != nil {
			url = ""
		}
		responses = append(responses, ToProductImageResponse(&images[i], url))
	}
	return responses, nil
}

// Delete removes an image record and its stored object
func (s *ImageService) Delete(ctx context.Context, id uuid.UUID) error {
	image, err := s.imageRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.imageRepo.Delete(ctx, id); err != nil {
		return err
	}
	// Best effort; an orphaned object is reclaimed by bucket lifecycle rules.
	_ = s.storage.DeleteObject(ctx, image.StorageKey)
	return nil
}

// DeleteByProduct removes every image for a product
func (s *ImageService) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	images, err := s.imageRepo.FindByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.imageRepo.DeleteByProduct(ctx, productID); err != nil {
		return err
	}
	for i := range images {
		_ = s.storage.DeleteObject(ctx, images[i].StorageKey)
	}
	return nil
}

func (s *ImageService) storageKey(productID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("products/%s/%s%s", productID, uuid.New(), ext)
}
