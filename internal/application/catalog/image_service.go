package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noorfashion/backend/internal/domain/catalog"
	"github.com/noorfashion/backend/internal/domain/shared"
)

// allowedImageContentTypes is the whitelist for product image uploads.
// SVG is excluded because it can carry scripts.
var allowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/avif": true,
}

// ImageStorage is the port for the object store that holds product images.
// Implemented by the S3 adapter in the infrastructure layer.
type ImageStorage interface {
	// GenerateUploadURL returns a presigned URL for a direct client upload
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// PublicURL returns the storefront-facing URL for a stored object
	PublicURL(storageKey string) string

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ImageService manages product image uploads. Admins request a presigned
// upload slot, push the bytes directly to storage, then confirm; on
// confirmation the image URL is attached to the product.
type ImageService struct {
	products     catalog.Repository
	storage      ImageStorage
	uploadExpiry time.Duration
	logger       *zap.Logger
}

// NewImageService creates a new ImageService
func NewImageService(products catalog.Repository, storage ImageStorage, logger *zap.Logger) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageService{
		products:     products,
		storage:      storage,
		uploadExpiry: 15 * time.Minute,
		logger:       logger,
	}
}

// InitiateUpload validates the request and returns a presigned upload slot
func (s *ImageService) InitiateUpload(ctx context.Context, productID uuid.UUID, fileName, contentType string) (*ImageUploadResponse, error) {
	if !allowedImageContentTypes[strings.ToLower(contentType)] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed for product images", contentType))
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	storageKey := s.generateStorageKey(productID, fileName)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, contentType, s.uploadExpiry)
	if err != nil {
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &ImageUploadResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload verifies the object landed in storage and attaches its
// public URL to the product. When primary is true the image becomes the
// product's main image.
func (s *ImageService) ConfirmUpload(ctx context.Context, productID uuid.UUID, storageKey string, primary bool) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, storageKey)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND",
			"File not found in storage. Please upload the file first.")
	}

	imageURL := s.storage.PublicURL(storageKey)
	if !containsString(product.Images, imageURL) {
		product.Images = append(product.Images, imageURL)
	}
	if primary || product.Image == "" {
		product.Image = imageURL
	}
	product.Touch()

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// RemoveImage detaches an image from the product and deletes the stored
// object. A storage delete failure is logged but does not fail the call;
// the object may already be gone.
func (s *ImageService) RemoveImage(ctx context.Context, productID uuid.UUID, storageKey string) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	imageURL := s.storage.PublicURL(storageKey)
	images := make([]string, 0, len(product.Images))
	for _, u := range product.Images {
		if u != imageURL {
			images = append(images, u)
		}
	}
	product.Images = images
	if product.Image == imageURL {
		product.Image = ""
		if len(images) > 0 {
			product.Image = images[0]
		}
	}
	product.Touch()

	if err := s.storage.DeleteObject(ctx, storageKey); err != nil {
		s.logger.Warn("failed to delete product image from storage",
			zap.String("product_id", productID.String()),
			zap.String("storage_key", storageKey),
			zap.Error(err))
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

func (s *ImageService) generateStorageKey(productID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("products/%s/%s%s", productID.String(), uuid.New().String(), ext)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
