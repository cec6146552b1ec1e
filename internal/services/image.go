package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alamlaptops/storefront/internal/api/middleware"
	appErrors "github.com/alamlaptops/storefront/internal/errors"
	"github.com/alamlaptops/storefront/internal/models"
	repository "github.com/alamlaptops/storefront/internal/repositories"
	"github.com/alamlaptops/storefront/internal/storage"
	"github.com/google/uuid"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type ImageService interface {
	Upload(ctx context.Context, productID uuid.UUID, filename string, r io.Reader) (*models.ProductImage, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type imageService struct {
	images        repository.ImageRepository
	products      repository.ProductRepository
	blobs         storage.BlobStore
	publicBaseURL string
}

func NewImageService(images repository.ImageRepository, products repository.ProductRepository, blobs storage.BlobStore, publicBaseURL string) ImageService {
	return &imageService{
		images:        images,
		products:      products,
		blobs:         blobs,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Upload stores the blob under a generated name and records the metadata
// row. The uploaded filename only contributes its extension.
func (s *imageService) Upload(ctx context.Context, productID uuid.UUID, filename string, r io.Reader) (*models.ProductImage, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return nil, appErrors.ValidationError("Unsupported image type, use jpg, png or webp")
	}

	if _, err := s.products.GetProductByID(ctx, productID); err != nil {
		return nil, appErrors.NotFoundError("Product not found").WithError(err)
	}

	image := &models.ProductImage{
		ID:        uuid.New(),
		ProductID: productID,
	}
	image.Path = image.ID.String() + ext
	image.PublicURL = s.publicBaseURL + "/" + image.Path

	if err := s.blobs.Save(image.Path, r); err != nil {
		return nil, appErrors.InternalError("Failed to store image").WithError(err)
	}

	if err := s.images.CreateImage(ctx, image); err != nil {
		// Roll the blob back so a failed upload leaves nothing behind.
		if rerr := s.blobs.Remove(image.Path); rerr != nil {
			middleware.LoggerFromContext(ctx).Warn("Failed to remove orphaned image blob", slog.String("path", image.Path), slog.String("error", rerr.Error()))
		}

		return nil, appErrors.DatabaseError("Failed to record image").WithError(err)
	}

	return image, nil
}

func (s *imageService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error) {
	images, err := s.images.ListImagesByProduct(ctx, productID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch images").WithError(err)
	}

	return images, nil
}

func (s *imageService) Delete(ctx context.Context, id uuid.UUID) error {
	image, err := s.images.GetImageByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Image not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to fetch image").WithError(err)
	}

	if err := s.images.DeleteImage(ctx, id); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return appErrors.DatabaseError("Failed to delete image").WithError(err)
	}

	if err := s.blobs.Remove(image.Path); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to remove image blob", slog.String("path", image.Path), slog.String("error", err.Error()))
	}

	return nil
}
