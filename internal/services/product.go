package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/alamlaptops/storefront/internal/api/middleware"
	"github.com/alamlaptops/storefront/internal/cache"
	appErrors "github.com/alamlaptops/storefront/internal/errors"
	"github.com/alamlaptops/storefront/internal/models"
	repository "github.com/alamlaptops/storefront/internal/repositories"
	"github.com/alamlaptops/storefront/internal/storage"
	"github.com/google/uuid"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error)
}

type productService struct {
	repo   repository.ProductRepository
	images repository.ImageRepository
	blobs  storage.BlobStore
	cache  cache.Cache
}

func NewProductService(repo repository.ProductRepository, images repository.ImageRepository, blobs storage.BlobStore, c cache.Cache) ProductService {
	return &productService{repo: repo, images: images, blobs: blobs, cache: c}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	existing, _ := s.repo.GetProductBySlug(ctx, req.Slug)
	if existing != nil {
		return nil, appErrors.DuplicateEntryError("A product with this slug already exists")
	}

	product := &models.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Slug:          req.Slug,
		Brand:         req.Brand,
		Category:      req.Category,
		Image:         req.Image,
		Images:        req.Images,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Status:        models.ProductStatus(req.Status),
		Processor:     req.Processor,
		RAM:           req.RAM,
		Storage:       req.Storage,
		Display:       req.Display,
		Graphics:      req.Graphics,
		Battery:       req.Battery,
		Weight:        req.Weight,
		Ports:         req.Ports,
		OS:            req.OS,
		Warranty:      req.Warranty,
		IsNew:         req.IsNew,
		IsFeatured:    req.IsFeatured,
		Description:   req.Description,
		Features:      req.Features,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.ProductKeyPrefix, id.String())

	var cached models.Product

	if s.cache != nil {
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("Product cache read failed", slog.String("error", err.Error()))
		} else if hit {
			return &cached, nil
		}
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, appErrors.NotFoundError("Product not found").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, product, 0); err != nil {
			logger.Warn("Product cache write failed", slog.String("error", err.Error()))
		}
	}

	return product, nil
}

func (s *productService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.repo.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, appErrors.NotFoundError("Product not found").WithError(err)
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, appErrors.NotFoundError("Product not found").WithError(err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Brand != nil {
		product.Brand = *req.Brand
	}

	if req.Category != nil {
		product.Category = *req.Category
	}

	if req.Image != nil {
		product.Image = *req.Image
	}

	if req.Images != nil {
		product.Images = req.Images
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	if req.OriginalPrice != nil {
		product.OriginalPrice = req.OriginalPrice
	}

	if req.Status != nil {
		product.Status = models.ProductStatus(*req.Status)
	}

	if req.Processor != nil {
		product.Processor = *req.Processor
	}

	if req.RAM != nil {
		product.RAM = *req.RAM
	}

	if req.Storage != nil {
		product.Storage = *req.Storage
	}

	if req.Display != nil {
		product.Display = *req.Display
	}

	if req.Graphics != nil {
		product.Graphics = *req.Graphics
	}

	if req.Battery != nil {
		product.Battery = *req.Battery
	}

	if req.Weight != nil {
		product.Weight = *req.Weight
	}

	if req.Ports != nil {
		product.Ports = *req.Ports
	}

	if req.OS != nil {
		product.OS = *req.OS
	}

	if req.Warranty != nil {
		product.Warranty = *req.Warranty
	}

	if req.IsNew != nil {
		product.IsNew = *req.IsNew
	}

	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if req.Description != nil {
		product.Description = *req.Description
	}

	if req.Features != nil {
		product.Features = req.Features
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, id)

	return product, nil
}

// DeleteProduct removes the product and its uploaded image blobs. Blob
// cleanup is best effort; a leftover file is harmless, a dangling metadata
// row is not.
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	logger := middleware.LoggerFromContext(ctx)

	images, err := s.images.ListImagesByProduct(ctx, id)
	if err != nil {
		return appErrors.DatabaseError("Failed to list product images").WithError(err)
	}

	for _, image := range images {
		if s.blobs != nil {
			if err := s.blobs.Remove(image.Path); err != nil {
				logger.Warn("Failed to remove image blob", slog.String("path", image.Path), slog.String("error", err.Error()))
			}
		}

		if err := s.images.DeleteImage(ctx, image.ID); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return appErrors.DatabaseError("Failed to delete product image").WithError(err)
		}
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Product not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *productService) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error) {
	products, total, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, id.String())); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Product cache invalidation failed", slog.String("error", err.Error()))
	}
}
