package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alamlaptops/storefront/internal/models"
	"github.com/alamlaptops/storefront/internal/utils"
	"github.com/google/uuid"
)

type ImageRepository interface {
	CreateImage(ctx context.Context, image *models.ProductImage) error
	GetImageByID(ctx context.Context, id uuid.UUID) (*models.ProductImage, error)
	// ListImagesByProduct enumerates a product's images so a product delete
	// can clean up its blobs.
	ListImagesByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
}

type imageRepository struct {
	DB *sql.DB
}

func NewImageRepo(db *sql.DB) ImageRepository {
	return &imageRepository{DB: db}
}

func (r *imageRepository) CreateImage(ctx context.Context, image *models.ProductImage) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO product_images (id, product_id, path, public_url, uploaded_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING uploaded_at
	`

	return r.DB.QueryRowContext(dbCtx, query, image.ID, image.ProductID, image.Path, image.PublicURL).Scan(&image.UploadedAt)
}

func (r *imageRepository) GetImageByID(ctx context.Context, id uuid.UUID) (*models.ProductImage, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	image := &models.ProductImage{}

	query := `
		SELECT id, product_id, path, public_url, uploaded_at
		FROM product_images
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&image.ID, &image.ProductID, &image.Path, &image.PublicURL, &image.UploadedAt)
	if err != nil {
		return nil, err
	}

	return image, nil
}

func (r *imageRepository) ListImagesByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, path, public_url, uploaded_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY uploaded_at
	`

	rows, err := r.DB.QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product images: %w", err)
	}

	defer rows.Close()

	var images []models.ProductImage

	for rows.Next() {
		var image models.ProductImage

		if err := rows.Scan(&image.ID, &image.ProductID, &image.Path, &image.PublicURL, &image.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product image: %w", err)
		}

		images = append(images, image)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return images, nil
}

func (r *imageRepository) DeleteImage(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM product_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product image: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
