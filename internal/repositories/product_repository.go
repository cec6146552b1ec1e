package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alamlaptops/storefront/internal/models"
	"github.com/alamlaptops/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, name, slug, brand, category, image, images, price, original_price, status,
	processor, ram, storage, display, graphics, battery, weight, ports, os, warranty,
	is_new, is_featured, description, features, created_at, updated_at`

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (id, name, slug, brand, category, image, images, price, original_price, status,
			processor, ram, storage, display, graphics, battery, weight, ports, os, warranty,
			is_new, is_featured, description, features, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.ID, product.Name, product.Slug, product.Brand, product.Category,
		product.Image, pq.Array(product.Images), product.Price, product.OriginalPrice, product.Status,
		product.Processor, product.RAM, product.Storage, product.Display, product.Graphics,
		product.Battery, product.Weight, product.Ports, product.OS, product.Warranty,
		product.IsNew, product.IsFeatured, product.Description, pq.Array(product.Features),
	).Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	return r.getProduct(ctx, query, id)
}

func (r *productRepository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE slug = $1`, productColumns)

	return r.getProduct(ctx, query, slug)
}

func (r *productRepository) getProduct(ctx context.Context, query string, arg any) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	err := scanProduct(r.DB.QueryRowContext(dbCtx, query, arg), product)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, p *models.Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Brand, &p.Category, &p.Image, pq.Array(&p.Images),
		&p.Price, &p.OriginalPrice, &p.Status,
		&p.Processor, &p.RAM, &p.Storage, &p.Display, &p.Graphics,
		&p.Battery, &p.Weight, &p.Ports, &p.OS, &p.Warranty,
		&p.IsNew, &p.IsFeatured, &p.Description, pq.Array(&p.Features),
		&p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET name = $1, brand = $2, category = $3, image = $4, images = $5, price = $6,
			original_price = $7, status = $8, processor = $9, ram = $10, storage = $11,
			display = $12, graphics = $13, battery = $14, weight = $15, ports = $16,
			os = $17, warranty = $18, is_new = $19, is_featured = $20, description = $21,
			features = $22, updated_at = NOW()
		WHERE id = $23
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.Name, product.Brand, product.Category, product.Image, pq.Array(product.Images),
		product.Price, product.OriginalPrice, product.Status, product.Processor, product.RAM,
		product.Storage, product.Display, product.Graphics, product.Battery, product.Weight,
		product.Ports, product.OS, product.Warranty, product.IsNew, product.IsFeatured,
		product.Description, pq.Array(product.Features), product.ID,
	).Scan(&product.UpdatedAt)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
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

// processorPatterns maps the storefront's processor filter classes to the
// substring each matches inside the processor column.
var processorPatterns = map[string]string{
	"intel-i5":  "i5",
	"intel-i7":  "i7",
	"amd-ryzen": "Ryzen",
	"apple-m1":  "M1",
}

// priceRanges maps the storefront's price filter buckets to [min, max)
// bounds; max < 0 means unbounded.
var priceRanges = map[string][2]int64{
	"under-150000":  {0, 150000},
	"150000-200000": {150000, 200000},
	"200000-250000": {200000, 250000},
	"above-250000":  {250000, -1},
}

func (r *productRepository) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var (
		conditions []string
		args       []any
	)

	arg := func(v any) string {
		args = append(args, v)

		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Brand != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(brand) = %s", arg(strings.ToLower(filter.Brand))))
	}

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = %s", arg(filter.Category)))
	}

	if bounds, ok := priceRanges[filter.PriceRange]; ok {
		conditions = append(conditions, fmt.Sprintf("price >= %s", arg(bounds[0])))

		if bounds[1] >= 0 {
			conditions = append(conditions, fmt.Sprintf("price < %s", arg(bounds[1])))
		}
	}

	if pattern, ok := processorPatterns[filter.Processor]; ok {
		conditions = append(conditions, fmt.Sprintf("processor LIKE %s", arg("%"+pattern+"%")))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int

	countQuery := `SELECT COUNT(*) FROM products` + where

	err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	var orderBy string

	switch filter.Sort {
	case "price-low":
		orderBy = "price ASC"
	case "price-high":
		orderBy = "price DESC"
	case "name":
		orderBy = "name ASC"
	case "featured":
		orderBy = "is_featured DESC, created_at DESC"
	default:
		orderBy = "created_at DESC"
	}

	offset := (filter.Page - 1) * filter.Size

	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY %s LIMIT %s OFFSET %s`,
		productColumns, where, orderBy, arg(filter.Size), arg(offset))

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		if err := scanProduct(rows, product); err != nil {
			return nil, 0, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}
