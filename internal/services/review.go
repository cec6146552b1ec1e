package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math"
	"strings"

	"github.com/alamlaptops/storefront/internal/api/middleware"
	"github.com/alamlaptops/storefront/internal/cache"
	appErrors "github.com/alamlaptops/storefront/internal/errors"
	"github.com/alamlaptops/storefront/internal/models"
	repository "github.com/alamlaptops/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type ReviewService interface {
	VerifyOrder(ctx context.Context, req *models.VerifyOrderRequest) (*models.VerificationResult, error)
	CreateReview(ctx context.Context, req *models.CreateReviewRequest) (*models.Review, error)
	ListReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

type reviewService struct {
	reviews   repository.ReviewRepository
	orders    repository.OrderRepository
	sanitizer *bluemonday.Policy
	cache     cache.Cache
}

func NewReviewService(reviews repository.ReviewRepository, orders repository.OrderRepository, c cache.Cache) ReviewService {
	return &reviewService{
		reviews:   reviews,
		orders:    orders,
		sanitizer: bluemonday.StrictPolicy(),
		cache:     c,
	}
}

// VerifyOrder is the first phase of the review gate: it checks that the
// order exists and includes the product. A failed check is a result, not an
// error; only infrastructure trouble surfaces as an error.
func (s *reviewService) VerifyOrder(ctx context.Context, req *models.VerifyOrderRequest) (*models.VerificationResult, error) {
	orderID := strings.TrimSpace(req.OrderID)

	// Checked here rather than by the validator so a blank id short-circuits
	// without touching the database.
	if orderID == "" {
		return &models.VerificationResult{Valid: false, Reason: "Please enter your order ID"}, nil
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, appErrors.BadRequestError("Invalid product id").WithError(err)
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return &models.VerificationResult{Valid: false, Reason: "Order not found. Please check your order ID."}, nil
	}

	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.VerificationResult{Valid: false, Reason: "Order not found. Please check your order ID."}, nil
		}

		return nil, appErrors.DatabaseError("Failed to verify order").WithError(err)
	}

	if !order.ContainsProduct(productID) {
		return &models.VerificationResult{Valid: false, Reason: "This order does not include this product."}, nil
	}

	return &models.VerificationResult{Valid: true}, nil
}

// CreateReview is the second phase. The order check is repeated here so a
// submission can never skip the gate by calling this endpoint directly.
func (s *reviewService) CreateReview(ctx context.Context, req *models.CreateReviewRequest) (*models.Review, error) {
	// Ratings come in half-star steps. Checked before the gate so a bad
	// value never costs a database round trip.
	if math.Mod(req.Rating*2, 1) != 0 {
		return nil, appErrors.ValidationError("Rating must be given in half-star steps")
	}

	result, err := s.VerifyOrder(ctx, &models.VerifyOrderRequest{OrderID: req.OrderID, ProductID: req.ProductID})
	if err != nil {
		return nil, err
	}

	if !result.Valid {
		return nil, appErrors.BadRequestError(result.Reason)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, appErrors.BadRequestError("Invalid product id").WithError(err)
	}

	review := &models.Review{
		ID:         uuid.New(),
		ProductID:  productID,
		UserName:   strings.TrimSpace(s.sanitizer.Sanitize(req.UserName)),
		Rating:     req.Rating,
		Title:      strings.TrimSpace(s.sanitizer.Sanitize(req.Title)),
		Content:    strings.TrimSpace(s.sanitizer.Sanitize(req.Content)),
		IsVerified: true,
	}

	if review.UserName == "" || review.Content == "" {
		return nil, appErrors.ValidationError("Review text cannot consist of markup only")
	}

	if err := s.reviews.CreateReview(ctx, review); err != nil {
		return nil, appErrors.DatabaseError("Failed to create review").WithError(err)
	}

	s.invalidate(ctx, productID)

	return review, nil
}

func (s *reviewService) ListReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.ReviewKeyPrefix, productID.String())

	var cached []models.Review

	if s.cache != nil {
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("Review cache read failed", slog.String("error", err.Error()))
		} else if hit {
			return cached, nil
		}
	}

	reviews, err := s.reviews.ListReviewsByProduct(ctx, productID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch reviews").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, reviews, 0); err != nil {
			logger.Warn("Review cache write failed", slog.String("error", err.Error()))
		}
	}

	return reviews, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	if err := s.reviews.DeleteReview(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Review not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete review").WithError(err)
	}

	return nil
}

func (s *reviewService) invalidate(ctx context.Context, productID uuid.UUID) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, cache.Key(cache.ReviewKeyPrefix, productID.String())); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Review cache invalidation failed", slog.String("error", err.Error()))
	}
}
