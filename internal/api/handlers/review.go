package handlers

import (
	"log/slog"
	"net/http"

	"github.com/alamlaptops/storefront/internal/api/middleware"
	"github.com/alamlaptops/storefront/internal/models"
	service "github.com/alamlaptops/storefront/internal/services"
	"github.com/alamlaptops/storefront/internal/utils"
	"github.com/alamlaptops/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	validator     *validator.Validate
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, validator: validator.New()}
}

// VerifyOrder is the first phase of the review gate. It always answers 200
// with a verdict; only infrastructure failures produce an error status.
func (h *ReviewHandler) VerifyOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.VerifyOrderRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.reviewService.VerifyOrder(r.Context(), &req)

		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Order verification failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

func (h *ReviewHandler) CreateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateReviewRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		review, err := h.reviewService.CreateReview(r.Context(), &req)

		if err != nil {
			logger.Warn("Review submission rejected", slog.String("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Review created", slog.String("reviewId", review.ID.String()))
		response.Success(w, http.StatusCreated, review)
	}
}

func (h *ReviewHandler) ListReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		reviews, err := h.reviewService.ListReviewsByProduct(r.Context(), productID)

		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, reviews)
	}
}

func (h *ReviewHandler) DeleteReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		if err := h.reviewService.DeleteReview(r.Context(), id); err != nil {
			logger.Error("Review deletion failed", slog.String("reviewId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Review deleted", slog.String("reviewId", id.String()))
		response.Success(w, http.StatusOK, map[string]string{"id": id.String()})
	}
}
