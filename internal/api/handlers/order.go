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

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// Checkout turns the session's cart into a recorded order and returns the
// WhatsApp hand-off link.
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		session, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.CheckoutRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.orderService.Checkout(r.Context(), session, &req)

		if err != nil {
			logger.Warn("Checkout failed", slog.String("session_id", session), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Checkout completed", slog.String("orderId", resp.OrderID.String()))
		response.Success(w, http.StatusCreated, resp)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		order, err := h.orderService.GetOrderByID(r.Context(), id)

		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size := pagination(r)

		orders, total, err := h.orderService.ListOrders(r.Context(), page, size)

		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to fetch orders", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     page,
			PageSize: size,
		})
	}
}

func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		var req models.UpdateOrderStatusRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateOrderStatus(r.Context(), id, req.Status)

		if err != nil {
			logger.Error("Order status update failed", slog.String("orderId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Order status updated", slog.String("orderId", id.String()), slog.String("status", string(order.Status)))
		response.Success(w, http.StatusOK, order)
	}
}
