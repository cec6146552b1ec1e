package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/alamlaptops/storefront/internal/api/middleware"
	"github.com/alamlaptops/storefront/internal/cart"
	appErrors "github.com/alamlaptops/storefront/internal/errors"
	"github.com/alamlaptops/storefront/internal/models"
	repository "github.com/alamlaptops/storefront/internal/repositories"
	"github.com/alamlaptops/storefront/pkg/sendgrid"
	"github.com/alamlaptops/storefront/pkg/whatsapp"
	"github.com/google/uuid"
)

// Digits and plus sign only, the characters wa.me accepts.
var phonePattern = regexp.MustCompile(`^[0-9+]{10,15}$`)

type OrderService interface {
	Checkout(ctx context.Context, sessionID string, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orders      repository.OrderRepository
	carts       *cart.Manager
	policy      cart.ShippingPolicy
	links       *whatsapp.Client
	emails      sendgrid.EmailService
	ordersEmail string
}

// NewOrderService wires the checkout pipeline. emails may be nil; the
// notification mail is then skipped.
func NewOrderService(orders repository.OrderRepository, carts *cart.Manager, policy cart.ShippingPolicy, links *whatsapp.Client, emails sendgrid.EmailService, ordersEmail string) OrderService {
	return &orderService{
		orders:      orders,
		carts:       carts,
		policy:      policy,
		links:       links,
		emails:      emails,
		ordersEmail: ordersEmail,
	}
}

// Checkout snapshots the session's cart, records the order, and returns the
// WhatsApp hand-off link. The cart is cleared only after the order is
// recorded; any earlier failure leaves it intact for retry.
func (s *orderService) Checkout(ctx context.Context, sessionID string, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	customer := req.Customer
	customer.WhatsAppNumber = strings.TrimSpace(customer.WhatsAppNumber)

	if !phonePattern.MatchString(customer.WhatsAppNumber) {
		return nil, appErrors.ValidationError("Please enter a valid WhatsApp number")
	}

	store := s.carts.Get(ctx, sessionID)
	lines := store.Lines()

	if len(lines) == 0 {
		return nil, appErrors.BadRequestError("Cart is empty")
	}

	quote := s.policy.QuoteFor(lines)

	order := &models.Order{
		ID:           uuid.New(),
		Status:       models.OrderStatusPending,
		Customer:     customer,
		Subtotal:     quote.Subtotal,
		ShippingCost: quote.ShippingCost,
		Total:        quote.Total,
	}

	for _, line := range lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, appErrors.InternalError("Cart contains an invalid product id").WithError(err)
		}

		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: productID,
			Name:      line.Name,
			UnitPrice: line.Price,
			Quantity:  line.Quantity,
		})
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, appErrors.DatabaseError("Failed to record order").WithError(err)
	}

	message := ComposeOrderMessage(order)

	if err := store.Clear(ctx); err != nil {
		// Order is already recorded; a stale persisted cart only means the
		// customer sees their old cart again.
		logger.Warn("Failed to clear cart after checkout", slog.String("session_id", sessionID), slog.String("error", err.Error()))
	} else {
		s.carts.Evict(sessionID)
	}

	s.notify(order, message)

	logger.Info("Order recorded", slog.String("order_id", order.ID.String()), slog.Int64("total", order.Total))

	return &models.CheckoutResponse{
		OrderID:     order.ID,
		WhatsAppURL: s.links.OrderLink(message),
		Message:     message,
	}, nil
}

// notify emails the order summary to the shop inbox. Best effort, off the
// request path.
func (s *orderService) notify(order *models.Order, message string) {
	if s.emails == nil || s.ordersEmail == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		msg := &sendgrid.Message{
			To:      s.ordersEmail,
			Subject: fmt.Sprintf("New order %s", order.ID),
			Content: message,
		}

		if err := s.emails.Send(ctx, msg); err != nil {
			slog.Warn("Failed to send order notification email", slog.String("order_id", order.ID.String()), slog.String("error", err.Error()))
		}
	}()
}

func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error) {
	orders, total, err := s.orders.ListOrders(ctx, page, size)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if err := s.orders.UpdateOrderStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	return s.GetOrderByID(ctx, id)
}
