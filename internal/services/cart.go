package service

import (
	"context"
	"log/slog"

	"github.com/alamlaptops/storefront/internal/api/middleware"
	"github.com/alamlaptops/storefront/internal/cart"
	"github.com/alamlaptops/storefront/internal/errors"
	"github.com/alamlaptops/storefront/internal/models"
	repository "github.com/alamlaptops/storefront/internal/repositories"
	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*models.CartResponse, error)
	AddItem(ctx context.Context, sessionID string, req *models.AddCartItemRequest) (*models.CartResponse, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, req *models.UpdateCartQuantityRequest) (*models.CartResponse, error)
	RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*models.CartResponse, error)
	ClearCart(ctx context.Context, sessionID string) error
}

type cartService struct {
	carts    *cart.Manager
	products repository.ProductRepository
	policy   cart.ShippingPolicy
}

func NewCartService(carts *cart.Manager, products repository.ProductRepository, policy cart.ShippingPolicy) CartService {
	return &cartService{carts: carts, products: products, policy: policy}
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*models.CartResponse, error) {
	store := s.carts.Get(ctx, sessionID)

	return s.toResponse(sessionID, store.Lines()), nil
}

// AddItem resolves the product server-side so the cart line carries the
// catalog price, not a client-supplied one.
func (s *cartService) AddItem(ctx context.Context, sessionID string, req *models.AddCartItemRequest) (*models.CartResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, errors.BadRequestError("Invalid product id").WithError(err)
	}

	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if product.Status != models.ProductStatusInStock {
		return nil, errors.BadRequestError("Product is not available for purchase")
	}

	store := s.carts.Get(ctx, sessionID)

	line := cart.Line{
		ProductID: product.ID.String(),
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  req.Quantity,
	}

	if err := store.Add(ctx, line); err != nil {
		// The in-memory cart already holds the line; losing the persisted
		// copy is recoverable, so the request still succeeds.
		middleware.LoggerFromContext(ctx).Warn("Cart persistence failed", slog.String("session_id", sessionID), slog.String("error", err.Error()))
	}

	return s.toResponse(sessionID, store.Lines()), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, req *models.UpdateCartQuantityRequest) (*models.CartResponse, error) {
	store := s.carts.Get(ctx, sessionID)

	found, err := store.UpdateQuantity(ctx, productID.String(), req.Quantity)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cart persistence failed", slog.String("session_id", sessionID), slog.String("error", err.Error()))
	}

	if !found {
		return nil, errors.BadRequestError("Item not found in the cart")
	}

	return s.toResponse(sessionID, store.Lines()), nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*models.CartResponse, error) {
	store := s.carts.Get(ctx, sessionID)

	if err := store.Remove(ctx, productID.String()); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cart persistence failed", slog.String("session_id", sessionID), slog.String("error", err.Error()))
	}

	return s.toResponse(sessionID, store.Lines()), nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {
	store := s.carts.Get(ctx, sessionID)

	if err := store.Clear(ctx); err != nil {
		// The in-memory store stays so the emptied cart is not resurrected
		// from the stale persisted blob on the next request.
		middleware.LoggerFromContext(ctx).Warn("Cart persistence failed", slog.String("session_id", sessionID), slog.String("error", err.Error()))

		return nil
	}

	s.carts.Evict(sessionID)

	return nil
}

func (s *cartService) toResponse(sessionID string, lines []cart.Line) *models.CartResponse {
	quote := s.policy.QuoteFor(lines)

	views := make([]models.CartLineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, models.CartLineView{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Image:     l.Image,
			Quantity:  l.Quantity,
			Subtotal:  l.Price * int64(l.Quantity),
		})
	}

	return &models.CartResponse{
		SessionID:    sessionID,
		Lines:        views,
		TotalItems:   cart.TotalItems(lines),
		Subtotal:     quote.Subtotal,
		ShippingCost: quote.ShippingCost,
		Total:        quote.Total,
	}
}
