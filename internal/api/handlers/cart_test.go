package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alamlaptops/storefront/internal/api/handlers"
	"github.com/alamlaptops/storefront/internal/cart"
	"github.com/alamlaptops/storefront/internal/models"
	"github.com/alamlaptops/storefront/internal/repositories/mocks"
	service "github.com/alamlaptops/storefront/internal/services"
	"github.com/alamlaptops/storefront/internal/testutils"
	"github.com/alamlaptops/storefront/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartHandler(products *mocks.ProductRepository) *handlers.CartHandler {
	policy := cart.ShippingPolicy{FlatFee: 500, FreeThreshold: 30000}
	cartService := service.NewCartService(cart.NewManager(nil, 0), products, policy)

	return handlers.NewCartHandler(cartService)
}

func decodeCartResponse(t *testing.T, rec *httptest.ResponseRecorder) *models.CartResponse {
	t.Helper()

	var envelope struct {
		Success bool                    `json:"success"`
		Data    *models.CartResponse    `json:"data"`
		Error   *response.ErrorResponse `json:"error"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.NotNil(t, envelope.Data)

	return envelope.Data
}

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("Success - Adds Item And Returns Totals", func(t *testing.T) {
		// Arrange
		products := new(mocks.ProductRepository)
		handler := newCartHandler(products)

		product := &models.Product{
			ID:     uuid.New(),
			Name:   "MacBook Air M2",
			Price:  114900,
			Status: models.ProductStatusInStock,
		}
		products.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()

		body := strings.NewReader(`{"product_id": "` + product.ID.String() + `", "quantity": 2}`)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/cart/items", body, nil)
		req.Header.Set(handlers.SessionHeader, "session-1")
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem()(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		cartResp := decodeCartResponse(t, rec)
		require.Len(t, cartResp.Lines, 1)
		assert.Equal(t, 2, cartResp.Lines[0].Quantity)
		assert.Equal(t, int64(229800), cartResp.Subtotal)
		assert.Equal(t, int64(0), cartResp.ShippingCost)
		products.AssertExpectations(t)
	})

	t.Run("Failure - Missing Session Header", func(t *testing.T) {
		// Arrange
		handler := newCartHandler(new(mocks.ProductRepository))

		body := strings.NewReader(`{"product_id": "` + uuid.NewString() + `"}`)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/cart/items", body, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem()(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Session ID is required")
	})

	t.Run("Failure - Malformed Product ID", func(t *testing.T) {
		// Arrange
		handler := newCartHandler(new(mocks.ProductRepository))

		body := strings.NewReader(`{"product_id": "not-a-uuid"}`)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/cart/items", body, nil)
		req.Header.Set(handlers.SessionHeader, "session-1")
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem()(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartHandler_GetCart(t *testing.T) {
	// Arrange
	handler := newCartHandler(new(mocks.ProductRepository))

	req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/cart", nil, nil)
	req.Header.Set(handlers.SessionHeader, "fresh-session")
	rec := httptest.NewRecorder()

	// Act
	handler.GetCart()(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	cartResp := decodeCartResponse(t, rec)
	assert.Equal(t, "fresh-session", cartResp.SessionID)
	assert.Empty(t, cartResp.Lines)
}

func TestCartHandler_UpdateQuantity(t *testing.T) {
	t.Run("Failure - Item Not In Cart", func(t *testing.T) {
		// Arrange
		handler := newCartHandler(new(mocks.ProductRepository))

		body := strings.NewReader(`{"quantity": 2}`)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPut, "/api/v1/cart/items/x", body, map[string]string{"productId": uuid.NewString()})
		req.Header.Set(handlers.SessionHeader, "session-1")
		rec := httptest.NewRecorder()

		// Act
		handler.UpdateQuantity()(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Item not found in the cart")
	})
}
