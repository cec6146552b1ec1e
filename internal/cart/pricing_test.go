package cart_test

import (
	"context"
	"testing"

	"github.com/alamlaptops/storefront/internal/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippingPolicy(t *testing.T) {
	policy := cart.ShippingPolicy{FlatFee: 500, FreeThreshold: 30000}

	t.Run("Subtotal at the threshold ships free", func(t *testing.T) {
		assert.Equal(t, int64(0), policy.ShippingCost(30000))
	})

	t.Run("Subtotal one below the threshold pays the flat fee", func(t *testing.T) {
		assert.Equal(t, int64(500), policy.ShippingCost(29999))
	})

	t.Run("Subtotal above the threshold ships free", func(t *testing.T) {
		assert.Equal(t, int64(0), policy.ShippingCost(250000))
	})

	t.Run("Empty cart pays the flat fee", func(t *testing.T) {
		assert.Equal(t, int64(500), policy.ShippingCost(0))
	})
}

func TestQuoteFor(t *testing.T) {
	policy := cart.ShippingPolicy{FlatFee: 500, FreeThreshold: 30000}

	t.Run("Quote matches derived totals", func(t *testing.T) {
		lines := []cart.Line{
			{ProductID: "a", Price: 100000, Quantity: 2},
			{ProductID: "b", Price: 50000, Quantity: 1},
		}

		quote := policy.QuoteFor(lines)

		assert.Equal(t, int64(250000), quote.Subtotal)
		assert.Equal(t, int64(0), quote.ShippingCost)
		assert.Equal(t, int64(250000), quote.Total)
	})

	t.Run("Below-threshold quote includes shipping", func(t *testing.T) {
		lines := []cart.Line{{ProductID: "a", Price: 9999, Quantity: 1}}

		quote := policy.QuoteFor(lines)

		assert.Equal(t, int64(9999), quote.Subtotal)
		assert.Equal(t, int64(500), quote.ShippingCost)
		assert.Equal(t, int64(10499), quote.Total)
	})
}

// Walks the scenario from the storefront: add product A twice, then product
// B, and check every derived value along the way.
func TestCartPricingScenario(t *testing.T) {
	ctx := context.Background()
	policy := cart.ShippingPolicy{FlatFee: 500, FreeThreshold: 30000}
	store := cart.NewStore(ctx, "scenario", nil)

	a := cart.Line{ProductID: "a", Name: "Product A", Price: 100000, Quantity: 1}
	b := cart.Line{ProductID: "b", Name: "Product B", Price: 50000, Quantity: 1}

	require.NoError(t, store.Add(ctx, a))
	require.NoError(t, store.Add(ctx, a))

	require.Equal(t, 1, store.Len())
	assert.Equal(t, 2, store.TotalItems())
	assert.Equal(t, int64(200000), store.TotalPrice())

	require.NoError(t, store.Add(ctx, b))

	quote := policy.QuoteFor(store.Lines())
	assert.Equal(t, int64(250000), quote.Subtotal)
	assert.Equal(t, int64(0), quote.ShippingCost)
	assert.Equal(t, int64(250000), quote.Total)
}
