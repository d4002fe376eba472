package shipping_test

import (
	"context"
	"testing"
	"time"

	adapter "ordersapi/internal/adapters/out/shipping"
	"ordersapi/internal/core/domain/model/cart"
	"ordersapi/internal/core/domain/model/customer"
	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/shipping"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(t *testing.T, provider string) shipping.Request {
	t.Helper()
	entry, err := cart.NewEntry(kernel.NewUUID(), kernel.NewUUID(), 1, 1, "", nil, nil, time.Now())
	require.NoError(t, err)
	return shipping.Request{
		Entries:            []cart.Entry{entry},
		ShippingAddress:    &customer.Address{ID: kernel.NewUUID(), CountryCode: "US"},
		ProviderSystemName: provider,
		StoreID:            1,
	}
}

func TestFixedRateProvider_GetOptions(t *testing.T) {
	ctx := context.Background()
	provider := adapter.NewFixedRateProvider().Register(adapter.FixedRateSystemName,
		shipping.Option{Name: "Ground", Rate: decimal.RequireFromString("5")},
		shipping.Option{Name: "Next Day Air", Rate: decimal.RequireFromString("20")},
	)

	t.Run("should quote registered options", func(t *testing.T) {
		response, err := provider.GetOptions(ctx, request(t, "shipping.fixedbyweightbytotal"))

		require.NoError(t, err)
		require.True(t, response.Success())
		require.Len(t, response.Options, 2)
		assert.Equal(t, "Ground", response.Options[0].Name)
		assert.Equal(t, adapter.FixedRateSystemName, response.Options[0].ProviderSystemName)
	})

	t.Run("should report an unknown provider", func(t *testing.T) {
		response, err := provider.GetOptions(ctx, request(t, "Shipping.UPS"))

		require.NoError(t, err)
		assert.False(t, response.Success())
		assert.Equal(t, []string{`Shipping rate computation method "Shipping.UPS" could not be loaded`}, response.Errors)
	})

	t.Run("should report every request problem", func(t *testing.T) {
		response, err := provider.GetOptions(ctx, shipping.Request{ProviderSystemName: adapter.FixedRateSystemName})

		require.NoError(t, err)
		assert.Equal(t, []string{"Shopping cart is empty", "Shipping address is not set"}, response.Errors)
	})
}

func TestParseRates(t *testing.T) {
	t.Run("should parse name and rate pairs", func(t *testing.T) {
		options, err := adapter.ParseRates("Ground:5.00, Next Day Air:20")

		require.NoError(t, err)
		require.Len(t, options, 2)
		assert.Equal(t, "Next Day Air", options[1].Name)
		assert.True(t, options[1].Rate.Equal(decimal.NewFromInt(20)))
	})

	t.Run("should ignore empty input", func(t *testing.T) {
		options, err := adapter.ParseRates("")

		require.NoError(t, err)
		assert.Empty(t, options)
	})

	t.Run("should reject malformed pairs", func(t *testing.T) {
		for _, spec := range []string{"Ground", "Ground:abc", "Ground:-1"} {
			_, err := adapter.ParseRates(spec)
			assert.Error(t, err, spec)
		}
	})
}
