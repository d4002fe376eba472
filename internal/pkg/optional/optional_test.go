package optional_test

import (
	"encoding/json"
	"testing"

	"ordersapi/internal/pkg/optional"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchBody struct {
	StoreID        optional.Value[int]    `json:"store_id"`
	ShippingMethod optional.Value[string] `json:"shipping_method"`
}

func TestValue_UnmarshalJSON(t *testing.T) {
	t.Run("absent keys stay unset", func(t *testing.T) {
		var body patchBody
		require.NoError(t, json.Unmarshal([]byte(`{}`), &body))

		assert.False(t, body.StoreID.IsSet())
		assert.False(t, body.ShippingMethod.IsSet())
	})

	t.Run("present keys are set", func(t *testing.T) {
		var body patchBody
		require.NoError(t, json.Unmarshal([]byte(`{"store_id": 3, "shipping_method": "Ground"}`), &body))

		storeID, ok := body.StoreID.Get()
		assert.True(t, ok)
		assert.Equal(t, 3, storeID)
		assert.Equal(t, "Ground", body.ShippingMethod.OrElse("Air"))
	})

	t.Run("explicit null is set to the zero value", func(t *testing.T) {
		var body patchBody
		require.NoError(t, json.Unmarshal([]byte(`{"shipping_method": null}`), &body))

		method, ok := body.ShippingMethod.Get()
		assert.True(t, ok)
		assert.Empty(t, method)
	})

	t.Run("type mismatch fails", func(t *testing.T) {
		var body patchBody
		require.Error(t, json.Unmarshal([]byte(`{"store_id": "three"}`), &body))
	})
}

func TestValue_ApplyTo(t *testing.T) {
	target := "Next Day Air"

	optional.Value[string]{}.ApplyTo(&target)
	assert.Equal(t, "Next Day Air", target)

	optional.Of("Ground").ApplyTo(&target)
	assert.Equal(t, "Ground", target)
}

func TestValue_OrElse(t *testing.T) {
	assert.Equal(t, 1, optional.Value[int]{}.OrElse(1))
	assert.Equal(t, 0, optional.Of(0).OrElse(1))
}
