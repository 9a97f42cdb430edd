package validation

import (
	"testing"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVariantRequired(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)

	var verrs validatorv10.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	for _, fe := range verrs {
		assert.Equal(t, "variant_required", fe.Tag())
	}
}

func TestCartVariantValidation(t *testing.T) {
	v := New()

	t.Run("AddItem", func(t *testing.T) {
		assert.NoError(t, v.Struct(AddCartItemRequest{
			ProductID: "prod-1",
			Variant:   VariantRequest{Color: "black", Size: "M"},
			Quantity:  1,
		}))

		assert.NoError(t, v.Struct(AddCartItemRequest{
			ProductID: "prod-1",
			Color:     "black",
			Size:      "M",
			Quantity:  1,
		}))

		assertVariantRequired(t, v.Struct(AddCartItemRequest{
			ProductID: "prod-1",
			Quantity:  1,
		}))
	})

	t.Run("UpdateQuantity", func(t *testing.T) {
		assert.NoError(t, v.Struct(UpdateCartQuantityRequest{
			ProductID: "prod-1",
			Variant:   VariantRequest{Color: "black", Size: "M"},
			Quantity:  3,
		}))

		assertVariantRequired(t, v.Struct(UpdateCartQuantityRequest{
			ProductID: "prod-1",
			Quantity:  3,
		}))
	})

	t.Run("RemoveItem", func(t *testing.T) {
		assert.NoError(t, v.Struct(RemoveCartItemRequest{
			ProductID: "prod-1",
			Color:     "black",
			Size:      "M",
		}))

		assertVariantRequired(t, v.Struct(RemoveCartItemRequest{
			ProductID: "prod-1",
		}))
	})

	t.Run("PartialVariant", func(t *testing.T) {
		// Color nested, size legacy: the shapes may be mixed.
		assert.NoError(t, v.Struct(RemoveCartItemRequest{
			ProductID: "prod-1",
			Variant:   VariantRequest{Color: "black"},
			Size:      "M",
		}))

		assertVariantRequired(t, v.Struct(RemoveCartItemRequest{
			ProductID: "prod-1",
			Variant:   VariantRequest{Color: "black"},
		}))
	})
}
