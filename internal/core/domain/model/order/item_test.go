package order_test

import (
	"testing"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("should create item with valid name and quantity", func(t *testing.T) {
		item, err := order.NewItem("Syringe", 10)

		require.NoError(t, err)
		assert.Equal(t, "Syringe", item.Name())
		assert.Equal(t, 10, item.Quantity())
		require.NoError(t, item.Validate())
	})

	t.Run("should accept minimum quantity", func(t *testing.T) {
		item, err := order.NewItem("Mask", 1)

		require.NoError(t, err)
		assert.Equal(t, 1, item.Quantity())
	})

	t.Run("should reject blank names", func(t *testing.T) {
		for _, name := range []string{"", " ", "\t\n"} {
			_, err := order.NewItem(name, 1)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "name %q", name)
			assert.True(t, errs.IsInvalidArgument(err))
		}
	})

	t.Run("should reject non positive quantities", func(t *testing.T) {
		for _, quantity := range []int{0, -1, -100} {
			_, err := order.NewItem("Bandage", quantity)

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, "quantity %d", quantity)
			assert.True(t, errs.IsInvalidArgument(err))
		}
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		_, err := order.NewItem("", 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestItem_Equality(t *testing.T) {
	a, _ := order.NewItem("Syringe", 10)
	b, _ := order.NewItem("Syringe", 10)
	c, _ := order.NewItem("Syringe", 11)
	d, _ := order.NewItem("Bandage", 10)

	assert.Equal(t, a, b)
	assert.True(t, a == b)
	assert.False(t, a == c)
	assert.False(t, a == d)
}

func TestItem_Validate(t *testing.T) {
	var zero order.Item

	require.Error(t, zero.Validate())
	assert.True(t, errs.IsInvalidArgument(zero.Validate()))
}

func TestItem_String(t *testing.T) {
	item, _ := order.NewItem("Bandage", 20)

	assert.Equal(t, "Bandage x20", item.String())
}
