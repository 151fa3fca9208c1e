package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microshop/backend/internal/domain/shared"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		p, err := NewProduct("Widget", decimal.NewFromFloat(9.99), 10)
		require.NoError(t, err)
		require.NotNil(t, p)

		assert.Equal(t, "Widget", p.Name)
		assert.True(t, decimal.NewFromFloat(9.99).Equal(p.Price))
		assert.Equal(t, 10, p.Quantity)
		assert.True(t, p.HasIdentifier())
		assert.Equal(t, 1, p.GetVersion())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("", decimal.Zero, 0)
		require.Error(t, err)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("Widget", decimal.NewFromFloat(-0.01), 0)
		require.Error(t, err)
	})

	t.Run("fails with negative quantity", func(t *testing.T) {
		_, err := NewProduct("Widget", decimal.Zero, -1)
		require.Error(t, err)
	})
}

func TestProduct_Update(t *testing.T) {
	p, err := NewProduct("Widget", decimal.NewFromFloat(9.99), 10)
	require.NoError(t, err)

	require.NoError(t, p.Update("Gadget", decimal.NewFromFloat(19.95), 4))

	assert.Equal(t, "Gadget", p.Name)
	assert.True(t, decimal.NewFromFloat(19.95).Equal(p.Price))
	assert.Equal(t, 4, p.Quantity)
	assert.Equal(t, 2, p.GetVersion())
}

func TestProduct_Decrement(t *testing.T) {
	t.Run("subtracts available quantity", func(t *testing.T) {
		p, err := NewProduct("Widget", decimal.Zero, 10)
		require.NoError(t, err)

		require.NoError(t, p.Decrement(5))
		assert.Equal(t, 5, p.Quantity)

		require.NoError(t, p.Decrement(5))
		assert.Equal(t, 0, p.Quantity)
	})

	t.Run("fails when amount exceeds stock", func(t *testing.T) {
		p, err := NewProduct("Widget", decimal.Zero, 5)
		require.NoError(t, err)

		err = p.Decrement(10)
		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, 5, p.Quantity)
	})

	t.Run("fails with non-positive amount", func(t *testing.T) {
		p, err := NewProduct("Widget", decimal.Zero, 5)
		require.NoError(t, err)

		require.Error(t, p.Decrement(0))
		require.Error(t, p.Decrement(-1))
		assert.Equal(t, 5, p.Quantity)
	})
}
