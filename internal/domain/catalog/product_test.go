package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("valid product", func(t *testing.T) {
		p, err := NewProduct("Classic Abaya", decimal.NewFromInt(250), CategoryCasual)
		require.NoError(t, err)
		assert.Equal(t, StockModeSimple, p.StockMode)
		assert.False(t, p.InStockFor("", ""))
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := NewProduct("X", decimal.NewFromInt(10), Category("Sport"))
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		_, err := NewProduct("X", decimal.Zero, CategoryCasual)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestProduct_StockModes(t *testing.T) {
	t.Run("simple mode ignores size and color", func(t *testing.T) {
		p, _ := NewProduct("P", decimal.NewFromInt(100), CategoryCasual)
		require.NoError(t, p.SetStock(StockModeSimple, []VariantStock{{Quantity: 3, InStock: true}}))

		assert.True(t, p.InStockFor("M", "black"))
		assert.True(t, p.InStockFor("", ""))
	})

	t.Run("by-size mode matches size only", func(t *testing.T) {
		p, _ := NewProduct("P", decimal.NewFromInt(100), CategoryFestive)
		require.NoError(t, p.SetStock(StockModeBySize, []VariantStock{
			{Size: "M", Quantity: 2, InStock: true},
			{Size: "L", Quantity: 0, InStock: false},
		}))

		assert.True(t, p.InStockFor("M", "any-color"))
		assert.False(t, p.InStockFor("L", ""))
		assert.False(t, p.InStockFor("XL", ""))
	})

	t.Run("by-variant mode matches size and color", func(t *testing.T) {
		p, _ := NewProduct("P", decimal.NewFromInt(100), CategoryOffice)
		require.NoError(t, p.SetStock(StockModeByVariant, []VariantStock{
			{Size: "M", Color: "black", Quantity: 1, InStock: true},
			{Size: "M", Color: "navy", Quantity: 0, InStock: false},
		}))

		assert.True(t, p.InStockFor("M", "black"))
		assert.False(t, p.InStockFor("M", "navy"))
		assert.False(t, p.InStockFor("L", "black"))
	})
}

func TestProduct_AdjustStock(t *testing.T) {
	p, _ := NewProduct("P", decimal.NewFromInt(100), CategoryCasual)
	require.NoError(t, p.SetStock(StockModeBySize, []VariantStock{
		{Size: "M", Quantity: 2, InStock: true},
	}))

	t.Run("decrement flips in-stock at zero", func(t *testing.T) {
		require.NoError(t, p.AdjustStock("M", "", -2))
		assert.False(t, p.InStockFor("M", ""))
	})

	t.Run("quantity clamps at zero", func(t *testing.T) {
		require.NoError(t, p.AdjustStock("M", "", -5))
		assert.Equal(t, 0, p.TotalStock())
	})

	t.Run("restock flips in-stock back", func(t *testing.T) {
		require.NoError(t, p.AdjustStock("M", "", 4))
		assert.True(t, p.InStockFor("M", ""))
		assert.Equal(t, 4, p.TotalStock())
	})

	t.Run("unknown variant errors", func(t *testing.T) {
		assert.ErrorIs(t, p.AdjustStock("XXL", "", 1), ErrVariantNotFound)
	})
}

func TestProduct_OnSale(t *testing.T) {
	p, _ := NewProduct("P", decimal.NewFromInt(100), CategoryCasual)
	assert.False(t, p.OnSale())

	original := decimal.NewFromInt(150)
	p.OriginalPrice = &original
	assert.True(t, p.OnSale())
}
