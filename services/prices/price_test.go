package prices

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {

	t.Run("Incl tax is excl tax plus tax", func(t *testing.T) {
		p := New("EUR", decimal.RequireFromString("10.00"), decimal.RequireFromString("0.60"))
		assert.Equal(t, "10.60", p.InclTax().StringFixed(2))
	})

	t.Run("Incl tax is rounded to minor unit", func(t *testing.T) {
		p := New("EUR", decimal.RequireFromString("10.005"), decimal.RequireFromString("0.001"))
		assert.Equal(t, "10.01", p.InclTax().StringFixed(2))
	})

	t.Run("Equals requires same currency and amounts", func(t *testing.T) {
		p := New("EUR", decimal.RequireFromString("10.00"), decimal.RequireFromString("0.60"))

		assert.True(t, p.Equals(New("EUR", decimal.RequireFromString("10.00"), decimal.RequireFromString("0.60"))))
		assert.True(t, p.Equals(New("EUR", decimal.RequireFromString("10"), decimal.RequireFromString("0.6"))))
		assert.False(t, p.Equals(New("USD", decimal.RequireFromString("10.00"), decimal.RequireFromString("0.60"))))
		assert.False(t, p.Equals(New("EUR", decimal.RequireFromString("10.01"), decimal.RequireFromString("0.60"))))
		assert.False(t, p.Equals(New("EUR", decimal.RequireFromString("10.00"), decimal.RequireFromString("0.61"))))
	})

	t.Run("Add", func(t *testing.T) {
		total := New("EUR", decimal.RequireFromString("90.00"), decimal.RequireFromString("0.00")).
			Add(New("EUR", decimal.RequireFromString("10.00"), decimal.RequireFromString("0.60")))

		assert.Equal(t, "100.00", total.ExclTax.StringFixed(2))
		assert.Equal(t, "100.60", total.InclTax().StringFixed(2))
	})

	t.Run("Zero", func(t *testing.T) {
		p := Zero("EUR")
		assert.True(t, p.ExclTax.IsZero())
		assert.True(t, p.InclTax().IsZero())
	})
}
