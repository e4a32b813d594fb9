package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sneaker-storefront/catalog"
	"sneaker-storefront/models"
)

func TestPricing_Shipping(t *testing.T) {
	p := DefaultPricing()
	assert.Equal(t, int64(0), p.Shipping(0))
	assert.Equal(t, int64(499), p.Shipping(1))
	assert.Equal(t, int64(499), p.Shipping(5000))
	assert.Equal(t, int64(0), p.Shipping(5001))
}

func TestPricing_Discount(t *testing.T) {
	p := DefaultPricing()
	assert.Equal(t, int64(0), p.Discount(0))
	assert.Equal(t, int64(2598), p.Discount(12990))
	assert.Equal(t, int64(1), p.Discount(3)) // 0.6 rounds up
	assert.Equal(t, int64(0), p.Discount(2)) // 0.4 rounds down
}

func TestCompute_NeverNegative(t *testing.T) {
	p := Pricing{FreeShippingThreshold: 0, ShippingFee: 0, PromoCode: "ALL", PromoPercent: 150}
	lines := []models.CartLine{{ProductID: 4, Quantity: 1, Size: "40"}}

	totals := Compute(lines, catalog.Default(), p, true)
	assert.Equal(t, int64(0), totals.Total)
	assert.Greater(t, totals.Discount, totals.Subtotal)
}

func TestCompute_ShippingBelowThreshold(t *testing.T) {
	cat, err := catalog.New([]models.Product{
		{ID: 1, Name: "Cheap", Price: 1000, Sizes: []int{40}, Colors: []string{"white"}},
	}, nil, nil)
	assert.NoError(t, err)

	totals := Compute([]models.CartLine{{ProductID: 1, Quantity: 2, Size: "40"}}, cat, DefaultPricing(), false)
	assert.Equal(t, int64(2000), totals.Subtotal)
	assert.Equal(t, int64(499), totals.Shipping)
	assert.Equal(t, int64(2499), totals.Total)
}
