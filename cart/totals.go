package cart

import (
	"sneaker-storefront/catalog"
	"sneaker-storefront/models"
)

// Pricing holds the shipping and promo rules applied to a cart.
type Pricing struct {
	FreeShippingThreshold int64
	ShippingFee           int64
	PromoCode             string
	PromoPercent          int64
}

// DefaultPricing is the storefront's standard pricing: free shipping above
// 5000, otherwise 499, and SALE20 for 20% off.
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: 5000,
		ShippingFee:           499,
		PromoCode:             "SALE20",
		PromoPercent:          20,
	}
}

// Shipping returns the delivery fee for a subtotal: free above the threshold,
// the flat fee otherwise. A zero subtotal (empty cart) is charged nothing
// rather than the flat fee, since there is nothing to deliver.
func (p Pricing) Shipping(subtotal int64) int64 {
	if subtotal == 0 || subtotal > p.FreeShippingThreshold {
		return 0
	}
	return p.ShippingFee
}

// Discount returns the promo discount for a subtotal, rounded half up.
func (p Pricing) Discount(subtotal int64) int64 {
	if subtotal <= 0 || p.PromoPercent <= 0 {
		return 0
	}
	return (subtotal*p.PromoPercent + 50) / 100
}

// Compute joins lines with the catalog and derives the cart summary. Lines
// whose product is no longer in the catalog are left out. Prices are the
// catalog's current ones.
func Compute(lines []models.CartLine, cat *catalog.Catalog, pricing Pricing, promoApplied bool) models.Totals {
	t := models.Totals{Lines: make([]models.CartItemView, 0, len(lines))}
	for _, l := range lines {
		p, ok := cat.Product(l.ProductID)
		if !ok {
			continue
		}
		lineTotal := p.Price * int64(l.Quantity)
		t.Lines = append(t.Lines, models.CartItemView{
			Product:   p,
			Quantity:  l.Quantity,
			Size:      l.Size,
			LineTotal: lineTotal,
		})
		t.ItemCount += l.Quantity
		t.Subtotal += lineTotal
	}

	t.Shipping = pricing.Shipping(t.Subtotal)
	if promoApplied {
		t.Discount = pricing.Discount(t.Subtotal)
		t.PromoCode = pricing.PromoCode
	}
	t.Total = max(t.Subtotal-t.Discount+t.Shipping, 0)
	return t
}
