package models

// CartLine is one persisted cart entry. The JSON shape is the one the storefront
// has always kept under the cart key.
type CartLine struct {
	ProductID int    `json:"id" validate:"gt=0"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
	Size      string `json:"size"`
}

// CartItemView is a cart line joined with its catalog product.
type CartItemView struct {
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	LineTotal int64   `json:"line_total"`
}

// Totals is the derived cart summary.
type Totals struct {
	Lines     []CartItemView `json:"items"`
	ItemCount int            `json:"item_count"`
	Subtotal  int64          `json:"subtotal"`
	Shipping  int64          `json:"shipping"`
	Discount  int64          `json:"discount"`
	Total     int64          `json:"total"`
	PromoCode string         `json:"promo_code,omitempty"`
}
