package models

import "strconv"

// Product is a catalog entry. Catalog products are built once at startup and never mutated.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       int64    `json:"price"`
	OldPrice    *int64   `json:"old_price,omitempty"` // only set for discounted items
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	IsNew       bool     `json:"is_new,omitempty"`
	IsFeatured  bool     `json:"is_featured,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Sizes       []int    `json:"sizes"`
	Colors      []string `json:"colors"`
	Description string   `json:"description,omitempty"`
}

// Discounted reports whether the product carries an old price above its current one.
func (p Product) Discounted() bool {
	return p.OldPrice != nil && *p.OldPrice > p.Price
}

// DiscountPercent returns the rounded markdown in percent, or 0 when not discounted.
func (p Product) DiscountPercent() int {
	if !p.Discounted() {
		return 0
	}
	off := *p.OldPrice - p.Price
	return int((off*100 + *p.OldPrice/2) / *p.OldPrice)
}

// DefaultSize is the size preselected when a product is added without one: the middle
// element of the size list.
func (p Product) DefaultSize() string {
	if len(p.Sizes) == 0 {
		return ""
	}
	return strconv.Itoa(p.Sizes[len(p.Sizes)/2])
}

// HasSize reports whether size is one of the product's available sizes.
func (p Product) HasSize(size string) bool {
	n, err := strconv.Atoi(size)
	if err != nil {
		return false
	}
	for _, s := range p.Sizes {
		if s == n {
			return true
		}
	}
	return false
}

// Brand is a static brand record shown on the brands page.
type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Category is a static product category. Name is the filter key, Label the display text.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
	Image string `json:"image"`
}
