package catalog

import (
	"fmt"
	"strings"

	"sneaker-storefront/models"
)

// Catalog is the immutable product assortment with its brand and category
// lookups. It is safe for concurrent use because nothing mutates it after New.
type Catalog struct {
	products   []models.Product
	byID       map[int]int
	brands     []models.Brand
	categories []models.Category
}

// BrandSummary is a brand with the number of models it has in the catalog.
type BrandSummary struct {
	models.Brand
	Models int `json:"models"`
}

// Default returns the storefront's built-in catalog.
func Default() *Catalog {
	c, err := New(seedProducts, seedBrands, seedCategories)
	if err != nil {
		panic(err)
	}
	return c
}

// New validates products and builds a catalog from them.
func New(products []models.Product, brands []models.Brand, categories []models.Category) (*Catalog, error) {
	c := &Catalog{
		products:   append([]models.Product(nil), products...),
		byID:       make(map[int]int, len(products)),
		brands:     append([]models.Brand(nil), brands...),
		categories: append([]models.Category(nil), categories...),
	}
	for i, p := range c.products {
		if err := validateProduct(p); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

func validateProduct(p models.Product) error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("product %q: id must be positive", p.Name)
	case p.Price <= 0:
		return fmt.Errorf("product %d: price must be positive", p.ID)
	case p.OldPrice != nil && *p.OldPrice <= p.Price:
		return fmt.Errorf("product %d: old price %d must exceed price %d", p.ID, *p.OldPrice, p.Price)
	case len(p.Sizes) == 0:
		return fmt.Errorf("product %d: no sizes", p.ID)
	case len(p.Colors) == 0:
		return fmt.Errorf("product %d: no colors", p.ID)
	case p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5):
		return fmt.Errorf("product %d: rating %.1f out of range", p.ID, *p.Rating)
	}
	return nil
}

// Products returns every product in catalog order.
func (c *Catalog) Products() []models.Product {
	return append([]models.Product(nil), c.products...)
}

// Product looks a product up by id.
func (c *Catalog) Product(id int) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Brands() []models.Brand {
	return append([]models.Brand(nil), c.brands...)
}

func (c *Catalog) Categories() []models.Category {
	return append([]models.Category(nil), c.categories...)
}

// PriceRange returns the lowest and highest price in the catalog.
func (c *Catalog) PriceRange() (low, high int64) {
	for i, p := range c.products {
		if i == 0 || p.Price < low {
			low = p.Price
		}
		if p.Price > high {
			high = p.Price
		}
	}
	return low, high
}

// Featured returns up to n featured products in catalog order.
func (c *Catalog) Featured(n int) []models.Product {
	var out []models.Product
	for _, p := range c.products {
		if len(out) == n {
			break
		}
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out
}

// Related returns up to n other products sharing p's category or brand.
func (c *Catalog) Related(p models.Product, n int) []models.Product {
	var out []models.Product
	for _, other := range c.products {
		if len(out) == n {
			break
		}
		if other.ID != p.ID && (other.Category == p.Category || other.Brand == p.Brand) {
			out = append(out, other)
		}
	}
	return out
}

// QuickSearch is the header search: a case-insensitive substring match on
// name, brand or description. An empty query matches nothing.
func (c *Catalog) QuickSearch(query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []models.Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Brand), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// BrandSummaries lists brands with their model counts.
func (c *Catalog) BrandSummaries() []BrandSummary {
	counts := make(map[string]int, len(c.brands))
	for _, p := range c.products {
		counts[p.Brand]++
	}
	out := make([]BrandSummary, 0, len(c.brands))
	for _, b := range c.brands {
		out = append(out, BrandSummary{Brand: b, Models: counts[b.Name]})
	}
	return out
}
