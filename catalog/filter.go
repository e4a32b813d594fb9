package catalog

import (
	"slices"
	"sort"
	"strings"

	"sneaker-storefront/models"
)

// SortKey orders a listing.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNewest    SortKey = "newest"
)

// ParseSortKey maps a query value to a SortKey; anything unknown is featured.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortPriceAsc, SortPriceDesc, SortNewest:
		return k
	default:
		return SortFeatured
	}
}

// Criteria selects products from a listing. Empty sets and an empty search
// match everything; a zero price range means no price restriction.
type Criteria struct {
	Categories []string `json:"category"`
	Brands     []string `json:"brand"`
	PriceMin   int64    `json:"price_min"`
	PriceMax   int64    `json:"price_max"`
	Search     string   `json:"q"`
}

// Matches reports whether p passes every active predicate. Search text is
// combined with the other predicates, it does not replace them.
func (c Criteria) Matches(p models.Product) bool {
	if len(c.Categories) > 0 && !slices.Contains(c.Categories, p.Category) {
		return false
	}
	if len(c.Brands) > 0 && !slices.Contains(c.Brands, p.Brand) {
		return false
	}
	if c.hasPriceRange() && (p.Price < c.PriceMin || p.Price > c.PriceMax) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(c.Search)); q != "" {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Brand), q) ||
			strings.Contains(strings.ToLower(p.Category), q)
	}
	return true
}

func (c Criteria) hasPriceRange() bool {
	return c.PriceMin != 0 || c.PriceMax != 0
}

// Apply filters products by criteria and orders the result by key. Ties keep
// their input order. products is not modified.
func Apply(products []models.Product, criteria Criteria, key SortKey) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if criteria.Matches(p) {
			out = append(out, p)
		}
	}
	Sort(out, key)
	return out
}

// Sort orders products in place by key, stably.
func Sort(products []models.Product, key SortKey) {
	var less func(a, b models.Product) bool
	switch key {
	case SortPriceAsc:
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b models.Product) bool { return a.Price > b.Price }
	case SortNewest:
		less = func(a, b models.Product) bool { return a.IsNew && !b.IsNew }
	default:
		less = func(a, b models.Product) bool { return a.IsFeatured && !b.IsFeatured }
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}

// Filter runs Apply over the whole catalog.
func (c *Catalog) Filter(criteria Criteria, key SortKey) []models.Product {
	return Apply(c.products, criteria, key)
}

// DefaultCriteria is the listing's initial state: nothing selected and the
// price range spanning the catalog.
func (c *Catalog) DefaultCriteria() Criteria {
	low, high := c.PriceRange()
	return Criteria{PriceMin: low, PriceMax: high}
}
