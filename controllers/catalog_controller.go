package controllers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"sneaker-storefront/catalog"
	apperrors "sneaker-storefront/errors"
	"sneaker-storefront/models"
	"sneaker-storefront/money"
)

const relatedProducts = 4

type CatalogController struct {
	catalog *catalog.Catalog
}

func NewCatalogController(cat *catalog.Catalog) *CatalogController {
	return &CatalogController{catalog: cat}
}

type productView struct {
	models.Product
	PriceFormatted    string `json:"price_formatted"`
	OldPriceFormatted string `json:"old_price_formatted,omitempty"`
	DiscountPercent   int    `json:"discount_percent,omitempty"`
}

func viewOf(p models.Product) productView {
	v := productView{Product: p, PriceFormatted: money.Format(p.Price), DiscountPercent: p.DiscountPercent()}
	if p.OldPrice != nil {
		v.OldPriceFormatted = money.Format(*p.OldPrice)
	}
	return v
}

func viewsOf(products []models.Product) []productView {
	out := make([]productView, len(products))
	for i, p := range products {
		out[i] = viewOf(p)
	}
	return out
}

// ListProducts handles GET /products with the listing filters.
func (cc *CatalogController) ListProducts(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	key := catalog.ParseSortKey(c.Query("sort"))
	products := cc.catalog.Filter(criteria, key)
	low, high := cc.catalog.PriceRange()

	c.JSON(http.StatusOK, gin.H{
		"products":    viewsOf(products),
		"total":       len(products),
		"sort":        key,
		"price_range": gin.H{"min": low, "max": high},
	})
}

// SearchProducts handles GET /products/search, the header search box.
func (cc *CatalogController) SearchProducts(c *gin.Context) {
	products := cc.catalog.QuickSearch(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"products": viewsOf(products), "total": len(products)})
}

// GetProduct handles GET /products/:id.
func (cc *CatalogController) GetProduct(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	p, ok := cc.catalog.Product(id)
	if !ok {
		apperrors.Respond(c, apperrors.ErrProductNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product":      viewOf(p),
		"default_size": p.DefaultSize(),
		"related":      viewsOf(cc.catalog.Related(p, relatedProducts)),
	})
}

// FeaturedProducts handles GET /products/featured for the home page.
func (cc *CatalogController) FeaturedProducts(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("limit", "4"))
	if err != nil || n < 1 {
		badRequest(c, fmt.Errorf("invalid limit %q", c.Query("limit")))
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": viewsOf(cc.catalog.Featured(n))})
}

func (cc *CatalogController) ListBrands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"brands": cc.catalog.BrandSummaries()})
}

func (cc *CatalogController) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": cc.catalog.Categories()})
}

// criteriaFromQuery reads repeated or comma separated category and brand
// values, the price bounds and the search text.
func criteriaFromQuery(c *gin.Context) (catalog.Criteria, error) {
	criteria := catalog.Criteria{
		Categories: multiValue(c, "category"),
		Brands:     multiValue(c, "brand"),
		Search:     c.Query("q"),
	}
	var err error
	if criteria.PriceMin, err = priceParam(c, "min_price"); err != nil {
		return criteria, err
	}
	if criteria.PriceMax, err = priceParam(c, "max_price"); err != nil {
		return criteria, err
	}
	// one open bound means the catalog's own bound
	if criteria.PriceMin != 0 && criteria.PriceMax == 0 {
		criteria.PriceMax = math.MaxInt64
	}
	if criteria.PriceMin > criteria.PriceMax {
		return criteria, fmt.Errorf("min_price %d exceeds max_price %d", criteria.PriceMin, criteria.PriceMax)
	}
	return criteria, nil
}

func multiValue(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func priceParam(c *gin.Context, key string) (int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}
