package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sneaker-storefront/catalog"
	"sneaker-storefront/database"
	apperrors "sneaker-storefront/errors"
	"sneaker-storefront/logger"
	"sneaker-storefront/wishlist"
)

type WishlistController struct {
	store   database.Store
	catalog *catalog.Catalog
	log     *zap.Logger
}

func NewWishlistController(store database.Store, cat *catalog.Catalog, log *zap.Logger) *WishlistController {
	return &WishlistController{store: store, catalog: cat, log: log}
}

func (wc *WishlistController) ledger(c *gin.Context) *wishlist.Ledger {
	return wishlist.NewLedger(sessionStore(c, wc.store), wc.catalog, logger.FromContext(c, wc.log))
}

func (wc *WishlistController) respond(c *gin.Context, l *wishlist.Ledger) {
	products, err := l.Products(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": viewsOf(products), "count": len(products)})
}

// GetWishlist handles GET /wishlist.
func (wc *WishlistController) GetWishlist(c *gin.Context) {
	wc.respond(c, wc.ledger(c))
}

// Toggle handles POST /wishlist/:product_id/toggle.
func (wc *WishlistController) Toggle(c *gin.Context) {
	id, err := intParam(c, "product_id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	added, err := wc.ledger(c).Toggle(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_id": id, "in_wishlist": added})
}

// Remove handles DELETE /wishlist/:product_id.
func (wc *WishlistController) Remove(c *gin.Context) {
	id, err := intParam(c, "product_id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	l := wc.ledger(c)
	if err := l.Remove(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	wc.respond(c, l)
}

// Clear handles DELETE /wishlist.
func (wc *WishlistController) Clear(c *gin.Context) {
	l := wc.ledger(c)
	if err := l.Clear(c.Request.Context()); err != nil {
		apperrors.Respond(c, err)
		return
	}
	wc.respond(c, l)
}
