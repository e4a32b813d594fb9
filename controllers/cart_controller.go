package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sneaker-storefront/cart"
	"sneaker-storefront/catalog"
	"sneaker-storefront/database"
	apperrors "sneaker-storefront/errors"
	"sneaker-storefront/logger"
	"sneaker-storefront/models"
	"sneaker-storefront/money"
)

type CartController struct {
	store   database.Store
	catalog *catalog.Catalog
	pricing cart.Pricing
	log     *zap.Logger
}

func NewCartController(store database.Store, cat *catalog.Catalog, pricing cart.Pricing, log *zap.Logger) *CartController {
	return &CartController{store: store, catalog: cat, pricing: pricing, log: log}
}

type addItemRequest struct {
	ProductID int    `json:"product_id" binding:"required,gt=0"`
	Size      string `json:"size"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type promoRequest struct {
	Code string `json:"code" binding:"required"`
}

type cartResponse struct {
	models.Totals
	SubtotalFormatted     string `json:"subtotal_formatted"`
	ShippingFormatted     string `json:"shipping_formatted"`
	DiscountFormatted     string `json:"discount_formatted"`
	TotalFormatted        string `json:"total_formatted"`
	FreeShippingThreshold int64  `json:"free_shipping_threshold"`
	Currency              string `json:"currency"`
}

func (cc *CartController) ledger(c *gin.Context) *cart.Ledger {
	return cart.NewLedger(sessionStore(c, cc.store), cc.catalog, cc.pricing, logger.FromContext(c, cc.log))
}

// respond writes the cart as it is after a handler ran.
func (cc *CartController) respond(c *gin.Context, l *cart.Ledger, status int) {
	totals, err := l.Totals(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(status, cartResponse{
		Totals:                totals,
		SubtotalFormatted:     money.Format(totals.Subtotal),
		ShippingFormatted:     money.Format(totals.Shipping),
		DiscountFormatted:     money.Format(totals.Discount),
		TotalFormatted:        money.Format(totals.Total),
		FreeShippingThreshold: cc.pricing.FreeShippingThreshold,
		Currency:              money.Currency,
	})
}

// GetCart handles GET /cart.
func (cc *CartController) GetCart(c *gin.Context) {
	cc.respond(c, cc.ledger(c), http.StatusOK)
}

// CartCount handles GET /cart/count, the header badge.
func (cc *CartController) CartCount(c *gin.Context) {
	n, err := cc.ledger(c).Count(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// AddItem handles POST /cart/items.
func (cc *CartController) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	l := cc.ledger(c)
	if err := l.Add(c.Request.Context(), req.ProductID, req.Size); err != nil {
		apperrors.Respond(c, err)
		return
	}
	cc.respond(c, l, http.StatusOK)
}

// UpdateItem handles PUT /cart/items/:product_id. Quantities below one leave
// the line as it is.
func (cc *CartController) UpdateItem(c *gin.Context) {
	id, err := intParam(c, "product_id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	l := cc.ledger(c)
	if err := l.SetQuantity(c.Request.Context(), id, *req.Quantity); err != nil {
		apperrors.Respond(c, err)
		return
	}
	cc.respond(c, l, http.StatusOK)
}

// RemoveItem handles DELETE /cart/items/:product_id.
func (cc *CartController) RemoveItem(c *gin.Context) {
	id, err := intParam(c, "product_id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	l := cc.ledger(c)
	if err := l.Remove(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	cc.respond(c, l, http.StatusOK)
}

// ClearCart handles DELETE /cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	l := cc.ledger(c)
	if err := l.Clear(c.Request.Context()); err != nil {
		apperrors.Respond(c, err)
		return
	}
	cc.respond(c, l, http.StatusOK)
}

// ApplyPromo handles POST /cart/promo.
func (cc *CartController) ApplyPromo(c *gin.Context) {
	var req promoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	l := cc.ledger(c)
	if err := l.ApplyPromo(c.Request.Context(), req.Code); err != nil {
		apperrors.Respond(c, err)
		return
	}
	cc.respond(c, l, http.StatusOK)
}

// RemovePromo handles DELETE /cart/promo.
func (cc *CartController) RemovePromo(c *gin.Context) {
	l := cc.ledger(c)
	if err := l.RemovePromo(c.Request.Context()); err != nil {
		apperrors.Respond(c, err)
		return
	}
	cc.respond(c, l, http.StatusOK)
}
