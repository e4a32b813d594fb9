package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sneaker-storefront/checkout"
	"sneaker-storefront/database"
	apperrors "sneaker-storefront/errors"
	"sneaker-storefront/models"
	"sneaker-storefront/money"
)

type CheckoutController struct {
	store   database.Store
	service *checkout.Service
}

func NewCheckoutController(store database.Store, service *checkout.Service) *CheckoutController {
	return &CheckoutController{store: store, service: service}
}

// PlaceOrder handles POST /checkout.
func (cc *CheckoutController) PlaceOrder(c *gin.Context) {
	var form models.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	order, err := cc.service.PlaceOrder(c.Request.Context(), sessionStore(c, cc.store), form)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"order":           order,
		"total_formatted": money.Format(order.Total),
	})
}

// SavedDetails handles GET /checkout/saved, prefilling the form with the
// details kept by an earlier order.
func (cc *CheckoutController) SavedDetails(c *gin.Context) {
	form, ok, err := cc.service.SavedForm(c.Request.Context(), sessionStore(c, cc.store))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"form": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": form})
}
