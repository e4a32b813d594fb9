package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "sneaker-storefront/errors"
	"sneaker-storefront/newsletter"
)

type NewsletterController struct {
	service *newsletter.Service
}

func NewNewsletterController(service *newsletter.Service) *NewsletterController {
	return &NewsletterController{service: service}
}

type newsletterRequest struct {
	Email string `json:"email" binding:"required"`
}

// Subscribe handles POST /newsletter. The signup completes in the background,
// so the response is 202.
func (nc *NewsletterController) Subscribe(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := nc.service.Subscribe(c.Request.Context(), req.Email, nil); err != nil {
		if errors.Is(err, newsletter.ErrClosed) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service is shutting down"})
			return
		}
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "subscription accepted"})
}
