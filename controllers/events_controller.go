package controllers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sneaker-storefront/cart"
	"sneaker-storefront/database"
	apperrors "sneaker-storefront/errors"
	"sneaker-storefront/logger"
	"sneaker-storefront/wishlist"
)

const heartbeatInterval = 15 * time.Second

type EventsController struct {
	store database.Store
	log   *zap.Logger
}

func NewEventsController(store database.Store, log *zap.Logger) *EventsController {
	return &EventsController{store: store, log: log}
}

// Stream handles GET /events: a server-sent event per cart or wishlist change
// in the caller's session. Events carry no state; clients re-read the cart or
// wishlist. A "ready" event marks the subscription as live.
func (ec *EventsController) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromContext(c, ec.log)

	sub, err := sessionStore(c, ec.store).Subscribe(ctx, cart.UpdatedChannel, wishlist.UpdatedChannel)
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrStore, err))
		return
	}
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", "")
	c.Writer.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case n, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent(n.Channel, "")
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", "")
			return true
		case <-ctx.Done():
			return false
		}
	})
	log.Debug("Event stream closed")
}
