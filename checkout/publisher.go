package checkout

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	awspkg "sneaker-storefront/pkg/aws"
	"sneaker-storefront/models"
)

// EventPublisher delivers order.placed events. kafka.Producer implements it
// directly.
type EventPublisher interface {
	PublishOrder(ctx context.Context, event models.OrderPlacedEvent) error
}

// LogPublisher only logs events. It is the default when no broker is set up.
type LogPublisher struct {
	Log *zap.Logger
}

func (p LogPublisher) PublishOrder(_ context.Context, event models.OrderPlacedEvent) error {
	p.Log.Info("Order placed",
		zap.String("order_id", event.OrderID),
		zap.String("number", event.Number),
		zap.Int64("total", event.Total),
		zap.Int("lines", len(event.Items)))
	return nil
}

// SNSPublisher sends events to an SNS topic with the event name as a message
// attribute.
type SNSPublisher struct {
	client   awspkg.SNSPublisher
	topicARN string
}

func NewSNSPublisher(client awspkg.SNSPublisher, topicARN string) *SNSPublisher {
	return &SNSPublisher{client: client, topicARN: topicARN}
}

func (p *SNSPublisher) PublishOrder(ctx context.Context, event models.OrderPlacedEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.topicARN, b, map[string]string{"event_type": event.Event})
}
