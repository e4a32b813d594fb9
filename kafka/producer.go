package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"sneaker-storefront/models"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes order events to a Kafka topic.
type Producer struct {
	writer messageWriter
	topic  string
	log    *zap.Logger
}

func NewProducer(brokers []string, topic string, log *zap.Logger) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	log.Info("Kafka producer initialized", zap.String("topic", topic), zap.Strings("brokers", brokers))
	return &Producer{writer: w, topic: topic, log: log}
}

// PublishOrder sends an order.placed event keyed by order id.
func (p *Producer) PublishOrder(ctx context.Context, event models.OrderPlacedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event.Event)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Failed to publish order event",
			zap.String("order_id", event.OrderID), zap.String("topic", p.topic), zap.Error(err))
		return err
	}
	p.log.Info("Order event published",
		zap.String("order_id", event.OrderID), zap.String("number", event.Number), zap.String("topic", p.topic))
	return nil
}

func (p *Producer) Close() error {
	p.log.Info("Closing Kafka producer", zap.String("topic", p.topic))
	return p.writer.Close()
}
