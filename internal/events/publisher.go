package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/config"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEvent is the wire form of a status change on the events topic.
type OrderEvent struct {
	OrderID string    `json:"orderId"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	At      time.Time `json:"at"`
}

type Publisher struct {
	logger *slog.Logger
	writer messageWriter
}

func NewPublisher(logger *slog.Logger, cfg config.Kafka) *Publisher {
	return &Publisher{
		logger: logger.With(slog.String("service", "events")),
		// Hash keeps every event of one order on the same partition.
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.EventsTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           cfg.BatchTimeout,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Publisher) PublishOrderEvent(ctx context.Context, e entities.OrderEvent) error {
	data, err := json.Marshal(OrderEvent{
		OrderID: e.OrderID,
		From:    string(e.From),
		To:      string(e.To),
		At:      e.At.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := kafka.Message{Key: []byte(e.OrderID), Value: data, Time: e.At.UTC()}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		eventsFailed.Inc()
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	eventsPublished.WithLabelValues(string(e.To)).Inc()
	p.logger.DebugContext(ctx, "order event published",
		slog.String("order_id", e.OrderID),
		slog.String("from", string(e.From)),
		slog.String("to", string(e.To)),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
