package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/config"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

type PaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, orderID string, res entities.CaptureResult) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaHandler struct {
	dlq       messageWriter
	reader    messageReader
	logger    *slog.Logger
	validate  *validator.Validate
	confirmer PaymentConfirmer
}

// NewKafkaHandler consumes capture notifications relayed from the payment processor.
func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, confirmer PaymentConfirmer) *kafkaHandler {
	return &kafkaHandler{
		logger: logger.With(slog.String("handler", "kafka")),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.CaptureTopic,
			MaxWait: cfg.ReaderMaxWait,
		}),
		dlq: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
		validate:  validator.New(),
		confirmer: confirmer,
	}
}

func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				break
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		h.process(ctx, m)
	}
}

func (h *kafkaHandler) process(ctx context.Context, m kafka.Message) {
	capturesInProgress.Inc()
	defer capturesInProgress.Dec()
	start := time.Now()

	if err := h.handleCapture(ctx, m); err != nil {
		capturesFailed.Inc()
		h.logger.Error("failed to handle capture", slog.Any("error", err), slog.Int64("offset", m.Offset))

		if err := h.WriteToDLQ(ctx, m); err != nil {
			h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
			return
		}
		capturesDLQ.Inc()
	} else {
		capturesProcessed.Inc()
	}
	captureProcessingDuration.Observe(time.Since(start).Seconds())

	if err := h.reader.CommitMessages(ctx, m); err != nil {
		commitErrors.Inc()
		h.logger.Error("failed to commit message", slog.Any("error", err))
	}
}

func (h *kafkaHandler) handleCapture(ctx context.Context, m kafka.Message) error {
	var n CaptureNotification
	if err := json.Unmarshal(m.Value, &n); err != nil {
		return fmt.Errorf("failed to unmarshal capture: %w", err)
	}

	if err := h.validate.Struct(n); err != nil {
		return fmt.Errorf("invalid capture data: %w", err)
	}

	res := NotificationJSONToEntity(n)
	if !res.Completed() {
		h.logger.Debug("capture not completed, skipping",
			slog.String("intent_id", n.IntentID),
			slog.String("status", n.Status),
		)
		return nil
	}

	return h.confirmer.ConfirmPayment(ctx, n.CorrelationID, res)
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	m.Topic = fmt.Sprintf("%s-dlq", m.Topic)
	return h.dlq.WriteMessages(ctx, m)
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
