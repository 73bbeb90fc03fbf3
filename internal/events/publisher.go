package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/cogworks/invoice-service/internal/config"
	"github.com/cogworks/invoice-service/internal/models"
)

// Publisher emits invoice lifecycle events. Publishing is best-effort:
// callers log failures and continue.
type Publisher interface {
	PublishInvoiceIssued(ctx context.Context, rec *models.InvoiceRecord) error
	Close() error
}

// Ensure KafkaPublisher implements Publisher
var _ Publisher = (*KafkaPublisher)(nil)

// EventType represents the type of invoice event.
type EventType string

const (
	EventTypeInvoiceIssued EventType = "invoice.issued"
)

// InvoiceEvent represents an invoice-related event.
type InvoiceEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	InvoiceNo string          `json:"invoice_no"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// KafkaPublisher publishes invoice events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	logger *zap.Logger
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.InvoicesTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		topic:  cfg.InvoicesTopic,
		logger: logger,
	}
}

// PublishInvoiceIssued publishes an invoice issued event carrying the
// persisted summary row.
func (p *KafkaPublisher) PublishInvoiceIssued(ctx context.Context, rec *models.InvoiceRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	event := InvoiceEvent{
		ID:        uuid.New().String(),
		Type:      EventTypeInvoiceIssued,
		InvoiceNo: rec.InvoiceNo,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(rec.InvoiceNo),
		Value: payload,
	})
	if err != nil {
		p.logger.Error("Failed to publish invoice event",
			zap.String("invoice_no", rec.InvoiceNo),
			zap.Error(err),
		)
		return err
	}

	p.logger.Debug("Invoice event published",
		zap.String("invoice_no", rec.InvoiceNo),
		zap.String("topic", p.topic),
	)
	return nil
}

// Close closes the underlying Kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher discards all events. Used when invoice events are
// disabled by configuration.
type NoopPublisher struct{}

func (NoopPublisher) PublishInvoiceIssued(ctx context.Context, rec *models.InvoiceRecord) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
