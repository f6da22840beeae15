// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xyzlearns/ShopEase1/internal/checkout"
	"github.com/xyzlearns/ShopEase1/internal/models"
)

const TypeOrderPlaced = "order.placed"

type OrderPlacedEvent struct {
	EventID   string          `json:"eventId"`
	Type      string          `json:"type"`
	OrderID   int64           `json:"orderId"`
	UserID    *int64          `json:"userId"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	ItemCount int             `json:"itemCount"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewOrderPlacedEvent builds the event payload for order.
func NewOrderPlacedEvent(order *models.Order) OrderPlacedEvent {
	count := 0
	for _, it := range order.Items {
		count += it.Quantity
	}
	return OrderPlacedEvent{
		EventID:   uuid.New().String(),
		Type:      TypeOrderPlaced,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total,
		Status:    string(order.Status),
		ItemCount: count,
		Timestamp: time.Now().UTC(),
	}
}

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer MessageWriter
	logger *zap.Logger
}

var _ checkout.Notifier = (*Producer)(nil)

// NewProducer writes to topic on brokers, keyed by order.
func NewProducer(brokers []string, topic string, logger *zap.Logger) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 10 * time.Second,
	}
	return NewProducerWithWriter(w, logger)
}

func NewProducerWithWriter(w MessageWriter, logger *zap.Logger) *Producer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Producer{writer: w, logger: logger}
}

func (p *Producer) Name() string { return "events" }

// OrderPlaced publishes an order.placed event keyed ORDER#<id>.
func (p *Producer) OrderPlaced(ctx context.Context, order *models.Order) error {
	event := NewOrderPlacedEvent(order)
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("ORDER#%d", order.ID)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(TypeOrderPlaced)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish order %d: %w", order.ID, err)
	}

	p.logger.Info("Order event published",
		zap.String("event_id", event.EventID),
		zap.Int64("order_id", order.ID))
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
