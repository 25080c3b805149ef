package producer

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const eventTypeOrderConfirmed = "order.confirmed"

type OrderEventItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderConfirmedEvent struct {
	OrderID        uuid.UUID        `json:"order_id"`
	ConversationID string           `json:"conversation_id"`
	Currency       string           `json:"currency"`
	SubtotalAmount decimal.Decimal  `json:"subtotal_amount"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	DeliveryFee    decimal.Decimal  `json:"delivery_fee"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	Items          []OrderEventItem `json:"items"`
	ConfirmedAt    time.Time        `json:"confirmed_at"`
}

type IOrderEventProducer interface {
	ProduceOrderConfirmed(ctx context.Context, event OrderConfirmedEvent) error
	Close() error
}

type KafkaOrderEventProducer struct {
	writer *kafka.Writer
}

// NewKafkaOrderEventProducer 同一conversation的事件靠key落在同一分區，保序
func NewKafkaOrderEventProducer(brokers []string, topic string) *KafkaOrderEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		BatchTimeout: 50 * time.Millisecond,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("kafka order event producer error: "+msg, args...)
		}),
	}
	return &KafkaOrderEventProducer{writer: writer}
}

func (p *KafkaOrderEventProducer) ProduceOrderConfirmed(ctx context.Context, event OrderConfirmedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ConversationID),
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte(eventTypeOrderConfirmed),
			},
		},
	})
}

func (p *KafkaOrderEventProducer) Close() error {
	return p.writer.Close()
}

var _ IOrderEventProducer = (*KafkaOrderEventProducer)(nil)
