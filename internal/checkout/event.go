package checkout

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const EventOrderCreated = "OrderCreated"

// Producer is satisfied by broker.KafkaProducer.
type Producer interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID             int64                    `json:"id"`
	Total          decimal.Decimal          `json:"total"`
	ShippingCost   decimal.Decimal          `json:"shipping_cost"`
	PaymentMethod  model.PaymentMethod      `json:"payment_method"`
	DeliveryMethod model.DeliveryMethod     `json:"delivery_method"`
	CouponCode     string                   `json:"coupon_code,omitempty"`
	Items          []model.OrderItemPayload `json:"items"`
}

// EventPublisher announces storefront orders on the event bus.
type EventPublisher struct {
	producer Producer
	now      func() time.Time
}

func NewEventPublisher(p Producer) *EventPublisher {
	return &EventPublisher{producer: p, now: time.Now}
}

func (p *EventPublisher) OrderCreated(ctx context.Context, o *model.Order, sent *model.OrderPayload) error {
	payment := o.PaymentMethod
	if payment == "" {
		payment = sent.PaymentMethod
	}
	delivery := o.DeliveryMethod
	if delivery == "" {
		delivery = sent.DeliveryMethod
	}

	event := OrderCreatedEvent{
		EventID:   uuid.New().String(),
		EventType: EventOrderCreated,
		Payload: OrderPayload{
			ID:             o.ID,
			Total:          o.Total,
			ShippingCost:   o.ShippingCost,
			PaymentMethod:  payment,
			DeliveryMethod: delivery,
			CouponCode:     sent.CouponCode,
			Items:          sent.Items,
		},
		Timestamp: p.now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, strconv.FormatInt(o.ID, 10), data)
}
