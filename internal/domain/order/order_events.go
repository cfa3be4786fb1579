package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/shared"
)

const (
	EventTypeOrderPlaced    = "order.placed"
	EventTypeOrderPaid      = "order.paid"
	EventTypeOrderShipped   = "order.shipped"
	EventTypeOrderCancelled = "order.cancelled"
)

// OrderPlacedEvent is emitted when checkout creates an order.
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	Total       decimal.Decimal `json:"total"`
}

func NewOrderPlacedEvent(orderID uuid.UUID, orderNumber string, customerID uuid.UUID, total decimal.Decimal) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, "Order", orderID),
		OrderNumber:     orderNumber,
		CustomerID:      customerID,
		Total:           total,
	}
}

// OrderPaidEvent is emitted when payment is recorded.
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	Total       decimal.Decimal `json:"total"`
}

func NewOrderPaidEvent(orderID uuid.UUID, orderNumber string, customerID uuid.UUID, total decimal.Decimal) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, "Order", orderID),
		OrderNumber:     orderNumber,
		CustomerID:      customerID,
		Total:           total,
	}
}

// OrderShippedEvent is emitted when the order leaves the warehouse.
type OrderShippedEvent struct {
	shared.BaseDomainEvent
	OrderNumber    string    `json:"order_number"`
	CustomerID     uuid.UUID `json:"customer_id"`
	TrackingNumber string    `json:"tracking_number"`
}

func NewOrderShippedEvent(orderID uuid.UUID, orderNumber string, customerID uuid.UUID, trackingNumber string) *OrderShippedEvent {
	return &OrderShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderShipped, "Order", orderID),
		OrderNumber:     orderNumber,
		CustomerID:      customerID,
		TrackingNumber:  trackingNumber,
	}
}

// OrderCancelledEvent is emitted when an order is voided.
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderNumber string    `json:"order_number"`
	CustomerID  uuid.UUID `json:"customer_id"`
	Reason      string    `json:"reason"`
}

func NewOrderCancelledEvent(orderID uuid.UUID, orderNumber string, customerID uuid.UUID, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, "Order", orderID),
		OrderNumber:     orderNumber,
		CustomerID:      customerID,
		Reason:          reason,
	}
}
