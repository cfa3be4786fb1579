package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/shared"
)

// OrderStatus represents where an order sits in its lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// allowedTransitions is the full order status machine. Any transition not
// listed here is rejected.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusRefunded},
	OrderStatusCancelled:  {},
	OrderStatusRefunded:   {},
}

// Order is a placed customer order. Line items and the shipping address
// are snapshots taken at checkout; later catalog or address edits never
// touch a placed order.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber     string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	ShippingFee     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	ShippingName    string          `gorm:"type:varchar(200);not null"`
	ShippingLine1   string          `gorm:"type:varchar(255);not null"`
	ShippingLine2   string          `gorm:"type:varchar(255)"`
	ShippingCity    string          `gorm:"type:varchar(100);not null"`
	ShippingRegion  string          `gorm:"type:varchar(100)"`
	ShippingPostal  string          `gorm:"type:varchar(20);not null"`
	ShippingCountry string          `gorm:"type:varchar(2);not null"`
	CardBrand       string          `gorm:"type:varchar(20)"`
	CardLastFour    string          `gorm:"type:varchar(4)"`
	Notes           string          `gorm:"type:text"`
	TrackingNumber  string          `gorm:"type:varchar(100)"`
	PaidAt         *time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
}

// OrderItem is a product line snapshotted at checkout.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU         string          `gorm:"type:varchar(50);not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity    int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// ShippingAddress is the checkout-time address snapshot.
type ShippingAddress struct {
	RecipientName string
	Line1         string
	Line2         string
	City          string
	Region        string
	PostalCode    string
	CountryCode   string
}

// OrderLine is the input for one order item.
type OrderLine struct {
	ProductID   uuid.UUID
	SKU         string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// NewOrder places an order from validated checkout data. The order starts
// pending and emits an OrderPlaced event.
func NewOrder(orderNumber string, customerID uuid.UUID, lines []OrderLine, shipping ShippingAddress, shippingFee decimal.Decimal) (*Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID is required")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if shippingFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ORDER", "Shipping fee cannot be negative")
	}
	if err := validateShippingAddress(shipping); err != nil {
		return nil, err
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		Status:            OrderStatusPending,
		ShippingFee:       shippingFee,
		ShippingName:      shipping.RecipientName,
		ShippingLine1:     shipping.Line1,
		ShippingLine2:     shipping.Line2,
		ShippingCity:      shipping.City,
		ShippingRegion:    shipping.Region,
		ShippingPostal:    shipping.PostalCode,
		ShippingCountry:   strings.ToUpper(shipping.CountryCode),
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_ORDER", "Order line is missing a product")
		}
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_ORDER", "Order line quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_ORDER", "Order line price cannot be negative")
		}
		o.Items = append(o.Items, OrderItem{
			BaseEntity:  shared.NewBaseEntity(),
			OrderID:     o.ID,
			ProductID:   line.ProductID,
			SKU:         line.SKU,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
		})
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	o.Subtotal = subtotal
	o.Total = subtotal.Add(shippingFee)

	o.AddDomainEvent(NewOrderPlacedEvent(o.ID, o.OrderNumber, customerID, o.Total))
	return o, nil
}

// CanTransitionTo reports whether the status machine allows the move.
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range allowedTransitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (o *Order) transitionTo(target OrderStatus) error {
	if !o.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Cannot move order from "+string(o.Status)+" to "+string(target))
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// MarkPaid records payment, optionally with the masked card used.
func (o *Order) MarkPaid(cardBrand, cardLastFour string) error {
	if err := o.transitionTo(OrderStatusPaid); err != nil {
		return err
	}
	now := time.Now()
	o.PaidAt = &now
	o.CardBrand = cardBrand
	o.CardLastFour = cardLastFour
	o.AddDomainEvent(NewOrderPaidEvent(o.ID, o.OrderNumber, o.CustomerID, o.Total))
	return nil
}

// StartProcessing moves a paid order into fulfillment.
func (o *Order) StartProcessing() error {
	return o.transitionTo(OrderStatusProcessing)
}

// Ship records the shipment with its tracking number.
func (o *Order) Ship(trackingNumber string) error {
	if strings.TrimSpace(trackingNumber) == "" {
		return shared.NewDomainError("INVALID_TRACKING", "Tracking number cannot be empty")
	}
	if err := o.transitionTo(OrderStatusShipped); err != nil {
		return err
	}
	now := time.Now()
	o.ShippedAt = &now
	o.TrackingNumber = trackingNumber
	o.AddDomainEvent(NewOrderShippedEvent(o.ID, o.OrderNumber, o.CustomerID, trackingNumber))
	return nil
}

// MarkDelivered records delivery confirmation.
func (o *Order) MarkDelivered() error {
	if err := o.transitionTo(OrderStatusDelivered); err != nil {
		return err
	}
	now := time.Now()
	o.DeliveredAt = &now
	return nil
}

// Cancel voids the order. Allowed from pending, paid, and processing;
// stock restoration is the caller's responsibility.
func (o *Order) Cancel(reason string) error {
	if err := o.transitionTo(OrderStatusCancelled); err != nil {
		return err
	}
	now := time.Now()
	o.CancelledAt = &now
	if reason != "" {
		o.Notes = reason
	}
	o.AddDomainEvent(NewOrderCancelledEvent(o.ID, o.OrderNumber, o.CustomerID, reason))
	return nil
}

// Refund reverses a delivered order.
func (o *Order) Refund() error {
	return o.transitionTo(OrderStatusRefunded)
}

// IsFinal reports whether the order can make no further transitions.
func (o *Order) IsFinal() bool {
	return len(allowedTransitions[o.Status]) == 0
}

func validateShippingAddress(s ShippingAddress) error {
	if strings.TrimSpace(s.RecipientName) == "" ||
		strings.TrimSpace(s.Line1) == "" ||
		strings.TrimSpace(s.City) == "" ||
		strings.TrimSpace(s.PostalCode) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Shipping address is incomplete")
	}
	if len(strings.TrimSpace(s.CountryCode)) != 2 {
		return shared.NewDomainError("INVALID_ADDRESS", "Country code must be a 2-letter ISO code")
	}
	return nil
}
