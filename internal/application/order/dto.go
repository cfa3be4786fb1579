package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/order"
)

// CheckoutRequest represents placing an order from the current cart
type CheckoutRequest struct {
	AddressID     uuid.UUID `json:"address_id" binding:"required"`
	PaymentCardID uuid.UUID `json:"payment_card_id" binding:"required"`
	Notes         string    `json:"notes" binding:"omitempty,max=500"`
}

// ShipOrderRequest represents marking an order shipped
type ShipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required,min=1,max=100"`
}

// CancelOrderRequest represents voiding an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// OrderListFilter contains filtering options for order lists
type OrderListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// OrderItemResponse represents one order line in API responses
type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// ShippingAddressResponse is the checkout-time address snapshot
type ShippingAddressResponse struct {
	RecipientName string `json:"recipient_name"`
	Line1         string `json:"line1"`
	Line2         string `json:"line2"`
	City          string `json:"city"`
	Region        string `json:"region"`
	PostalCode    string `json:"postal_code"`
	CountryCode   string `json:"country_code"`
}

// OrderResponse represents a full order in API responses
type OrderResponse struct {
	ID              uuid.UUID               `json:"id"`
	OrderNumber     string                  `json:"order_number"`
	CustomerID      uuid.UUID               `json:"customer_id"`
	Status          string                  `json:"status"`
	Items           []OrderItemResponse     `json:"items"`
	Subtotal        decimal.Decimal         `json:"subtotal"`
	ShippingFee     decimal.Decimal         `json:"shipping_fee"`
	Total           decimal.Decimal         `json:"total"`
	ShippingAddress ShippingAddressResponse `json:"shipping_address"`
	CardBrand       string                  `json:"card_brand,omitempty"`
	CardLastFour    string                  `json:"card_last_four,omitempty"`
	Notes           string                  `json:"notes,omitempty"`
	TrackingNumber  string                  `json:"tracking_number,omitempty"`
	PlacedAt        time.Time               `json:"placed_at"`
	PaidAt          *time.Time              `json:"paid_at,omitempty"`
	ShippedAt       *time.Time              `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time              `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time              `json:"cancelled_at,omitempty"`
}

// OrderListItemResponse is the trimmed list view of an order
type OrderListItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	Status      string          `json:"status"`
	ItemCount   int             `json:"item_count"`
	Total       decimal.Decimal `json:"total"`
	PlacedAt    time.Time       `json:"placed_at"`
}

// ToOrderResponse converts a domain order to a response
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID,
			SKU:         item.SKU,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
	}
	return OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		Status:      string(o.Status),
		Items:       items,
		Subtotal:    o.Subtotal,
		ShippingFee: o.ShippingFee,
		Total:       o.Total,
		ShippingAddress: ShippingAddressResponse{
			RecipientName: o.ShippingName,
			Line1:         o.ShippingLine1,
			Line2:         o.ShippingLine2,
			City:          o.ShippingCity,
			Region:        o.ShippingRegion,
			PostalCode:    o.ShippingPostal,
			CountryCode:   o.ShippingCountry,
		},
		CardBrand:      o.CardBrand,
		CardLastFour:   o.CardLastFour,
		Notes:          o.Notes,
		TrackingNumber: o.TrackingNumber,
		PlacedAt:       o.CreatedAt,
		PaidAt:         o.PaidAt,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
		CancelledAt:    o.CancelledAt,
	}
}

// ToOrderListItemResponse converts a domain order to its list view
func ToOrderListItemResponse(o *order.Order) OrderListItemResponse {
	count := 0
	for i := range o.Items {
		count += o.Items[i].Quantity
	}
	return OrderListItemResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		Status:      string(o.Status),
		ItemCount:   count,
		Total:       o.Total,
		PlacedAt:    o.CreatedAt,
	}
}
