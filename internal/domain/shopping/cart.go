package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/shared"
)

const maxCartItemQuantity = 99

// Cart is a customer's open shopping cart. Line items snapshot the product
// name and unit price at the moment they were added; checkout revalidates
// against live catalog data.
type Cart struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// CartItem is a single product line in a cart.
type CartItem struct {
	shared.BaseEntity
	CartID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity    int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCart creates an empty cart for a customer.
func NewCart(customerID uuid.UUID) (*Cart, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID is required")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
	}, nil
}

// AddItem adds a product to the cart, snapshotting its name and price.
// Adding a product already in the cart increases the quantity instead of
// creating a second line.
func (c *Cart) AddItem(productID uuid.UUID, productName string, unitPrice decimal.Decimal, quantity int) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return c.updateQuantityAt(i, c.Items[i].Quantity+quantity)
		}
	}

	if quantity > maxCartItemQuantity {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity per item cannot exceed 99")
	}

	c.Items = append(c.Items, CartItem{
		BaseEntity:  shared.NewBaseEntity(),
		CartID:      c.ID,
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	})
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// UpdateItemQuantity sets the quantity for a product line. Zero removes
// the line.
func (c *Cart) UpdateItemQuantity(productID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if quantity == 0 {
				return c.RemoveItem(productID)
			}
			return c.updateQuantityAt(i, quantity)
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the cart")
}

func (c *Cart) updateQuantityAt(i, quantity int) error {
	if quantity > maxCartItemQuantity {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity per item cannot exceed 99")
	}
	c.Items[i].Quantity = quantity
	c.Items[i].UpdatedAt = time.Now()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// RemoveItem deletes a product line from the cart.
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			c.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the cart")
}

// Clear removes every line from the cart.
func (c *Cart) Clear() {
	c.Items = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount returns the total unit count across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal returns the sum of line totals at snapshot prices.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// LineTotal returns unit price times quantity.
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
