package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/shared"
)

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"    // Not yet visible on the storefront
	ProductStatusActive   ProductStatus = "active"   // Purchasable
	ProductStatusArchived ProductStatus = "archived" // Retired, kept for order history
)

// Product represents a STEM toy in the catalog.
// It is the aggregate root for catalog operations and owns its stock count.
type Product struct {
	shared.BaseAggregateRoot
	SKU               string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Slug              string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name              string          `gorm:"type:varchar(200);not null"`
	Description       string          `gorm:"type:text"`
	Brand             string          `gorm:"type:varchar(100);index"`
	CategoryID        *uuid.UUID      `gorm:"type:uuid;index"`
	Price             decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CompareAtPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Zero means no strike-through price
	AgeMin            int             `gorm:"not null;default:0"`                    // Recommended age range in years
	AgeMax            int             `gorm:"not null;default:0"`
	StockQuantity     int             `gorm:"not null;default:0"`
	LowStockThreshold int             `gorm:"not null;default:5"`
	Status            ProductStatus   `gorm:"type:varchar(20);not null;default:'draft'"`
	Featured          bool            `gorm:"not null;default:false"`
	SortOrder         int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new draft product with required fields
func NewProduct(sku, slug, name string, price decimal.Decimal) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if err := validateName(name, "Product name"); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Slug:              strings.ToLower(slug),
		Name:              name,
		Price:             price,
		Status:            ProductStatusDraft,
		LowStockThreshold: 5,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name, description, brand string) error {
	if err := validateName(name, "Product name"); err != nil {
		return err
	}
	if len(description) > 10000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 10000 characters")
	}
	if len(brand) > 100 {
		return shared.NewDomainError("INVALID_BRAND", "Brand cannot exceed 100 characters")
	}

	p.Name = name
	p.Description = description
	p.Brand = brand
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPricing sets the sale price and optional compare-at price.
// A zero compareAt clears the strike-through price.
func (p *Product) SetPricing(price, compareAt decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if compareAt.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Compare-at price cannot be negative")
	}
	if !compareAt.IsZero() && compareAt.LessThan(price) {
		return shared.NewDomainError("INVALID_PRICE", "Compare-at price must not be lower than the sale price")
	}

	p.Price = price
	p.CompareAtPrice = compareAt
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetAgeRange sets the recommended age range in years
func (p *Product) SetAgeRange(min, max int) error {
	if min < 0 || max < 0 {
		return shared.NewDomainError("INVALID_AGE_RANGE", "Age range cannot be negative")
	}
	if max != 0 && min > max {
		return shared.NewDomainError("INVALID_AGE_RANGE", "Minimum age cannot exceed maximum age")
	}

	p.AgeMin = min
	p.AgeMax = max
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetFeatured toggles the storefront featured flag
func (p *Product) SetFeatured(featured bool) {
	p.Featured = featured
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetLowStockThreshold sets the threshold used for low-stock reporting
func (p *Product) SetLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}

	p.LowStockThreshold = threshold
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AdjustStock applies a relative stock correction (admin operation).
// The resulting quantity must not go negative.
func (p *Product) AdjustStock(delta int) error {
	next := p.StockQuantity + delta
	if next < 0 {
		return shared.ErrInsufficientStock
	}

	p.StockQuantity = next
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// DeductStock removes quantity sold at checkout
func (p *Product) DeductStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.StockQuantity < quantity {
		return shared.ErrInsufficientStock
	}

	p.StockQuantity -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Restock returns quantity to stock (cancellation, return)
func (p *Product) Restock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	p.StockQuantity += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Publish makes the product purchasable on the storefront
func (p *Product) Publish() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already published")
	}
	if p.Price.IsZero() {
		return shared.NewDomainError("INVALID_PRICE", "Cannot publish a product without a price")
	}

	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPublishedEvent(p))

	return nil
}

// Archive retires the product from the storefront
func (p *Product) Archive() error {
	if p.Status == ProductStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Product is already archived")
	}

	p.Status = ProductStatusArchived
	p.Featured = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductArchivedEvent(p))

	return nil
}

// IsActive returns true if the product is purchasable
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsArchived returns true if the product has been retired
func (p *Product) IsArchived() bool {
	return p.Status == ProductStatusArchived
}

// InStock returns true if any stock remains
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// IsLowStock returns true if stock has fallen to or below the threshold
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

// DiscountPercent returns the discount implied by the compare-at price,
// rounded to the nearest whole percent. Zero when no compare-at is set.
func (p *Product) DiscountPercent() int {
	if p.CompareAtPrice.IsZero() || p.CompareAtPrice.LessThanOrEqual(p.Price) {
		return 0
	}
	diff := p.CompareAtPrice.Sub(p.Price)
	pct := diff.Div(p.CompareAtPrice).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
