package catalog

import (
	"github.com/stemkits/backend/internal/domain/shared"
)

// Event types for the catalog context
const (
	EventTypeProductCreated   = "catalog.product.created"
	EventTypeProductUpdated   = "catalog.product.updated"
	EventTypeProductPublished = "catalog.product.published"
	EventTypeProductArchived  = "catalog.product.archived"
)

// ProductCreatedEvent is emitted when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", p.ID),
		SKU:             p.SKU,
		Name:            p.Name,
	}
}

// ProductUpdatedEvent is emitted when product details change
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	SKU string `json:"sku"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, "Product", p.ID),
		SKU:             p.SKU,
	}
}

// ProductPublishedEvent is emitted when a product goes live
type ProductPublishedEvent struct {
	shared.BaseDomainEvent
	SKU string `json:"sku"`
}

// NewProductPublishedEvent creates a new ProductPublishedEvent
func NewProductPublishedEvent(p *Product) *ProductPublishedEvent {
	return &ProductPublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPublished, "Product", p.ID),
		SKU:             p.SKU,
	}
}

// ProductArchivedEvent is emitted when a product is retired
type ProductArchivedEvent struct {
	shared.BaseDomainEvent
	SKU string `json:"sku"`
}

// NewProductArchivedEvent creates a new ProductArchivedEvent
func NewProductArchivedEvent(p *Product) *ProductArchivedEvent {
	return &ProductArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductArchived, "Product", p.ID),
		SKU:             p.SKU,
	}
}
