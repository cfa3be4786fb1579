package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
)

// Category represents a storefront product category.
// Categories form a single-level hierarchy: a category may have a parent,
// but parents cannot themselves have parents.
type Category struct {
	shared.BaseAggregateRoot
	Slug        string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name        string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	SortOrder   int        `gorm:"not null;default:0"`
	IsActive    bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category with required fields
func NewCategory(slug, name string) (*Category, error) {
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if err := validateName(name, "Category name"); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Slug:              strings.ToLower(slug),
		Name:              name,
		IsActive:          true,
	}, nil
}

// Update updates the category's basic information
func (c *Category) Update(name, description string) error {
	if err := validateName(name, "Category name"); err != nil {
		return err
	}
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 2000 characters")
	}

	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetParent assigns the category under a parent category.
// The caller must ensure the parent is a root category.
func (c *Category) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}

	c.ParentID = parentID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetSortOrder sets the display order
func (c *Category) SetSortOrder(order int) {
	c.SortOrder = order
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate makes the category visible on the storefront
func (c *Category) Activate() error {
	if c.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Category is already active")
	}

	c.IsActive = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate hides the category from the storefront
func (c *Category) Deactivate() error {
	if !c.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Category is already inactive")
	}

	c.IsActive = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsRoot returns true if the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > 100 {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 100 characters")
	}
	if !slugPattern.MatchString(strings.ToLower(slug)) {
		return shared.NewDomainError("INVALID_SLUG", "Slug can only contain lowercase letters, numbers, and hyphens")
	}
	return nil
}

func validateName(name, label string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", label+" cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", label+" cannot exceed 200 characters")
	}
	return nil
}
