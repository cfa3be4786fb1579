package messaging

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
)

// EmailTemplate is an admin-editable message template. Placeholders use
// {{name}} syntax; unknown placeholders are left intact on render so a
// missing variable is visible in the output rather than silently blank.
type EmailTemplate struct {
	shared.BaseAggregateRoot
	Code     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(200);not null"`
	Subject  string `gorm:"type:varchar(255);not null"`
	Body     string `gorm:"type:text;not null"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (EmailTemplate) TableName() string {
	return "email_templates"
}

// Well-known template codes used by event handlers.
const (
	TemplateOrderConfirmation = "order_confirmation"
	TemplateOrderShipped      = "order_shipped"
	TemplateWelcome           = "welcome"
	TemplateSupplierApproved  = "supplier_approved"
)

var templateCodePattern = regexp.MustCompile(`^[a-z0-9]+(?:_[a-z0-9]+)*$`)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// NewEmailTemplate creates an active template.
func NewEmailTemplate(code, name, subject, body string) (*EmailTemplate, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if !templateCodePattern.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_TEMPLATE", "Code must be lowercase letters, digits, and underscores")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_TEMPLATE", "Name cannot be empty")
	}
	if strings.TrimSpace(subject) == "" {
		return nil, shared.NewDomainError("INVALID_TEMPLATE", "Subject cannot be empty")
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("INVALID_TEMPLATE", "Body cannot be empty")
	}

	return &EmailTemplate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Subject:           subject,
		Body:              body,
		IsActive:          true,
	}, nil
}

// Update replaces the template content.
func (t *EmailTemplate) Update(name, subject, body string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_TEMPLATE", "Name cannot be empty")
	}
	if strings.TrimSpace(subject) == "" {
		return shared.NewDomainError("INVALID_TEMPLATE", "Subject cannot be empty")
	}
	if strings.TrimSpace(body) == "" {
		return shared.NewDomainError("INVALID_TEMPLATE", "Body cannot be empty")
	}
	t.Name = name
	t.Subject = subject
	t.Body = body
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Activate enables the template for sending.
func (t *EmailTemplate) Activate() error {
	if t.IsActive {
		return shared.NewDomainError("INVALID_STATUS", "Template is already active")
	}
	t.IsActive = true
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Deactivate disables the template; rendering an inactive template fails.
func (t *EmailTemplate) Deactivate() error {
	if !t.IsActive {
		return shared.NewDomainError("INVALID_STATUS", "Template is already inactive")
	}
	t.IsActive = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// RenderedEmail is the outcome of rendering a template with variables.
type RenderedEmail struct {
	Subject string
	Body    string
}

// Render substitutes {{name}} placeholders in subject and body. Unknown
// placeholders are left intact.
func (t *EmailTemplate) Render(vars map[string]string) (*RenderedEmail, error) {
	if !t.IsActive {
		return nil, shared.NewDomainError("TEMPLATE_INACTIVE", "Cannot render an inactive template")
	}
	return &RenderedEmail{
		Subject: substitute(t.Subject, vars),
		Body:    substitute(t.Body, vars),
	}, nil
}

// Placeholders returns the distinct placeholder names referenced by the
// subject and body, in first-appearance order.
func (t *EmailTemplate) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	for _, match := range placeholderPattern.FindAllStringSubmatch(t.Subject+"\n"+t.Body, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}
	return names
}

func substitute(text string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}

// EmailTemplateRepository defines the interface for template persistence
type EmailTemplateRepository interface {
	// FindByID finds a template by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*EmailTemplate, error)

	// FindByCode finds a template by its unique code
	FindByCode(ctx context.Context, code string) (*EmailTemplate, error)

	// FindAll returns templates matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]EmailTemplate, error)

	// Save creates or updates a template
	Save(ctx context.Context, template *EmailTemplate) error

	// Delete removes a template
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of templates matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks whether a template with the code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
