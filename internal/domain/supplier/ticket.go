package supplier

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
)

// TicketStatus represents the lifecycle of a support ticket.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority is the supplier-assigned urgency of a ticket.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityNormal TicketPriority = "normal"
	TicketPriorityHigh   TicketPriority = "high"
)

// ResponseAuthor identifies which side of the conversation wrote a
// response.
type ResponseAuthor string

const (
	ResponseAuthorSupplier ResponseAuthor = "supplier"
	ResponseAuthorAdmin    ResponseAuthor = "admin"
)

// Ticket is a supplier support conversation. Responses are append-only;
// a closed ticket accepts no further responses until reopened.
type Ticket struct {
	shared.BaseAggregateRoot
	SupplierID  uuid.UUID          `gorm:"type:uuid;not null;index"`
	Subject     string             `gorm:"type:varchar(200);not null"`
	Body        string             `gorm:"type:text;not null"`
	Status      TicketStatus       `gorm:"type:varchar(20);not null;default:'open'"`
	Priority    TicketPriority     `gorm:"type:varchar(10);not null;default:'normal'"`
	Responses   []TicketResponse   `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
	Attachments []TicketAttachment `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
	ClosedAt    *time.Time
}

// TicketResponse is one message in the conversation.
type TicketResponse struct {
	shared.BaseEntity
	TicketID uuid.UUID      `gorm:"type:uuid;not null;index"`
	AuthorID uuid.UUID      `gorm:"type:uuid;not null"`
	Author   ResponseAuthor `gorm:"type:varchar(10);not null"`
	Body     string         `gorm:"type:text;not null"`
}

// TicketAttachment is an object-storage-backed file attached to a ticket.
type TicketAttachment struct {
	shared.BaseEntity
	TicketID    uuid.UUID `gorm:"type:uuid;not null;index"`
	StorageKey  string    `gorm:"type:varchar(500);not null"`
	FileName    string    `gorm:"type:varchar(255);not null"`
	ContentType string    `gorm:"type:varchar(100)"`
	SizeBytes   int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Ticket) TableName() string {
	return "tickets"
}

// TableName returns the table name for GORM
func (TicketResponse) TableName() string {
	return "ticket_responses"
}

// TableName returns the table name for GORM
func (TicketAttachment) TableName() string {
	return "ticket_attachments"
}

// NewTicket opens a ticket for a supplier.
func NewTicket(supplierID uuid.UUID, subject, body string, priority TicketPriority) (*Ticket, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID is required")
	}
	if strings.TrimSpace(subject) == "" {
		return nil, shared.NewDomainError("INVALID_TICKET", "Subject cannot be empty")
	}
	if len(subject) > 200 {
		return nil, shared.NewDomainError("INVALID_TICKET", "Subject cannot exceed 200 characters")
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("INVALID_TICKET", "Body cannot be empty")
	}
	switch priority {
	case TicketPriorityLow, TicketPriorityNormal, TicketPriorityHigh:
	case "":
		priority = TicketPriorityNormal
	default:
		return nil, shared.NewDomainError("INVALID_TICKET", "Unknown priority")
	}

	return &Ticket{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplierID,
		Subject:           subject,
		Body:              body,
		Status:            TicketStatusOpen,
		Priority:          priority,
	}, nil
}

// AddResponse appends a message. An admin response moves an open ticket
// to in_progress.
func (t *Ticket) AddResponse(authorID uuid.UUID, author ResponseAuthor, body string) error {
	if t.Status == TicketStatusClosed {
		return shared.NewDomainError("TICKET_CLOSED", "Closed tickets do not accept responses")
	}
	if authorID == uuid.Nil {
		return shared.NewDomainError("INVALID_AUTHOR", "Author ID is required")
	}
	if author != ResponseAuthorSupplier && author != ResponseAuthorAdmin {
		return shared.NewDomainError("INVALID_AUTHOR", "Unknown response author")
	}
	if strings.TrimSpace(body) == "" {
		return shared.NewDomainError("INVALID_RESPONSE", "Response body cannot be empty")
	}

	t.Responses = append(t.Responses, TicketResponse{
		BaseEntity: shared.NewBaseEntity(),
		TicketID:   t.ID,
		AuthorID:   authorID,
		Author:     author,
		Body:       body,
	})
	if author == ResponseAuthorAdmin && t.Status == TicketStatusOpen {
		t.Status = TicketStatusInProgress
	}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// AddAttachment records an uploaded file against the ticket.
func (t *Ticket) AddAttachment(storageKey, fileName, contentType string, sizeBytes int64) error {
	if t.Status == TicketStatusClosed {
		return shared.NewDomainError("TICKET_CLOSED", "Closed tickets do not accept attachments")
	}
	if strings.TrimSpace(storageKey) == "" {
		return shared.NewDomainError("INVALID_ATTACHMENT", "Storage key cannot be empty")
	}
	if strings.TrimSpace(fileName) == "" {
		return shared.NewDomainError("INVALID_ATTACHMENT", "File name cannot be empty")
	}
	if sizeBytes < 0 {
		return shared.NewDomainError("INVALID_ATTACHMENT", "Size cannot be negative")
	}

	t.Attachments = append(t.Attachments, TicketAttachment{
		BaseEntity:  shared.NewBaseEntity(),
		TicketID:    t.ID,
		StorageKey:  storageKey,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   sizeBytes,
	})
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Close resolves the ticket.
func (t *Ticket) Close() error {
	if t.Status == TicketStatusClosed {
		return shared.NewDomainError("INVALID_STATUS", "Ticket is already closed")
	}
	now := time.Now()
	t.Status = TicketStatusClosed
	t.ClosedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// Reopen returns a closed ticket to in_progress.
func (t *Ticket) Reopen() error {
	if t.Status != TicketStatusClosed {
		return shared.NewDomainError("INVALID_STATUS", "Only closed tickets can be reopened")
	}
	t.Status = TicketStatusInProgress
	t.ClosedAt = nil
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// IsClosed reports whether the ticket is resolved.
func (t *Ticket) IsClosed() bool {
	return t.Status == TicketStatusClosed
}

// TicketRepository defines the interface for ticket persistence
type TicketRepository interface {
	// FindByID finds a ticket with responses and attachments loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Ticket, error)

	// FindBySupplier returns a supplier's tickets, newest first
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]Ticket, error)

	// FindAll returns tickets matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Ticket, error)

	// FindByStatus returns tickets in a given status
	FindByStatus(ctx context.Context, status TicketStatus, filter shared.Filter) ([]Ticket, error)

	// Save creates or updates a ticket and its children
	Save(ctx context.Context, ticket *Ticket) error

	// Delete removes a ticket and its children
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of tickets matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus returns how many tickets hold the status
	CountByStatus(ctx context.Context, status TicketStatus) (int64, error)
}
