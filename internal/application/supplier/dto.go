package supplier

import (
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/supplier"
)

// UpdateSupplierProfileRequest represents a supplier editing their
// company details
type UpdateSupplierProfileRequest struct {
	CompanyName  string `json:"company_name" binding:"required,min=1,max=200"`
	ContactName  string `json:"contact_name" binding:"required,min=1,max=200"`
	ContactPhone string `json:"contact_phone" binding:"omitempty,max=50"`
	Website      string `json:"website" binding:"omitempty,max=255"`
	Description  string `json:"description" binding:"omitempty,max=2000"`
}

// ReviewSupplierRequest represents an admin approving or rejecting an
// application, or suspending a partner
type ReviewSupplierRequest struct {
	Note string `json:"note" binding:"omitempty,max=1000"`
}

// SupplierListFilter contains filtering options for supplier lists
type SupplierListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Search   string `form:"search"`
}

// CreateTicketRequest represents a supplier opening a support ticket
type CreateTicketRequest struct {
	Subject  string `json:"subject" binding:"required,min=1,max=200"`
	Body     string `json:"body" binding:"required,min=1"`
	Priority string `json:"priority" binding:"omitempty,oneof=low normal high"`
}

// RespondTicketRequest represents a message appended to a ticket
type RespondTicketRequest struct {
	Body string `json:"body" binding:"required,min=1"`
}

// InitiateAttachmentUploadRequest represents requesting an upload slot
// for a ticket attachment
type InitiateAttachmentUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required"`
	SizeBytes   int64  `json:"size_bytes" binding:"required,min=1"`
}

// TicketListFilter contains filtering options for ticket lists
type TicketListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Search   string `form:"search"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID           uuid.UUID  `json:"id"`
	CompanyName  string     `json:"company_name"`
	ContactName  string     `json:"contact_name"`
	ContactEmail string     `json:"contact_email"`
	ContactPhone string     `json:"contact_phone"`
	Website      string     `json:"website"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	ReviewNote   string     `json:"review_note,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TicketResponseEntry represents one conversation message
type TicketResponseEntry struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// TicketAttachmentEntry represents one attached file
type TicketAttachmentEntry struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// TicketDetailResponse represents a full ticket conversation
type TicketDetailResponse struct {
	ID          uuid.UUID               `json:"id"`
	SupplierID  uuid.UUID               `json:"supplier_id"`
	Subject     string                  `json:"subject"`
	Body        string                  `json:"body"`
	Status      string                  `json:"status"`
	Priority    string                  `json:"priority"`
	Responses   []TicketResponseEntry   `json:"responses"`
	Attachments []TicketAttachmentEntry `json:"attachments"`
	CreatedAt   time.Time               `json:"created_at"`
	ClosedAt    *time.Time              `json:"closed_at,omitempty"`
}

// TicketListItemResponse is the trimmed list view of a ticket
type TicketListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	SupplierID    uuid.UUID `json:"supplier_id"`
	Subject       string    `json:"subject"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	ResponseCount int       `json:"response_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AttachmentUploadResponse carries the presigned upload slot
type AttachmentUploadResponse struct {
	AttachmentID uuid.UUID `json:"attachment_id"`
	UploadURL    string    `json:"upload_url"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AttachmentDownloadResponse carries a presigned download URL
type AttachmentDownloadResponse struct {
	FileName    string    `json:"file_name"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ToSupplierResponse converts a domain supplier to a response
func ToSupplierResponse(s *supplier.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:           s.ID,
		CompanyName:  s.CompanyName,
		ContactName:  s.ContactName,
		ContactEmail: s.ContactEmail,
		ContactPhone: s.ContactPhone,
		Website:      s.Website,
		Description:  s.Description,
		Status:       string(s.Status),
		ReviewNote:   s.ReviewNote,
		ReviewedAt:   s.ReviewedAt,
		CreatedAt:    s.CreatedAt,
	}
}

// ToTicketDetailResponse converts a domain ticket to its full view
func ToTicketDetailResponse(t *supplier.Ticket) TicketDetailResponse {
	responses := make([]TicketResponseEntry, len(t.Responses))
	for i := range t.Responses {
		responses[i] = TicketResponseEntry{
			ID:        t.Responses[i].ID,
			Author:    string(t.Responses[i].Author),
			Body:      t.Responses[i].Body,
			CreatedAt: t.Responses[i].CreatedAt,
		}
	}
	attachments := make([]TicketAttachmentEntry, len(t.Attachments))
	for i := range t.Attachments {
		attachments[i] = TicketAttachmentEntry{
			ID:          t.Attachments[i].ID,
			FileName:    t.Attachments[i].FileName,
			ContentType: t.Attachments[i].ContentType,
			SizeBytes:   t.Attachments[i].SizeBytes,
			CreatedAt:   t.Attachments[i].CreatedAt,
		}
	}
	return TicketDetailResponse{
		ID:          t.ID,
		SupplierID:  t.SupplierID,
		Subject:     t.Subject,
		Body:        t.Body,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Responses:   responses,
		Attachments: attachments,
		CreatedAt:   t.CreatedAt,
		ClosedAt:    t.ClosedAt,
	}
}

// ToTicketListItemResponse converts a domain ticket to its list view
func ToTicketListItemResponse(t *supplier.Ticket) TicketListItemResponse {
	return TicketListItemResponse{
		ID:            t.ID,
		SupplierID:    t.SupplierID,
		Subject:       t.Subject,
		Status:        string(t.Status),
		Priority:      string(t.Priority),
		ResponseCount: len(t.Responses),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
