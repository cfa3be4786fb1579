package messaging

import (
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/messaging"
)

// CreateTemplateRequest represents creating an email template
type CreateTemplateRequest struct {
	Code    string `json:"code" binding:"required,min=1,max=100"`
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Subject string `json:"subject" binding:"required,min=1,max=255"`
	Body    string `json:"body" binding:"required,min=1"`
}

// UpdateTemplateRequest represents editing a template's content
type UpdateTemplateRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Subject string `json:"subject" binding:"required,min=1,max=255"`
	Body    string `json:"body" binding:"required,min=1"`
}

// TestRenderRequest represents a test render with sample variables
type TestRenderRequest struct {
	Variables map[string]string `json:"variables"`
}

// TemplateListFilter contains filtering options for template lists
type TemplateListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
}

// TemplateResponse represents an email template in API responses
type TemplateResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
	IsActive     bool      `json:"is_active"`
	Placeholders []string  `json:"placeholders"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RenderResponse represents the outcome of a test render
type RenderResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ToTemplateResponse converts a domain template to a response
func ToTemplateResponse(t *messaging.EmailTemplate) TemplateResponse {
	return TemplateResponse{
		ID:           t.ID,
		Code:         t.Code,
		Name:         t.Name,
		Subject:      t.Subject,
		Body:         t.Body,
		IsActive:     t.IsActive,
		Placeholders: t.Placeholders(),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
