package supplier

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stemkits/backend/internal/domain/supplier"
	"go.uber.org/zap"
)

// ObjectStorageService defines the storage operations ticket attachments
// need, implemented by the infrastructure layer (S3-compatible).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error
}

// TicketServiceConfig holds limits for ticket attachments
type TicketServiceConfig struct {
	UploadURLExpiry          time.Duration
	DownloadURLExpiry        time.Duration
	MaxAttachmentsPerTicket  int
	MaxAttachmentSizeBytes   int64
}

// DefaultTicketServiceConfig returns the default configuration
func DefaultTicketServiceConfig() TicketServiceConfig {
	return TicketServiceConfig{
		UploadURLExpiry:         15 * time.Minute,
		DownloadURLExpiry:       1 * time.Hour,
		MaxAttachmentsPerTicket: 5,
		MaxAttachmentSizeBytes:  20 << 20,
	}
}

// TicketService handles supplier support tickets
type TicketService struct {
	ticketRepo   supplier.TicketRepository
	supplierRepo supplier.SupplierRepository
	storage      ObjectStorageService
	config       TicketServiceConfig
	logger       *zap.Logger
}

// NewTicketService creates a new ticket service
func NewTicketService(
	ticketRepo supplier.TicketRepository,
	supplierRepo supplier.SupplierRepository,
	storage ObjectStorageService,
	logger *zap.Logger,
) *TicketService {
	return &TicketService{
		ticketRepo:   ticketRepo,
		supplierRepo: supplierRepo,
		storage:      storage,
		config:       DefaultTicketServiceConfig(),
		logger:       logger,
	}
}

// SetConfig sets the service configuration
func (s *TicketService) SetConfig(config TicketServiceConfig) {
	s.config = config
}

// Create opens a ticket for the signed-in supplier
func (s *TicketService) Create(ctx context.Context, userID uuid.UUID, req CreateTicketRequest) (*TicketDetailResponse, error) {
	vendor, err := s.approvedSupplier(ctx, userID)
	if err != nil {
		return nil, err
	}

	ticket, err := supplier.NewTicket(vendor.ID, req.Subject, req.Body, supplier.TicketPriority(req.Priority))
	if err != nil {
		return nil, err
	}
	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info("Ticket opened",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("supplier_id", vendor.ID.String()),
		zap.String("priority", string(ticket.Priority)))

	response := ToTicketDetailResponse(ticket)
	return &response, nil
}

// GetOwn returns one of the supplier's tickets
func (s *TicketService) GetOwn(ctx context.Context, userID, ticketID uuid.UUID) (*TicketDetailResponse, error) {
	ticket, _, err := s.ownedTicket(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	response := ToTicketDetailResponse(ticket)
	return &response, nil
}

// GetByID returns a ticket for the back office
func (s *TicketService) GetByID(ctx context.Context, ticketID uuid.UUID) (*TicketDetailResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	response := ToTicketDetailResponse(ticket)
	return &response, nil
}

// ListOwn returns the supplier's tickets, newest first
func (s *TicketService) ListOwn(ctx context.Context, userID uuid.UUID, filter TicketListFilter) ([]TicketListItemResponse, int64, error) {
	vendor, err := s.supplierRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	tickets, err := s.ticketRepo.FindBySupplier(ctx, vendor.ID, buildTicketFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	return toTicketListItems(tickets), int64(len(tickets)), nil
}

// List returns tickets for the back office
func (s *TicketService) List(ctx context.Context, filter TicketListFilter) ([]TicketListItemResponse, int64, error) {
	domainFilter := buildTicketFilter(filter)

	var tickets []supplier.Ticket
	var err error
	if filter.Status != "" {
		tickets, err = s.ticketRepo.FindByStatus(ctx, supplier.TicketStatus(filter.Status), domainFilter)
	} else {
		tickets, err = s.ticketRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.ticketRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return toTicketListItems(tickets), total, nil
}

// RespondAsSupplier appends a supplier message to their own ticket
func (s *TicketService) RespondAsSupplier(ctx context.Context, userID, ticketID uuid.UUID, req RespondTicketRequest) (*TicketDetailResponse, error) {
	ticket, vendor, err := s.ownedTicket(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	if err := ticket.AddResponse(vendor.UserID, supplier.ResponseAuthorSupplier, req.Body); err != nil {
		return nil, err
	}
	return s.saveDetail(ctx, ticket)
}

// RespondAsAdmin appends an admin message. An admin response moves an
// open ticket to in_progress.
func (s *TicketService) RespondAsAdmin(ctx context.Context, adminID, ticketID uuid.UUID, req RespondTicketRequest) (*TicketDetailResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := ticket.AddResponse(adminID, supplier.ResponseAuthorAdmin, req.Body); err != nil {
		return nil, err
	}
	return s.saveDetail(ctx, ticket)
}

// Close resolves a ticket
func (s *TicketService) Close(ctx context.Context, ticketID uuid.UUID) (*TicketDetailResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := ticket.Close(); err != nil {
		return nil, err
	}
	return s.saveDetail(ctx, ticket)
}

// Reopen returns one of the supplier's closed tickets to in_progress
func (s *TicketService) Reopen(ctx context.Context, userID, ticketID uuid.UUID) (*TicketDetailResponse, error) {
	ticket, _, err := s.ownedTicket(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	if err := ticket.Reopen(); err != nil {
		return nil, err
	}
	return s.saveDetail(ctx, ticket)
}

// InitiateAttachmentUpload records an attachment and returns a presigned
// upload URL. The record is removed when URL generation fails.
func (s *TicketService) InitiateAttachmentUpload(ctx context.Context, userID, ticketID uuid.UUID, req InitiateAttachmentUploadRequest) (*AttachmentUploadResponse, error) {
	ticket, _, err := s.ownedTicket(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	if len(ticket.Attachments) >= s.config.MaxAttachmentsPerTicket {
		return nil, shared.NewDomainError("ATTACHMENT_LIMIT", "Ticket attachment limit reached")
	}
	if req.SizeBytes > s.config.MaxAttachmentSizeBytes {
		return nil, shared.NewDomainError("ATTACHMENT_TOO_LARGE", "Attachment exceeds the size limit")
	}

	ext := strings.ToLower(filepath.Ext(req.FileName))
	storageKey := fmt.Sprintf("tickets/%s/%s%s", ticket.ID, uuid.New(), ext)

	if err := ticket.AddAttachment(storageKey, req.FileName, req.ContentType, req.SizeBytes); err != nil {
		return nil, err
	}
	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		// Roll the record back so a retry starts clean.
		ticket.Attachments = ticket.Attachments[:len(ticket.Attachments)-1]
		if saveErr := s.ticketRepo.Save(ctx, ticket); saveErr != nil {
			s.logger.Error("Failed to roll back attachment record",
				zap.String("ticket_id", ticket.ID.String()), zap.Error(saveErr))
		}
		return nil, err
	}

	return &AttachmentUploadResponse{
		AttachmentID: ticket.Attachments[len(ticket.Attachments)-1].ID,
		UploadURL:    uploadURL,
		ExpiresAt:    expiresAt,
	}, nil
}

// AttachmentDownloadURL returns a presigned download URL for an
// attachment on one of the supplier's tickets
func (s *TicketService) AttachmentDownloadURL(ctx context.Context, userID, ticketID, attachmentID uuid.UUID) (*AttachmentDownloadResponse, error) {
	ticket, _, err := s.ownedTicket(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	return s.downloadURL(ctx, ticket, attachmentID)
}

// AdminAttachmentDownloadURL returns a presigned download URL for the
// back office
func (s *TicketService) AdminAttachmentDownloadURL(ctx context.Context, ticketID, attachmentID uuid.UUID) (*AttachmentDownloadResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return s.downloadURL(ctx, ticket, attachmentID)
}

func (s *TicketService) downloadURL(ctx context.Context, ticket *supplier.Ticket, attachmentID uuid.UUID) (*AttachmentDownloadResponse, error) {
	for i := range ticket.Attachments {
		if ticket.Attachments[i].ID != attachmentID {
			continue
		}
		url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, ticket.Attachments[i].StorageKey, s.config.DownloadURLExpiry)
		if err != nil {
			return nil, err
		}
		return &AttachmentDownloadResponse{
			FileName:    ticket.Attachments[i].FileName,
			DownloadURL: url,
			ExpiresAt:   expiresAt,
		}, nil
	}
	return nil, shared.ErrNotFound
}

func (s *TicketService) saveDetail(ctx context.Context, ticket *supplier.Ticket) (*TicketDetailResponse, error) {
	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}
	response := ToTicketDetailResponse(ticket)
	return &response, nil
}

// ownedTicket loads a ticket and verifies it belongs to the user's
// supplier account. Foreign tickets surface as not found.
func (s *TicketService) ownedTicket(ctx context.Context, userID, ticketID uuid.UUID) (*supplier.Ticket, *supplier.Supplier, error) {
	vendor, err := s.supplierRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	if ticket.SupplierID != vendor.ID {
		return nil, nil, shared.ErrNotFound
	}
	return ticket, vendor, nil
}

func (s *TicketService) approvedSupplier(ctx context.Context, userID uuid.UUID) (*supplier.Supplier, error) {
	vendor, err := s.supplierRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !vendor.IsApproved() {
		return nil, shared.NewDomainError("SUPPLIER_NOT_APPROVED", "Only approved suppliers can open tickets")
	}
	return vendor, nil
}

func buildTicketFilter(filter TicketListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "updated_at",
		OrderDir: "desc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
}

func toTicketListItems(tickets []supplier.Ticket) []TicketListItemResponse {
	responses := make([]TicketListItemResponse, 0, len(tickets))
	for i := range tickets {
		responses = append(responses, ToTicketListItemResponse(&tickets[i]))
	}
	return responses
}
