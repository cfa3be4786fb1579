package supplier

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stemkits/backend/internal/domain/supplier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSupplierRepository is a mock implementation of supplier.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*supplier.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*supplier.Supplier, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]supplier.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]supplier.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByStatus(ctx context.Context, status supplier.SupplierStatus, filter shared.Filter) ([]supplier.Supplier, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]supplier.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, s *supplier.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSupplierRepository) SaveWithLock(ctx context.Context, s *supplier.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) CountByStatus(ctx context.Context, status supplier.SupplierStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockTicketRepository is a mock implementation of supplier.TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*supplier.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]supplier.Ticket, error) {
	args := m.Called(ctx, supplierID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]supplier.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]supplier.Ticket, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]supplier.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByStatus(ctx context.Context, status supplier.TicketStatus, filter shared.Filter) ([]supplier.Ticket, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]supplier.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Save(ctx context.Context, ticket *supplier.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTicketRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketRepository) CountByStatus(ctx context.Context, status supplier.TicketStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func newApprovedSupplier(t *testing.T) *supplier.Supplier {
	t.Helper()
	vendor, err := supplier.NewSupplier(uuid.New(), "Gizmo Works", "Grace Hopper", "vendor@example.com")
	require.NoError(t, err)
	require.NoError(t, vendor.Approve(uuid.New(), ""))
	vendor.ClearDomainEvents()
	return vendor
}

func TestTicketService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("opens a ticket for an approved supplier", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		supplierRepo := new(MockSupplierRepository)
		service := NewTicketService(ticketRepo, supplierRepo, new(MockObjectStorage), zap.NewNop())
		vendor := newApprovedSupplier(t)

		supplierRepo.On("FindByUserID", ctx, vendor.UserID).Return(vendor, nil)
		ticketRepo.On("Save", ctx, mock.AnythingOfType("*supplier.Ticket")).Return(nil)

		resp, err := service.Create(ctx, vendor.UserID, CreateTicketRequest{
			Subject: "Missing shipment paperwork",
			Body:    "The last delivery arrived without customs forms.",
		})

		require.NoError(t, err)
		assert.Equal(t, string(supplier.TicketStatusOpen), resp.Status)
		assert.Equal(t, string(supplier.TicketPriorityNormal), resp.Priority)
	})

	t.Run("rejects a pending supplier", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		supplierRepo := new(MockSupplierRepository)
		service := NewTicketService(ticketRepo, supplierRepo, new(MockObjectStorage), zap.NewNop())

		pending, err := supplier.NewSupplier(uuid.New(), "Newco", "New Contact", "new@example.com")
		require.NoError(t, err)

		supplierRepo.On("FindByUserID", ctx, pending.UserID).Return(pending, nil)

		_, err = service.Create(ctx, pending.UserID, CreateTicketRequest{Subject: "Hi", Body: "Hello"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SUPPLIER_NOT_APPROVED", domainErr.Code)
		ticketRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTicketService_Responses(t *testing.T) {
	ctx := context.Background()

	t.Run("admin response moves an open ticket to in_progress", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		service := NewTicketService(ticketRepo, new(MockSupplierRepository), new(MockObjectStorage), zap.NewNop())

		ticket, err := supplier.NewTicket(uuid.New(), "Subject", "Body", supplier.TicketPriorityHigh)
		require.NoError(t, err)

		ticketRepo.On("FindByID", ctx, ticket.ID).Return(ticket, nil)
		ticketRepo.On("Save", ctx, ticket).Return(nil)

		resp, err := service.RespondAsAdmin(ctx, uuid.New(), ticket.ID, RespondTicketRequest{Body: "Looking into it"})

		require.NoError(t, err)
		assert.Equal(t, string(supplier.TicketStatusInProgress), resp.Status)
		require.Len(t, resp.Responses, 1)
		assert.Equal(t, string(supplier.ResponseAuthorAdmin), resp.Responses[0].Author)
	})

	t.Run("closed ticket rejects responses", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		service := NewTicketService(ticketRepo, new(MockSupplierRepository), new(MockObjectStorage), zap.NewNop())

		ticket, err := supplier.NewTicket(uuid.New(), "Subject", "Body", "")
		require.NoError(t, err)
		require.NoError(t, ticket.Close())

		ticketRepo.On("FindByID", ctx, ticket.ID).Return(ticket, nil)

		_, err = service.RespondAsAdmin(ctx, uuid.New(), ticket.ID, RespondTicketRequest{Body: "Too late"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TICKET_CLOSED", domainErr.Code)
	})

	t.Run("hides another supplier's ticket", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		supplierRepo := new(MockSupplierRepository)
		service := NewTicketService(ticketRepo, supplierRepo, new(MockObjectStorage), zap.NewNop())
		vendor := newApprovedSupplier(t)

		foreign, err := supplier.NewTicket(uuid.New(), "Subject", "Body", "")
		require.NoError(t, err)

		supplierRepo.On("FindByUserID", ctx, vendor.UserID).Return(vendor, nil)
		ticketRepo.On("FindByID", ctx, foreign.ID).Return(foreign, nil)

		_, err = service.GetOwn(ctx, vendor.UserID, foreign.ID)

		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTicketService_Attachments(t *testing.T) {
	ctx := context.Background()

	t.Run("records the attachment and returns an upload URL", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		supplierRepo := new(MockSupplierRepository)
		storage := new(MockObjectStorage)
		service := NewTicketService(ticketRepo, supplierRepo, storage, zap.NewNop())
		vendor := newApprovedSupplier(t)

		ticket, err := supplier.NewTicket(vendor.ID, "Subject", "Body", "")
		require.NoError(t, err)

		expiresAt := time.Now().Add(15 * time.Minute)
		supplierRepo.On("FindByUserID", ctx, vendor.UserID).Return(vendor, nil)
		ticketRepo.On("FindByID", ctx, ticket.ID).Return(ticket, nil)
		ticketRepo.On("Save", ctx, ticket).Return(nil)
		storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "application/pdf", 15*time.Minute).
			Return("https://storage.example/upload", expiresAt, nil)

		resp, err := service.InitiateAttachmentUpload(ctx, vendor.UserID, ticket.ID, InitiateAttachmentUploadRequest{
			FileName:    "customs.pdf",
			ContentType: "application/pdf",
			SizeBytes:   1024,
		})

		require.NoError(t, err)
		assert.Equal(t, "https://storage.example/upload", resp.UploadURL)
		require.Len(t, ticket.Attachments, 1)
		assert.Equal(t, "customs.pdf", ticket.Attachments[0].FileName)
		assert.Contains(t, ticket.Attachments[0].StorageKey, "tickets/")
	})

	t.Run("rejects attachments over the size limit", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		supplierRepo := new(MockSupplierRepository)
		service := NewTicketService(ticketRepo, supplierRepo, new(MockObjectStorage), zap.NewNop())
		vendor := newApprovedSupplier(t)

		ticket, err := supplier.NewTicket(vendor.ID, "Subject", "Body", "")
		require.NoError(t, err)

		supplierRepo.On("FindByUserID", ctx, vendor.UserID).Return(vendor, nil)
		ticketRepo.On("FindByID", ctx, ticket.ID).Return(ticket, nil)

		_, err = service.InitiateAttachmentUpload(ctx, vendor.UserID, ticket.ID, InitiateAttachmentUploadRequest{
			FileName:    "huge.zip",
			ContentType: "application/zip",
			SizeBytes:   100 << 20,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ATTACHMENT_TOO_LARGE", domainErr.Code)
	})
}
