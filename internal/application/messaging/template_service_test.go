package messaging

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/messaging"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockEmailTemplateRepository is a mock implementation of messaging.EmailTemplateRepository
type MockEmailTemplateRepository struct {
	mock.Mock
}

func (m *MockEmailTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.EmailTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.EmailTemplate), args.Error(1)
}

func (m *MockEmailTemplateRepository) FindByCode(ctx context.Context, code string) (*messaging.EmailTemplate, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.EmailTemplate), args.Error(1)
}

func (m *MockEmailTemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]messaging.EmailTemplate, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]messaging.EmailTemplate), args.Error(1)
}

func (m *MockEmailTemplateRepository) Save(ctx context.Context, template *messaging.EmailTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockEmailTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmailTemplateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmailTemplateRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func newOrderConfirmationTemplate(t *testing.T) *messaging.EmailTemplate {
	t.Helper()
	template, err := messaging.NewEmailTemplate(
		messaging.TemplateOrderConfirmation,
		"Order confirmation",
		"Your order {{order_number}} is confirmed",
		"Hi {{first_name}}, we received your order {{order_number}} for {{total}}.",
	)
	require.NoError(t, err)
	return template
}

func TestTemplateService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a template with a fresh code", func(t *testing.T) {
		repo := new(MockEmailTemplateRepository)
		service := NewTemplateService(repo, zap.NewNop())

		repo.On("ExistsByCode", ctx, "welcome").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*messaging.EmailTemplate")).Return(nil)

		resp, err := service.Create(ctx, CreateTemplateRequest{
			Code:    "welcome",
			Name:    "Welcome email",
			Subject: "Welcome, {{first_name}}!",
			Body:    "Glad to have you, {{first_name}}.",
		})

		require.NoError(t, err)
		assert.True(t, resp.IsActive)
		assert.Equal(t, []string{"first_name"}, resp.Placeholders)
	})

	t.Run("rejects a duplicate code", func(t *testing.T) {
		repo := new(MockEmailTemplateRepository)
		service := NewTemplateService(repo, zap.NewNop())

		repo.On("ExistsByCode", ctx, "welcome").Return(true, nil)

		_, err := service.Create(ctx, CreateTemplateRequest{
			Code: "welcome", Name: "Welcome", Subject: "Hi", Body: "Hi",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTemplateService_Render(t *testing.T) {
	ctx := context.Background()

	t.Run("substitutes known variables and keeps unknown ones", func(t *testing.T) {
		repo := new(MockEmailTemplateRepository)
		service := NewTemplateService(repo, zap.NewNop())
		template := newOrderConfirmationTemplate(t)

		repo.On("FindByID", ctx, template.ID).Return(template, nil)

		resp, err := service.TestRender(ctx, template.ID, TestRenderRequest{
			Variables: map[string]string{
				"first_name":   "Ada",
				"order_number": "ORD-000042",
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "Your order ORD-000042 is confirmed", resp.Subject)
		assert.Equal(t, "Hi Ada, we received your order ORD-000042 for {{total}}.", resp.Body)
	})

	t.Run("refuses to render an inactive template", func(t *testing.T) {
		repo := new(MockEmailTemplateRepository)
		service := NewTemplateService(repo, zap.NewNop())
		template := newOrderConfirmationTemplate(t)
		require.NoError(t, template.Deactivate())

		repo.On("FindByCode", ctx, template.Code).Return(template, nil)

		_, err := service.RenderByCode(ctx, template.Code, map[string]string{"first_name": "Ada"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TEMPLATE_INACTIVE", domainErr.Code)
	})
}

func TestTemplateService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivate then activate round trip", func(t *testing.T) {
		repo := new(MockEmailTemplateRepository)
		service := NewTemplateService(repo, zap.NewNop())
		template := newOrderConfirmationTemplate(t)

		repo.On("FindByID", ctx, template.ID).Return(template, nil)
		repo.On("Save", ctx, template).Return(nil)

		resp, err := service.Deactivate(ctx, template.ID)
		require.NoError(t, err)
		assert.False(t, resp.IsActive)

		resp, err = service.Activate(ctx, template.ID)
		require.NoError(t, err)
		assert.True(t, resp.IsActive)
	})

	t.Run("activating an already active template fails", func(t *testing.T) {
		repo := new(MockEmailTemplateRepository)
		service := NewTemplateService(repo, zap.NewNop())
		template := newOrderConfirmationTemplate(t)

		repo.On("FindByID", ctx, template.ID).Return(template, nil)

		_, err := service.Activate(ctx, template.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})
}
