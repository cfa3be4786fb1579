package messaging

import (
	"context"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/messaging"
	"github.com/stemkits/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TemplateService handles email template administration and rendering
type TemplateService struct {
	templateRepo messaging.EmailTemplateRepository
	logger       *zap.Logger
}

// NewTemplateService creates a new template service
func NewTemplateService(templateRepo messaging.EmailTemplateRepository, logger *zap.Logger) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// Create adds a new template with a unique code
func (s *TemplateService) Create(ctx context.Context, req CreateTemplateRequest) (*TemplateResponse, error) {
	exists, err := s.templateRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A template with this code already exists")
	}

	template, err := messaging.NewEmailTemplate(req.Code, req.Name, req.Subject, req.Body)
	if err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}

	s.logger.Info("Email template created",
		zap.String("template_id", template.ID.String()),
		zap.String("code", template.Code))

	response := ToTemplateResponse(template)
	return &response, nil
}

// GetByID returns a single template
func (s *TemplateService) GetByID(ctx context.Context, id uuid.UUID) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTemplateResponse(template)
	return &response, nil
}

// List returns templates for the back office
func (s *TemplateService) List(ctx context.Context, filter TemplateListFilter) ([]TemplateResponse, int64, error) {
	domainFilter := buildTemplateFilter(filter)

	templates, err := s.templateRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.templateRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TemplateResponse, 0, len(templates))
	for i := range templates {
		responses = append(responses, ToTemplateResponse(&templates[i]))
	}
	return responses, total, nil
}

// Update replaces a template's content
func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error) {
	return s.modify(ctx, id, func(t *messaging.EmailTemplate) error {
		return t.Update(req.Name, req.Subject, req.Body)
	})
}

// Activate enables a template for sending
func (s *TemplateService) Activate(ctx context.Context, id uuid.UUID) (*TemplateResponse, error) {
	return s.modify(ctx, id, (*messaging.EmailTemplate).Activate)
}

// Deactivate disables a template
func (s *TemplateService) Deactivate(ctx context.Context, id uuid.UUID) (*TemplateResponse, error) {
	return s.modify(ctx, id, (*messaging.EmailTemplate).Deactivate)
}

// Delete removes a template
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.templateRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, id)
}

// TestRender renders a template with sample variables without sending
func (s *TemplateService) TestRender(ctx context.Context, id uuid.UUID, req TestRenderRequest) (*RenderResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rendered, err := template.Render(req.Variables)
	if err != nil {
		return nil, err
	}
	return &RenderResponse{Subject: rendered.Subject, Body: rendered.Body}, nil
}

// RenderByCode renders an active template identified by its code. Event
// handlers use this to build outbound mail.
func (s *TemplateService) RenderByCode(ctx context.Context, code string, vars map[string]string) (*RenderResponse, error) {
	template, err := s.templateRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	rendered, err := template.Render(vars)
	if err != nil {
		return nil, err
	}
	return &RenderResponse{Subject: rendered.Subject, Body: rendered.Body}, nil
}

func (s *TemplateService) modify(ctx context.Context, id uuid.UUID, op func(*messaging.EmailTemplate) error) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := op(template); err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}
	response := ToTemplateResponse(template)
	return &response, nil
}

// SeedDefaults inserts the well-known transactional templates on first
// boot. Existing templates, including edited ones, are left untouched.
func (s *TemplateService) SeedDefaults(ctx context.Context) error {
	defaults := []struct {
		code    string
		name    string
		subject string
		body    string
	}{
		{
			code:    messaging.TemplateWelcome,
			name:    "Welcome",
			subject: "Welcome to STEM Kits, {{first_name}}!",
			body:    "Hi {{first_name}},\n\nThanks for creating an account. Happy building!\n\nThe STEM Kits team",
		},
		{
			code:    messaging.TemplateOrderConfirmation,
			name:    "Order confirmation",
			subject: "Order {{order_number}} confirmed",
			body:    "Hi {{first_name}},\n\nWe received your order {{order_number}} for {{total}}. We will let you know when it ships.\n\nThe STEM Kits team",
		},
		{
			code:    messaging.TemplateOrderShipped,
			name:    "Order shipped",
			subject: "Order {{order_number}} is on its way",
			body:    "Hi {{first_name}},\n\nYour order {{order_number}} has shipped. Tracking number: {{tracking_number}}.\n\nThe STEM Kits team",
		},
		{
			code:    messaging.TemplateSupplierApproved,
			name:    "Supplier approved",
			subject: "Your supplier account is approved",
			body:    "Hello {{company_name}},\n\nYour supplier account has been approved. You can now sign in to the supplier portal.\n\nThe STEM Kits team",
		},
	}

	for _, d := range defaults {
		exists, err := s.templateRepo.ExistsByCode(ctx, d.code)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		template, err := messaging.NewEmailTemplate(d.code, d.name, d.subject, d.body)
		if err != nil {
			return err
		}
		if err := s.templateRepo.Save(ctx, template); err != nil {
			return err
		}
		s.logger.Info("Seeded default email template", zap.String("code", d.code))
	}
	return nil
}

func buildTemplateFilter(filter TemplateListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "code",
		OrderDir: "asc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
}
