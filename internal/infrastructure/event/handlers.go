package event

import (
	"context"

	"github.com/stemkits/backend/internal/application/messaging"
	"github.com/stemkits/backend/internal/domain/account"
	domainmessaging "github.com/stemkits/backend/internal/domain/messaging"
	"github.com/stemkits/backend/internal/domain/order"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stemkits/backend/internal/domain/supplier"
	"go.uber.org/zap"
)

// OrderEmailHandler sends transactional email for order lifecycle events.
type OrderEmailHandler struct {
	templates    *messaging.TemplateService
	customerRepo account.CustomerRepository
	sender       EmailSender
	logger       *zap.Logger
}

// NewOrderEmailHandler creates a new OrderEmailHandler
func NewOrderEmailHandler(
	templates *messaging.TemplateService,
	customerRepo account.CustomerRepository,
	sender EmailSender,
	logger *zap.Logger,
) *OrderEmailHandler {
	return &OrderEmailHandler{
		templates:    templates,
		customerRepo: customerRepo,
		sender:       sender,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderEmailHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPaid, order.EventTypeOrderShipped}
}

// Handle renders the matching template and sends it to the order's customer
func (h *OrderEmailHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	switch e := evt.(type) {
	case *order.OrderPaidEvent:
		customer, err := h.customerRepo.FindByID(ctx, e.CustomerID)
		if err != nil {
			return err
		}
		return h.send(ctx, customer.Email, domainmessaging.TemplateOrderConfirmation, map[string]string{
			"first_name":   customer.FirstName,
			"order_number": e.OrderNumber,
			"total":        e.Total.StringFixed(2),
		})
	case *order.OrderShippedEvent:
		customer, err := h.customerRepo.FindByID(ctx, e.CustomerID)
		if err != nil {
			return err
		}
		return h.send(ctx, customer.Email, domainmessaging.TemplateOrderShipped, map[string]string{
			"first_name":      customer.FirstName,
			"order_number":    e.OrderNumber,
			"tracking_number": e.TrackingNumber,
		})
	}
	return nil
}

func (h *OrderEmailHandler) send(ctx context.Context, to, templateCode string, vars map[string]string) error {
	rendered, err := h.templates.RenderByCode(ctx, templateCode, vars)
	if err != nil {
		// A missing or deactivated template should not fail order
		// processing; the email is simply skipped.
		h.logger.Warn("skipping transactional email",
			zap.String("template", templateCode),
			zap.Error(err),
		)
		return nil
	}
	return h.sender.Send(ctx, to, rendered.Subject, rendered.Body)
}

// LoyaltyHandler credits loyalty points and lifetime spend when an order
// is paid.
type LoyaltyHandler struct {
	customerRepo account.CustomerRepository
	bus          shared.EventBus
	logger       *zap.Logger
}

// NewLoyaltyHandler creates a new LoyaltyHandler
func NewLoyaltyHandler(customerRepo account.CustomerRepository, bus shared.EventBus, logger *zap.Logger) *LoyaltyHandler {
	return &LoyaltyHandler{
		customerRepo: customerRepo,
		bus:          bus,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *LoyaltyHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPaid}
}

// Handle records the paid total against the customer's lifetime spend
func (h *LoyaltyHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	paid, ok := evt.(*order.OrderPaidEvent)
	if !ok {
		return nil
	}

	customer, err := h.customerRepo.FindByID(ctx, paid.CustomerID)
	if err != nil {
		return err
	}
	if err := customer.RecordOrderSpend(paid.Total); err != nil {
		return err
	}
	if err := h.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return err
	}

	events := customer.GetDomainEvents()
	customer.ClearDomainEvents()
	if len(events) > 0 {
		if err := h.bus.Publish(ctx, events...); err != nil {
			h.logger.Warn("failed to publish loyalty follow-up events", zap.Error(err))
		}
	}

	h.logger.Info("loyalty credited",
		zap.String("customer_id", customer.ID.String()),
		zap.String("order_number", paid.OrderNumber),
		zap.Int("loyalty_points", customer.LoyaltyPoints),
	)
	return nil
}

// WelcomeEmailHandler greets a newly registered customer.
type WelcomeEmailHandler struct {
	templates    *messaging.TemplateService
	customerRepo account.CustomerRepository
	sender       EmailSender
	logger       *zap.Logger
}

// NewWelcomeEmailHandler creates a new WelcomeEmailHandler
func NewWelcomeEmailHandler(
	templates *messaging.TemplateService,
	customerRepo account.CustomerRepository,
	sender EmailSender,
	logger *zap.Logger,
) *WelcomeEmailHandler {
	return &WelcomeEmailHandler{
		templates:    templates,
		customerRepo: customerRepo,
		sender:       sender,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *WelcomeEmailHandler) EventTypes() []string {
	return []string{account.EventTypeCustomerRegistered}
}

// Handle sends the welcome template to the new customer
func (h *WelcomeEmailHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	registered, ok := evt.(*account.CustomerRegisteredEvent)
	if !ok {
		return nil
	}

	customer, err := h.customerRepo.FindByID(ctx, registered.AggregateID())
	if err != nil {
		return err
	}

	rendered, err := h.templates.RenderByCode(ctx, domainmessaging.TemplateWelcome, map[string]string{
		"first_name": customer.FirstName,
	})
	if err != nil {
		h.logger.Warn("skipping welcome email", zap.Error(err))
		return nil
	}
	return h.sender.Send(ctx, customer.Email, rendered.Subject, rendered.Body)
}

// SupplierEmailHandler notifies a supplier when their application is
// approved.
type SupplierEmailHandler struct {
	templates *messaging.TemplateService
	sender    EmailSender
	logger    *zap.Logger
}

// NewSupplierEmailHandler creates a new SupplierEmailHandler
func NewSupplierEmailHandler(templates *messaging.TemplateService, sender EmailSender, logger *zap.Logger) *SupplierEmailHandler {
	return &SupplierEmailHandler{
		templates: templates,
		sender:    sender,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *SupplierEmailHandler) EventTypes() []string {
	return []string{supplier.EventTypeSupplierReviewed}
}

// Handle sends the approval template when the review outcome is approved
func (h *SupplierEmailHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	reviewed, ok := evt.(*supplier.SupplierReviewedEvent)
	if !ok || reviewed.Outcome != string(supplier.SupplierStatusApproved) {
		return nil
	}

	rendered, err := h.templates.RenderByCode(ctx, domainmessaging.TemplateSupplierApproved, map[string]string{
		"company_name": reviewed.CompanyName,
	})
	if err != nil {
		h.logger.Warn("skipping supplier approval email", zap.Error(err))
		return nil
	}
	return h.sender.Send(ctx, reviewed.ContactEmail, rendered.Subject, rendered.Body)
}

var (
	_ shared.EventHandler = (*OrderEmailHandler)(nil)
	_ shared.EventHandler = (*LoyaltyHandler)(nil)
	_ shared.EventHandler = (*WelcomeEmailHandler)(nil)
	_ shared.EventHandler = (*SupplierEmailHandler)(nil)
)
