package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/account"
	"github.com/stemkits/backend/internal/domain/catalog"
	"github.com/stemkits/backend/internal/domain/order"
	"github.com/stemkits/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderService handles order queries and fulfillment transitions
type OrderService struct {
	orderRepo    order.OrderRepository
	productRepo  catalog.ProductRepository
	customerRepo account.CustomerRepository
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo order.OrderRepository,
	productRepo catalog.ProductRepository,
	customerRepo account.CustomerRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// GetByID retrieves an order for the back office
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// GetOwn retrieves one of the signed-in customer's orders. Orders of
// other customers surface as not found.
func (s *OrderService) GetOwn(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != customer.ID {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// Track looks an order up by its public number for the customer
func (s *OrderService) Track(ctx context.Context, userID uuid.UUID, orderNumber string) (*OrderResponse, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != customer.ID {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListOwn returns the signed-in customer's order history, newest first
func (s *OrderService) ListOwn(ctx context.Context, userID uuid.UUID, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	orders, err := s.orderRepo.FindByCustomer(ctx, customer.ID, buildOrderFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, 0, err
	}
	return toListItems(orders), total, nil
}

// List returns orders for the back office
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	domainFilter := buildOrderFilter(filter)

	var orders []order.Order
	var err error
	if filter.Status != "" {
		orders, err = s.orderRepo.FindByStatus(ctx, order.OrderStatus(filter.Status), domainFilter)
	} else {
		orders, err = s.orderRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return toListItems(orders), total, nil
}

// StartProcessing moves a paid order into fulfillment
func (s *OrderService) StartProcessing(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *order.Order) error {
		return o.StartProcessing()
	})
}

// Ship marks an order shipped with its tracking number
func (s *OrderService) Ship(ctx context.Context, id uuid.UUID, req ShipOrderRequest) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *order.Order) error {
		return o.Ship(req.TrackingNumber)
	})
}

// MarkDelivered records delivery confirmation
func (s *OrderService) MarkDelivered(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *order.Order) error {
		return o.MarkDelivered()
	})
}

// Cancel voids an order and returns its items to stock
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	response, err := s.transition(ctx, id, func(o *order.Order) error {
		return o.Cancel(req.Reason)
	})
	if err != nil {
		return nil, err
	}
	s.restockItems(ctx, response)
	return response, nil
}

// CancelOwn lets a customer void their own order while it is still
// pending or paid.
func (s *OrderService) CancelOwn(ctx context.Context, userID, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != customer.ID {
		return nil, shared.ErrNotFound
	}
	if o.Status != order.OrderStatusPending && o.Status != order.OrderStatusPaid {
		return nil, shared.NewDomainError("INVALID_TRANSITION", "Order can no longer be cancelled; contact support")
	}
	return s.Cancel(ctx, orderID, req)
}

// Refund reverses a delivered order and returns its items to stock
func (s *OrderService) Refund(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	response, err := s.transition(ctx, id, func(o *order.Order) error {
		return o.Refund()
	})
	if err != nil {
		return nil, err
	}
	s.restockItems(ctx, response)
	return response, nil
}

func (s *OrderService) transition(ctx context.Context, id uuid.UUID, op func(*order.Order) error) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := op(o); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	if events := o.GetDomainEvents(); len(events) > 0 {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Error("Failed to publish order events",
				zap.String("order_number", o.OrderNumber), zap.Error(err))
		}
		o.ClearDomainEvents()
	}

	s.logger.Info("Order status changed",
		zap.String("order_number", o.OrderNumber),
		zap.String("status", string(o.Status)))

	response := ToOrderResponse(o)
	return &response, nil
}

// restockItems returns cancelled or refunded quantities to the catalog.
// Failures are logged for manual correction, not surfaced to the caller.
func (s *OrderService) restockItems(ctx context.Context, reversed *OrderResponse) {
	for _, item := range reversed.Items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			s.logger.Error("Failed to restock cancelled order item",
				zap.String("product_id", item.ProductID.String()), zap.Error(err))
			continue
		}
		if err := product.Restock(item.Quantity); err != nil {
			continue
		}
		if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
			s.logger.Error("Failed to restock cancelled order item",
				zap.String("product_id", item.ProductID.String()), zap.Error(err))
		}
	}
}

func buildOrderFilter(filter OrderListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}
	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
}

func toListItems(orders []order.Order) []OrderListItemResponse {
	responses := make([]OrderListItemResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderListItemResponse(&orders[i]))
	}
	return responses
}
