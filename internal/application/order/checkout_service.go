package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/account"
	"github.com/stemkits/backend/internal/domain/catalog"
	"github.com/stemkits/backend/internal/domain/order"
	"github.com/stemkits/backend/internal/domain/settings"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stemkits/backend/internal/domain/shopping"
	"go.uber.org/zap"
)

// CheckoutService turns a cart into a placed, paid order. Stock is
// deducted per product with optimistic locking; if any line fails, the
// already deducted lines are restocked before the error is returned.
type CheckoutService struct {
	orderRepo    order.OrderRepository
	cartRepo     shopping.CartRepository
	productRepo  catalog.ProductRepository
	customerRepo account.CustomerRepository
	addressRepo  account.AddressRepository
	cardRepo     account.PaymentCardRepository
	settingsRepo settings.StoreSettingsRepository
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	orderRepo order.OrderRepository,
	cartRepo shopping.CartRepository,
	productRepo catalog.ProductRepository,
	customerRepo account.CustomerRepository,
	addressRepo account.AddressRepository,
	cardRepo account.PaymentCardRepository,
	settingsRepo settings.StoreSettingsRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		cardRepo:     cardRepo,
		settingsRepo: settingsRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// Checkout places an order from the customer's cart. Line prices are
// re-read from the live catalog, not the cart snapshot.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account cannot place orders")
	}

	storeSettings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if storeSettings.OrdersPaused {
		return nil, shared.NewDomainError("ORDERS_PAUSED", "The store is not accepting orders right now")
	}

	cart, err := s.cartRepo.FindByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
	}

	shipping, err := s.shippingFor(ctx, customer.ID, req.AddressID)
	if err != nil {
		return nil, err
	}
	card, err := s.cardFor(ctx, customer.ID, req.PaymentCardID)
	if err != nil {
		return nil, err
	}

	lines, deducted, err := s.reserveStock(ctx, cart)
	if err != nil {
		return nil, err
	}

	placed, err := s.placeOrder(ctx, customer.ID, lines, *shipping, storeSettings, card, req.Notes)
	if err != nil {
		s.releaseStock(ctx, deducted)
		return nil, err
	}

	cart.Clear()
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to clear cart after checkout",
			zap.String("cart_id", cart.ID.String()), zap.Error(err))
	}

	s.logger.Info("Order placed",
		zap.String("order_number", placed.OrderNumber),
		zap.String("customer_id", customer.ID.String()),
		zap.String("total", placed.Total.String()))

	response := ToOrderResponse(placed)
	return &response, nil
}

// reserveStock deducts stock for every cart line at live prices. On
// failure, lines deducted so far are restocked.
func (s *CheckoutService) reserveStock(ctx context.Context, cart *shopping.Cart) ([]order.OrderLine, []reservedLine, error) {
	lines := make([]order.OrderLine, 0, len(cart.Items))
	deducted := make([]reservedLine, 0, len(cart.Items))

	for _, item := range cart.Items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			s.releaseStock(ctx, deducted)
			return nil, nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", item.ProductName+" is no longer available")
		}
		if !product.IsActive() {
			s.releaseStock(ctx, deducted)
			return nil, nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", product.Name+" is no longer available")
		}
		if err := product.DeductStock(item.Quantity); err != nil {
			s.releaseStock(ctx, deducted)
			return nil, nil, err
		}
		if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
			s.releaseStock(ctx, deducted)
			return nil, nil, err
		}

		deducted = append(deducted, reservedLine{productID: product.ID, quantity: item.Quantity})
		lines = append(lines, order.OrderLine{
			ProductID:   product.ID,
			SKU:         product.SKU,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
		})
	}
	return lines, deducted, nil
}

func (s *CheckoutService) placeOrder(
	ctx context.Context,
	customerID uuid.UUID,
	lines []order.OrderLine,
	shipping order.ShippingAddress,
	storeSettings *settings.StoreSettings,
	card *account.PaymentCard,
	notes string,
) (*order.Order, error) {
	orderNumber, err := s.orderRepo.NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	subtotal := subtotalOf(lines)
	placed, err := order.NewOrder(orderNumber, customerID, lines, shipping, storeSettings.ShippingFeeFor(subtotal))
	if err != nil {
		return nil, err
	}
	placed.Notes = notes

	// Payment is captured against the stored card reference at placement.
	if err := placed.MarkPaid(card.Brand, card.LastFour); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, placed); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, placed.GetDomainEvents()...); err != nil {
		s.logger.Error("Failed to publish order events",
			zap.String("order_number", placed.OrderNumber), zap.Error(err))
	}
	placed.ClearDomainEvents()
	return placed, nil
}

// releaseStock is the compensation path for a failed checkout.
func (s *CheckoutService) releaseStock(ctx context.Context, deducted []reservedLine) {
	for _, line := range deducted {
		product, err := s.productRepo.FindByID(ctx, line.productID)
		if err != nil {
			s.logger.Error("Failed to restock after checkout failure",
				zap.String("product_id", line.productID.String()), zap.Error(err))
			continue
		}
		if err := product.Restock(line.quantity); err == nil {
			if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
				s.logger.Error("Failed to restock after checkout failure",
					zap.String("product_id", line.productID.String()), zap.Error(err))
			}
		}
	}
}

func (s *CheckoutService) shippingFor(ctx context.Context, customerID, addressID uuid.UUID) (*order.ShippingAddress, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.CustomerID != customerID {
		return nil, shared.ErrNotFound
	}
	return &order.ShippingAddress{
		RecipientName: address.RecipientName,
		Line1:         address.Line1,
		Line2:         address.Line2,
		City:          address.City,
		Region:        address.Region,
		PostalCode:    address.PostalCode,
		CountryCode:   address.CountryCode,
	}, nil
}

func (s *CheckoutService) cardFor(ctx context.Context, customerID, cardID uuid.UUID) (*account.PaymentCard, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.CustomerID != customerID {
		return nil, shared.ErrNotFound
	}
	if card.IsExpired(time.Now()) {
		return nil, shared.NewDomainError("CARD_EXPIRED", "Payment card has expired")
	}
	return card, nil
}

type reservedLine struct {
	productID uuid.UUID
	quantity  int
}

func subtotalOf(lines []order.OrderLine) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return subtotal
}
