package shopping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/account"
	"github.com/stemkits/backend/internal/domain/catalog"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stemkits/backend/internal/domain/shopping"
	"go.uber.org/zap"
)

// CartService handles cart operations. Carts are created lazily on the
// first add.
type CartService struct {
	cartRepo     shopping.CartRepository
	productRepo  catalog.ProductRepository
	customerRepo account.CustomerRepository
	logger       *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	cartRepo shopping.CartRepository,
	productRepo catalog.ProductRepository,
	customerRepo account.CustomerRepository,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Get returns the customer's cart revalidated against the live catalog.
// Price changes and unavailable products are flagged, not silently
// corrected.
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartForUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &CartResponse{Items: []CartItemResponse{}}, nil
	}
	response := s.revalidate(ctx, cart)
	return &response, nil
}

// AddItem adds a product to the customer's cart, snapshotting the current
// name and price.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddCartItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available for purchase")
	}
	if product.StockQuantity < req.Quantity {
		return nil, shared.ErrInsufficientStock
	}

	cart, err := s.cartForUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	if err := cart.AddItem(product.ID, product.Name, product.Price, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.Debug("Cart item added",
		zap.String("cart_id", cart.ID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("quantity", req.Quantity))

	response := s.revalidate(ctx, cart)
	return &response, nil
}

// UpdateItem changes a line's quantity. Zero removes the line.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, req UpdateCartItemRequest) (*CartResponse, error) {
	cart, err := s.cartForUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the cart")
	}
	if err := cart.UpdateItemQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	response := s.revalidate(ctx, cart)
	return &response, nil
}

// RemoveItem deletes a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartForUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the cart")
	}
	if err := cart.RemoveItem(productID); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	response := s.revalidate(ctx, cart)
	return &response, nil
}

// Clear empties the customer's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.cartForUser(ctx, userID, false)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	cart.Clear()
	return s.cartRepo.Save(ctx, cart)
}

// cartForUser loads the user's cart, optionally creating one.
func (s *CartService) cartForUser(ctx context.Context, userID uuid.UUID, create bool) (*shopping.Cart, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.FindByCustomer(ctx, customer.ID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if !create {
			return nil, nil
		}
		return shopping.NewCart(customer.ID)
	}
	return cart, nil
}

// revalidate annotates cart lines with live catalog state. Lookup
// failures degrade to the snapshot rather than failing the request.
func (s *CartService) revalidate(ctx context.Context, cart *shopping.Cart) CartResponse {
	response := ToCartResponse(cart)
	for i := range response.Items {
		product, err := s.productRepo.FindByID(ctx, response.Items[i].ProductID)
		if err != nil || !product.IsActive() {
			response.Items[i].Unavailable = true
			response.Items[i].InStock = false
			continue
		}
		response.Items[i].InStock = product.StockQuantity >= response.Items[i].Quantity
		if !product.Price.Equal(response.Items[i].UnitPrice) {
			price := product.Price
			response.Items[i].CurrentPrice = &price
			response.Items[i].PriceChanged = true
		}
	}
	return response
}
