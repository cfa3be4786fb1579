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

// WishlistService handles saved-for-later products
type WishlistService struct {
	wishlistRepo shopping.WishlistRepository
	customerRepo account.CustomerRepository
	productRepo  catalog.ProductRepository
	cartService  *CartService
	logger       *zap.Logger
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(
	wishlistRepo shopping.WishlistRepository,
	customerRepo account.CustomerRepository,
	productRepo catalog.ProductRepository,
	cartService *CartService,
	logger *zap.Logger,
) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		cartService:  cartService,
		logger:       logger,
	}
}

// Get returns the customer's wishlist
func (s *WishlistService) Get(ctx context.Context, userID uuid.UUID) (*WishlistResponse, error) {
	wishlist, err := s.wishlistForUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		return &WishlistResponse{Items: []WishlistItemResponse{}}, nil
	}
	response := ToWishlistResponse(wishlist)
	return &response, nil
}

// AddItem saves a product for later. Saving an already saved product is a
// no-op.
func (s *WishlistService) AddItem(ctx context.Context, userID uuid.UUID, req AddWishlistItemRequest) (*WishlistResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product.IsArchived() {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product has been retired")
	}

	wishlist, err := s.wishlistForUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	if err := wishlist.AddItem(product.ID); err != nil {
		return nil, err
	}
	if err := s.wishlistRepo.Save(ctx, wishlist); err != nil {
		return nil, err
	}

	response := ToWishlistResponse(wishlist)
	return &response, nil
}

// RemoveItem deletes a saved product
func (s *WishlistService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*WishlistResponse, error) {
	wishlist, err := s.wishlistForUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the wishlist")
	}
	if err := wishlist.RemoveItem(productID); err != nil {
		return nil, err
	}
	if err := s.wishlistRepo.Save(ctx, wishlist); err != nil {
		return nil, err
	}
	response := ToWishlistResponse(wishlist)
	return &response, nil
}

// MoveToCart adds a saved product to the cart and removes it from the
// wishlist. The wishlist entry is kept when the add fails.
func (s *WishlistService) MoveToCart(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	wishlist, err := s.wishlistForUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if wishlist == nil || !wishlist.Contains(productID) {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the wishlist")
	}

	cart, err := s.cartService.AddItem(ctx, userID, AddCartItemRequest{ProductID: productID, Quantity: 1})
	if err != nil {
		return nil, err
	}

	if err := wishlist.RemoveItem(productID); err != nil {
		return nil, err
	}
	if err := s.wishlistRepo.Save(ctx, wishlist); err != nil {
		return nil, err
	}

	s.logger.Debug("Wishlist item moved to cart",
		zap.String("wishlist_id", wishlist.ID.String()),
		zap.String("product_id", productID.String()))
	return cart, nil
}

func (s *WishlistService) wishlistForUser(ctx context.Context, userID uuid.UUID, create bool) (*shopping.Wishlist, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	wishlist, err := s.wishlistRepo.FindByCustomer(ctx, customer.ID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if !create {
			return nil, nil
		}
		return shopping.NewWishlist(customer.ID)
	}
	return wishlist, nil
}
