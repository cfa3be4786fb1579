package account

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/account"
	"github.com/stemkits/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const maxCardsPerCustomer = 10

// PaymentCardService handles a customer's stored cards
type PaymentCardService struct {
	cardRepo     account.PaymentCardRepository
	customerRepo account.CustomerRepository
	logger       *zap.Logger
}

// NewPaymentCardService creates a new payment card service
func NewPaymentCardService(cardRepo account.PaymentCardRepository, customerRepo account.CustomerRepository, logger *zap.Logger) *PaymentCardService {
	return &PaymentCardService{
		cardRepo:     cardRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create stores a masked card reference. The first card becomes the
// default.
func (s *PaymentCardService) Create(ctx context.Context, userID uuid.UUID, req CreatePaymentCardRequest) (*PaymentCardResponse, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cardRepo.FindByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= maxCardsPerCustomer {
		return nil, shared.NewDomainError("CARD_LIMIT", "Card limit reached")
	}

	card, err := account.NewPaymentCard(customer.ID, req.Brand, req.LastFour, req.HolderName, req.ExpiryMonth, req.ExpiryYear)
	if err != nil {
		return nil, err
	}
	if card.IsExpired(time.Now()) {
		return nil, shared.NewDomainError("CARD_EXPIRED", "Card has already expired")
	}
	if len(existing) == 0 {
		card.IsDefault = true
	}

	if err := s.cardRepo.Save(ctx, card); err != nil {
		return nil, err
	}

	s.logger.Info("Payment card stored",
		zap.String("customer_id", customer.ID.String()),
		zap.String("card_id", card.ID.String()),
		zap.String("brand", card.Brand))

	response := ToPaymentCardResponse(card, time.Now())
	return &response, nil
}

// List returns the customer's stored cards
func (s *PaymentCardService) List(ctx context.Context, userID uuid.UUID) ([]PaymentCardResponse, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	cards, err := s.cardRepo.FindByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	return ToPaymentCardResponses(cards, time.Now()), nil
}

// SetDefault makes the card the customer's default, clearing the flag on
// any other card.
func (s *PaymentCardService) SetDefault(ctx context.Context, userID, cardID uuid.UUID) error {
	card, err := s.ownedCard(ctx, userID, cardID)
	if err != nil {
		return err
	}
	if card.IsExpired(time.Now()) {
		return shared.NewDomainError("CARD_EXPIRED", "An expired card cannot be the default")
	}
	return s.cardRepo.SetDefault(ctx, card.CustomerID, card.ID)
}

// Delete removes a stored card
func (s *PaymentCardService) Delete(ctx context.Context, userID, cardID uuid.UUID) error {
	card, err := s.ownedCard(ctx, userID, cardID)
	if err != nil {
		return err
	}
	if err := s.cardRepo.Delete(ctx, card.ID); err != nil {
		return err
	}
	s.logger.Info("Payment card deleted",
		zap.String("customer_id", card.CustomerID.String()),
		zap.String("card_id", card.ID.String()))
	return nil
}

func (s *PaymentCardService) ownedCard(ctx context.Context, userID, cardID uuid.UUID) (*account.PaymentCard, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.CustomerID != customer.ID {
		return nil, shared.ErrNotFound
	}
	return card, nil
}
