package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/account"
	"github.com/stemkits/backend/internal/domain/identity"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stemkits/backend/internal/domain/supplier"
	"github.com/stemkits/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication and account registration
type AuthService struct {
	userRepo     identity.UserRepository
	customerRepo account.CustomerRepository
	supplierRepo supplier.SupplierRepository
	jwtService   *auth.JWTService
	blacklist    auth.TokenBlacklist
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	customerRepo account.CustomerRepository,
	supplierRepo supplier.SupplierRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		jwtService:   jwtService,
		blacklist:    blacklist,
		publisher:    publisher,
		logger:       logger,
	}
}

// RegisterCustomer creates a customer account with its storefront profile
func (s *AuthService) RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*LoginResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Password, identity.RoleCustomer)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	customer, err := account.NewCustomer(user.ID, user.Email, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, customer.GetDomainEvents())
	customer.ClearDomainEvents()

	s.logger.Info("Customer registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.issueTokens(user)
}

// RegisterSupplier creates a supplier account pending admin review
func (s *AuthService) RegisterSupplier(ctx context.Context, req RegisterSupplierRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Password, identity.RoleSupplier)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	vendor, err := supplier.NewSupplier(user.ID, req.CompanyName, req.ContactName, user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, vendor.GetDomainEvents())
	vendor.ClearDomainEvents()

	s.logger.Info("Supplier registered",
		zap.String("user_id", user.ID.String()),
		zap.String("company", req.CompanyName))

	response := ToUserResponse(user)
	return &response, nil
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warn("Login for unknown email", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !user.IsActive() {
		s.logger.Warn("Login for disabled account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been disabled")
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	// Suppliers must be approved before the portal opens for them.
	if user.Role == identity.RoleSupplier {
		vendor, err := s.supplierRepo.FindByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		switch vendor.Status {
		case supplier.SupplierStatusPending:
			return nil, shared.NewDomainError("SUPPLIER_PENDING", "Supplier application is still under review")
		case supplier.SupplierStatusRejected:
			return nil, shared.NewDomainError("SUPPLIER_REJECTED", "Supplier application was rejected")
		case supplier.SupplierStatusSuspended:
			return nil, shared.NewDomainError("SUPPLIER_SUSPENDED", "Supplier account is suspended")
		}
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to record login", zap.Error(err))
	}

	return s.issueTokens(user)
}

// Refresh exchanges a refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token has been revoked")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is malformed")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Account no longer exists")
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been disabled")
	}

	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.Email, string(user.Role))
	if err != nil {
		if errors.Is(err, auth.ErrMaxRefreshExceeded) {
			return nil, shared.NewDomainError("SESSION_EXPIRED", "Session has expired, please sign in again")
		}
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	// The old refresh token is single use.
	_ = s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL())
	return pair, nil
}

// Logout revokes the current access token
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist token on logout", zap.Error(err))
		return err
	}
	return nil
}

// ChangePassword updates the current user's password and revokes every
// existing session.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.VerifyPassword(req.CurrentPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to revoke sessions after password change", zap.Error(err))
	}
	return nil
}

// GetUser returns a user account by ID
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// SeedAdmin creates the back-office admin account on first boot when no
// admin exists yet. Email and password come from configuration.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	count, err := s.userRepo.CountByRole(ctx, identity.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin, err := identity.NewUser(email, password, identity.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("Seeded admin account", zap.String("email", admin.Email))
	return nil
}

func (s *AuthService) issueTokens(user *identity.User) (*LoginResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_GENERATION_FAILED", "Failed to generate tokens")
	}
	return &LoginResponse{
		User:   ToUserResponse(user),
		Tokens: pair,
	}, nil
}

func (s *AuthService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
}
