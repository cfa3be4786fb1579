package handler

import (
	"github.com/gin-gonic/gin"
	accountapp "github.com/stemkits/backend/internal/application/account"
	"github.com/stemkits/backend/internal/interfaces/http/dto"
)

// CustomerHandler handles the customer's own profile, addresses and payment
// cards, plus customer administration in the back office
type CustomerHandler struct {
	BaseHandler
	customerService *accountapp.CustomerService
	addressService  *accountapp.AddressService
	cardService     *accountapp.PaymentCardService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(
	customerService *accountapp.CustomerService,
	addressService *accountapp.AddressService,
	cardService *accountapp.PaymentCardService,
) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		addressService:  addressService,
		cardService:     cardService,
	}
}

// GetProfile returns the current customer's profile
func (h *CustomerHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.customerService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateProfile updates the current customer's profile
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req accountapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	profile, err := h.customerService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// GetLoyalty returns the current customer's loyalty level and spend
func (h *CustomerHandler) GetLoyalty(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	loyalty, err := h.customerService.GetLoyalty(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, loyalty)
}

// ListAddresses lists the current customer's addresses
func (h *CustomerHandler) ListAddresses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addresses)
}

// CreateAddress adds an address to the current customer's address book
func (h *CustomerHandler) CreateAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req accountapp.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	address, err := h.addressService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, address)
}

// UpdateAddress updates one of the current customer's addresses
func (h *CustomerHandler) UpdateAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, ok := bindID(c)
	if !ok {
		return
	}

	var req accountapp.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	address, err := h.addressService.Update(c.Request.Context(), userID, addressID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, address)
}

// SetDefaultShippingAddress marks an address as the default shipping address
func (h *CustomerHandler) SetDefaultShippingAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.addressService.SetDefaultShipping(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetDefaultBillingAddress marks an address as the default billing address
func (h *CustomerHandler) SetDefaultBillingAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.addressService.SetDefaultBilling(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteAddress removes an address from the current customer's address book
func (h *CustomerHandler) DeleteAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListPaymentCards lists the current customer's saved cards
func (h *CustomerHandler) ListPaymentCards(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cards, err := h.cardService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cards)
}

// CreatePaymentCard saves a new card reference
func (h *CustomerHandler) CreatePaymentCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req accountapp.CreatePaymentCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	card, err := h.cardService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, card)
}

// SetDefaultPaymentCard marks a card as the default payment method
func (h *CustomerHandler) SetDefaultPaymentCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.cardService.SetDefault(c.Request.Context(), userID, cardID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeletePaymentCard removes a saved card
func (h *CustomerHandler) DeletePaymentCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.cardService.Delete(c.Request.Context(), userID, cardID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// List lists customers for the back office
func (h *CustomerHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := toFilter(req)
	customers, total, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, customers, total, filter.Page, filter.PageSize)
}

// Get returns a customer by ID for the back office
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Disable blocks a customer account
func (h *CustomerHandler) Disable(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.customerService.Disable(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Enable reactivates a customer account
func (h *CustomerHandler) Enable(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.customerService.Enable(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
