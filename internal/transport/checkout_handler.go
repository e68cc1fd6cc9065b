package transport

import (
	"errors"
	"net/http"

	"vibewear/internal/middleware"
	"vibewear/internal/service"
	"vibewear/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutRequest represents the checkout payload
type CheckoutRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone,omitempty"`

	ShippingAddress struct {
		Address1 string `json:"address1" validate:"required"`
		Address2 string `json:"address2,omitempty"`
		City     string `json:"city" validate:"required"`
		State    string `json:"state" validate:"required"`
		ZipCode  string `json:"zipCode" validate:"required"`
		Country  string `json:"country" validate:"required"`
	} `json:"shippingAddress"`
}

// CheckoutHandler handles the simulated checkout
type CheckoutHandler struct {
	checkoutService service.CheckoutService
	sessions        *session.Store
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService service.CheckoutService, sessions *session.Store, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		sessions:        sessions,
		logger:          logger,
	}
}

// RegisterRoutes registers the checkout route
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/checkout", h.Checkout)
}

// Checkout handles POST /api/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(w, r, h.sessions)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form := service.CheckoutForm{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		ShippingAddress: service.ShippingAddress{
			Address1: req.ShippingAddress.Address1,
			Address2: req.ShippingAddress.Address2,
			City:     req.ShippingAddress.City,
			State:    req.ShippingAddress.State,
			ZipCode:  req.ShippingAddress.ZipCode,
			Country:  req.ShippingAddress.Country,
		},
	}

	order, err := h.checkoutService.Checkout(r.Context(), sess, form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGateRequired):
			middleware.RespondWithErrorDetails(w, http.StatusForbidden, err.Error(),
				map[string]interface{}{"gate": "waitlist"})
		case errors.Is(err, service.ErrEmptyCart):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Checkout failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to process order")
		}
		return
	}

	h.logger.Info("Order placed",
		zap.String("session_id", sess.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total", order.Summary.Total),
	)

	middleware.RespondWithJSON(w, http.StatusOK, order)
}
