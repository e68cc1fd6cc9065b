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

// AddCartItemRequest represents the add-to-cart payload
type AddCartItemRequest struct {
	DesignID string `json:"designId" validate:"required"`
	Product  string `json:"product" validate:"required"`
	Color    string `json:"color" validate:"required"`
	Size     string `json:"size" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// UpdateQuantityRequest represents the quantity-change payload
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	cartService     service.CartService
	checkoutService service.CheckoutService
	sessions        *session.Store
	logger          *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, checkoutService service.CheckoutService, sessions *session.Store, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
		sessions:        sessions,
		logger:          logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Post("/items", h.AddItem)
		r.Patch("/items/{itemID}", h.UpdateQuantity)
		r.Delete("/items/{itemID}", h.RemoveItem)
	})
}

// Get handles reading the cart with derived totals
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(w, r, h.sessions)
	if !ok {
		return
	}

	items := h.cartService.Items(sess)

	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{
		"items":   items,
		"summary": h.checkoutService.Summarize(items),
		"count":   h.cartService.Count(sess),
	})
}

// AddItem handles adding a configured design to the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(w, r, h.sessions)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.cartService.Add(sess, service.AddItemInput{
		DesignID: req.DesignID,
		Product:  req.Product,
		Color:    req.Color,
		Size:     req.Size,
		Quantity: req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGateRequired):
			middleware.RespondWithErrorDetails(w, http.StatusForbidden, err.Error(),
				map[string]interface{}{"gate": "waitlist"})
		case errors.Is(err, service.ErrDesignNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidVariant):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Add to cart failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add to cart")
		}
		return
	}

	h.logger.Info("Item added to cart",
		zap.String("session_id", sess.ID),
		zap.String("item_id", item.ID),
		zap.Int("quantity", item.Quantity),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, item)
}

// UpdateQuantity handles quantity changes; zero or below removes the item
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(w, r, h.sessions)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "itemID")

	var req UpdateQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.cartService.UpdateQuantity(sess, itemID, req.Quantity); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Update quantity failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update quantity")
		return
	}

	h.Get(w, r)
}

// RemoveItem handles removing one cart item
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(w, r, h.sessions)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "itemID")

	if err := h.cartService.Remove(sess, itemID); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Remove item failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove item")
		return
	}

	h.Get(w, r)
}

// Clear handles emptying the cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(w, r, h.sessions)
	if !ok {
		return
	}

	h.cartService.Clear(sess)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}
