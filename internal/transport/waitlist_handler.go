package transport

import (
	"errors"
	"net/http"
	"time"

	"vibewear/internal/middleware"
	"vibewear/internal/repository"
	"vibewear/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// JoinWaitlistRequest represents the email-capture payload
type JoinWaitlistRequest struct {
	Email string `json:"email" validate:"required,email"`
	Date  string `json:"date,omitempty"`
}

// WaitlistHandler handles HTTP requests for the beta waitlist
type WaitlistHandler struct {
	waitlistService service.WaitlistService
	logger          *zap.Logger
}

// NewWaitlistHandler creates a new WaitlistHandler
func NewWaitlistHandler(waitlistService service.WaitlistService, logger *zap.Logger) *WaitlistHandler {
	return &WaitlistHandler{
		waitlistService: waitlistService,
		logger:          logger,
	}
}

// RegisterRoutes registers the waitlist route
func (h *WaitlistHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/waitlist", h.Join)
}

// Join handles POST /api/waitlist
func (h *WaitlistHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req JoinWaitlistRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Waitlist validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date := time.Time{}
	if req.Date != "" {
		if parsed, err := time.Parse(time.RFC3339, req.Date); err == nil {
			date = parsed
		}
	}

	entry, err := h.waitlistService.Join(r.Context(), req.Email, date)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailAlreadyRegistered):
			middleware.RespondWithError(w, http.StatusConflict, "Email already registered")
		case errors.Is(err, service.ErrInvalidEmail):
			middleware.RespondWithError(w, http.StatusBadRequest, "Valid email is required")
		default:
			h.logger.Error("Waitlist signup failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to save email")
		}
		return
	}

	h.logger.Info("Waitlist signup", zap.String("email", entry.Email))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true})
}
