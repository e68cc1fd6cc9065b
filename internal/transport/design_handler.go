package transport

import (
	"context"
	"errors"
	"net/http"

	"vibewear/internal/middleware"
	"vibewear/internal/openai"
	"vibewear/internal/service"
	"vibewear/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// GenerateDesignRequest is the orchestrated generation payload.
type GenerateDesignRequest struct {
	Prompt         string `json:"prompt"`
	Style          string `json:"style,omitempty"`
	Color          string `json:"color,omitempty"`
	ReferenceImage string `json:"referenceImage,omitempty"`
}

// DesignHandler handles HTTP requests for the generation pipeline
type DesignHandler struct {
	designService service.DesignService
	sessions      *session.Store
	logger        *zap.Logger
}

// NewDesignHandler creates a new DesignHandler
func NewDesignHandler(designService service.DesignService, sessions *session.Store, logger *zap.Logger) *DesignHandler {
	return &DesignHandler{
		designService: designService,
		sessions:      sessions,
		logger:        logger,
	}
}

// RegisterRoutes registers all design routes
func (h *DesignHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/designs", func(r chi.Router) {
		r.Post("/", h.Generate)
		r.Get("/", h.History)
	})
}

// resolveSession returns the caller's session, or writes a 500 when the
// session middleware is missing from the chain.
func resolveSession(w http.ResponseWriter, r *http.Request, sessions *session.Store) (*session.Session, bool) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not initialized")
		return nil, false
	}
	return sessions.GetOrCreate(sessionID), true
}

// Generate handles orchestrated design generation
func (h *DesignHandler) Generate(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(w, r, h.sessions)
	if !ok {
		return
	}

	var req GenerateDesignRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Generation request decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	design, err := h.designService.Generate(r.Context(), sess, service.GenerateInput{
		Prompt:         req.Prompt,
		Style:          req.Style,
		ProductColor:   req.Color,
		ReferenceImage: req.ReferenceImage,
	})
	if err != nil {
		h.respondGenerateError(w, r, err)
		return
	}

	remaining := h.designService.GenerationsLeft(r.Context(), sess.ID)

	h.logger.Info("Design generation succeeded",
		zap.String("session_id", sess.ID),
		zap.String("design_id", design.ID),
	)

	middleware.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"design":    design,
		"remaining": remaining,
	})
}

func (h *DesignHandler) respondGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.PromptValidationError
	var apiErr *openai.APIError
	switch {
	case errors.As(err, &validationErr):
		middleware.RespondWithError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, service.ErrQuotaExhausted):
		middleware.RespondWithErrorDetails(w, http.StatusForbidden, service.ErrQuotaExhausted.Error(),
			map[string]interface{}{"gate": "waitlist"})
	case errors.Is(err, service.ErrGenerationInProgress):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		middleware.RespondWithError(w, http.StatusGatewayTimeout,
			"Image generation is taking too long. Please try with a simpler prompt.")
	case errors.Is(err, openai.ErrNotConfigured):
		h.logger.Error("Design generation requested without API credential")
		middleware.RespondWithError(w, http.StatusInternalServerError, "OpenAI API key not configured")
	case errors.As(err, &apiErr):
		h.logger.Error("Upstream image API error",
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", apiErr.Message),
		)
		middleware.RespondWithError(w, apiErr.StatusCode, apiErr.Message)
	default:
		h.logger.Error("Design generation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway,
			"AI image generation is currently unavailable. Please try again later.")
	}
}

// History handles listing the session's design history
func (h *DesignHandler) History(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(w, r, h.sessions)
	if !ok {
		return
	}

	designs := h.designService.History(sess)

	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{
		"designs":     designs,
		"canGenerate": h.designService.CanGenerate(r.Context(), sess.ID),
		"remaining":   h.designService.GenerationsLeft(r.Context(), sess.ID),
	})
}
