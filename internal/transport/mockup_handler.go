package transport

import (
	"net/http"
	"strings"

	"vibewear/internal/middleware"
	"vibewear/internal/mockup"
	"vibewear/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MockupRequest selects what to render: either an embedded design image or
// the id of a design in the session history.
type MockupRequest struct {
	DesignID string `json:"designId,omitempty"`
	Image    string `json:"image,omitempty"`
	Color    string `json:"color,omitempty"`
}

// MockupHandler renders a design over a garment mockup
type MockupHandler struct {
	sessions *session.Store
	logger   *zap.Logger
}

// NewMockupHandler creates a new MockupHandler
func NewMockupHandler(sessions *session.Store, logger *zap.Logger) *MockupHandler {
	return &MockupHandler{sessions: sessions, logger: logger}
}

// RegisterRoutes registers the mockup route
func (h *MockupHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/mockup", h.Compose)
}

// Compose handles POST /api/mockup and responds with a PNG body.
func (h *MockupHandler) Compose(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(w, r, h.sessions)
	if !ok {
		return
	}

	var req MockupRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	image := req.Image
	if image == "" && req.DesignID != "" {
		design, found := sess.DesignByID(req.DesignID)
		if !found {
			middleware.RespondWithError(w, http.StatusNotFound, "design not found")
			return
		}
		image = design.ImageURL
	}

	if image == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "image or designId is required")
		return
	}

	// Only embedded images can be composed; hosted URLs would need a fetch
	// hop the mockup endpoint deliberately does not do.
	if !strings.HasPrefix(image, "data:") && strings.Contains(image, "://") {
		middleware.RespondWithError(w, http.StatusUnprocessableEntity, "design image is not embedded; supply it as a data URL")
		return
	}

	raw, err := mockup.DecodeDataURL(image)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image data")
		return
	}

	composed, err := mockup.Compose(raw, req.Color)
	if err != nil {
		h.logger.Error("Mockup composition failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusUnprocessableEntity, "failed to compose mockup")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(composed)
}
