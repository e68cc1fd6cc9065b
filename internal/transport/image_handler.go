package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"vibewear/internal/openai"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ImageClient is the slice of the OpenAI client the proxy endpoints need.
type ImageClient interface {
	Configured() bool
	GenerateImage(ctx context.Context, req openai.GenerationRequest) (*openai.GenerationResult, error)
	DescribeStyle(ctx context.Context, image, userPrompt string) (*openai.StyleDescription, error)
}

// GenerateImageRequest is the gateway's wire contract.
type GenerateImageRequest struct {
	Prompt         string `json:"prompt"`
	Quality        string `json:"quality,omitempty"`
	Size           string `json:"size,omitempty"`
	ReferenceImage string `json:"referenceImage,omitempty"`
}

// AnalyzeImageRequest is the analyzer's wire contract.
type AnalyzeImageRequest struct {
	Image      string `json:"image"`
	UserPrompt string `json:"userPrompt"`
}

// ImageHandler proxies the browser-facing generation endpoints to the
// upstream API. The credential never reaches the client; these endpoints are
// the only place it is used.
type ImageHandler struct {
	client           ImageClient
	timeout          time.Duration
	maxResponseBytes int
	logger           *zap.Logger
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(client ImageClient, timeout time.Duration, maxResponseBytes int, logger *zap.Logger) *ImageHandler {
	if timeout <= 0 {
		timeout = 24 * time.Second
	}
	if maxResponseBytes <= 0 {
		maxResponseBytes = 5 * 1024 * 1024
	}
	return &ImageHandler{
		client:           client,
		timeout:          timeout,
		maxResponseBytes: maxResponseBytes,
		logger:           logger,
	}
}

// RegisterRoutes registers the proxy routes
func (h *ImageHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/images/generations", h.Generate)
	r.Post("/api/images/analyze", h.Analyze)
}

// imageErrorResponse is the flat error shape of the original gateway
// contract, kept distinct from the structured envelope used elsewhere.
type imageErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func writeImageError(w http.ResponseWriter, status int, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(imageErrorResponse{Error: message, Details: details})
}

// Generate handles POST /api/images/generations.
func (h *ImageHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeImageError(w, http.StatusRequestEntityTooLarge, "Request too large. Maximum size is 6MB.", nil)
			return
		}
		writeImageError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		writeImageError(w, http.StatusBadRequest, "Prompt is required", nil)
		return
	}

	if !h.client.Configured() {
		h.logger.Error("Image generation requested without API credential")
		writeImageError(w, http.StatusInternalServerError, "OpenAI API key not configured", nil)
		return
	}

	prompt := req.Prompt
	if req.ReferenceImage != "" {
		// The images endpoint cannot take the image itself; the analyzer
		// endpoint exists for that. Mention the reference so the model leans
		// toward guided output.
		prompt += ". (User has provided a reference image for style/motif guidance)"
	}

	quality := req.Quality
	if quality == "" {
		quality = "standard"
	}
	size := req.Size
	if size == "" {
		size = "1024x1024"
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.client.GenerateImage(ctx, openai.GenerationRequest{
		Prompt:  prompt,
		Quality: quality,
		Size:    size,
	})
	if err != nil {
		h.respondGenerateError(w, err)
		return
	}

	h.respondGenerateSuccess(w, result)
}

func (h *ImageHandler) respondGenerateError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		writeImageError(w, http.StatusGatewayTimeout,
			"Image generation is taking too long. Please try with a simpler prompt or use standard quality.", nil)
		return
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		h.logger.Error("Upstream image API error",
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", apiErr.Message),
		)
		writeImageError(w, apiErr.StatusCode, apiErr.Message, nil)
		return
	}

	h.logger.Error("Image generation failed", zap.Error(err))
	writeImageError(w, http.StatusBadGateway, "AI image generation is currently unavailable. Please try again later.", nil)
}

// respondGenerateSuccess normalizes the result into the
// { data: [{ url | b64_json, revised_prompt }], usage } shape and applies the
// response size guard before writing anything.
func (h *ImageHandler) respondGenerateSuccess(w http.ResponseWriter, result *openai.GenerationResult) {
	type imageOut struct {
		URL           string `json:"url,omitempty"`
		B64JSON       string `json:"b64_json,omitempty"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	}

	out := struct {
		Data  []imageOut    `json:"data"`
		Usage *openai.Usage `json:"usage,omitempty"`
	}{Usage: result.Usage}

	for _, img := range result.Images {
		entry := imageOut{RevisedPrompt: img.RevisedPrompt}
		switch img.Payload.Kind {
		case openai.PayloadBase64:
			entry.B64JSON = img.Payload.Value
		default:
			entry.URL = img.Payload.Value
		}
		out.Data = append(out.Data, entry)
	}

	body, err := json.Marshal(out)
	if err != nil {
		h.logger.Error("Failed to serialize generation response", zap.Error(err))
		writeImageError(w, http.StatusInternalServerError, "Failed to process image response.", nil)
		return
	}

	// Base64-encoded HD images can exceed what the transport will carry.
	// Reject here with advice instead of forwarding a body that would be
	// dropped downstream.
	if len(body) > h.maxResponseBytes {
		h.logger.Warn("Generated image response over size ceiling",
			zap.Int("bytes", len(body)),
			zap.Int("ceiling", h.maxResponseBytes),
		)
		writeImageError(w, http.StatusInsufficientStorage,
			"Generated image is too large. Try using standard quality instead of HD.", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Analyze handles POST /api/images/analyze.
func (h *ImageHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeImageError(w, http.StatusRequestEntityTooLarge, "Request too large. Maximum size is 6MB.", nil)
			return
		}
		writeImageError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if strings.TrimSpace(req.Image) == "" {
		writeImageError(w, http.StatusBadRequest, "Image is required", nil)
		return
	}

	if !h.client.Configured() {
		writeImageError(w, http.StatusInternalServerError, "OpenAI API key not configured", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	desc, err := h.client.DescribeStyle(ctx, req.Image, req.UserPrompt)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			h.logger.Error("Vision API error",
				zap.Int("status", apiErr.StatusCode),
				zap.String("message", apiErr.Message),
			)
			writeImageError(w, apiErr.StatusCode, "Failed to analyze image", apiErr.Message)
			return
		}
		h.logger.Error("Image analysis failed", zap.Error(err))
		writeImageError(w, http.StatusBadGateway, "Failed to analyze image", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(struct {
		Description string        `json:"description"`
		Usage       *openai.Usage `json:"usage,omitempty"`
	}{Description: desc.Description, Usage: desc.Usage})
}
