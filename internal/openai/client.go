package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no API key is available. Handlers map it
// to a 500 without ever leaking configuration detail to the client.
var ErrNotConfigured = errors.New("OpenAI API key not configured")

// APIError is a non-2xx response from the upstream. Message carries the
// upstream's structured error text verbatim when it was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Options configures a Client.
type Options struct {
	APIKey        string
	BaseURL       string
	PrimaryModel  string
	FallbackModel string
	VisionModel   string
	HTTPClient    *http.Client
	Logger        *zap.Logger
}

// Client is a thin JSON client for the OpenAI images and chat-completions
// endpoints. It is safe for concurrent use.
type Client struct {
	apiKey        string
	baseURL       string
	primaryModel  string
	fallbackModel string
	visionModel   string
	httpClient    *http.Client
	logger        *zap.Logger
}

func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}

	primary := opts.PrimaryModel
	if primary == "" {
		primary = "gpt-image-1"
	}
	fallback := opts.FallbackModel
	if fallback == "" {
		fallback = "dall-e-3"
	}
	vision := opts.VisionModel
	if vision == "" {
		vision = "gpt-4o-mini"
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiKey:        opts.APIKey,
		baseURL:       baseURL,
		primaryModel:  primary,
		fallbackModel: fallback,
		visionModel:   vision,
		httpClient:    httpClient,
		logger:        logger,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// attemptPlan is the explicit model strategy list: primary first, then the
// fallback with size and quality coerced to what the fallback accepts. The
// list is iterated at most once end to end, which is what makes the "retry
// exactly once" contract hold.
func (c *Client) attemptPlan(req GenerationRequest) []imagesRequest {
	size := req.Size
	if size == "" {
		size = "1024x1024"
	}

	primaryQuality := "medium"
	fallbackQuality := "standard"
	if req.Quality == "hd" {
		primaryQuality = "high"
		fallbackQuality = "hd"
	}

	return []imagesRequest{
		{
			Model:   c.primaryModel,
			Prompt:  req.Prompt,
			Quality: primaryQuality,
			N:       1,
			Size:    size,
		},
		{
			Model:   c.fallbackModel,
			Prompt:  req.Prompt,
			Quality: fallbackQuality,
			N:       1,
			// The fallback model is strict about allowed sizes; coerce
			// silently rather than erroring.
			Size: "1024x1024",
		},
	}
}

// GenerateImage runs one generation through the model strategy list. A 403 or
// 404 from the primary model (not entitled / model unavailable) advances to
// the fallback model; any other failure, and any failure of the final
// attempt, is returned as-is.
func (c *Client) GenerateImage(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, errors.New("prompt is empty")
	}

	plan := c.attemptPlan(req)

	var lastErr error
	for i, attempt := range plan {
		result, err := c.images(ctx, attempt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		var apiErr *APIError
		if i < len(plan)-1 && errors.As(err, &apiErr) &&
			(apiErr.StatusCode == http.StatusForbidden || apiErr.StatusCode == http.StatusNotFound) {
			c.logger.Warn("Image model unavailable, trying fallback",
				zap.String("model", attempt.Model),
				zap.Int("status", apiErr.StatusCode),
			)
			continue
		}
		break
	}

	return nil, lastErr
}

func (c *Client) images(ctx context.Context, req imagesRequest) (*GenerationResult, error) {
	var decoded imagesResponse
	if err := c.post(ctx, "/v1/images/generations", req, &decoded); err != nil {
		return nil, err
	}

	result := &GenerationResult{
		Images: make([]GeneratedImage, 0, len(decoded.Data)),
		Usage:  decoded.Usage,
		Model:  req.Model,
	}
	for _, d := range decoded.Data {
		img, ok := normalizeImageData(d)
		if !ok {
			continue
		}
		result.Images = append(result.Images, img)
	}

	if len(result.Images) == 0 {
		return nil, errors.New("no image was generated")
	}

	return result, nil
}

// normalizeImageData folds the url/b64_json union into the ImagePayload
// variant.
func normalizeImageData(d imageData) (GeneratedImage, bool) {
	switch {
	case d.URL != "":
		return GeneratedImage{Payload: URLPayload(d.URL), RevisedPrompt: d.RevisedPrompt}, true
	case d.B64JSON != "":
		return GeneratedImage{Payload: Base64Payload(d.B64JSON), RevisedPrompt: d.RevisedPrompt}, true
	default:
		return GeneratedImage{}, false
	}
}

const styleSystemPrompt = "You are an expert at analyzing images for use as style references in AI image generation. Describe the visual style, colors, composition, artistic technique, and any distinctive motifs or elements that should be replicated."

// DescribeStyle asks the vision model for a style-only description of a
// reference image. The image may be a data URL or a remote URL.
func (c *Client) DescribeStyle(ctx context.Context, image, userPrompt string) (*StyleDescription, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(image) == "" {
		return nil, errors.New("image is empty")
	}

	userText := fmt.Sprintf(
		"Analyze this reference image and describe its visual style, artistic technique, color palette, and key motifs that could be used to generate a similar styled image. The user wants to create: %q. Focus on style elements that would be relevant for this generation.",
		userPrompt,
	)

	req := chatRequest{
		Model: c.visionModel,
		Messages: []chatMessage{
			{Role: "system", Content: styleSystemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: userText},
				// Low detail keeps token usage down; style extraction does
				// not need the full-resolution image.
				{Type: "image_url", ImageURL: &imageURLPart{URL: image, Detail: "low"}},
			}},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	}

	var decoded chatResponse
	if err := c.post(ctx, "/v1/chat/completions", req, &decoded); err != nil {
		return nil, err
	}

	if len(decoded.Choices) == 0 {
		return nil, errors.New("empty vision response")
	}

	return &StyleDescription{
		Description: decoded.Choices[0].Message.Content,
		Usage:       decoded.Usage,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer httpResp.Body.Close()

	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode >= 400 {
		return &APIError{
			StatusCode: httpResp.StatusCode,
			Message:    upstreamErrorMessage(rawBody, httpResp.StatusCode),
		}
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// upstreamErrorMessage extracts the upstream's structured error message,
// falling back to a generic status-code message.
func upstreamErrorMessage(rawBody []byte, status int) string {
	var decoded apiErrorBody
	if err := json.Unmarshal(rawBody, &decoded); err == nil {
		if decoded.Error != nil && decoded.Error.Message != "" {
			return decoded.Error.Message
		}
		if decoded.Message != "" {
			return decoded.Message
		}
	}
	return fmt.Sprintf("API error: %d", status)
}
