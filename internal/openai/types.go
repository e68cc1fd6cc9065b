package openai

// PayloadKind discriminates how the upstream returned the generated image.
type PayloadKind int

const (
	// PayloadURL means the upstream returned a hosted image URL.
	PayloadURL PayloadKind = iota
	// PayloadBase64 means the upstream returned base64-encoded image bytes.
	PayloadBase64
)

// ImagePayload is the tagged variant for the two upstream response shapes
// (url vs. b64_json). Construct with URLPayload or Base64Payload.
type ImagePayload struct {
	Kind  PayloadKind
	Value string
}

func URLPayload(url string) ImagePayload {
	return ImagePayload{Kind: PayloadURL, Value: url}
}

func Base64Payload(data string) ImagePayload {
	return ImagePayload{Kind: PayloadBase64, Value: data}
}

// DataURL renders the payload as something a browser can display directly:
// the URL itself, or a PNG data URL for base64 payloads.
func (p ImagePayload) DataURL() string {
	if p.Kind == PayloadBase64 {
		return "data:image/png;base64," + p.Value
	}
	return p.Value
}

// Usage carries upstream token/billing metadata when present.
type Usage struct {
	InputTokens  int `json:"input_tokens,omitempty"`
	OutputTokens int `json:"output_tokens,omitempty"`
	TotalTokens  int `json:"total_tokens,omitempty"`
}

// GenerationRequest is one finished prompt ready for the images API.
type GenerationRequest struct {
	Prompt  string
	Quality string // "standard" or "hd"
	Size    string // e.g. "1024x1024"
}

// GeneratedImage is one normalized result image.
type GeneratedImage struct {
	Payload       ImagePayload
	RevisedPrompt string
}

// GenerationResult is the normalized success response from either model.
type GenerationResult struct {
	Images []GeneratedImage
	Usage  *Usage
	Model  string
}

// StyleDescription is the analyzer's output: a style-only description of a
// reference image, plus usage metadata when the upstream reports it.
type StyleDescription struct {
	Description string
	Usage       *Usage
}

// Wire types for the images endpoint.

type imagesRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Quality string `json:"quality"`
	N       int    `json:"n"`
	Size    string `json:"size"`
}

type imagesResponse struct {
	Created int64       `json:"created"`
	Data    []imageData `json:"data"`
	Usage   *Usage      `json:"usage,omitempty"`
}

type imageData struct {
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// Wire types for the chat completions (vision) endpoint.

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *imageURLPart `json:"image_url,omitempty"`
}

type imageURLPart struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   *Usage       `json:"usage,omitempty"`
}

type chatChoice struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// apiErrorBody matches the upstream's structured error envelope.
type apiErrorBody struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
	Message string `json:"message,omitempty"`
}
