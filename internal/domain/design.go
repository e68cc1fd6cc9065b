package domain

import (
	"fmt"
	"time"
)

// Quality tiers accepted by the generation pipeline.
const (
	QualityStandard = "standard"
	QualityHD       = "hd"
)

// Design represents a generated apparel design owned by a client session.
// A Design is immutable after creation except for HDImageURL, which is filled
// in later by the background high-quality regeneration.
type Design struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ImageURL      string `json:"imageUrl"`
	Prompt        string `json:"prompt,omitempty"`
	RevisedPrompt string `json:"revisedPrompt,omitempty"`
	HDImageURL    string `json:"hdImageUrl,omitempty"`
	Quality       string `json:"quality,omitempty"`
}

// ProductConfig is the garment configuration the user is editing. It governs
// mockup rendering and price computation.
type ProductConfig struct {
	Product string `json:"product"`
	Color   string `json:"color"`
	Size    string `json:"size"`
	Amount  int    `json:"amount"`
}

// NewDesignID returns a time-based unique design token.
func NewDesignID(now time.Time) string {
	return fmt.Sprintf("design-%d", now.UnixMilli())
}

// DesignNameFromPrompt derives a short display name from the user's prompt.
// Truncation counts runes so a multi-byte character is never split.
func DesignNameFromPrompt(prompt string) string {
	const maxLength = 30
	runes := []rune(prompt)
	if len(runes) > maxLength {
		return string(runes[:maxLength]) + "..."
	}
	return prompt
}
