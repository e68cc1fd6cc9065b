package prompt

import "strings"

// User-facing validation messages. The wording is part of the client
// contract; clients match on it to decide what to show.
const (
	MsgEmptyPrompt   = "Please enter a description for your design"
	MsgPromptTooLong = "Prompt is too long. Please keep it under 1000 characters."
	MsgInappropriate = "Please use appropriate content for your design"
)

// MaxPromptLength is the hard cap on raw prompt length.
const MaxPromptLength = 1000

// inappropriateTerms are rejected by case-insensitive substring match.
var inappropriateTerms = []string{
	"nsfw", "explicit", "nude", "sexual", "violence", "gore", "hate",
}

// ValidationResult reports whether a prompt is acceptable and, if not, the
// message to show the user.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Validate checks a raw prompt before any network call. It fails closed with
// a specific message per violated rule.
func Validate(raw string) ValidationResult {
	if strings.TrimSpace(raw) == "" {
		return ValidationResult{Valid: false, Error: MsgEmptyPrompt}
	}

	if len(raw) > MaxPromptLength {
		return ValidationResult{Valid: false, Error: MsgPromptTooLong}
	}

	lower := strings.ToLower(raw)
	for _, term := range inappropriateTerms {
		if strings.Contains(lower, term) {
			return ValidationResult{Valid: false, Error: MsgInappropriate}
		}
	}

	return ValidationResult{Valid: true}
}
