package domain

import (
	"time"

	"github.com/google/uuid"
)

// WaitlistEntry is one captured email from the beta gate.
type WaitlistEntry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Source    string    `json:"source" db:"source"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PromptLog records one generation attempt for analytics. Designs themselves
// are never persisted server-side; this log is the only trace.
type PromptLog struct {
	ID             uuid.UUID `json:"id" db:"id"`
	SessionID      string    `json:"session_id" db:"session_id"`
	OriginalPrompt string    `json:"original_prompt" db:"original_prompt"`
	EnhancedPrompt string    `json:"enhanced_prompt" db:"enhanced_prompt"`
	RevisedPrompt  string    `json:"revised_prompt" db:"revised_prompt"`
	Style          string    `json:"style" db:"style"`
	ProductColor   string    `json:"product_color" db:"product_color"`
	Quality        string    `json:"quality" db:"quality"`
	Success        bool      `json:"success" db:"success"`
	ErrorMessage   string    `json:"error_message" db:"error_message"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
