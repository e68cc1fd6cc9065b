package repository

import (
	"context"
	"database/sql"
	"fmt"

	"vibewear/internal/domain"
)

// PromptLogRepository defines the interface for generation-attempt logging
type PromptLogRepository interface {
	Create(ctx context.Context, entry *domain.PromptLog) error
	FindBySession(ctx context.Context, sessionID string, limit int) ([]domain.PromptLog, error)
}

type promptLogRepository struct {
	db *sql.DB
}

// NewPromptLogRepository creates a new instance of PromptLogRepository
func NewPromptLogRepository(db *sql.DB) PromptLogRepository {
	return &promptLogRepository{db: db}
}

// Create inserts a prompt log entry using parameterized queries
func (r *promptLogRepository) Create(ctx context.Context, entry *domain.PromptLog) error {
	query := `
		INSERT INTO prompt_logs (
			id, session_id, original_prompt, enhanced_prompt, revised_prompt,
			style, product_color, quality, success, error_message, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.SessionID,
		entry.OriginalPrompt,
		entry.EnhancedPrompt,
		entry.RevisedPrompt,
		entry.Style,
		entry.ProductColor,
		entry.Quality,
		entry.Success,
		entry.ErrorMessage,
		entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create prompt log: %w", err)
	}

	return nil
}

// FindBySession retrieves the most recent log entries for a session
func (r *promptLogRepository) FindBySession(ctx context.Context, sessionID string, limit int) ([]domain.PromptLog, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, session_id, original_prompt, enhanced_prompt, revised_prompt,
		       style, product_color, quality, success, error_message, created_at
		FROM prompt_logs
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query prompt logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.PromptLog
	for rows.Next() {
		var entry domain.PromptLog
		if err := rows.Scan(
			&entry.ID,
			&entry.SessionID,
			&entry.OriginalPrompt,
			&entry.EnhancedPrompt,
			&entry.RevisedPrompt,
			&entry.Style,
			&entry.ProductColor,
			&entry.Quality,
			&entry.Success,
			&entry.ErrorMessage,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prompt log: %w", err)
		}
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prompt logs: %w", err)
	}

	return logs, nil
}
