package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"vibewear/internal/domain"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrWaitlistEntryNotFound  = errors.New("waitlist entry not found")
)

// WaitlistRepository defines the interface for waitlist data access
type WaitlistRepository interface {
	Create(ctx context.Context, entry *domain.WaitlistEntry) error
	FindByEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error)
	Count(ctx context.Context) (int, error)
}

type waitlistRepository struct {
	db *sql.DB
}

// NewWaitlistRepository creates a new instance of WaitlistRepository
func NewWaitlistRepository(db *sql.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

// Create inserts a waitlist entry using parameterized queries
func (r *waitlistRepository) Create(ctx context.Context, entry *domain.WaitlistEntry) error {
	query := `
		INSERT INTO waitlist (id, email, source, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.Email,
		entry.Source,
		entry.CreatedAt,
	)

	if err != nil {
		// Unique constraint on email (SQLSTATE 23505)
		if strings.Contains(err.Error(), "23505") ||
			strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return ErrEmailAlreadyRegistered
		}
		return fmt.Errorf("failed to create waitlist entry: %w", err)
	}

	return nil
}

// FindByEmail retrieves an entry by email
func (r *waitlistRepository) FindByEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	query := `
		SELECT id, email, source, created_at
		FROM waitlist
		WHERE email = $1
	`

	entry := &domain.WaitlistEntry{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&entry.ID,
		&entry.Email,
		&entry.Source,
		&entry.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrWaitlistEntryNotFound
		}
		return nil, fmt.Errorf("failed to find waitlist entry: %w", err)
	}

	return entry, nil
}

// Count returns the number of captured emails
func (r *waitlistRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM waitlist`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count waitlist entries: %w", err)
	}
	return count, nil
}
