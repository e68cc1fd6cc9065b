package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vibewear/internal/domain"
	"vibewear/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidEmail = errors.New("valid email is required")

// WaitlistService captures beta-gate emails.
type WaitlistService interface {
	Join(ctx context.Context, email string, date time.Time) (*domain.WaitlistEntry, error)
}

type waitlistService struct {
	repo repository.WaitlistRepository
}

// NewWaitlistService creates a new instance of WaitlistService
func NewWaitlistService(repo repository.WaitlistRepository) WaitlistService {
	return &waitlistService{repo: repo}
}

// Join stores one email capture. Emails are lower-cased and trimmed before
// storage; duplicates surface repository.ErrEmailAlreadyRegistered.
func (s *waitlistService) Join(ctx context.Context, email string, date time.Time) (*domain.WaitlistEntry, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	if date.IsZero() {
		date = time.Now()
	}

	entry := &domain.WaitlistEntry{
		ID:        uuid.New(),
		Email:     email,
		Source:    "beta_modal",
		CreatedAt: date,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrEmailAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to join waitlist: %w", err)
	}

	return entry, nil
}
