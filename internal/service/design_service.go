package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vibewear/internal/config"
	"vibewear/internal/domain"
	"vibewear/internal/openai"
	"vibewear/internal/prompt"
	"vibewear/internal/quota"
	"vibewear/internal/repository"
	"vibewear/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrGenerationInProgress = errors.New("a generation is already in progress")
	ErrQuotaExhausted       = errors.New("generation limit reached")
)

// PromptValidationError carries the user-facing message for a rejected
// prompt. It is raised before any network call.
type PromptValidationError struct {
	Message string
}

func (e *PromptValidationError) Error() string {
	return e.Message
}

// Generator is the slice of the OpenAI client the orchestrator needs.
type Generator interface {
	GenerateImage(ctx context.Context, req openai.GenerationRequest) (*openai.GenerationResult, error)
	DescribeStyle(ctx context.Context, image, userPrompt string) (*openai.StyleDescription, error)
}

// GenerateInput is one user generation request.
type GenerateInput struct {
	Prompt         string
	Style          string
	ProductColor   string
	ReferenceImage string
}

// DesignService sequences the generation pipeline: validation and quota
// check, optional reference-image analysis, prompt enhancement, the gateway
// call, history bookkeeping, and the background HD regeneration.
type DesignService interface {
	Generate(ctx context.Context, sess *session.Session, in GenerateInput) (*domain.Design, error)
	History(sess *session.Session) []domain.Design
	CanGenerate(ctx context.Context, sessionID string) bool
	GenerationsLeft(ctx context.Context, sessionID string) int
}

type designService struct {
	client    Generator
	gate      *quota.Gate
	promptLog repository.PromptLogRepository
	features  config.FeatureConfig
	timeout   time.Duration
	logger    *zap.Logger

	now      func() time.Time
	runAsync func(fn func())
}

// NewDesignService creates a new instance of DesignService. promptLog may be
// nil when no database is configured; logging is best effort either way.
func NewDesignService(
	client Generator,
	gate *quota.Gate,
	promptLog repository.PromptLogRepository,
	features config.FeatureConfig,
	timeout time.Duration,
	logger *zap.Logger,
) DesignService {
	if timeout <= 0 {
		timeout = 24 * time.Second
	}
	return &designService{
		client:    client,
		gate:      gate,
		promptLog: promptLog,
		features:  features,
		timeout:   timeout,
		logger:    logger,
		now:       time.Now,
		runAsync:  func(fn func()) { go fn() },
	}
}

// Generate runs one generation request end to end. The pipeline is strictly
// sequential: the analyzer result (or its explicit failure) feeds the
// enhancer, and the enhanced prompt feeds the gateway.
func (s *designService) Generate(ctx context.Context, sess *session.Session, in GenerateInput) (*domain.Design, error) {
	if v := prompt.Validate(in.Prompt); !v.Valid {
		return nil, &PromptValidationError{Message: v.Error}
	}

	if !s.gate.CanGenerate(ctx, sess.ID) {
		return nil, ErrQuotaExhausted
	}

	if !sess.TryBeginGeneration() {
		return nil, ErrGenerationInProgress
	}
	defer sess.EndGeneration()

	style := in.Style
	if style == "" {
		style = prompt.DefaultStyle
	}

	// The analyzer is non-fatal: any failure degrades to the preset style.
	styleOverride := ""
	if in.ReferenceImage != "" && s.features.ReferenceImage {
		desc, err := s.client.DescribeStyle(ctx, in.ReferenceImage, in.Prompt)
		if err != nil {
			s.logger.Warn("Reference image analysis failed, using preset style",
				zap.String("session_id", sess.ID),
				zap.Error(err),
			)
		} else {
			styleOverride = desc.Description
		}
	}

	enhanced := prompt.Enhance(in.Prompt, style, in.ProductColor, styleOverride)

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.client.GenerateImage(genCtx, openai.GenerationRequest{
		Prompt:  enhanced,
		Quality: domain.QualityStandard,
		Size:    "1024x1024",
	})
	if err != nil {
		s.logAttempt(ctx, sess.ID, in, enhanced, "", domain.QualityStandard, false, err.Error())
		return nil, err
	}

	img := result.Images[0]
	design := domain.Design{
		ID:            domain.NewDesignID(s.now()),
		Name:          domain.DesignNameFromPrompt(in.Prompt),
		ImageURL:      img.Payload.DataURL(),
		Prompt:        enhanced,
		RevisedPrompt: img.RevisedPrompt,
		Quality:       domain.QualityStandard,
	}

	sess.AppendDesign(design)

	if err := s.gate.Record(ctx, sess.ID); err != nil {
		s.logger.Error("Failed to record generation count",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
	}

	s.logAttempt(ctx, sess.ID, in, enhanced, img.RevisedPrompt, domain.QualityStandard, true, "")

	s.scheduleHDRegeneration(sess, design.ID, enhanced)

	s.logger.Info("Design generated",
		zap.String("session_id", sess.ID),
		zap.String("design_id", design.ID),
		zap.String("model", result.Model),
	)

	return &design, nil
}

// scheduleHDRegeneration fires the best-effort high-quality regeneration of
// the same prompt. It never blocks the caller and its failure is swallowed.
func (s *designService) scheduleHDRegeneration(sess *session.Session, designID, enhancedPrompt string) {
	s.runAsync(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		result, err := s.client.GenerateImage(ctx, openai.GenerationRequest{
			Prompt:  enhancedPrompt,
			Quality: domain.QualityHD,
			Size:    "1024x1024",
		})
		if err != nil {
			s.logger.Warn("Background HD regeneration failed",
				zap.String("design_id", designID),
				zap.Error(err),
			)
			return
		}

		sess.SetHDImageURL(designID, result.Images[0].Payload.DataURL())
		s.logger.Debug("HD version generated", zap.String("design_id", designID))
	})
}

// History returns the session's ordered design history.
func (s *designService) History(sess *session.Session) []domain.Design {
	return sess.DesignHistory()
}

// CanGenerate reports whether the session is under its generation limit.
func (s *designService) CanGenerate(ctx context.Context, sessionID string) bool {
	return s.gate.CanGenerate(ctx, sessionID)
}

// GenerationsLeft returns how many generations the session has remaining.
func (s *designService) GenerationsLeft(ctx context.Context, sessionID string) int {
	count, err := s.gate.Count(ctx, sessionID)
	if err != nil {
		return s.gate.Limit()
	}
	left := s.gate.Limit() - count
	if left < 0 {
		return 0
	}
	return left
}

// logAttempt records the attempt for analytics. Failures are logged and
// dropped; analytics must never fail a generation.
func (s *designService) logAttempt(ctx context.Context, sessionID string, in GenerateInput, enhanced, revised, quality string, success bool, errMsg string) {
	if s.promptLog == nil {
		return
	}

	entry := &domain.PromptLog{
		ID:             uuid.New(),
		SessionID:      sessionID,
		OriginalPrompt: in.Prompt,
		EnhancedPrompt: enhanced,
		RevisedPrompt:  revised,
		Style:          in.Style,
		ProductColor:   in.ProductColor,
		Quality:        quality,
		Success:        success,
		ErrorMessage:   errMsg,
		CreatedAt:      s.now(),
	}

	if err := s.promptLog.Create(ctx, entry); err != nil {
		s.logger.Warn("Failed to log generation attempt",
			zap.String("session_id", sessionID),
			zap.Error(fmt.Errorf("prompt log: %w", err)),
		)
	}
}
