package server

import (
	"fmt"
	"net/http"
	"time"

	"vibewear/internal/config"
	"vibewear/internal/database"
	"vibewear/internal/httpclient"
	custommiddleware "vibewear/internal/middleware"
	"vibewear/internal/openai"
	"vibewear/internal/quota"
	"vibewear/internal/repository"
	"vibewear/internal/service"
	"vibewear/internal/session"
	"vibewear/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config   *config.Config
	logger   *zap.Logger
	db       *database.Service
	redis    *redis.Client
	sessions *session.Store
}

// NewServer wires the storefront API. redisClient may be nil, in which case
// the generation quota is tracked in memory and rate limiting is disabled.
func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil))
	// Session before logging so request logs carry the session id.
	router.Use(custommiddleware.SessionMiddleware())
	router.Use(custommiddleware.LoggingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Generation quota store: Redis when available so counters survive
	// restarts, in-memory otherwise.
	var quotaStore quota.Store
	if redisClient != nil {
		quotaStore = quota.NewRedisStore(redisClient, "design_counter", 24*time.Hour)
	} else {
		quotaStore = quota.NewMemoryStore()
	}
	gate := quota.NewGate(quotaStore, cfg.Generation.Limit)

	// Session store for design history and carts
	sessions := session.NewStore(session.Options{})

	// Upstream image client. The per-request deadline is enforced via
	// context; the transport timeout is a hard backstop.
	imageClient := openai.New(openai.Options{
		APIKey:        cfg.OpenAI.APIKey,
		BaseURL:       cfg.OpenAI.BaseURL,
		PrimaryModel:  cfg.OpenAI.PrimaryModel,
		FallbackModel: cfg.OpenAI.FallbackModel,
		VisionModel:   cfg.OpenAI.VisionModel,
		HTTPClient:    httpclient.New(httpclient.Options{Timeout: 2 * cfg.OpenAI.Timeout}),
		Logger:        logger,
	})

	// Initialize repositories. The storefront runs without a database when
	// none is configured; only the waitlist and prompt log need one.
	var waitlistRepo repository.WaitlistRepository
	var promptLogRepo repository.PromptLogRepository
	if db != nil {
		waitlistRepo = repository.NewWaitlistRepository(db.DB())
		promptLogRepo = repository.NewPromptLogRepository(db.DB())
	}

	// Initialize services
	designService := service.NewDesignService(imageClient, gate, promptLogRepo, cfg.Features, cfg.OpenAI.Timeout, logger)
	cartService := service.NewCartService(cfg.Pricing, cfg.Features)
	checkoutService := service.NewCheckoutService(cfg.Pricing, cfg.Features, 2*time.Second)

	// Initialize handlers
	imageHandler := transport.NewImageHandler(imageClient, cfg.OpenAI.Timeout, cfg.Generation.MaxResponseBytes, logger)
	designHandler := transport.NewDesignHandler(designService, sessions, logger)
	cartHandler := transport.NewCartHandler(cartService, checkoutService, sessions, logger)
	checkoutHandler := transport.NewCheckoutHandler(checkoutService, sessions, logger)
	mockupHandler := transport.NewMockupHandler(sessions, logger)

	// Register routes. Generation endpoints carry the request size ceiling
	// and, when Redis is up, a per-session rate limit.
	router.Group(func(r chi.Router) {
		r.Use(custommiddleware.RequestSizeLimitMiddleware(cfg.Generation.MaxRequestBytes))
		if redisClient != nil {
			r.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
				RequestsPerWindow: 30,
				Window:            time.Minute,
				KeyPrefix:         "rate_limit:generation",
			}, logger))
		}
		imageHandler.RegisterRoutes(r)
		designHandler.RegisterRoutes(r)
		mockupHandler.RegisterRoutes(r)
	})

	cartHandler.RegisterRoutes(router)
	checkoutHandler.RegisterRoutes(router)

	if waitlistRepo != nil {
		waitlistService := service.NewWaitlistService(waitlistRepo)
		waitlistHandler := transport.NewWaitlistHandler(waitlistService, logger)
		waitlistHandler.RegisterRoutes(router)
	}

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:   cfg,
		logger:   logger,
		db:       db,
		redis:    redisClient,
		sessions: sessions,
	}

	return server
}

// StartSessionSweeper expires idle sessions on a fixed interval until done is
// closed. Intended to run in its own goroutine.
func (s *Server) StartSessionSweeper(done <-chan struct{}) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			removed := s.sessions.Sweep()
			if removed > 0 {
				s.logger.Debug("Expired idle sessions", zap.Int("removed", removed))
			}
		}
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
