package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/events"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Server wires config, storage, services and handlers into one HTTP
// server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	db         *database.Service
	redis      *redis.Client
}

// New builds the full dependency graph and the router. The publisher may
// be nil when order events are disabled.
func New(
	cfg *config.Config,
	logger *zap.Logger,
	db *database.Service,
	caps database.Capabilities,
	publisher events.Publisher,
) *Server {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	productRepo := repository.NewProductRepository(db.DB(), caps)
	categoryRepo := repository.NewCategoryRepository(db.DB())
	ratingRepo := repository.NewRatingRepository(db.DB())
	reviewRepo := repository.NewReviewRepository(db.DB())
	orderRepo := repository.NewOrderRepository(db.DB())

	catalogService := service.NewCatalogService(productRepo, categoryRepo, ratingRepo, caps)
	ratingService := service.NewRatingService(ratingRepo, productRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, publisher, logger)

	s := &Server{logger: logger, db: db, redis: redisClient}

	router := chi.NewRouter()
	for _, mw := range middleware.BaseStack() {
		router.Use(mw)
	}
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogging(logger))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))

	router.Get("/health", s.healthHandler)

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(redisClient, middleware.RateLimitConfig{
			RequestsPerWindow: 100,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit:api",
		}, logger))

		transport.NewProductHandler(catalogService, logger).RegisterRoutes(r)
		transport.NewCategoryHandler(catalogService, logger).RegisterRoutes(r)
		transport.NewRatingHandler(ratingService, logger).RegisterRoutes(r)
		transport.NewReviewHandler(reviewService, logger).RegisterRoutes(r)
		transport.NewOrderHandler(orderService, logger).RegisterRoutes(r)
	})

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	return s
}

// Start begins serving; it blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("Server starting", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests, then closes Redis.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := s.redis.Close(); err != nil {
		s.logger.Warn("Failed to close Redis client", zap.Error(err))
	}
	return nil
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := s.db.Health(r.Context())
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	middleware.RespondWithJSON(w, status, stats)
}
