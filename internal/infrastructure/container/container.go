package container

import (
	"fmt"

	"github.com/goldwen/matching-backend/internal/config"
	deliveryhttp "github.com/goldwen/matching-backend/internal/delivery/http"
	"github.com/goldwen/matching-backend/internal/delivery/http/handler"
	"github.com/goldwen/matching-backend/internal/delivery/http/middleware"
	"github.com/goldwen/matching-backend/internal/infrastructure/database"
	"github.com/goldwen/matching-backend/internal/infrastructure/gemini"
	"github.com/goldwen/matching-backend/internal/infrastructure/server"
	"github.com/goldwen/matching-backend/internal/repository/postgres"
	redisrepo "github.com/goldwen/matching-backend/internal/repository/redis"
	"github.com/goldwen/matching-backend/internal/usecase/choice"
	"github.com/goldwen/matching-backend/internal/usecase/compat"
	"github.com/goldwen/matching-backend/internal/usecase/personality"
	"github.com/goldwen/matching-backend/internal/usecase/selection"
	"github.com/goldwen/matching-backend/internal/usecase/user"
	"github.com/goldwen/matching-backend/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log, err := logger.New(cfg.Logging.Level, cfg.Server.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis (compatibility cache)
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize Gemini client; match insights are optional
	var geminiClient *gemini.GeminiClient
	if cfg.GeminiAPIKey != "" {
		geminiClient, err = gemini.NewGeminiClient(cfg.GeminiAPIKey)
		if err != nil {
			log.Warn("failed to initialize gemini client, continuing without match insights", zap.Error(err))
			geminiClient = nil
		}
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	personalityRepo := postgres.NewPersonalityRepository(db)
	selectionRepo := postgres.NewSelectionRepository(db)
	choiceRepo := postgres.NewChoiceRepository(db)
	cacheRepo := redisrepo.NewCompatCacheRepository(redisClient, cfg.Matching.CacheTTL)

	// Initialize use cases
	compatUseCase := compat.NewCompatUseCase(
		userRepo,
		personalityRepo,
		cacheRepo,
		cfg.Matching,
		log,
	)

	selectionUseCase := selection.NewSelectionUseCase(
		userRepo,
		selectionRepo,
		choiceRepo,
		compatUseCase,
		cfg.Matching,
		log,
	)

	var insight choice.InsightGenerator
	if geminiClient != nil {
		insight = geminiClient
	}
	choiceUseCase := choice.NewChoiceUseCase(
		userRepo,
		choiceRepo,
		insight,
		cfg.Matching,
		log,
	)

	personalityUseCase := personality.NewPersonalityUseCase(
		userRepo,
		personalityRepo,
		cfg.Matching,
	)

	userUseCase := user.NewUserUseCase(userRepo)

	// Initialize handlers
	matchingHandler := handler.NewMatchingHandler(selectionUseCase, compatUseCase, choiceUseCase)
	userHandler := handler.NewUserHandler(userUseCase, personalityUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.ServiceSecret)

	// Initialize router
	router := deliveryhttp.NewRouter(
		matchingHandler,
		userHandler,
		authMiddleware,
		log,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	return &Container{
		Config: cfg,
		Logger: log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Gemini: geminiClient,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	_ = c.Logger.Sync()
	return nil
}
