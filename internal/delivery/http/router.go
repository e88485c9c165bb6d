package http

import (
	"github.com/gin-gonic/gin"
	"github.com/goldwen/matching-backend/internal/delivery/http/handler"
	"github.com/goldwen/matching-backend/internal/delivery/http/middleware"
	"go.uber.org/zap"
)

type Router struct {
	matchingHandler *handler.MatchingHandler
	userHandler     *handler.UserHandler
	authMiddleware  *middleware.AuthMiddleware
	logger          *zap.Logger
}

func NewRouter(
	matchingHandler *handler.MatchingHandler,
	userHandler *handler.UserHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *zap.Logger,
) *Router {
	return &Router{
		matchingHandler: matchingHandler,
		userHandler:     userHandler,
		authMiddleware:  authMiddleware,
		logger:          logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(r.logger))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1, all routes behind the service token
	v1 := router.Group("/api/v1")
	v1.Use(r.authMiddleware.RequireServiceToken())
	{
		matching := v1.Group("/matching")
		{
			matching.GET("/daily-selection/:user_id", r.matchingHandler.GetDailySelection)
			matching.POST("/generate-selection/:user_id", r.matchingHandler.GenerateSelection)
			matching.POST("/compatibility-score", r.matchingHandler.CalculateCompatibility)
			matching.POST("/user-choice/:user_id", r.matchingHandler.RecordChoice)
			matching.GET("/user-choices/:user_id", r.matchingHandler.ListChoices)
			matching.POST("/candidates", r.matchingHandler.GetMatchingCandidates)
		}

		users := v1.Group("/users")
		{
			users.GET("/:user_id", r.userHandler.GetUser)
			users.PUT("/:user_id/premium", r.userHandler.UpdatePremium)
			users.POST("/:user_id/personality", r.userHandler.SubmitQuestionnaire)
			users.GET("/:user_id/personality", r.userHandler.GetQuestionnaire)
		}
	}

	return router
}
