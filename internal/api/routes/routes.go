package routes

import (
	_ "gig-coordinator/docs" // Generated by swag init
	"gig-coordinator/internal/api/handlers"
	"gig-coordinator/internal/api/middleware"
	"gig-coordinator/internal/app"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {
	apiV1 := router.Group("/api/v1")
	log := app.Logger

	jobHandler := handlers.NewJobHandler(app.Jobs, app.Validator, log)
	jobAppHandler := handlers.NewJobApplicationHandler(app.Applications, app.Validator, log)
	hireHandler := handlers.NewHireHandler(app.Hires, app.Validator, log)
	convHandler := handlers.NewConversationHandler(app.Chat, app.Validator, log)
	notificationHandler := handlers.NewNotificationHandler(app.Chat, app.Hires, app.Config.Notifications.BannerDuration, app.WatchOwnership, log)

	authMiddleware := middleware.JWTAuthMiddleware(app.Config.Auth.JWTSecret, log)
	sendLimit := middleware.RateLimit(app.Limiter, "messages")

	RegisterJobRoutes(apiV1, jobHandler, authMiddleware)
	RegisterJobApplicationRoutes(apiV1, jobAppHandler, authMiddleware)
	RegisterHireRoutes(apiV1, hireHandler, authMiddleware)
	RegisterConversationRoutes(apiV1, convHandler, authMiddleware, sendLimit)
	RegisterNotificationRoutes(apiV1, notificationHandler, authMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.Readiness(app.Checks()))
}
