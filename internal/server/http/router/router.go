package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/mirae-store/mirae-admin/internal/server/http/handlers"
	"github.com/mirae-store/mirae-admin/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.AdminFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	dashboardHandler := handlers.NewDashboardHandler(facade)

	api := engine.Group("/api")
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	admin := api.Group("")
	admin.Use(middleware.AuthRequired(facade))
	admin.GET("/auth/profile", authHandler.Profile)
	admin.GET("/dashboard", dashboardHandler.Summary)
	admin.GET("/orders", orderHandler.List)
	admin.GET("/orders/:id", orderHandler.Get)
	admin.GET("/orders/:id/transitions", orderHandler.Transitions)
	admin.PUT("/orders/:id/status", orderHandler.ChangeStatus)
	admin.PUT("/orders/:id/pay", orderHandler.MarkPaid)

	return engine
}
