package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/pkg/logger"
)

type RouterConfig struct {
	ServiceName  string
	EnforceHTTPS bool
	Metrics      middleware.RequestMetrics
	Logger       *logger.Logger
}

func SetupRouter(container *Container, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(middleware.NewHTTPSEnforcer(cfg.EnforceHTTPS, cfg.Logger).Middleware())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.CurrentMiddleware())
	router.Use(middleware.LoggingMiddleware(cfg.Logger))

	if cfg.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(cfg.Metrics))
	}

	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())

	setupPublicRoutes(router, container)
	setupProtectedRoutes(router, container, cfg.Logger)

	return router
}

func setupPublicRoutes(router *gin.Engine, container *Container) {
	router.GET("/health", container.HealthHandler.Health)

	public := router.Group("/auth")
	{
		public.POST("/register", container.AuthHandler.Register)
		public.POST("/login", container.AuthHandler.Login)
	}
}

func setupProtectedRoutes(router *gin.Engine, container *Container, log *logger.Logger) {
	protected := router.Group("/tasks")
	protected.Use(middleware.Authenticate(container.Tokens, container.IdentityService, log))
	{
		protected.GET("", container.TaskHandler.List)
		protected.POST("", container.TaskHandler.Create)
		protected.GET("/:id", container.TaskHandler.Get)
		protected.PATCH("/:id", container.TaskHandler.Update)
		protected.DELETE("/:id", container.TaskHandler.Delete)
	}
}
