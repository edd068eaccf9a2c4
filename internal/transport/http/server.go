package http

import (
	"github.com/gin-gonic/gin"

	appsvc "userhub/internal/app"
	"userhub/internal/bootstrap"
	"userhub/internal/platform/rabbitmq"
	"userhub/internal/repository"
	"userhub/internal/transport/http/handler"
	"userhub/internal/transport/http/middleware"
	"userhub/internal/transport/http/response"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	response.IncludeStacks(app.Config.Dev())

	router := gin.New()
	router.Use(gin.Logger(), recovery(), middleware.CORS())

	healthHandler := handler.NewHealthHandler(app)
	router.StaticFile("/", "web/index.html")
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	auditPublisher := rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.AuditQueue)
	userService := appsvc.NewUserService(userRepo, auditPublisher)
	userHandler := handler.NewUserHandler(userService)

	api := router.Group("/api")
	api.Use(middleware.RateLimit(app.Redis, app.Config.RateLimit.RequestsPerMinute))

	users := api.Group("/users")
	// The stats route must be registered before the :id pattern.
	users.GET("/stats", userHandler.Stats)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.GetByID)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, 404, "Not Found - "+c.Request.URL.Path)
	})

	return router
}

// recovery converts any panic into the standard error envelope.
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		response.Fail(c, 500, "Internal Server Error")
		c.Abort()
	})
}
