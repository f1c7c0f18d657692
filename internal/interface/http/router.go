package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seristack/cocoon-recommender/internal/domain/auth"
	"github.com/seristack/cocoon-recommender/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.CORSOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
		authGroup.GET("/me", authMiddleware(authSvc), handler.Me)
	}

	farmerGroup := api.Group("/farmer", authMiddleware(authSvc), requireRole(auth.RoleFarmer))
	{
		farmerGroup.POST("/profile", handler.UpsertProfile)
		farmerGroup.GET("/profile", handler.GetProfile)
	}

	recGroup := api.Group("/recommendations", authMiddleware(authSvc), requireRole(auth.RoleFarmer))
	{
		recGroup.POST("/predict", handler.Predict)
		recGroup.GET("/window", handler.Window)
		recGroup.GET("/history", handler.History)
	}

	adminGroup := api.Group("/admin", authMiddleware(authSvc), requireRole(auth.RoleAdmin))
	{
		adminGroup.POST("/market-weather", handler.UploadMarketWeather)
		adminGroup.GET("/market-weather", handler.ListMarketWeather)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
