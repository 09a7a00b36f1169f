package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/okarev/chronomap-backend/internal/http/handlers"
)

type RouterConfig struct {
	HealthHandler *handlers.HealthHandler
	LayerHandler  *handlers.LayerHandler
	AllowOrigins  []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "If-None-Match", "X-Requested-With"},
		ExposeHeaders:    []string{"ETag"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/history/:year", cfg.LayerHandler.GetHistoryLayer)
		api.GET("/natural/search", cfg.LayerHandler.SearchNatural)
		api.GET("/natural/:type", cfg.LayerHandler.GetNaturalLayer)
	}

	return router
}
