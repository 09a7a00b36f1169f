package app

import (
	"github.com/gin-gonic/gin"

	"github.com/okarev/chronomap-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		HealthHandler: h.Health,
		LayerHandler:  h.Layers,
		AllowOrigins:  cfg.AllowOrigins,
	})
}
