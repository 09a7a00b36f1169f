package app

import (
	"github.com/okarev/chronomap-backend/internal/http/handlers"
	"github.com/okarev/chronomap-backend/internal/logger"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Layers *handlers.LayerHandler
}

func wireHandlers(log *logger.Logger, svcs Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: handlers.NewHealthHandler(),
		Layers: handlers.NewLayerHandler(log, svcs.Layers),
	}
}
