package app

import (
	"github.com/okarev/chronomap-backend/internal/cache"
	"github.com/okarev/chronomap-backend/internal/geo"
	"github.com/okarev/chronomap-backend/internal/logger"
	"github.com/okarev/chronomap-backend/internal/services"
)

type Services struct {
	Importer services.ImporterService
	Layers   services.LayerService
}

func wireServices(log *logger.Logger, cfg Config, repos Repos) (Services, cache.LayerCache) {
	log.Info("Wiring services...")

	resolver := geo.NewDefaultResolver()
	if cfg.GeoTablesPath != "" {
		tables, err := geo.LoadTables(cfg.GeoTablesPath)
		if err != nil {
			log.Warn("Failed to load geo tables, falling back to built-ins", "path", cfg.GeoTablesPath, "error", err)
		} else {
			loaded, err := geo.NewResolver(tables)
			if err != nil {
				log.Warn("Invalid geo tables, falling back to built-ins", "path", cfg.GeoTablesPath, "error", err)
			} else {
				resolver = loaded
			}
		}
	}

	var layerCache cache.LayerCache
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisLayerCache(log, cfg.RedisAddr, cfg.LayerCacheTTL)
		if err != nil {
			log.Warn("Redis unavailable, serving layers uncached", "addr", cfg.RedisAddr, "error", err)
		} else {
			layerCache = rc
		}
	}

	importer := services.NewImporterService(
		log,
		resolver,
		repos.Polity,
		repos.HistoricalArea,
		repos.HistoricalAreaGeometry,
		repos.NaturalFeature,
		repos.NaturalGeometry,
	)
	layers := services.NewLayerService(
		log,
		repos.HistoricalArea,
		repos.NaturalFeature,
		layerCache,
	)

	return Services{Importer: importer, Layers: layers}, layerCache
}
