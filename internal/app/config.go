package app

import (
	"strings"
	"time"

	"github.com/okarev/chronomap-backend/internal/logger"
	"github.com/okarev/chronomap-backend/internal/utils"
)

type Config struct {
	HTTPPort      string
	GeoDataDir    string
	GeoTablesPath string
	RedisAddr     string
	LayerCacheTTL time.Duration
	AllowOrigins  []string
}

func LoadConfig(log *logger.Logger) Config {
	httpPort := utils.GetEnv("HTTP_PORT", "8080", log)
	geoDataDir := utils.GetEnv("GEODATA_DIR", "./data", log)
	geoTablesPath := utils.GetEnv("GEO_TABLES_PATH", "", log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	cacheTTLSeconds := utils.GetEnvAsInt("LAYER_CACHE_TTL", 300, log)
	origins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", log), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		HTTPPort:      httpPort,
		GeoDataDir:    geoDataDir,
		GeoTablesPath: geoTablesPath,
		RedisAddr:     redisAddr,
		LayerCacheTTL: time.Duration(cacheTTLSeconds) * time.Second,
		AllowOrigins:  origins,
	}
}
