package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/okarev/chronomap-backend/internal/http/response"
	"github.com/okarev/chronomap-backend/internal/logger"
	"github.com/okarev/chronomap-backend/internal/services"
	"github.com/okarev/chronomap-backend/internal/types"
)

type LayerHandler struct {
	log    *logger.Logger
	layers services.LayerService
}

func NewLayerHandler(log *logger.Logger, layers services.LayerService) *LayerHandler {
	return &LayerHandler{
		log:    log.With("handler", "LayerHandler"),
		layers: layers,
	}
}

// GetHistoryLayer serves GET /api/history/:year?lod=&limit=.
// Year and limit must parse; lod falls back leniently to med.
func (h *LayerHandler) GetHistoryLayer(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_year", errors.New("year must be an integer"))
		return
	}
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	lod := types.ParseLOD(c.Query("lod"))

	result, err := h.layers.GetHistoryLayer(c.Request.Context(), year, lod, limit)
	if err != nil {
		h.log.Error("History layer query failed", "year", year, "lod", lod, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "storage_error", err)
		return
	}
	writeLayer(c, result)
}

// GetNaturalLayer serves GET /api/natural/:type?lod=&limit=.
// Unknown type aliases default to rivers.
func (h *LayerHandler) GetNaturalLayer(c *gin.Context) {
	featureType := types.ParseNaturalFeatureType(c.Param("type"))
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	lod := types.ParseLOD(c.Query("lod"))

	result, err := h.layers.GetNaturalLayer(c.Request.Context(), featureType, lod, limit)
	if err != nil {
		h.log.Error("Natural layer query failed", "type", featureType, "lod", lod, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "storage_error", err)
		return
	}
	writeLayer(c, result)
}

// SearchNatural serves GET /api/natural/search?q=&limit=.
func (h *LayerHandler) SearchNatural(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	rows, err := h.layers.SearchNatural(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		h.log.Error("Natural search failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "storage_error", err)
		return
	}
	response.RespondOK(c, gin.H{"results": rows})
}

func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_limit", errors.New("limit must be a non-negative integer"))
		return 0, false
	}
	return limit, true
}

func writeLayer(c *gin.Context, result *services.LayerResult) {
	c.Header("ETag", result.ETag)
	if match := c.GetHeader("If-None-Match"); match != "" && match == result.ETag {
		c.Status(http.StatusNotModified)
		return
	}
	c.JSON(http.StatusOK, result.Collection)
}
