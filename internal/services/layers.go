package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okarev/chronomap-backend/internal/cache"
	"github.com/okarev/chronomap-backend/internal/geo"
	"github.com/okarev/chronomap-backend/internal/geojson"
	"github.com/okarev/chronomap-backend/internal/logger"
	"github.com/okarev/chronomap-backend/internal/repos"
	"github.com/okarev/chronomap-backend/internal/types"
)

const (
	// Hard caps bound serialization cost against unbounded scans.
	MaxHistoryLimit    = 100000
	MaxNaturalLimit    = 5000
	DefaultSearchLimit = 20
)

// LayerResult pairs a FeatureCollection with its weak ETag. The tag encodes
// (layer, lod, feature count), not content, so it can false-negative on
// changes that keep the count. Cheap beats exact here.
type LayerResult struct {
	ETag       string
	Collection *geojson.FeatureCollection
}

type LayerService interface {
	GetHistoryLayer(ctx context.Context, year int, lod types.LOD, limit int) (*LayerResult, error)
	GetNaturalLayer(ctx context.Context, featureType types.NaturalFeatureType, lod types.LOD, limit int) (*LayerResult, error)
	SearchNatural(ctx context.Context, query string, limit int) ([]*types.NaturalFeature, error)
}

type layerService struct {
	log      *logger.Logger
	areas    repos.HistoricalAreaRepo
	features repos.NaturalFeatureRepo
	cache    cache.LayerCache
}

// NewLayerService builds the read side. layerCache may be nil; the service
// then always goes to the store.
func NewLayerService(
	log *logger.Logger,
	areas repos.HistoricalAreaRepo,
	features repos.NaturalFeatureRepo,
	layerCache cache.LayerCache,
) LayerService {
	return &layerService{
		log:      log.With("service", "LayerService"),
		areas:    areas,
		features: features,
		cache:    layerCache,
	}
}

func (s *layerService) GetHistoryLayer(ctx context.Context, year int, lod types.LOD, limit int) (*LayerResult, error) {
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	cacheKey := fmt.Sprintf("hist:%d:%s:%d", year, lod, limit)
	if hit := s.cacheGet(ctx, cacheKey); hit != nil {
		return hit, nil
	}

	rows, err := s.areas.ListYearWithGeometry(ctx, nil, year, lod, limit)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, row := range rows {
		color := row.ColorHex
		if color == "" {
			color = geo.ColorFromKey(row.CanonicalKey)
		}
		props := map[string]interface{}{
			"NAME":         row.Name,
			"canonicalKey": row.CanonicalKey,
			"SUBJECTO":     row.DisplayName,
			"color":        color,
		}
		if row.BorderPrecision != nil {
			props["borderPrecision"] = *row.BorderPrecision
		}
		fc.Features = append(fc.Features, geojson.Feature{
			Type:       "Feature",
			Properties: props,
			Geometry:   json.RawMessage(row.Geometry),
		})
	}

	result := &LayerResult{
		ETag:       fmt.Sprintf(`W/"hist-%d-%s-%d"`, year, lod, len(fc.Features)),
		Collection: fc,
	}
	s.cacheSet(ctx, cacheKey, result)
	return result, nil
}

func (s *layerService) GetNaturalLayer(ctx context.Context, featureType types.NaturalFeatureType, lod types.LOD, limit int) (*LayerResult, error) {
	if limit <= 0 || limit > MaxNaturalLimit {
		limit = MaxNaturalLimit
	}
	cacheKey := fmt.Sprintf("nat:%s:%s:%d", featureType, lod, limit)
	if hit := s.cacheGet(ctx, cacheKey); hit != nil {
		return hit, nil
	}

	rows, err := s.features.ListByTypeWithGeometry(ctx, nil, featureType, lod, limit)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, row := range rows {
		props := map[string]interface{}{}
		if len(row.Props) > 0 {
			if err := json.Unmarshal(row.Props, &props); err != nil {
				props = map[string]interface{}{}
			}
		}
		props["name"] = row.Name
		props["slug"] = row.Slug
		props["featureType"] = row.Type
		fc.Features = append(fc.Features, geojson.Feature{
			Type:       "Feature",
			Properties: props,
			Geometry:   json.RawMessage(row.Geometry),
		})
	}

	result := &LayerResult{
		ETag:       fmt.Sprintf(`W/"nat-%s-%s-%d"`, featureType, lod, len(fc.Features)),
		Collection: fc,
	}
	s.cacheSet(ctx, cacheKey, result)
	return result, nil
}

func (s *layerService) SearchNatural(ctx context.Context, query string, limit int) ([]*types.NaturalFeature, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []*types.NaturalFeature{}, nil
	}
	return s.features.SearchByName(ctx, nil, query, limit)
}

func (s *layerService) cacheGet(ctx context.Context, key string) *LayerResult {
	if s.cache == nil {
		return nil
	}
	hit, err := s.cache.Get(ctx, key)
	if err != nil {
		// Cache trouble degrades to the store.
		s.log.Warn("Layer cache get failed", "key", key, "error", err)
		return nil
	}
	if hit == nil || hit.Body == nil {
		return nil
	}
	return &LayerResult{ETag: hit.ETag, Collection: hit.Body}
}

func (s *layerService) cacheSet(ctx context.Context, key string, result *LayerResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, &cache.CachedLayer{ETag: result.ETag, Body: result.Collection}); err != nil {
		s.log.Warn("Layer cache set failed", "key", key, "error", err)
	}
}
