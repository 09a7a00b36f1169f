package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/okarev/chronomap-backend/internal/geojson"
	"github.com/okarev/chronomap-backend/internal/logger"
	"github.com/okarev/chronomap-backend/internal/services"
	"github.com/okarev/chronomap-backend/internal/types"
)

type stubLayers struct {
	result *services.LayerResult
}

func (s *stubLayers) GetHistoryLayer(ctx context.Context, year int, lod types.LOD, limit int) (*services.LayerResult, error) {
	return s.result, nil
}

func (s *stubLayers) GetNaturalLayer(ctx context.Context, featureType types.NaturalFeatureType, lod types.LOD, limit int) (*services.LayerResult, error) {
	return s.result, nil
}

func (s *stubLayers) SearchNatural(ctx context.Context, query string, limit int) ([]*types.NaturalFeature, error) {
	return []*types.NaturalFeature{}, nil
}

func newTestRouter(result *services.LayerResult) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewLayerHandler(logger.NewNop(), &stubLayers{result: result})
	router := gin.New()
	router.GET("/api/history/:year", handler.GetHistoryLayer)
	router.GET("/api/natural/search", handler.SearchNatural)
	router.GET("/api/natural/:type", handler.GetNaturalLayer)
	return router
}

func emptyResult() *services.LayerResult {
	return &services.LayerResult{
		ETag:       `W/"hist-1900-med-0"`,
		Collection: geojson.NewFeatureCollection(),
	}
}

func TestGetHistoryLayerRejectsBadYear(t *testing.T) {
	router := newTestRouter(emptyResult())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/history/not-a-year", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetHistoryLayerRejectsBadLimit(t *testing.T) {
	router := newTestRouter(emptyResult())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/history/1900?limit=lots", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetHistoryLayerSetsETag(t *testing.T) {
	router := newTestRouter(emptyResult())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/history/1900", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("ETag"); got != `W/"hist-1900-med-0"` {
		t.Errorf("etag header = %q", got)
	}
}

func TestGetHistoryLayerNotModified(t *testing.T) {
	router := newTestRouter(emptyResult())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/history/1900", nil)
	req.Header.Set("If-None-Match", `W/"hist-1900-med-0"`)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("304 should carry no body, got %q", w.Body.String())
	}
}

func TestGetNaturalLayerLenientType(t *testing.T) {
	router := newTestRouter(emptyResult())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/natural/volcanoes", nil)
	router.ServeHTTP(w, req)
	// Unknown types default to rivers instead of erroring.
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestSearchNatural(t *testing.T) {
	router := newTestRouter(emptyResult())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/natural/search?q=danube", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
