package services

import (
	"context"
	"testing"

	"github.com/okarev/chronomap-backend/internal/cache"
	"github.com/okarev/chronomap-backend/internal/geojson"
	"github.com/okarev/chronomap-backend/internal/logger"
	"github.com/okarev/chronomap-backend/internal/types"
)

func seedHistory(t *testing.T, env *testEnv) {
	t.Helper()
	dir := t.TempDir()
	path := writeFixture(t, dir, "world_1900.geojson", world1900)
	if _, err := env.importer.ImportHistoricalYear(context.Background(), 1900, path); err != nil {
		t.Fatal(err)
	}
}

func featureByName(fc *geojson.FeatureCollection, key, name string) *geojson.Feature {
	for i := range fc.Features {
		if fc.Features[i].Properties[key] == name {
			return &fc.Features[i]
		}
	}
	return nil
}

func TestGetHistoryLayer(t *testing.T) {
	env := newTestEnv(t)
	seedHistory(t, env)

	result, err := env.layers.GetHistoryLayer(context.Background(), 1900, types.LODMed, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Collection.Features) != 3 {
		t.Fatalf("feature count = %d, want 3", len(result.Collection.Features))
	}
	if want := `W/"hist-1900-med-3"`; result.ETag != want {
		t.Errorf("etag = %q, want %q", result.ETag, want)
	}

	angola := featureByName(result.Collection, "NAME", "Angola")
	if angola == nil {
		t.Fatal("Angola feature missing")
	}
	if got := angola.Properties["SUBJECTO"]; got != "Portugal" {
		t.Errorf("SUBJECTO = %v, want Portugal", got)
	}
	if got := angola.Properties["canonicalKey"]; got != "portugal" {
		t.Errorf("canonicalKey = %v, want portugal", got)
	}
	color, _ := angola.Properties["color"].(string)
	if len(color) != 7 || color[0] != '#' {
		t.Errorf("color = %q, want #rrggbb", color)
	}
	if got := angola.Properties["borderPrecision"]; got != "2" {
		t.Errorf("borderPrecision = %v, want 2", got)
	}
	if len(angola.Geometry) == 0 {
		t.Error("geometry payload missing")
	}
}

func TestGetHistoryLayerEmptyYear(t *testing.T) {
	env := newTestEnv(t)
	seedHistory(t, env)

	result, err := env.layers.GetHistoryLayer(context.Background(), 1234, types.LODMed, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Collection.Features) != 0 {
		t.Errorf("expected an empty FeatureCollection, got %d features", len(result.Collection.Features))
	}
	if result.Collection.Type != "FeatureCollection" {
		t.Errorf("type = %q", result.Collection.Type)
	}
}

func TestGetHistoryLayerRespectsLimit(t *testing.T) {
	env := newTestEnv(t)
	seedHistory(t, env)

	result, err := env.layers.GetHistoryLayer(context.Background(), 1900, types.LODMed, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Collection.Features) != 1 {
		t.Errorf("feature count = %d, want 1", len(result.Collection.Features))
	}
}

func seedNatural(t *testing.T, env *testEnv) {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, "rivers/low/world.geojson", riversLow)
	writeFixture(t, dir, "rivers/med/world.geojson", riversMed)
	if _, err := env.importer.ImportNaturalDir(context.Background(), dir); err != nil {
		t.Fatal(err)
	}
}

func TestGetNaturalLayer(t *testing.T) {
	env := newTestEnv(t)
	seedNatural(t, env)

	result, err := env.layers.GetNaturalLayer(context.Background(), types.NaturalRiver, types.LODLow, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Collection.Features) != 2 {
		t.Fatalf("feature count = %d, want 2", len(result.Collection.Features))
	}
	danube := featureByName(result.Collection, "name", "Danube")
	if danube == nil {
		t.Fatal("Danube feature missing")
	}
	// Source props survive the round trip alongside the identity fields.
	if got, ok := danube.Properties["length_km"].(float64); !ok || got != 2850 {
		t.Errorf("length_km = %v", danube.Properties["length_km"])
	}
	if danube.Properties["slug"] == "" {
		t.Error("slug missing")
	}
}

func TestGetNaturalLayerLimitAndETag(t *testing.T) {
	env := newTestEnv(t)
	seedNatural(t, env)
	ctx := context.Background()

	limited, err := env.layers.GetNaturalLayer(ctx, types.NaturalRiver, types.LODLow, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited.Collection.Features) != 1 {
		t.Errorf("feature count = %d, want 1", len(limited.Collection.Features))
	}

	low, err := env.layers.GetNaturalLayer(ctx, types.NaturalRiver, types.LODLow, 0)
	if err != nil {
		t.Fatal(err)
	}
	med, err := env.layers.GetNaturalLayer(ctx, types.NaturalRiver, types.LODMed, 0)
	if err != nil {
		t.Fatal(err)
	}
	if low.ETag == med.ETag {
		t.Errorf("expected distinct etags per lod, both %q", low.ETag)
	}
}

func TestSearchNatural(t *testing.T) {
	env := newTestEnv(t)
	seedNatural(t, env)
	ctx := context.Background()

	rows, err := env.layers.SearchNatural(ctx, "DANUBE", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Name != "Danube" {
		t.Fatalf("unexpected search result %+v", rows)
	}

	rows, err = env.layers.SearchNatural(ctx, "anub", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("substring search returned %d rows, want 1", len(rows))
	}

	rows, err = env.layers.SearchNatural(ctx, "   ", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("blank query returned %d rows, want 0", len(rows))
	}
}

// fakeLayerCache records Get/Set traffic for the read-through path.
type fakeLayerCache struct {
	store map[string]*cache.CachedLayer
	gets  int
	sets  int
}

func (f *fakeLayerCache) Get(ctx context.Context, key string) (*cache.CachedLayer, error) {
	f.gets++
	return f.store[key], nil
}

func (f *fakeLayerCache) Set(ctx context.Context, key string, layer *cache.CachedLayer) error {
	f.sets++
	f.store[key] = layer
	return nil
}

func (f *fakeLayerCache) Close() error { return nil }

func TestGetHistoryLayerReadThroughCache(t *testing.T) {
	env := newTestEnv(t)
	seedHistory(t, env)

	fake := &fakeLayerCache{store: map[string]*cache.CachedLayer{}}
	layers := NewLayerService(logger.NewNop(), env.areas, env.features, fake)
	ctx := context.Background()

	first, err := layers.GetHistoryLayer(ctx, 1900, types.LODMed, 0)
	if err != nil {
		t.Fatal(err)
	}
	if fake.sets != 1 {
		t.Errorf("sets = %d, want 1", fake.sets)
	}

	second, err := layers.GetHistoryLayer(ctx, 1900, types.LODMed, 0)
	if err != nil {
		t.Fatal(err)
	}
	if fake.sets != 1 {
		t.Errorf("cache hit should not re-set, sets = %d", fake.sets)
	}
	if first.ETag != second.ETag {
		t.Errorf("etag changed across cache hit: %q vs %q", first.ETag, second.ETag)
	}
	if len(second.Collection.Features) != len(first.Collection.Features) {
		t.Error("cached collection differs")
	}
	if fake.gets != 2 {
		t.Errorf("gets = %d, want 2", fake.gets)
	}
}
