package services

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/okarev/chronomap-backend/internal/geo"
	"github.com/okarev/chronomap-backend/internal/logger"
	"github.com/okarev/chronomap-backend/internal/repos"
	"github.com/okarev/chronomap-backend/internal/types"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared in-memory DB so every pooled connection sees the same
	// tables for the duration of one test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&types.Polity{},
		&types.HistoricalArea{},
		&types.HistoricalAreaGeometry{},
		&types.NaturalFeature{},
		&types.NaturalGeometry{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testEnv struct {
	db       *gorm.DB
	polities repos.PolityRepo
	areas    repos.HistoricalAreaRepo
	importer ImporterService
	layers   LayerService
	features repos.NaturalFeatureRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testDB(t)
	log := logger.NewNop()
	polities := repos.NewPolityRepo(db, log)
	areas := repos.NewHistoricalAreaRepo(db, log)
	areaGeoms := repos.NewHistoricalAreaGeometryRepo(db, log)
	features := repos.NewNaturalFeatureRepo(db, log)
	naturalGeoms := repos.NewNaturalGeometryRepo(db, log)
	importer := NewImporterService(log, geo.NewDefaultResolver(), polities, areas, areaGeoms, features, naturalGeoms)
	layers := NewLayerService(log, areas, features, nil)
	return &testEnv{
		db:       db,
		polities: polities,
		areas:    areas,
		importer: importer,
		layers:   layers,
		features: features,
	}
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const world1900 = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature",
		 "properties": {"NAME": "Angola", "BORDERPRECISION": 2},
		 "geometry": {"type": "Polygon", "coordinates": [[[12.0, -5.0], [14.0, -5.0], [13.0, -7.0], [12.0, -5.0]]]}},
		{"type": "Feature",
		 "properties": {"NAME": "India", "SUBJECTO": "British Empire"},
		 "geometry": {"type": "Polygon", "coordinates": [[[70.0, 20.0], [80.0, 20.0], [75.0, 10.0], [70.0, 20.0]]]}},
		{"type": "Feature",
		 "properties": {"NAME": "Alaska"},
		 "geometry": {"type": "Polygon", "coordinates": [[[-160.0, 60.0], [-150.0, 60.0], [-155.0, 65.0], [-160.0, 60.0]]]}},
		{"type": "Feature",
		 "properties": {"NAME": "Ghostland"},
		 "geometry": null}
	]
}`

const world1860 = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature",
		 "properties": {"NAME": "Alaska"},
		 "geometry": {"type": "Polygon", "coordinates": [[[-160.0, 60.0], [-150.0, 60.0], [-155.0, 65.0], [-160.0, 60.0]]]}}
	]
}`

const riversLow = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature",
		 "properties": {"name_en": "Danube", "length_km": 2850},
		 "geometry": {"type": "LineString", "coordinates": [[20.0, 44.0], [21.0, 45.0]]}},
		{"type": "Feature",
		 "properties": {},
		 "geometry": {"type": "LineString", "coordinates": [[30.0, 10.0], [31.0, 11.0]]}}
	]
}`

// Same physical rivers at a finer resolution: centroids drift by far less
// than a hundredth of a degree.
const riversMed = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature",
		 "properties": {"name_en": "Danube", "length_km": 2850},
		 "geometry": {"type": "LineString", "coordinates": [[20.001, 44.001], [20.5, 44.5], [20.999, 44.999]]}},
		{"type": "Feature",
		 "properties": {},
		 "geometry": {"type": "LineString", "coordinates": [[30.001, 10.001], [30.5, 10.5], [30.999, 10.999]]}}
	]
}`
