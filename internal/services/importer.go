package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/okarev/chronomap-backend/internal/geo"
	"github.com/okarev/chronomap-backend/internal/geojson"
	"github.com/okarev/chronomap-backend/internal/logger"
	"github.com/okarev/chronomap-backend/internal/repos"
	"github.com/okarev/chronomap-backend/internal/types"
)

// HistoricalImportReport counts one year's import run. Skipped features were
// malformed (missing name or geometry); they never abort the batch.
type HistoricalImportReport struct {
	Year     int `json:"year"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// NaturalImportReport counts one (type, lod) file's import run.
type NaturalImportReport struct {
	Type      types.NaturalFeatureType `json:"type"`
	LOD       types.LOD                `json:"lod"`
	Created   int                      `json:"created"`
	Refreshed int                      `json:"refreshed"`
	Skipped   int                      `json:"skipped"`
}

type ImporterService interface {
	ImportHistoricalYear(ctx context.Context, year int, path string) (*HistoricalImportReport, error)
	ImportHistoricalDir(ctx context.Context, dir string) ([]*HistoricalImportReport, error)
	ImportNaturalFile(ctx context.Context, featureType types.NaturalFeatureType, lod types.LOD, path string) (*NaturalImportReport, error)
	ImportNaturalDir(ctx context.Context, dir string) ([]*NaturalImportReport, error)
}

type importerService struct {
	log          *logger.Logger
	resolver     *geo.Resolver
	polities     repos.PolityRepo
	areas        repos.HistoricalAreaRepo
	areaGeoms    repos.HistoricalAreaGeometryRepo
	features     repos.NaturalFeatureRepo
	naturalGeoms repos.NaturalGeometryRepo
}

func NewImporterService(
	log *logger.Logger,
	resolver *geo.Resolver,
	polities repos.PolityRepo,
	areas repos.HistoricalAreaRepo,
	areaGeoms repos.HistoricalAreaGeometryRepo,
	features repos.NaturalFeatureRepo,
	naturalGeoms repos.NaturalGeometryRepo,
) ImporterService {
	return &importerService{
		log:          log.With("service", "ImporterService"),
		resolver:     resolver,
		polities:     polities,
		areas:        areas,
		areaGeoms:    areaGeoms,
		features:     features,
		naturalGeoms: naturalGeoms,
	}
}

var historicalFilePattern = regexp.MustCompile(`^world_(\d{1,4})\.geojson$`)

func (s *importerService) ImportHistoricalDir(ctx context.Context, dir string) ([]*HistoricalImportReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read historical dir: %w", err)
	}
	years := make([]int, 0, len(entries))
	paths := make(map[int]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := historicalFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		years = append(years, year)
		paths[year] = filepath.Join(dir, entry.Name())
	}
	sort.Ints(years)

	reports := make([]*HistoricalImportReport, 0, len(years))
	for _, year := range years {
		report, err := s.ImportHistoricalYear(ctx, year, paths[year])
		if err != nil {
			// Years already committed stay committed; the batch stops here.
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *importerService) ImportHistoricalYear(ctx context.Context, year int, path string) (*HistoricalImportReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	report := &HistoricalImportReport{Year: year}
	log := s.log.With("year", year)

	err = geojson.EachFeature(file, func(f geojson.Feature) error {
		name := f.StringProp("NAME", "name", "Name")
		if name == "" {
			report.Skipped++
			log.Warn("Skipping feature without a name")
			return nil
		}
		g, decodeErr := f.DecodeGeometry()
		if decodeErr != nil || !g.Valid() {
			report.Skipped++
			log.Warn("Skipping feature with malformed geometry", "name", name, "error", decodeErr)
			return nil
		}

		subjecto := f.StringProp("SUBJECTO", "subjecto")
		canonicalKey := s.resolver.ResolveFeature(name, subjecto, year)

		polity, err := s.polities.Upsert(ctx, nil, canonicalKey,
			geo.DisplayNameFromKey(canonicalKey), geo.ColorFromKey(canonicalKey))
		if err != nil {
			return err
		}

		props, err := json.Marshal(f.Properties)
		if err != nil {
			return fmt.Errorf("marshal props for %q: %w", name, err)
		}
		area, err := s.areas.Upsert(ctx, nil, &types.HistoricalArea{
			Year:            year,
			Name:            name,
			CanonicalName:   geo.NormalizeName(name),
			BorderPrecision: borderPrecision(f.Properties),
			Props:           datatypes.JSON(props),
			PolityID:        polity.ID,
		})
		if err != nil {
			return err
		}

		// The historical source ships a single resolution.
		if err := s.areaGeoms.Upsert(ctx, nil, area.ID, types.LODMed, datatypes.JSON(f.Geometry), name); err != nil {
			return err
		}
		report.Imported++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import year %d: %w", year, err)
	}

	log.Info("Imported historical year", "imported", report.Imported, "skipped", report.Skipped)
	return report, nil
}

// borderPrecision reads the source confidence marker, which some files carry
// as a string and others as a number.
func borderPrecision(props map[string]interface{}) *string {
	for _, key := range []string{"BORDERPRECISION", "borderPrecision", "border_precision"} {
		switch v := props[key].(type) {
		case string:
			if v != "" {
				return &v
			}
		case float64:
			s := strconv.FormatFloat(v, 'f', -1, 64)
			return &s
		}
	}
	return nil
}

var naturalDirs = []struct {
	dir         string
	featureType types.NaturalFeatureType
}{
	{"rivers", types.NaturalRiver},
	{"mountain_ranges", types.NaturalMountainRange},
	{"peaks", types.NaturalPeak},
}

var naturalLODs = []types.LOD{types.LODLow, types.LODMed, types.LODHigh}

func (s *importerService) ImportNaturalDir(ctx context.Context, dir string) ([]*NaturalImportReport, error) {
	var mu sync.Mutex
	reports := make([]*NaturalImportReport, 0, len(naturalDirs)*len(naturalLODs))

	// Type trees touch disjoint feature rows, so they import concurrently;
	// LODs within a tree share rows and stay sequential.
	grp, grpCtx := errgroup.WithContext(ctx)
	for _, nd := range naturalDirs {
		grp.Go(func() error {
			for _, lod := range naturalLODs {
				path := filepath.Join(dir, nd.dir, string(lod), "world.geojson")
				if _, err := os.Stat(path); os.IsNotExist(err) {
					continue
				}
				report, err := s.ImportNaturalFile(grpCtx, nd.featureType, lod, path)
				if err != nil {
					return err
				}
				mu.Lock()
				reports = append(reports, report)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return reports, err
	}
	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Type != reports[j].Type {
			return reports[i].Type < reports[j].Type
		}
		return reports[i].LOD < reports[j].LOD
	})
	return reports, nil
}

func (s *importerService) ImportNaturalFile(ctx context.Context, featureType types.NaturalFeatureType, lod types.LOD, path string) (*NaturalImportReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	report := &NaturalImportReport{Type: featureType, LOD: lod}
	log := s.log.With("type", featureType, "lod", lod)

	err = geojson.EachFeature(file, func(f geojson.Feature) error {
		g, decodeErr := f.DecodeGeometry()
		if decodeErr != nil || !g.Valid() {
			report.Skipped++
			log.Warn("Skipping feature with malformed geometry", "error", decodeErr)
			return nil
		}
		lat, lng, ok := g.Centroid()
		if !ok {
			report.Skipped++
			log.Warn("Skipping feature without coordinates")
			return nil
		}

		name := f.StringProp("name_en", "name", "NAME")
		slug := geo.NaturalSlug(string(featureType), name, lat, lng)

		props, err := json.Marshal(f.Properties)
		if err != nil {
			return fmt.Errorf("marshal props for %q: %w", slug, err)
		}
		feature, created, err := s.features.Upsert(ctx, nil, slug, featureType, name, datatypes.JSON(props))
		if err != nil {
			return err
		}
		if err := s.naturalGeoms.Upsert(ctx, nil, feature.ID, lod, datatypes.JSON(f.Geometry)); err != nil {
			return err
		}
		if created {
			report.Created++
		} else {
			report.Refreshed++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import natural %s/%s: %w", featureType, lod, err)
	}

	log.Info("Imported natural features",
		"created", report.Created, "refreshed", report.Refreshed, "skipped", report.Skipped)
	return report, nil
}
