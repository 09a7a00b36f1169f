package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okarev/chronomap-backend/internal/app"
	"github.com/okarev/chronomap-backend/internal/services"
)

func main() {
	var dataDir string
	var year int
	var historicalOnly bool
	var naturalOnly bool
	flag.StringVar(&dataDir, "data", "", "geodata directory (default GEODATA_DIR)")
	flag.IntVar(&year, "year", 0, "import a single historical year instead of the whole directory")
	flag.BoolVar(&historicalOnly, "historical", false, "import only historical boundaries")
	flag.BoolVar(&naturalOnly, "natural", false, "import only natural features")
	flag.Parse()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	if dataDir == "" {
		dataDir = application.Cfg.GeoDataDir
	}
	if historicalOnly && naturalOnly {
		fmt.Println("-historical and -natural are mutually exclusive")
		os.Exit(1)
	}

	ctx := context.Background()
	importer := application.Services.Importer
	failed := false

	if !naturalOnly {
		if year != 0 {
			path := filepath.Join(dataDir, fmt.Sprintf("world_%d.geojson", year))
			report, err := importer.ImportHistoricalYear(ctx, year, path)
			if err != nil {
				fmt.Printf("historical import failed for %d: %v\n", year, err)
				failed = true
			} else {
				printHistorical(report)
			}
		} else {
			reports, err := importer.ImportHistoricalDir(ctx, dataDir)
			for _, r := range reports {
				printHistorical(r)
			}
			if err != nil {
				fmt.Printf("historical import failed: %v\n", err)
				failed = true
			}
		}
	}

	if !historicalOnly && year == 0 {
		reports, err := importer.ImportNaturalDir(ctx, dataDir)
		for _, r := range reports {
			printNatural(r)
		}
		if err != nil {
			fmt.Printf("natural import failed: %v\n", err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
	fmt.Println("done")
}

func printHistorical(r *services.HistoricalImportReport) {
	if r == nil {
		return
	}
	fmt.Printf("historical year=%d imported=%d skipped=%d\n", r.Year, r.Imported, r.Skipped)
}

func printNatural(r *services.NaturalImportReport) {
	if r == nil {
		return
	}
	fmt.Printf("natural type=%s lod=%s created=%d refreshed=%d skipped=%d\n", r.Type, r.LOD, r.Created, r.Refreshed, r.Skipped)
}
