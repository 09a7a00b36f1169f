package geo

import (
	"fmt"
	"math"
)

// NaturalSlug builds the deterministic identity for a natural feature:
// type + normalized name (or "unnamed") + centroid rounded to 0.01 degrees.
// The rounding absorbs simplification drift between LOD variants of the same
// physical feature while keeping genuinely distinct unnamed features apart.
func NaturalSlug(featureType, name string, lat, lng float64) string {
	normalized := NormalizeName(name)
	if normalized == "" {
		normalized = "unnamed"
	}
	return fmt.Sprintf("%s:%s:%.2f_%.2f", featureType, normalized, round2(lat), round2(lng))
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}
