package types

import "strings"

// LOD is the closed set of geometry simplification tiers stored per owning
// entity. Exactly one geometry row exists per (owner, LOD).
type LOD string

const (
	LODLow  LOD = "low"
	LODMed  LOD = "med"
	LODHigh LOD = "high"
)

// ParseLOD is lenient: unrecognized values default to med instead of erroring.
func ParseLOD(raw string) LOD {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return LODLow
	case "med", "medium":
		return LODMed
	case "high":
		return LODHigh
	default:
		return LODMed
	}
}

// NaturalFeatureType classifies a named natural object.
type NaturalFeatureType string

const (
	NaturalRiver         NaturalFeatureType = "river"
	NaturalMountainRange NaturalFeatureType = "mountain_range"
	NaturalPeak          NaturalFeatureType = "peak"
)

// ParseNaturalFeatureType accepts the plural/underscore aliases the frontend
// sends; unrecognized values default to rivers.
func ParseNaturalFeatureType(raw string) NaturalFeatureType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "river", "rivers":
		return NaturalRiver
	case "mountain_range", "mountain_ranges", "range", "ranges", "mountains":
		return NaturalMountainRange
	case "peak", "peaks":
		return NaturalPeak
	default:
		return NaturalRiver
	}
}
