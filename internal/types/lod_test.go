package types

import "testing"

func TestParseLOD(t *testing.T) {
	cases := map[string]LOD{
		"low":     LODLow,
		"MED":     LODMed,
		"medium":  LODMed,
		"high":    LODHigh,
		"":        LODMed,
		"extreme": LODMed,
	}
	for in, want := range cases {
		if got := ParseLOD(in); got != want {
			t.Errorf("ParseLOD(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseNaturalFeatureType(t *testing.T) {
	cases := map[string]NaturalFeatureType{
		"rivers":          NaturalRiver,
		"river":           NaturalRiver,
		"ranges":          NaturalMountainRange,
		"mountain_ranges": NaturalMountainRange,
		"peaks":           NaturalPeak,
		"":                NaturalRiver,
		"volcanoes":       NaturalRiver,
	}
	for in, want := range cases {
		if got := ParseNaturalFeatureType(in); got != want {
			t.Errorf("ParseNaturalFeatureType(%q) = %q, want %q", in, got, want)
		}
	}
}
