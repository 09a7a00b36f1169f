package geo

import "testing"

func TestNaturalSlug(t *testing.T) {
	got := NaturalSlug("river", "Danube", 44.871, 20.392)
	want := "river:danube:44.87_20.39"
	if got != want {
		t.Errorf("NaturalSlug = %q, want %q", got, want)
	}
}

func TestNaturalSlugUnnamed(t *testing.T) {
	got := NaturalSlug("peak", "", 27.99, 86.93)
	want := "peak:unnamed:27.99_86.93"
	if got != want {
		t.Errorf("NaturalSlug = %q, want %q", got, want)
	}
}

func TestNaturalSlugStability(t *testing.T) {
	// LOD variants drift by well under a hundredth of a degree and must
	// collapse onto the same slug.
	a := NaturalSlug("river", "Nile", 19.2301, 30.5499)
	b := NaturalSlug("river", "Nile", 19.2302, 30.5501)
	if a != b {
		t.Errorf("expected drifted centroids to share a slug: %q vs %q", a, b)
	}
	// A materially different centroid separates.
	c := NaturalSlug("river", "Nile", 19.4, 30.55)
	if a == c {
		t.Errorf("expected a distinct slug for a distant centroid: %q", c)
	}
}

func TestNaturalSlugNegativeZero(t *testing.T) {
	a := NaturalSlug("peak", "Equator Point", 0.001, -0.002)
	b := NaturalSlug("peak", "Equator Point", -0.001, 0.002)
	if a != b {
		t.Errorf("expected rounding to collapse signed zero: %q vs %q", a, b)
	}
}
