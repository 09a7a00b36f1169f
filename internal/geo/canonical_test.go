package geo

import "testing"

func TestCanonicalizeAliases(t *testing.T) {
	r := NewDefaultResolver()
	cases := []struct {
		in   string
		want string
	}{
		{"British Empire", "united kingdom"},
		{"Dutch East Indies", "netherlands"},
		{"USSR", "russia"},
		{"Ottoman Empire", "turkey"},
		{"France", "france"},
		{"Atlantis", "atlantis"},
	}
	for _, c := range cases {
		if got := r.Canonicalize(c.in); got != c.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCanonicalizeHeuristics(t *testing.T) {
	r := NewDefaultResolver()
	cases := []struct {
		in   string
		want string
	}{
		{"French West Africa", "france"},
		{"French Equatorial Africa", "france"},
		{"British Somaliland", "united kingdom"},
		{"Portuguese Guinea", "portugal"},
		{"German New Guinea", "germany"},
	}
	for _, c := range cases {
		if got := r.Canonicalize(c.in); got != c.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCanonicalizeAliasBeforeHeuristic(t *testing.T) {
	r, err := NewResolver(Tables{
		Aliases:    []AliasRule{{Name: "french congo", Canonical: "special"}},
		Heuristics: []HeuristicRule{{Contains: "french ", Canonical: "france"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Canonicalize("French Congo"); got != "special" {
		t.Errorf("alias should win over heuristic, got %q", got)
	}
}

func TestHeuristicOrderFirstMatchWins(t *testing.T) {
	r, err := NewResolver(Tables{
		Heuristics: []HeuristicRule{
			{Contains: "french ", Canonical: "first"},
			{Contains: "french guiana", Canonical: "second"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Canonicalize("French Guiana"); got != "first" {
		t.Errorf("expected first declared heuristic to win, got %q", got)
	}
}

func TestDeriveSubject(t *testing.T) {
	r := NewDefaultResolver()
	if got, ok := r.DeriveSubject("Spanish Sahara"); !ok || got != "spain" {
		t.Errorf("DeriveSubject(Spanish Sahara) = %q, %v", got, ok)
	}
	if _, ok := r.DeriveSubject("Angola"); ok {
		t.Error("expected no heuristic hit for Angola")
	}
}
