package geo

import (
	"fmt"
	"regexp"
	"strings"
)

// Resolver maps raw historical labels to canonical polity keys. It is a pure
// function of its tables: the same input always yields the same key.
type Resolver struct {
	aliases    map[string]string
	heuristics []HeuristicRule
	overrides  []compiledOverride
}

type compiledOverride struct {
	pattern *regexp.Regexp
	from    int
	to      int
	subject string
}

func NewResolver(t Tables) (*Resolver, error) {
	aliases := make(map[string]string, len(t.Aliases))
	for _, a := range t.Aliases {
		aliases[NormalizeName(a.Name)] = a.Canonical
	}
	overrides := make([]compiledOverride, 0, len(t.Overrides))
	for _, o := range t.Overrides {
		re, err := regexp.Compile("(?i)" + o.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile override pattern %q: %w", o.Pattern, err)
		}
		overrides = append(overrides, compiledOverride{
			pattern: re,
			from:    o.From,
			to:      o.To,
			subject: o.Subject,
		})
	}
	return &Resolver{
		aliases:    aliases,
		heuristics: t.Heuristics,
		overrides:  overrides,
	}, nil
}

func NewDefaultResolver() *Resolver {
	r, err := NewResolver(DefaultTables())
	if err != nil {
		// The built-in tables are compile-time constants; a bad pattern there
		// is a programming error.
		panic(err)
	}
	return r
}

// Canonicalize resolves a raw label to its canonical polity key: exact alias
// hit first, then the ordered heuristic substrings against the normalized
// label, else the normalized label stands as its own key.
func (r *Resolver) Canonicalize(raw string) string {
	normalized := NormalizeName(raw)
	if canonical, ok := r.aliases[normalized]; ok {
		return canonical
	}
	if canonical, ok := r.heuristicMatch(normalized); ok {
		return canonical
	}
	return normalized
}

// DeriveSubject attempts heuristic-only derivation of a controlling power
// from a raw area name. Used by the import pipeline when the source feature
// carries no explicit claimed-by field.
func (r *Resolver) DeriveSubject(rawName string) (string, bool) {
	return r.heuristicMatch(NormalizeName(rawName))
}

func (r *Resolver) heuristicMatch(normalized string) (string, bool) {
	for _, h := range r.heuristics {
		if strings.Contains(normalized, h.Contains) {
			return h.Canonical, true
		}
	}
	return "", false
}
