package geo

// ResolveSubject applies the temporal override rules to a (raw name, year)
// pair. Rules are scanned in declaration order and the first rule whose
// pattern matches the raw name and whose inclusive year window contains the
// year wins; its subject is re-canonicalized and replaces current. Overlaps
// resolve strictly by list order, never by specificity.
func (r *Resolver) ResolveSubject(rawName string, year int, current string) string {
	for _, o := range r.overrides {
		if year < o.from || year > o.to {
			continue
		}
		if o.pattern.MatchString(rawName) {
			return r.Canonicalize(o.subject)
		}
	}
	return current
}

// ResolveFeature runs the full historical resolution chain for one source
// feature: claimed-by field if present, else heuristic derivation from the
// name, else the name itself; canonicalized; then the override engine gets
// the last word.
func (r *Resolver) ResolveFeature(name, claimedBy string, year int) string {
	working := claimedBy
	if working == "" {
		if derived, ok := r.DeriveSubject(name); ok {
			working = derived
		} else {
			working = name
		}
	}
	canonical := r.Canonicalize(working)
	return r.ResolveSubject(name, year, canonical)
}
