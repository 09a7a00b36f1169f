package geo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tables is the loadable rule data the resolver runs on. Order matters for
// heuristics and overrides: first match wins, by declaration order, not by
// specificity. Keep that in mind when adding rules.
type Tables struct {
	Aliases    []AliasRule     `yaml:"aliases"`
	Heuristics []HeuristicRule `yaml:"heuristics"`
	Overrides  []OverrideRule  `yaml:"overrides"`
}

// AliasRule maps a normalized historical or alternate name to a canonical key.
type AliasRule struct {
	Name      string `yaml:"name"`
	Canonical string `yaml:"canonical"`
}

// HeuristicRule recovers adjective-form colonial/administrative names that no
// alias covers: any normalized label containing the substring maps to the key.
type HeuristicRule struct {
	Contains  string `yaml:"contains"`
	Canonical string `yaml:"canonical"`
}

// OverrideRule supersedes generic canonicalization for a name pattern inside
// an inclusive year window. Colonial-era polygons carry the colonized
// territory's modern name, so sovereignty has to be resolved by (name, year).
type OverrideRule struct {
	Pattern string `yaml:"pattern"`
	From    int    `yaml:"from"`
	To      int    `yaml:"to"`
	Subject string `yaml:"subject"`
}

// LoadTables reads a YAML rule file. Missing sections fall back to the
// built-in defaults so a partial file can override just one table.
func LoadTables(path string) (Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read tables file: %w", err)
	}
	var t Tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tables{}, fmt.Errorf("parse tables file: %w", err)
	}
	defaults := DefaultTables()
	if len(t.Aliases) == 0 {
		t.Aliases = defaults.Aliases
	}
	if len(t.Heuristics) == 0 {
		t.Heuristics = defaults.Heuristics
	}
	if len(t.Overrides) == 0 {
		t.Overrides = defaults.Overrides
	}
	return t, nil
}

// DefaultTables returns the built-in rule set. Canonical keys are the
// normalized modern-state names the dashboard colors by.
func DefaultTables() Tables {
	return Tables{
		Aliases: []AliasRule{
			{Name: "british empire", Canonical: "united kingdom"},
			{Name: "great britain", Canonical: "united kingdom"},
			{Name: "england", Canonical: "united kingdom"},
			{Name: "united kingdom of great britain and ireland", Canonical: "united kingdom"},
			{Name: "dutch east indies", Canonical: "netherlands"},
			{Name: "dutch republic", Canonical: "netherlands"},
			{Name: "holland", Canonical: "netherlands"},
			{Name: "united provinces", Canonical: "netherlands"},
			{Name: "french empire", Canonical: "france"},
			{Name: "french republic", Canonical: "france"},
			{Name: "spanish empire", Canonical: "spain"},
			{Name: "new spain", Canonical: "spain"},
			{Name: "portuguese empire", Canonical: "portugal"},
			{Name: "russian empire", Canonical: "russia"},
			{Name: "soviet union", Canonical: "russia"},
			{Name: "ussr", Canonical: "russia"},
			{Name: "union of soviet socialist republics", Canonical: "russia"},
			{Name: "usa", Canonical: "united states"},
			{Name: "united states of america", Canonical: "united states"},
			{Name: "ottoman empire", Canonical: "turkey"},
			{Name: "persia", Canonical: "iran"},
			{Name: "siam", Canonical: "thailand"},
			{Name: "prussia", Canonical: "germany"},
			{Name: "german empire", Canonical: "germany"},
			{Name: "west germany", Canonical: "germany"},
			{Name: "east germany", Canonical: "germany"},
			{Name: "austria hungary", Canonical: "austria"},
			{Name: "austrian empire", Canonical: "austria"},
			{Name: "kingdom of italy", Canonical: "italy"},
			{Name: "qing dynasty", Canonical: "china"},
			{Name: "qing empire", Canonical: "china"},
			{Name: "ming dynasty", Canonical: "china"},
			{Name: "empire of japan", Canonical: "japan"},
			{Name: "belgian congo", Canonical: "belgium"},
			{Name: "danish west indies", Canonical: "denmark"},
			{Name: "burma", Canonical: "myanmar"},
			{Name: "ceylon", Canonical: "sri lanka"},
			{Name: "zaire", Canonical: "democratic republic of the congo"},
			{Name: "abyssinia", Canonical: "ethiopia"},
			{Name: "gran colombia", Canonical: "colombia"},
			{Name: "united arab republic", Canonical: "egypt"},
			{Name: "czechoslovakia", Canonical: "czechia"},
			{Name: "bohemia", Canonical: "czechia"},
			{Name: "yugoslavia", Canonical: "serbia"},
		},
		Heuristics: []HeuristicRule{
			{Contains: "french ", Canonical: "france"},
			{Contains: "british ", Canonical: "united kingdom"},
			{Contains: "spanish ", Canonical: "spain"},
			{Contains: "portuguese ", Canonical: "portugal"},
			{Contains: "dutch ", Canonical: "netherlands"},
			{Contains: "russian ", Canonical: "russia"},
			{Contains: "german ", Canonical: "germany"},
			{Contains: "italian ", Canonical: "italy"},
			{Contains: "belgian ", Canonical: "belgium"},
			{Contains: "danish ", Canonical: "denmark"},
			{Contains: "swedish ", Canonical: "sweden"},
			{Contains: "norwegian ", Canonical: "norway"},
			{Contains: "ottoman ", Canonical: "turkey"},
			{Contains: "austrian ", Canonical: "austria"},
			{Contains: "japanese ", Canonical: "japan"},
			{Contains: "american ", Canonical: "united states"},
		},
		Overrides: []OverrideRule{
			// More specific windows must precede broader ones: the engine
			// stops at the first matching rule.
			{Pattern: "india", From: 1757, To: 1947, Subject: "united kingdom"},
			{Pattern: "alaska", From: 0, To: 1867, Subject: "russia"},
			{Pattern: "alaska", From: 1868, To: 9999, Subject: "united states"},
			{Pattern: "philippines", From: 1565, To: 1898, Subject: "spain"},
			{Pattern: "philippines", From: 1899, To: 1946, Subject: "united states"},
			{Pattern: "angola", From: 1600, To: 1975, Subject: "portugal"},
			{Pattern: "mozambique", From: 1505, To: 1975, Subject: "portugal"},
			{Pattern: "brazil", From: 1500, To: 1822, Subject: "portugal"},
			{Pattern: "indonesia", From: 1603, To: 1949, Subject: "netherlands"},
			{Pattern: "algeria", From: 1830, To: 1962, Subject: "france"},
			{Pattern: "vietnam|indochina", From: 1887, To: 1954, Subject: "france"},
			{Pattern: "congo", From: 1885, To: 1960, Subject: "belgium"},
			{Pattern: "australia", From: 1788, To: 1900, Subject: "united kingdom"},
			{Pattern: "canada", From: 1534, To: 1762, Subject: "france"},
			{Pattern: "canada", From: 1763, To: 1866, Subject: "united kingdom"},
			{Pattern: "cuba", From: 1511, To: 1898, Subject: "spain"},
			{Pattern: "mexico", From: 1521, To: 1820, Subject: "spain"},
			{Pattern: "peru", From: 1532, To: 1823, Subject: "spain"},
			{Pattern: "egypt", From: 1882, To: 1921, Subject: "united kingdom"},
			{Pattern: "south africa", From: 1806, To: 1909, Subject: "united kingdom"},
			{Pattern: "ireland", From: 1801, To: 1921, Subject: "united kingdom"},
			{Pattern: "finland", From: 1809, To: 1916, Subject: "russia"},
			{Pattern: "poland", From: 1795, To: 1917, Subject: "russia"},
			{Pattern: "greenland", From: 1721, To: 9999, Subject: "denmark"},
			{Pattern: "iceland", From: 1380, To: 1943, Subject: "denmark"},
			{Pattern: "norway", From: 1537, To: 1813, Subject: "denmark"},
			{Pattern: "norway", From: 1814, To: 1904, Subject: "sweden"},
			{Pattern: "korea", From: 1910, To: 1945, Subject: "japan"},
			{Pattern: "taiwan", From: 1895, To: 1945, Subject: "japan"},
			{Pattern: "libya", From: 1911, To: 1943, Subject: "italy"},
			{Pattern: "ethiopia", From: 1936, To: 1941, Subject: "italy"},
			{Pattern: "namibia", From: 1884, To: 1915, Subject: "germany"},
		},
	}
}
