package geo

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayNameFromKey turns a canonical key back into a human label
// ("united kingdom" -> "United Kingdom"). Only used to seed a polity's
// display name on first creation; stored names are never overwritten.
func DisplayNameFromKey(key string) string {
	return cases.Title(language.English).String(key)
}
