// Package textnorm normalizes scraped labels (team names, league names) so
// that spelling variants of the same entity map to one canonical key while
// the display form keeps its accents.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var titleCaser = cases.Title(language.Und)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Clean trims the label and collapses internal whitespace runs to one space.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripDiacritics removes combining marks: "São Paulo" -> "Sao Paulo".
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}

// Key derives the canonical matching key for a label. Keys are stable across
// runs given the same input, which keeps previously stored records reachable.
func Key(s string) string {
	return strings.ToLower(StripDiacritics(Clean(s)))
}

// SplitLeagueCountry splits the source's "COUNTRY: League Name" label.
// The country prefix arrives in shouting caps and is folded to title case;
// when no prefix is present the whole label is the league name.
func SplitLeagueCountry(full string) (country, league string) {
	full = Clean(full)
	if full == "" {
		return "", ""
	}
	idx := strings.Index(full, ":")
	if idx < 0 {
		return "", full
	}
	country = Clean(full[:idx])
	if country == strings.ToUpper(country) {
		country = titleCaser.String(strings.ToLower(country))
	}
	return country, Clean(full[idx+1:])
}
