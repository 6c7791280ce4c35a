package flashfeed

import (
	"strings"

	"github.com/scorepipe/scorepipe/internal/normalizer"
)

// Feed wire format: segments separated by "~", key/value entries inside a
// segment separated by "¬", key and value separated by "÷". A header segment
// (ZA key) opens a competition block; the segments after it belong to that
// competition until the next header.
const (
	segmentSep = "~"
	entrySep   = "¬"
	kvSep      = "÷"
)

// Match feed keys.
const (
	keyLeagueHeader = "ZA" // "COUNTRY: League Name"
	keyCountry      = "ZY"
	keyLeagueID     = "ZL"
	keyMatchID      = "AA"
	keyKickoff      = "AD" // unix seconds
	keyStatus       = "AB" // 1 scheduled, 2 live, 3 finished
	keyHomeTeam     = "AE"
	keyAwayTeam     = "AF"
	keyHomeScore    = "AG"
	keyAwayScore    = "AH"
	keyHomeLogo     = "OA" // path relative to the static image host
	keyAwayLogo     = "OB"
)

// Standings feed keys.
const (
	keyTeamName = "TN"
	keyRank     = "TR"
	keyPlayed   = "TP"
	keyWins     = "TW"
	keyDraws    = "TD"
	keyLosses   = "TL"
	keyGoals    = "TG" // "31:13" = for:against
	keyPoints   = "TX"
	keyForm     = "TF"
	keySeason   = "TS"
)

// Bracket feed keys.
const (
	keyCompHeader = "ZC"
	keyRound      = "RN"
)

func parseSegment(segment string) map[string]string {
	fields := make(map[string]string)
	for _, entry := range strings.Split(segment, entrySep) {
		key, value, ok := strings.Cut(entry, kvSep)
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return fields
}

// ParseMatches converts a match feed payload into raw records, one per match
// segment, carrying the enclosing competition header.
func ParseMatches(payload []byte) []normalizer.RawRecord {
	records := make([]normalizer.RawRecord, 0, 64)

	var league, country string
	for _, segment := range strings.Split(string(payload), segmentSep) {
		fields := parseSegment(segment)
		if len(fields) == 0 {
			continue
		}

		if header, ok := fields[keyLeagueHeader]; ok {
			league = header
			country = fields[keyCountry]
			continue
		}

		id, ok := fields[keyMatchID]
		if !ok {
			continue
		}

		raw := map[string]any{
			"id":      id,
			"league":  league,
			"country": country,
			"home":    fields[keyHomeTeam],
			"away":    fields[keyAwayTeam],
			"status":  fields[keyStatus],
		}
		if ts := fields[keyKickoff]; ts != "" {
			raw["start_timestamp"] = ts
		}
		if score := fields[keyHomeScore]; score != "" {
			raw["home_score"] = score
		}
		if score := fields[keyAwayScore]; score != "" {
			raw["away_score"] = score
		}
		if logo := fields[keyHomeLogo]; logo != "" {
			raw["home_logo"] = logo
		}
		if logo := fields[keyAwayLogo]; logo != "" {
			raw["away_logo"] = logo
		}

		records = append(records, normalizer.RawRecord{
			Category: normalizer.CategoryMatch,
			Fields:   raw,
		})
	}

	return records
}

// ParseStandings converts a standings feed payload. The goals column ships as
// one "for:against" value and is split here; everything else passes through
// for the normalizer to validate.
func ParseStandings(payload []byte) []normalizer.RawRecord {
	records := make([]normalizer.RawRecord, 0, 32)

	var league, country, season string
	for _, segment := range strings.Split(string(payload), segmentSep) {
		fields := parseSegment(segment)
		if len(fields) == 0 {
			continue
		}

		if header, ok := fields[keyLeagueHeader]; ok {
			league = header
			country = fields[keyCountry]
			season = fields[keySeason]
			continue
		}

		team, ok := fields[keyTeamName]
		if !ok {
			continue
		}

		raw := map[string]any{
			"league":   league,
			"country":  country,
			"season":   season,
			"team":     team,
			"position": fields[keyRank],
			"played":   fields[keyPlayed],
			"wins":     fields[keyWins],
			"draws":    fields[keyDraws],
			"losses":   fields[keyLosses],
			"points":   fields[keyPoints],
			"form":     fields[keyForm],
		}
		goalsFor, goalsAgainst, ok := splitGoals(fields[keyGoals])
		if ok {
			raw["goals_for"] = goalsFor
			raw["goals_against"] = goalsAgainst
		}

		records = append(records, normalizer.RawRecord{
			Category: normalizer.CategoryStanding,
			Fields:   raw,
		})
	}

	return records
}

// ParseBrackets converts a cup draw feed payload. Competition headers use
// their own key; ties reuse the match keys plus a round label.
func ParseBrackets(payload []byte) []normalizer.RawRecord {
	records := make([]normalizer.RawRecord, 0, 16)

	var competition string
	for _, segment := range strings.Split(string(payload), segmentSep) {
		fields := parseSegment(segment)
		if len(fields) == 0 {
			continue
		}

		if header, ok := fields[keyCompHeader]; ok {
			competition = header
			continue
		}

		id, ok := fields[keyMatchID]
		if !ok {
			continue
		}

		raw := map[string]any{
			"competition": competition,
			"round":       fields[keyRound],
			"match_ref":   id,
			"home":        fields[keyHomeTeam],
			"away":        fields[keyAwayTeam],
			"status":      fields[keyStatus],
		}
		if ts := fields[keyKickoff]; ts != "" {
			raw["start_timestamp"] = ts
		}
		if score := fields[keyHomeScore]; score != "" {
			raw["home_score"] = score
		}
		if score := fields[keyAwayScore]; score != "" {
			raw["away_score"] = score
		}

		records = append(records, normalizer.RawRecord{
			Category: normalizer.CategoryBracket,
			Fields:   raw,
		})
	}

	return records
}

func splitGoals(value string) (goalsFor, goalsAgainst string, ok bool) {
	goalsFor, goalsAgainst, ok = strings.Cut(value, ":")
	if !ok || goalsFor == "" || goalsAgainst == "" {
		return "", "", false
	}
	return strings.TrimSpace(goalsFor), strings.TrimSpace(goalsAgainst), true
}
