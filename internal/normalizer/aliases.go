package normalizer

// DefaultLeagueAliases folds the league label variants the source is known to
// emit into one canonical display name each. Matching is by canonical key, so
// case and accent variants of the same label merge without an entry here.
func DefaultLeagueAliases() map[string]string {
	return map[string]string{
		"epl":                    "Premier League",
		"english premier league": "Premier League",
		"laliga":                 "LaLiga",
		"la liga":                "LaLiga",
		"laliga santander":       "LaLiga",
		"serie a tim":            "Serie A",
		"ligue 1 uber eats":      "Ligue 1",
		"uefa champions league":  "Champions League",
		"uefa europa league":     "Europa League",
	}
}
