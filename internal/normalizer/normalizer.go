// Package normalizer converts loosely-typed raw records coming off the
// collector into canonical, strongly-typed domain records. It is pure: same
// input and alias table, same output, across calls and process restarts.
package normalizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/scorepipe/scorepipe/internal/domain/bracket"
	"github.com/scorepipe/scorepipe/internal/domain/match"
	"github.com/scorepipe/scorepipe/internal/domain/standing"
	"github.com/scorepipe/scorepipe/internal/platform/textnorm"
)

type Category string

const (
	CategoryMatch    Category = "match"
	CategoryStanding Category = "standing"
	CategoryBracket  Category = "bracket"
)

// RawRecord is the collector-to-normalizer boundary: a category tag plus the
// source's key/value pairs as scraped.
type RawRecord struct {
	Category Category
	Fields   map[string]any
}

// Rejection explains why a raw record could not be normalized. Rejected
// records are skipped and counted, never propagated.
type Rejection struct {
	Category Category
	Field    string
	Reason   string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("reject %s record: field %q: %s", r.Category, r.Field, r.Reason)
}

func reject(category Category, field, reason string) *Rejection {
	return &Rejection{Category: category, Field: field, Reason: reason}
}

type Config struct {
	// LeagueAliases maps raw league labels (matched by canonical key) to the
	// canonical display name. Unmapped labels pass through cleaned.
	LeagueAliases map[string]string
	// LogoBaseURL expands relative logo references.
	LogoBaseURL string
	Now         func() time.Time
}

type Normalizer struct {
	aliasByKey  map[string]string
	logoBaseURL string
	now         func() time.Time
}

func New(cfg Config) *Normalizer {
	aliases := cfg.LeagueAliases
	if aliases == nil {
		aliases = DefaultLeagueAliases()
	}
	aliasByKey := make(map[string]string, len(aliases))
	for raw, canonical := range aliases {
		aliasByKey[textnorm.Key(raw)] = textnorm.Clean(canonical)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Normalizer{
		aliasByKey:  aliasByKey,
		logoBaseURL: strings.TrimRight(cfg.LogoBaseURL, "/"),
		now:         now,
	}
}

// LeagueName resolves a raw league label to its canonical display name.
// Aliased variants merge under one name; unknown labels keep their cleaned
// raw form so novel leagues are stored rather than dropped.
func (n *Normalizer) LeagueName(raw string) string {
	cleaned := textnorm.Clean(raw)
	if canonical, ok := n.aliasByKey[textnorm.Key(cleaned)]; ok {
		return canonical
	}
	return cleaned
}

// Normalize dispatches on the record's category tag.
func (n *Normalizer) Normalize(raw RawRecord) (any, error) {
	switch raw.Category {
	case CategoryMatch:
		return n.NormalizeMatch(raw.Fields)
	case CategoryStanding:
		return n.NormalizeStanding(raw.Fields)
	case CategoryBracket:
		return n.NormalizeBracket(raw.Fields)
	default:
		return nil, reject(raw.Category, "category", "unknown category")
	}
}

func (n *Normalizer) NormalizeMatch(fields map[string]any) (match.Match, error) {
	externalID := cleanString(fields["id"])
	if externalID == "" {
		return match.Match{}, reject(CategoryMatch, "id", "missing external identifier")
	}

	home := textnorm.Clean(stringField(fields, "home"))
	away := textnorm.Clean(stringField(fields, "away"))
	if home == "" || away == "" {
		return match.Match{}, reject(CategoryMatch, "home/away", "missing team name")
	}

	status, err := normalizeStatus(fields)
	if err != nil {
		return match.Match{}, err
	}

	kickoff, err := parseKickoff(fields)
	if err != nil {
		return match.Match{}, err
	}

	league, country := n.resolveLeague(fields)

	m := match.Match{
		ExternalID:  externalID,
		League:      league,
		LeagueKey:   textnorm.Key(league),
		Country:     country,
		HomeTeam:    home,
		AwayTeam:    away,
		HomeScore:   scoreField(fields, "home_score"),
		AwayScore:   scoreField(fields, "away_score"),
		Status:      status,
		KickoffAt:   kickoff,
		HomeLogo:    n.logoURL(stringField(fields, "home_logo")),
		AwayLogo:    n.logoURL(stringField(fields, "away_logo")),
		CollectedAt: n.now().UTC(),
	}

	// A finished match without both scores cannot feed the club aggregation.
	if m.Status == match.StatusFinished && (m.HomeScore == nil || m.AwayScore == nil) {
		return match.Match{}, reject(CategoryMatch, "home_score/away_score", "finished match without scores")
	}

	return m, nil
}

func (n *Normalizer) NormalizeStanding(fields map[string]any) (standing.Row, error) {
	league, country := n.resolveLeague(fields)
	if league == "" {
		return standing.Row{}, reject(CategoryStanding, "league", "missing league name")
	}

	team := textnorm.Clean(stringField(fields, "team"))
	if team == "" {
		return standing.Row{}, reject(CategoryStanding, "team", "missing team name")
	}

	position, ok := intField(fields, "position")
	if !ok || position <= 0 {
		return standing.Row{}, reject(CategoryStanding, "position", "position must be a positive integer")
	}

	counts := map[string]int{}
	for _, name := range []string{"played", "wins", "draws", "losses", "goals_for", "goals_against", "points"} {
		value, ok := intField(fields, name)
		if !ok || value < 0 {
			return standing.Row{}, reject(CategoryStanding, name, "must be a non-negative integer")
		}
		counts[name] = value
	}

	row := standing.Row{
		League:       league,
		LeagueKey:    textnorm.Key(league),
		Country:      country,
		Season:       textnorm.Clean(stringField(fields, "season")),
		Team:         team,
		TeamKey:      textnorm.Key(team),
		Position:     position,
		Played:       counts["played"],
		Wins:         counts["wins"],
		Draws:        counts["draws"],
		Losses:       counts["losses"],
		GoalsFor:     counts["goals_for"],
		GoalsAgainst: counts["goals_against"],
		Points:       counts["points"],
		Form:         normalizeForm(stringField(fields, "form")),
		CollectedAt:  n.now().UTC(),
	}
	// The source sometimes ships a diff column; recompute so the invariant
	// goal_difference == goals_for - goals_against always holds.
	row.GoalDifference = row.GoalsFor - row.GoalsAgainst

	return row, nil
}

func (n *Normalizer) NormalizeBracket(fields map[string]any) (bracket.Entry, error) {
	competition := textnorm.Clean(stringField(fields, "competition"))
	if competition == "" {
		return bracket.Entry{}, reject(CategoryBracket, "competition", "missing competition name")
	}

	round := textnorm.Clean(stringField(fields, "round"))
	if round == "" {
		return bracket.Entry{}, reject(CategoryBracket, "round", "missing round label")
	}

	matchRef := cleanString(fields["match_ref"])
	if matchRef == "" {
		matchRef = cleanString(fields["id"])
	}
	if matchRef == "" {
		return bracket.Entry{}, reject(CategoryBracket, "match_ref", "missing match reference")
	}

	status, err := normalizeStatus(fields)
	if err != nil {
		return bracket.Entry{}, err
	}

	playedAt, err := parseKickoff(fields)
	if err != nil {
		return bracket.Entry{}, err
	}

	return bracket.Entry{
		Competition:    n.LeagueName(competition),
		CompetitionKey: textnorm.Key(n.LeagueName(competition)),
		Round:          round,
		RoundOrder:     bracket.RoundOrder(round),
		MatchRef:       matchRef,
		HomeTeam:       textnorm.Clean(stringField(fields, "home")),
		AwayTeam:       textnorm.Clean(stringField(fields, "away")),
		HomeScore:      scoreField(fields, "home_score"),
		AwayScore:      scoreField(fields, "away_score"),
		Status:         status,
		PlayedAt:       playedAt,
		CollectedAt:    n.now().UTC(),
	}, nil
}

// resolveLeague combines the optional country field with the league label,
// handling the source's "COUNTRY: League" display format.
func (n *Normalizer) resolveLeague(fields map[string]any) (league, country string) {
	rawLeague := stringField(fields, "league")
	country = textnorm.Clean(stringField(fields, "country"))

	parsedCountry, name := textnorm.SplitLeagueCountry(rawLeague)
	if country == "" {
		country = parsedCountry
	}

	return n.LeagueName(name), country
}

func (n *Normalizer) logoURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if n.logoBaseURL == "" {
		return raw
	}
	return n.logoBaseURL + "/" + strings.TrimLeft(raw, "/")
}

// Feed status codes: 1 = not started, 2 = live, 3 = finished. Word statuses
// from other source pages are accepted too. Anything else is a malformed
// shape and rejected.
func normalizeStatus(fields map[string]any) (string, error) {
	raw := stringField(fields, "status")
	if raw == "" {
		raw = stringField(fields, "status_code")
	}

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "scheduled", "not_started", "upcoming", "":
		return match.StatusScheduled, nil
	case "2", "live", "in_play", "1h", "2h", "ht":
		return match.StatusLive, nil
	case "3", "finished", "ft", "aet", "after_penalties":
		return match.StatusFinished, nil
	default:
		return "", reject(CategoryMatch, "status", fmt.Sprintf("unrecognized status %q", raw))
	}
}

// normalizeForm keeps only W/D/L characters, most recent first, capped at 5.
func normalizeForm(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		switch r {
		case 'W', 'D', 'L':
			b.WriteRune(r)
		}
		if b.Len() == 5 {
			break
		}
	}
	return b.String()
}

func stringField(fields map[string]any, key string) string {
	return cleanString(fields[key])
}

func cleanString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return ""
	}
}

func intField(fields map[string]any, key string) (int, bool) {
	switch v := fields[key].(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// scoreField returns nil for absent scores: not-yet-played matches carry
// null, "" or "-" in the feed.
func scoreField(fields map[string]any, key string) *int {
	raw, present := fields[key]
	if !present || raw == nil {
		return nil
	}
	if s, ok := raw.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" || s == "-" {
			return nil
		}
	}
	value, ok := intField(fields, key)
	if !ok || value < 0 {
		return nil
	}
	return &value
}
