package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scorepipe/scorepipe/internal/domain/match"
	"github.com/scorepipe/scorepipe/internal/domain/upsert"
	"github.com/scorepipe/scorepipe/internal/infrastructure/repository/memory"
	"github.com/scorepipe/scorepipe/internal/normalizer"
	"github.com/scorepipe/scorepipe/internal/platform/logging"
)

type stubCollector struct {
	matches     []normalizer.RawRecord
	standings   []normalizer.RawRecord
	brackets    []normalizer.RawRecord
	matchErr    error
	standingErr error
	bracketErr  error
}

func (c *stubCollector) FetchMatches(_ context.Context, _ time.Time) ([]normalizer.RawRecord, error) {
	return c.matches, c.matchErr
}

func (c *stubCollector) FetchStandings(_ context.Context) ([]normalizer.RawRecord, error) {
	return c.standings, c.standingErr
}

func (c *stubCollector) FetchBrackets(_ context.Context) ([]normalizer.RawRecord, error) {
	return c.brackets, c.bracketErr
}

func matchRecord(id string, overrides map[string]any) normalizer.RawRecord {
	fields := map[string]any{
		"id":              id,
		"league":          "ENGLAND: Premier League",
		"home":            "Arsenal",
		"away":            "Chelsea",
		"status":          "1",
		"start_timestamp": int64(1742486400),
	}
	for k, v := range overrides {
		fields[k] = v
	}
	return normalizer.RawRecord{Category: normalizer.CategoryMatch, Fields: fields}
}

func newIngestFixture(collector Collector) (*IngestService, *memory.MatchRepository, *memory.StandingRepository, *memory.BracketRepository) {
	matches := memory.NewMatchRepository()
	standings := memory.NewStandingRepository()
	brackets := memory.NewBracketRepository()
	svc := NewIngestService(collector, normalizer.New(normalizer.Config{}), matches, standings, brackets, logging.NewNop())
	return svc, matches, standings, brackets
}

func TestIngestMatchesIdempotent(t *testing.T) {
	collector := &stubCollector{matches: []normalizer.RawRecord{
		matchRecord("m1", nil),
		matchRecord("m2", map[string]any{"home": "Liverpool", "away": "Everton"}),
	}}
	svc, matches, _, _ := newIngestFixture(collector)
	day := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)

	first, err := svc.IngestMatches(context.Background(), day)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if first.Inserted != 2 || first.Updated != 0 || first.Skipped != 0 {
		t.Fatalf("first pass report = %+v", first)
	}

	second, err := svc.IngestMatches(context.Background(), day)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if second.Inserted != 0 || second.Updated != 0 || second.Skipped != 2 {
		t.Fatalf("second pass report = %+v", second)
	}
	if matches.Len() != 2 {
		t.Fatalf("stored matches = %d, want 2", matches.Len())
	}
}

func TestIngestMatchesUpdatesChangedRecord(t *testing.T) {
	collector := &stubCollector{matches: []normalizer.RawRecord{matchRecord("m1", nil)}}
	svc, matches, _, _ := newIngestFixture(collector)
	day := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)

	if _, err := svc.IngestMatches(context.Background(), day); err != nil {
		t.Fatalf("seed pass: %v", err)
	}

	collector.matches = []normalizer.RawRecord{
		matchRecord("m1", map[string]any{"status": "3", "home_score": 2, "away_score": 0}),
	}
	report, err := svc.IngestMatches(context.Background(), day)
	if err != nil {
		t.Fatalf("update pass: %v", err)
	}
	if report.Updated != 1 || report.Inserted != 0 {
		t.Fatalf("report = %+v", report)
	}

	stored, err := matches.List(context.Background(), match.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(stored) != 1 || stored[0].Status != match.StatusFinished {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestIngestMatchesSkipsRejectedRecords(t *testing.T) {
	collector := &stubCollector{matches: []normalizer.RawRecord{
		matchRecord("m1", nil),
		matchRecord("", nil),
		matchRecord("m3", map[string]any{"status": "99"}),
	}}
	svc, matches, _, _ := newIngestFixture(collector)

	report, err := svc.IngestMatches(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("IngestMatches: %v", err)
	}
	if report.Fetched != 3 || report.Inserted != 1 || report.Rejected != 2 {
		t.Fatalf("report = %+v", report)
	}
	if matches.Len() != 1 {
		t.Fatalf("stored matches = %d, want 1", matches.Len())
	}
}

type failingMatchRepo struct {
	*memory.MatchRepository
	failID string
}

func (r *failingMatchRepo) Upsert(ctx context.Context, m match.Match) (upsert.Outcome, error) {
	if m.ExternalID == r.failID {
		return "", errors.New("write refused")
	}
	return r.MatchRepository.Upsert(ctx, m)
}

func TestIngestMatchesIsolatesRepositoryFailures(t *testing.T) {
	collector := &stubCollector{matches: []normalizer.RawRecord{
		matchRecord("m1", nil),
		matchRecord("m2", map[string]any{"home": "Lyon", "away": "Lille"}),
	}}
	repo := &failingMatchRepo{MatchRepository: memory.NewMatchRepository(), failID: "m1"}
	svc := NewIngestService(collector, normalizer.New(normalizer.Config{}),
		repo, memory.NewStandingRepository(), memory.NewBracketRepository(), logging.NewNop())

	report, err := svc.IngestMatches(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("IngestMatches: %v", err)
	}
	if report.Failed != 1 || report.Inserted != 1 {
		t.Fatalf("report = %+v", report)
	}
}

func TestIngestMatchesCollectorError(t *testing.T) {
	collector := &stubCollector{matchErr: errors.New("feed down")}
	svc, _, _, _ := newIngestFixture(collector)

	_, err := svc.IngestMatches(context.Background(), time.Now())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("err = %v, want ErrDependencyUnavailable", err)
	}
}

func TestIngestMatchesRequiresDay(t *testing.T) {
	svc, _, _, _ := newIngestFixture(&stubCollector{})

	_, err := svc.IngestMatches(context.Background(), time.Time{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestIngestStandings(t *testing.T) {
	collector := &stubCollector{standings: []normalizer.RawRecord{
		{Category: normalizer.CategoryStanding, Fields: map[string]any{
			"league": "ENGLAND: Premier League", "season": "2025/2026",
			"team": "Arsenal", "position": 1,
			"played": 10, "wins": 8, "draws": 1, "losses": 1,
			"goals_for": 31, "goals_against": 13, "points": 25, "form": "WWDLW",
		}},
		{Category: normalizer.CategoryStanding, Fields: map[string]any{
			"league": "ENGLAND: Premier League", "team": "", "position": 2,
		}},
	}}
	svc, _, standings, _ := newIngestFixture(collector)

	report, err := svc.IngestStandings(context.Background())
	if err != nil {
		t.Fatalf("IngestStandings: %v", err)
	}
	if report.Inserted != 1 || report.Rejected != 1 {
		t.Fatalf("report = %+v", report)
	}

	table, err := standings.ListTable(context.Background(), "premier league", "", "")
	if err != nil {
		t.Fatalf("ListTable: %v", err)
	}
	if len(table) != 1 || table[0].GoalDifference != 18 {
		t.Fatalf("table = %+v", table)
	}
}

func TestIngestBrackets(t *testing.T) {
	collector := &stubCollector{brackets: []normalizer.RawRecord{
		{Category: normalizer.CategoryBracket, Fields: map[string]any{
			"competition": "FA Cup", "round": "Final", "id": "tie-1",
			"home": "Arsenal", "away": "Leeds", "status": "1",
			"date": "15.03.2026 17:30",
		}},
	}}
	svc, _, _, brackets := newIngestFixture(collector)

	report, err := svc.IngestBrackets(context.Background())
	if err != nil {
		t.Fatalf("IngestBrackets: %v", err)
	}
	if report.Inserted != 1 {
		t.Fatalf("report = %+v", report)
	}

	entries, err := brackets.ListByCompetition(context.Background(), "fa cup")
	if err != nil {
		t.Fatalf("ListByCompetition: %v", err)
	}
	if len(entries) != 1 || entries[0].RoundOrder != 7 {
		t.Fatalf("entries = %+v", entries)
	}
}
