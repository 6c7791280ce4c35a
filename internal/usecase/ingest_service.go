package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/scorepipe/scorepipe/internal/domain/bracket"
	"github.com/scorepipe/scorepipe/internal/domain/match"
	"github.com/scorepipe/scorepipe/internal/domain/standing"
	"github.com/scorepipe/scorepipe/internal/domain/upsert"
	"github.com/scorepipe/scorepipe/internal/normalizer"
	"github.com/scorepipe/scorepipe/internal/platform/logging"
)

// IngestReport counts per-record outcomes of one ingestion pass. Rejected and
// Failed records are logged and skipped; they never abort the batch.
type IngestReport struct {
	Fetched  int `json:"fetched"`
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	Rejected int `json:"rejected"`
	Failed   int `json:"failed"`
}

func (r IngestReport) add(outcome upsert.Outcome) IngestReport {
	switch outcome {
	case upsert.OutcomeInserted:
		r.Inserted++
	case upsert.OutcomeUpdated:
		r.Updated++
	case upsert.OutcomeSkipped:
		r.Skipped++
	}
	return r
}

type IngestService struct {
	collector    Collector
	norm         *normalizer.Normalizer
	matchRepo    match.Repository
	standingRepo standing.Repository
	bracketRepo  bracket.Repository
	logger       *logging.Logger
}

func NewIngestService(
	collector Collector,
	norm *normalizer.Normalizer,
	matchRepo match.Repository,
	standingRepo standing.Repository,
	bracketRepo bracket.Repository,
	logger *logging.Logger,
) *IngestService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestService{
		collector:    collector,
		norm:         norm,
		matchRepo:    matchRepo,
		standingRepo: standingRepo,
		bracketRepo:  bracketRepo,
		logger:       logger,
	}
}

// IngestMatches pulls one day of fixtures, normalizes each record and upserts
// it keyed by external id. Running it twice for the same day is a no-op on
// the second pass.
func (s *IngestService) IngestMatches(ctx context.Context, day time.Time) (IngestReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.IngestMatches")
	defer span.End()

	if day.IsZero() {
		return IngestReport{}, fmt.Errorf("%w: day is required", ErrInvalidInput)
	}

	records, err := s.collector.FetchMatches(ctx, day)
	if err != nil {
		return IngestReport{}, errors.Wrapf(ErrDependencyUnavailable, "fetch matches for %s: %v", day.Format("2006-01-02"), err)
	}

	report := IngestReport{Fetched: len(records)}
	for _, record := range records {
		m, err := s.norm.NormalizeMatch(record.Fields)
		if err != nil {
			report.Rejected++
			s.logger.WarnContext(ctx, "match record rejected", "day", day.Format("2006-01-02"), "error", err)
			continue
		}
		outcome, err := s.matchRepo.Upsert(ctx, m)
		if err != nil {
			report.Failed++
			s.logger.ErrorContext(ctx, "match upsert failed", "external_id", m.ExternalID, "error", err)
			continue
		}
		report = report.add(outcome)
	}

	s.logger.InfoContext(ctx, "match ingestion finished",
		"day", day.Format("2006-01-02"),
		"fetched", report.Fetched,
		"inserted", report.Inserted,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"rejected", report.Rejected,
		"failed", report.Failed,
	)
	return report, nil
}

func (s *IngestService) IngestStandings(ctx context.Context) (IngestReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.IngestStandings")
	defer span.End()

	records, err := s.collector.FetchStandings(ctx)
	if err != nil {
		return IngestReport{}, errors.Wrapf(ErrDependencyUnavailable, "fetch standings: %v", err)
	}

	report := IngestReport{Fetched: len(records)}
	for _, record := range records {
		row, err := s.norm.NormalizeStanding(record.Fields)
		if err != nil {
			report.Rejected++
			s.logger.WarnContext(ctx, "standing record rejected", "error", err)
			continue
		}
		outcome, err := s.standingRepo.Upsert(ctx, row)
		if err != nil {
			report.Failed++
			s.logger.ErrorContext(ctx, "standing upsert failed",
				"league_key", row.LeagueKey, "team_key", row.TeamKey, "error", err)
			continue
		}
		report = report.add(outcome)
	}

	s.logger.InfoContext(ctx, "standing ingestion finished",
		"fetched", report.Fetched,
		"inserted", report.Inserted,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"rejected", report.Rejected,
		"failed", report.Failed,
	)
	return report, nil
}

func (s *IngestService) IngestBrackets(ctx context.Context) (IngestReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.IngestBrackets")
	defer span.End()

	records, err := s.collector.FetchBrackets(ctx)
	if err != nil {
		return IngestReport{}, errors.Wrapf(ErrDependencyUnavailable, "fetch brackets: %v", err)
	}

	report := IngestReport{Fetched: len(records)}
	for _, record := range records {
		entry, err := s.norm.NormalizeBracket(record.Fields)
		if err != nil {
			report.Rejected++
			s.logger.WarnContext(ctx, "bracket record rejected", "error", err)
			continue
		}
		outcome, err := s.bracketRepo.Upsert(ctx, entry)
		if err != nil {
			report.Failed++
			s.logger.ErrorContext(ctx, "bracket upsert failed",
				"competition_key", entry.CompetitionKey, "match_ref", entry.MatchRef, "error", err)
			continue
		}
		report = report.add(outcome)
	}

	s.logger.InfoContext(ctx, "bracket ingestion finished",
		"fetched", report.Fetched,
		"inserted", report.Inserted,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"rejected", report.Rejected,
		"failed", report.Failed,
	)
	return report, nil
}
