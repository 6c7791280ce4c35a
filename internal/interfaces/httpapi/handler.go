package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/scorepipe/scorepipe/internal/domain/clubindex"
	"github.com/scorepipe/scorepipe/internal/domain/match"
	"github.com/scorepipe/scorepipe/internal/usecase"
)

type Handler struct {
	queryService    *usecase.QueryService
	searchService   *usecase.SearchService
	progressService *usecase.ProgressService
	logger          *slog.Logger
	validator       *validator.Validate
}

func NewHandler(
	queryService *usecase.QueryService,
	searchService *usecase.SearchService,
	progressService *usecase.ProgressService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		queryService:    queryService,
		searchService:   searchService,
		progressService: progressService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProgress")
	defer span.End()

	progress, err := h.progressService.Progress(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get progress failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, progress)
}

func (h *Handler) ForceCompleteProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ForceCompleteProgress")
	defer span.End()

	if err := h.progressService.ForceComplete(ctx); err != nil {
		h.logger.WarnContext(ctx, "force complete failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	progress, err := h.progressService.Progress(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, progress)
}

type clubSearchParams struct {
	Name    string `validate:"required,min=2,max=80"`
	Country string `validate:"max=60"`
	League  string `validate:"max=80"`
	Limit   int    `validate:"gte=0,lte=50"`
}

func (h *Handler) SearchClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchClubs")
	defer span.End()

	query := r.URL.Query()
	params := clubSearchParams{
		Name:    strings.TrimSpace(query.Get("name")),
		Country: strings.TrimSpace(query.Get("country")),
		League:  strings.TrimSpace(query.Get("league")),
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput))
			return
		}
		params.Limit = limit
	}
	if err := h.validator.Struct(params); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	clubs, err := h.searchService.SearchClubs(ctx, clubindex.Query{
		Name:    params.Name,
		Country: params.Country,
		League:  params.League,
		Limit:   params.Limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "club search failed", "name", params.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubs)
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := r.URL.Query()
	filter := match.Filter{
		LeagueKey: strings.TrimSpace(query.Get("league")),
		Country:   strings.TrimSpace(query.Get("country")),
		Status:    strings.TrimSpace(query.Get("status")),
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: from must be YYYY-MM-DD", usecase.ErrInvalidInput))
			return
		}
		filter.From = from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: to must be YYYY-MM-DD", usecase.ErrInvalidInput))
			return
		}
		// Inclusive end of day.
		filter.To = to.Add(24*time.Hour - time.Nanosecond)
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a non-negative integer", usecase.ErrInvalidInput))
			return
		}
		filter.Limit = limit
	}

	matches, err := h.queryService.ListMatches(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, toMatchDTO(m))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeagueTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueTable")
	defer span.End()

	query := r.URL.Query()
	rows, err := h.queryService.LeagueTable(ctx,
		query.Get("league"), query.Get("country"), query.Get("season"))
	if err != nil {
		h.logger.WarnContext(ctx, "league table failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toStandingDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetCupBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCupBracket")
	defer span.End()

	entries, err := h.queryService.CupBracket(ctx, r.URL.Query().Get("competition"))
	if err != nil {
		h.logger.WarnContext(ctx, "cup bracket failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]bracketDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toBracketDTO(entry))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
