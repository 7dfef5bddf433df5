package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/amiablealex/vantix/internal/platform/logging"
	"github.com/amiablealex/vantix/internal/usecase"
)

// Handler exposes the dashboard read API and the collection triggers.
type Handler struct {
	metrics   *usecase.MetricsService
	collector *usecase.CollectorService
	stores    usecase.StoreProvider
	logger    *logging.Logger
}

func NewHandler(metrics *usecase.MetricsService, collector *usecase.CollectorService, stores usecase.StoreProvider, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		metrics:   metrics,
		collector: collector,
		stores:    stores,
		logger:    logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

type leagueStatus struct {
	LeagueCode int64  `json:"league_code"`
	Status     string `json:"status"`
}

type leaguesResponse struct {
	Leagues []leagueStatus `json:"leagues"`
}

// ListLeagues reports the configured league roster with per-league
// collection state.
func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	response := leaguesResponse{Leagues: make([]leagueStatus, 0)}
	for _, leagueCode := range h.collector.Leagues() {
		status := "ready"
		switch {
		case h.collector.Registry().IsRunning(leagueCode):
			status = "collecting"
		case !h.stores.Exists(leagueCode):
			status = "not yet collected"
		}
		response.Leagues = append(response.Leagues, leagueStatus{LeagueCode: leagueCode, Status: status})
	}

	writeJSON(ctx, w, http.StatusOK, response)
}

// parseLeagueRequest extracts the league code path value and the optional
// repeated teams query filter.
func parseLeagueRequest(r *http.Request) (int64, []int64, error) {
	leagueCode, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("leagueCode")), 10, 64)
	if err != nil || leagueCode <= 0 {
		return 0, nil, fmt.Errorf("%w: league code must be a positive integer", usecase.ErrInvalidInput)
	}

	values := r.URL.Query()["teams"]
	entryIDs := make([]int64, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				return 0, nil, fmt.Errorf("%w: invalid team filter %q", usecase.ErrInvalidInput, part)
			}
			entryIDs = append(entryIDs, id)
		}
	}

	return leagueCode, entryIDs, nil
}

// serveLeagueMetric is the shared read-path skeleton: parse, load, write.
func (h *Handler) serveLeagueMetric(w http.ResponseWriter, r *http.Request, name string, load func(ctx context.Context, leagueCode int64, entryIDs []int64) (any, error)) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler."+name)
	defer span.End()

	leagueCode, entryIDs, err := parseLeagueRequest(r)
	if err != nil {
		writeReadError(ctx, w, err)
		return
	}

	result, err := load(ctx, leagueCode, entryIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "metric query failed", "metric", name, "league_code", leagueCode, "error", err)
		writeReadError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}
