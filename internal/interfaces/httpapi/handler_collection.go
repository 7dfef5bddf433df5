package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/amiablealex/vantix/internal/usecase"

	"github.com/cockroachdb/errors"
)

// Refresh triggers a synchronous collection pass for one league and
// reports its outcome.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Refresh")
	defer span.End()

	leagueCode, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("leagueCode")), 10, 64)
	if err != nil || leagueCode <= 0 {
		writeReadError(ctx, w, errors.Wrap(usecase.ErrInvalidInput, "league code must be a positive integer"))
		return
	}

	result := h.collector.CollectLeague(ctx, leagueCode)
	writeJSON(ctx, w, collectStatusCode(result), result)
}

// RefreshAll runs a collection pass over every configured league.
func (h *Handler) RefreshAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshAll")
	defer span.End()

	results := h.collector.CollectAll(ctx)
	writeJSON(ctx, w, http.StatusOK, map[string]any{"results": results})
}

func collectStatusCode(result usecase.CollectResult) int {
	switch result.Status {
	case usecase.CollectStatusSuccess:
		return http.StatusOK
	case usecase.CollectStatusSkipped:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
