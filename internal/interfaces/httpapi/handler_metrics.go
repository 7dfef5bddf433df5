package httpapi

import (
	"context"
	"net/http"
)

func (h *Handler) CumulativePoints(w http.ResponseWriter, r *http.Request) {
	h.serveLeagueMetric(w, r, "CumulativePoints", func(ctx context.Context, leagueCode int64, entryIDs []int64) (any, error) {
		return h.metrics.CumulativePoints(ctx, leagueCode, entryIDs)
	})
}

func (h *Handler) LeaguePositions(w http.ResponseWriter, r *http.Request) {
	h.serveLeagueMetric(w, r, "LeaguePositions", func(ctx context.Context, leagueCode int64, entryIDs []int64) (any, error) {
		return h.metrics.LeaguePositions(ctx, leagueCode, entryIDs)
	})
}

func (h *Handler) RecentTransfers(w http.ResponseWriter, r *http.Request) {
	h.serveLeagueMetric(w, r, "RecentTransfers", func(ctx context.Context, leagueCode int64, entryIDs []int64) (any, error) {
		return h.metrics.RecentTransfers(ctx, leagueCode, entryIDs)
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.serveLeagueMetric(w, r, "Stats", func(ctx context.Context, leagueCode int64, entryIDs []int64) (any, error) {
		return h.metrics.Stats(ctx, leagueCode, entryIDs)
	})
}

func (h *Handler) FormChart(w http.ResponseWriter, r *http.Request) {
	h.serveLeagueMetric(w, r, "FormChart", func(ctx context.Context, leagueCode int64, entryIDs []int64) (any, error) {
		return h.metrics.FormChart(ctx, leagueCode, entryIDs)
	})
}

func (h *Handler) PointsDistribution(w http.ResponseWriter, r *http.Request) {
	h.serveLeagueMetric(w, r, "PointsDistribution", func(ctx context.Context, leagueCode int64, entryIDs []int64) (any, error) {
		return h.metrics.PointsDistribution(ctx, leagueCode, entryIDs)
	})
}

func (h *Handler) TeamComparison(w http.ResponseWriter, r *http.Request) {
	h.serveLeagueMetric(w, r, "TeamComparison", func(ctx context.Context, leagueCode int64, entryIDs []int64) (any, error) {
		return h.metrics.TeamComparison(ctx, leagueCode, entryIDs)
	})
}

func (h *Handler) BiggestMovers(w http.ResponseWriter, r *http.Request) {
	h.serveLeagueMetric(w, r, "BiggestMovers", func(ctx context.Context, leagueCode int64, entryIDs []int64) (any, error) {
		return h.metrics.BiggestMovers(ctx, leagueCode, entryIDs)
	})
}

func (h *Handler) WeeklyPerformance(w http.ResponseWriter, r *http.Request) {
	h.serveLeagueMetric(w, r, "WeeklyPerformance", func(ctx context.Context, leagueCode int64, entryIDs []int64) (any, error) {
		return h.metrics.WeeklyPerformance(ctx, leagueCode, entryIDs)
	})
}

func (h *Handler) HeadToHead(w http.ResponseWriter, r *http.Request) {
	h.serveLeagueMetric(w, r, "HeadToHead", func(ctx context.Context, leagueCode int64, entryIDs []int64) (any, error) {
		return h.metrics.HeadToHead(ctx, leagueCode, entryIDs)
	})
}

func (h *Handler) Differentials(w http.ResponseWriter, r *http.Request) {
	h.serveLeagueMetric(w, r, "Differentials", func(ctx context.Context, leagueCode int64, entryIDs []int64) (any, error) {
		return h.metrics.Differentials(ctx, leagueCode, entryIDs)
	})
}

func (h *Handler) Podium(w http.ResponseWriter, r *http.Request) {
	h.serveLeagueMetric(w, r, "Podium", func(ctx context.Context, leagueCode int64, entryIDs []int64) (any, error) {
		return h.metrics.Podium(ctx, leagueCode, entryIDs)
	})
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	h.serveLeagueMetric(w, r, "Overview", func(ctx context.Context, leagueCode int64, _ []int64) (any, error) {
		return h.metrics.Overview(ctx, leagueCode)
	})
}
