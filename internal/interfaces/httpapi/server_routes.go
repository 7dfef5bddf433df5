package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerMetricRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /api/{leagueCode}/overview", handler.Overview)
	mux.HandleFunc("GET /api/{leagueCode}/cumulative-points", handler.CumulativePoints)
	mux.HandleFunc("GET /api/{leagueCode}/league-positions", handler.LeaguePositions)
	mux.HandleFunc("GET /api/{leagueCode}/recent-transfers", handler.RecentTransfers)
	mux.HandleFunc("GET /api/{leagueCode}/stats", handler.Stats)
	mux.HandleFunc("GET /api/{leagueCode}/form-chart", handler.FormChart)
	mux.HandleFunc("GET /api/{leagueCode}/points-distribution", handler.PointsDistribution)
	mux.HandleFunc("GET /api/{leagueCode}/team-comparison", handler.TeamComparison)
	mux.HandleFunc("GET /api/{leagueCode}/biggest-movers", handler.BiggestMovers)
	mux.HandleFunc("GET /api/{leagueCode}/weekly-performance", handler.WeeklyPerformance)
	mux.HandleFunc("GET /api/{leagueCode}/head-to-head", handler.HeadToHead)
	mux.HandleFunc("GET /api/{leagueCode}/differentials", handler.Differentials)
	mux.HandleFunc("GET /api/{leagueCode}/podium", handler.Podium)
}

func registerCollectionRoutes(mux *http.ServeMux, handler *Handler, refreshToken string) {
	mux.Handle("POST /api/{leagueCode}/refresh", RequireRefreshToken(refreshToken, http.HandlerFunc(handler.Refresh)))
	mux.Handle("POST /api/refresh-all", RequireRefreshToken(refreshToken, http.HandlerFunc(handler.RefreshAll)))
}
