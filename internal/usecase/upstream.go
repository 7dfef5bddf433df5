package usecase

import (
	"context"
	"time"
)

// UpstreamClient is the provider-facing contract the collector consumes.
// external/fpl implements it against the live fantasy API; tests stub it.
type UpstreamClient interface {
	FetchBootstrap(ctx context.Context) (UpstreamBootstrap, error)
	FetchLeagueTeams(ctx context.Context, leagueCode int64) ([]UpstreamTeam, error)
	FetchTeamHistory(ctx context.Context, entryID int64) (UpstreamHistory, error)
	FetchTeamTransfers(ctx context.Context, entryID int64) ([]UpstreamTransfer, error)
	FetchSquadPicks(ctx context.Context, entryID int64, gw int) ([]int64, error)
}

// UpstreamBootstrap is the season-wide reference data: gameweek calendar
// plus the global player pool with season aggregates.
type UpstreamBootstrap struct {
	Gameweeks []UpstreamGameweek
	Players   []UpstreamPlayer
}

type UpstreamGameweek struct {
	ID       int
	Deadline time.Time
	Finished bool
}

type UpstreamPlayer struct {
	ID          int64
	WebName     string
	FullName    string
	GoalsScored int
	Assists     int
	CleanSheets int
}

// UpstreamTeam is one league roster row.
type UpstreamTeam struct {
	EntryID     int64
	TeamName    string
	ManagerName string
}

// UpstreamHistory is one team's season so far. Bank and Value are already
// converted from provider tenths to display units.
type UpstreamHistory struct {
	Results []UpstreamGameweekResult
	Chips   []UpstreamChip
}

type UpstreamGameweekResult struct {
	Gameweek           int
	Points             int
	TotalPoints        int
	Rank               int
	Bank               float64
	Value              float64
	EventTransfers     int
	EventTransfersCost int
}

type UpstreamChip struct {
	Name     string
	Gameweek int
}

type UpstreamTransfer struct {
	PlayerIn  int64
	PlayerOut int64
	Gameweek  int
}
