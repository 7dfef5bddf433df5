package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/amiablealex/vantix/internal/domain/chip"
	"github.com/amiablealex/vantix/internal/domain/differential"
	"github.com/amiablealex/vantix/internal/domain/gameweek"
	"github.com/amiablealex/vantix/internal/domain/player"
	"github.com/amiablealex/vantix/internal/domain/playerstat"
	"github.com/amiablealex/vantix/internal/domain/squad"
	"github.com/amiablealex/vantix/internal/domain/team"
	"github.com/amiablealex/vantix/internal/domain/transfer"
	"github.com/amiablealex/vantix/internal/domain/weeklyscore"
	"github.com/amiablealex/vantix/internal/platform/cache"
	"github.com/amiablealex/vantix/internal/platform/logging"
)

// Collection pass outcomes.
const (
	CollectStatusSuccess = "success"
	CollectStatusSkipped = "skipped"
	CollectStatusError   = "error"
)

const unknownPlayerName = "Unknown"

// CollectResult summarizes one collection pass over one league.
type CollectResult struct {
	LeagueCode  int64         `json:"league_code"`
	Status      string        `json:"status"`
	Message     string        `json:"message"`
	TeamCount   int           `json:"team_count"`
	FailedTeams []string      `json:"failed_teams,omitempty"`
	Gameweek    int           `json:"gameweek"`
	Duration    time.Duration `json:"duration"`
}

// CollectorService pulls upstream league data into per-league stores. One
// pass runs as a single transaction so readers never observe a half
// written snapshot.
type CollectorService struct {
	upstream UpstreamClient
	stores   StoreProvider
	registry *RunRegistry
	cache    *cache.Store
	logger   *logging.Logger
	leagues  []int64
	now      func() time.Time
}

type CollectorConfig struct {
	Upstream UpstreamClient
	Stores   StoreProvider
	Registry *RunRegistry
	Cache    *cache.Store
	Logger   *logging.Logger
	Leagues  []int64
	Now      func() time.Time
}

func NewCollectorService(cfg CollectorConfig) *CollectorService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = NewRunRegistry()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &CollectorService{
		upstream: cfg.Upstream,
		stores:   cfg.Stores,
		registry: registry,
		cache:    cfg.Cache,
		logger:   logger,
		leagues:  append([]int64(nil), cfg.Leagues...),
		now:      now,
	}
}

// Leagues is the configured league roster, in configuration order.
func (s *CollectorService) Leagues() []int64 {
	return append([]int64(nil), s.leagues...)
}

// Registry exposes run state for status reporting.
func (s *CollectorService) Registry() *RunRegistry {
	return s.registry
}

// CollectAll runs a pass over every configured league sequentially. A
// failing league never blocks the ones after it.
func (s *CollectorService) CollectAll(ctx context.Context) []CollectResult {
	results := make([]CollectResult, 0, len(s.leagues))
	for _, leagueCode := range s.leagues {
		results = append(results, s.CollectLeague(ctx, leagueCode))
	}
	return results
}

// CollectLeague runs one full collection pass for a league. Overlapping
// invocations are declined, not queued. Bootstrap and standings failures
// abort the pass and roll everything back; single-team failures are
// logged and skipped.
func (s *CollectorService) CollectLeague(ctx context.Context, leagueCode int64) CollectResult {
	ctx, span := startUsecaseSpan(ctx, "CollectorService.CollectLeague")
	defer span.End()

	start := s.now()
	result := CollectResult{LeagueCode: leagueCode}

	if !s.registry.TryAcquire(leagueCode) {
		s.logger.InfoContext(ctx, "collection already in progress, skipping", "league_code", leagueCode)
		result.Status = CollectStatusSkipped
		result.Message = "collection already in progress"
		result.Duration = s.now().Sub(start)
		return result
	}
	defer s.registry.Release(leagueCode)

	s.logger.InfoContext(ctx, "collection pass started", "league_code", leagueCode)

	bootstrap, err := s.upstream.FetchBootstrap(ctx)
	if err != nil {
		return s.failResult(ctx, result, start, fmt.Errorf("fetch bootstrap: %w", err))
	}

	stores, err := s.stores.Open(ctx, leagueCode)
	if err != nil {
		return s.failResult(ctx, result, start, fmt.Errorf("open league store: %w", err))
	}

	err = stores.InTx(ctx, func(tx LeagueStores) error {
		return s.collectInTx(ctx, tx, leagueCode, bootstrap, &result)
	})
	if err != nil {
		return s.failResult(ctx, result, start, err)
	}

	if s.cache != nil {
		s.cache.DeletePrefix(ctx, LeagueCachePrefix(leagueCode))
	}

	result.Status = CollectStatusSuccess
	result.Message = fmt.Sprintf("collected %d teams", result.TeamCount-len(result.FailedTeams))
	result.Duration = s.now().Sub(start)
	s.logger.InfoContext(ctx, "collection pass finished",
		"league_code", leagueCode,
		"team_count", result.TeamCount,
		"failed_teams", len(result.FailedTeams),
		"gameweek", result.Gameweek,
		"duration", result.Duration,
	)
	return result
}

func (s *CollectorService) collectInTx(ctx context.Context, tx LeagueStores, leagueCode int64, bootstrap UpstreamBootstrap, result *CollectResult) error {
	playerNames := make(map[int64]string, len(bootstrap.Players))
	playerPool := make(map[int64]UpstreamPlayer, len(bootstrap.Players))
	for _, p := range bootstrap.Players {
		if err := tx.Players().Upsert(ctx, player.Player{ID: p.ID, WebName: p.WebName, FullName: p.FullName}); err != nil {
			return fmt.Errorf("upsert player %d: %w", p.ID, err)
		}
		playerNames[p.ID] = p.WebName
		playerPool[p.ID] = p
	}

	gameweeks := make([]gameweek.Gameweek, 0, len(bootstrap.Gameweeks))
	for _, gw := range bootstrap.Gameweeks {
		model := gameweek.Gameweek{ID: gw.ID, Deadline: gw.Deadline, Finished: gw.Finished}
		if err := tx.Gameweeks().Upsert(ctx, model); err != nil {
			return fmt.Errorf("upsert gameweek %d: %w", gw.ID, err)
		}
		gameweeks = append(gameweeks, model)
	}
	currentGW := gameweek.CurrentID(gameweeks)
	result.Gameweek = currentGW

	roster, err := s.upstream.FetchLeagueTeams(ctx, leagueCode)
	if err != nil {
		return fmt.Errorf("fetch league roster: %w", err)
	}
	result.TeamCount = len(roster)

	for _, member := range roster {
		t := team.Team{EntryID: member.EntryID, TeamName: member.TeamName, ManagerName: member.ManagerName}
		if err := tx.Teams().Upsert(ctx, t); err != nil {
			return fmt.Errorf("upsert team %d: %w", member.EntryID, err)
		}
	}

	// Per-team collection is isolated: one bad team is logged and skipped,
	// the pass carries on.
	squads := make(map[int64][]int64, len(roster))
	for _, member := range roster {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.collectTeam(ctx, tx, member, currentGW, playerNames, playerPool, squads); err != nil {
			s.logger.WarnContext(ctx, "team collection failed, continuing",
				"league_code", leagueCode,
				"entry_id", member.EntryID,
				"team_name", member.TeamName,
				"error", err,
			)
			result.FailedTeams = append(result.FailedTeams, member.TeamName)
		}
	}

	if currentGW > 0 {
		if err := s.storeDifferentials(ctx, tx, roster, currentGW, playerNames, squads); err != nil {
			return err
		}
	}

	return nil
}

func (s *CollectorService) collectTeam(ctx context.Context, tx LeagueStores, member UpstreamTeam, currentGW int, playerNames map[int64]string, playerPool map[int64]UpstreamPlayer, squads map[int64][]int64) error {
	history, err := s.upstream.FetchTeamHistory(ctx, member.EntryID)
	if err != nil {
		return fmt.Errorf("fetch history: %w", err)
	}

	updatedAt := s.now().UTC()
	for _, row := range history.Results {
		score := weeklyscore.Score{
			EntryID:            member.EntryID,
			Gameweek:           row.Gameweek,
			Points:             row.Points,
			TotalPoints:        row.TotalPoints,
			Rank:               row.Rank,
			Bank:               row.Bank,
			Value:              row.Value,
			EventTransfers:     row.EventTransfers,
			EventTransfersCost: row.EventTransfersCost,
			UpdatedAt:          updatedAt,
		}
		if err := tx.Scores().Upsert(ctx, score); err != nil {
			return fmt.Errorf("upsert score gw=%d: %w", row.Gameweek, err)
		}
	}
	for _, play := range history.Chips {
		usage := chip.Usage{EntryID: member.EntryID, Gameweek: play.Gameweek, Name: play.Name}
		if err := tx.Chips().Record(ctx, usage); err != nil {
			return fmt.Errorf("record chip gw=%d: %w", play.Gameweek, err)
		}
	}

	transfers, err := s.upstream.FetchTeamTransfers(ctx, member.EntryID)
	if err != nil {
		return fmt.Errorf("fetch transfers: %w", err)
	}
	for _, activity := range groupTransfers(member.EntryID, transfers, playerNames) {
		if err := tx.Transfers().Upsert(ctx, activity); err != nil {
			return fmt.Errorf("upsert transfers gw=%d: %w", activity.Gameweek, err)
		}
	}

	if currentGW <= 0 {
		return nil
	}

	picks, err := s.upstream.FetchSquadPicks(ctx, member.EntryID, currentGW)
	if err != nil {
		return fmt.Errorf("fetch squad picks: %w", err)
	}
	snapshot := squad.Snapshot{EntryID: member.EntryID, Gameweek: currentGW, PlayerIDs: picks}
	if err := tx.Squads().Upsert(ctx, snapshot); err != nil {
		return fmt.Errorf("upsert squad: %w", err)
	}
	squads[member.EntryID] = picks

	stat := playerstat.Stat{EntryID: member.EntryID}
	for _, id := range picks {
		p := playerPool[id]
		stat.TotalGoals += p.GoalsScored
		stat.TotalAssists += p.Assists
		stat.TotalCleanSheets += p.CleanSheets
	}
	if err := tx.PlayerStats().Upsert(ctx, stat); err != nil {
		return fmt.Errorf("upsert player stats: %w", err)
	}

	return nil
}

// storeDifferentials runs after the whole roster has been attempted so
// ownership counts see every squad collected this pass. Teams whose squad
// fetch failed get no row.
func (s *CollectorService) storeDifferentials(ctx context.Context, tx LeagueStores, roster []UpstreamTeam, currentGW int, playerNames map[int64]string, squads map[int64][]int64) error {
	ownership := make(map[int64]int)
	for _, ids := range squads {
		for _, id := range ids {
			ownership[id]++
		}
	}

	for _, member := range roster {
		ids, ok := squads[member.EntryID]
		if !ok {
			continue
		}

		names := make([]string, 0, len(ids))
		for _, id := range ids {
			if ownership[id] != 1 {
				continue
			}
			name, ok := playerNames[id]
			if !ok {
				name = unknownPlayerName
			}
			names = append(names, name)
		}

		diff := differential.Differential{
			EntryID:  member.EntryID,
			Gameweek: currentGW,
			Players:  names,
			Count:    len(names),
		}
		if err := tx.Differentials().Upsert(ctx, diff); err != nil {
			return fmt.Errorf("upsert differential entry=%d: %w", member.EntryID, err)
		}
	}

	return nil
}

func (s *CollectorService) failResult(ctx context.Context, result CollectResult, start time.Time, err error) CollectResult {
	s.logger.ErrorContext(ctx, "collection pass failed", "league_code", result.LeagueCode, "error", err)
	result.Status = CollectStatusError
	result.Message = err.Error()
	result.Duration = s.now().Sub(start)
	return result
}

// groupTransfers folds the flat upstream transfer log into one activity
// row per gameweek, preserving upstream order inside a gameweek.
func groupTransfers(entryID int64, transfers []UpstreamTransfer, playerNames map[int64]string) []transfer.Activity {
	byGW := make(map[int]*transfer.Activity)
	for _, tr := range transfers {
		activity, ok := byGW[tr.Gameweek]
		if !ok {
			activity = &transfer.Activity{EntryID: entryID, Gameweek: tr.Gameweek}
			byGW[tr.Gameweek] = activity
		}
		activity.Count++
		activity.PlayersIn = append(activity.PlayersIn, nameOrUnknown(playerNames, tr.PlayerIn))
		activity.PlayersOut = append(activity.PlayersOut, nameOrUnknown(playerNames, tr.PlayerOut))
	}

	out := make([]transfer.Activity, 0, len(byGW))
	for _, activity := range byGW {
		out = append(out, *activity)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Gameweek < out[j].Gameweek })
	return out
}

func nameOrUnknown(playerNames map[int64]string, id int64) string {
	if name, ok := playerNames[id]; ok {
		return name
	}
	return unknownPlayerName
}

// LeagueCachePrefix namespaces cached metric responses per league so a
// successful pass can invalidate exactly one league's entries.
func LeagueCachePrefix(leagueCode int64) string {
	return fmt.Sprintf("league:%d:", leagueCode)
}
