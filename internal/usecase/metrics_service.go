package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/amiablealex/vantix/internal/domain/gameweek"
	"github.com/amiablealex/vantix/internal/domain/team"
	"github.com/amiablealex/vantix/internal/domain/weeklyscore"
	"github.com/amiablealex/vantix/internal/platform/cache"
	"github.com/amiablealex/vantix/internal/platform/logging"
)

// MetricsService computes dashboard views from a league store. Every
// operation accepts an optional entry id subset; aggregates are always
// recomputed over the subset, never sliced out of full-league results.
//
// Cumulative and ranking views only consider finished gameweeks so an
// in-progress gameweek never distorts standings mid-round.
type MetricsService struct {
	stores StoreProvider
	cache  *cache.Store
	logger *logging.Logger
}

type MetricsConfig struct {
	Stores StoreProvider
	Cache  *cache.Store
	Logger *logging.Logger
}

func NewMetricsService(cfg MetricsConfig) *MetricsService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &MetricsService{
		stores: cfg.Stores,
		cache:  cfg.Cache,
		logger: logger,
	}
}

func (s *MetricsService) open(ctx context.Context, leagueCode int64) (LeagueStores, error) {
	if !s.stores.Exists(leagueCode) {
		return nil, ErrLeagueNotCollected
	}
	return s.stores.Open(ctx, leagueCode)
}

// leagueView is the shared read model most operations start from.
type leagueView struct {
	teams        []team.Team
	nameByID     map[int64]string
	entryIDs     []int64
	gameweeks    []gameweek.Gameweek
	currentGW    int
	lastFinished int
	scores       map[int64][]weeklyscore.Score
}

func (s *MetricsService) loadView(ctx context.Context, st LeagueStores, entryIDs []int64) (leagueView, error) {
	teams, err := st.Teams().List(ctx)
	if err != nil {
		return leagueView{}, err
	}
	teams = filterTeams(teams, entryIDs)

	view := leagueView{
		teams:    teams,
		nameByID: make(map[int64]string, len(teams)),
		entryIDs: make([]int64, 0, len(teams)),
		scores:   make(map[int64][]weeklyscore.Score, len(teams)),
	}
	for _, t := range teams {
		view.nameByID[t.EntryID] = t.TeamName
		view.entryIDs = append(view.entryIDs, t.EntryID)
	}

	view.gameweeks, err = st.Gameweeks().List(ctx)
	if err != nil {
		return leagueView{}, err
	}
	view.currentGW = gameweek.CurrentID(view.gameweeks)
	view.lastFinished = gameweek.LastFinishedID(view.gameweeks)

	if len(view.entryIDs) > 0 {
		scores, err := st.Scores().List(ctx, view.entryIDs)
		if err != nil {
			return leagueView{}, err
		}
		for _, score := range scores {
			view.scores[score.EntryID] = append(view.scores[score.EntryID], score)
		}
	}

	return view, nil
}

// finishedIDs lists finished gameweek ids in ascending order.
func (v leagueView) finishedIDs() []int {
	ids := make([]int, 0, len(v.gameweeks))
	for _, gw := range v.gameweeks {
		if gw.Finished {
			ids = append(ids, gw.ID)
		}
	}
	return ids
}

// totalsAt maps each team to its gameweek points summed through one
// gameweek. Teams without a row at that gameweek are absent. The running
// sum is used rather than the upstream total so rankings stay consistent
// with the cumulative points view when transfer hits skew the upstream
// figure.
func (v leagueView) totalsAt(gw int) map[int64]int {
	totals := make(map[int64]int, len(v.teams))
	for _, t := range v.teams {
		sum := 0
		recorded := false
		for _, score := range v.scores[t.EntryID] {
			if score.Gameweek > gw {
				break
			}
			sum += score.Points
			if score.Gameweek == gw {
				recorded = true
			}
		}
		if recorded {
			totals[t.EntryID] = sum
		}
	}
	return totals
}

// summedPoints is each team's points summed through the last finished
// gameweek.
func (v leagueView) summedPoints(entryID int64) int {
	total := 0
	for _, score := range v.scores[entryID] {
		if score.Gameweek <= v.lastFinished {
			total += score.Points
		}
	}
	return total
}

func (s *MetricsService) CumulativePoints(ctx context.Context, leagueCode int64, entryIDs []int64) (ChartResult, error) {
	return cachedResult[ChartResult](ctx, s.cache, metricsCacheKey(leagueCode, "cumulative-points", entryIDs), func(ctx context.Context) (any, error) {
		st, err := s.open(ctx, leagueCode)
		if err != nil {
			return nil, err
		}
		view, err := s.loadView(ctx, st, entryIDs)
		if err != nil {
			return nil, err
		}

		result := ChartResult{Teams: make([]TeamSeries, 0, len(view.teams))}
		for _, t := range view.teams {
			series := TeamSeries{TeamName: t.TeamName, Data: make([]ChartPoint, 0, view.lastFinished)}
			running := 0
			for _, score := range view.scores[t.EntryID] {
				if score.Gameweek > view.lastFinished {
					continue
				}
				running += score.Points
				series.Data = append(series.Data, ChartPoint{X: score.Gameweek, Y: running})
			}
			result.Teams = append(result.Teams, series)
		}
		return result, nil
	})
}

func (s *MetricsService) LeaguePositions(ctx context.Context, leagueCode int64, entryIDs []int64) (PositionsResult, error) {
	return cachedResult[PositionsResult](ctx, s.cache, metricsCacheKey(leagueCode, "league-positions", entryIDs), func(ctx context.Context) (any, error) {
		st, err := s.open(ctx, leagueCode)
		if err != nil {
			return nil, err
		}
		view, err := s.loadView(ctx, st, entryIDs)
		if err != nil {
			return nil, err
		}

		chips, err := st.Chips().List(ctx, view.entryIDs)
		if err != nil {
			return nil, err
		}
		chipsByTeam := make(map[int64][]ChipMarker, len(view.teams))
		for _, usage := range chips {
			chipsByTeam[usage.EntryID] = append(chipsByTeam[usage.EntryID], ChipMarker{Gameweek: usage.Gameweek, Name: usage.Name})
		}

		seriesByTeam := make(map[int64]*PositionSeries, len(view.teams))
		result := PositionsResult{Teams: make([]PositionSeries, 0, len(view.teams))}
		for _, t := range view.teams {
			markers := chipsByTeam[t.EntryID]
			if markers == nil {
				markers = make([]ChipMarker, 0)
			}
			result.Teams = append(result.Teams, PositionSeries{
				TeamName: t.TeamName,
				Data:     make([]ChartPoint, 0, view.lastFinished),
				Chips:    markers,
			})
			seriesByTeam[t.EntryID] = &result.Teams[len(result.Teams)-1]
		}

		for _, gw := range view.finishedIDs() {
			ranks := competitionRanks(view.totalsAt(gw))
			for _, t := range view.teams {
				if rank, ok := ranks[t.EntryID]; ok {
					series := seriesByTeam[t.EntryID]
					series.Data = append(series.Data, ChartPoint{X: gw, Y: rank})
				}
			}
		}
		return result, nil
	})
}

func (s *MetricsService) RecentTransfers(ctx context.Context, leagueCode int64, entryIDs []int64) (TransfersResult, error) {
	return cachedResult[TransfersResult](ctx, s.cache, metricsCacheKey(leagueCode, "recent-transfers", entryIDs), func(ctx context.Context) (any, error) {
		st, err := s.open(ctx, leagueCode)
		if err != nil {
			return nil, err
		}
		view, err := s.loadView(ctx, st, entryIDs)
		if err != nil {
			return nil, err
		}

		result := TransfersResult{Gameweek: view.currentGW, Teams: make([]TeamTransfers, 0, len(view.teams))}
		if view.currentGW <= 0 {
			return result, nil
		}

		activities, err := st.Transfers().ListByGameweek(ctx, view.currentGW, view.entryIDs)
		if err != nil {
			return nil, err
		}
		byTeam := make(map[int64]TeamTransfers, len(activities))
		for _, activity := range activities {
			byTeam[activity.EntryID] = TeamTransfers{
				TransferCount: activity.Count,
				PlayersIn:     emptyIfNil(activity.PlayersIn),
				PlayersOut:    emptyIfNil(activity.PlayersOut),
			}
		}

		for _, t := range view.teams {
			row, ok := byTeam[t.EntryID]
			if !ok {
				row = TeamTransfers{PlayersIn: make([]string, 0), PlayersOut: make([]string, 0)}
			}
			row.TeamName = t.TeamName
			result.Teams = append(result.Teams, row)
		}
		return result, nil
	})
}

func (s *MetricsService) Stats(ctx context.Context, leagueCode int64, entryIDs []int64) (StatsResult, error) {
	return cachedResult[StatsResult](ctx, s.cache, metricsCacheKey(leagueCode, "stats", entryIDs), func(ctx context.Context) (any, error) {
		st, err := s.open(ctx, leagueCode)
		if err != nil {
			return nil, err
		}
		view, err := s.loadView(ctx, st, entryIDs)
		if err != nil {
			return nil, err
		}

		var result StatsResult

		stats, err := st.PlayerStats().List(ctx, view.entryIDs)
		if err != nil {
			return nil, err
		}
		goalsByTeam := make(map[int64]int, len(stats))
		sheetsByTeam := make(map[int64]int, len(stats))
		for _, stat := range stats {
			goalsByTeam[stat.EntryID] = stat.TotalGoals
			sheetsByTeam[stat.EntryID] = stat.TotalCleanSheets
		}

		// view.teams is name-ordered, so ties resolve to the first name.
		for _, t := range view.teams {
			if goals, ok := goalsByTeam[t.EntryID]; ok && (result.MostGoals.TeamName == "" || goals > result.MostGoals.Value) {
				result.MostGoals = StatHighlight{TeamName: t.TeamName, Value: goals}
			}
			if sheets, ok := sheetsByTeam[t.EntryID]; ok && (result.MostCleanSheets.TeamName == "" || sheets > result.MostCleanSheets.Value) {
				result.MostCleanSheets = StatHighlight{TeamName: t.TeamName, Value: sheets}
			}
		}

		for _, t := range view.teams {
			for _, score := range view.scores[t.EntryID] {
				if score.Gameweek > view.lastFinished {
					continue
				}
				if result.HighestGameweekScore.TeamName == "" || score.Points > result.HighestGameweekScore.Value {
					result.HighestGameweekScore = StatHighlight{TeamName: t.TeamName, Value: score.Points}
				}
			}

			total := view.summedPoints(t.EntryID)
			if result.CurrentLeader.TeamName == "" || total > result.CurrentLeader.Value {
				result.CurrentLeader = StatHighlight{TeamName: t.TeamName, Value: total}
			}
		}
		return result, nil
	})
}

func (s *MetricsService) FormChart(ctx context.Context, leagueCode int64, entryIDs []int64) (ChartResult, error) {
	return cachedResult[ChartResult](ctx, s.cache, metricsCacheKey(leagueCode, "form-chart", entryIDs), func(ctx context.Context) (any, error) {
		st, err := s.open(ctx, leagueCode)
		if err != nil {
			return nil, err
		}
		view, err := s.loadView(ctx, st, entryIDs)
		if err != nil {
			return nil, err
		}

		window := lastN(view.finishedIDs(), 5)
		inWindow := make(map[int]bool, len(window))
		for _, gw := range window {
			inWindow[gw] = true
		}

		result := ChartResult{Teams: make([]TeamSeries, 0, len(view.teams))}
		for _, t := range view.teams {
			series := TeamSeries{TeamName: t.TeamName, Data: make([]ChartPoint, 0, len(window))}
			for _, score := range view.scores[t.EntryID] {
				if inWindow[score.Gameweek] {
					series.Data = append(series.Data, ChartPoint{X: score.Gameweek, Y: score.Points})
				}
			}
			result.Teams = append(result.Teams, series)
		}
		return result, nil
	})
}

var histogramBuckets = []struct {
	label string
	lo    int
	hi    int
}{
	{"0-20", 0, 20},
	{"20-40", 20, 40},
	{"40-60", 40, 60},
	{"60-80", 60, 80},
	{"80-100", 80, 100},
	{"100-150", 100, 1 << 30},
}

func (s *MetricsService) PointsDistribution(ctx context.Context, leagueCode int64, entryIDs []int64) (DistributionResult, error) {
	return cachedResult[DistributionResult](ctx, s.cache, metricsCacheKey(leagueCode, "points-distribution", entryIDs), func(ctx context.Context) (any, error) {
		st, err := s.open(ctx, leagueCode)
		if err != nil {
			return nil, err
		}
		view, err := s.loadView(ctx, st, entryIDs)
		if err != nil {
			return nil, err
		}

		result := DistributionResult{Buckets: make([]HistogramBucket, len(histogramBuckets))}
		for i, bucket := range histogramBuckets {
			result.Buckets[i] = HistogramBucket{Range: bucket.label}
		}

		for _, t := range view.teams {
			for _, score := range view.scores[t.EntryID] {
				if score.Gameweek > view.lastFinished {
					continue
				}
				for i, bucket := range histogramBuckets {
					if score.Points >= bucket.lo && score.Points < bucket.hi {
						result.Buckets[i].Count++
						break
					}
				}
			}
		}
		return result, nil
	})
}

func (s *MetricsService) TeamComparison(ctx context.Context, leagueCode int64, entryIDs []int64) (ComparisonResult, error) {
	return cachedResult[ComparisonResult](ctx, s.cache, metricsCacheKey(leagueCode, "team-comparison", entryIDs), func(ctx context.Context) (any, error) {
		st, err := s.open(ctx, leagueCode)
		if err != nil {
			return nil, err
		}
		view, err := s.loadView(ctx, st, entryIDs)
		if err != nil {
			return nil, err
		}

		activities, err := st.Transfers().List(ctx, view.entryIDs)
		if err != nil {
			return nil, err
		}
		transfersByTeam := make(map[int64]int, len(view.teams))
		for _, activity := range activities {
			transfersByTeam[activity.EntryID] += activity.Count
		}

		chips, err := st.Chips().List(ctx, view.entryIDs)
		if err != nil {
			return nil, err
		}
		chipsByTeam := make(map[int64]int, len(view.teams))
		for _, usage := range chips {
			chipsByTeam[usage.EntryID]++
		}

		result := ComparisonResult{Teams: make([]TeamComparisonRow, 0, len(view.teams))}
		for _, t := range view.teams {
			row := TeamComparisonRow{
				TeamName:       t.TeamName,
				TotalTransfers: transfersByTeam[t.EntryID],
				ChipsUsed:      chipsByTeam[t.EntryID],
			}
			played := 0
			for _, score := range view.scores[t.EntryID] {
				if score.Gameweek > view.lastFinished {
					continue
				}
				played++
				row.TotalPoints += score.Points
				if score.Points > row.HighestScore {
					row.HighestScore = score.Points
				}
			}
			if played > 0 {
				row.AveragePoints = float64(row.TotalPoints) / float64(played)
			}
			result.Teams = append(result.Teams, row)
		}
		return result, nil
	})
}

func (s *MetricsService) BiggestMovers(ctx context.Context, leagueCode int64, entryIDs []int64) (MoversResult, error) {
	return cachedResult[MoversResult](ctx, s.cache, metricsCacheKey(leagueCode, "biggest-movers", entryIDs), func(ctx context.Context) (any, error) {
		st, err := s.open(ctx, leagueCode)
		if err != nil {
			return nil, err
		}
		view, err := s.loadView(ctx, st, entryIDs)
		if err != nil {
			return nil, err
		}

		result := MoversResult{Climbers: make([]MoverRow, 0, 5), Fallers: make([]MoverRow, 0, 5)}
		pastGW := view.lastFinished - 5
		if pastGW < 1 {
			return result, nil
		}

		pastRanks := competitionRanks(view.totalsAt(pastGW))
		currentRanks := competitionRanks(view.totalsAt(view.lastFinished))

		movers := make([]MoverRow, 0, len(view.teams))
		for _, t := range view.teams {
			past, ok := pastRanks[t.EntryID]
			if !ok {
				continue
			}
			current, ok := currentRanks[t.EntryID]
			if !ok {
				continue
			}
			movers = append(movers, MoverRow{
				TeamName:    t.TeamName,
				PastRank:    past,
				CurrentRank: current,
				Change:      past - current,
			})
		}

		sort.SliceStable(movers, func(i, j int) bool { return movers[i].Change > movers[j].Change })
		for _, mover := range movers {
			if mover.Change > 0 && len(result.Climbers) < 5 {
				result.Climbers = append(result.Climbers, mover)
			}
		}
		for i := len(movers) - 1; i >= 0; i-- {
			if movers[i].Change < 0 && len(result.Fallers) < 5 {
				result.Fallers = append(result.Fallers, movers[i])
			}
		}
		return result, nil
	})
}

func (s *MetricsService) WeeklyPerformance(ctx context.Context, leagueCode int64, entryIDs []int64) (WeeklyPerformanceResult, error) {
	return cachedResult[WeeklyPerformanceResult](ctx, s.cache, metricsCacheKey(leagueCode, "weekly-performance", entryIDs), func(ctx context.Context) (any, error) {
		st, err := s.open(ctx, leagueCode)
		if err != nil {
			return nil, err
		}
		view, err := s.loadView(ctx, st, entryIDs)
		if err != nil {
			return nil, err
		}

		result := WeeklyPerformanceResult{Weeks: make([]WeeklyPerformanceRow, 0, view.lastFinished)}
		for _, gw := range view.finishedIDs() {
			row := WeeklyPerformanceRow{Gameweek: gw}
			total, count := 0, 0
			for _, t := range view.teams {
				for _, score := range view.scores[t.EntryID] {
					if score.Gameweek != gw {
						continue
					}
					total += score.Points
					count++
					if row.Highest.TeamName == "" || score.Points > row.Highest.Points {
						row.Highest = WeeklyExtreme{TeamName: t.TeamName, Points: score.Points}
					}
					if row.Lowest.TeamName == "" || score.Points < row.Lowest.Points {
						row.Lowest = WeeklyExtreme{TeamName: t.TeamName, Points: score.Points}
					}
				}
			}
			if count == 0 {
				continue
			}
			row.Average = float64(total) / float64(count)
			result.Weeks = append(result.Weeks, row)
		}
		return result, nil
	})
}

func (s *MetricsService) HeadToHead(ctx context.Context, leagueCode int64, entryIDs []int64) (HeadToHeadResult, error) {
	return cachedResult[HeadToHeadResult](ctx, s.cache, metricsCacheKey(leagueCode, "head-to-head", entryIDs), func(ctx context.Context) (any, error) {
		st, err := s.open(ctx, leagueCode)
		if err != nil {
			return nil, err
		}
		view, err := s.loadView(ctx, st, entryIDs)
		if err != nil {
			return nil, err
		}

		tally := make(map[int64]*HeadToHeadRow, len(view.teams))
		for _, t := range view.teams {
			tally[t.EntryID] = &HeadToHeadRow{TeamName: t.TeamName}
		}

		for _, gw := range view.finishedIDs() {
			present := make(map[int64]int, len(view.teams))
			for _, t := range view.teams {
				for _, score := range view.scores[t.EntryID] {
					if score.Gameweek == gw {
						present[t.EntryID] = score.Points
						break
					}
				}
			}
			if len(present) == 0 {
				continue
			}

			// The week's best may be negative, so seed from an actual score.
			best := math.MinInt
			for _, points := range present {
				if points > best {
					best = points
				}
			}

			winners := 0
			for _, points := range present {
				if points == best {
					winners++
				}
			}
			for entryID, points := range present {
				switch {
				case points == best && winners == 1:
					tally[entryID].Wins++
				case points == best:
					tally[entryID].Draws++
				default:
					tally[entryID].Losses++
				}
			}
		}

		result := HeadToHeadResult{Teams: make([]HeadToHeadRow, 0, len(view.teams))}
		for _, t := range view.teams {
			result.Teams = append(result.Teams, *tally[t.EntryID])
		}
		sort.SliceStable(result.Teams, func(i, j int) bool {
			left, right := result.Teams[i], result.Teams[j]
			if left.Wins != right.Wins {
				return left.Wins > right.Wins
			}
			if left.Draws != right.Draws {
				return left.Draws > right.Draws
			}
			return left.TeamName < right.TeamName
		})
		return result, nil
	})
}

func (s *MetricsService) Differentials(ctx context.Context, leagueCode int64, entryIDs []int64) (DifferentialsResult, error) {
	return cachedResult[DifferentialsResult](ctx, s.cache, metricsCacheKey(leagueCode, "differentials", entryIDs), func(ctx context.Context) (any, error) {
		st, err := s.open(ctx, leagueCode)
		if err != nil {
			return nil, err
		}
		view, err := s.loadView(ctx, st, entryIDs)
		if err != nil {
			return nil, err
		}

		result := DifferentialsResult{Teams: make([]TeamDifferentials, 0, len(view.teams))}
		gw, ok, err := st.Differentials().LatestGameweek(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return result, nil
		}
		result.Gameweek = gw

		rows, err := st.Differentials().ListByGameweek(ctx, gw, view.entryIDs)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			name, ok := view.nameByID[row.EntryID]
			if !ok {
				continue
			}
			result.Teams = append(result.Teams, TeamDifferentials{
				TeamName:          name,
				DifferentialCount: row.Count,
				Players:           emptyIfNil(row.Players),
			})
		}
		return result, nil
	})
}

func (s *MetricsService) Podium(ctx context.Context, leagueCode int64, entryIDs []int64) (PodiumResult, error) {
	return cachedResult[PodiumResult](ctx, s.cache, metricsCacheKey(leagueCode, "podium", entryIDs), func(ctx context.Context) (any, error) {
		st, err := s.open(ctx, leagueCode)
		if err != nil {
			return nil, err
		}
		view, err := s.loadView(ctx, st, entryIDs)
		if err != nil {
			return nil, err
		}

		rows := make([]PodiumRow, 0, len(view.teams))
		for _, t := range view.teams {
			rows = append(rows, PodiumRow{
				TeamName:    t.TeamName,
				TotalPoints: view.summedPoints(t.EntryID),
				Form:        recentForm(view.scores[t.EntryID]),
			})
		}

		// view.teams is name-ordered, so equal totals keep name order.
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalPoints > rows[j].TotalPoints })
		if len(rows) > 3 {
			rows = rows[:3]
		}
		for i := range rows {
			rows[i].GapToLeader = rows[0].TotalPoints - rows[i].TotalPoints
		}
		return PodiumResult{Podium: rows}, nil
	})
}

// Overview fans out the independent card lookups concurrently.
func (s *MetricsService) Overview(ctx context.Context, leagueCode int64) (OverviewResult, error) {
	return cachedResult[OverviewResult](ctx, s.cache, metricsCacheKey(leagueCode, "overview", nil), func(ctx context.Context) (any, error) {
		st, err := s.open(ctx, leagueCode)
		if err != nil {
			return nil, err
		}

		var result OverviewResult
		p := pool.New().WithErrors().WithContext(ctx)
		p.Go(func(ctx context.Context) error {
			teams, err := st.Teams().List(ctx)
			if err != nil {
				return err
			}
			result.TeamCount = len(teams)
			return nil
		})
		p.Go(func(ctx context.Context) error {
			gameweeks, err := st.Gameweeks().List(ctx)
			if err != nil {
				return err
			}
			result.CurrentGameweek = gameweek.CurrentID(gameweeks)
			result.LastFinishedGameweek = gameweek.LastFinishedID(gameweeks)
			return nil
		})
		p.Go(func(ctx context.Context) error {
			updatedAt, ok, err := st.Scores().LastUpdatedAt(ctx)
			if err != nil {
				return err
			}
			if ok {
				result.LastUpdated = &updatedAt
			}
			return nil
		})
		if err := p.Wait(); err != nil {
			return nil, err
		}
		return result, nil
	})
}

// recentForm is the mean of the three most recent recorded gameweek
// scores, finished or not.
func recentForm(scores []weeklyscore.Score) float64 {
	if len(scores) == 0 {
		return 0
	}
	recent := scores
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	total := 0
	for _, score := range recent {
		total += score.Points
	}
	return float64(total) / float64(len(recent))
}

// competitionRanks assigns 1 + the count of strictly greater totals, so
// tied teams share a rank and the next rank is skipped.
func competitionRanks(totals map[int64]int) map[int64]int {
	ranks := make(map[int64]int, len(totals))
	for entryID, total := range totals {
		rank := 1
		for other, otherTotal := range totals {
			if other != entryID && otherTotal > total {
				rank++
			}
		}
		ranks[entryID] = rank
	}
	return ranks
}

func filterTeams(teams []team.Team, entryIDs []int64) []team.Team {
	if len(entryIDs) == 0 {
		return teams
	}
	keep := make(map[int64]bool, len(entryIDs))
	for _, id := range entryIDs {
		keep[id] = true
	}
	filtered := make([]team.Team, 0, len(entryIDs))
	for _, t := range teams {
		if keep[t.EntryID] {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func lastN(ids []int, n int) []int {
	if len(ids) <= n {
		return ids
	}
	return ids[len(ids)-n:]
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return make([]string, 0)
	}
	return values
}

func metricsCacheKey(leagueCode int64, op string, entryIDs []int64) string {
	key := LeagueCachePrefix(leagueCode) + op
	if len(entryIDs) == 0 {
		return key
	}
	sorted := append([]int64(nil), entryIDs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return key + ":" + strings.Join(parts, ",")
}

func cachedResult[T any](ctx context.Context, store *cache.Store, key string, load func(context.Context) (any, error)) (T, error) {
	var zero T
	if store == nil {
		value, err := load(ctx)
		if err != nil {
			return zero, err
		}
		result, ok := value.(T)
		if !ok {
			return zero, fmt.Errorf("unexpected result type %T", value)
		}
		return result, nil
	}

	value, err := store.GetOrLoad(ctx, key, load)
	if err != nil {
		return zero, err
	}
	result, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected cached type %T for key %s", value, key)
	}
	return result, nil
}
