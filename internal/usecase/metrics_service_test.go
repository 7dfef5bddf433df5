package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiablealex/vantix/internal/domain/chip"
	"github.com/amiablealex/vantix/internal/domain/differential"
	"github.com/amiablealex/vantix/internal/domain/gameweek"
	"github.com/amiablealex/vantix/internal/domain/playerstat"
	"github.com/amiablealex/vantix/internal/domain/team"
	"github.com/amiablealex/vantix/internal/domain/transfer"
	"github.com/amiablealex/vantix/internal/domain/weeklyscore"
	"github.com/amiablealex/vantix/internal/platform/logging"
)

func newTestMetrics(provider StoreProvider) *MetricsService {
	return NewMetricsService(MetricsConfig{
		Stores: provider,
		Logger: logging.NewNop(),
	})
}

// seedThreeTeams creates Alpha/Beta/Gamma with empty schedules; tests add
// gameweeks and scores as needed.
func seedThreeTeams(provider *memProvider, leagueCode int64) *memData {
	data := provider.store(leagueCode).data
	data.teams[11] = team.Team{EntryID: 11, TeamName: "Alpha FC", ManagerName: "Alice"}
	data.teams[22] = team.Team{EntryID: 22, TeamName: "Beta United", ManagerName: "Bob"}
	data.teams[33] = team.Team{EntryID: 33, TeamName: "Gamma Town", ManagerName: "Grace"}
	return data
}

func addGameweek(data *memData, id int, finished bool) {
	data.gameweeks[id] = gameweek.Gameweek{
		ID:       id,
		Deadline: time.Date(2025, 8, 8, 17, 30, 0, 0, time.UTC).AddDate(0, 0, 7*(id-1)),
		Finished: finished,
	}
}

func addScore(data *memData, entryID int64, gw, points, total int) {
	data.scores[entryGW{entryID, gw}] = weeklyscore.Score{
		EntryID:     entryID,
		Gameweek:    gw,
		Points:      points,
		TotalPoints: total,
		UpdatedAt:   time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func playerStatFixture(entryID int64, goals, sheets int) playerstat.Stat {
	return playerstat.Stat{EntryID: entryID, TotalGoals: goals, TotalCleanSheets: sheets}
}

func TestMetricsNotCollectedLeague(t *testing.T) {
	t.Parallel()

	metrics := newTestMetrics(newMemProvider())

	_, err := metrics.CumulativePoints(context.Background(), 999, nil)
	assert.ErrorIs(t, err, ErrLeagueNotCollected)

	_, err = metrics.Overview(context.Background(), 999)
	assert.ErrorIs(t, err, ErrLeagueNotCollected)
}

func TestCumulativePointsExcludesUnfinishedGameweek(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	addGameweek(data, 1, true)
	addGameweek(data, 2, true)
	addGameweek(data, 3, false)
	addScore(data, 11, 1, 60, 60)
	addScore(data, 11, 2, 40, 100)
	addScore(data, 11, 3, 80, 180)

	result, err := newTestMetrics(provider).CumulativePoints(context.Background(), testLeague, []int64{11})
	require.NoError(t, err)

	require.Len(t, result.Teams, 1)
	assert.Equal(t, "Alpha FC", result.Teams[0].TeamName)
	assert.Equal(t, []ChartPoint{{X: 1, Y: 60}, {X: 2, Y: 100}}, result.Teams[0].Data)
}

func TestLeaguePositionsSharedRanks(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	addGameweek(data, 1, true)
	addScore(data, 11, 1, 50, 50)
	addScore(data, 22, 1, 50, 50)
	addScore(data, 33, 1, 40, 40)
	data.chips[chipKey{11, 1, "wildcard"}] = chip.Usage{EntryID: 11, Gameweek: 1, Name: "wildcard"}

	result, err := newTestMetrics(provider).LeaguePositions(context.Background(), testLeague, nil)
	require.NoError(t, err)

	require.Len(t, result.Teams, 3)
	byName := make(map[string]PositionSeries, 3)
	for _, series := range result.Teams {
		byName[series.TeamName] = series
	}

	assert.Equal(t, []ChartPoint{{X: 1, Y: 1}}, byName["Alpha FC"].Data)
	assert.Equal(t, []ChartPoint{{X: 1, Y: 1}}, byName["Beta United"].Data)
	assert.Equal(t, []ChartPoint{{X: 1, Y: 3}}, byName["Gamma Town"].Data)

	assert.Equal(t, []ChipMarker{{Gameweek: 1, Name: "wildcard"}}, byName["Alpha FC"].Chips)
	assert.Empty(t, byName["Beta United"].Chips)
	assert.NotNil(t, byName["Beta United"].Chips)
}

func TestLeaguePositionsRankBySummedPoints(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	addGameweek(data, 1, true)
	addGameweek(data, 2, true)

	// Alpha takes an 8-point transfer hit in gw2, so its upstream running
	// total (92) trails Beta's (95) even though its gameweek points sum to
	// 100. Gamma matches Alpha's sum with a diverging upstream total.
	addScore(data, 11, 1, 50, 50)
	addScore(data, 11, 2, 50, 92)
	addScore(data, 22, 1, 48, 48)
	addScore(data, 22, 2, 47, 95)
	addScore(data, 33, 1, 50, 50)
	addScore(data, 33, 2, 50, 97)

	result, err := newTestMetrics(provider).LeaguePositions(context.Background(), testLeague, nil)
	require.NoError(t, err)

	require.Len(t, result.Teams, 3)
	byName := make(map[string]PositionSeries, 3)
	for _, series := range result.Teams {
		byName[series.TeamName] = series
	}

	// Ranks follow the summed gameweek points, matching the cumulative
	// points view: Alpha and Gamma share first on 100, Beta is third on 95.
	assert.Equal(t, []ChartPoint{{X: 1, Y: 1}, {X: 2, Y: 1}}, byName["Alpha FC"].Data)
	assert.Equal(t, []ChartPoint{{X: 1, Y: 3}, {X: 2, Y: 3}}, byName["Beta United"].Data)
	assert.Equal(t, []ChartPoint{{X: 1, Y: 1}, {X: 2, Y: 1}}, byName["Gamma Town"].Data)
}

func TestSubsetFilterRecomputesRanks(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	addGameweek(data, 1, true)
	addScore(data, 11, 1, 50, 50)
	addScore(data, 22, 1, 60, 60)
	addScore(data, 33, 1, 40, 40)

	result, err := newTestMetrics(provider).LeaguePositions(context.Background(), testLeague, []int64{11, 33})
	require.NoError(t, err)

	require.Len(t, result.Teams, 2)
	byName := make(map[string]PositionSeries, 2)
	for _, series := range result.Teams {
		byName[series.TeamName] = series
	}

	// Beta United is out of the subset, so Alpha FC is rank 1 here even
	// though it is rank 2 league-wide.
	assert.Equal(t, []ChartPoint{{X: 1, Y: 1}}, byName["Alpha FC"].Data)
	assert.Equal(t, []ChartPoint{{X: 1, Y: 2}}, byName["Gamma Town"].Data)
}

func TestPointsDistributionBoundaries(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	for gw := 1; gw <= 5; gw++ {
		addGameweek(data, gw, true)
	}
	addScore(data, 11, 1, 0, 0)
	addScore(data, 11, 2, 20, 20)
	addScore(data, 11, 3, 99, 119)
	addScore(data, 11, 4, 100, 219)
	addScore(data, 11, 5, 200, 419)

	result, err := newTestMetrics(provider).PointsDistribution(context.Background(), testLeague, nil)
	require.NoError(t, err)

	counts := make(map[string]int, len(result.Buckets))
	for _, bucket := range result.Buckets {
		counts[bucket.Range] = bucket.Count
	}

	assert.Equal(t, 1, counts["0-20"])
	assert.Equal(t, 1, counts["20-40"])
	assert.Equal(t, 0, counts["40-60"])
	assert.Equal(t, 1, counts["80-100"])
	assert.Equal(t, 2, counts["100-150"])
}

func TestHeadToHeadSharedMaxIsDraw(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	addGameweek(data, 1, true)
	addGameweek(data, 2, true)
	addScore(data, 11, 1, 50, 50)
	addScore(data, 22, 1, 50, 50)
	addScore(data, 33, 1, 40, 40)
	addScore(data, 11, 2, 60, 110)
	addScore(data, 22, 2, 40, 90)
	addScore(data, 33, 2, 40, 80)

	result, err := newTestMetrics(provider).HeadToHead(context.Background(), testLeague, nil)
	require.NoError(t, err)

	require.Len(t, result.Teams, 3)
	assert.Equal(t, HeadToHeadRow{TeamName: "Alpha FC", Wins: 1, Draws: 1, Losses: 0}, result.Teams[0])
	assert.Equal(t, HeadToHeadRow{TeamName: "Beta United", Wins: 0, Draws: 1, Losses: 1}, result.Teams[1])
	assert.Equal(t, HeadToHeadRow{TeamName: "Gamma Town", Wins: 0, Draws: 0, Losses: 2}, result.Teams[2])
}

func TestHeadToHeadAllNegativeGameweek(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	addGameweek(data, 1, true)

	// Heavy transfer hits can push every score below zero; the least bad
	// week still wins.
	addScore(data, 11, 1, -2, -2)
	addScore(data, 22, 1, -4, -4)
	addScore(data, 33, 1, -8, -8)

	result, err := newTestMetrics(provider).HeadToHead(context.Background(), testLeague, nil)
	require.NoError(t, err)

	require.Len(t, result.Teams, 3)
	assert.Equal(t, HeadToHeadRow{TeamName: "Alpha FC", Wins: 1, Draws: 0, Losses: 0}, result.Teams[0])
	assert.Equal(t, HeadToHeadRow{TeamName: "Beta United", Wins: 0, Draws: 0, Losses: 1}, result.Teams[1])
	assert.Equal(t, HeadToHeadRow{TeamName: "Gamma Town", Wins: 0, Draws: 0, Losses: 1}, result.Teams[2])
}

func TestBiggestMoversWindow(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	for gw := 1; gw <= 6; gw++ {
		addGameweek(data, gw, true)
	}
	// Summed points give ranks Alpha 1, Beta 2, Gamma 3 at gw1 and
	// Gamma 1, Beta 2, Alpha 3 at gw6. The upstream running totals say the
	// opposite at gw6; they must not drive the ranking.
	addScore(data, 11, 1, 60, 60)
	addScore(data, 22, 1, 50, 50)
	addScore(data, 33, 1, 40, 40)
	addScore(data, 11, 6, 10, 300)
	addScore(data, 22, 6, 30, 250)
	addScore(data, 33, 6, 80, 200)

	result, err := newTestMetrics(provider).BiggestMovers(context.Background(), testLeague, nil)
	require.NoError(t, err)

	require.Len(t, result.Climbers, 1)
	assert.Equal(t, MoverRow{TeamName: "Gamma Town", PastRank: 3, CurrentRank: 1, Change: 2}, result.Climbers[0])
	require.Len(t, result.Fallers, 1)
	assert.Equal(t, MoverRow{TeamName: "Alpha FC", PastRank: 1, CurrentRank: 3, Change: -2}, result.Fallers[0])
}

func TestBiggestMoversNeedsHistory(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	for gw := 1; gw <= 3; gw++ {
		addGameweek(data, gw, true)
		addScore(data, 11, gw, 50, 50*gw)
	}

	result, err := newTestMetrics(provider).BiggestMovers(context.Background(), testLeague, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Climbers)
	assert.Empty(t, result.Fallers)
	assert.NotNil(t, result.Climbers)
}

func TestPodiumTieBreakAndForm(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	for gw := 1; gw <= 3; gw++ {
		addGameweek(data, gw, true)
	}
	addScore(data, 11, 1, 50, 50)
	addScore(data, 11, 2, 50, 100)
	addScore(data, 11, 3, 50, 150)
	addScore(data, 22, 1, 40, 40)
	addScore(data, 22, 2, 60, 100)
	addScore(data, 22, 3, 50, 150)
	addScore(data, 33, 1, 30, 30)
	addScore(data, 33, 2, 30, 60)
	addScore(data, 33, 3, 30, 90)

	result, err := newTestMetrics(provider).Podium(context.Background(), testLeague, nil)
	require.NoError(t, err)

	require.Len(t, result.Podium, 3)
	assert.Equal(t, "Alpha FC", result.Podium[0].TeamName)
	assert.Equal(t, "Beta United", result.Podium[1].TeamName)
	assert.Equal(t, 0, result.Podium[1].GapToLeader)
	assert.Equal(t, "Gamma Town", result.Podium[2].TeamName)
	assert.Equal(t, 60, result.Podium[2].GapToLeader)
	assert.InDelta(t, 50.0, result.Podium[0].Form, 0.0001)
	assert.InDelta(t, 30.0, result.Podium[2].Form, 0.0001)
}

func TestRecentTransfersFillsQuietTeams(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	addGameweek(data, 1, true)
	addGameweek(data, 2, false)
	data.transfers[entryGW{11, 2}] = transfer.Activity{
		EntryID:    11,
		Gameweek:   2,
		Count:      1,
		PlayersIn:  []string{"B"},
		PlayersOut: []string{"D"},
	}

	result, err := newTestMetrics(provider).RecentTransfers(context.Background(), testLeague, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Gameweek)
	require.Len(t, result.Teams, 3)
	assert.Equal(t, 1, result.Teams[0].TransferCount)
	assert.Equal(t, []string{"B"}, result.Teams[0].PlayersIn)
	assert.Equal(t, 0, result.Teams[1].TransferCount)
	assert.NotNil(t, result.Teams[1].PlayersIn)
	assert.Empty(t, result.Teams[1].PlayersIn)
}

func TestStatsHighlights(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	addGameweek(data, 1, true)
	addGameweek(data, 2, false)
	addScore(data, 11, 1, 80, 80)
	addScore(data, 22, 1, 60, 60)
	addScore(data, 33, 1, 70, 70)
	addScore(data, 33, 2, 95, 165)
	data.playerStats[11] = playerStatFixture(11, 20, 5)
	data.playerStats[22] = playerStatFixture(22, 12, 9)
	data.playerStats[33] = playerStatFixture(33, 20, 2)

	result, err := newTestMetrics(provider).Stats(context.Background(), testLeague, nil)
	require.NoError(t, err)

	// Alpha and Gamma tie on goals; the name-ordered first team holds it.
	assert.Equal(t, StatHighlight{TeamName: "Alpha FC", Value: 20}, result.MostGoals)
	assert.Equal(t, StatHighlight{TeamName: "Beta United", Value: 9}, result.MostCleanSheets)
	// Gamma's 95 sits in the unfinished gameweek and stays out.
	assert.Equal(t, StatHighlight{TeamName: "Alpha FC", Value: 80}, result.HighestGameweekScore)
	assert.Equal(t, StatHighlight{TeamName: "Alpha FC", Value: 80}, result.CurrentLeader)
}

func TestDifferentialsLatestSnapshot(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	data.differentials[entryGW{11, 2}] = differential.Differential{
		EntryID: 11, Gameweek: 2, Players: []string{"B", "C"}, Count: 2,
	}
	data.differentials[entryGW{22, 2}] = differential.Differential{
		EntryID: 22, Gameweek: 2, Players: []string{"D"}, Count: 1,
	}
	data.differentials[entryGW{11, 1}] = differential.Differential{
		EntryID: 11, Gameweek: 1, Players: []string{"B"}, Count: 1,
	}

	result, err := newTestMetrics(provider).Differentials(context.Background(), testLeague, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Gameweek)
	require.Len(t, result.Teams, 2)
	assert.Equal(t, "Alpha FC", result.Teams[0].TeamName)
	assert.Equal(t, []string{"B", "C"}, result.Teams[0].Players)
	assert.Equal(t, 1, result.Teams[1].DifferentialCount)
}

func TestFormChartUsesLastFiveFinished(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	for gw := 1; gw <= 7; gw++ {
		addGameweek(data, gw, gw <= 6)
		addScore(data, 11, gw, 10*gw, 0)
	}

	result, err := newTestMetrics(provider).FormChart(context.Background(), testLeague, []int64{11})
	require.NoError(t, err)

	require.Len(t, result.Teams, 1)
	assert.Equal(t, []ChartPoint{
		{X: 2, Y: 20}, {X: 3, Y: 30}, {X: 4, Y: 40}, {X: 5, Y: 50}, {X: 6, Y: 60},
	}, result.Teams[0].Data)
}

func TestTeamComparisonTotals(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	addGameweek(data, 1, true)
	addGameweek(data, 2, true)
	addScore(data, 11, 1, 40, 40)
	addScore(data, 11, 2, 60, 100)
	data.transfers[entryGW{11, 2}] = transfer.Activity{EntryID: 11, Gameweek: 2, Count: 3}
	data.chips[chipKey{11, 1, "wildcard"}] = chip.Usage{EntryID: 11, Gameweek: 1, Name: "wildcard"}

	result, err := newTestMetrics(provider).TeamComparison(context.Background(), testLeague, []int64{11})
	require.NoError(t, err)

	require.Len(t, result.Teams, 1)
	row := result.Teams[0]
	assert.Equal(t, 100, row.TotalPoints)
	assert.InDelta(t, 50.0, row.AveragePoints, 0.0001)
	assert.Equal(t, 60, row.HighestScore)
	assert.Equal(t, 3, row.TotalTransfers)
	assert.Equal(t, 1, row.ChipsUsed)
}

func TestWeeklyPerformance(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	addGameweek(data, 1, true)
	addScore(data, 11, 1, 60, 60)
	addScore(data, 22, 1, 40, 40)
	addScore(data, 33, 1, 50, 50)

	result, err := newTestMetrics(provider).WeeklyPerformance(context.Background(), testLeague, nil)
	require.NoError(t, err)

	require.Len(t, result.Weeks, 1)
	week := result.Weeks[0]
	assert.Equal(t, 1, week.Gameweek)
	assert.InDelta(t, 50.0, week.Average, 0.0001)
	assert.Equal(t, WeeklyExtreme{TeamName: "Alpha FC", Points: 60}, week.Highest)
	assert.Equal(t, WeeklyExtreme{TeamName: "Beta United", Points: 40}, week.Lowest)
}

func TestOverview(t *testing.T) {
	t.Parallel()

	provider := newMemProvider()
	data := seedThreeTeams(provider, testLeague)
	addGameweek(data, 1, true)
	addGameweek(data, 2, false)
	addScore(data, 11, 1, 60, 60)

	result, err := newTestMetrics(provider).Overview(context.Background(), testLeague)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TeamCount)
	assert.Equal(t, 2, result.CurrentGameweek)
	assert.Equal(t, 1, result.LastFinishedGameweek)
	require.NotNil(t, result.LastUpdated)
	assert.Equal(t, time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC), *result.LastUpdated)
}

// Two evenly matched teams share the top rank with a zero gap.
func TestTwoTeamLeagueEndToEnd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	upstream := newStubUpstream()
	upstream.bootstrap = UpstreamBootstrap{
		Gameweeks: []UpstreamGameweek{
			{ID: 1, Deadline: time.Date(2025, 8, 15, 17, 30, 0, 0, time.UTC), Finished: true},
			{ID: 2, Deadline: time.Date(2025, 8, 22, 17, 30, 0, 0, time.UTC), Finished: true},
			{ID: 3, Deadline: time.Date(2025, 8, 29, 17, 30, 0, 0, time.UTC), Finished: true},
		},
		Players: []UpstreamPlayer{
			{ID: 1, WebName: "A"}, {ID: 2, WebName: "B"}, {ID: 3, WebName: "C"},
		},
	}
	upstream.teamsByLeague[testLeague] = []UpstreamTeam{
		{EntryID: 1, TeamName: "Team One", ManagerName: "One"},
		{EntryID: 2, TeamName: "Team Two", ManagerName: "Two"},
	}
	for _, entryID := range []int64{1, 2} {
		upstream.histories[entryID] = UpstreamHistory{
			Results: []UpstreamGameweekResult{
				{Gameweek: 1, Points: 50, TotalPoints: 50},
				{Gameweek: 2, Points: 50, TotalPoints: 100},
				{Gameweek: 3, Points: 50, TotalPoints: 150},
			},
		}
	}
	upstream.picks[1] = []int64{1, 2}
	upstream.picks[2] = []int64{1, 3}

	provider := newMemProvider()
	collector := NewCollectorService(CollectorConfig{
		Upstream: upstream,
		Stores:   provider,
		Logger:   logging.NewNop(),
		Leagues:  []int64{testLeague},
		Now:      fixedClock(),
	})
	require.Equal(t, CollectStatusSuccess, collector.CollectLeague(ctx, testLeague).Status)

	metrics := newTestMetrics(provider)

	podium, err := metrics.Podium(ctx, testLeague, nil)
	require.NoError(t, err)
	require.Len(t, podium.Podium, 2)
	assert.Equal(t, 150, podium.Podium[0].TotalPoints)
	assert.Equal(t, 0, podium.Podium[1].GapToLeader)

	positions, err := metrics.LeaguePositions(ctx, testLeague, nil)
	require.NoError(t, err)
	for _, series := range positions.Teams {
		assert.Equal(t, []ChartPoint{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}}, series.Data)
	}

	diffs, err := metrics.Differentials(ctx, testLeague, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, diffs.Gameweek)
	require.Len(t, diffs.Teams, 2)
	for _, row := range diffs.Teams {
		assert.Equal(t, 1, row.DifferentialCount)
	}
}
