package usecase

import "time"

// Chart and card payloads served by the metrics layer. Collections are
// always concrete slices so JSON renders [] rather than null.

// ChartPoint is one (gameweek, value) sample.
type ChartPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type TeamSeries struct {
	TeamName string       `json:"team_name"`
	Data     []ChartPoint `json:"data"`
}

type ChartResult struct {
	Teams []TeamSeries `json:"teams"`
}

type ChipMarker struct {
	Gameweek int    `json:"gameweek"`
	Name     string `json:"name"`
}

type PositionSeries struct {
	TeamName string       `json:"team_name"`
	Data     []ChartPoint `json:"data"`
	Chips    []ChipMarker `json:"chips"`
}

type PositionsResult struct {
	Teams []PositionSeries `json:"teams"`
}

type TeamTransfers struct {
	TeamName      string   `json:"team_name"`
	TransferCount int      `json:"transfer_count"`
	PlayersIn     []string `json:"players_in"`
	PlayersOut    []string `json:"players_out"`
}

type TransfersResult struct {
	Gameweek int             `json:"gameweek"`
	Teams    []TeamTransfers `json:"teams"`
}

// StatHighlight is one leaderboard card: the holder and the value.
type StatHighlight struct {
	TeamName string `json:"team_name"`
	Value    int    `json:"value"`
}

type StatsResult struct {
	MostGoals            StatHighlight `json:"most_goals"`
	MostCleanSheets      StatHighlight `json:"most_clean_sheets"`
	HighestGameweekScore StatHighlight `json:"highest_gameweek_score"`
	CurrentLeader        StatHighlight `json:"current_leader"`
}

type HistogramBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type DistributionResult struct {
	Buckets []HistogramBucket `json:"buckets"`
}

type TeamComparisonRow struct {
	TeamName       string  `json:"team_name"`
	TotalPoints    int     `json:"total_points"`
	AveragePoints  float64 `json:"average_points"`
	HighestScore   int     `json:"highest_score"`
	TotalTransfers int     `json:"total_transfers"`
	ChipsUsed      int     `json:"chips_used"`
}

type ComparisonResult struct {
	Teams []TeamComparisonRow `json:"teams"`
}

type MoverRow struct {
	TeamName    string `json:"team_name"`
	PastRank    int    `json:"past_rank"`
	CurrentRank int    `json:"current_rank"`
	Change      int    `json:"change"`
}

type MoversResult struct {
	Climbers []MoverRow `json:"climbers"`
	Fallers  []MoverRow `json:"fallers"`
}

type WeeklyExtreme struct {
	TeamName string `json:"team_name"`
	Points   int    `json:"points"`
}

type WeeklyPerformanceRow struct {
	Gameweek int           `json:"gameweek"`
	Average  float64       `json:"average"`
	Highest  WeeklyExtreme `json:"highest"`
	Lowest   WeeklyExtreme `json:"lowest"`
}

type WeeklyPerformanceResult struct {
	Weeks []WeeklyPerformanceRow `json:"weeks"`
}

type HeadToHeadRow struct {
	TeamName string `json:"team_name"`
	Wins     int    `json:"wins"`
	Draws    int    `json:"draws"`
	Losses   int    `json:"losses"`
}

type HeadToHeadResult struct {
	Teams []HeadToHeadRow `json:"teams"`
}

type TeamDifferentials struct {
	TeamName          string   `json:"team_name"`
	DifferentialCount int      `json:"differential_count"`
	Players           []string `json:"players"`
}

type DifferentialsResult struct {
	Gameweek int                 `json:"gameweek"`
	Teams    []TeamDifferentials `json:"teams"`
}

type PodiumRow struct {
	TeamName    string  `json:"team_name"`
	TotalPoints int     `json:"total_points"`
	GapToLeader int     `json:"gap_to_leader"`
	Form        float64 `json:"form"`
}

type PodiumResult struct {
	Podium []PodiumRow `json:"podium"`
}

type OverviewResult struct {
	TeamCount            int        `json:"team_count"`
	CurrentGameweek      int        `json:"current_gameweek"`
	LastFinishedGameweek int        `json:"last_finished_gameweek"`
	LastUpdated          *time.Time `json:"last_updated"`
}
