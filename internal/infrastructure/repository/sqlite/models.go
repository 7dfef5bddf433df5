package sqlite

import (
	"github.com/amiablealex/vantix/internal/domain/chip"
	"github.com/amiablealex/vantix/internal/domain/differential"
	"github.com/amiablealex/vantix/internal/domain/gameweek"
	"github.com/amiablealex/vantix/internal/domain/player"
	"github.com/amiablealex/vantix/internal/domain/playerstat"
	"github.com/amiablealex/vantix/internal/domain/squad"
	"github.com/amiablealex/vantix/internal/domain/team"
	"github.com/amiablealex/vantix/internal/domain/transfer"
	"github.com/amiablealex/vantix/internal/domain/weeklyscore"
)

// Table models mirror the migration schema column for column. Domain
// conversions live next to each model so repositories stay thin.

type teamModel struct {
	EntryID     int64  `db:"entry_id"`
	TeamName    string `db:"team_name"`
	ManagerName string `db:"manager_name"`
}

func newTeamModel(t team.Team) teamModel {
	return teamModel{EntryID: t.EntryID, TeamName: t.TeamName, ManagerName: t.ManagerName}
}

func (m teamModel) toDomain() team.Team {
	return team.Team{EntryID: m.EntryID, TeamName: m.TeamName, ManagerName: m.ManagerName}
}

type gameweekModel struct {
	ID       int    `db:"id"`
	Deadline string `db:"deadline"`
	Finished int    `db:"finished"`
}

func newGameweekModel(gw gameweek.Gameweek) gameweekModel {
	m := gameweekModel{ID: gw.ID, Deadline: formatTime(gw.Deadline)}
	if gw.Finished {
		m.Finished = 1
	}
	return m
}

func (m gameweekModel) toDomain() (gameweek.Gameweek, error) {
	deadline, err := parseTime(m.Deadline)
	if err != nil {
		return gameweek.Gameweek{}, err
	}
	return gameweek.Gameweek{ID: m.ID, Deadline: deadline, Finished: m.Finished != 0}, nil
}

type gameweekPointsModel struct {
	EntryID            int64   `db:"entry_id"`
	Gameweek           int     `db:"gameweek"`
	Points             int     `db:"points"`
	TotalPoints        int     `db:"total_points"`
	Rank               int     `db:"rank"`
	Bank               float64 `db:"bank"`
	Value              float64 `db:"value"`
	EventTransfers     int     `db:"event_transfers"`
	EventTransfersCost int     `db:"event_transfers_cost"`
	UpdatedAt          string  `db:"updated_at"`
}

func newGameweekPointsModel(s weeklyscore.Score) gameweekPointsModel {
	return gameweekPointsModel{
		EntryID:            s.EntryID,
		Gameweek:           s.Gameweek,
		Points:             s.Points,
		TotalPoints:        s.TotalPoints,
		Rank:               s.Rank,
		Bank:               s.Bank,
		Value:              s.Value,
		EventTransfers:     s.EventTransfers,
		EventTransfersCost: s.EventTransfersCost,
		UpdatedAt:          formatTime(s.UpdatedAt),
	}
}

func (m gameweekPointsModel) toDomain() (weeklyscore.Score, error) {
	updatedAt, err := parseTime(m.UpdatedAt)
	if err != nil {
		return weeklyscore.Score{}, err
	}
	return weeklyscore.Score{
		EntryID:            m.EntryID,
		Gameweek:           m.Gameweek,
		Points:             m.Points,
		TotalPoints:        m.TotalPoints,
		Rank:               m.Rank,
		Bank:               m.Bank,
		Value:              m.Value,
		EventTransfers:     m.EventTransfers,
		EventTransfersCost: m.EventTransfersCost,
		UpdatedAt:          updatedAt,
	}, nil
}

type transferModel struct {
	EntryID       int64  `db:"entry_id"`
	Gameweek      int    `db:"gameweek"`
	TransferCount int    `db:"transfer_count"`
	TransfersIn   string `db:"transfers_in"`
	TransfersOut  string `db:"transfers_out"`
}

func newTransferModel(a transfer.Activity) transferModel {
	return transferModel{
		EntryID:       a.EntryID,
		Gameweek:      a.Gameweek,
		TransferCount: a.Count,
		TransfersIn:   joinNames(a.PlayersIn),
		TransfersOut:  joinNames(a.PlayersOut),
	}
}

func (m transferModel) toDomain() transfer.Activity {
	return transfer.Activity{
		EntryID:    m.EntryID,
		Gameweek:   m.Gameweek,
		Count:      m.TransferCount,
		PlayersIn:  splitNames(m.TransfersIn),
		PlayersOut: splitNames(m.TransfersOut),
	}
}

type chipUsageModel struct {
	EntryID  int64  `db:"entry_id"`
	Gameweek int    `db:"gameweek"`
	ChipName string `db:"chip_name"`
}

func newChipUsageModel(u chip.Usage) chipUsageModel {
	return chipUsageModel{EntryID: u.EntryID, Gameweek: u.Gameweek, ChipName: u.Name}
}

func (m chipUsageModel) toDomain() chip.Usage {
	return chip.Usage{EntryID: m.EntryID, Gameweek: m.Gameweek, Name: m.ChipName}
}

type playerStatModel struct {
	EntryID          int64  `db:"entry_id"`
	TotalGoals       int    `db:"total_goals"`
	TotalAssists     int    `db:"total_assists"`
	TotalCleanSheets int    `db:"total_clean_sheets"`
	UpdatedAt        string `db:"updated_at"`
}

func newPlayerStatModel(s playerstat.Stat, updatedAt string) playerStatModel {
	return playerStatModel{
		EntryID:          s.EntryID,
		TotalGoals:       s.TotalGoals,
		TotalAssists:     s.TotalAssists,
		TotalCleanSheets: s.TotalCleanSheets,
		UpdatedAt:        updatedAt,
	}
}

func (m playerStatModel) toDomain() playerstat.Stat {
	return playerstat.Stat{
		EntryID:          m.EntryID,
		TotalGoals:       m.TotalGoals,
		TotalAssists:     m.TotalAssists,
		TotalCleanSheets: m.TotalCleanSheets,
	}
}

type currentSquadModel struct {
	EntryID   int64  `db:"entry_id"`
	Gameweek  int    `db:"gameweek"`
	PlayerIDs string `db:"player_ids"`
}

func newCurrentSquadModel(s squad.Snapshot) currentSquadModel {
	return currentSquadModel{EntryID: s.EntryID, Gameweek: s.Gameweek, PlayerIDs: joinIDs(s.PlayerIDs)}
}

func (m currentSquadModel) toDomain() (squad.Snapshot, error) {
	ids, err := splitIDs(m.PlayerIDs)
	if err != nil {
		return squad.Snapshot{}, err
	}
	return squad.Snapshot{EntryID: m.EntryID, Gameweek: m.Gameweek, PlayerIDs: ids}, nil
}

type differentialModel struct {
	EntryID             int64  `db:"entry_id"`
	Gameweek            int    `db:"gameweek"`
	DifferentialPlayers string `db:"differential_players"`
	DifferentialCount   int    `db:"differential_count"`
}

func newDifferentialModel(d differential.Differential) differentialModel {
	return differentialModel{
		EntryID:             d.EntryID,
		Gameweek:            d.Gameweek,
		DifferentialPlayers: joinNames(d.Players),
		DifferentialCount:   d.Count,
	}
}

func (m differentialModel) toDomain() differential.Differential {
	return differential.Differential{
		EntryID:  m.EntryID,
		Gameweek: m.Gameweek,
		Players:  splitNames(m.DifferentialPlayers),
		Count:    m.DifferentialCount,
	}
}

type playerModel struct {
	PlayerID int64  `db:"player_id"`
	WebName  string `db:"web_name"`
	FullName string `db:"full_name"`
}

func newPlayerModel(p player.Player) playerModel {
	return playerModel{PlayerID: p.ID, WebName: p.WebName, FullName: p.FullName}
}
