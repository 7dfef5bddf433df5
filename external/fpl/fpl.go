package fpl

// Wire models for the upstream fantasy API. Only the fields the collector
// consumes are declared; everything else in the payloads is ignored.

// Bootstrap is the season-wide reference payload: every player in the game
// plus the full gameweek calendar.
type Bootstrap struct {
	Events   []Event   `json:"events"`
	Elements []Element `json:"elements"`
}

// Event is one gameweek in the season calendar.
type Event struct {
	ID           int    `json:"id"`
	DeadlineTime string `json:"deadline_time"`
	Finished     bool   `json:"finished"`
}

// Element is one player in the global pool.
type Element struct {
	ID          int64  `json:"id"`
	WebName     string `json:"web_name"`
	FirstName   string `json:"first_name"`
	SecondName  string `json:"second_name"`
	GoalsScored int    `json:"goals_scored"`
	Assists     int    `json:"assists"`
	CleanSheets int    `json:"clean_sheets"`
}

type standingsEnvelope struct {
	Standings StandingsPage `json:"standings"`
}

// StandingsPage is one page of a classic league's membership.
type StandingsPage struct {
	Results []StandingEntry `json:"results"`
	HasNext bool            `json:"has_next"`
}

// StandingEntry identifies one team in the league roster.
type StandingEntry struct {
	Entry      int64  `json:"entry"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
}

// History is a team's season so far: one row per played gameweek plus any
// chips used.
type History struct {
	Current []HistoryGameweek `json:"current"`
	Chips   []ChipPlay        `json:"chips"`
}

// HistoryGameweek reports a team's result for one gameweek. Bank and Value
// arrive in tenths of the display unit.
type HistoryGameweek struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	TotalPoints        int `json:"total_points"`
	Rank               int `json:"rank"`
	Bank               int `json:"bank"`
	Value              int `json:"value"`
	EventTransfers     int `json:"event_transfers"`
	EventTransfersCost int `json:"event_transfers_cost"`
}

type ChipPlay struct {
	Name  string `json:"name"`
	Event int    `json:"event"`
}

// Transfer is a single player swap made by a team.
type Transfer struct {
	ElementIn  int64 `json:"element_in"`
	ElementOut int64 `json:"element_out"`
	Event      int   `json:"event"`
}

type picksEnvelope struct {
	Picks []Pick `json:"picks"`
}

// Pick is one squad slot in a team's gameweek selection.
type Pick struct {
	Element int64 `json:"element"`
}
