package weeklyscore

import "time"

// Score is one team's result for one gameweek as reported upstream.
// Bank and Value are already converted from upstream tenths to real money.
// Unique on (EntryID, Gameweek); re-collection overwrites in place.
type Score struct {
	EntryID            int64
	Gameweek           int
	Points             int
	TotalPoints        int
	Rank               int
	Bank               float64
	Value              float64
	EventTransfers     int
	EventTransfersCost int
	UpdatedAt          time.Time
}
