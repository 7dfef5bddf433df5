package gameweek

import "time"

// Gameweek is one scoring round of the season. Finished is monotonic: once
// upstream marks a gameweek finished it never reverts.
type Gameweek struct {
	ID       int
	Deadline time.Time
	Finished bool
}

// CurrentID resolves the live gameweek: the first unfinished one, or the
// last gameweek when the season is over. Zero when no gameweeks are stored.
func CurrentID(gameweeks []Gameweek) int {
	if len(gameweeks) == 0 {
		return 0
	}

	for _, gw := range gameweeks {
		if !gw.Finished {
			return gw.ID
		}
	}

	return gameweeks[len(gameweeks)-1].ID
}

// LastFinishedID is the highest finished gameweek id, the cutoff for
// cumulative and ranking views. Zero when nothing has finished yet.
func LastFinishedID(gameweeks []Gameweek) int {
	last := 0
	for _, gw := range gameweeks {
		if gw.Finished && gw.ID > last {
			last = gw.ID
		}
	}

	return last
}
