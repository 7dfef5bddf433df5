package transfer

// Activity aggregates every transfer a team made in one gameweek. PlayersIn
// and PlayersOut are ordered display names resolved at collection time.
type Activity struct {
	EntryID    int64
	Gameweek   int
	Count      int
	PlayersIn  []string
	PlayersOut []string
}
