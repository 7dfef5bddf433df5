package differential

// Differential lists the players owned by exactly one tracked team in a
// gameweek snapshot. Recomputed only after every team's squad for the pass
// has been collected; teams whose squad fetch failed get no row.
type Differential struct {
	EntryID  int64
	Gameweek int
	Players  []string
	Count    int
}
