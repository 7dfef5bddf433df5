package squad

// Snapshot is a team's live 15-player squad at a gameweek, the input to
// differential computation.
type Snapshot struct {
	EntryID   int64
	Gameweek  int
	PlayerIDs []int64
}
