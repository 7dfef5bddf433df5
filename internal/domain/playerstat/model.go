package playerstat

// Stat is the per-team aggregate of current-squad player attributes,
// recomputed in full on every collection pass.
type Stat struct {
	EntryID          int64
	TotalGoals       int
	TotalAssists     int
	TotalCleanSheets int
}
