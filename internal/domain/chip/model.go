package chip

// Usage records a chip played by a team in a gameweek. A chip, once used,
// is an immutable historical fact: rows are inserted once and never
// updated or removed.
type Usage struct {
	EntryID  int64
	Gameweek int
	Name     string
}
