package player

// Player is the global id-to-name reference row from upstream bootstrap
// data, used to resolve player ids to display names everywhere.
type Player struct {
	ID       int64
	WebName  string
	FullName string
}
