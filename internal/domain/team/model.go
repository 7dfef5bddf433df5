package team

import "fmt"

// Team is one fantasy entry inside a tracked league, keyed by the stable
// external entry id. Teams are refreshed on every collection pass and never
// deleted; a team that leaves the league simply stops receiving new rows.
type Team struct {
	EntryID     int64
	TeamName    string
	ManagerName string
}

func (t Team) Validate() error {
	if t.EntryID <= 0 {
		return fmt.Errorf("team entry id is required")
	}
	if t.TeamName == "" {
		return fmt.Errorf("team name is required")
	}
	if t.ManagerName == "" {
		return fmt.Errorf("team manager name is required")
	}

	return nil
}
