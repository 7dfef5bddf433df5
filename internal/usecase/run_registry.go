package usecase

import "sync"

// RunRegistry tracks which leagues have a collection pass in flight so
// overlapping refresh triggers are declined instead of queued.
type RunRegistry struct {
	mu      sync.Mutex
	running map[int64]bool
}

func NewRunRegistry() *RunRegistry {
	return &RunRegistry{running: make(map[int64]bool)}
}

// TryAcquire claims the run slot for a league. It reports false when a
// pass is already running.
func (r *RunRegistry) TryAcquire(leagueCode int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running[leagueCode] {
		return false
	}
	r.running[leagueCode] = true
	return true
}

// Release frees the run slot after a pass finishes, whatever its outcome.
func (r *RunRegistry) Release(leagueCode int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.running, leagueCode)
}

// IsRunning reports whether a league has a pass in flight.
func (r *RunRegistry) IsRunning(leagueCode int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.running[leagueCode]
}
