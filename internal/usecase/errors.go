package usecase

import "github.com/cockroachdb/errors"

// Sentinel errors shared between services and the transport layer, which
// maps them onto HTTP statuses.
var (
	// ErrLeagueNotCollected marks a league that has no store yet. Callers
	// get an empty result shape, not a failure page.
	ErrLeagueNotCollected = errors.New("league has not been collected yet")

	// ErrCollectionInProgress marks an overlapping refresh request for a
	// league whose pass is still running.
	ErrCollectionInProgress = errors.New("collection already in progress")

	// ErrDependencyUnavailable marks upstream outages, including an open
	// circuit breaker.
	ErrDependencyUnavailable = errors.New("upstream dependency unavailable")

	// ErrInvalidInput marks a request the caller can fix.
	ErrInvalidInput = errors.New("invalid input")
)
