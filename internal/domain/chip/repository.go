package chip

import "context"

type Repository interface {
	// Record inserts the usage if absent and is a no-op otherwise.
	Record(ctx context.Context, usage Usage) error
	List(ctx context.Context, entryIDs []int64) ([]Usage, error)
}
