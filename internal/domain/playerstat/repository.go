package playerstat

import "context"

type Repository interface {
	Upsert(ctx context.Context, stat Stat) error
	List(ctx context.Context, entryIDs []int64) ([]Stat, error)
}
