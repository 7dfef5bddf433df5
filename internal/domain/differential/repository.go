package differential

import "context"

type Repository interface {
	Upsert(ctx context.Context, diff Differential) error
	ListByGameweek(ctx context.Context, gw int, entryIDs []int64) ([]Differential, error)
	LatestGameweek(ctx context.Context) (int, bool, error)
}
