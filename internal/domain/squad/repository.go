package squad

import "context"

type Repository interface {
	Upsert(ctx context.Context, snapshot Snapshot) error
	ListByGameweek(ctx context.Context, gw int, entryIDs []int64) ([]Snapshot, error)
}
