package transfer

import "context"

type Repository interface {
	Upsert(ctx context.Context, activity Activity) error
	ListByGameweek(ctx context.Context, gw int, entryIDs []int64) ([]Activity, error)
	List(ctx context.Context, entryIDs []int64) ([]Activity, error)
}
