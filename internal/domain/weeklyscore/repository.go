package weeklyscore

import (
	"context"
	"time"
)

type Repository interface {
	Upsert(ctx context.Context, score Score) error
	// List returns scores ordered by (gameweek, entry_id). An empty
	// entryIDs slice means no filter.
	List(ctx context.Context, entryIDs []int64) ([]Score, error)
	LastUpdatedAt(ctx context.Context) (time.Time, bool, error)
}
