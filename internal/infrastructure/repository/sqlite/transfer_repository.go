package sqlite

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/amiablealex/vantix/internal/domain/transfer"
	"github.com/amiablealex/vantix/internal/platform/querybuilder"
)

const transferUpsertSuffix = `ON CONFLICT (entry_id, gameweek) DO UPDATE SET
	transfer_count = excluded.transfer_count,
	transfers_in = excluded.transfers_in,
	transfers_out = excluded.transfers_out`

var transferColumns = []string{"entry_id", "gameweek", "transfer_count", "transfers_in", "transfers_out"}

type TransferRepository struct {
	db sqlx.ExtContext
}

var _ transfer.Repository = (*TransferRepository)(nil)

func (r *TransferRepository) Upsert(ctx context.Context, activity transfer.Activity) error {
	query, args, err := querybuilder.InsertModel("transfers", newTransferModel(activity), transferUpsertSuffix)
	if err != nil {
		return errors.Wrap(err, "build transfer upsert")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "upsert transfers entry=%d gw=%d", activity.EntryID, activity.Gameweek)
	}

	return nil
}

func (r *TransferRepository) ListByGameweek(ctx context.Context, gw int, entryIDs []int64) ([]transfer.Activity, error) {
	return r.list(ctx, []querybuilder.Condition{querybuilder.Eq("gameweek", gw)}, entryIDs)
}

func (r *TransferRepository) List(ctx context.Context, entryIDs []int64) ([]transfer.Activity, error) {
	return r.list(ctx, nil, entryIDs)
}

func (r *TransferRepository) list(ctx context.Context, conditions []querybuilder.Condition, entryIDs []int64) ([]transfer.Activity, error) {
	builder := querybuilder.Select(transferColumns...).
		From("transfers").
		OrderBy("gameweek ASC", "entry_id ASC")
	if len(entryIDs) > 0 {
		conditions = append(conditions, querybuilder.In("entry_id", int64sToAny(entryIDs)))
	}
	if len(conditions) > 0 {
		builder = builder.Where(conditions...)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build transfer list")
	}

	var rows []transferModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list transfers")
	}

	activities := make([]transfer.Activity, 0, len(rows))
	for _, row := range rows {
		activities = append(activities, row.toDomain())
	}
	return activities, nil
}
