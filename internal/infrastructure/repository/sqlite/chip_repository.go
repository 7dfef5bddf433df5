package sqlite

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/amiablealex/vantix/internal/domain/chip"
	"github.com/amiablealex/vantix/internal/platform/querybuilder"
)

type ChipRepository struct {
	db sqlx.ExtContext
}

var _ chip.Repository = (*ChipRepository)(nil)

// Record keeps chip usage insert-only. Replays of already-seen usage are
// silent no-ops.
func (r *ChipRepository) Record(ctx context.Context, usage chip.Usage) error {
	query, args, err := querybuilder.InsertModel("chip_usage", newChipUsageModel(usage), "ON CONFLICT (entry_id, gameweek, chip_name) DO NOTHING")
	if err != nil {
		return errors.Wrap(err, "build chip insert")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "record chip entry=%d gw=%d", usage.EntryID, usage.Gameweek)
	}

	return nil
}

func (r *ChipRepository) List(ctx context.Context, entryIDs []int64) ([]chip.Usage, error) {
	builder := querybuilder.Select("entry_id", "gameweek", "chip_name").
		From("chip_usage").
		OrderBy("gameweek ASC", "entry_id ASC")
	if len(entryIDs) > 0 {
		builder = builder.Where(querybuilder.In("entry_id", int64sToAny(entryIDs)))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build chip list")
	}

	var rows []chipUsageModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list chips")
	}

	usages := make([]chip.Usage, 0, len(rows))
	for _, row := range rows {
		usages = append(usages, row.toDomain())
	}
	return usages, nil
}
