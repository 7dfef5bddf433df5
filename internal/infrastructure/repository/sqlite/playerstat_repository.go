package sqlite

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/amiablealex/vantix/internal/domain/playerstat"
	"github.com/amiablealex/vantix/internal/platform/querybuilder"
)

const playerStatUpsertSuffix = `ON CONFLICT (entry_id) DO UPDATE SET
	total_goals = excluded.total_goals,
	total_assists = excluded.total_assists,
	total_clean_sheets = excluded.total_clean_sheets,
	updated_at = excluded.updated_at`

type PlayerStatRepository struct {
	db sqlx.ExtContext
}

var _ playerstat.Repository = (*PlayerStatRepository)(nil)

func (r *PlayerStatRepository) Upsert(ctx context.Context, stat playerstat.Stat) error {
	model := newPlayerStatModel(stat, formatTime(time.Now()))
	query, args, err := querybuilder.InsertModel("player_stats", model, playerStatUpsertSuffix)
	if err != nil {
		return errors.Wrap(err, "build player stat upsert")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "upsert player stats entry=%d", stat.EntryID)
	}

	return nil
}

func (r *PlayerStatRepository) List(ctx context.Context, entryIDs []int64) ([]playerstat.Stat, error) {
	builder := querybuilder.Select("entry_id", "total_goals", "total_assists", "total_clean_sheets", "updated_at").
		From("player_stats").
		OrderBy("entry_id ASC")
	if len(entryIDs) > 0 {
		builder = builder.Where(querybuilder.In("entry_id", int64sToAny(entryIDs)))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build player stat list")
	}

	var rows []playerStatModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list player stats")
	}

	stats := make([]playerstat.Stat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, row.toDomain())
	}
	return stats, nil
}
