package sqlite

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/amiablealex/vantix/internal/domain/differential"
	"github.com/amiablealex/vantix/internal/platform/querybuilder"
)

const differentialUpsertSuffix = `ON CONFLICT (entry_id, gameweek) DO UPDATE SET
	differential_players = excluded.differential_players,
	differential_count = excluded.differential_count`

type DifferentialRepository struct {
	db sqlx.ExtContext
}

var _ differential.Repository = (*DifferentialRepository)(nil)

func (r *DifferentialRepository) Upsert(ctx context.Context, diff differential.Differential) error {
	query, args, err := querybuilder.InsertModel("differentials", newDifferentialModel(diff), differentialUpsertSuffix)
	if err != nil {
		return errors.Wrap(err, "build differential upsert")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "upsert differential entry=%d gw=%d", diff.EntryID, diff.Gameweek)
	}

	return nil
}

func (r *DifferentialRepository) ListByGameweek(ctx context.Context, gw int, entryIDs []int64) ([]differential.Differential, error) {
	conditions := []querybuilder.Condition{querybuilder.Eq("gameweek", gw)}
	if len(entryIDs) > 0 {
		conditions = append(conditions, querybuilder.In("entry_id", int64sToAny(entryIDs)))
	}

	query, args, err := querybuilder.Select("entry_id", "gameweek", "differential_players", "differential_count").
		From("differentials").
		Where(conditions...).
		OrderBy("differential_count DESC", "entry_id ASC").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build differential list")
	}

	var rows []differentialModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list differentials")
	}

	diffs := make([]differential.Differential, 0, len(rows))
	for _, row := range rows {
		diffs = append(diffs, row.toDomain())
	}
	return diffs, nil
}

// LatestGameweek is the newest gameweek that has differential rows, which
// can trail the live gameweek when the newest pass failed before the
// squad barrier.
func (r *DifferentialRepository) LatestGameweek(ctx context.Context) (int, bool, error) {
	var gw sql.NullInt64
	err := sqlx.GetContext(ctx, r.db, &gw, "SELECT MAX(gameweek) FROM differentials")
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !gw.Valid) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "query latest differential gameweek")
	}

	return int(gw.Int64), true, nil
}
