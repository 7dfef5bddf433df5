package sqlite

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/amiablealex/vantix/internal/domain/squad"
	"github.com/amiablealex/vantix/internal/platform/querybuilder"
)

const squadUpsertSuffix = `ON CONFLICT (entry_id, gameweek) DO UPDATE SET
	player_ids = excluded.player_ids`

type SquadRepository struct {
	db sqlx.ExtContext
}

var _ squad.Repository = (*SquadRepository)(nil)

func (r *SquadRepository) Upsert(ctx context.Context, snapshot squad.Snapshot) error {
	query, args, err := querybuilder.InsertModel("current_squads", newCurrentSquadModel(snapshot), squadUpsertSuffix)
	if err != nil {
		return errors.Wrap(err, "build squad upsert")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "upsert squad entry=%d gw=%d", snapshot.EntryID, snapshot.Gameweek)
	}

	return nil
}

func (r *SquadRepository) ListByGameweek(ctx context.Context, gw int, entryIDs []int64) ([]squad.Snapshot, error) {
	conditions := []querybuilder.Condition{querybuilder.Eq("gameweek", gw)}
	if len(entryIDs) > 0 {
		conditions = append(conditions, querybuilder.In("entry_id", int64sToAny(entryIDs)))
	}

	query, args, err := querybuilder.Select("entry_id", "gameweek", "player_ids").
		From("current_squads").
		Where(conditions...).
		OrderBy("entry_id ASC").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build squad list")
	}

	var rows []currentSquadModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list squads")
	}

	snapshots := make([]squad.Snapshot, 0, len(rows))
	for _, row := range rows {
		snapshot, err := row.toDomain()
		if err != nil {
			return nil, errors.Wrapf(err, "decode squad entry=%d gw=%d", row.EntryID, row.Gameweek)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}
