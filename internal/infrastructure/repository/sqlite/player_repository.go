package sqlite

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/amiablealex/vantix/internal/domain/player"
	"github.com/amiablealex/vantix/internal/platform/querybuilder"
)

const playerUpsertSuffix = `ON CONFLICT (player_id) DO UPDATE SET
	web_name = excluded.web_name,
	full_name = excluded.full_name`

type PlayerRepository struct {
	db sqlx.ExtContext
}

var _ player.Repository = (*PlayerRepository)(nil)

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	query, args, err := querybuilder.InsertModel("players", newPlayerModel(p), playerUpsertSuffix)
	if err != nil {
		return errors.Wrap(err, "build player upsert")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "upsert player %d", p.ID)
	}

	return nil
}

func (r *PlayerRepository) NamesByID(ctx context.Context) (map[int64]string, error) {
	query, args, err := querybuilder.Select("player_id", "web_name", "full_name").
		From("players").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build player list")
	}

	var rows []playerModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list players")
	}

	names := make(map[int64]string, len(rows))
	for _, row := range rows {
		names[row.PlayerID] = row.WebName
	}
	return names, nil
}
