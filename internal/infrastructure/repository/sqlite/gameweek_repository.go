package sqlite

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/amiablealex/vantix/internal/domain/gameweek"
	"github.com/amiablealex/vantix/internal/platform/querybuilder"
)

// Finished never reverts even if upstream briefly reports a finished
// gameweek as live again.
const gameweekUpsertSuffix = `ON CONFLICT (id) DO UPDATE SET
	deadline = excluded.deadline,
	finished = MAX(gameweeks.finished, excluded.finished)`

type GameweekRepository struct {
	db sqlx.ExtContext
}

var _ gameweek.Repository = (*GameweekRepository)(nil)

func (r *GameweekRepository) Upsert(ctx context.Context, gw gameweek.Gameweek) error {
	query, args, err := querybuilder.InsertModel("gameweeks", newGameweekModel(gw), gameweekUpsertSuffix)
	if err != nil {
		return errors.Wrap(err, "build gameweek upsert")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "upsert gameweek")
	}

	return nil
}

func (r *GameweekRepository) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	query, args, err := querybuilder.Select("id", "deadline", "finished").
		From("gameweeks").
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build gameweek list")
	}

	var rows []gameweekModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list gameweeks")
	}

	gameweeks := make([]gameweek.Gameweek, 0, len(rows))
	for _, row := range rows {
		gw, err := row.toDomain()
		if err != nil {
			return nil, errors.Wrapf(err, "decode gameweek %d", row.ID)
		}
		gameweeks = append(gameweeks, gw)
	}
	return gameweeks, nil
}
