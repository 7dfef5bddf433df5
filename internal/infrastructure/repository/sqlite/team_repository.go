package sqlite

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/amiablealex/vantix/internal/domain/team"
	"github.com/amiablealex/vantix/internal/platform/querybuilder"
)

const teamUpsertSuffix = `ON CONFLICT (entry_id) DO UPDATE SET
	team_name = excluded.team_name,
	manager_name = excluded.manager_name`

type TeamRepository struct {
	db sqlx.ExtContext
}

var _ team.Repository = (*TeamRepository)(nil)

func (r *TeamRepository) Upsert(ctx context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return err
	}

	query, args, err := querybuilder.InsertModel("teams", newTeamModel(t), teamUpsertSuffix)
	if err != nil {
		return errors.Wrap(err, "build team upsert")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "upsert team")
	}

	return nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := querybuilder.Select("entry_id", "team_name", "manager_name").
		From("teams").
		OrderBy("team_name ASC", "entry_id ASC").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build team list")
	}

	var rows []teamModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list teams")
	}

	teams := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, row.toDomain())
	}
	return teams, nil
}
