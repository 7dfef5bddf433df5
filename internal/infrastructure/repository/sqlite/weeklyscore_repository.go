package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/amiablealex/vantix/internal/domain/weeklyscore"
	"github.com/amiablealex/vantix/internal/platform/querybuilder"
)

const scoreUpsertSuffix = `ON CONFLICT (entry_id, gameweek) DO UPDATE SET
	points = excluded.points,
	total_points = excluded.total_points,
	rank = excluded.rank,
	bank = excluded.bank,
	value = excluded.value,
	event_transfers = excluded.event_transfers,
	event_transfers_cost = excluded.event_transfers_cost,
	updated_at = excluded.updated_at`

var scoreColumns = []string{
	"entry_id", "gameweek", "points", "total_points", "rank",
	"bank", "value", "event_transfers", "event_transfers_cost", "updated_at",
}

type WeeklyScoreRepository struct {
	db sqlx.ExtContext
}

var _ weeklyscore.Repository = (*WeeklyScoreRepository)(nil)

func (r *WeeklyScoreRepository) Upsert(ctx context.Context, score weeklyscore.Score) error {
	query, args, err := querybuilder.InsertModel("gameweek_points", newGameweekPointsModel(score), scoreUpsertSuffix)
	if err != nil {
		return errors.Wrap(err, "build score upsert")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "upsert score entry=%d gw=%d", score.EntryID, score.Gameweek)
	}

	return nil
}

func (r *WeeklyScoreRepository) List(ctx context.Context, entryIDs []int64) ([]weeklyscore.Score, error) {
	builder := querybuilder.Select(scoreColumns...).
		From("gameweek_points").
		OrderBy("gameweek ASC", "entry_id ASC")
	if len(entryIDs) > 0 {
		builder = builder.Where(querybuilder.In("entry_id", int64sToAny(entryIDs)))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build score list")
	}

	var rows []gameweekPointsModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list scores")
	}

	scores := make([]weeklyscore.Score, 0, len(rows))
	for _, row := range rows {
		score, err := row.toDomain()
		if err != nil {
			return nil, errors.Wrapf(err, "decode score entry=%d gw=%d", row.EntryID, row.Gameweek)
		}
		scores = append(scores, score)
	}
	return scores, nil
}

// LastUpdatedAt is the most recent write across all score rows, surfaced
// as the league's data freshness marker.
func (r *WeeklyScoreRepository) LastUpdatedAt(ctx context.Context) (time.Time, bool, error) {
	var raw sql.NullString
	err := sqlx.GetContext(ctx, r.db, &raw, "SELECT MAX(updated_at) FROM gameweek_points")
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !raw.Valid) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, errors.Wrap(err, "query last update time")
	}

	ts, err := parseTime(raw.String)
	if err != nil {
		return time.Time{}, false, errors.Wrap(err, "decode last update time")
	}
	return ts, true, nil
}
