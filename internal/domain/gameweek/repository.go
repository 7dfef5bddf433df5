package gameweek

import "context"

type Repository interface {
	Upsert(ctx context.Context, gw Gameweek) error
	List(ctx context.Context) ([]Gameweek, error)
}
