package player

import "context"

type Repository interface {
	Upsert(ctx context.Context, p Player) error
	// NamesByID returns the web-name lookup for every stored player.
	NamesByID(ctx context.Context) (map[int64]string, error)
}
