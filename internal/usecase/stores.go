package usecase

import (
	"context"

	"github.com/amiablealex/vantix/internal/domain/chip"
	"github.com/amiablealex/vantix/internal/domain/differential"
	"github.com/amiablealex/vantix/internal/domain/gameweek"
	"github.com/amiablealex/vantix/internal/domain/player"
	"github.com/amiablealex/vantix/internal/domain/playerstat"
	"github.com/amiablealex/vantix/internal/domain/squad"
	"github.com/amiablealex/vantix/internal/domain/team"
	"github.com/amiablealex/vantix/internal/domain/transfer"
	"github.com/amiablealex/vantix/internal/domain/weeklyscore"
)

// LeagueStores bundles every repository of one league store. InTx yields a
// set bound to a single transaction so a collection pass commits or rolls
// back as a unit.
type LeagueStores interface {
	Teams() team.Repository
	Gameweeks() gameweek.Repository
	Scores() weeklyscore.Repository
	Transfers() transfer.Repository
	Chips() chip.Repository
	PlayerStats() playerstat.Repository
	Squads() squad.Repository
	Differentials() differential.Repository
	Players() player.Repository
	InTx(ctx context.Context, fn func(tx LeagueStores) error) error
}

// StoreProvider hands out league stores, creating them on first use.
type StoreProvider interface {
	// Open returns the store for a league, creating the backing database
	// when it does not exist yet.
	Open(ctx context.Context, leagueCode int64) (LeagueStores, error)
	// Exists reports whether a league store has ever been created.
	Exists(leagueCode int64) bool
}
