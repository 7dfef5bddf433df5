// Package sqlite persists one league store per SQLite file, created on
// demand from embedded migrations.
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/amiablealex/vantix/internal/domain/chip"
	"github.com/amiablealex/vantix/internal/domain/differential"
	"github.com/amiablealex/vantix/internal/domain/gameweek"
	"github.com/amiablealex/vantix/internal/domain/player"
	"github.com/amiablealex/vantix/internal/domain/playerstat"
	"github.com/amiablealex/vantix/internal/domain/squad"
	"github.com/amiablealex/vantix/internal/domain/team"
	"github.com/amiablealex/vantix/internal/domain/transfer"
	"github.com/amiablealex/vantix/internal/domain/weeklyscore"
	"github.com/amiablealex/vantix/internal/usecase"
	"github.com/amiablealex/vantix/migrations"

	_ "github.com/glebarez/go-sqlite"
)

const driverName = "sqlite"

// Manager hands out per-league store handles. Handles are opened lazily,
// cached for the process lifetime, and schema-migrated on first open.
type Manager struct {
	dataDir string

	mu  sync.Mutex
	dbs map[int64]*sqlx.DB
}

func NewManager(dataDir string) *Manager {
	return &Manager{
		dataDir: dataDir,
		dbs:     make(map[int64]*sqlx.DB),
	}
}

// Path is the database file location for a league.
func (m *Manager) Path(leagueCode int64) string {
	return filepath.Join(m.dataDir, fmt.Sprintf("league_%d.db", leagueCode))
}

// Exists reports whether a league store has ever been created. Absence is
// the user-facing "not yet collected" condition, not an error.
func (m *Manager) Exists(leagueCode int64) bool {
	_, err := os.Stat(m.Path(leagueCode))
	return err == nil
}

// Open returns the store handle for a league, creating the database file
// and applying migrations when needed.
func (m *Manager) Open(ctx context.Context, leagueCode int64) (usecase.LeagueStores, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if db, ok := m.dbs[leagueCode]; ok {
		return newStores(db), nil
	}

	if err := os.MkdirAll(m.dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dsn := m.Path(leagueCode) + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := otelsqlx.Connect(driverName, dsn,
		otelsql.WithDBSystem(driverName),
		otelsql.WithDBName(fmt.Sprintf("league_%d", leagueCode)),
	)
	if err != nil {
		return nil, fmt.Errorf("open league store %d: %w", leagueCode, err)
	}

	// One writer at a time; the collector serializes writes anyway and
	// SQLite locks the file per transaction.
	db.SetMaxOpenConns(1)

	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate league store %d: %w", leagueCode, err)
	}

	m.dbs[leagueCode] = db
	return newStores(db), nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for code, db := range m.dbs {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close league store %d: %w", code, err)
		}
		delete(m.dbs, code)
	}

	return firstErr
}

func migrateUp(db *sqlx.DB) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}

	driver, err := sqlitemigrate.WithInstance(db.DB, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("init migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", src, driverName, driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Stores bundles every repository for a single league store. Repositories
// share one sqlx executor, which is either the root handle or a
// transaction started by InTx.
type Stores struct {
	db            *sqlx.DB
	ext           sqlx.ExtContext
	tx            bool
	teams         *TeamRepository
	gameweeks     *GameweekRepository
	scores        *WeeklyScoreRepository
	transfers     *TransferRepository
	chips         *ChipRepository
	playerStats   *PlayerStatRepository
	squads        *SquadRepository
	differentials *DifferentialRepository
	players       *PlayerRepository
}

var _ usecase.LeagueStores = (*Stores)(nil)
var _ usecase.StoreProvider = (*Manager)(nil)

func newStores(db *sqlx.DB) *Stores {
	return bindStores(db, db, false)
}

func bindStores(db *sqlx.DB, ext sqlx.ExtContext, tx bool) *Stores {
	return &Stores{
		db:            db,
		ext:           ext,
		tx:            tx,
		teams:         &TeamRepository{db: ext},
		gameweeks:     &GameweekRepository{db: ext},
		scores:        &WeeklyScoreRepository{db: ext},
		transfers:     &TransferRepository{db: ext},
		chips:         &ChipRepository{db: ext},
		playerStats:   &PlayerStatRepository{db: ext},
		squads:        &SquadRepository{db: ext},
		differentials: &DifferentialRepository{db: ext},
		players:       &PlayerRepository{db: ext},
	}
}

func (s *Stores) Teams() team.Repository { return s.teams }
func (s *Stores) Gameweeks() gameweek.Repository { return s.gameweeks }
func (s *Stores) Scores() weeklyscore.Repository { return s.scores }
func (s *Stores) Transfers() transfer.Repository { return s.transfers }
func (s *Stores) Chips() chip.Repository { return s.chips }
func (s *Stores) PlayerStats() playerstat.Repository { return s.playerStats }
func (s *Stores) Squads() squad.Repository { return s.squads }
func (s *Stores) Differentials() differential.Repository { return s.differentials }
func (s *Stores) Players() player.Repository { return s.players }

// InTx runs fn against a repository set bound to one transaction. Any
// error rolls the whole pass back; nothing is committed partially.
func (s *Stores) InTx(ctx context.Context, fn func(tx usecase.LeagueStores) error) error {
	if s.tx {
		return fmt.Errorf("nested store transaction")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin store tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(bindStores(s.db, tx, true)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit store tx: %w", err)
	}
	return nil
}
