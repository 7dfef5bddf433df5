package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/amiablealex/vantix/migrations"

	_ "github.com/glebarez/go-sqlite"
)

// Applies the embedded schema migrations to every league store file under
// DATA_DIR. The API server migrates stores on first open anyway; this tool
// exists for upgrading existing files ahead of a deploy and for inspecting
// schema versions.
func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	dataDir := strings.TrimSpace(os.Getenv("DATA_DIR"))
	if dataDir == "" {
		dataDir = "./data"
	}

	paths, err := filepath.Glob(filepath.Join(dataDir, "league_*.db"))
	if err != nil {
		log.Fatalf("list league stores: %v", err)
	}
	if len(paths) == 0 {
		log.Printf("no league stores found under %s", dataDir)
		return
	}

	cmd := strings.ToLower(strings.TrimSpace(os.Args[1]))
	for _, path := range paths {
		switch cmd {
		case "up":
			if err := migrateStore(path, func(m *migrate.Migrate) error { return m.Up() }); err != nil {
				log.Fatalf("%s: %v", path, err)
			}
			log.Printf("%s: migrations applied", path)
		case "down":
			if err := migrateStore(path, func(m *migrate.Migrate) error { return m.Steps(-1) }); err != nil {
				log.Fatalf("%s: %v", path, err)
			}
			log.Printf("%s: rolled back one migration", path)
		case "version":
			if err := printVersion(path); err != nil {
				log.Fatalf("%s: %v", path, err)
			}
		default:
			printUsage()
			os.Exit(2)
		}
	}
}

func migrateStore(path string, run func(*migrate.Migrate) error) error {
	m, cleanup, err := newMigrator(path)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := run(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func printVersion(path string) error {
	m, cleanup, err := newMigrator(path)
	if err != nil {
		return err
	}
	defer cleanup()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Printf("%s: version=none dirty=false\n", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	fmt.Printf("%s: version=%d dirty=%t\n", path, version, dirty)
	return nil
}

func newMigrator(path string) (*migrate.Migrate, func(), error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("load embedded migrations: %w", err)
	}

	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("init migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("create migrator: %w", err)
	}

	cleanup := func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Printf("close migration source: %v", srcErr)
		}
		if dbErr != nil {
			log.Printf("close migration db: %v", dbErr)
		}
	}
	return m, cleanup, nil
}

func printUsage() {
	fmt.Println("usage: migration <up|down|version>")
	fmt.Println("  up       apply pending migrations to every league store")
	fmt.Println("  down     roll back one migration on every league store")
	fmt.Println("  version  print the schema version of every league store")
}
