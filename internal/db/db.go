// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/powerplayhq/powerplay/internal/config"
	"github.com/powerplayhq/powerplay/internal/db/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB bundles the raw connection with the typed query layer. Both views
// address the same underlying handle (or transaction, after WithTx).
type DB struct {
	*sql.DB
	Queries *store.Queries
}

// New opens the SQLite database at the given DSN, forces foreign key
// enforcement on, applies the embedded migrations and binds the query
// layer to the connection.
func New(dataSourceName string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", withForeignKeysDSN(dataSourceName))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := runMigrations(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}
	return &DB{DB: sqlDB, Queries: store.New(sqlDB)}, nil
}

// NewFromConfig opens the configured database, creating its directory
// when missing. Only the sqlite driver is supported.
func NewFromConfig(cfg *config.Config) (*DB, error) {
	if cfg.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Filename), 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}
	return New(cfg.Database.Filename)
}

// withForeignKeysDSN appends `_fk=1` to the DSN unless the caller
// already took a position on foreign keys.
func withForeignKeysDSN(dataSourceName string) string {
	if strings.Contains(dataSourceName, "_fk=") {
		return dataSourceName
	}
	sep := "?"
	if strings.Contains(dataSourceName, "?") {
		sep = "&"
	}
	return dataSourceName + sep + "_fk=1"
}

// runMigrations applies the embedded SQL migrations. An up-to-date
// schema (ErrNoChange) is not an error.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("could not create migrate driver: %w", err)
	}
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not create source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

// WithTx returns a view of the DB whose queries run on the given
// transaction. The embedded *sql.DB still points at the connection, so
// callers must not start nested transactions through it.
func (db *DB) WithTx(tx *sql.Tx) *DB {
	return &DB{DB: db.DB, Queries: store.New(tx)}
}

func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	return tx, nil
}

// RunInTx executes fn inside a transaction, committing on nil and
// rolling back otherwise. The error from fn comes back unwrapped so
// sentinel checks with errors.Is keep working.
func (db *DB) RunInTx(ctx context.Context, fn func(*DB) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(db.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("error rolling back: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing: %w", err)
	}
	return nil
}
