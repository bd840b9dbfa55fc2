// Package store opens the SQLite database that brandkit components share and
// runs their schema migrations.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/mod/semver"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// ErrNewerSchema means the database file was last opened by a newer brandkit
// release than the running binary.
var ErrNewerSchema = errors.New("database was created by a newer version of brandkit")

// devVersion is the version string of unreleased builds. It never trips the
// downgrade guard in either direction.
const devVersion = "dev"

// Migration is one forward-only schema step owned by a component.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// connPragmas run once on the single pooled connection. modernc.org/sqlite
// does not read them from the DSN.
var connPragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA foreign_keys=ON",
	"PRAGMA cache_size=-20000",
}

const bookkeepingDDL = `
CREATE TABLE IF NOT EXISTS brandkit_migrations (
	component   TEXT     NOT NULL,
	version     INTEGER  NOT NULL,
	description TEXT     NOT NULL,
	applied_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (component, version)
);
CREATE TABLE IF NOT EXISTS brandkit_meta (
	id          INTEGER  PRIMARY KEY CHECK (id = 1),
	app_version TEXT     NOT NULL,
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SQLiteStore is a single-writer SQLite handle with per-component
// migrations and a binary/database version guard.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex // serializes Migrate
}

// New opens or creates the database at path, applies the connection
// pragmas and creates the bookkeeping tables.
func New(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := initialize(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize sqlite %q: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

func initialize(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	for _, p := range connPragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	if _, err := db.ExecContext(ctx, bookkeepingDDL); err != nil {
		return fmt.Errorf("create bookkeeping tables: %w", err)
	}
	return nil
}

// DB returns the underlying handle.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Tx runs fn in a transaction and commits when fn returns nil.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	return tx.Commit()
}

// Migrate applies the component's migrations it has not recorded yet. Each
// step runs in its own transaction together with its bookkeeping row, so a
// failing step leaves earlier steps applied. Versions must be strictly
// ascending.
func (s *SQLiteStore) Migrate(ctx context.Context, component string, migrations []Migration) error {
	if err := checkOrder(component, migrations); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	done, err := s.appliedVersions(ctx, component)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if done[m.Version] {
			continue
		}
		err := s.Tx(ctx, func(tx *sql.Tx) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO brandkit_migrations (component, version, description) VALUES (?, ?, ?)",
				component, m.Version, m.Description)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %s/%d (%s): %w", component, m.Version, m.Description, err)
		}
	}
	return nil
}

func checkOrder(component string, migrations []Migration) error {
	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version <= migrations[i-1].Version {
			return fmt.Errorf("migrations for %s out of order: %d follows %d",
				component, migrations[i].Version, migrations[i-1].Version)
		}
	}
	return nil
}

func (s *SQLiteStore) appliedVersions(ctx context.Context, component string) (map[int]bool, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT version FROM brandkit_migrations WHERE component = ?", component)
	if err != nil {
		return nil, fmt.Errorf("list migrations for %s: %w", component, err)
	}
	defer rows.Close()

	done := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migration for %s: %w", component, err)
		}
		done[v] = true
	}
	return done, rows.Err()
}

// CheckVersion refuses a database last written by a newer binary and
// records current otherwise.
func (s *SQLiteStore) CheckVersion(ctx context.Context, current string) error {
	var stored string
	err := s.db.QueryRowContext(ctx,
		"SELECT app_version FROM brandkit_meta WHERE id = 1").Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return s.recordVersion(ctx, current)
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	}

	switch cmp := compareVersions(current, stored); {
	case cmp < 0:
		return fmt.Errorf("%w: database=%s, binary=%s", ErrNewerSchema, stored, current)
	case cmp == 0 && current == stored:
		return nil
	default:
		return s.recordVersion(ctx, current)
	}
}

func (s *SQLiteStore) recordVersion(ctx context.Context, v string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO brandkit_meta (id, app_version) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET app_version = excluded.app_version, updated_at = CURRENT_TIMESTAMP`,
		v)
	if err != nil {
		return fmt.Errorf("record schema version %s: %w", v, err)
	}
	return nil
}

// compareVersions orders two release strings by semver. A dev build on
// either side compares equal.
func compareVersions(a, b string) int {
	if a == devVersion || b == devVersion {
		return 0
	}
	return semver.Compare(canonical(a), canonical(b))
}

func canonical(v string) string {
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
