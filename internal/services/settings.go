// Package services provides the key/value settings repository that the
// preference layer persists tenant theme choices into.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/HerbHall/brandkit/internal/store"
)

// ErrNotFound is returned when a settings key does not exist.
var ErrNotFound = errors.New("setting not found")

// Setting is one stored key/value record.
type Setting struct {
	Key       string    `json:"key" example:"theme:acme:preset"`
	Value     string    `json:"value" example:"modern"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingsRepository stores string values under string keys.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (*Setting, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	GetAll(ctx context.Context) ([]Setting, error)
	List(ctx context.Context, prefix string) ([]Setting, error)
}

var settingsMigrations = []store.Migration{
	{
		Version:     1,
		Description: "create settings table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE settings (
					key        TEXT     PRIMARY KEY,
					value      TEXT     NOT NULL,
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)
			`)
			return err
		},
	},
}

// SQLiteSettingsRepository is the SettingsRepository backed by the shared
// SQLite store.
type SQLiteSettingsRepository struct {
	db *sql.DB
}

// NewSQLiteSettingsRepository runs the settings migrations and returns a
// repository bound to s.
func NewSQLiteSettingsRepository(ctx context.Context, s *store.SQLiteStore) (*SQLiteSettingsRepository, error) {
	if err := s.Migrate(ctx, "settings", settingsMigrations); err != nil {
		return nil, fmt.Errorf("settings migrate: %w", err)
	}
	return &SQLiteSettingsRepository{db: s.DB()}, nil
}

// Get returns the setting stored under key, or ErrNotFound.
func (r *SQLiteSettingsRepository) Get(ctx context.Context, key string) (*Setting, error) {
	var s Setting
	err := r.db.QueryRowContext(ctx,
		"SELECT key, value, updated_at FROM settings WHERE key = ?", key,
	).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get setting %q: %w", key, err)
	}
	return &s, nil
}

// Set inserts or replaces the value stored under key.
func (r *SQLiteSettingsRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *SQLiteSettingsRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}

// GetAll returns every setting ordered by key.
func (r *SQLiteSettingsRepository) GetAll(ctx context.Context) ([]Setting, error) {
	return r.query(ctx, "SELECT key, value, updated_at FROM settings ORDER BY key")
}

// List returns the settings whose key starts with prefix, ordered by key.
func (r *SQLiteSettingsRepository) List(ctx context.Context, prefix string) ([]Setting, error) {
	return r.query(ctx,
		`SELECT key, value, updated_at FROM settings
		WHERE substr(key, 1, ?) = ? ORDER BY key`,
		len(prefix), prefix,
	)
}

func (r *SQLiteSettingsRepository) query(ctx context.Context, q string, args ...any) ([]Setting, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var out []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// MemorySettingsRepository keeps settings in process memory. It backs the
// "memory" storage mode and tests.
type MemorySettingsRepository struct {
	mu   sync.RWMutex
	data map[string]Setting
}

// NewMemorySettingsRepository returns an empty in-memory repository.
func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{data: make(map[string]Setting)}
}

func (r *MemorySettingsRepository) Get(_ context.Context, key string) (*Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *MemorySettingsRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return nil
}

func (r *MemorySettingsRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

func (r *MemorySettingsRepository) GetAll(ctx context.Context) ([]Setting, error) {
	return r.List(ctx, "")
}

func (r *MemorySettingsRepository) List(_ context.Context, prefix string) ([]Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Setting
	for k, s := range r.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
