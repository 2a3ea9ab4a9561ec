package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/gitxyzlabs/levoyageur/internal/config"
	"github.com/gitxyzlabs/levoyageur/internal/listcache"
	"github.com/gitxyzlabs/levoyageur/internal/logging"
)

// Store manages persistence backed by SQLite. All list reads go through the
// shared cache; mutations invalidate the keys they affect.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	lists  *listcache.Cache
	logger *slog.Logger
}

// Open acquires the data-directory lock, connects to the database, and
// applies the schema.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("store requires config")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	logger = logging.NewComponentLogger(logger, "store")

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "levoyageur.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire data lock: %w", err)
	}
	if !locked {
		return nil, errors.New("data directory is in use by another levoyageur process")
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:     db,
		path:   dbPath,
		lock:   lock,
		lists:  listcache.New(logger),
		logger: logger,
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close releases the database connection and the data-directory lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Lists exposes the cache for callers that need direct invalidation.
func (s *Store) Lists() *listcache.Cache { return s.lists }
