package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"caveplan/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped when the schema changes; an imported database with
// an older version is rebuilt on the next import.
const schemaVersion = 1

// ErrNotFound marks a cave id absent from the catalog.
var ErrNotFound = errors.New("cave not found")

// Store is the SQLite-backed cave catalog.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the catalog database, creating it and applying the schema
// when needed.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.CatalogDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
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
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	var version int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("catalog schema version %d does not match %d; delete %s and re-import", version, schemaVersion, s.path)
	}
	return nil
}

// ImportJSONL loads the catalog export into the database, replacing records
// with matching cave ids. A file lock serializes concurrent imports against
// the same database.
func (s *Store) ImportJSONL(ctx context.Context, path string) (imported, skipped int, err error) {
	lock := flock.New(s.path + ".import.lock")
	locked, err := lock.TryLock()
	if err != nil {
		return 0, 0, fmt.Errorf("acquire import lock: %w", err)
	}
	if !locked {
		return 0, 0, errors.New("another import is already running")
	}
	defer func() {
		_ = lock.Unlock()
	}()

	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open catalog file: %w", err)
	}
	defer file.Close()

	caves, skipped, err := DecodeJSONL(file)
	if err != nil {
		return 0, skipped, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, skipped, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC().Format(time.RFC3339)
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO caves (
            cave_id, name, inventory_number, region, commune,
            latitude, longitude, images, imported_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(cave_id) DO UPDATE SET
            name = excluded.name,
            inventory_number = excluded.inventory_number,
            region = excluded.region,
            commune = excluded.commune,
            latitude = excluded.latitude,
            longitude = excluded.longitude,
            images = excluded.images,
            imported_at = excluded.imported_at`)
	if err != nil {
		return 0, skipped, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for _, cave := range caves {
		images, err := json.Marshal(cave.Images)
		if err != nil {
			return imported, skipped, fmt.Errorf("encode images for %s: %w", cave.CaveID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			cave.CaveID, cave.Name, cave.InventoryNumber, cave.Region, cave.Commune,
			cave.Latitude, cave.Longitude, string(images), now,
		); err != nil {
			return imported, skipped, fmt.Errorf("insert cave %s: %w", cave.CaveID, err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return imported, skipped, fmt.Errorf("commit import: %w", err)
	}
	return imported, skipped, nil
}

// GetByID fetches one cave record.
func (s *Store) GetByID(ctx context.Context, caveID string) (*Cave, error) {
	row := s.db.QueryRowContext(ctx, `SELECT cave_id, name, inventory_number, region,
            commune, latitude, longitude, images
        FROM caves WHERE cave_id = ?`, caveID)
	cave, err := scanCave(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, caveID)
	}
	return cave, err
}

// List returns catalog records ordered by cave id, optionally filtered by
// region (exact match).
func (s *Store) List(ctx context.Context, region string) ([]Cave, error) {
	query := `SELECT cave_id, name, inventory_number, region, commune,
            latitude, longitude, images FROM caves`
	args := []any{}
	if region != "" {
		query += " WHERE region = ?"
		args = append(args, region)
	}
	query += " ORDER BY cave_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list caves: %w", err)
	}
	defer rows.Close()

	var caves []Cave
	for rows.Next() {
		cave, err := scanCave(rows)
		if err != nil {
			return nil, err
		}
		caves = append(caves, *cave)
	}
	return caves, rows.Err()
}

// Count returns the number of catalog records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM caves").Scan(&n); err != nil {
		return 0, fmt.Errorf("count caves: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCave(row rowScanner) (*Cave, error) {
	var cave Cave
	var images string
	if err := row.Scan(&cave.CaveID, &cave.Name, &cave.InventoryNumber, &cave.Region,
		&cave.Commune, &cave.Latitude, &cave.Longitude, &images); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(images), &cave.Images); err != nil {
		return nil, fmt.Errorf("decode images for %s: %w", cave.CaveID, err)
	}
	return &cave, nil
}
