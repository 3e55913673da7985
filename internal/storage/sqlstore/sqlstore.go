// Package sqlstore implements storage.Storage as a key/value table reached
// through database/sql. It supports SQLite (modernc.org/sqlite, pure Go) and
// MySQL (github.com/go-sql-driver/mysql).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"todo/internal/storage"
)

// Table is the name of the slot table.
const Table = "todo_slots"

// The column types are understood by both SQLite and MySQL.
const createTable = `CREATE TABLE IF NOT EXISTS ` + Table + ` (
    slot_key VARCHAR(191) NOT NULL PRIMARY KEY,
    slot_value LONGBLOB NOT NULL,
    updated_at BIGINT NOT NULL
)`

// Store is a storage.Storage over a SQL database.
type Store struct {
	db     *sql.DB
	driver string
	upsert string
	now    func() time.Time
}

// Open connects to the database, checks the connection and creates the slot
// table if it does not exist. driver is storage.DriverSQLite (dsn is a file
// path or ":memory:") or storage.DriverMySQL (dsn is a go-sql-driver DSN).
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlstore: %s dsn not set", driver)
	}

	var sqlDriver, upsert string
	switch driver {
	case storage.DriverSQLite:
		sqlDriver = "sqlite"
		upsert = `INSERT INTO ` + Table + ` (slot_key, slot_value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(slot_key) DO UPDATE SET slot_value = excluded.slot_value, updated_at = excluded.updated_at`
	case storage.DriverMySQL:
		sqlDriver = "mysql"
		upsert = `INSERT INTO ` + Table + ` (slot_key, slot_value, updated_at) VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE slot_value = VALUES(slot_value), updated_at = VALUES(updated_at)`
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", driver, err)
	}
	if driver == storage.DriverSQLite {
		// A single connection keeps ":memory:" databases alive and serializes writers.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: connect %s: %w", driver, err)
	}

	s := &Store{db: db, driver: driver, upsert: upsert, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("sqlstore: create %s: %w", Table, err)
	}
	return nil
}

// Get implements storage.Storage.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT slot_value FROM `+Table+` WHERE slot_key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: get %s: %w", key, err)
	}
	return value, nil
}

// Set implements storage.Storage with a single-row upsert.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := s.db.ExecContext(ctx, s.upsert, key, value, s.now().UnixMilli()); err != nil {
		return fmt.Errorf("sqlstore: set %s: %w", key, err)
	}
	return nil
}

// Close implements storage.Storage.
func (s *Store) Close() error { return s.db.Close() }
