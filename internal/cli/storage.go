// Package cli parses command lines, builds the per-run environment and
// dispatches to commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"todo/internal/config"
	"todo/internal/storage"
	"todo/internal/storage/filestore"
	"todo/internal/storage/redisstore"
	"todo/internal/storage/sqlstore"
)

// StorageOpener opens the durable storage selected by cfg.
type StorageOpener func(ctx context.Context, cfg *config.Config) (storage.Storage, error)

// OpenStorage opens the driver named by cfg.Storage.Driver.
func OpenStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	sc := cfg.Storage
	switch sc.Driver {
	case storage.DriverFile, "":
		return filestore.New(cfg.DataDir())
	case storage.DriverSQLite:
		path := cfg.SQLitePath()
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		return sqlstore.Open(ctx, storage.DriverSQLite, path)
	case storage.DriverMySQL:
		return sqlstore.Open(ctx, storage.DriverMySQL, sc.DSN)
	case storage.DriverRedis:
		var opts []redisstore.Option
		if sc.Prefix != "" {
			opts = append(opts, redisstore.WithPrefix(sc.Prefix))
		}
		return redisstore.Dial(ctx, sc.RedisAddr, sc.RedisPassword, sc.RedisDB, opts...)
	case storage.DriverMemory:
		return storage.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", sc.Driver)
	}
}
