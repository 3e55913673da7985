// Package storage defines the durable key/value contract the task store
// persists through. A key names one slot; a slot holds one opaque value that
// is always replaced wholesale.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the slot has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a set of named slots.
//
// Set must be atomic from a reader's point of view: a concurrent or later Get
// sees either the previous value or the new one, never a partial write.
type Storage interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the underlying handle.
	Close() error
}

// Driver names accepted by configuration.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Drivers lists every supported driver name.
var Drivers = []string{DriverFile, DriverSQLite, DriverMySQL, DriverRedis, DriverMemory}

// IsValidDriver reports whether name is a supported driver.
func IsValidDriver(name string) bool {
	for _, d := range Drivers {
		if d == name {
			return true
		}
	}
	return false
}
