// Package kv provides the durable key-value medium taskshare persists its
// collections to.
//
// A Storage only moves bytes; it never interprets them. The JSON encoding of
// the task and share collections lives in LoadCollection and SaveCollection.
//
// Three backends are available:
//   - MemoryStorage keeps values in process memory (tests, throwaway sessions)
//   - FileStorage keeps one JSON file per key in a data directory
//   - SQLiteStorage keeps values in a single-table SQLite database
package kv

import (
	"context"
	"errors"
	"fmt"
	"io"

	internalstrings "github.com/taskshare/taskshare/internal/strings"
	"github.com/taskshare/taskshare/internal/validation"
)

const (
	// TasksKey holds the task collection.
	TasksKey = "taskshare_todos"

	// SharesKey holds the share record collection.
	SharesKey = "taskshare_shared_todos"
)

var (
	// ErrUnknownBackend is returned when a backend name is not recognized.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrInvalidKey is returned for keys that cannot be stored safely.
	ErrInvalidKey = errors.New("invalid storage key")
)

// Storage is a durable string-keyed byte store.
type Storage interface {
	// Load returns the value stored under key. ok is false when the key
	// has never been saved.
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, data []byte) error
}

// StorageCloser is a Storage holding resources that must be released.
type StorageCloser interface {
	Storage
	io.Closer
}

// Backend names a Storage implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// ValidBackends returns all known backends.
func ValidBackends() []Backend {
	return []Backend{BackendFile, BackendSQLite, BackendMemory}
}

// ParseBackend normalizes a backend name. An empty name means BackendFile.
func ParseBackend(value string) (Backend, error) {
	normalized := Backend(internalstrings.NormalizeLowerTrimSpace(value))
	if normalized == "" {
		return BackendFile, nil
	}
	if !validation.IsOneOf(normalized, ValidBackends()) {
		return "", validation.FormatInvalidValueError(ErrUnknownBackend, Backend(value), ValidBackends())
	}
	return normalized, nil
}

// Config selects and locates a backend.
type Config struct {
	Backend Backend

	// Path is the data directory for BackendFile and the database file for
	// BackendSQLite. It is ignored for BackendMemory.
	Path string
}

// Open opens the backend described by cfg.
func Open(ctx context.Context, cfg Config) (StorageCloser, error) {
	backend, err := ParseBackend(string(cfg.Backend))
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendMemory:
		return NewMemoryStorage(), nil
	case BackendFile:
		if cfg.Path == "" {
			return nil, errors.New("file storage: data directory is required")
		}
		return NewFileStorage(cfg.Path)
	case BackendSQLite:
		if cfg.Path == "" {
			return nil, errors.New("sqlite storage: database path is required")
		}
		return OpenSQLite(ctx, cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	for _, c := range key {
		if c == '/' || c == '\\' || c == 0 {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	if key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
