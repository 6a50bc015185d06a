package kv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"golang.org/x/sys/unix"
)

const lockFileName = ".lock"

// FileStorage is a Storage keeping each key in <dir>/<key>.json.
//
// Writes replace the file atomically, and every access holds an advisory
// lock on <dir>/.lock so concurrent taskshare processes never observe a
// half-written value.
type FileStorage struct {
	dir string
}

// NewFileStorage returns a FileStorage rooted at dir, creating it if needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

// Dir returns the data directory.
func (s *FileStorage) Dir() string {
	return s.dir
}

// Path returns the file holding key.
func (s *FileStorage) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStorage) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	var (
		data []byte
		ok   bool
	)
	err := s.withLock(unix.LOCK_SH, func() error {
		value, err := os.ReadFile(s.Path(key))
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", key, err)
		}
		data = value
		ok = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, ok, nil
}

func (s *FileStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	return s.withLock(unix.LOCK_EX, func() error {
		if err := atomic.WriteFile(s.Path(key), bytes.NewReader(data)); err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
		return nil
	})
}

// Close is a no-op; locks are only held for the duration of a call.
func (s *FileStorage) Close() error {
	return nil
}

// withLock executes fn while holding a flock of the given kind on the lock file.
func (s *FileStorage) withLock(how int, fn func() error) error {
	f, err := os.OpenFile(filepath.Join(s.dir, lockFileName), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), how); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	return fn()
}
