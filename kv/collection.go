package kv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tailscale/hujson"
)

// ErrCorrupt is returned when a stored value does not decode as a collection.
var ErrCorrupt = errors.New("corrupt collection")

// LoadCollection reads the JSON array stored under key.
//
// A missing or empty value yields an empty collection and no error. A value
// that does not decode yields an empty collection and an error wrapping
// ErrCorrupt, so callers can log it and carry on. Storage failures are
// returned as-is.
func LoadCollection[T any](ctx context.Context, s Storage, key string) ([]T, error) {
	data, ok, err := s.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}

	items, err := DecodeCollection[T](data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, key, err)
	}
	return items, nil
}

// DecodeCollection parses a JSON array. Comments and trailing commas are
// accepted so hand-edited data files keep loading.
func DecodeCollection[T any](data []byte) ([]T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	standardized, err := hujson.Standardize(bytes.Clone(data))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	var items []T
	if err := json.Unmarshal(standardized, &items); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return items, nil
}

// SaveCollection writes items as a JSON array under key.
func SaveCollection[T any](ctx context.Context, s Storage, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
