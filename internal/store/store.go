// Package store persists the game's key-value snapshots. Backends only move bytes; encoding belongs to the owners
// of the values.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Logical keys of the persisted snapshots.
const (
	KeySession        = "sessionSnapshot"
	KeyDailyChallenge = "dailyChallengeSnapshot"
	KeyLeaderboard    = "leaderboardEntries"
	KeyAudioSettings  = "audioSettings"
	KeyAppSettings    = "appSettings"
)

var (
	ErrNotFound = errors.New("store: key not found")
	ErrCorrupt  = errors.New("store: corrupt value")
)

// Store is a key-value snapshot store.
type Store interface {
	// Get returns ErrNotFound when key holds no value.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LoadJSON decodes the value under key into v. It reports false when the key is absent.
// A value that does not decode returns an error wrapping ErrCorrupt.
func LoadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	b, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("decode %s: %w: %v", key, ErrCorrupt, err)
	}

	return true, nil
}

// IsCorrupt reports whether err comes from a value that did not decode.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorrupt)
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := s.Put(ctx, key, b); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	return nil
}

type prefixed struct {
	Store
	prefix string
}

// WithPrefix namespaces every key of s as "prefix:key". An empty prefix returns s.
func WithPrefix(s Store, prefix string) Store {
	if prefix == "" {
		return s
	}
	return &prefixed{Store: s, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.Store.Get(ctx, p.key(key))
}

func (p *prefixed) Put(ctx context.Context, key string, value []byte) error {
	return p.Store.Put(ctx, p.key(key), value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.Store.Delete(ctx, p.key(key))
}

func (p *prefixed) key(k string) string {
	return p.prefix + ":" + k
}
