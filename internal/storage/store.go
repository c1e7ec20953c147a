// ABOUTME: BlobStore interface for named-blob persistence across backends.
// ABOUTME: Defines well-known keys and JSON helpers shared by every store.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("not found")

// ErrCorrupt wraps a stored value that cannot be decoded.
var ErrCorrupt = errors.New("corrupt value")

// Well-known keys.
const (
	KeyUser        = "user"
	KeySession     = "session"
	KeyQuizAnswers = "quiz_answers"
	KeyCatalog     = "catalog"
	// KeySeeded marks that sample workouts were offered once and must not return.
	KeySeeded = "workouts_seeded"

	WorkoutPrefix = "workout:"
)

// BlobStore reads and writes small named values.
// Implementations must acknowledge a write durably before returning nil.
type BlobStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
	// Keys returns every key starting with prefix, sorted ascending.
	Keys(prefix string) ([]string, error)
	Close() error
}

// WorkoutKey returns the key a workout is stored under.
func WorkoutKey(id string) string {
	return WorkoutPrefix + id
}

// WorkoutIDFromKey extracts the workout ID portion from a key.
func WorkoutIDFromKey(key string) string {
	return strings.TrimPrefix(key, WorkoutPrefix)
}

// GetJSON loads key and decodes it into a T.
// A missing key returns ErrNotFound; a decode failure wraps ErrCorrupt.
func GetJSON[T any](s BlobStore, key string) (*T, error) {
	data, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	return unmarshalJSON[T](data)
}

// SetJSON encodes v and stores it under key.
func SetJSON(s BlobStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.Set(key, data)
}

func unmarshalJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &result, nil
}
