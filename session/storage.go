package session

import (
	"context"
	"errors"
	"sync"
)

// Storage key layout. Three string-keyed entries: the serialized user record,
// the JSON-quoted token, and the RFC 3339 expiry timestamp.
const (
	keyUser      = "user"
	keyToken     = "token"
	keyExpiresAt = "tokenExpiresAt"
)

// ErrKeyNotFound is returned by Storage.Get for an absent key.
var ErrKeyNotFound = errors.New("session key not found")

// ErrStorageUnavailable wraps backend failures of a remote Storage.
var ErrStorageUnavailable = errors.New("session storage unavailable")

// Storage is the durable per-instance key/value store the session is
// persisted in, so a process restart replays the same session without a
// fresh login. The Store is its single writer.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// MemoryStorage is the default in-process Storage. It is the lifetime
// analogue of a browser tab: the session lives exactly as long as the
// process does.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage describes the newmemorystorage operation and its observable behavior.
//
// NewMemoryStorage does not mutate shared global state and the returned
// storage can be used concurrently.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

// Get describes the get operation and its observable behavior.
func (s *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

// Set describes the set operation and its observable behavior.
func (s *MemoryStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete describes the delete operation and its observable behavior.
// Deleting an absent key is a no-op.
func (s *MemoryStorage) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}
