// Package store persists the client-visible key-value records (accounts,
// trainee overrides, supervisor profile) behind a small typed interface.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by KV.Get for a missing key.
var ErrNotFound = errors.New("store: key not found")

// Fixed keys.
const (
	KeyUsers             = "users"
	KeyCurrentUser       = "currentUser"
	KeySupervisorProfile = "supervisorProfile"
	traineePrefix        = "trainee_"
)

// TraineeKey returns the override key for a trainee id.
func TraineeKey(id string) string { return traineePrefix + id }

// KV is a string-keyed blob store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Healthy(ctx context.Context) bool
	Close() error
}

// Repository reads and writes JSON values of one type.
type Repository[T any] struct {
	kv KV
}

// NewRepository wraps kv for values of type T.
func NewRepository[T any](kv KV) *Repository[T] {
	return &Repository[T]{kv: kv}
}

// Get decodes the value at key. ok is false when the key is absent.
func (r *Repository[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var v T
	raw, err := r.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return v, true, nil
}

// Set encodes v and stores it at key.
func (r *Repository[T]) Set(ctx context.Context, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	return r.kv.Set(ctx, key, raw)
}

// Remove deletes key. Removing an absent key is not an error.
func (r *Repository[T]) Remove(ctx context.Context, key string) error {
	return r.kv.Delete(ctx, key)
}
