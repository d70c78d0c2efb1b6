// Package cache implements the cache-aside layer used by the video pipeline.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vidhub/backend/internal/logging"
)

// Store is a key-value store with per-entry expiry. A missing or expired key
// reports ok == false.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ComputeFunc produces the value for a missed key. store == false keeps the
// value out of the cache; errors are never stored.
type ComputeFunc[T any] func(ctx context.Context) (value T, store bool, err error)

// PanicError carries a value recovered while computing or storing an entry.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprint(e.Value)
}

// Loader runs cache-aside lookups against a Store.
type Loader struct {
	store  Store
	dedupe bool
	group  singleflight.Group
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithDedupe collapses concurrent misses for the same key into a single
// compute call.
func WithDedupe(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.dedupe = enabled
	}
}

// NewLoader returns a Loader backed by store. A nil store disables caching.
func NewLoader(store Store, opts ...LoaderOption) *Loader {
	l := &Loader{store: store}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fetch returns the cached value for key or computes, stores and returns it.
// Store failures are logged and treated as misses. Every call decodes its own
// copy of the value, so results are never shared between callers.
func Fetch[T any](ctx context.Context, l *Loader, key string, ttl time.Duration, compute ComputeFunc[T]) (T, error) {
	var zero T

	if l == nil || l.store == nil {
		value, _, err := compute(ctx)
		return value, err
	}

	logger := logging.FromContext(ctx)

	raw, ok, err := l.store.Get(ctx, key)
	switch {
	case err != nil:
		logger.Warn("cache read failed", "key", key, "error", err)
	case ok:
		var value T
		decodeErr := json.Unmarshal(raw, &value)
		if decodeErr == nil {
			return value, nil
		}
		logger.Warn("cache entry undecodable", "key", key, "error", decodeErr)
	}

	load := func(ctx context.Context) (encoded []byte, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				encoded, err = nil, &PanicError{Value: rec}
			}
		}()

		value, store, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		encoded, err = json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode cache value %s: %w", key, err)
		}
		if store {
			if err := l.store.Set(ctx, key, encoded, ttl); err != nil {
				logger.Warn("cache write failed", "key", key, "error", err)
			}
		}
		return encoded, nil
	}

	var encoded []byte
	if l.dedupe {
		shared, err, _ := l.group.Do(key, func() (any, error) {
			return load(context.WithoutCancel(ctx))
		})
		if err != nil {
			return zero, err
		}
		encoded = shared.([]byte)
	} else {
		encoded, err = load(ctx)
		if err != nil {
			return zero, err
		}
	}

	var value T
	if err := json.Unmarshal(encoded, &value); err != nil {
		return zero, fmt.Errorf("decode cache value %s: %w", key, err)
	}
	return value, nil
}
