package dataloader

import (
	"context"

	"github.com/pkg/errors"
)

// BatchFunc fetches the values for keys in one call. The returned slice
// must have the same length and order as keys.
type BatchFunc[K comparable, V any] func(ctx context.Context, keys []K) ([]V, error)

// Thunk returns the value for a key once its batch has been dispatched.
type Thunk[V any] func() (V, error)

// Option configures a Loader.
type Option func(*config)

type config struct {
	maxBatch int
}

// WithMaxBatch limits the number of keys sent to the batch function in
// one call. Zero, the default, means no limit.
func WithMaxBatch(n int) Option {
	return func(c *config) {
		c.maxBatch = n
	}
}

type entry[V any] struct {
	value V
	err   error
	done  bool
}

// Loader batches and caches lookups of V by K.
type Loader[K comparable, V any] struct {
	fetch    BatchFunc[K, V]
	maxBatch int

	cache   map[K]*entry[V] // resolved and pending entries
	pending []K             // keys waiting for dispatch, first-seen order
}

// New returns a Loader over fetch.
func New[K comparable, V any](fetch BatchFunc[K, V], opts ...Option) *Loader[K, V] {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return &Loader[K, V]{
		fetch:    fetch,
		maxBatch: c.maxBatch,
		cache:    make(map[K]*entry[V]),
	}
}

// Load returns a thunk for key. If key is neither cached nor pending it
// is added to the pending batch.
func (l *Loader[K, V]) Load(ctx context.Context, key K) Thunk[V] {
	e, ok := l.cache[key]
	if !ok {
		e = &entry[V]{}
		l.cache[key] = e
		l.pending = append(l.pending, key)
	}
	return func() (V, error) {
		if !e.done && l.cache[key] == e {
			l.Flush(ctx)
		}
		if !e.done {
			// evicted by Clear before its batch was dispatched
			l.dispatch(ctx, []K{key}, []*entry[V]{e})
		}
		return e.value, e.err
	}
}

// LoadMany loads every key and returns a thunk yielding the values in
// the order of keys.
func (l *Loader[K, V]) LoadMany(ctx context.Context, keys []K) Thunk[[]V] {
	thunks := make([]Thunk[V], len(keys))
	for i, key := range keys {
		thunks[i] = l.Load(ctx, key)
	}
	return func() ([]V, error) {
		values := make([]V, len(thunks))
		for i, thunk := range thunks {
			v, err := thunk()
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil
	}
}

// Prime stores value for key unless key is already cached or pending.
func (l *Loader[K, V]) Prime(key K, value V) {
	if _, ok := l.cache[key]; ok {
		return
	}
	l.cache[key] = &entry[V]{value: value, done: true}
}

// Clear evicts key, so the next Load fetches it again.
func (l *Loader[K, V]) Clear(key K) {
	e, ok := l.cache[key]
	if !ok {
		return
	}
	delete(l.cache, key)
	if e.done {
		return
	}
	for i, k := range l.pending {
		if k == key {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			break
		}
	}
}

// ClearAll evicts every key.
func (l *Loader[K, V]) ClearAll() {
	l.cache = make(map[K]*entry[V])
	l.pending = nil
}

// Pending returns the number of keys waiting for dispatch.
func (l *Loader[K, V]) Pending() int {
	return len(l.pending)
}

// Flush dispatches every pending key. Without a batch limit this is a
// single call to the batch function.
func (l *Loader[K, V]) Flush(ctx context.Context) {
	for len(l.pending) > 0 {
		n := len(l.pending)
		if l.maxBatch > 0 && n > l.maxBatch {
			n = l.maxBatch
		}
		keys := append([]K(nil), l.pending[:n]...)
		l.pending = l.pending[n:]

		entries := make([]*entry[V], len(keys))
		for i, key := range keys {
			entries[i] = l.cache[key]
		}
		l.dispatch(ctx, keys, entries)
	}
}

func (l *Loader[K, V]) dispatch(ctx context.Context, keys []K, entries []*entry[V]) {
	values, err := l.fetch(ctx, keys)
	if err == nil && len(values) != len(keys) {
		err = errors.Errorf("dataloader: batch function returned %d values for %d keys", len(values), len(keys))
	}
	for i, e := range entries {
		e.done = true
		if err != nil {
			e.err = err
			// failed entries are not cached
			if l.cache[keys[i]] == e {
				delete(l.cache, keys[i])
			}
			continue
		}
		e.value = values[i]
	}
}
