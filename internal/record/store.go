// Package record persists collections of JSON encoded records on a kv.Store.
//
// A collection with prefix p keeps the sorted JSON array of its ids under
// "p_all_ids" and every record under "p_<id>".
package record

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/internal/event_bus"
	"github.com/yuuzu/spenderman/internal/kv"
)

// Repository is the CRUD surface every collection exposes.
// Mutations return false with a nil error when the target id is unknown.
type Repository[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetById(ctx context.Context, id string) (T, bool, error)
	Add(ctx context.Context, item T) (bool, error)
	Update(ctx context.Context, item T) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) (bool, error)
}

type Store[T any] struct {
	kv     kv.Store
	prefix string
	idOf   func(T) string
	bus    *event_bus.EventBus
	// mu serializes writers of the collection, readers share it.
	mu sync.RWMutex
}

type Option[T any] func(*Store[T])

// WithEventBus makes the store publish a RecordsChanged event after each successful mutation.
func WithEventBus[T any](bus *event_bus.EventBus) Option[T] {
	return func(s *Store[T]) {
		s.bus = bus
	}
}

func NewStore[T any](store kv.Store, prefix string, idOf func(T) string, opts ...Option[T]) *Store[T] {
	s := &Store[T]{kv: store, prefix: prefix, idOf: idOf}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store[T]) Collection() string {
	return s.prefix
}

func (s *Store[T]) idsKey() string {
	return s.prefix + "_all_ids"
}

func (s *Store[T]) itemKey(id string) string {
	return s.prefix + "_" + id
}

// GetAll returns the stored records ordered by id. Ids whose value is missing are skipped.
func (s *Store[T]) GetAll(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, err := s.loadIds(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, len(ids))
	for _, id := range ids {
		item, ok, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Debugf("%s %s is listed but has no value, skipping", s.prefix, id)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Store[T]) GetById(ctx context.Context, id string) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(ctx, id)
}

// Add stores item, replacing any record with the same id.
func (s *Store[T]) Add(ctx context.Context, item T) (bool, error) {
	raw, err := s.encode(item)
	if err != nil {
		return false, err
	}
	id := s.idOf(item)

	return s.mutate(ctx, event_bus.OpAdd, func(ids []string) ([]string, bool, error) {
		if err := s.set(ctx, s.itemKey(id), raw); err != nil {
			return nil, false, err
		}
		if idx, found := slices.BinarySearch(ids, id); !found {
			if err := s.saveIds(ctx, slices.Insert(ids, idx, id)); err != nil {
				return nil, false, err
			}
		}
		return []string{id}, true, nil
	})
}

// Update replaces the record with item's id. It returns false if that id was never added.
func (s *Store[T]) Update(ctx context.Context, item T) (bool, error) {
	raw, err := s.encode(item)
	if err != nil {
		return false, err
	}
	id := s.idOf(item)

	return s.mutate(ctx, event_bus.OpUpdate, func(ids []string) ([]string, bool, error) {
		if _, found := slices.BinarySearch(ids, id); !found {
			log.Warnf("%s %s not updated, probably because it does not exist", s.prefix, id)
			return nil, false, nil
		}
		if err := s.set(ctx, s.itemKey(id), raw); err != nil {
			return nil, false, err
		}
		return []string{id}, true, nil
	})
}

func (s *Store[T]) Delete(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, event_bus.OpDelete, func(ids []string) ([]string, bool, error) {
		idx, found := slices.BinarySearch(ids, id)
		if !found {
			log.Warnf("%s %s not deleted, probably because it does not exist", s.prefix, id)
			return nil, false, nil
		}
		if err := s.remove(ctx, s.itemKey(id)); err != nil {
			return nil, false, err
		}
		if err := s.saveIds(ctx, slices.Delete(ids, idx, idx+1)); err != nil {
			return nil, false, err
		}
		return []string{id}, true, nil
	})
}

// DeleteAll removes every record and leaves an empty id set behind.
func (s *Store[T]) DeleteAll(ctx context.Context) (bool, error) {
	return s.mutate(ctx, event_bus.OpDeleteAll, func(ids []string) ([]string, bool, error) {
		removed := slices.Clone(ids)
		for _, id := range ids {
			if err := s.remove(ctx, s.itemKey(id)); err != nil {
				return nil, false, err
			}
		}
		if err := s.saveIds(ctx, []string{}); err != nil {
			return nil, false, err
		}
		return removed, true, nil
	})
}

// UpdateEach rewrites every record through fn while holding the write lock, so no
// other writer of this store interleaves. Only records whose encoding changed are
// written. Every record is encoded before the first write; if a write fails the
// records already written are restored on a best effort basis.
func (s *Store[T]) UpdateEach(ctx context.Context, fn func(T) T) (bool, error) {
	return s.mutate(ctx, event_bus.OpUpdate, func(ids []string) ([]string, bool, error) {
		var writes []pendingWrite
		for _, id := range ids {
			previous, ok, err := s.get(ctx, s.itemKey(id))
			if err != nil {
				return nil, false, err
			}
			if !ok {
				continue
			}
			var item T
			if err := json.Unmarshal([]byte(previous), &item); err != nil {
				return nil, false, s.codecError("decode", id, err)
			}
			next, err := s.encode(fn(item))
			if err != nil {
				return nil, false, err
			}
			if next != previous {
				writes = append(writes, pendingWrite{id: id, previous: previous, next: next})
			}
		}

		changed := make([]string, 0, len(writes))
		for _, w := range writes {
			if err := s.set(ctx, s.itemKey(w.id), w.next); err != nil {
				s.restore(ctx, writes[:len(changed)])
				return nil, false, err
			}
			changed = append(changed, w.id)
		}
		return changed, true, nil
	})
}

// mutate runs fn with the current id set under the write lock and publishes the
// ids fn reports as changed once the lock is released.
func (s *Store[T]) mutate(ctx context.Context, op event_bus.Operation, fn func(ids []string) ([]string, bool, error)) (bool, error) {
	changed, ok, err := func() ([]string, bool, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		ids, err := s.loadIds(ctx)
		if err != nil {
			return nil, false, err
		}
		return fn(ids)
	}()
	if ok && err == nil && (len(changed) > 0 || op == event_bus.OpDeleteAll) {
		s.publish(ctx, op, changed...)
	}
	return ok, err
}

type pendingWrite struct {
	id       string
	previous string
	next     string
}

func (s *Store[T]) restore(ctx context.Context, done []pendingWrite) {
	for _, w := range done {
		if err := s.kv.SetString(ctx, s.itemKey(w.id), w.previous); err != nil {
			log.Errorf("failed to restore %s %s: %v", s.prefix, w.id, err)
		}
	}
}

func (s *Store[T]) load(ctx context.Context, id string) (T, bool, error) {
	var item T
	raw, ok, err := s.get(ctx, s.itemKey(id))
	if err != nil || !ok {
		return item, false, err
	}
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return item, false, s.codecError("decode", id, err)
	}
	return item, true, nil
}

func (s *Store[T]) loadIds(ctx context.Context) ([]string, error) {
	raw, ok, err := s.get(ctx, s.idsKey())
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, s.codecError("decode", "id set", err)
	}
	// Sets written by older versions are not guaranteed to be sorted.
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

func (s *Store[T]) saveIds(ctx context.Context, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return s.codecError("encode", "id set", err)
	}
	return s.set(ctx, s.idsKey(), string(raw))
}

func (s *Store[T]) encode(item T) (string, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return "", s.codecError("encode", s.idOf(item), err)
	}
	// GetAll fails on the first value it cannot decode, so such a value is never written.
	var decoded T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", s.codecError("encode", s.idOf(item), err)
	}
	return string(raw), nil
}

func (s *Store[T]) get(ctx context.Context, key string) (string, bool, error) {
	value, ok, err := s.kv.GetString(ctx, key)
	if err != nil {
		log.Errorf("failed to read %s: %v", key, err)
		return "", false, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return value, ok, nil
}

func (s *Store[T]) set(ctx context.Context, key, value string) error {
	if err := s.kv.SetString(ctx, key, value); err != nil {
		log.Errorf("failed to write %s: %v", key, err)
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

func (s *Store[T]) remove(ctx context.Context, key string) error {
	if err := s.kv.RemoveKey(ctx, key); err != nil {
		log.Errorf("failed to remove %s: %v", key, err)
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

func (s *Store[T]) codecError(action, what string, err error) error {
	log.Errorf("failed to %s %s %s: %v", action, s.prefix, what, err)
	return fmt.Errorf("%w: %s %s %s: %w", ErrCodec, action, s.prefix, what, err)
}

func (s *Store[T]) publish(ctx context.Context, op event_bus.Operation, ids ...string) {
	if s.bus == nil {
		return
	}
	event := event_bus.NewEvent(ctx, event_bus.RecordsChangedEvent, event_bus.RecordsChanged{
		Collection: s.prefix,
		Op:         op,
		Ids:        ids,
	})
	if err := s.bus.Publish(event); err != nil {
		log.Warnf("%s change notification failed: %v", s.prefix, err)
	}
}
