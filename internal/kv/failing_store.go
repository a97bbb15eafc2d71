package kv

import (
	"context"
	"errors"
)

var ErrInjected = errors.New("injected storage failure")

const (
	OpGet    = "get"
	OpSet    = "set"
	OpRemove = "remove"
)

// FailingStore wraps a MemoryStore and fails the operations FailOn selects.
// It is meant for tests exercising backend failure paths.
type FailingStore struct {
	*MemoryStore
	FailOn func(op, key string) error
}

func NewFailingStore() *FailingStore {
	return &FailingStore{MemoryStore: NewMemoryStore()}
}

// FailAlways returns a FailOn func failing every call of the given op.
func FailAlways(op string) func(string, string) error {
	return func(o, _ string) error {
		if o == op {
			return ErrInjected
		}
		return nil
	}
}

// FailKey returns a FailOn func failing the given op only for key.
func FailKey(op, key string) func(string, string) error {
	return func(o, k string) error {
		if o == op && k == key {
			return ErrInjected
		}
		return nil
	}
}

func (s *FailingStore) fail(op, key string) error {
	if s.FailOn == nil {
		return nil
	}
	return s.FailOn(op, key)
}

func (s *FailingStore) GetString(ctx context.Context, key string) (string, bool, error) {
	if err := s.fail(OpGet, key); err != nil {
		return "", false, err
	}
	return s.MemoryStore.GetString(ctx, key)
}

func (s *FailingStore) SetString(ctx context.Context, key, value string) error {
	if err := s.fail(OpSet, key); err != nil {
		return err
	}
	return s.MemoryStore.SetString(ctx, key, value)
}

func (s *FailingStore) RemoveKey(ctx context.Context, key string) error {
	if err := s.fail(OpRemove, key); err != nil {
		return err
	}
	return s.MemoryStore.RemoveKey(ctx, key)
}
