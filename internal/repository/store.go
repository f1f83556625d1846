// Package repository persists the small amount of state the app keeps
// between reloads: the current screen per device and the admin's user list.
package repository

import (
	"context"
	"strings"
	"sync"
)

// StateStore is a string key/value store. It plays the part browser local
// storage plays for a single-page app.
type StateStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
	List(ctx context.Context, prefix string) (map[string]string, error)
}

// Well-known keys inside a device scope
const (
	KeyCurrentScreen = "currentScreen"
	KeySystemUsers   = "systemUsers"
)

const devicePrefix = "device:"

// DeviceScope returns the key prefix for a device
func DeviceScope(deviceID string) string {
	return devicePrefix + deviceID + ":"
}

// ScopedStore confines a StateStore to one key prefix
type ScopedStore struct {
	inner  StateStore
	prefix string
}

// Scope returns a view of inner restricted to deviceID's keys
func Scope(inner StateStore, deviceID string) *ScopedStore {
	return &ScopedStore{inner: inner, prefix: DeviceScope(deviceID)}
}

func (s *ScopedStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *ScopedStore) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *ScopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *ScopedStore) DeletePrefix(ctx context.Context, prefix string) error {
	return s.inner.DeletePrefix(ctx, s.prefix+prefix)
}

func (s *ScopedStore) List(ctx context.Context, prefix string) (map[string]string, error) {
	all, err := s.inner.List(ctx, s.prefix+prefix)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(all))
	for k, v := range all {
		out[strings.TrimPrefix(k, s.prefix)] = v
	}
	return out, nil
}

// Clear removes everything in the scope
func (s *ScopedStore) Clear(ctx context.Context) error {
	return s.inner.DeletePrefix(ctx, s.prefix)
}

// MemoryStore is an in-process StateStore used for tests and DATABASE_TYPE=memory
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *MemoryStore) List(_ context.Context, prefix string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string)
	for k, v := range m.data {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out, nil
}
