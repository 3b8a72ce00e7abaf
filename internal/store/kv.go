// Package store provides the durable key-value store behind the tracker.
package store

import (
	"sort"
	"sync"
	"time"
)

// Keys under which tracker state is persisted.
const (
	KeyRecords = "records"
	KeyRate    = "rate"
)

// KV is a string key-value store. Get and UpdatedAt report whether the key
// was present.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)
	UpdatedAt(key string) (time.Time, bool, error)
}

// Entry describes one stored key.
type Entry struct {
	Key       string
	UpdatedAt time.Time
}

// Entries lists every key in kv with its last write time, sorted by key.
func Entries(kv KV) ([]Entry, error) {
	keys, err := kv.Keys()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		at, ok, err := kv.UpdatedAt(k)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, Entry{Key: k, UpdatedAt: at})
		}
	}
	return out, nil
}

type memEntry struct {
	value string
	at    time.Time
}

// Memory is an in-process KV used for ephemeral sessions and tests.
type Memory struct {
	mu   sync.Mutex
	data map[string]memEntry
	now  func() time.Time
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]memEntry), now: time.Now}
}

// Get returns the value stored under key.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[key]
	return e.value, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = memEntry{value: value, at: m.now().UTC()}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// UpdatedAt returns when key was last written.
func (m *Memory) UpdatedAt(key string) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[key]
	return e.at, ok, nil
}
