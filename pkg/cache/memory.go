package cache

import (
	"container/list"
	"context"
	"sync"
)

type item struct {
	key   Key
	entry Entry
}

// Memory is an in-process cache with optional LRU eviction when a maximum
// entry count is configured.
//
// The most recently accessed entries are at the front of the list; the least
// recently used are at the back.
type Memory struct {
	items      map[Key]*list.Element
	eviction   *list.List
	onEvict    func(key Key)
	maxEntries int
	mu         sync.Mutex
	closed     bool
}

// MemoryOption configures the in-memory cache.
type MemoryOption func(*Memory)

// WithMaxEntries sets the maximum number of entries in the cache.
// When the limit is reached, the least recently used entry is evicted.
// Zero means unlimited.
// Default: 0 (unlimited).
func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) {
		m.maxEntries = max(n, 0)
	}
}

// WithEvictCallback sets a function called with the key of every entry that
// leaves the cache through LRU eviction, deletion, or clearing.
func WithEvictCallback(fn func(key Key)) MemoryOption {
	return func(m *Memory) {
		m.onEvict = fn
	}
}

// NewMemory creates a new in-memory cache.
//
//	c := cache.NewMemory(cache.WithMaxEntries(512))
//	defer c.Close()
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		items:    make(map[Key]*list.Element),
		eviction: list.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get retrieves an entry and marks it as recently used.
func (m *Memory) Get(_ context.Context, key Key) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return Entry{}, ErrNotFound
	}

	m.eviction.MoveToFront(elem)
	return elem.Value.(*item).entry, nil
}

// Set stores an entry.
func (m *Memory) Set(_ context.Context, key Key, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if elem, ok := m.items[key]; ok {
		elem.Value.(*item).entry = e
		m.eviction.MoveToFront(elem)
		return nil
	}

	if m.maxEntries > 0 && len(m.items) >= m.maxEntries {
		if oldest := m.eviction.Back(); oldest != nil {
			m.removeElement(oldest)
		}
	}

	m.items[key] = m.eviction.PushFront(&item{key: key, entry: e})
	return nil
}

// Delete removes one entry.
func (m *Memory) Delete(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if elem, ok := m.items[key]; ok {
		m.removeElement(elem)
	}
	return nil
}

// DeleteFile removes the entries of every locale for file.
func (m *Memory) DeleteFile(_ context.Context, file string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	for key, elem := range m.items {
		if key.within(file) {
			m.removeElement(elem)
		}
	}
	return nil
}

// Has checks whether a key exists. It does not affect LRU order.
func (m *Memory) Has(_ context.Context, key Key) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.items[key]
	return ok, nil
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Clear removes all entries.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if m.onEvict != nil {
		for key := range m.items {
			m.onEvict(key)
		}
	}

	m.items = make(map[Key]*list.Element)
	m.eviction.Init()
	return nil
}

// Close marks the cache as closed and drops its entries. Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	m.items = make(map[Key]*list.Element)
	m.eviction.Init()
	return nil
}

// removeElement removes a specific element and triggers the eviction callback.
// Caller must hold the mutex.
func (m *Memory) removeElement(elem *list.Element) {
	m.eviction.Remove(elem)
	it := elem.Value.(*item)
	delete(m.items, it.key)

	if m.onEvict != nil {
		m.onEvict(it.key)
	}
}

var _ Cache = (*Memory)(nil)
