// Package cache holds generated report payloads and other derived data in
// a bounded in-memory store. Consumers receive an injected *Store; there is
// no package-level instance. Every mutation is announced on a per-key bus so
// interested parties can refresh without polling.
package cache

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	gocache "github.com/patrickmn/go-cache"

	"github.com/washpoint/admin-api/pkg/metrics"
)

// SyncStatus describes the store's relationship with the backing data.
type SyncStatus string

const (
	StatusSynced  SyncStatus = "synced"
	StatusSyncing SyncStatus = "syncing"
	StatusError   SyncStatus = "error"
	StatusOffline SyncStatus = "offline"
)

// EventType discriminates change notifications.
type EventType string

const (
	EventSet    EventType = "set"
	EventDelete EventType = "delete"
)

// Event is published on a key's topic whenever the key changes.
type Event struct {
	Key   string
	Type  EventType
	Value interface{}
}

// ErrFull is returned by Set when the store is at capacity and nothing
// expired could be evicted.
var ErrFull = errors.New("cache full")

type Config struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	MaxEntries      int
}

// Store is a bounded TTL cache with per-key change notifications.
type Store struct {
	data       *gocache.Cache
	bus        EventBus.Bus
	maxEntries int
	metrics    *metrics.Metrics

	mu     sync.RWMutex
	status SyncStatus
}

func NewStore(cfg Config, m *metrics.Metrics) *Store {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}

	return &Store{
		data:       gocache.New(ttl, cleanup),
		bus:        EventBus.New(),
		maxEntries: cfg.MaxEntries,
		metrics:    m,
		status:     StatusSynced,
	}
}

func (s *Store) Get(key string) (interface{}, bool) {
	value, found := s.data.Get(key)
	if s.metrics != nil {
		if found {
			s.metrics.CacheHits.Inc()
		} else {
			s.metrics.CacheMisses.Inc()
		}
	}
	return value, found
}

func (s *Store) Has(key string) bool {
	_, found := s.data.Get(key)
	return found
}

// Set stores the value under the default TTL. When the store is at capacity
// it first drops expired entries; if none could be dropped the write is
// refused with ErrFull rather than growing without bound.
func (s *Store) Set(key string, value interface{}) error {
	if s.maxEntries > 0 && !s.Has(key) && s.data.ItemCount() >= s.maxEntries {
		s.data.DeleteExpired()
		if s.data.ItemCount() >= s.maxEntries {
			return ErrFull
		}
	}

	s.data.Set(key, value, gocache.DefaultExpiration)
	s.trackEntries()
	s.publish(Event{Key: key, Type: EventSet, Value: value})
	return nil
}

func (s *Store) Delete(key string) {
	if _, found := s.data.Get(key); !found {
		return
	}
	s.data.Delete(key)
	s.trackEntries()
	s.publish(Event{Key: key, Type: EventDelete})
}

// DeletePrefix removes every key that starts with the prefix.
func (s *Store) DeletePrefix(prefix string) int {
	var removed int
	for key := range s.data.Items() {
		if strings.HasPrefix(key, prefix) {
			s.data.Delete(key)
			s.publish(Event{Key: key, Type: EventDelete})
			removed++
		}
	}
	s.trackEntries()
	return removed
}

// Clear drops everything, announcing a delete per held key.
func (s *Store) Clear() {
	for key := range s.data.Items() {
		s.publish(Event{Key: key, Type: EventDelete})
	}
	s.data.Flush()
	s.trackEntries()
}

func (s *Store) Len() int {
	return s.data.ItemCount()
}

// Subscribe returns a channel of change events for one key plus the
// unsubscribe function. Slow receivers lose events instead of blocking
// publishers.
func (s *Store) Subscribe(key string) (<-chan Event, func()) {
	ch := make(chan Event, 16)
	topic := "cache:" + key

	handler := func(evt Event) {
		select {
		case ch <- evt:
		default:
		}
	}
	s.bus.Subscribe(topic, handler)

	unsubscribe := func() {
		s.bus.Unsubscribe(topic, handler)
		close(ch)
	}
	return ch, unsubscribe
}

// GetOrLoad returns the cached value or runs the loader and caches its
// result. Loader failures flip the store to error status; the next success
// flips it back.
func (s *Store) GetOrLoad(key string, loader func() (interface{}, error)) (interface{}, error) {
	if value, found := s.Get(key); found {
		return value, nil
	}

	s.setStatus(StatusSyncing)
	value, err := loader()
	if err != nil {
		s.setStatus(StatusError)
		return nil, err
	}
	s.setStatus(StatusSynced)

	if err := s.Set(key, value); err != nil && !errors.Is(err, ErrFull) {
		return nil, err
	}
	return value, nil
}

func (s *Store) Status() SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// SetOnline marks the store offline, or brings it back. Reconnecting
// invalidates everything held so stale offline data can never be served.
func (s *Store) SetOnline(online bool) {
	if !online {
		s.setStatus(StatusOffline)
		return
	}
	s.Clear()
	s.setStatus(StatusSynced)
}

func (s *Store) setStatus(status SyncStatus) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

func (s *Store) publish(evt Event) {
	s.bus.Publish("cache:"+evt.Key, evt)
}

func (s *Store) trackEntries() {
	if s.metrics != nil {
		s.metrics.CacheEntries.Set(float64(s.data.ItemCount()))
	}
}
