package cache

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/use-agent/ldgen/models"
)

// ErrNotFound is returned when a batch id is unknown or expired.
var ErrNotFound = errors.New("cache: batch not found")

// Store keeps generated batches in memory so their titles can be edited and
// exported after generation. Entries expire after the configured TTL.
// It is safe for concurrent use.
type Store struct {
	// mu serialises read-modify-write updates of a single batch.
	mu    sync.Mutex
	items *gocache.Cache
}

// New creates a Store whose entries live for ttl. Expired entries are
// swept every ttl/2 (at least once a minute).
func New(ttl time.Duration) *Store {
	cleanup := ttl / 2
	if cleanup <= 0 || cleanup > time.Minute {
		cleanup = time.Minute
	}
	return &Store{items: gocache.New(ttl, cleanup)}
}

// Put stores b under a fresh id, sets b.ID and b.CreatedAt, and returns the id.
func (s *Store) Put(b *models.Batch) string {
	b.ID = "batch-" + uuid.NewString()
	b.CreatedAt = time.Now().Unix()
	s.items.SetDefault(b.ID, b)
	return b.ID
}

// Get returns a copy of the batch stored under id.
func (s *Store) Get(id string) (*models.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return clone(b), nil
}

// Update applies fn to the stored batch under the store lock and returns a
// copy of the result. The entry's TTL restarts.
func (s *Store) Update(id string, fn func(*models.Batch) error) (*models.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.load(id)
	if err != nil {
		return nil, err
	}
	updated := clone(b)
	if err := fn(updated); err != nil {
		return nil, err
	}
	s.items.SetDefault(id, updated)
	return clone(updated), nil
}

// Count returns the number of stored batches, including expired entries not
// yet swept.
func (s *Store) Count() int {
	return s.items.ItemCount()
}

func (s *Store) load(id string) (*models.Batch, error) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	b, ok := v.(*models.Batch)
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

// clone copies the batch and its outcome slice. Schema records are
// replaced, never mutated, so sharing them is safe.
func clone(b *models.Batch) *models.Batch {
	c := *b
	c.Outcomes = append([]models.Outcome(nil), b.Outcomes...)
	return &c
}
