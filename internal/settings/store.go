// Package settings holds the records behind the Settings panels: businesses
// and expenditure categories, kept in memory until a backend takes over.
package settings

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"
)

var ErrNotFound = errors.New("settings: record not found")

// Patch carries the fields a caller wants to set; nil fields are left alone.
type Patch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// Record is implemented by the types a MemoryStore can hold.
type Record[T any] interface {
	RecordID() int
	create(id int, p Patch, now time.Time) T
	apply(p Patch) T
	toggled() T
}

type Store[T Record[T]] interface {
	List() []T
	Get(id int) (T, error)
	Create(p Patch) (T, error)
	Update(id int, p Patch) (T, error)
	Toggle(id int) (T, error)
	Delete(id int) error
}

// MemoryStore keeps records newest first. IDs are one past the highest
// existing ID, so a deleted top ID can be handed out again.
type MemoryStore[T Record[T]] struct {
	mu    sync.RWMutex
	items []T
	now   func() time.Time
}

func NewMemoryStore[T Record[T]](seed []T) *MemoryStore[T] {
	return &MemoryStore[T]{
		items: slices.Clone(seed),
		now:   time.Now,
	}
}

func (s *MemoryStore[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *MemoryStore[T]) Get(id int) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.index(id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}
	return s.items[i], nil
}

func (s *MemoryStore[T]) Create(p Patch) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := 0
	for _, it := range s.items {
		next = max(next, it.RecordID())
	}
	var zero T
	rec := zero.create(next+1, p, s.now())
	s.items = append([]T{rec}, s.items...)
	return rec, nil
}

func (s *MemoryStore[T]) Update(id int, p Patch) (T, error) {
	return s.modify(id, func(r T) T { return r.apply(p) })
}

func (s *MemoryStore[T]) Toggle(id int) (T, error) {
	return s.modify(id, func(r T) T { return r.toggled() })
}

func (s *MemoryStore[T]) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

func (s *MemoryStore[T]) modify(id int, fn func(T) T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}
	s.items[i] = fn(s.items[i])
	return s.items[i], nil
}

func (s *MemoryStore[T]) index(id int) int {
	return slices.IndexFunc(s.items, func(r T) bool { return r.RecordID() == id })
}

func nameOrUntitled(p *string) string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return "Untitled"
	}
	return strings.TrimSpace(*p)
}

func deref[V any](p *V, def V) V {
	if p == nil {
		return def
	}
	return *p
}
