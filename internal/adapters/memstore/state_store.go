// Package memstore provides an in-process StateStore for single-instance
// deployments and tests.
package memstore

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jobboard/jobboard-ui/internal/domain/view"
	"github.com/jobboard/jobboard-ui/internal/ports"
)

// DefaultCapacity bounds the number of visitors kept when no capacity is set.
const DefaultCapacity = 10000

type entry struct {
	visitorID string
	state     view.State
	expiresAt time.Time // zero means no expiry
}

// StateStore keeps view states in memory with a sliding TTL and a capacity
// bound. Entries are ordered by last save, so the back of the list is both the
// least recently active visitor and the earliest to expire.
// It is safe for concurrent use.
type StateStore struct {
	mu       sync.Mutex
	ll       *list.List // front = most recently saved
	entries  map[string]*list.Element
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

// Option configures a StateStore.
type Option func(*StateStore)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *StateStore) { s.now = now }
}

// WithCapacity caps the number of stored visitors. Values <= 0 use DefaultCapacity.
func WithCapacity(n int) Option {
	return func(s *StateStore) { s.capacity = n }
}

// NewStateStore creates a store whose entries expire ttl after their last save.
// A zero ttl disables expiry.
func NewStateStore(ttl time.Duration, opts ...Option) *StateStore {
	s := &StateStore{
		ll:       list.New(),
		entries:  make(map[string]*list.Element),
		ttl:      ttl,
		capacity: DefaultCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.capacity <= 0 {
		s.capacity = DefaultCapacity
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Save stores st for the visitor, refreshing its TTL. Expired entries are
// dropped and the least recently saved visitors are evicted past capacity.
func (s *StateStore) Save(_ context.Context, visitorID string, st view.State) error {
	if visitorID == "" {
		return errors.New("visitor ID cannot be empty")
	}

	now := s.now()
	var exp time.Time
	if s.ttl > 0 {
		exp = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[visitorID]; ok {
		ent, _ := el.Value.(*entry)
		ent.state = cloneState(st)
		ent.expiresAt = exp
		s.ll.MoveToFront(el)
	} else {
		s.entries[visitorID] = s.ll.PushFront(&entry{visitorID: visitorID, state: cloneState(st), expiresAt: exp})
	}

	s.sweepExpired(now)
	for s.ll.Len() > s.capacity {
		s.removeElement(s.ll.Back())
	}
	return nil
}

func (s *StateStore) Get(_ context.Context, visitorID string) (view.State, error) {
	if visitorID == "" {
		return view.State{}, ports.ErrStateNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[visitorID]
	if !ok {
		return view.State{}, ports.ErrStateNotFound
	}
	ent, _ := el.Value.(*entry)
	if ent == nil || expired(ent, s.now()) {
		s.removeElement(el)
		return view.State{}, ports.ErrStateNotFound
	}
	return cloneState(ent.state), nil
}

func (s *StateStore) Delete(_ context.Context, visitorID string) error {
	if visitorID == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.entries[visitorID]; ok {
		s.removeElement(el)
	}
	return nil
}

// Len returns the number of stored entries. Expired entries not yet swept
// are included.
func (s *StateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ll.Len()
}

// sweepExpired trims expired entries from the back. The TTL is fixed, so
// expiry follows save order and the walk stops at the first live entry.
func (s *StateStore) sweepExpired(now time.Time) {
	for el := s.ll.Back(); el != nil; el = s.ll.Back() {
		ent, _ := el.Value.(*entry)
		if ent != nil && !expired(ent, now) {
			return
		}
		s.removeElement(el)
	}
}

func (s *StateStore) removeElement(el *list.Element) {
	s.ll.Remove(el)
	if ent, ok := el.Value.(*entry); ok {
		delete(s.entries, ent.visitorID)
	}
}

func expired(e *entry, now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// cloneState detaches pointer fields so callers cannot mutate stored state.
func cloneState(st view.State) view.State {
	out := st
	if st.User != nil {
		u := *st.User
		out.User = &u
	}
	if st.JobID != nil {
		id := *st.JobID
		out.JobID = &id
	}
	return out
}
