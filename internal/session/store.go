// internal/session/store.go
//
// In-memory store of per-visitor form Controllers.
//
// Context
//   A Controller is single-threaded, but one visitor can fire several
//   requests at once (live change events racing a submit).  The Store keeps
//   one entry per session id in a bounded LRU and gives each entry its own
//   mutex.  Do runs a callback while holding that mutex, so every event for
//   a visitor is processed in order while different visitors proceed in
//   parallel.
//
// Eviction
//   The least recently used idle entry is dropped once MaxEntries is
//   reached; its visitor starts again with an empty form.  An entry that is
//   evicted while a Do callback is still running is parked in `busy` instead
//   and put back into the LRU when the callback returns, so a change made
//   during that callback is never lost.  Delete always wins: a deleted entry
//   is not re-admitted.
//
//------------------------------------------------------------------------------

package session

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yanizio/contact/internal/form"
	"github.com/yanizio/contact/internal/metrics"
)

type entry struct {
	mu   sync.Mutex
	ctrl *form.Controller
	refs int // callers inside Do; guarded by Store.mu
}

// Store maps session ids to form Controllers.
type Store struct {
	mu    sync.Mutex // guards cache, busy, and entry.refs
	cache *lru.Cache[string, *entry]
	busy  map[string]*entry // evicted while in use
}

// NewStore returns a Store holding at most maxEntries idle visitors.
func NewStore(maxEntries int) (*Store, error) {
	s := &Store{busy: make(map[string]*entry)}
	c, err := lru.NewWithEvict(maxEntries, s.onEvict)
	if err != nil {
		return nil, err
	}
	s.cache = c
	return s, nil
}

// Do runs fn with exclusive access to the Controller for id, creating an
// empty one on first use.
func (s *Store) Do(id string, fn func(*form.Controller)) {
	e := s.acquire(id)
	defer s.release(id, e)

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.ctrl)
}

// Delete drops the state for id.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(id) // may park the entry in busy via onEvict
	if _, ok := s.busy[id]; ok {
		delete(s.busy, id)
		metrics.ActiveSessions.Dec()
	}
}

// onEvict runs with s.mu held: every cache mutation happens under it.
func (s *Store) onEvict(id string, e *entry) {
	if e.refs > 0 {
		s.busy[id] = e
		return
	}
	metrics.ActiveSessions.Dec()
}

func (s *Store) acquire(id string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.cache.Get(id)
	if !ok {
		if e, ok = s.busy[id]; ok {
			delete(s.busy, id)
			s.cache.Add(id, e)
		} else {
			e = &entry{ctrl: form.NewController()}
			s.cache.Add(id, e)
			metrics.ActiveSessions.Inc()
		}
	}
	e.refs++
	return e
}

func (s *Store) release(id string, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.refs--
	if e.refs > 0 {
		return
	}
	if parked, ok := s.busy[id]; ok && parked == e {
		delete(s.busy, id)
		s.cache.Add(id, e) // most recently used; evicts an idle entry
	}
}
