// Package memstore is an in-process backend for the ledger, used for local
// runs and tests. Every unit of work runs against a private copy of the state
// while holding the store lock, and the copy replaces the state on commit.
package memstore

import (
	"sync"
	"time"

	"github.com/wanderergaurav/Varuna-marine/models"
)

type shipYear struct {
	shipID string
	year   int
}

type state struct {
	routes        []*models.Route
	compliance    map[shipYear]*models.ShipCompliance
	complianceSeq int64
	bankEntries   []*models.BankEntry
	bankEntrySeq  int64
	pools         []*models.Pool
	poolSeq       int64
}

func newState() *state {
	return &state{
		compliance: make(map[shipYear]*models.ShipCompliance),
	}
}

func (s *state) clone() *state {
	cloned := &state{
		routes:        make([]*models.Route, len(s.routes)),
		compliance:    make(map[shipYear]*models.ShipCompliance, len(s.compliance)),
		complianceSeq: s.complianceSeq,
		bankEntries:   make([]*models.BankEntry, len(s.bankEntries)),
		bankEntrySeq:  s.bankEntrySeq,
		pools:         make([]*models.Pool, len(s.pools)),
		poolSeq:       s.poolSeq,
	}
	for i, r := range s.routes {
		cloned.routes[i] = cloneRoute(r)
	}
	for k, v := range s.compliance {
		cloned.compliance[k] = cloneCompliance(v)
	}
	for i, e := range s.bankEntries {
		cloned.bankEntries[i] = cloneBankEntry(e)
	}
	for i, p := range s.pools {
		cloned.pools[i] = clonePool(p)
	}
	return cloned
}

func cloneRoute(r *models.Route) *models.Route {
	c := *r
	return &c
}

func cloneCompliance(r *models.ShipCompliance) *models.ShipCompliance {
	c := *r
	return &c
}

func cloneBankEntry(e *models.BankEntry) *models.BankEntry {
	c := *e
	return &c
}

func clonePool(p *models.Pool) *models.Pool {
	c := *p
	c.Members = make([]*models.PoolMember, len(p.Members))
	for i, m := range p.Members {
		member := *m
		c.Members[i] = &member
	}
	return &c
}

// Store owns the in-memory tables. Construct one per process or per test.
type Store struct {
	mu    sync.Mutex
	state *state
	nowFn func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for created_at stamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.nowFn = now
	}
}

// NewStore creates a store seeded with the given routes. Route ids are
// assigned in order when unset.
func NewStore(routes []*models.Route, opts ...Option) *Store {
	s := &Store{
		state: newState(),
		nowFn: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	for i, r := range routes {
		route := cloneRoute(r)
		if route.ID == 0 {
			route.ID = int64(i + 1)
		}
		s.state.routes = append(s.state.routes, route)
	}
	return s
}

// begin takes the store lock and hands out a private copy of the state.
// The lock is held until end is called.
func (s *Store) begin() *state {
	s.mu.Lock()
	return s.state.clone()
}

// end releases the lock, installing working as the new state when commit is set
func (s *Store) end(working *state, commit bool) {
	if commit {
		s.state = working
	}
	s.mu.Unlock()
}
