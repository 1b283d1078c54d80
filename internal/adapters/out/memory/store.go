// Package memory keeps every aggregate in process memory. It backs the
// service when STORAGE_BACKEND=memory and the use case tests.
//
// A unit of work holds a store-wide lock from Begin until Commit or Rollback
// and writes to a private copy of the state, which Commit publishes. Work
// done outside Begin reads the last committed state and cannot write.
package memory

import (
	"cmp"
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/content"
	"donations/internal/core/domain/model/delivery"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/driver"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/recipient"
	"donations/internal/core/domain/model/waste"
)

var (
	ErrDuplicateKey  = errors.New("duplicate key")
	ErrNoTransaction = errors.New("no active transaction")
)

// Store is the shared committed state. Create one per process (or per test)
// and hand it to NewUnitOfWorkFactory.
type Store struct {
	sem chan struct{}

	mu        sync.RWMutex
	committed *state
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		sem:       make(chan struct{}, 1),
		committed: newState(),
	}
}

func (s *Store) lock(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) unlock() {
	<-s.sem
}

func (s *Store) current() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed
}

func (s *Store) publish(next *state) {
	s.mu.Lock()
	s.committed = next
	s.mu.Unlock()
}

type row[S any] struct {
	seq  int64
	snap S
}

type table[S any] map[kernel.UUID]row[S]

// state is never mutated once published; a unit of work clones it first.
type state struct {
	seq        int64
	donors     table[donor.Snapshot]
	centers    table[center.Snapshot]
	donations  table[donation.Snapshot]
	drivers    table[driver.Snapshot]
	recipients table[recipient.Snapshot]
	deliveries table[delivery.Snapshot]
	wastes     table[waste.Snapshot]
	contents   table[content.Snapshot]
}

func newState() *state {
	return &state{
		donors:     table[donor.Snapshot]{},
		centers:    table[center.Snapshot]{},
		donations:  table[donation.Snapshot]{},
		drivers:    table[driver.Snapshot]{},
		recipients: table[recipient.Snapshot]{},
		deliveries: table[delivery.Snapshot]{},
		wastes:     table[waste.Snapshot]{},
		contents:   table[content.Snapshot]{},
	}
}

func (s *state) clone() *state {
	return &state{
		seq:        s.seq,
		donors:     maps.Clone(s.donors),
		centers:    maps.Clone(s.centers),
		donations:  maps.Clone(s.donations),
		drivers:    maps.Clone(s.drivers),
		recipients: maps.Clone(s.recipients),
		deliveries: maps.Clone(s.deliveries),
		wastes:     maps.Clone(s.wastes),
		contents:   maps.Clone(s.contents),
	}
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

func insert[S any](s *state, t table[S], id kernel.UUID, snap S) error {
	if _, ok := t[id]; ok {
		return ErrDuplicateKey
	}
	t[id] = row[S]{seq: s.next(), snap: snap}
	return nil
}

func replace[S any](t table[S], id kernel.UUID, snap S) bool {
	r, ok := t[id]
	if !ok {
		return false
	}
	r.snap = snap
	t[id] = r
	return true
}

// selectRows returns the snapshots matching keep in the given order.
func selectRows[S any](t table[S], keep func(S) bool, order func(a, b row[S]) int) []S {
	rows := make([]row[S], 0, len(t))
	for _, r := range t {
		if keep == nil || keep(r.snap) {
			rows = append(rows, r)
		}
	}
	slices.SortFunc(rows, order)
	out := make([]S, len(rows))
	for i, r := range rows {
		out[i] = r.snap
	}
	return out
}

// newestFirst orders by a timestamp, latest insert first on ties.
func newestFirst[S any](at func(S) time.Time) func(a, b row[S]) int {
	return func(a, b row[S]) int {
		if c := at(b.snap).Compare(at(a.snap)); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	}
}

func byName[S any](name func(S) string) func(a, b row[S]) int {
	return func(a, b row[S]) int {
		if c := strings.Compare(name(a.snap), name(b.snap)); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	}
}

func restoreAll[S any, A any](snaps []S, restore func(S) (A, error)) ([]A, error) {
	out := make([]A, 0, len(snaps))
	for _, s := range snaps {
		a, err := restore(s)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
