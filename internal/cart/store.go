// Package cart implements the shopping cart store: an explicit, observable
// collection of lines keyed by product id, with derived totals and a
// pluggable persistence boundary.
package cart

import (
	"context"
	"fmt"
	"sync"
)

// Line is one product entry in the cart. Quantity is always >= 1; a line
// that would drop below 1 is removed instead.
type Line struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

// Persister round-trips the full line collection. Load returns (nil, nil)
// when nothing is persisted under the key.
type Persister interface {
	Load(ctx context.Context, key string) ([]Line, error)
	Save(ctx context.Context, key string, lines []Line) error
	Drop(ctx context.Context, key string) error
}

// Observer is called after every committed mutation with a snapshot of the
// lines.
type Observer func(lines []Line)

// Store is the single source of truth for one cart. All mutations go
// through its methods; consumers read snapshots, never the backing slice.
type Store struct {
	mu        sync.Mutex
	key       string
	lines     []Line
	persister Persister
	observers []Observer
}

// NewStore rehydrates the cart persisted under key. A missing or
// undecodable persisted cart yields an empty store, never an error: cart
// loss is recoverable by re-browsing, a crash is not.
func NewStore(ctx context.Context, key string, persister Persister) *Store {
	s := &Store{key: key, persister: persister}

	if persister != nil {
		if lines, err := persister.Load(ctx, key); err == nil {
			s.lines = sanitize(lines)
		}
	}

	return s
}

// sanitize drops lines a buggy or tampered persisted blob could carry.
func sanitize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	seen := make(map[string]int, len(lines))

	for _, l := range lines {
		if l.ProductID == "" || l.Quantity < 1 || l.Price < 0 {
			continue
		}

		if i, ok := seen[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}

		seen[l.ProductID] = len(out)
		out = append(out, l)
	}

	return out
}

// Subscribe registers an observer. Observers run synchronously, in
// registration order, while the mutation lock is not held.
func (s *Store) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observers = append(s.observers, o)
}

// Add merges the line into the cart: an existing line for the same product
// has its quantity incremented, otherwise the line is appended. A quantity
// below 1 defaults to 1. Add always succeeds; the returned error only
// reports a persistence failure, after which the in-memory state is already
// updated.
func (s *Store) Add(ctx context.Context, line Line) error {
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	s.mu.Lock()

	merged := false

	for i := range s.lines {
		if s.lines[i].ProductID == line.ProductID {
			s.lines[i].Quantity += line.Quantity
			merged = true

			break
		}
	}

	if !merged {
		s.lines = append(s.lines, line)
	}

	return s.commit(ctx)
}

// Remove deletes the line with the given product id. Removing an absent id
// is a no-op, not an error.
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)

			return s.commit(ctx)
		}
	}

	s.mu.Unlock()

	return nil
}

// UpdateQuantity sets the quantity of the matching line. A quantity below 1
// removes the line; this one policy applies at every call site. The boolean
// reports whether a line with that product id existed.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) (bool, error) {
	s.mu.Lock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}

		if quantity < 1 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			s.lines[i].Quantity = quantity
		}

		err := s.commit(ctx)

		return true, err
	}

	s.mu.Unlock()

	return false, nil
}

// Clear empties the cart. Used after a successful checkout hand-off or by
// an explicit user action.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.lines = nil

	if s.persister != nil {
		if err := s.persister.Drop(ctx, s.key); err != nil {
			s.mu.Unlock()
			s.notify()

			return fmt.Errorf("dropping persisted cart %q: %w", s.key, err)
		}
	}

	s.mu.Unlock()
	s.notify()

	return nil
}

// commit persists the current lines and notifies observers. Called with the
// lock held; releases it.
func (s *Store) commit(ctx context.Context) error {
	var err error

	if s.persister != nil {
		if perr := s.persister.Save(ctx, s.key, s.snapshotLocked()); perr != nil {
			err = fmt.Errorf("persisting cart %q: %w", s.key, perr)
		}
	}

	s.mu.Unlock()
	s.notify()

	return err
}

func (s *Store) notify() {
	s.mu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	for _, o := range observers {
		o(snapshot)
	}
}

func (s *Store) snapshotLocked() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)

	return out
}

// Lines returns the cart's lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// TotalItems is the sum of quantities, recomputed on every call.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int
	for _, l := range s.lines {
		total += l.Quantity
	}

	return total
}

// TotalPrice is the sum of price*quantity, recomputed on every call.
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, l := range s.lines {
		total += l.Price * int64(l.Quantity)
	}

	return total
}

// Len is the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.lines)
}
