// Package memory provides an in-process store.Client used by tests and by
// local development runs that have no MongoDB at hand. It implements the
// same snapshot-first subscription semantics as the mongodb backend.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"fittrack/fitness-tracker/internal/store"
)

const subscriptionBuffer = 32

type subscriber struct {
	path   string
	values chan store.Value
	errs   chan error
	once   sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() {
		close(s.values)
		close(s.errs)
	})
}

// Store is an in-memory document tree guarded by one mutex. All mutations
// are applied under the lock and observed by subscribers in apply order.
type Store struct {
	mu     sync.Mutex
	root   map[string]store.Value
	subs   map[int]*subscriber
	nextID int
}

var _ store.Client = (*Store)(nil)

func New() *Store {
	return &Store{
		root: make(map[string]store.Value),
		subs: make(map[int]*subscriber),
	}
}

func (s *Store) Get(_ context.Context, path string) (store.Value, error) {
	segments, err := store.SplitPath(path)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return deepCopy(getAt(s.root, segments)), nil
}

func (s *Store) Set(_ context.Context, path string, value store.Value) error {
	segments, err := store.SplitPath(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if err := setAt(s.root, segments, deepCopy(value)); err != nil {
		s.mu.Unlock()
		return err
	}
	s.notifyLocked(path)
	s.mu.Unlock()
	return nil
}

func (s *Store) Push(ctx context.Context, path string, value store.Value) (string, error) {
	key := store.PushKey()
	if err := s.Set(ctx, store.JoinPath(path, key), value); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Store) Update(_ context.Context, patch map[string]store.Value) error {
	type entry struct {
		path     string
		segments []string
		value    store.Value
	}
	entries := make([]entry, 0, len(patch))
	for path, value := range patch {
		segments, err := store.SplitPath(path)
		if err != nil {
			return err
		}
		entries = append(entries, entry{path: path, segments: segments, value: value})
	}

	// All entries apply under one lock hold, so no subscriber ever
	// observes a partially applied patch.
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if err := setAt(s.root, e.segments, deepCopy(e.value)); err != nil {
			return err
		}
	}
	for _, e := range entries {
		s.notifyLocked(e.path)
	}
	return nil
}

func (s *Store) Remove(_ context.Context, path string) error {
	segments, err := store.SplitPath(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if err := setAt(s.root, segments, nil); err != nil {
		s.mu.Unlock()
		return err
	}
	s.notifyLocked(path)
	s.mu.Unlock()
	return nil
}

func (s *Store) Subscribe(_ context.Context, path string) (*store.Subscription, error) {
	segments, err := store.SplitPath(path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	sub := &subscriber{
		path:   path,
		values: make(chan store.Value, subscriptionBuffer),
		errs:   make(chan error, 1),
	}
	s.subs[id] = sub
	// Initial snapshot, delivered before any subsequent change.
	sub.values <- deepCopy(getAt(s.root, segments))
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			sub.close()
		}
		s.mu.Unlock()
	}
	return store.NewSubscription(sub.values, sub.errs, cancel), nil
}

// notifyLocked pushes a fresh snapshot to every subscriber whose path is
// related to the changed path. Slow consumers drop intermediate snapshots
// rather than block the writer.
func (s *Store) notifyLocked(changed string) {
	for _, sub := range s.subs {
		if !store.IsAncestor(sub.path, changed) && !store.IsAncestor(changed, sub.path) {
			continue
		}
		segments, err := store.SplitPath(sub.path)
		if err != nil {
			continue
		}
		select {
		case sub.values <- deepCopy(getAt(s.root, segments)):
		default:
		}
	}
}

// getAt navigates the tree; a missing branch yields nil. Numeric segments
// index into array values, matching how day-slot paths address plan days.
func getAt(node store.Value, segments []string) store.Value {
	for _, seg := range segments {
		switch n := node.(type) {
		case map[string]store.Value:
			node = n[seg]
		case []store.Value:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(n) {
				return nil
			}
			node = n[idx]
		default:
			return nil
		}
	}
	return node
}

// setAt writes value at the segment path, creating intermediate maps as
// needed. A nil value deletes the entry. Writing through an array requires
// the indexed element to exist already.
func setAt(root map[string]store.Value, segments []string, value store.Value) error {
	node := store.Value(root)
	for i := 0; i < len(segments)-1; i++ {
		seg := segments[i]
		switch n := node.(type) {
		case map[string]store.Value:
			child, ok := n[seg]
			if !ok || child == nil {
				if value == nil {
					return nil // deleting under a missing branch is a no-op
				}
				child = make(map[string]store.Value)
				n[seg] = child
			}
			node = child
		case []store.Value:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(n) {
				return fmt.Errorf("%w: no element %q in array", store.ErrInvalidPath, seg)
			}
			if n[idx] == nil {
				if value == nil {
					return nil
				}
				n[idx] = make(map[string]store.Value)
			}
			node = n[idx]
		default:
			return fmt.Errorf("%w: segment %q addresses a scalar", store.ErrInvalidPath, seg)
		}
	}

	last := segments[len(segments)-1]
	switch n := node.(type) {
	case map[string]store.Value:
		if value == nil {
			delete(n, last)
		} else {
			n[last] = value
		}
	case []store.Value:
		idx, err := strconv.Atoi(last)
		if err != nil || idx < 0 || idx >= len(n) {
			return fmt.Errorf("%w: no element %q in array", store.ErrInvalidPath, last)
		}
		n[idx] = value
	default:
		return fmt.Errorf("%w: segment %q addresses a scalar", store.ErrInvalidPath, last)
	}
	return nil
}

// deepCopy clones a JSON-like value so callers never alias store internals.
func deepCopy(v store.Value) store.Value {
	switch n := v.(type) {
	case map[string]store.Value:
		out := make(map[string]store.Value, len(n))
		for k, child := range n {
			out[k] = deepCopy(child)
		}
		return out
	case []store.Value:
		out := make([]store.Value, len(n))
		for i, child := range n {
			out[i] = deepCopy(child)
		}
		return out
	default:
		return v
	}
}
