package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Value is a decoded JSON-like document tree: map[string]Value, []Value,
// string, float64, bool or nil. Absence of a value at a path is represented
// by a nil Value, not an error.
type Value = any

var (
	ErrInvalidPath        = errors.New("invalid store path")
	ErrSubscriptionClosed = errors.New("subscription closed")
)

// Client is a path-addressed document store. Paths are slash-separated
// segments ("users/{uid}/workouts/{id}"); every write targets exactly one
// path, except Update, which applies a multi-path patch through a single
// call so that callers never issue "atomic-looking" sequences of writes.
type Client interface {
	// Get returns the value at path, or nil when nothing is stored there.
	Get(ctx context.Context, path string) (Value, error)

	// Set fully overwrites the value at path, replacing any children.
	Set(ctx context.Context, path string, value Value) error

	// Push stores value under path with a store-generated unique key and
	// returns the key. Keys sort in creation order.
	Push(ctx context.Context, path string, value Value) (string, error)

	// Update applies all entries of a multi-path patch through one call.
	Update(ctx context.Context, patch map[string]Value) error

	// Remove deletes the value at path and everything below it.
	Remove(ctx context.Context, path string) error

	// Subscribe delivers the current snapshot of path first and then a new
	// snapshot after every change under it, until the subscription is
	// cancelled. The caller owns the subscription and must cancel it.
	Subscribe(ctx context.Context, path string) (*Subscription, error)
}

// Subscription is a caller-owned handle on a live watch of a store path.
type Subscription struct {
	values chan Value
	errs   chan error
	cancel func()
}

// NewSubscription is used by Client implementations; values and errs are
// closed by the implementation once cancel has taken effect.
func NewSubscription(values chan Value, errs chan error, cancel func()) *Subscription {
	return &Subscription{values: values, errs: errs, cancel: cancel}
}

// Values yields snapshots, starting with the current one.
func (s *Subscription) Values() <-chan Value { return s.values }

// Errs yields at most one terminal error from the underlying watch.
func (s *Subscription) Errs() <-chan error { return s.errs }

// Cancel detaches the listener. Safe to call more than once.
func (s *Subscription) Cancel() { s.cancel() }

// ReadOnce attaches a subscription to path, resolves with the first snapshot
// and detaches immediately. This is the only read primitive the repositories
// use; a screen that wants live updates subscribes explicitly instead.
func ReadOnce(ctx context.Context, c Client, path string) (Value, error) {
	sub, err := c.Subscribe(ctx, path)
	if err != nil {
		return nil, err
	}
	defer sub.Cancel()

	select {
	case v, ok := <-sub.Values():
		if !ok {
			return nil, ErrSubscriptionClosed
		}
		return v, nil
	case err, ok := <-sub.Errs():
		if !ok {
			return nil, ErrSubscriptionClosed
		}
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SplitPath validates a path and returns its segments.
func SplitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	segments := strings.Split(path, "/")
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return segments, nil
}

// JoinPath joins path segments.
func JoinPath(segments ...string) string {
	return strings.Join(segments, "/")
}

// IsAncestor reports whether ancestor equals path or is a path prefix of it.
func IsAncestor(ancestor, path string) bool {
	return ancestor == path || strings.HasPrefix(path, ancestor+"/")
}

// PushKey generates a push key: a millisecond timestamp prefix keeps keys
// sorting in creation order, the uuid suffix keeps them unique.
func PushKey() string {
	return fmt.Sprintf("%013x-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
