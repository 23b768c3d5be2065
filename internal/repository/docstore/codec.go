// Package docstore implements the workout, plan, active-plan and profile
// repositories on the path-addressed document store. State lives under a
// per-user namespace:
//
//	users/{uid}/workouts/{workoutId}
//	users/{uid}/workoutPlans/{planId}
//	users/{uid}/activePlanId
//	users/{uid}/profile
//
// All reads go through store.ReadOnce (subscribe, first snapshot, detach).
package docstore

import (
	"encoding/json"
	"fmt"
	"sort"

	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/store"
)

const (
	workoutsSegment     = "workouts"
	plansSegment        = "workoutPlans"
	activePlanIDSegment = "activePlanId"
	profileSegment      = "profile"
)

func userPath(uid string, parts ...string) string {
	return store.JoinPath(append([]string{"users", uid}, parts...)...)
}

// encode converts a domain struct into the JSON-like tree the store expects.
func encode(v any) (store.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out store.Value
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// decode converts a store value back into a domain struct.
func decode(value store.Value, dst any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// sortedKeys returns the keys of a keyed-collection snapshot in key order.
// Push keys sort in creation order, so this is also insertion order.
func sortedKeys(m map[string]store.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fetchErr(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", repository.ErrFetchFailed, what, err)
}
