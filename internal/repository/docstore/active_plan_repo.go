package docstore

import (
	"context"
	"errors"
	"fmt"

	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/store"
)

// activePlanRepository implements repository.ActivePlanRepository.
type activePlanRepository struct {
	store store.Client
}

// NewActivePlanRepository creates a new active-plan repository.
func NewActivePlanRepository(client store.Client) repository.ActivePlanRepository {
	return &activePlanRepository{store: client}
}

// Activate overwrites the active plan id unconditionally. No check that
// planID refers to an existing plan; last write wins.
func (r *activePlanRepository) Activate(ctx context.Context, uid, planID string) error {
	if uid == "" {
		return repository.ErrUnauthenticated
	}
	if planID == "" {
		return errors.New("plan id is required")
	}
	return r.store.Set(ctx, userPath(uid, activePlanIDSegment), planID)
}

// ActivePlanID resolves the stored scalar, "" when unset.
func (r *activePlanRepository) ActivePlanID(ctx context.Context, uid string) (string, error) {
	if uid == "" {
		return "", repository.ErrUnauthenticated
	}

	value, err := store.ReadOnce(ctx, r.store, userPath(uid, activePlanIDSegment))
	if err != nil {
		return "", fetchErr("active plan id", err)
	}
	if value == nil {
		return "", nil
	}
	id, ok := value.(string)
	if !ok {
		return "", fetchErr("active plan id", fmt.Errorf("unexpected snapshot shape %T", value))
	}
	return id, nil
}
