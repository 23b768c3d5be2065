package docstore

import (
	"context"
	"errors"
	"fmt"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/store"
)

// planRepository implements repository.PlanRepository.
type planRepository struct {
	store store.Client
}

// NewPlanRepository creates a new plan repository on the given store.
func NewPlanRepository(client store.Client) repository.PlanRepository {
	return &planRepository{store: client}
}

// Create appends a plan with its 7 day slots; the push key becomes the id.
func (r *planRepository) Create(ctx context.Context, uid string, plan *domain.Plan) (string, error) {
	if uid == "" {
		return "", repository.ErrUnauthenticated
	}
	if plan == nil {
		return "", errors.New("plan is required")
	}
	if err := plan.Validate(); err != nil {
		return "", err
	}

	doc := *plan
	doc.ID = ""
	doc.SchemaVersion = domain.SchemaVersion
	value, err := encode(doc)
	if err != nil {
		return "", err
	}

	key, err := r.store.Push(ctx, userPath(uid, plansSegment), value)
	if err != nil {
		return "", err
	}
	return key, nil
}

// Get resolves a single plan by id, ErrNotFound when no document exists.
func (r *planRepository) Get(ctx context.Context, uid, planID string) (*domain.Plan, error) {
	if uid == "" {
		return nil, repository.ErrUnauthenticated
	}
	if planID == "" {
		return nil, errors.New("plan id is required")
	}

	value, err := store.ReadOnce(ctx, r.store, userPath(uid, plansSegment, planID))
	if err != nil {
		return nil, fetchErr("plan", err)
	}
	if value == nil {
		return nil, repository.ErrNotFound
	}

	var plan domain.Plan
	if err := decode(value, &plan); err != nil {
		return nil, fetchErr("plan", err)
	}
	plan.ID = planID
	return &plan, nil
}

// List resolves all plans with ids attached from the store keys; an empty
// namespace resolves an empty slice.
func (r *planRepository) List(ctx context.Context, uid string) ([]domain.Plan, error) {
	if uid == "" {
		return nil, repository.ErrUnauthenticated
	}

	value, err := store.ReadOnce(ctx, r.store, userPath(uid, plansSegment))
	if err != nil {
		return nil, fetchErr("plans", err)
	}
	if value == nil {
		return []domain.Plan{}, nil
	}

	byKey, ok := value.(map[string]store.Value)
	if !ok {
		return nil, fetchErr("plans", fmt.Errorf("unexpected snapshot shape %T", value))
	}

	plans := make([]domain.Plan, 0, len(byKey))
	for _, key := range sortedKeys(byKey) {
		var p domain.Plan
		if err := decode(byKey[key], &p); err != nil {
			return nil, fetchErr("plans", err)
		}
		p.ID = key
		plans = append(plans, p)
	}
	return plans, nil
}

// Delete removes the plan document. The active-plan pointer is left alone
// even when it references this plan; the resolver reads a dangling id as
// "no active plan".
func (r *planRepository) Delete(ctx context.Context, uid, planID string) error {
	if uid == "" {
		return repository.ErrUnauthenticated
	}
	if planID == "" {
		return errors.New("plan id is required")
	}
	return r.store.Remove(ctx, userPath(uid, plansSegment, planID))
}
