package docstore

import (
	"context"
	"errors"
	"fmt"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/store"
)

// workoutRepository implements repository.WorkoutRepository.
type workoutRepository struct {
	store store.Client
}

// NewWorkoutRepository creates a new workout repository on the given store.
func NewWorkoutRepository(client store.Client) repository.WorkoutRepository {
	return &workoutRepository{store: client}
}

// Create appends a new workout under the user's namespace; the
// store-generated push key becomes the workout id.
func (r *workoutRepository) Create(ctx context.Context, uid string, workout *domain.Workout) (string, error) {
	if uid == "" {
		return "", repository.ErrUnauthenticated
	}
	if workout == nil || workout.Name == "" {
		return "", errors.New("workout requires a name")
	}

	doc := *workout
	doc.ID = "" // the key is the identity, never persisted inside the document
	doc.SchemaVersion = domain.SchemaVersion
	value, err := encode(doc)
	if err != nil {
		return "", err
	}

	key, err := r.store.Push(ctx, userPath(uid, workoutsSegment), value)
	if err != nil {
		return "", err
	}
	return key, nil
}

// Update rewrites the day slot of a plan and, when workoutID is non-empty,
// the standalone workout record too. Both paths go through one multi-path
// patch so the store applies them in a single call.
func (r *workoutRepository) Update(ctx context.Context, uid, workoutID, planID string, dayIndex int, workout *domain.Workout) error {
	if uid == "" {
		return repository.ErrUnauthenticated
	}
	if planID == "" {
		return errors.New("plan id is required")
	}
	if dayIndex < 0 || dayIndex >= len(domain.Weekdays) {
		return fmt.Errorf("day index %d out of range", dayIndex)
	}
	if workout == nil {
		return errors.New("workout is required")
	}

	slotWorkout := *workout
	if workoutID != "" {
		slotWorkout.ID = workoutID
	}
	slotWorkout.SchemaVersion = domain.SchemaVersion
	slot := domain.DaySlot{
		Day:     domain.Weekdays[dayIndex],
		Workout: &slotWorkout,
		RestDay: false,
	}
	slotValue, err := encode(slot)
	if err != nil {
		return err
	}

	patch := map[string]store.Value{
		userPath(uid, plansSegment, planID, "days", fmt.Sprintf("%d", dayIndex)): slotValue,
	}

	if workoutID != "" {
		doc := *workout
		doc.ID = ""
		doc.SchemaVersion = domain.SchemaVersion
		workoutValue, err := encode(doc)
		if err != nil {
			return err
		}
		patch[userPath(uid, workoutsSegment, workoutID)] = workoutValue
	}

	return r.store.Update(ctx, patch)
}

// Delete removes the workout record. It deliberately does not touch plans:
// a day slot referencing the deleted workout keeps its dangling reference.
func (r *workoutRepository) Delete(ctx context.Context, uid, workoutID string) error {
	if uid == "" {
		return repository.ErrUnauthenticated
	}
	if workoutID == "" {
		return errors.New("workout id is required")
	}
	return r.store.Remove(ctx, userPath(uid, workoutsSegment, workoutID))
}

// List resolves all of the user's workouts with ids attached from the store
// keys. A user with no workouts resolves an empty slice, not an error.
func (r *workoutRepository) List(ctx context.Context, uid string) ([]domain.Workout, error) {
	if uid == "" {
		return nil, repository.ErrUnauthenticated
	}

	value, err := store.ReadOnce(ctx, r.store, userPath(uid, workoutsSegment))
	if err != nil {
		return nil, fetchErr("workouts", err)
	}
	if value == nil {
		return []domain.Workout{}, nil
	}

	byKey, ok := value.(map[string]store.Value)
	if !ok {
		return nil, fetchErr("workouts", fmt.Errorf("unexpected snapshot shape %T", value))
	}

	workouts := make([]domain.Workout, 0, len(byKey))
	for _, key := range sortedKeys(byKey) {
		var w domain.Workout
		if err := decode(byKey[key], &w); err != nil {
			return nil, fetchErr("workouts", err)
		}
		w.ID = key
		workouts = append(workouts, w)
	}
	return workouts, nil
}
