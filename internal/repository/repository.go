package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fittrack/fitness-tracker/internal/domain"
)

// Error constants for the repository layer. Absence of data is not a
// failure: list operations resolve empty slices and single-document reads
// resolve nil, so ErrNotFound only surfaces where a caller asked for a
// specific document by id.
var (
	ErrNotFound        = RepositoryError("not found")
	ErrUnauthenticated = RepositoryError("unauthenticated: no user for namespaced call")
	ErrFetchFailed     = RepositoryError("fetch failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// WorkoutRepository manages a user's standalone workouts. Every call is
// namespaced by the uid passed in explicitly; identity is never cached at a
// wider scope than a single call.
type WorkoutRepository interface {
	Create(ctx context.Context, uid string, workout *domain.Workout) (string, error)
	// Update rewrites one plan day slot and, when workoutID is non-empty,
	// the standalone workout record as well. Both writes travel in a single
	// multi-path patch.
	Update(ctx context.Context, uid, workoutID, planID string, dayIndex int, workout *domain.Workout) error
	// Delete removes the workout record only. Plan day slots referencing it
	// are left dangling; the read side tolerates that.
	Delete(ctx context.Context, uid, workoutID string) error
	List(ctx context.Context, uid string) ([]domain.Workout, error)
}

// PlanRepository manages a user's 7-day workout plans.
type PlanRepository interface {
	Create(ctx context.Context, uid string, plan *domain.Plan) (string, error)
	Get(ctx context.Context, uid, planID string) (*domain.Plan, error)
	List(ctx context.Context, uid string) ([]domain.Plan, error)
	// Delete does not clear the active-plan pointer even when it references
	// the deleted plan; the resolver treats a dangling id as "no active plan".
	Delete(ctx context.Context, uid, planID string) error
}

// ActivePlanRepository persists the single "active plan" scalar per user.
type ActivePlanRepository interface {
	// Activate unconditionally overwrites the active plan id. No validation
	// that planID exists; last write wins.
	Activate(ctx context.Context, uid, planID string) error
	// ActivePlanID resolves the stored id, or "" when unset.
	ActivePlanID(ctx context.Context, uid string) (string, error)
}

// ProfileRepository manages the single per-user profile document.
type ProfileRepository interface {
	// Get resolves nil when no profile document exists yet.
	Get(ctx context.Context, uid string) (*domain.Profile, error)
	// Update fully overwrites the profile document.
	Update(ctx context.Context, uid string, profile *domain.Profile) error
}

// UserRepository defines the interface for interacting with identity records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}
