package service

import (
	"context"
	"errors"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
)

var (
	ErrWorkoutValidation = errors.New("workout validation failed")
)

// WorkoutService manages a user's standalone workouts.
type WorkoutService interface {
	CreateWorkout(ctx context.Context, uid string, workout *domain.Workout) (*domain.Workout, error)
	// UpdateWorkout rewrites the day slot of a plan and, when workoutID is
	// non-empty, the standalone workout record too.
	UpdateWorkout(ctx context.Context, uid, workoutID, planID string, dayIndex int, workout *domain.Workout) error
	DeleteWorkout(ctx context.Context, uid, workoutID string) error
	GetWorkouts(ctx context.Context, uid string) ([]domain.Workout, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

func (s *workoutService) CreateWorkout(ctx context.Context, uid string, workout *domain.Workout) (*domain.Workout, error) {
	if workout == nil || workout.Name == "" {
		return nil, ErrWorkoutValidation
	}

	workoutID, err := s.workoutRepo.Create(ctx, uid, workout)
	if err != nil {
		return nil, err
	}
	created := *workout
	created.ID = workoutID
	created.SchemaVersion = domain.SchemaVersion
	return &created, nil
}

func (s *workoutService) UpdateWorkout(ctx context.Context, uid, workoutID, planID string, dayIndex int, workout *domain.Workout) error {
	if workout == nil || workout.Name == "" {
		return ErrWorkoutValidation
	}
	return s.workoutRepo.Update(ctx, uid, workoutID, planID, dayIndex, workout)
}

func (s *workoutService) DeleteWorkout(ctx context.Context, uid, workoutID string) error {
	return s.workoutRepo.Delete(ctx, uid, workoutID)
}

func (s *workoutService) GetWorkouts(ctx context.Context, uid string) ([]domain.Workout, error) {
	return s.workoutRepo.List(ctx, uid)
}
