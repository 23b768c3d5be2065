package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/store"
	"fittrack/fitness-tracker/internal/store/memory"
)

const testUID = "u1"

func validPlan(name string) *domain.Plan {
	days := make([]domain.DaySlot, len(domain.Weekdays))
	for i, day := range domain.Weekdays {
		days[i] = domain.DaySlot{Day: day, RestDay: true}
	}
	return &domain.Plan{Name: name, Days: days}
}

func TestWorkoutCreateAndList(t *testing.T) {
	s := memory.New()
	repo := NewWorkoutRepository(s)
	ctx := context.Background()

	id, err := repo.Create(ctx, testUID, &domain.Workout{
		Name: "Push Day",
		Exercises: []domain.ExerciseRef{
			{ExerciseID: "ex1", Name: "Bench Press", Sets: "4", Reps: "8", RestTime: "90s"},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	workouts, err := repo.List(ctx, testUID)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Equal(t, id, workouts[0].ID)
	assert.Equal(t, "Push Day", workouts[0].Name)
	assert.Equal(t, domain.SchemaVersion, workouts[0].SchemaVersion)

	// The id is the store key, never a field of the stored document.
	raw, err := s.Get(ctx, "users/"+testUID+"/workouts/"+id)
	require.NoError(t, err)
	assert.NotContains(t, raw.(map[string]store.Value), "id")
}

func TestWorkoutListEmptyIsNotAnError(t *testing.T) {
	repo := NewWorkoutRepository(memory.New())

	workouts, err := repo.List(context.Background(), testUID)
	require.NoError(t, err)
	assert.NotNil(t, workouts)
	assert.Empty(t, workouts)
}

func TestWorkoutCreateListsInCreationOrder(t *testing.T) {
	repo := NewWorkoutRepository(memory.New())
	ctx := context.Background()

	for _, name := range []string{"Push", "Pull", "Legs"} {
		_, err := repo.Create(ctx, testUID, &domain.Workout{Name: name})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	workouts, err := repo.List(ctx, testUID)
	require.NoError(t, err)
	require.Len(t, workouts, 3)
	assert.Equal(t, "Push", workouts[0].Name)
	assert.Equal(t, "Pull", workouts[1].Name)
	assert.Equal(t, "Legs", workouts[2].Name)
}

func TestWorkoutUpdateWritesSlotAndRecordTogether(t *testing.T) {
	s := memory.New()
	workoutRepo := NewWorkoutRepository(s)
	planRepo := NewPlanRepository(s)
	ctx := context.Background()

	workoutID, err := workoutRepo.Create(ctx, testUID, &domain.Workout{Name: "Push"})
	require.NoError(t, err)
	planID, err := planRepo.Create(ctx, testUID, validPlan("PPL"))
	require.NoError(t, err)

	updated := &domain.Workout{Name: "Push v2", Exercises: []domain.ExerciseRef{
		{ExerciseID: "ex1", Name: "Incline Press", Sets: "3", Reps: "10", RestTime: "60s"},
	}}
	require.NoError(t, workoutRepo.Update(ctx, testUID, workoutID, planID, 2, updated))

	// The standalone record picked up the new content.
	workouts, err := workoutRepo.List(ctx, testUID)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Equal(t, "Push v2", workouts[0].Name)

	// The Wednesday slot now embeds the workout.
	plan, err := planRepo.Get(ctx, testUID, planID)
	require.NoError(t, err)
	slot := plan.Days[2]
	assert.Equal(t, "Wednesday", slot.Day)
	assert.False(t, slot.RestDay)
	require.NotNil(t, slot.Workout)
	assert.Equal(t, "Push v2", slot.Workout.Name)
	assert.Equal(t, workoutID, slot.Workout.ID)
}

func TestWorkoutUpdateWithoutRecordKeepsEmbeddedID(t *testing.T) {
	s := memory.New()
	workoutRepo := NewWorkoutRepository(s)
	planRepo := NewPlanRepository(s)
	ctx := context.Background()

	planID, err := planRepo.Create(ctx, testUID, validPlan("PPL"))
	require.NoError(t, err)

	// Assigning an existing workout to a day touches only the slot.
	assigned := &domain.Workout{ID: "existing-workout", Name: "Legs"}
	require.NoError(t, workoutRepo.Update(ctx, testUID, "", planID, 4, assigned))

	workouts, err := workoutRepo.List(ctx, testUID)
	require.NoError(t, err)
	assert.Empty(t, workouts)

	plan, err := planRepo.Get(ctx, testUID, planID)
	require.NoError(t, err)
	require.NotNil(t, plan.Days[4].Workout)
	assert.Equal(t, "existing-workout", plan.Days[4].Workout.ID)
}

func TestWorkoutUpdateRejectsBadDayIndex(t *testing.T) {
	repo := NewWorkoutRepository(memory.New())
	ctx := context.Background()

	err := repo.Update(ctx, testUID, "w1", "p1", 7, &domain.Workout{Name: "Push"})
	assert.Error(t, err)
	err = repo.Update(ctx, testUID, "w1", "p1", -1, &domain.Workout{Name: "Push"})
	assert.Error(t, err)
}

func TestWorkoutDeleteLeavesPlanSlotDangling(t *testing.T) {
	s := memory.New()
	workoutRepo := NewWorkoutRepository(s)
	planRepo := NewPlanRepository(s)
	ctx := context.Background()

	workoutID, err := workoutRepo.Create(ctx, testUID, &domain.Workout{Name: "Push"})
	require.NoError(t, err)
	planID, err := planRepo.Create(ctx, testUID, validPlan("PPL"))
	require.NoError(t, err)
	require.NoError(t, workoutRepo.Update(ctx, testUID, workoutID, planID, 0, &domain.Workout{Name: "Push"}))

	require.NoError(t, workoutRepo.Delete(ctx, testUID, workoutID))

	workouts, err := workoutRepo.List(ctx, testUID)
	require.NoError(t, err)
	assert.Empty(t, workouts)

	// No cascade: the Monday slot still references the deleted workout.
	plan, err := planRepo.Get(ctx, testUID, planID)
	require.NoError(t, err)
	require.NotNil(t, plan.Days[0].Workout)
	assert.Equal(t, workoutID, plan.Days[0].Workout.ID)
}

func TestPlanCreateValidates(t *testing.T) {
	repo := NewPlanRepository(memory.New())
	ctx := context.Background()

	_, err := repo.Create(ctx, testUID, &domain.Plan{Name: "short week", Days: []domain.DaySlot{{Day: "Monday", RestDay: true}}})
	assert.Error(t, err)

	bad := validPlan("bad order")
	bad.Days[0], bad.Days[1] = bad.Days[1], bad.Days[0]
	_, err = repo.Create(ctx, testUID, bad)
	assert.Error(t, err)
}

func TestPlanGetMissingIsNotFound(t *testing.T) {
	repo := NewPlanRepository(memory.New())

	_, err := repo.Get(context.Background(), testUID, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanDeleteKeepsActivePointer(t *testing.T) {
	s := memory.New()
	planRepo := NewPlanRepository(s)
	activeRepo := NewActivePlanRepository(s)
	ctx := context.Background()

	planID, err := planRepo.Create(ctx, testUID, validPlan("PPL"))
	require.NoError(t, err)
	require.NoError(t, activeRepo.Activate(ctx, testUID, planID))
	require.NoError(t, planRepo.Delete(ctx, testUID, planID))

	// The pointer dangles; resolving it is the read side's problem.
	id, err := activeRepo.ActivePlanID(ctx, testUID)
	require.NoError(t, err)
	assert.Equal(t, planID, id)

	_, err = planRepo.Get(ctx, testUID, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActivateLastWriteWins(t *testing.T) {
	repo := NewActivePlanRepository(memory.New())
	ctx := context.Background()

	require.NoError(t, repo.Activate(ctx, testUID, "plan-a"))
	require.NoError(t, repo.Activate(ctx, testUID, "plan-b"))

	id, err := repo.ActivePlanID(ctx, testUID)
	require.NoError(t, err)
	assert.Equal(t, "plan-b", id)
}

func TestActivePlanIDUnsetIsEmpty(t *testing.T) {
	repo := NewActivePlanRepository(memory.New())

	id, err := repo.ActivePlanID(context.Background(), testUID)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestProfileRoundTrip(t *testing.T) {
	repo := NewProfileRepository(memory.New())
	ctx := context.Background()

	got, err := repo.Get(ctx, testUID)
	require.NoError(t, err)
	assert.Nil(t, got)

	profile := &domain.Profile{
		Name: "Alex", Age: 30, Gender: "Male",
		Height: 180, Weight: 80,
		ActivityLevel: domain.ActivityModerate, Units: "metric",
	}
	require.NoError(t, repo.Update(ctx, testUID, profile))

	got, err = repo.Get(ctx, testUID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alex", got.Name)
	assert.Equal(t, domain.SchemaVersion, got.SchemaVersion)

	// A second update fully replaces the document.
	require.NoError(t, repo.Update(ctx, testUID, &domain.Profile{Name: "Alex", Units: "imperial"}))
	got, err = repo.Get(ctx, testUID)
	require.NoError(t, err)
	assert.Zero(t, got.Age)
	assert.Equal(t, "imperial", got.Units)
}

func TestEmptyUIDIsRejectedEverywhere(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	_, err := NewWorkoutRepository(s).Create(ctx, "", &domain.Workout{Name: "Push"})
	assert.ErrorIs(t, err, repository.ErrUnauthenticated)
	_, err = NewWorkoutRepository(s).List(ctx, "")
	assert.ErrorIs(t, err, repository.ErrUnauthenticated)
	_, err = NewPlanRepository(s).Create(ctx, "", validPlan("p"))
	assert.ErrorIs(t, err, repository.ErrUnauthenticated)
	err = NewActivePlanRepository(s).Activate(ctx, "", "p1")
	assert.ErrorIs(t, err, repository.ErrUnauthenticated)
	_, err = NewProfileRepository(s).Get(ctx, "")
	assert.ErrorIs(t, err, repository.ErrUnauthenticated)
}

func TestNamespacesAreIsolatedPerUser(t *testing.T) {
	s := memory.New()
	repo := NewWorkoutRepository(s)
	ctx := context.Background()

	_, err := repo.Create(ctx, "alice", &domain.Workout{Name: "Push"})
	require.NoError(t, err)

	workouts, err := repo.List(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, workouts)
}
