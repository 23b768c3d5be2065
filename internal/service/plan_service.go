package service

import (
	"context"
	"errors"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
)

var (
	ErrPlanValidation = errors.New("plan validation failed")
)

// WeeklyProgress carries the home-dashboard counters derived from the
// active plan and the current weekday.
type WeeklyProgress struct {
	// WeeksWorkouts counts the plan's rest-day slots. The shipped dashboard
	// has always counted it this way despite the label, so the rule is kept
	// as-is rather than silently inverted.
	WeeksWorkouts int `json:"weeksWorkouts"`
	// WorkoutsDone counts the weekdays already passed this week (Sunday
	// first), regardless of whether they carried a workout.
	WorkoutsDone int `json:"workoutsDone"`
}

// Percent returns WorkoutsDone/WeeksWorkouts as a percentage. A plan with
// no rest-day slots yields NaN; the presentation layer decides how to show
// that, not this package.
func (p WeeklyProgress) Percent() float64 {
	return float64(p.WorkoutsDone) / float64(p.WeeksWorkouts) * 100
}

// TodayView is what the home dashboard renders: today's slot (nil when the
// plan has no slot for today) and the weekly progress counters.
type TodayView struct {
	Slot     *domain.DaySlot `json:"slot"`
	Progress WeeklyProgress  `json:"progress"`
}

// PlanService manages plans and resolves the user's active plan.
type PlanService interface {
	CreatePlan(ctx context.Context, uid string, plan *domain.Plan) (*domain.Plan, error)
	GetPlans(ctx context.Context, uid string) ([]domain.Plan, error)
	DeletePlan(ctx context.Context, uid, planID string) error
	Activate(ctx context.Context, uid, planID string) error
	// ActivePlan resolves nil when no plan is active, including when the
	// stored active id points at a deleted plan.
	ActivePlan(ctx context.Context, uid string) (*domain.Plan, error)
	// Today resolves nil when there is no active plan.
	Today(ctx context.Context, uid string, now time.Time) (*TodayView, error)
}

type planService struct {
	planRepo   repository.PlanRepository
	activeRepo repository.ActivePlanRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, activeRepo repository.ActivePlanRepository) PlanService {
	return &planService{
		planRepo:   planRepo,
		activeRepo: activeRepo,
	}
}

func (s *planService) CreatePlan(ctx context.Context, uid string, plan *domain.Plan) (*domain.Plan, error) {
	if plan == nil {
		return nil, ErrPlanValidation
	}
	if err := plan.Validate(); err != nil {
		return nil, errors.Join(ErrPlanValidation, err)
	}

	planID, err := s.planRepo.Create(ctx, uid, plan)
	if err != nil {
		return nil, err
	}
	created := *plan
	created.ID = planID
	created.SchemaVersion = domain.SchemaVersion
	return &created, nil
}

func (s *planService) GetPlans(ctx context.Context, uid string) ([]domain.Plan, error) {
	return s.planRepo.List(ctx, uid)
}

// DeletePlan removes the plan without touching the active-plan pointer. A
// pointer left dangling is healed on the read side by ActivePlan.
func (s *planService) DeletePlan(ctx context.Context, uid, planID string) error {
	return s.planRepo.Delete(ctx, uid, planID)
}

func (s *planService) Activate(ctx context.Context, uid, planID string) error {
	return s.activeRepo.Activate(ctx, uid, planID)
}

func (s *planService) ActivePlan(ctx context.Context, uid string) (*domain.Plan, error) {
	planID, err := s.activeRepo.ActivePlanID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if planID == "" {
		return nil, nil
	}

	plan, err := s.planRepo.Get(ctx, uid, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Dangling active id (the plan was deleted): no active plan.
			return nil, nil
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) Today(ctx context.Context, uid string, now time.Time) (*TodayView, error) {
	plan, err := s.ActivePlan(ctx, uid)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, nil
	}
	return &TodayView{
		Slot:     ResolveToday(plan, now),
		Progress: Progress(plan, now),
	}, nil
}

// ResolveToday maps now's weekday to the plan's matching day slot by name
// equality. A malformed plan without the current weekday yields nil; callers
// treat that as "no workout today", not as an error.
func ResolveToday(plan *domain.Plan, now time.Time) *domain.DaySlot {
	return plan.SlotFor(domain.WeekdayName(now))
}

// Progress derives the weekly counters from a plan and the current weekday.
func Progress(plan *domain.Plan, now time.Time) WeeklyProgress {
	var progress WeeklyProgress
	todayIdx := int(now.Weekday())
	for _, slot := range plan.Days {
		if slot.RestDay {
			progress.WeeksWorkouts++
		}
		dayIdx := domain.SundayFirstIndex(slot.Day)
		if dayIdx >= 0 && dayIdx < todayIdx {
			progress.WorkoutsDone++
		}
	}
	return progress
}
