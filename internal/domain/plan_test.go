package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restWeek() *Plan {
	days := make([]DaySlot, len(Weekdays))
	for i, day := range Weekdays {
		days[i] = DaySlot{Day: day, RestDay: true}
	}
	return &Plan{Name: "Deload", Days: days}
}

func TestPlanValidate(t *testing.T) {
	require.NoError(t, restWeek().Validate())

	p := restWeek()
	p.Name = ""
	assert.Error(t, p.Validate())

	p = restWeek()
	p.Days = p.Days[:6]
	assert.Error(t, p.Validate())

	p = restWeek()
	p.Days[0], p.Days[1] = p.Days[1], p.Days[0]
	assert.Error(t, p.Validate())

	// Rest day and workout are mutually exclusive.
	p = restWeek()
	p.Days[2].Workout = &Workout{Name: "Push"}
	assert.Error(t, p.Validate())

	// A non-rest slot must carry a workout.
	p = restWeek()
	p.Days[2].RestDay = false
	assert.Error(t, p.Validate())

	p = restWeek()
	p.Days[2].RestDay = false
	p.Days[2].Workout = &Workout{Name: "Push"}
	assert.NoError(t, p.Validate())
}

func TestSlotFor(t *testing.T) {
	p := restWeek()

	slot := p.SlotFor("Wednesday")
	require.NotNil(t, slot)
	assert.Equal(t, "Wednesday", slot.Day)

	assert.Nil(t, p.SlotFor("Someday"))

	// The returned slot aliases the plan, matching how callers render the
	// active plan's day in place.
	slot.RestDay = false
	assert.False(t, p.Days[2].RestDay)
}

func TestWeekdayName(t *testing.T) {
	// 2025-06-04 is a Wednesday.
	assert.Equal(t, "Wednesday", WeekdayName(time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Sunday", WeekdayName(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))
}

func TestSundayFirstIndex(t *testing.T) {
	assert.Equal(t, 0, SundayFirstIndex("Sunday"))
	assert.Equal(t, 1, SundayFirstIndex("Monday"))
	assert.Equal(t, 6, SundayFirstIndex("Saturday"))
	assert.Equal(t, -1, SundayFirstIndex("Someday"))
}
