package domain

import (
	"fmt"
	"time"
)

// SchemaVersion is stamped on every stored document so a future migration
// can tell apart documents written by older builds.
const SchemaVersion = 1

// Weekdays lists the canonical day names in plan order (Monday first).
// Every plan carries exactly one slot per entry, in this order.
var Weekdays = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DaySlot is one weekday's assignment within a plan: either a workout or a
// rest day, never both.
type DaySlot struct {
	Day     string   `json:"day"`
	Workout *Workout `json:"workout,omitempty"`
	RestDay bool     `json:"restDay"`
}

// Plan is a named 7-day workout schedule. ID is the store-assigned key and
// is never persisted inside the document itself.
type Plan struct {
	ID            string    `json:"id,omitempty"`
	Name          string    `json:"name"`
	Days          []DaySlot `json:"days"`
	SchemaVersion int       `json:"schemaVersion"`
}

// Validate checks the structural invariants of a plan: exactly 7 slots, one
// per canonical weekday in weekday order, and RestDay set iff the slot has
// no workout.
func (p *Plan) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("plan name is required")
	}
	if len(p.Days) != len(Weekdays) {
		return fmt.Errorf("plan must have exactly %d day slots, got %d", len(Weekdays), len(p.Days))
	}
	for i, slot := range p.Days {
		if slot.Day != Weekdays[i] {
			return fmt.Errorf("day slot %d must be %q, got %q", i, Weekdays[i], slot.Day)
		}
		if slot.RestDay && slot.Workout != nil {
			return fmt.Errorf("%s is marked as a rest day but carries a workout", slot.Day)
		}
		if !slot.RestDay && slot.Workout == nil {
			return fmt.Errorf("%s has no workout and is not marked as a rest day", slot.Day)
		}
	}
	return nil
}

// SlotFor returns the slot whose Day matches the given weekday name, or nil
// when the plan does not contain that weekday (malformed plan). Callers must
// treat nil as "no workout today".
func (p *Plan) SlotFor(weekday string) *DaySlot {
	for i := range p.Days {
		if p.Days[i].Day == weekday {
			return &p.Days[i]
		}
	}
	return nil
}

// WeekdayName maps a time.Time to the canonical weekday name used in day slots.
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// SundayFirstIndex returns the Sunday-based index (Sunday=0 .. Saturday=6) of
// a weekday name, or -1 for an unknown name. The weekly-progress math counts
// days in this ordering, matching how the home dashboard always has.
func SundayFirstIndex(weekday string) int {
	names := [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	for i, n := range names {
		if n == weekday {
			return i
		}
	}
	return -1
}
