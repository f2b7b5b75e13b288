package models

import "fmt"

// Weekday keys used by the timetable grid. Weekends are not scheduled.
var TimetableDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

// SlotAssignment places a mentor with a group of students in one timetable
// cell for one category. A cell can hold several assignments running in
// parallel.
type SlotAssignment struct {
	MentorID   string   `json:"mentorId"`
	Category   Category `json:"sessionType"`
	StudentIDs []string `json:"studentIds"`
}

// Timetable is the full weekly grid: day -> slot -> parallel assignments.
// Slot keys are "session1".."sessionN" with N taken from settings.
type Timetable map[string]map[string][]SlotAssignment

// NewTimetable returns an empty grid with all weekday keys present.
func NewTimetable() Timetable {
	t := make(Timetable, len(TimetableDays))
	for _, day := range TimetableDays {
		t[day] = make(map[string][]SlotAssignment)
	}
	return t
}

// Cell returns the assignments in one cell, nil when empty.
func (t Timetable) Cell(day, slot string) []SlotAssignment {
	if t == nil {
		return nil
	}
	slots, ok := t[day]
	if !ok {
		return nil
	}
	return slots[slot]
}

// SlotName renders the canonical key for the n-th slot (1-based).
func SlotName(n int) string {
	return fmt.Sprintf("session%d", n)
}

// ValidDay reports whether day is one of the timetable weekdays.
func ValidDay(day string) bool {
	for _, d := range TimetableDays {
		if d == day {
			return true
		}
	}
	return false
}

// ValidSlot reports whether slot is within session1..sessionN.
func ValidSlot(slot string, sessionsPerDay int) bool {
	for n := 1; n <= sessionsPerDay; n++ {
		if SlotName(n) == slot {
			return true
		}
	}
	return false
}

// PutCellRequest replaces the full assignment list of a timetable cell. An
// empty list clears the cell.
type PutCellRequest struct {
	Assignments []SlotAssignment `json:"assignments" validate:"dive"`
}
