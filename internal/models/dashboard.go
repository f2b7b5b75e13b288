package models

// MentorDaySummary is one mentor's slice of today's timetable, with the
// student ids and category tags deduplicated across slots.
type MentorDaySummary struct {
	MentorID   string     `json:"mentorId"`
	MentorName string     `json:"mentorName"`
	StudentIDs []string   `json:"studentIds"`
	Categories []Category `json:"categories"`
}

// DashboardSummary is the read-only landing page aggregate.
type DashboardSummary struct {
	Date          string                `json:"date"`
	Day           string                `json:"day"`
	Mentors       []MentorDaySummary    `json:"mentors"`
	WeeklyPlans   map[string]WeeklyPlan `json:"weeklyPlans"`
	UpcomingDates UpcomingDates         `json:"upcomingDates"`
}
