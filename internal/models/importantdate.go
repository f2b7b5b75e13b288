package models

// ImportantDate is a centre-wide event in the shared calendar. An empty
// StudentIDs list means the event involves every student.
type ImportantDate struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	StudentIDs []string `json:"studentIds"`
}

// InvolvesAll reports whether the date applies to the whole centre.
func (d ImportantDate) InvolvesAll() bool {
	return len(d.StudentIDs) == 0
}

// CreateImportantDateRequest is the payload for adding a calendar entry.
type CreateImportantDateRequest struct {
	Name       string   `json:"name" validate:"required"`
	StartDate  string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string   `json:"endDate" validate:"required,datetime=2006-01-02"`
	StudentIDs []string `json:"studentIds"`
}

// UpcomingDates buckets future calendar entries for the dashboard.
type UpcomingDates struct {
	ThisMonth []ImportantDate `json:"thisMonth"`
	NextMonth []ImportantDate `json:"nextMonth"`
}
