package models

import "time"

// CompletionEntry records the single session actually delivered for one
// category on one day.
type CompletionEntry struct {
	SessionID string `json:"sessionId"`
	Details   string `json:"details,omitempty"`
}

// CompletedSessions always serialises all seven category keys; a category
// with no delivered session is an explicit null. Using a struct rather than
// a map guarantees the schema regardless of what was submitted.
type CompletedSessions struct {
	English    *CompletionEntry `json:"english"`
	Math       *CompletionEntry `json:"math"`
	Science    *CompletionEntry `json:"science"`
	Body       *CompletionEntry `json:"body"`
	Mind       *CompletionEntry `json:"mind"`
	CBCS       *CompletionEntry `json:"cbcs"`
	LifeSkills *CompletionEntry `json:"lifeSkills"`
}

// Entry returns the completion entry for a category.
func (cs *CompletedSessions) Entry(c Category) *CompletionEntry {
	switch c {
	case CategoryEnglish:
		return cs.English
	case CategoryMath:
		return cs.Math
	case CategoryScience:
		return cs.Science
	case CategoryBody:
		return cs.Body
	case CategoryMind:
		return cs.Mind
	case CategoryCBCS:
		return cs.CBCS
	case CategoryLifeSkills:
		return cs.LifeSkills
	}
	return nil
}

// SetEntry stores the completion entry for a category.
func (cs *CompletedSessions) SetEntry(c Category, e *CompletionEntry) {
	switch c {
	case CategoryEnglish:
		cs.English = e
	case CategoryMath:
		cs.Math = e
	case CategoryScience:
		cs.Science = e
	case CategoryBody:
		cs.Body = e
	case CategoryMind:
		cs.Mind = e
	case CategoryCBCS:
		cs.CBCS = e
	case CategoryLifeSkills:
		cs.LifeSkills = e
	}
}

// DailyReport is one mentor-submitted record of a student's day.
type DailyReport struct {
	ID                string            `json:"id"`
	Date              string            `json:"date"`
	StudentID         string            `json:"studentId"`
	MentorID          string            `json:"mentorId"`
	Demeanor          string            `json:"demeanor,omitempty"`
	CompletedSessions CompletedSessions `json:"completedSessions"`
	IsPublished       bool              `json:"isPublished"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// SubmitReportRequest is the payload for recording a new daily report.
type SubmitReportRequest struct {
	Date      string                      `json:"date" validate:"required,datetime=2006-01-02"`
	StudentID string                      `json:"studentId" validate:"required"`
	MentorID  string                      `json:"mentorId" validate:"required"`
	Demeanor  string                      `json:"demeanor"`
	Sessions  map[string]*CompletionEntry `json:"completedSessions"`
}

// UpdateReportRequest patches an existing report. Nil means unchanged.
type UpdateReportRequest struct {
	Date     *string                     `json:"date" validate:"omitempty,datetime=2006-01-02"`
	MentorID *string                     `json:"mentorId"`
	Demeanor *string                     `json:"demeanor"`
	Sessions map[string]*CompletionEntry `json:"completedSessions"`
}

// PublishReportRequest toggles the publication flag.
type PublishReportRequest struct {
	IsPublished *bool `json:"isPublished" validate:"required"`
}

// ReportFilter narrows report listings for the management view.
type ReportFilter struct {
	WeekStart string
	MentorID  string
	StudentID string
}

// SessionChoices maps each category to the candidate sessions a mentor may
// pick from when filling in a report.
type SessionChoices map[Category][]SessionCatalogEntry
