package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
)

type reportStateRepository interface {
	Reports(ctx context.Context) ([]models.DailyReport, error)
	SaveReports(ctx context.Context, reports []models.DailyReport) error
}

type reportStudentRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type reportMentorRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type planSource interface {
	GetPlan(ctx context.Context, weekStart, studentID string) (models.WeeklyPlan, error)
}

type sessionChoiceSource interface {
	CandidateSessions(ctx context.Context, category models.Category, studentID string) ([]models.SessionCatalogEntry, error)
	FindSessions(ctx context.Context, ids []string) ([]models.SessionCatalogEntry, error)
}

// ReportService records, amends and publishes daily progress reports. The
// report collection is one JSON array rewritten in full on every mutation,
// serialised by a mutex.
type ReportService struct {
	state     reportStateRepository
	students  reportStudentRepository
	mentors   reportMentorRepository
	plans     planSource
	catalog   sessionChoiceSource
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time

	mu sync.Mutex
}

// NewReportService instantiates ReportService.
func NewReportService(state reportStateRepository, students reportStudentRepository, mentors reportMentorRepository, plans planSource, catalog sessionChoiceSource, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		state:     state,
		students:  students,
		mentors:   mentors,
		plans:     plans,
		catalog:   catalog,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit records a new daily report. Every report carries all seven category
// keys in completedSessions; a category without a chosen session stays null.
// Several reports for the same student and date may coexist.
func (s *ReportService) Submit(ctx context.Context, req models.SubmitReportRequest) (*models.DailyReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report payload")
	}
	if err := s.checkParticipants(ctx, req.StudentID, req.MentorID); err != nil {
		return nil, err
	}

	completed := models.CompletedSessions{}
	for raw, entry := range req.Sessions {
		category, err := models.ParseCategory(raw)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid category in completedSessions")
		}
		if entry == nil || entry.SessionID == "" {
			continue
		}
		completed.SetEntry(category, &models.CompletionEntry{SessionID: entry.SessionID, Details: entry.Details})
	}

	report := models.DailyReport{
		ID:                uuid.NewString(),
		Date:              req.Date,
		StudentID:         req.StudentID,
		MentorID:          req.MentorID,
		Demeanor:          req.Demeanor,
		CompletedSessions: completed,
		IsPublished:       false,
		CreatedAt:         s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.state.Reports(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reports")
	}
	reports = append(reports, report)
	if err := s.state.SaveReports(ctx, reports); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save reports")
	}
	s.logger.Info("daily report submitted",
		zap.String("report_id", report.ID),
		zap.String("student_id", report.StudentID),
		zap.String("date", report.Date))
	return &report, nil
}

// SessionChoices returns, per category, the sessions a mentor may pick when
// reporting a student's day. When the student's weekly plan has entries for
// a category the choices are restricted to the planned sessions; otherwise
// the full grade-filtered catalog applies.
func (s *ReportService) SessionChoices(ctx context.Context, studentID, date string) (models.SessionChoices, error) {
	weekStart, err := WeekStartOf(date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
	}
	plan, err := s.plans.GetPlan(ctx, weekStart, studentID)
	if err != nil {
		return nil, err
	}

	choices := make(models.SessionChoices, len(models.AllCategories))
	for _, category := range models.AllCategories {
		planned := plan[category]
		if len(planned) > 0 {
			entries, err := s.catalog.FindSessions(ctx, planned)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve planned sessions")
			}
			choices[category] = orderByPlan(planned, entries)
			continue
		}
		entries, err := s.catalog.CandidateSessions(ctx, category, studentID)
		if err != nil {
			return nil, err
		}
		choices[category] = entries
	}
	return choices, nil
}

// Update patches an existing report. Unknown ids are a NOT_FOUND rather
// than a silent no-op so callers can tell the write was dropped.
func (s *ReportService) Update(ctx context.Context, id string, req models.UpdateReportRequest) (*models.DailyReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report patch")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.state.Reports(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reports")
	}
	idx := indexOfReport(reports, id)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("report %s not found", id))
	}

	report := reports[idx]
	if req.Date != nil {
		report.Date = *req.Date
	}
	if req.MentorID != nil {
		report.MentorID = *req.MentorID
	}
	if req.Demeanor != nil {
		report.Demeanor = *req.Demeanor
	}
	for raw, entry := range req.Sessions {
		category, err := models.ParseCategory(raw)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid category in completedSessions")
		}
		if entry == nil || entry.SessionID == "" {
			report.CompletedSessions.SetEntry(category, nil)
			continue
		}
		report.CompletedSessions.SetEntry(category, &models.CompletionEntry{SessionID: entry.SessionID, Details: entry.Details})
	}

	reports[idx] = report
	if err := s.state.SaveReports(ctx, reports); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save reports")
	}
	return &report, nil
}

// SetPublished flips the publication flag on a report. The full collection
// is rewritten even when the flag value does not change.
func (s *ReportService) SetPublished(ctx context.Context, id string, published bool) (*models.DailyReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.state.Reports(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reports")
	}
	idx := indexOfReport(reports, id)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("report %s not found", id))
	}
	reports[idx].IsPublished = published
	if err := s.state.SaveReports(ctx, reports); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save reports")
	}
	s.logger.Info("report publication changed", zap.String("report_id", id), zap.Bool("published", published))
	report := reports[idx]
	return &report, nil
}

// List returns reports matching the management filter.
func (s *ReportService) List(ctx context.Context, filter models.ReportFilter) ([]models.DailyReport, error) {
	reports, err := s.state.Reports(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reports")
	}
	result := make([]models.DailyReport, 0, len(reports))
	for _, r := range reports {
		if filter.MentorID != "" && r.MentorID != filter.MentorID {
			continue
		}
		if filter.StudentID != "" && r.StudentID != filter.StudentID {
			continue
		}
		if filter.WeekStart != "" {
			week, err := WeekStartOf(r.Date)
			if err != nil || week != filter.WeekStart {
				continue
			}
		}
		result = append(result, r)
	}
	return result, nil
}

// ListPublished returns only published reports for a student. This feeds
// every read-only progress view; unpublished reports never leave here.
func (s *ReportService) ListPublished(ctx context.Context, studentID string) ([]models.DailyReport, error) {
	reports, err := s.List(ctx, models.ReportFilter{StudentID: studentID})
	if err != nil {
		return nil, err
	}
	published := make([]models.DailyReport, 0, len(reports))
	for _, r := range reports {
		if r.IsPublished {
			published = append(published, r)
		}
	}
	return published, nil
}

func (s *ReportService) checkParticipants(ctx context.Context, studentID, mentorID string) error {
	ok, err := s.students.Exists(ctx, studentID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student")
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("student %s does not exist", studentID))
	}
	ok, err = s.mentors.Exists(ctx, mentorID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check mentor")
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("mentor %s does not exist", mentorID))
	}
	return nil
}

// WeekStartOf returns the Monday of the week containing an ISO date.
func WeekStartOf(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", err
	}
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format("2006-01-02"), nil
}

func indexOfReport(reports []models.DailyReport, id string) int {
	for i := range reports {
		if reports[i].ID == id {
			return i
		}
	}
	return -1
}

func orderByPlan(planned []string, entries []models.SessionCatalogEntry) []models.SessionCatalogEntry {
	byID := make(map[string]models.SessionCatalogEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	ordered := make([]models.SessionCatalogEntry, 0, len(planned))
	for _, id := range planned {
		if e, ok := byID[id]; ok {
			ordered = append(ordered, e)
			continue
		}
		// Planned ids missing from the catalog still surface as choices so
		// the stored plan never hides entries.
		ordered = append(ordered, models.SessionCatalogEntry{ID: id, Name: models.UnknownSessionName})
	}
	return ordered
}
