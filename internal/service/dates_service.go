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

type datesStateRepository interface {
	ImportantDates(ctx context.Context) ([]models.ImportantDate, error)
	SaveImportantDates(ctx context.Context, dates []models.ImportantDate) error
}

// DatesService manages the shared important-dates calendar.
type DatesService struct {
	state     datesStateRepository
	validator *validator.Validate
	logger    *zap.Logger

	mu sync.Mutex
}

// NewDatesService instantiates DatesService.
func NewDatesService(state datesStateRepository, validate *validator.Validate, logger *zap.Logger) *DatesService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatesService{state: state, validator: validate, logger: logger}
}

// List returns every calendar entry.
func (s *DatesService) List(ctx context.Context) ([]models.ImportantDate, error) {
	dates, err := s.state.ImportantDates(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load important dates")
	}
	return dates, nil
}

// Create appends a calendar entry after validation.
func (s *DatesService) Create(ctx context.Context, req models.CreateImportantDateRequest) (*models.ImportantDate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid important date payload")
	}
	if req.EndDate < req.StartDate {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not precede startDate")
	}

	date := models.ImportantDate{
		ID:         uuid.NewString(),
		Name:       req.Name,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		StudentIDs: req.StudentIDs,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dates, err := s.state.ImportantDates(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load important dates")
	}
	dates = append(dates, date)
	if err := s.state.SaveImportantDates(ctx, dates); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save important dates")
	}
	s.logger.Info("important date added", zap.String("date_id", date.ID), zap.String("name", date.Name))
	return &date, nil
}

// Delete removes a calendar entry by id.
func (s *DatesService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dates, err := s.state.ImportantDates(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load important dates")
	}
	idx := -1
	for i := range dates {
		if dates[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("important date %s not found", id))
	}
	dates = append(dates[:idx], dates[idx+1:]...)
	if err := s.state.SaveImportantDates(ctx, dates); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save important dates")
	}
	return nil
}

// Upcoming buckets future entries into this-month and next-month lists for
// the dashboard. An entry qualifies while its end date has not passed.
func (s *DatesService) Upcoming(ctx context.Context, today time.Time) (models.UpcomingDates, error) {
	dates, err := s.List(ctx)
	if err != nil {
		return models.UpcomingDates{}, err
	}

	result := models.UpcomingDates{
		ThisMonth: []models.ImportantDate{},
		NextMonth: []models.ImportantDate{},
	}
	thisYear, thisMonth := today.Year(), today.Month()
	next := today.AddDate(0, 1, 0)
	nextYear, nextMonth := next.Year(), next.Month()

	for _, d := range dates {
		start, err := time.Parse("2006-01-02", d.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse("2006-01-02", d.EndDate)
		if err != nil {
			continue
		}
		if end.Before(today.Truncate(24 * time.Hour)) {
			continue
		}
		switch {
		case start.Year() == thisYear && start.Month() == thisMonth:
			result.ThisMonth = append(result.ThisMonth, d)
		case start.Year() == nextYear && start.Month() == nextMonth:
			result.NextMonth = append(result.NextMonth, d)
		}
	}
	return result, nil
}
