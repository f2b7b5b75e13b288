package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
	"github.com/hephzi-centre/admin-api/internal/repository"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
)

type timetableStateRepository interface {
	Timetable(ctx context.Context, key string) (models.Timetable, error)
	SaveTimetable(ctx context.Context, key string, t models.Timetable) error
	Settings(ctx context.Context) (models.Settings, error)
}

// TimetableService manages the weekly scheduling grid. Writes go through a
// read-modify-rewrite cycle on the whole blob, serialised by a mutex since
// the store has a single logical writer.
type TimetableService struct {
	state     timetableStateRepository
	perWeek   bool
	validator *validator.Validate
	logger    *zap.Logger

	mu sync.Mutex
}

// NewTimetableService instantiates TimetableService.
func NewTimetableService(state timetableStateRepository, perWeek bool, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{state: state, perWeek: perWeek, validator: validate, logger: logger}
}

// blobKey resolves which blob holds the grid for a week. With per-week mode
// off every week shares the single recurring grid.
func (s *TimetableService) blobKey(weekStart string) string {
	if s.perWeek && weekStart != "" {
		return repository.KeyTimetable + ":" + weekStart
	}
	return repository.KeyTimetable
}

// Get returns the full grid for a week.
func (s *TimetableService) Get(ctx context.Context, weekStart string) (models.Timetable, error) {
	t, err := s.state.Timetable(ctx, s.blobKey(weekStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	return t, nil
}

// MentorView returns the grid filtered down to one mentor's assignments.
func (s *TimetableService) MentorView(ctx context.Context, weekStart, mentorID string) (models.Timetable, error) {
	full, err := s.Get(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	view := models.NewTimetable()
	for day, slots := range full {
		for slot, assignments := range slots {
			for _, a := range assignments {
				if a.MentorID == mentorID {
					if view[day] == nil {
						view[day] = make(map[string][]models.SlotAssignment)
					}
					view[day][slot] = append(view[day][slot], a)
				}
			}
		}
	}
	return view, nil
}

// PutCell replaces the full assignment list of one cell. The same student
// may not appear in two parallel assignments of the cell.
func (s *TimetableService) PutCell(ctx context.Context, weekStart, day, slot string, req models.PutCellRequest) (models.Timetable, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cell payload")
	}
	if err := s.validateCellRef(ctx, day, slot); err != nil {
		return nil, err
	}
	for i := range req.Assignments {
		if _, err := models.ParseCategory(string(req.Assignments[i].Category)); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session category")
		}
	}
	if dup := firstDuplicateStudent(req.Assignments); dup != "" {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("student %s appears in multiple assignments of %s/%s", dup, day, slot))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.blobKey(weekStart)
	t, err := s.state.Timetable(ctx, key)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	if t[day] == nil {
		t[day] = make(map[string][]models.SlotAssignment)
	}
	if len(req.Assignments) == 0 {
		delete(t[day], slot)
	} else {
		t[day][slot] = req.Assignments
	}
	if err := s.state.SaveTimetable(ctx, key, t); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save timetable")
	}
	s.logger.Info("timetable cell updated", zap.String("day", day), zap.String("slot", slot), zap.Int("assignments", len(req.Assignments)))
	return t, nil
}

// RemoveAssignment drops one assignment from a cell by index.
func (s *TimetableService) RemoveAssignment(ctx context.Context, weekStart, day, slot string, index int) (models.Timetable, error) {
	if err := s.validateCellRef(ctx, day, slot); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.blobKey(weekStart)
	t, err := s.state.Timetable(ctx, key)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	cell := t.Cell(day, slot)
	if index < 0 || index >= len(cell) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no assignment at index %d in %s/%s", index, day, slot))
	}
	cell = append(cell[:index], cell[index+1:]...)
	if len(cell) == 0 {
		delete(t[day], slot)
	} else {
		t[day][slot] = cell
	}
	if err := s.state.SaveTimetable(ctx, key, t); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save timetable")
	}
	return t, nil
}

// validateCellRef checks day and slot against the configured grid bounds.
// Slots beyond sessionsPerDay are rejected for writes even though orphaned
// data under them is preserved on reads.
func (s *TimetableService) validateCellRef(ctx context.Context, day, slot string) error {
	if !models.ValidDay(day) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown timetable day %q", day))
	}
	settings, err := s.state.Settings(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}
	if !models.ValidSlot(slot, settings.SessionsPerDay) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("slot %q is outside session1..session%d", slot, settings.SessionsPerDay))
	}
	return nil
}

func firstDuplicateStudent(assignments []models.SlotAssignment) string {
	seen := make(map[string]struct{})
	for _, a := range assignments {
		for _, id := range a.StudentIDs {
			if _, ok := seen[id]; ok {
				return id
			}
			seen[id] = struct{}{}
		}
	}
	return ""
}
