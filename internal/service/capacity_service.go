package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
)

type timetableSource interface {
	Get(ctx context.Context, weekStart string) (models.Timetable, error)
}

// CapacityService derives per-category session capacity for a student from
// the timetable. Capacity is the number of cell assignments whose student
// list contains the student, counted per assignment category. Nothing is
// stored; the numbers are recomputed from the grid on every call.
type CapacityService struct {
	timetable timetableSource
	logger    *zap.Logger
}

// NewCapacityService instantiates CapacityService.
func NewCapacityService(timetable timetableSource, logger *zap.Logger) *CapacityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CapacityService{timetable: timetable, logger: logger}
}

// Counts scans every cell of the week's grid and tallies the student's
// assignments per category. Iteration order never affects the result.
func (s *CapacityService) Counts(ctx context.Context, studentID, weekStart string) (map[models.Category]int, error) {
	grid, err := s.timetable.Get(ctx, weekStart)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Category]int, len(models.AllCategories))
	for _, c := range models.AllCategories {
		counts[c] = 0
	}
	for _, slots := range grid {
		for _, assignments := range slots {
			for _, a := range assignments {
				if !containsString(a.StudentIDs, studentID) {
					continue
				}
				if _, err := models.ParseCategory(string(a.Category)); err != nil {
					// Stale assignments with retired categories are skipped
					// rather than failing the whole count.
					continue
				}
				counts[a.Category]++
			}
		}
	}
	return counts, nil
}

// Capacity returns the count for a single category.
func (s *CapacityService) Capacity(ctx context.Context, studentID string, category models.Category, weekStart string) (int, error) {
	if _, err := models.ParseCategory(string(category)); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid category")
	}
	counts, err := s.Counts(ctx, studentID, weekStart)
	if err != nil {
		return 0, err
	}
	return counts[category], nil
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
