package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
)

type mockTimetableSource struct {
	grid models.Timetable
}

func (m *mockTimetableSource) Get(ctx context.Context, weekStart string) (models.Timetable, error) {
	if m.grid == nil {
		return models.NewTimetable(), nil
	}
	return m.grid, nil
}

func TestCapacityServiceCountsAcrossCells(t *testing.T) {
	grid := models.Timetable{
		"monday": {
			"session1": {
				{MentorID: "m1", Category: models.CategoryMath, StudentIDs: []string{"s1", "s2"}},
				{MentorID: "m2", Category: models.CategoryBody, StudentIDs: []string{"s1"}},
			},
		},
		"wednesday": {
			"session3": {
				{MentorID: "m1", Category: models.CategoryMath, StudentIDs: []string{"s1"}},
			},
		},
	}
	svc := NewCapacityService(&mockTimetableSource{grid: grid}, zap.NewNop())

	counts, err := svc.Counts(context.Background(), "s1", "2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, 2, counts[models.CategoryMath])
	assert.Equal(t, 1, counts[models.CategoryBody])
	assert.Equal(t, 0, counts[models.CategoryEnglish])
	assert.Len(t, counts, 7)
}

func TestCapacityServiceIgnoresOtherStudents(t *testing.T) {
	grid := models.Timetable{
		"tuesday": {
			"session2": {
				{MentorID: "m1", Category: models.CategoryScience, StudentIDs: []string{"s2", "s3"}},
			},
		},
	}
	svc := NewCapacityService(&mockTimetableSource{grid: grid}, zap.NewNop())

	counts, err := svc.Counts(context.Background(), "s1", "2026-08-24")
	require.NoError(t, err)
	for _, c := range models.AllCategories {
		assert.Zero(t, counts[c])
	}
}

func TestCapacityServiceSkipsUnknownCategories(t *testing.T) {
	grid := models.Timetable{
		"friday": {
			"session1": {
				{MentorID: "m1", Category: models.Category("retired"), StudentIDs: []string{"s1"}},
				{MentorID: "m1", Category: models.CategoryMind, StudentIDs: []string{"s1"}},
			},
		},
	}
	svc := NewCapacityService(&mockTimetableSource{grid: grid}, zap.NewNop())

	counts, err := svc.Counts(context.Background(), "s1", "2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, 1, counts[models.CategoryMind])
	assert.Len(t, counts, 7)
}

func TestCapacityServiceSingleCategory(t *testing.T) {
	grid := models.Timetable{
		"monday": {
			"session1": {{MentorID: "m1", Category: models.CategoryLifeSkills, StudentIDs: []string{"s1"}}},
			"session2": {{MentorID: "m2", Category: models.CategoryLifeSkills, StudentIDs: []string{"s1"}}},
		},
	}
	svc := NewCapacityService(&mockTimetableSource{grid: grid}, zap.NewNop())

	n, err := svc.Capacity(context.Background(), "s1", models.CategoryLifeSkills, "2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCapacityServiceRejectsInvalidCategory(t *testing.T) {
	svc := NewCapacityService(&mockTimetableSource{}, zap.NewNop())

	_, err := svc.Capacity(context.Background(), "s1", models.Category("nope"), "2026-08-24")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
