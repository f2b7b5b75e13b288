package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
)

type mockWeekPlans struct {
	plans map[string]models.WeeklyPlan
}

func (m *mockWeekPlans) WeekPlans(ctx context.Context, weekStart string) (map[string]models.WeeklyPlan, error) {
	return m.plans, nil
}

type mockUpcoming struct {
	upcoming models.UpcomingDates
}

func (m *mockUpcoming) Upcoming(ctx context.Context, today time.Time) (models.UpcomingDates, error) {
	return m.upcoming, nil
}

type mockMentorNames struct {
	names map[string]string
}

func (m *mockMentorNames) NameOf(ctx context.Context, id string) string {
	if name, ok := m.names[id]; ok {
		return name
	}
	return models.UnknownMentorName
}

func TestDashboardServiceSummary(t *testing.T) {
	// Wednesday 2026-08-26, week starting monday 2026-08-24.
	grid := models.Timetable{
		"wednesday": {
			"session1": {
				{MentorID: "m1", Category: models.CategoryMath, StudentIDs: []string{"s2", "s1"}},
				{MentorID: "m2", Category: models.CategoryBody, StudentIDs: []string{"s3"}},
			},
			"session2": {
				{MentorID: "m1", Category: models.CategoryMath, StudentIDs: []string{"s1"}},
				{MentorID: "m1", Category: models.CategoryEnglish, StudentIDs: []string{"s4"}},
			},
		},
		"thursday": {
			"session1": {{MentorID: "m3", Category: models.CategoryMind, StudentIDs: []string{"s9"}}},
		},
	}
	svc := NewDashboardService(
		&mockTimetableSource{grid: grid},
		&mockWeekPlans{plans: map[string]models.WeeklyPlan{"s1": models.NewWeeklyPlan()}},
		&mockUpcoming{},
		&mockMentorNames{names: map[string]string{"m1": "Anil", "m2": "Beena"}},
		zap.NewNop(),
	)
	svc.now = func() time.Time { return time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC) }

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-08-26", summary.Date)
	assert.Equal(t, "wednesday", summary.Day)
	require.Len(t, summary.Mentors, 2)

	anil := summary.Mentors[0]
	assert.Equal(t, "Anil", anil.MentorName)
	assert.Equal(t, []string{"s1", "s2", "s4"}, anil.StudentIDs)
	assert.Equal(t, []models.Category{models.CategoryEnglish, models.CategoryMath}, anil.Categories)

	assert.Equal(t, "Beena", summary.Mentors[1].MentorName)
	assert.Contains(t, summary.WeeklyPlans, "s1")
}

func TestDashboardServiceEmptyDay(t *testing.T) {
	svc := NewDashboardService(
		&mockTimetableSource{},
		&mockWeekPlans{plans: map[string]models.WeeklyPlan{}},
		&mockUpcoming{},
		&mockMentorNames{},
		zap.NewNop(),
	)
	svc.now = func() time.Time { return time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC) }

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "saturday", summary.Day)
	assert.Empty(t, summary.Mentors)
}
