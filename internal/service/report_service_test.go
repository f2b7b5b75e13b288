package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
)

type mockReportState struct {
	reports []models.DailyReport
	saves   int
}

func (m *mockReportState) Reports(ctx context.Context) ([]models.DailyReport, error) {
	return m.reports, nil
}

func (m *mockReportState) SaveReports(ctx context.Context, reports []models.DailyReport) error {
	m.reports = reports
	m.saves++
	return nil
}

type mockExistsRepo struct {
	ids map[string]bool
}

func (m *mockExistsRepo) Exists(ctx context.Context, id string) (bool, error) {
	return m.ids[id], nil
}

type mockPlanSource struct {
	plan models.WeeklyPlan
}

func (m *mockPlanSource) GetPlan(ctx context.Context, weekStart, studentID string) (models.WeeklyPlan, error) {
	if m.plan == nil {
		return models.NewWeeklyPlan(), nil
	}
	return m.plan, nil
}

type mockChoiceSource struct {
	catalog map[models.Category][]models.SessionCatalogEntry
	byID    map[string]models.SessionCatalogEntry
}

func (m *mockChoiceSource) CandidateSessions(ctx context.Context, category models.Category, studentID string) ([]models.SessionCatalogEntry, error) {
	return m.catalog[category], nil
}

func (m *mockChoiceSource) FindSessions(ctx context.Context, ids []string) ([]models.SessionCatalogEntry, error) {
	entries := make([]models.SessionCatalogEntry, 0, len(ids))
	for _, id := range ids {
		if e, ok := m.byID[id]; ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func newReportService(state *mockReportState, plans *mockPlanSource, catalog *mockChoiceSource) *ReportService {
	participants := &mockExistsRepo{ids: map[string]bool{"s1": true, "m1": true}}
	svc := NewReportService(state, participants, participants, plans, catalog, validator.New(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestReportServiceSubmit(t *testing.T) {
	state := &mockReportState{}
	svc := newReportService(state, &mockPlanSource{}, &mockChoiceSource{})

	report, err := svc.Submit(context.Background(), models.SubmitReportRequest{
		Date:      "2026-08-26",
		StudentID: "s1",
		MentorID:  "m1",
		Demeanor:  "focused",
		Sessions: map[string]*models.CompletionEntry{
			"math": {SessionID: "m-algebra", Details: "finished worksheet"},
			"body": nil,
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, report.ID)
	assert.False(t, report.IsPublished)
	assert.Equal(t, "m-algebra", report.CompletedSessions.Math.SessionID)
	assert.Nil(t, report.CompletedSessions.Body)
	assert.Equal(t, 1, state.saves)
	assert.Len(t, state.reports, 1)
}

func TestReportServiceSubmitSerialisesSevenKeys(t *testing.T) {
	svc := newReportService(&mockReportState{}, &mockPlanSource{}, &mockChoiceSource{})

	report, err := svc.Submit(context.Background(), models.SubmitReportRequest{
		Date:      "2026-08-26",
		StudentID: "s1",
		MentorID:  "m1",
		Sessions:  map[string]*models.CompletionEntry{"english": {SessionID: "e1"}},
	})
	require.NoError(t, err)

	raw, err := json.Marshal(report.CompletedSessions)
	require.NoError(t, err)
	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	assert.Len(t, keys, 7)
	for _, c := range models.AllCategories {
		_, ok := keys[string(c)]
		assert.True(t, ok, "missing key %s", c)
	}
	assert.Equal(t, "null", string(keys["math"]))
}

func TestReportServiceSubmitUnknownStudent(t *testing.T) {
	svc := newReportService(&mockReportState{}, &mockPlanSource{}, &mockChoiceSource{})

	_, err := svc.Submit(context.Background(), models.SubmitReportRequest{
		Date:      "2026-08-26",
		StudentID: "ghost",
		MentorID:  "m1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReportServiceSubmitAllowsDuplicateDay(t *testing.T) {
	state := &mockReportState{}
	svc := newReportService(state, &mockPlanSource{}, &mockChoiceSource{})
	req := models.SubmitReportRequest{Date: "2026-08-26", StudentID: "s1", MentorID: "m1"}

	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, state.reports, 2)
}

func TestReportServiceUpdateUnknownID(t *testing.T) {
	svc := newReportService(&mockReportState{}, &mockPlanSource{}, &mockChoiceSource{})

	_, err := svc.Update(context.Background(), "missing", models.UpdateReportRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestReportServiceUpdatePatchesFields(t *testing.T) {
	state := &mockReportState{reports: []models.DailyReport{{
		ID: "r1", Date: "2026-08-26", StudentID: "s1", MentorID: "m1",
		CompletedSessions: models.CompletedSessions{Math: &models.CompletionEntry{SessionID: "m1"}},
	}}}
	svc := newReportService(state, &mockPlanSource{}, &mockChoiceSource{})

	demeanor := "restless"
	report, err := svc.Update(context.Background(), "r1", models.UpdateReportRequest{
		Demeanor: &demeanor,
		Sessions: map[string]*models.CompletionEntry{
			"math":    nil,
			"science": {SessionID: "sc1"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "restless", report.Demeanor)
	assert.Nil(t, report.CompletedSessions.Math)
	assert.Equal(t, "sc1", report.CompletedSessions.Science.SessionID)
	assert.Equal(t, 1, state.saves)
}

func TestReportServicePublishRoundTrip(t *testing.T) {
	state := &mockReportState{reports: []models.DailyReport{
		{ID: "r1", Date: "2026-08-26", StudentID: "s1", MentorID: "m1"},
	}}
	svc := newReportService(state, &mockPlanSource{}, &mockChoiceSource{})
	ctx := context.Background()

	published, err := svc.SetPublished(ctx, "r1", true)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	visible, err := svc.ListPublished(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, visible, 1)

	unpublished, err := svc.SetPublished(ctx, "r1", false)
	require.NoError(t, err)
	assert.False(t, unpublished.IsPublished)

	visible, err = svc.ListPublished(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestReportServicePublishUnknownID(t *testing.T) {
	svc := newReportService(&mockReportState{}, &mockPlanSource{}, &mockChoiceSource{})

	_, err := svc.SetPublished(context.Background(), "missing", true)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestReportServiceListFilters(t *testing.T) {
	state := &mockReportState{reports: []models.DailyReport{
		{ID: "r1", Date: "2026-08-24", StudentID: "s1", MentorID: "m1"},
		{ID: "r2", Date: "2026-08-26", StudentID: "s2", MentorID: "m1"},
		{ID: "r3", Date: "2026-09-02", StudentID: "s1", MentorID: "m2"},
	}}
	svc := newReportService(state, &mockPlanSource{}, &mockChoiceSource{})
	ctx := context.Background()

	byWeek, err := svc.List(ctx, models.ReportFilter{WeekStart: "2026-08-24"})
	require.NoError(t, err)
	assert.Len(t, byWeek, 2)

	byMentor, err := svc.List(ctx, models.ReportFilter{WeekStart: "2026-08-24", MentorID: "m1"})
	require.NoError(t, err)
	require.Len(t, byMentor, 2)

	byStudent, err := svc.List(ctx, models.ReportFilter{StudentID: "s1"})
	require.NoError(t, err)
	assert.Len(t, byStudent, 2)
}

func TestReportServiceSessionChoicesPlanRestricted(t *testing.T) {
	plan := models.NewWeeklyPlan()
	plan[models.CategoryMath] = []string{"m2", "m1", "gone"}
	catalog := &mockChoiceSource{
		catalog: map[models.Category][]models.SessionCatalogEntry{
			models.CategoryEnglish: {{ID: "e1", Name: "Reading"}},
		},
		byID: map[string]models.SessionCatalogEntry{
			"m1": {ID: "m1", Name: "Algebra"},
			"m2": {ID: "m2", Name: "Fractions"},
		},
	}
	svc := newReportService(&mockReportState{}, &mockPlanSource{plan: plan}, catalog)

	choices, err := svc.SessionChoices(context.Background(), "s1", "2026-08-26")
	require.NoError(t, err)

	math := choices[models.CategoryMath]
	require.Len(t, math, 3)
	assert.Equal(t, "m2", math[0].ID)
	assert.Equal(t, "m1", math[1].ID)
	assert.Equal(t, models.UnknownSessionName, math[2].Name)

	english := choices[models.CategoryEnglish]
	require.Len(t, english, 1)
	assert.Equal(t, "e1", english[0].ID)
}

func TestWeekStartOf(t *testing.T) {
	cases := []struct{ date, want string }{
		{"2026-08-24", "2026-08-24"},
		{"2026-08-26", "2026-08-24"},
		{"2026-08-30", "2026-08-24"},
		{"2026-08-31", "2026-08-31"},
	}
	for _, tc := range cases {
		got, err := WeekStartOf(tc.date)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.date)
	}

	_, err := WeekStartOf("not-a-date")
	assert.Error(t, err)
}
