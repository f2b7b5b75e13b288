package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
)

type mockTimetableState struct {
	blobs    map[string]models.Timetable
	settings models.Settings
	saves    int
}

func newMockTimetableState() *mockTimetableState {
	return &mockTimetableState{
		blobs:    make(map[string]models.Timetable),
		settings: models.Settings{SessionsPerDay: models.DefaultSessionsPerDay},
	}
}

func (m *mockTimetableState) Timetable(ctx context.Context, key string) (models.Timetable, error) {
	if t, ok := m.blobs[key]; ok {
		return t, nil
	}
	return models.NewTimetable(), nil
}

func (m *mockTimetableState) SaveTimetable(ctx context.Context, key string, t models.Timetable) error {
	m.blobs[key] = t
	m.saves++
	return nil
}

func (m *mockTimetableState) Settings(ctx context.Context) (models.Settings, error) {
	return m.settings, nil
}

func newTimetableSvc(state *mockTimetableState, perWeek bool) *TimetableService {
	return NewTimetableService(state, perWeek, validator.New(), zap.NewNop())
}

func TestTimetableServicePutCell(t *testing.T) {
	state := newMockTimetableState()
	svc := newTimetableSvc(state, false)

	grid, err := svc.PutCell(context.Background(), "", "monday", "session1", models.PutCellRequest{
		Assignments: []models.SlotAssignment{
			{MentorID: "m1", Category: models.CategoryMath, StudentIDs: []string{"s1", "s2"}},
			{MentorID: "m2", Category: models.CategoryBody, StudentIDs: []string{"s3"}},
		},
	})
	require.NoError(t, err)
	assert.Len(t, grid["monday"]["session1"], 2)
	assert.Equal(t, 1, state.saves)
}

func TestTimetableServicePutCellDuplicateStudent(t *testing.T) {
	state := newMockTimetableState()
	svc := newTimetableSvc(state, false)

	_, err := svc.PutCell(context.Background(), "", "monday", "session1", models.PutCellRequest{
		Assignments: []models.SlotAssignment{
			{MentorID: "m1", Category: models.CategoryMath, StudentIDs: []string{"s1"}},
			{MentorID: "m2", Category: models.CategoryMind, StudentIDs: []string{"s1"}},
		},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Zero(t, state.saves)
}

func TestTimetableServicePutCellInvalidDay(t *testing.T) {
	svc := newTimetableSvc(newMockTimetableState(), false)

	_, err := svc.PutCell(context.Background(), "", "sunday", "session1", models.PutCellRequest{
		Assignments: []models.SlotAssignment{{MentorID: "m1", Category: models.CategoryMath, StudentIDs: []string{"s1"}}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimetableServicePutCellSlotBeyondSettings(t *testing.T) {
	state := newMockTimetableState()
	state.settings.SessionsPerDay = 3
	svc := newTimetableSvc(state, false)

	_, err := svc.PutCell(context.Background(), "", "tuesday", "session4", models.PutCellRequest{
		Assignments: []models.SlotAssignment{{MentorID: "m1", Category: models.CategoryMath, StudentIDs: []string{"s1"}}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimetableServicePutCellEmptyListClearsSlot(t *testing.T) {
	state := newMockTimetableState()
	state.blobs["timetable"] = models.Timetable{
		"monday": {"session1": {{MentorID: "m1", Category: models.CategoryMath, StudentIDs: []string{"s1"}}}},
	}
	svc := newTimetableSvc(state, false)

	grid, err := svc.PutCell(context.Background(), "", "monday", "session1", models.PutCellRequest{
		Assignments: []models.SlotAssignment{},
	})
	require.NoError(t, err)
	_, ok := grid["monday"]["session1"]
	assert.False(t, ok)
}

func TestTimetableServiceRemoveAssignment(t *testing.T) {
	state := newMockTimetableState()
	state.blobs["timetable"] = models.Timetable{
		"friday": {"session2": {
			{MentorID: "m1", Category: models.CategoryEnglish, StudentIDs: []string{"s1"}},
			{MentorID: "m2", Category: models.CategoryCBCS, StudentIDs: []string{"s2"}},
		}},
	}
	svc := newTimetableSvc(state, false)

	grid, err := svc.RemoveAssignment(context.Background(), "", "friday", "session2", 0)
	require.NoError(t, err)
	require.Len(t, grid["friday"]["session2"], 1)
	assert.Equal(t, "m2", grid["friday"]["session2"][0].MentorID)
}

func TestTimetableServiceRemoveAssignmentOutOfRange(t *testing.T) {
	svc := newTimetableSvc(newMockTimetableState(), false)

	_, err := svc.RemoveAssignment(context.Background(), "", "monday", "session1", 0)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTimetableServicePerWeekKeys(t *testing.T) {
	state := newMockTimetableState()
	svc := newTimetableSvc(state, true)

	_, err := svc.PutCell(context.Background(), "2026-08-24", "monday", "session1", models.PutCellRequest{
		Assignments: []models.SlotAssignment{{MentorID: "m1", Category: models.CategoryMath, StudentIDs: []string{"s1"}}},
	})
	require.NoError(t, err)
	_, ok := state.blobs["timetable:2026-08-24"]
	assert.True(t, ok)

	other, err := svc.Get(context.Background(), "2026-08-31")
	require.NoError(t, err)
	assert.Empty(t, other["monday"]["session1"])
}

func TestTimetableServiceMentorView(t *testing.T) {
	state := newMockTimetableState()
	state.blobs["timetable"] = models.Timetable{
		"monday": {"session1": {
			{MentorID: "m1", Category: models.CategoryMath, StudentIDs: []string{"s1"}},
			{MentorID: "m2", Category: models.CategoryBody, StudentIDs: []string{"s2"}},
		}},
		"tuesday": {"session2": {
			{MentorID: "m2", Category: models.CategoryMind, StudentIDs: []string{"s3"}},
		}},
	}
	svc := newTimetableSvc(state, false)

	view, err := svc.MentorView(context.Background(), "", "m2")
	require.NoError(t, err)
	assert.Len(t, view["monday"]["session1"], 1)
	assert.Len(t, view["tuesday"]["session2"], 1)
	for _, slots := range view {
		for _, assignments := range slots {
			for _, a := range assignments {
				assert.Equal(t, "m2", a.MentorID)
			}
		}
	}
}

func TestTimetableServiceMentorViewLegacyDayKey(t *testing.T) {
	state := newMockTimetableState()
	state.blobs["timetable"] = models.Timetable{
		"saturday": {"session1": {
			{MentorID: "m1", Category: models.CategoryBody, StudentIDs: []string{"s1"}},
		}},
	}
	svc := newTimetableSvc(state, false)

	view, err := svc.MentorView(context.Background(), "", "m1")
	require.NoError(t, err)
	assert.Len(t, view["saturday"]["session1"], 1)
}
