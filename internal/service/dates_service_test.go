package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
)

type mockDatesState struct {
	dates []models.ImportantDate
}

func (m *mockDatesState) ImportantDates(ctx context.Context) ([]models.ImportantDate, error) {
	return m.dates, nil
}

func (m *mockDatesState) SaveImportantDates(ctx context.Context, dates []models.ImportantDate) error {
	m.dates = dates
	return nil
}

func newDatesService(state *mockDatesState) *DatesService {
	return NewDatesService(state, validator.New(), zap.NewNop())
}

func TestDatesServiceCreate(t *testing.T) {
	state := &mockDatesState{}
	svc := newDatesService(state)

	date, err := svc.Create(context.Background(), models.CreateImportantDateRequest{
		Name:      "Sports day",
		StartDate: "2026-09-10",
		EndDate:   "2026-09-10",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, date.ID)
	assert.Len(t, state.dates, 1)
}

func TestDatesServiceCreateRequiresFields(t *testing.T) {
	svc := newDatesService(&mockDatesState{})

	_, err := svc.Create(context.Background(), models.CreateImportantDateRequest{Name: "No dates"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDatesServiceCreateRejectsInvertedRange(t *testing.T) {
	svc := newDatesService(&mockDatesState{})

	_, err := svc.Create(context.Background(), models.CreateImportantDateRequest{
		Name:      "Backwards",
		StartDate: "2026-09-10",
		EndDate:   "2026-09-09",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDatesServiceDelete(t *testing.T) {
	state := &mockDatesState{dates: []models.ImportantDate{
		{ID: "d1", Name: "Trip", StartDate: "2026-09-01", EndDate: "2026-09-02"},
	}}
	svc := newDatesService(state)

	require.NoError(t, svc.Delete(context.Background(), "d1"))
	assert.Empty(t, state.dates)

	err := svc.Delete(context.Background(), "d1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDatesServiceUpcomingBuckets(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	state := &mockDatesState{dates: []models.ImportantDate{
		{ID: "past", Name: "Ended", StartDate: "2026-08-01", EndDate: "2026-08-05"},
		{ID: "this", Name: "Assembly", StartDate: "2026-08-31", EndDate: "2026-08-31"},
		{ID: "next", Name: "Exams", StartDate: "2026-09-14", EndDate: "2026-09-18"},
		{ID: "later", Name: "Camp", StartDate: "2026-11-02", EndDate: "2026-11-06"},
	}}
	svc := newDatesService(state)

	upcoming, err := svc.Upcoming(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, upcoming.ThisMonth, 1)
	assert.Equal(t, "this", upcoming.ThisMonth[0].ID)
	require.Len(t, upcoming.NextMonth, 1)
	assert.Equal(t, "next", upcoming.NextMonth[0].ID)
}
