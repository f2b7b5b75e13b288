package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
)

type mockSessionRepo struct {
	entries []models.SessionCatalogEntry
}

func (m *mockSessionRepo) ListByCategory(ctx context.Context, category models.Category) ([]models.SessionCatalogEntry, error) {
	result := []models.SessionCatalogEntry{}
	for _, e := range m.entries {
		if e.Category == category {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockSessionRepo) ListByCategoryAndGrade(ctx context.Context, category models.Category, grade int) ([]models.SessionCatalogEntry, error) {
	result := []models.SessionCatalogEntry{}
	for _, e := range m.entries {
		if e.Category == category && e.Grade != nil && *e.Grade == grade {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id string) (*models.SessionCatalogEntry, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			return &m.entries[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockSessionRepo) FindByIDs(ctx context.Context, ids []string) ([]models.SessionCatalogEntry, error) {
	result := []models.SessionCatalogEntry{}
	for _, id := range ids {
		for _, e := range m.entries {
			if e.ID == id {
				result = append(result, e)
			}
		}
	}
	return result, nil
}

type mockCatalogStudents struct {
	students map[string]models.Student
}

func (m *mockCatalogStudents) FindByID(ctx context.Context, id string) (*models.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func intPtr(v int) *int { return &v }

func newCatalogService() *CatalogService {
	sessions := &mockSessionRepo{entries: []models.SessionCatalogEntry{
		{ID: "m-g3", Category: models.CategoryMath, Name: "Fractions", Grade: intPtr(3)},
		{ID: "m-g4", Category: models.CategoryMath, Name: "Decimals", Grade: intPtr(4)},
		{ID: "e-g3", Category: models.CategoryEnglish, Name: "Reading", Grade: intPtr(3)},
		{ID: "b-1", Category: models.CategoryBody, Name: "Yoga"},
		{ID: "b-2", Category: models.CategoryBody, Name: "Drills"},
	}}
	students := &mockCatalogStudents{students: map[string]models.Student{
		"s1": {ID: "s1", Name: "Asha", Grade: 3, Grades: models.SubjectGrades{models.CategoryMath: 4}},
	}}
	return NewCatalogService(sessions, students, zap.NewNop())
}

func TestCatalogServiceAcademicUsesSubjectGrade(t *testing.T) {
	svc := newCatalogService()

	entries, err := svc.CandidateSessions(context.Background(), models.CategoryMath, "s1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "m-g4", entries[0].ID)
}

func TestCatalogServiceAcademicFallsBackToOverallGrade(t *testing.T) {
	svc := newCatalogService()

	entries, err := svc.CandidateSessions(context.Background(), models.CategoryEnglish, "s1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "e-g3", entries[0].ID)
}

func TestCatalogServiceNonAcademicReturnsAll(t *testing.T) {
	svc := newCatalogService()

	entries, err := svc.CandidateSessions(context.Background(), models.CategoryBody, "s1")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCatalogServiceUnknownStudentEmpty(t *testing.T) {
	svc := newCatalogService()

	entries, err := svc.CandidateSessions(context.Background(), models.CategoryMath, "ghost")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCatalogServiceUnknownStudentEmptyNonAcademic(t *testing.T) {
	svc := newCatalogService()

	entries, err := svc.CandidateSessions(context.Background(), models.CategoryBody, "ghost")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCatalogServiceInvalidCategory(t *testing.T) {
	svc := newCatalogService()

	_, err := svc.CandidateSessions(context.Background(), models.Category("pottery"), "s1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceSessionNamePlaceholder(t *testing.T) {
	svc := newCatalogService()
	ctx := context.Background()

	assert.Equal(t, "Yoga", svc.SessionName(ctx, "b-1"))
	assert.Equal(t, models.UnknownSessionName, svc.SessionName(ctx, "gone"))
}

func TestCatalogServiceSessionNamesBatch(t *testing.T) {
	svc := newCatalogService()

	names := svc.SessionNames(context.Background(), []string{"m-g3", "gone"})
	assert.Equal(t, "Fractions", names["m-g3"])
	assert.Equal(t, models.UnknownSessionName, names["gone"])
}
