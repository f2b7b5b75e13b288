package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
	"github.com/hephzi-centre/admin-api/internal/repository"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
)

type mockStudentRepo struct {
	students map[string]models.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]models.Student)}
}

func (m *mockStudentRepo) List(ctx context.Context, filter repository.StudentFilter) ([]models.Student, int, error) {
	result := []models.Student{}
	for _, s := range m.students {
		result = append(result, s)
	}
	return result, len(result), nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (m *mockStudentRepo) FindByIDs(ctx context.Context, ids []string) ([]models.Student, error) {
	result := []models.Student{}
	for _, id := range ids {
		if s, ok := m.students[id]; ok {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Deactivate(ctx context.Context, id string) error {
	s := m.students[id]
	s.IsActive = false
	m.students[id] = s
	return nil
}

func TestStudentServiceCreate(t *testing.T) {
	repo := newMockStudentRepo()
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	student, err := svc.Create(context.Background(), models.CreateStudentRequest{
		Name:  "Asha Nair",
		Grade: 4,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.True(t, student.IsActive)
	assert.NotNil(t, student.Grades)
	assert.NotNil(t, student.Batches)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	svc := NewStudentService(newMockStudentRepo(), validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), models.CreateStudentRequest{Name: "A", Grade: 4})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), models.CreateStudentRequest{Name: "Asha", Grade: 0})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceFindNotFound(t *testing.T) {
	svc := NewStudentService(newMockStudentRepo(), validator.New(), zap.NewNop())

	_, err := svc.Find(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceUpdate(t *testing.T) {
	repo := newMockStudentRepo()
	repo.students["s1"] = models.Student{ID: "s1", Name: "Asha", Grade: 3, IsActive: true}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	grade := 4
	student, err := svc.Update(context.Background(), "s1", models.UpdateStudentRequest{Grade: &grade})
	require.NoError(t, err)
	assert.Equal(t, 4, student.Grade)
	assert.Equal(t, "Asha", student.Name)
}

func TestStudentServiceDeactivate(t *testing.T) {
	repo := newMockStudentRepo()
	repo.students["s1"] = models.Student{ID: "s1", Name: "Asha", IsActive: true}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	require.NoError(t, svc.Deactivate(context.Background(), "s1"))
	assert.False(t, repo.students["s1"].IsActive)

	err := svc.Deactivate(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceNamePlaceholders(t *testing.T) {
	repo := newMockStudentRepo()
	repo.students["s1"] = models.Student{ID: "s1", Name: "Asha"}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())
	ctx := context.Background()

	assert.Equal(t, "Asha", svc.NameOf(ctx, "s1"))
	assert.Equal(t, models.UnknownStudentName, svc.NameOf(ctx, "ghost"))

	names := svc.NamesOf(ctx, []string{"s1", "ghost"})
	assert.Equal(t, "Asha", names["s1"])
	assert.Equal(t, models.UnknownStudentName, names["ghost"])
}

func TestStudentServiceListPagination(t *testing.T) {
	repo := newMockStudentRepo()
	repo.students["s1"] = models.Student{ID: "s1", Name: "Asha"}
	repo.students["s2"] = models.Student{ID: "s2", Name: "Ravi"}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	students, pagination, err := svc.List(context.Background(), repository.StudentFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, students, 2)
	require.NotNil(t, pagination)
	assert.Equal(t, 2, pagination.Total)
}
