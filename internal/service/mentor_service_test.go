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

type mockMentorRepo struct {
	mentors map[string]models.Mentor
}

func newMockMentorRepo() *mockMentorRepo {
	return &mockMentorRepo{mentors: make(map[string]models.Mentor)}
}

func (m *mockMentorRepo) List(ctx context.Context, filter repository.MentorFilter) ([]models.Mentor, int, error) {
	result := []models.Mentor{}
	for _, mentor := range m.mentors {
		result = append(result, mentor)
	}
	return result, len(result), nil
}

func (m *mockMentorRepo) FindByID(ctx context.Context, id string) (*models.Mentor, error) {
	mentor, ok := m.mentors[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &mentor, nil
}

func (m *mockMentorRepo) Create(ctx context.Context, mentor *models.Mentor) error {
	if mentor.ID == "" {
		mentor.ID = uuid.NewString()
	}
	m.mentors[mentor.ID] = *mentor
	return nil
}

func (m *mockMentorRepo) Update(ctx context.Context, mentor *models.Mentor) error {
	m.mentors[mentor.ID] = *mentor
	return nil
}

func (m *mockMentorRepo) Deactivate(ctx context.Context, id string) error {
	mentor := m.mentors[id]
	mentor.IsActive = false
	m.mentors[id] = mentor
	return nil
}

func TestMentorServiceCreate(t *testing.T) {
	repo := newMockMentorRepo()
	svc := NewMentorService(repo, validator.New(), zap.NewNop())

	mentor, err := svc.Create(context.Background(), models.CreateMentorRequest{
		Name:  "Anil Kumar",
		Role:  "senior mentor",
		Email: "anil@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, mentor.ID)
	assert.True(t, mentor.IsActive)
	assert.NotNil(t, mentor.StudentIDs)
}

func TestMentorServiceCreateValidation(t *testing.T) {
	svc := NewMentorService(newMockMentorRepo(), validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), models.CreateMentorRequest{Name: "Anil", Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMentorServiceUpdateStudentList(t *testing.T) {
	repo := newMockMentorRepo()
	repo.mentors["m1"] = models.Mentor{ID: "m1", Name: "Anil", IsActive: true}
	svc := NewMentorService(repo, validator.New(), zap.NewNop())

	assigned := []string{uuid.NewString(), uuid.NewString()}
	mentor, err := svc.Update(context.Background(), "m1", models.UpdateMentorRequest{StudentIDs: assigned})
	require.NoError(t, err)
	assert.Len(t, mentor.StudentIDs, 2)
}

func TestMentorServiceFindNotFound(t *testing.T) {
	svc := NewMentorService(newMockMentorRepo(), validator.New(), zap.NewNop())

	_, err := svc.Find(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestMentorServiceDeactivate(t *testing.T) {
	repo := newMockMentorRepo()
	repo.mentors["m1"] = models.Mentor{ID: "m1", Name: "Anil", IsActive: true}
	svc := NewMentorService(repo, validator.New(), zap.NewNop())

	require.NoError(t, svc.Deactivate(context.Background(), "m1"))
	assert.False(t, repo.mentors["m1"].IsActive)
}

func TestMentorServiceNamePlaceholder(t *testing.T) {
	repo := newMockMentorRepo()
	repo.mentors["m1"] = models.Mentor{ID: "m1", Name: "Anil"}
	svc := NewMentorService(repo, validator.New(), zap.NewNop())
	ctx := context.Background()

	assert.Equal(t, "Anil", svc.NameOf(ctx, "m1"))
	assert.Equal(t, models.UnknownMentorName, svc.NameOf(ctx, "ghost"))
}
